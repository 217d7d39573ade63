package vault

import (
	"log/slog"

	"forage/model"
	"forage/telemetry"
)

// FlagProvider decides which vault backend a new field should bind to.
// The decision is made once, at field creation, and never revisited for that
// field. The zero default routes everything to VGS.
type FlagProvider interface {
	UseBasisTheory() bool
}

// StaticFlags is the trivial FlagProvider: a fixed answer.
type StaticFlags struct {
	BasisTheory bool
}

func (f StaticFlags) UseBasisTheory() bool { return f.BasisTheory }

var vgsConfigs = map[model.Environment]VGSConfig{
	model.EnvDev:     {VaultID: "tntlqkidhc6", Environment: "sandbox"},
	model.EnvStaging: {VaultID: "tnteykuh975", Environment: "sandbox"},
	model.EnvSandbox: {VaultID: "tntagcot4b1", Environment: "sandbox"},
	model.EnvCert:    {VaultID: "tntpnht7psv", Environment: "sandbox"},
	model.EnvProd:    {VaultID: "tntbcrncmgi", Environment: "live"},
}

var basisTheoryConfigs = map[model.Environment]BasisTheoryConfig{
	model.EnvDev:     {PublicKey: "key_AZfcBuKUsV38PEeYu6ZV8x", ProxyKey: "N31FZgKpYZpo3oQ6XiM6M6"},
	model.EnvStaging: {PublicKey: "key_6B4cvpcDCEeNDYNow9zH7c", ProxyKey: "ScWvAUkp53xz7muae7fW5p"},
	model.EnvSandbox: {PublicKey: "key_DQ5NfUAgiqzwX1pxqcrSzK", ProxyKey: "R1CNiogSdhnHeNq6ZFWrG1"},
	model.EnvCert:    {PublicKey: "key_NdWtkKrZqztEfJRkZA8dmw", ProxyKey: "AFSMtyyTGLKgmdWwrLCENX"},
	model.EnvProd:    {PublicKey: "key_BypNREttGMPbZ1muARDUf4", ProxyKey: "UxbU4Jn2RmvCovABjwCwsa"},
}

// Options tunes collector construction. All fields are optional.
type Options struct {
	Client  Doer
	Logger  *slog.Logger
	Metrics telemetry.MetricsCollector
	Flags   FlagProvider
}

func (o Options) metrics() telemetry.MetricsCollector {
	if o.Metrics == nil {
		return telemetry.NoopMetricsCollector{}
	}
	return o.Metrics
}

// NewCollector builds the collector for env, routed by the flag provider.
// Unknown environments fall back to sandbox credentials.
func NewCollector(env model.Environment, pin PinSource, opts Options) Collector {
	if opts.Flags != nil && opts.Flags.UseBasisTheory() {
		cfg, ok := basisTheoryConfigs[env]
		if !ok {
			cfg = basisTheoryConfigs[model.EnvSandbox]
		}
		return NewBasisTheoryCollector(cfg, pin, opts.Client, opts.Logger, opts.metrics())
	}
	cfg, ok := vgsConfigs[env]
	if !ok {
		cfg = vgsConfigs[model.EnvSandbox]
	}
	return NewVGSCollector(cfg, pin, opts.Client, opts.Logger, opts.metrics())
}
