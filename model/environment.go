package model

import "strings"

// Environment selects the processor deployment the SDK talks to.
type Environment string

const (
	EnvDev     Environment = "dev"
	EnvStaging Environment = "staging"
	EnvSandbox Environment = "sandbox"
	EnvCert    Environment = "cert"
	EnvProd    Environment = "prod"
)

// Hostname returns the processor API host for the environment.
func (e Environment) Hostname() string {
	switch e {
	case EnvDev:
		return "api.dev.joinforage.app"
	case EnvStaging:
		return "api.staging.joinforage.app"
	case EnvCert:
		return "api.cert.joinforage.app"
	case EnvProd:
		return "api.joinforage.app"
	default:
		return "api.sandbox.joinforage.app"
	}
}

// EnvironmentFromToken maps a session token to its environment. Session
// tokens are prefixed with the environment name, as in "sandbox_ey...".
// Invalid or empty tokens default to sandbox.
func EnvironmentFromToken(sessionToken string) Environment {
	prefix, _, found := strings.Cut(sessionToken, "_")
	if !found {
		return EnvSandbox
	}
	switch env := Environment(prefix); env {
	case EnvDev, EnvStaging, EnvSandbox, EnvCert, EnvProd:
		return env
	}
	return EnvSandbox
}
