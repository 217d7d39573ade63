package api

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"forage/model"
)

// SessionTokenExpiry peeks at the expiry claim of a JWT-shaped session token
// without verifying the signature; the SDK never validates tokens, it only
// warns when one is about to lapse. The second return is false when the
// token is not a JWT or carries no expiry.
func SessionTokenExpiry(sessionToken string) (time.Time, bool) {
	// Session tokens may be prefixed with the environment name, as in
	// "sandbox_ey...". Underscores are also legal base64url characters, so
	// only a recognized environment prefix is stripped.
	raw := sessionToken
	if prefix, rest, found := strings.Cut(sessionToken, "_"); found {
		switch model.Environment(prefix) {
		case model.EnvDev, model.EnvStaging, model.EnvSandbox, model.EnvCert, model.EnvProd:
			raw = rest
		}
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
