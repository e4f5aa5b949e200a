package usecase

import "crypto/subtle"

// StaticAuthenticator checks credentials configured at startup. It exists so
// handlers depend on domain.Authenticator and a real credential store can be
// swapped in without touching them.
type StaticAuthenticator struct {
	Username string
	Password string
}

func (a StaticAuthenticator) Authenticate(username, password string) bool {
	if a.Username == "" || a.Password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.Password)) == 1
	return userOK && passOK
}
