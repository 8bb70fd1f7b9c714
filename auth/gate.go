// Package auth holds the admin gate: the capability every admin mutation
// consults before touching storage.
package auth

// Gate authorizes admin operations from a caller-supplied credential. It is
// an interface so the single-secret scheme can later be swapped for a real
// credential system without touching call sites.
type Gate interface {
	Authorize(credential string) bool
}

// SecretGate authorizes by comparing against one process-wide shared secret.
type SecretGate struct {
	secret string
}

func NewSecretGate(secret string) SecretGate {
	return SecretGate{secret: secret}
}

func (g SecretGate) Authorize(credential string) bool {
	return credential == g.secret
}
