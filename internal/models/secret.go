package models

// SealedSecret is a value encrypted with AES-GCM as stored by the SQLite
// secure store.
type SealedSecret struct {
	Ciphertext []byte
	Nonce      []byte
}

// KeyParams describes how the SQLite secure store derives its sealing key
// from the configured passphrase.
type KeyParams struct {
	// Salt is the argon2id salt for the passphrase.
	Salt []byte
	// Verifier is a hash of the derived key, checked on open.
	Verifier []byte
}
