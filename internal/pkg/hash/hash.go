package hash

// Hash hashes and verifies secrets.
type Hash interface {
	// Hash hashes plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify returns true when plaintext matches the hashed value.
	Verify(hashed, plaintext string) bool
}
