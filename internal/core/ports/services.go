package ports

// EncryptionService handles AES-256-GCM encryption/decryption of the
// sensitive payload fields PaymentStore persists at rest: the received
// token's serialized bytes and the raw completion-request JSON.
type EncryptionService interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}
