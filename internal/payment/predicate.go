package payment

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"golang.org/x/crypto/hkdf"
)

// PredicateDeriver derives a masked-predicate payment address from
// (serverSecret, receiverNonce, tokenType) such that the predicate's
// private signer is reconstructible from (serverSecret, receiverNonce)
// alone — spec §4.6 step 5's "exposing the nonce is safe" property.
//
// The derivation is: HKDF-SHA256(secret=serverSecret, salt=receiverNonce,
// info=tokenType) yields 32 bytes, reduced into a secp256k1 scalar; the
// payment address is the compressed SEC1 encoding of scalar*G. Anyone
// holding (serverSecret, receiverNonce, tokenType) can recompute the
// same scalar and therefore the same private key, without ever storing
// per-session private keys.
type PredicateDeriver struct{}

// NewPredicateDeriver creates a PredicateDeriver.
func NewPredicateDeriver() PredicateDeriver { return PredicateDeriver{} }

// DerivePaymentAddress implements ports.PredicateDeriver.
func (PredicateDeriver) DerivePaymentAddress(serverSecret, receiverNonce []byte, tokenType string) (string, error) {
	priv, err := derivePrivateKey(serverSecret, receiverNonce, tokenType)
	if err != nil {
		return "", err
	}
	pub := priv.PubKey()
	return hex.EncodeToString(pub.SerializeCompressed()), nil
}

// derivePrivateKey recomputes the receiver's signing key from
// (serverSecret, receiverNonce, tokenType). The same inputs always
// yield the same key, which is the whole point: the server never
// persists per-session private keys.
func derivePrivateKey(serverSecret, receiverNonce []byte, tokenType string) (*secp256k1.PrivateKey, error) {
	kdf := hkdf.New(sha256.New, serverSecret, receiverNonce, []byte(tokenType))

	scalarBytes := make([]byte, 32)
	if _, err := io.ReadFull(kdf, scalarBytes); err != nil {
		return nil, errors.New("predicate: deriving scalar: " + err.Error())
	}

	// secp256k1.PrivKeyFromBytes reduces mod N internally via ModNScalar,
	// so any 32-byte string is an acceptable (if astronomically unlikely
	// to be zero) input.
	priv := secp256k1.PrivKeyFromBytes(scalarBytes)
	return priv, nil
}

// ReceiverSigningKey reconstructs the same private key DerivePaymentAddress
// committed to, for use when the PaymentEngine later needs to sign on
// behalf of the predicate during FinalizeTransaction.
func (PredicateDeriver) ReceiverSigningKey(serverSecret, receiverNonce []byte, tokenType string) (*secp256k1.PrivateKey, error) {
	return derivePrivateKey(serverSecret, receiverNonce, tokenType)
}
