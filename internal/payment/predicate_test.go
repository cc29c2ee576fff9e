package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerivePaymentAddress_Deterministic(t *testing.T) {
	d := NewPredicateDeriver()
	secret := []byte("server-secret")
	nonce := []byte("receiver-nonce-0123456789012345")

	addr1, err := d.DerivePaymentAddress(secret, nonce, TestnetTokenType)
	require.NoError(t, err)
	addr2, err := d.DerivePaymentAddress(secret, nonce, TestnetTokenType)
	require.NoError(t, err)

	assert.Equal(t, addr1, addr2, "same inputs must yield the same address")
	assert.Len(t, addr1, 66, "compressed secp256k1 pubkey hex is 33 bytes")
}

func TestDerivePaymentAddress_DifferentNoncesDiffer(t *testing.T) {
	d := NewPredicateDeriver()
	secret := []byte("server-secret")

	addr1, err := d.DerivePaymentAddress(secret, []byte("nonce-a-0123456789012345678901"), TestnetTokenType)
	require.NoError(t, err)
	addr2, err := d.DerivePaymentAddress(secret, []byte("nonce-b-0123456789012345678901"), TestnetTokenType)
	require.NoError(t, err)

	assert.NotEqual(t, addr1, addr2)
}

func TestReceiverSigningKey_MatchesDerivedAddress(t *testing.T) {
	d := NewPredicateDeriver()
	secret := []byte("server-secret")
	nonce := []byte("receiver-nonce-0123456789012345")

	addr, err := d.DerivePaymentAddress(secret, nonce, TestnetTokenType)
	require.NoError(t, err)

	priv, err := d.ReceiverSigningKey(secret, nonce, TestnetTokenType)
	require.NoError(t, err)

	pubHex := priv.PubKey().SerializeCompressed()
	assert.Equal(t, addr, hexEncode(pubHex))
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}
