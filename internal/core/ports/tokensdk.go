package ports

import (
	"context"
	"math/big"
)

// TokenSDK is the cryptographic token/commitment library PaymentEngine
// orchestrates. Its internals are explicitly out of scope (spec §1) —
// this is a pure collaborator contract.
type TokenSDK interface {
	// DeriveRequestID deserializes a transfer commitment far enough to
	// extract its blockchain requestId, without submitting it. Used for
	// PaymentEngine's Phase-1 idempotent early record (spec §4.6).
	DeriveRequestID(transferCommitmentJSON string) (string, error)
	// SubmitCommitment submits a transfer commitment and must return nil
	// on SUCCESS within a 30s deadline (enforced by the caller's context).
	SubmitCommitment(ctx context.Context, transferCommitmentJSON string) error
	// WaitInclusionProof blocks (up to a 60s deadline enforced by the
	// caller's context) until the commitment's inclusion proof is
	// available, then builds the finalized transaction.
	WaitInclusionProof(ctx context.Context, transferCommitmentJSON string) (*InclusionResult, error)
	// FinalizeTransaction derives the receiver's signing service and
	// predicate from (serverSecret, receiverNonce, tokenID), then
	// finalizes the transaction to obtain the received token.
	FinalizeTransaction(ctx context.Context, result *InclusionResult, serverSecret, receiverNonce []byte, sourceTokenJSON string) (*ReceivedToken, error)
	// Verify checks the received token against the trust base document.
	Verify(ctx context.Context, token *ReceivedToken, trustBase []byte) error
}

// InclusionResult is the opaque result of WaitInclusionProof: a
// well-defined blockchain requestId plus whatever the SDK needs to
// finalize the transaction.
type InclusionResult struct {
	RequestID string
	TokenID   string
	Raw       []byte // opaque SDK-internal blob, passed back to FinalizeTransaction
}

// CoinAmount is one coin-id/value pair carried by a ReceivedToken.
type CoinAmount struct {
	CoinID string
	Value  *big.Int
}

// ReceivedToken is the token produced by a successfully finalized and
// verified transfer.
type ReceivedToken struct {
	Serialized string // opaque, stored as PaymentSession.tokenReceived
	Coins      []CoinAmount
}

// PredicateDeriver derives a payment address (masked predicate) from
// (serverSecret, receiverNonce, tokenType) such that the predicate's
// private signer is reconstructible from (serverSecret, receiverNonce)
// alone, per spec §4.6 step 5.
type PredicateDeriver interface {
	DerivePaymentAddress(serverSecret, receiverNonce []byte, tokenType string) (address string, err error)
}
