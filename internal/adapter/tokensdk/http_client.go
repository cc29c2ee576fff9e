// Package tokensdk implements ports.TokenSDK by talking to the external
// commitment/token service over HTTP. The service's internals are out
// of scope per spec §1 ("a pure collaborator exposing submit,
// waitInclusionProof, finalize, verify; its internals are not
// redesigned here") — this adapter is only the wire-level contract.
package tokensdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/unicitylabs/aggregator-proxy/internal/core/ports"
)

// Client implements ports.TokenSDK over a JSON/HTTP commitment service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a Client against baseURL (e.g. the value configured for
// tokenTypeIdsUrl's host, per spec §6).
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: baseURL, http: httpClient}
}

// DeriveRequestID extracts a transfer commitment's blockchain requestId
// without submitting it.
func (c *Client) DeriveRequestID(transferCommitmentJSON string) (string, error) {
	var envelope struct {
		RequestID string `json:"requestId"`
	}
	if err := json.Unmarshal([]byte(transferCommitmentJSON), &envelope); err != nil {
		return "", fmt.Errorf("parsing transfer commitment: %w", err)
	}
	if envelope.RequestID == "" {
		return "", fmt.Errorf("transfer commitment missing requestId")
	}
	return envelope.RequestID, nil
}

// SubmitCommitment submits the transfer commitment to the commitment
// service and requires a SUCCESS acknowledgement.
func (c *Client) SubmitCommitment(ctx context.Context, transferCommitmentJSON string) error {
	var result struct {
		Status string `json:"status"`
	}
	if err := c.postJSON(ctx, "/submit", transferCommitmentJSON, &result); err != nil {
		return err
	}
	if result.Status != "SUCCESS" {
		return fmt.Errorf("submit returned status %q", result.Status)
	}
	return nil
}

// WaitInclusionProof blocks until the commitment's inclusion proof is
// available.
func (c *Client) WaitInclusionProof(ctx context.Context, transferCommitmentJSON string) (*ports.InclusionResult, error) {
	var result ports.InclusionResult
	if err := c.postJSON(ctx, "/wait-inclusion-proof", transferCommitmentJSON, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// FinalizeTransaction derives the receiver's signing service and
// predicate from (serverSecret, receiverNonce, tokenId) and finalizes
// the transaction against the commitment service.
func (c *Client) FinalizeTransaction(ctx context.Context, result *ports.InclusionResult, serverSecret, receiverNonce []byte, sourceTokenJSON string) (*ports.ReceivedToken, error) {
	payload, err := json.Marshal(struct {
		RequestID       string `json:"requestId"`
		TokenID         string `json:"tokenId"`
		ServerSecretHex string `json:"serverSecretHex"`
		ReceiverNonce   []byte `json:"receiverNonce"`
		SourceTokenJSON string `json:"sourceTokenJson"`
	}{
		RequestID:       result.RequestID,
		TokenID:         result.TokenID,
		ServerSecretHex: fmt.Sprintf("%x", serverSecret),
		ReceiverNonce:   receiverNonce,
		SourceTokenJSON: sourceTokenJSON,
	})
	if err != nil {
		return nil, err
	}

	var received ports.ReceivedToken
	if err := c.postJSON(ctx, "/finalize", string(payload), &received); err != nil {
		return nil, err
	}
	return &received, nil
}

// Verify checks the received token against the trust base document.
func (c *Client) Verify(ctx context.Context, token *ports.ReceivedToken, trustBase []byte) error {
	payload, err := json.Marshal(struct {
		Token     *ports.ReceivedToken `json:"token"`
		TrustBase json.RawMessage      `json:"trustBase"`
	}{Token: token, TrustBase: trustBase})
	if err != nil {
		return err
	}

	var result struct {
		Verified bool `json:"verified"`
	}
	if err := c.postJSON(ctx, "/verify", string(payload), &result); err != nil {
		return err
	}
	if !result.Verified {
		return fmt.Errorf("trust base verification failed")
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path, body string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader([]byte(body)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("token sdk call %s failed: %d %s", path, resp.StatusCode, string(b))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
