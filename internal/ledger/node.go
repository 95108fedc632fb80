// Package ledger talks to a fullnode REST API: account and resource queries,
// transaction submission, and finality waits. Errors crossing this boundary
// are classified by the faults package; transport failures wrap
// faults.ErrUnavailable so they surface as connectivity, not as a crash.
package ledger

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/aptrent/aptrent/internal/faults"
	"github.com/aptrent/aptrent/internal/logging"
)

// ErrNoModuleAddress means the rental program address was never configured.
// Submitting or fetching without it is a precondition failure, not a
// network error.
var ErrNoModuleAddress = errors.New("module address not configured")

const (
	defaultRequestTimeout = 30 * time.Second
	finalityPollEvery     = time.Second
	finalityTimeout       = 60 * time.Second
)

// NodeClient is a thin client for the fullnode HTTP API.
type NodeClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewNodeClient(baseURL string, log logging.Logger) *NodeClient {
	return &NodeClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultRequestTimeout},
		log:     log.With("component", "node"),
	}
}

// apiError is the node's JSON error body.
type apiError struct {
	Message   string `json:"message"`
	ErrorCode string `json:"error_code"`
}

func (c *NodeClient) do(ctx context.Context, method, path string, in, out any) error {
	var body *bytes.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", faults.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var ae apiError
		if decErr := json.NewDecoder(resp.Body).Decode(&ae); decErr == nil && ae.Message != "" {
			return fmt.Errorf("node API %s %s: %s (%s)", method, path, ae.Message, ae.ErrorCode)
		}
		return fmt.Errorf("node API %s %s: %s", method, path, resp.Status)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response of %s: %w", path, err)
	}
	return nil
}

// Account returns the metadata of one on-chain account.
func (c *NodeClient) Account(ctx context.Context, address string) (*AccountInfo, error) {
	var info AccountInfo
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+address, nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// AccountResources returns every resource held under the given address as
// raw {type, data} pairs. Filtering and parsing is the caller's concern.
func (c *NodeClient) AccountResources(ctx context.Context, address string) ([]Resource, error) {
	var resources []Resource
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/"+address+"/resources", nil, &resources); err != nil {
		return nil, err
	}
	return resources, nil
}

// LedgerInfo returns the node status document, used as a health probe.
func (c *NodeClient) LedgerInfo(ctx context.Context) (*LedgerInfo, error) {
	var info LedgerInfo
	if err := c.do(ctx, http.MethodGet, "/v1", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// EncodeSubmission asks the node for the exact byte string a wallet must
// sign for the given unsigned transaction.
func (c *NodeClient) EncodeSubmission(ctx context.Context, tx *SubmissionRequest) ([]byte, error) {
	var encoded string
	if err := c.do(ctx, http.MethodPost, "/v1/transactions/encode_submission", tx, &encoded); err != nil {
		return nil, err
	}
	msg, err := hex.DecodeString(strings.TrimPrefix(encoded, "0x"))
	if err != nil {
		return nil, fmt.Errorf("decoding signing message: %w", err)
	}
	return msg, nil
}

// SubmitTransaction broadcasts a signed transaction and returns its hash.
// The hash identifies the request for the finality wait; success here means
// accepted into the mempool, not committed.
func (c *NodeClient) SubmitTransaction(ctx context.Context, signed *SignedRequest) (string, error) {
	var pending Transaction
	if err := c.do(ctx, http.MethodPost, "/v1/transactions", signed, &pending); err != nil {
		return "", err
	}
	c.log.Info(ctx, "transaction submitted", "hash", pending.Hash)
	return pending.Hash, nil
}

// TransactionByHash looks up one transaction. A 404 means the node has not
// seen the hash yet and is reported as a still-pending record.
func (c *NodeClient) TransactionByHash(ctx context.Context, hash string) (*Transaction, error) {
	var tx Transaction
	err := c.do(ctx, http.MethodGet, "/v1/transactions/by_hash/"+hash, nil, &tx)
	if err != nil {
		if strings.Contains(err.Error(), "404") || strings.Contains(err.Error(), "not found") {
			return &Transaction{Type: "pending_transaction", Hash: hash}, nil
		}
		return nil, err
	}
	return &tx, nil
}

// WaitForTransaction blocks until the given hash reaches finality or the
// wait times out. A committed transaction that failed execution returns an
// error carrying the VM status so the classifier can recognize conflicts.
func (c *NodeClient) WaitForTransaction(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, finalityTimeout)
	defer cancel()

	ticker := time.NewTicker(finalityPollEvery)
	defer ticker.Stop()

	for {
		tx, err := c.TransactionByHash(ctx, hash)
		if err != nil {
			return err
		}
		if !tx.Pending() {
			if !tx.Success {
				return fmt.Errorf("transaction %s failed: %s", hash, tx.VMStatus)
			}
			c.log.Info(ctx, "transaction confirmed", "hash", hash)
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for transaction %s: %w", hash, ctx.Err())
		case <-ticker.C:
		}
	}
}
