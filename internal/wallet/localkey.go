package wallet

import (
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/crypto/sha3"

	"github.com/aptrent/aptrent/internal/ledger"
)

const (
	defaultMaxGasAmount = "200000"
	defaultGasUnitPrice = "100"
	txExpiry            = 2 * time.Minute

	// singleSigScheme is the authentication-scheme byte appended to the
	// public key when deriving the account address.
	singleSigScheme = 0x00
)

// LocalKey is a signer backend backed by an ed25519 key file. It asks the
// node to encode the submission, signs the returned message locally, and
// broadcasts the result.
type LocalKey struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
	addr string
	node *ledger.NodeClient
}

// LoadLocalKey opens the key file at path and derives the account address
// from the public key: sha3-256(pubkey ‖ scheme byte).
func LoadLocalKey(path string, node *ledger.NodeClient, passphrase func() ([]byte, error)) (*LocalKey, error) {
	seed, err := readSeed(path, passphrase)
	if err != nil {
		return nil, err
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("key file holds %d bytes, want a %d-byte seed", len(seed), ed25519.SeedSize)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	pub := priv.Public().(ed25519.PublicKey)

	h := sha3.New256()
	h.Write(pub)
	h.Write([]byte{singleSigScheme})
	addr := "0x" + hex.EncodeToString(h.Sum(nil))

	return &LocalKey{priv: priv, pub: pub, addr: addr, node: node}, nil
}

func (w *LocalKey) Address() string { return w.addr }

// SignAndSubmit builds the unsigned transaction for the current sequence
// number, signs the node-encoded submission message, and broadcasts it.
func (w *LocalKey) SignAndSubmit(ctx context.Context, payload ledger.EntryFunctionPayload) (string, error) {
	acct, err := w.node.Account(ctx, w.addr)
	if err != nil {
		return "", fmt.Errorf("loading account %s: %w", w.addr, err)
	}

	req := &ledger.SubmissionRequest{
		Sender:                  w.addr,
		SequenceNumber:          acct.SequenceNumber,
		MaxGasAmount:            defaultMaxGasAmount,
		GasUnitPrice:            defaultGasUnitPrice,
		ExpirationTimestampSecs: strconv.FormatInt(time.Now().Add(txExpiry).Unix(), 10),
		Payload:                 payload,
	}

	msg, err := w.node.EncodeSubmission(ctx, req)
	if err != nil {
		return "", fmt.Errorf("encoding submission: %w", err)
	}

	sig := ed25519.Sign(w.priv, msg)
	signed := &ledger.SignedRequest{
		SubmissionRequest: *req,
		Signature: ledger.TransactionSignature{
			Type:      "ed25519_signature",
			PublicKey: "0x" + hex.EncodeToString(w.pub),
			Signature: "0x" + hex.EncodeToString(sig),
		},
	}

	return w.node.SubmitTransaction(ctx, signed)
}
