package ledger

import "encoding/json"

// Listing is one equipment record as read from chain state. The chain is the
// single source of truth; the client never mutates a Listing directly.
type Listing struct {
	Owner         string
	Name          string
	DailyRate     uint64
	DepositAmount uint64
	Available     bool
}

// Resource is one {type, data} pair from the account-resources endpoint.
// Data stays raw until the caller knows which shape to decode.
type Resource struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// AccountInfo is the account metadata needed to build a transaction.
type AccountInfo struct {
	SequenceNumber    string `json:"sequence_number"`
	AuthenticationKey string `json:"authentication_key"`
}

// EntryFunctionPayload names a program entry point and its arguments.
// Integer arguments are decimal strings: u64 does not fit float64, so the
// node API never carries them as JSON numbers.
type EntryFunctionPayload struct {
	Type          string   `json:"type"`
	Function      string   `json:"function"`
	TypeArguments []string `json:"type_arguments"`
	Arguments     []string `json:"arguments"`
}

// SubmissionRequest is the unsigned transaction the node encodes into the
// byte string a wallet signs.
type SubmissionRequest struct {
	Sender                  string               `json:"sender"`
	SequenceNumber          string               `json:"sequence_number"`
	MaxGasAmount            string               `json:"max_gas_amount"`
	GasUnitPrice            string               `json:"gas_unit_price"`
	ExpirationTimestampSecs string               `json:"expiration_timestamp_secs"`
	Payload                 EntryFunctionPayload `json:"payload"`
}

// TransactionSignature is the ed25519 signature envelope attached to a
// submission.
type TransactionSignature struct {
	Type      string `json:"type"`
	PublicKey string `json:"public_key"`
	Signature string `json:"signature"`
}

// SignedRequest is a SubmissionRequest plus its signature.
type SignedRequest struct {
	SubmissionRequest
	Signature TransactionSignature `json:"signature"`
}

// Transaction is the committed (or pending) transaction record returned by
// the by-hash endpoint.
type Transaction struct {
	Type     string `json:"type"`
	Hash     string `json:"hash"`
	Success  bool   `json:"success"`
	VMStatus string `json:"vm_status"`
}

// Pending reports whether the transaction has not reached finality yet.
func (t *Transaction) Pending() bool {
	return t.Type == "pending_transaction"
}

// LedgerInfo is the node status document served at the API root.
type LedgerInfo struct {
	ChainID       int    `json:"chain_id"`
	LedgerVersion string `json:"ledger_version"`
	NodeRole      string `json:"node_role"`
}
