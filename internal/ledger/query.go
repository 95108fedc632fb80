package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/aptrent/aptrent/internal/logging"
)

// equipmentStruct is the Move struct name the query filters on. Resources of
// any other type under the module address are ignored, not errored.
const equipmentStruct = "::rental::Equipment"

// QueryClient reads the rental program's listings out of chain state.
type QueryClient struct {
	node          *NodeClient
	moduleAddress string
	log           logging.Logger
}

func NewQueryClient(node *NodeClient, moduleAddress string, log logging.Logger) *QueryClient {
	return &QueryClient{
		node:          node,
		moduleAddress: moduleAddress,
		log:           log.With("component", "query"),
	}
}

// listingResource mirrors the Move resource's field names. The u64 fields
// arrive as decimal strings.
type listingResource struct {
	Name          string `json:"name"`
	DailyRate     string `json:"daily_rate"`
	DepositAmount string `json:"deposit_amount"`
	IsAvailable   bool   `json:"is_available"`
}

// FetchListings returns every well-formed equipment resource under the
// module address.
//
// A malformed entry (missing field, bad integer, non-positive rate) is
// dropped with a warning and the rest of the batch still parses: one
// inconsistent resource must not blank the whole listing view. The fetch as
// a whole fails only when the underlying query fails.
func (q *QueryClient) FetchListings(ctx context.Context) ([]Listing, error) {
	if q.moduleAddress == "" {
		return nil, ErrNoModuleAddress
	}

	resources, err := q.node.AccountResources(ctx, q.moduleAddress)
	if err != nil {
		return nil, fmt.Errorf("fetching listings: %w", err)
	}

	wantType := q.moduleAddress + equipmentStruct
	listings := make([]Listing, 0, len(resources))
	for _, r := range resources {
		if r.Type != wantType {
			continue
		}
		l, err := parseListing(q.moduleAddress, r.Data)
		if err != nil {
			q.log.Warn(ctx, "dropping malformed listing resource", "type", r.Type, "err", err)
			continue
		}
		listings = append(listings, *l)
	}
	return listings, nil
}

func parseListing(owner string, data json.RawMessage) (*Listing, error) {
	var raw listingResource
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	if raw.Name == "" {
		return nil, errors.New("missing name")
	}
	if raw.DailyRate == "" {
		return nil, errors.New("missing daily_rate")
	}
	if raw.DepositAmount == "" {
		return nil, errors.New("missing deposit_amount")
	}
	rate, err := strconv.ParseUint(raw.DailyRate, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad daily_rate %q", raw.DailyRate)
	}
	if rate == 0 {
		return nil, errors.New("daily_rate must be positive")
	}
	deposit, err := strconv.ParseUint(raw.DepositAmount, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("bad deposit_amount %q", raw.DepositAmount)
	}
	return &Listing{
		Owner:         owner,
		Name:          raw.Name,
		DailyRate:     rate,
		DepositAmount: deposit,
		Available:     raw.IsAvailable,
	}, nil
}
