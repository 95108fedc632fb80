package rental

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/aptrent/aptrent/internal/faults"
	"github.com/aptrent/aptrent/internal/ledger"
	"github.com/aptrent/aptrent/internal/logging"
	"github.com/aptrent/aptrent/internal/validation"
	"github.com/aptrent/aptrent/internal/wallet"
)

// ErrBusy rejects a submission started while another one is still awaiting
// finality. The UI prevents new submissions, it never aborts a running one.
var ErrBusy = errors.New("another submission is in progress")

// FinalityWaiter blocks until a submitted transaction hash is confirmed
// irreversible by the ledger.
type FinalityWaiter interface {
	WaitForTransaction(ctx context.Context, hash string) error
}

// Refresher triggers an out-of-band listing refresh.
type Refresher interface {
	Refresh()
}

// Notifier receives user-facing progress and outcome notifications. The
// token returned by Loading lets the completion notice replace the earlier
// in-progress one.
type Notifier interface {
	Loading(msg string) (token string)
	Success(msg, token string)
	Fault(f faults.Fault, token string)
}

type nopNotifier struct{}

func (nopNotifier) Loading(string) string      { return "" }
func (nopNotifier) Success(string, string)     {}
func (nopNotifier) Fault(faults.Fault, string) {}

// Service submits listing and rental transactions: validate, convert,
// sign-and-submit, await finality, refresh. One submission at a time; the
// busy flag always resets on return, whatever failed.
type Service struct {
	moduleAddress string
	waiter        FinalityWaiter
	refresher     Refresher
	notify        Notifier
	log           logging.Logger

	signer atomic.Pointer[signerBox]
	busy   atomic.Bool
}

// signer backends are swapped atomically so a connect during a poll tick
// needs no lock.
type signerBox struct{ s wallet.Signer }

func NewService(moduleAddress string, waiter FinalityWaiter, refresher Refresher, notify Notifier, log logging.Logger) *Service {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Service{
		moduleAddress: moduleAddress,
		waiter:        waiter,
		refresher:     refresher,
		notify:        notify,
		log:           log.With("component", "submitter"),
	}
}

// Connect attaches a signer backend. Passing nil detaches it.
func (s *Service) Connect(signer wallet.Signer) {
	if signer == nil {
		s.signer.Store(nil)
		return
	}
	s.signer.Store(&signerBox{s: signer})
}

// Signer returns the attached signer, or nil when not connected.
func (s *Service) Signer() wallet.Signer {
	box := s.signer.Load()
	if box == nil {
		return nil
	}
	return box.s
}

// Busy reports whether a submission is currently awaiting finality.
func (s *Service) Busy() bool { return s.busy.Load() }

// SubmitListing validates the raw form input and lists the equipment on
// chain. It returns after the transaction reached finality and a refresh
// was requested.
func (s *Service) SubmitListing(ctx context.Context, name, dailyRate, deposit string) error {
	in, err := validation.ListingInput(name, dailyRate, deposit)
	if err != nil {
		return s.fail(ctx, "", err)
	}

	payload := ledger.EntryFunctionPayload{
		Type:          "entry_function_payload",
		Function:      s.moduleAddress + "::rental::list_equipment",
		TypeArguments: []string{},
		Arguments: []string{
			in.Name,
			strconv.FormatUint(in.DailyRate, 10),
			strconv.FormatUint(in.DepositAmount, 10),
		},
	}

	return s.submit(ctx, payload, "Listing your equipment...", "Equipment listed successfully!")
}

// SubmitRental rents the listing owned by owner for the given number of
// days. The total obligation (rate × days + deposit) is computed and
// enforced ledger-side.
func (s *Service) SubmitRental(ctx context.Context, owner, days string) error {
	d, err := validation.RentalDays(days)
	if err != nil {
		return s.fail(ctx, "", err)
	}
	if owner == "" {
		return s.fail(ctx, "", fmt.Errorf("%w: no listing owner selected", faults.ErrValidation))
	}

	payload := ledger.EntryFunctionPayload{
		Type:          "entry_function_payload",
		Function:      s.moduleAddress + "::rental::rent_equipment",
		TypeArguments: []string{},
		Arguments:     []string{owner, strconv.FormatUint(d, 10)},
	}

	return s.submit(ctx, payload, "Processing your rental request...", "Equipment rented successfully!")
}

func (s *Service) submit(ctx context.Context, payload ledger.EntryFunctionPayload, loadingMsg, successMsg string) error {
	signer := s.Signer()
	if signer == nil {
		return s.fail(ctx, "", fmt.Errorf("submit %s: %w", payload.Function, faults.ErrNoWallet))
	}
	if s.moduleAddress == "" {
		return s.fail(ctx, "", ledger.ErrNoModuleAddress)
	}

	if !s.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer s.busy.Store(false)

	token := s.notify.Loading(loadingMsg)
	s.log.Info(ctx, "submitting", "function", payload.Function, "args", payload.Arguments)

	hash, err := signer.SignAndSubmit(ctx, payload)
	if err != nil {
		return s.fail(ctx, token, err)
	}
	if err := s.waiter.WaitForTransaction(ctx, hash); err != nil {
		return s.fail(ctx, token, err)
	}

	s.notify.Success(successMsg, token)
	s.refresher.Refresh()
	return nil
}

// fail classifies the error, logs the raw diagnostic, notifies the user
// with the safe message, and returns the classified fault.
func (s *Service) fail(ctx context.Context, token string, err error) error {
	f := faults.Classify(err)
	s.log.Error(ctx, "submission failed", "category", f.Category.String(), "err", err)
	s.notify.Fault(f, token)
	return f
}
