package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/aptrent/aptrent/internal/config"
	"github.com/aptrent/aptrent/internal/ledger"
	"github.com/aptrent/aptrent/internal/logging"
	"github.com/aptrent/aptrent/internal/rental"
	"github.com/aptrent/aptrent/internal/units"
	"github.com/aptrent/aptrent/internal/wallet"
)

// App wires the client together: node client, listing reconciler, and the
// transaction submitter, driven by an interactive shell. The reconciler runs
// for exactly as long as the shell does.
type App struct {
	cfg     *config.Config
	log     logging.Logger
	node    *ledger.NodeClient
	service *rental.Service
	rec     *rental.Reconciler

	reader *bufio.Reader
	out    io.Writer
}

func NewApp(cfg *config.Config, log logging.Logger) *App {
	node := ledger.NewNodeClient(cfg.NodeURL, log)
	query := ledger.NewQueryClient(node, cfg.ModuleAddress, log)
	rec := rental.NewReconciler(query, cfg.PollInterval, log, nil)
	service := rental.NewService(cfg.ModuleAddress, node, rec, NewConsoleNotifier(os.Stdout), log)

	return &App{
		cfg:     cfg,
		log:     log,
		node:    node,
		service: service,
		rec:     rec,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
}

// Run starts the reconciler, enters the REPL, and tears the reconciler down
// when the shell exits.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the equipment rental client (type 'help' for commands)")
	a.rec.Start(ctx)
	defer a.rec.Stop()

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(os.Stdin))
}

func (a *App) isConnected() bool {
	return a.service.Signer() != nil
}

func (a *App) getStatus() string {
	if s := a.service.Signer(); s != nil {
		addr := s.Address()
		if len(addr) > 10 {
			addr = addr[:10] + "…"
		}
		return fmt.Sprintf("(%s)", addr)
	}
	return "(no wallet)"
}

// Connect unlocks the configured key file and attaches it as the signer.
func (a *App) Connect(ctx context.Context) error {
	signer, err := wallet.Connect(ctx, wallet.Config{
		Backends: a.cfg.WalletBackends,
		KeyFile:  a.cfg.KeyFile,
	}, wallet.BackendLocalKey, a.node, func() ([]byte, error) {
		return GetPassphrase(a.out)
	})
	if err != nil {
		a.log.Error(ctx, "wallet connect failed", "err", err)
		fmt.Fprintf(a.out, "Could not open wallet: %v\n", err)
		return err
	}

	a.service.Connect(signer)
	fmt.Fprintf(a.out, "Connected as %s\n", signer.Address())
	return nil
}

// List prints the current snapshot. The snapshot is whatever the last
// successful poll returned; an empty list right after startup usually means
// the first fetch has not finished yet.
func (a *App) List(ctx context.Context) error {
	listings := a.rec.Snapshot()
	if len(listings) == 0 {
		fmt.Fprintln(a.out, "No equipment available")
		return nil
	}

	for i, l := range listings {
		state := "available"
		if !l.Available {
			state = "rented"
		}
		fmt.Fprintf(a.out, "%d. %s — %s APT/day, deposit %s APT (%s)\n   owner %s\n",
			i+1, l.Name, units.FromOctas(l.DailyRate), units.FromOctas(l.DepositAmount), state, l.Owner)
	}
	return nil
}

// Add prompts for the listing fields and submits a list_equipment
// transaction. Validation happens inside the service; raw strings go in.
func (a *App) Add(ctx context.Context) error {
	name, err := GetSimpleText(a.reader, "Equipment name", a.out)
	if err != nil {
		return err
	}
	rate, err := GetSimpleText(a.reader, "Daily rate (APT)", a.out)
	if err != nil {
		return err
	}
	deposit, err := GetSimpleText(a.reader, "Security deposit (APT)", a.out)
	if err != nil {
		return err
	}

	return a.service.SubmitListing(ctx, name, rate, deposit)
}

// Rent prompts for the target listing and period and submits a
// rent_equipment transaction.
func (a *App) Rent(ctx context.Context) error {
	owner, err := GetSimpleText(a.reader, "Owner address of the listing", a.out)
	if err != nil {
		return err
	}
	days, err := GetSimpleText(a.reader, "Number of days (1-365)", a.out)
	if err != nil {
		return err
	}

	return a.service.SubmitRental(ctx, owner, days)
}

// Refresh forces a listing fetch outside the poll cadence.
func (a *App) Refresh(ctx context.Context) error {
	a.rec.Refresh()
	fmt.Fprintln(a.out, "Refresh requested")
	return nil
}

// Status prints node health and wallet state.
func (a *App) Status(ctx context.Context) error {
	info, err := a.node.LedgerInfo(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Node:   unreachable (%s)\n", a.cfg.NodeURL)
	} else {
		fmt.Fprintf(a.out, "Node:   %s (chain %d, version %s)\n", a.cfg.NodeURL, info.ChainID, info.LedgerVersion)
	}

	if s := a.service.Signer(); s != nil {
		fmt.Fprintf(a.out, "Wallet: %s\n", s.Address())
	} else {
		fmt.Fprintln(a.out, "Wallet: not connected")
	}
	fmt.Fprintf(a.out, "Module: %s\n", a.cfg.ModuleAddress)
	if a.service.Busy() {
		fmt.Fprintln(a.out, "A submission is in progress")
	}
	return nil
}
