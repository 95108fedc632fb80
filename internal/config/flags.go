package config

import (
	"flag"
	"os"
	"time"

	"github.com/aptrent/aptrent/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-n string   fullnode REST base URL
//	-m string   rental program (module) address
//	-k string   local signer key file
//	-i int      poll interval in seconds
//	-v          verbose diagnostic logging
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-m", "-k", "-i", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.NodeURL, "n", cfg.NodeURL, "fullnode REST base URL")
	fs.StringVar(&cfg.ModuleAddress, "m", cfg.ModuleAddress, "rental program address")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "local signer key file")
	pollSecs := fs.Int("i", int(cfg.PollInterval.Seconds()), "poll interval (in seconds)")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "verbose diagnostic logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	if *pollSecs > 0 {
		cfg.PollInterval = time.Duration(*pollSecs) * time.Second
	}
}
