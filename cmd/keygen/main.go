// Command keygen creates the ed25519 seed file the local wallet backend
// signs with. By default the seed is written as plain hex; with -seal it is
// encrypted under a passphrase read from the terminal.
package main

import (
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"

	"golang.org/x/term"

	"github.com/aptrent/aptrent/internal/wallet"
)

func main() {
	out := flag.String("o", "wallet.key", "output key file")
	seal := flag.Bool("seal", false, "encrypt the seed under a passphrase")
	flag.Parse()

	if _, err := os.Stat(*out); err == nil {
		log.Fatalf("%s already exists, refusing to overwrite", *out)
	}

	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		log.Fatalf("generating seed: %v", err)
	}

	if *seal {
		fmt.Print("Passphrase: ")
		pw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			log.Fatalf("reading passphrase: %v", err)
		}
		if len(pw) == 0 {
			log.Fatal("empty passphrase")
		}
		if err := wallet.SealSeed(*out, seed, pw); err != nil {
			log.Fatalf("sealing seed: %v", err)
		}
	} else {
		if err := os.WriteFile(*out, []byte(hex.EncodeToString(seed)), 0o600); err != nil {
			log.Fatalf("writing key file: %v", err)
		}
	}

	fmt.Printf("Wrote %s\n", *out)
}
