package wallet

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/argon2"
)

// A key file holds a 32-byte ed25519 seed, either as a plain hex line or as
// a sealed JSON envelope produced by SealSeed. Sealed files need the owner's
// passphrase to open.

var ErrBadPassphrase = errors.New("wrong passphrase or corrupted key file")

type sealedSeed struct {
	Salt       []byte `json:"salt"`
	Nonce      []byte `json:"nonce"`
	Ciphertext []byte `json:"ciphertext"`
}

func deriveKey(passphrase, salt []byte) []byte {
	return argon2.IDKey(passphrase, salt, 1, 64*1024, 4, 32)
}

// SealSeed encrypts a seed under a passphrase-derived key and writes it to
// path with owner-only permissions.
func SealSeed(path string, seed, passphrase []byte) error {
	salt := make([]byte, 16)
	if _, err := rand.Read(salt); err != nil {
		return err
	}
	nonce := make([]byte, 12)
	if _, err := rand.Read(nonce); err != nil {
		return err
	}

	block, err := aes.NewCipher(deriveKey(passphrase, salt))
	if err != nil {
		return err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return err
	}

	env := sealedSeed{Salt: salt, Nonce: nonce, Ciphertext: aesgcm.Seal(nil, nonce, seed, nil)}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// readSeed loads a seed from path, unsealing it with the passphrase callback
// when the file is a sealed envelope.
func readSeed(path string, passphrase func() ([]byte, error)) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading key file: %w", err)
	}

	trimmed := strings.TrimSpace(string(data))
	if !strings.HasPrefix(trimmed, "{") {
		seed, err := hex.DecodeString(strings.TrimPrefix(trimmed, "0x"))
		if err != nil {
			return nil, fmt.Errorf("key file is neither hex nor a sealed envelope: %w", err)
		}
		return seed, nil
	}

	var env sealedSeed
	if err := json.Unmarshal([]byte(trimmed), &env); err != nil {
		return nil, fmt.Errorf("parsing sealed key file: %w", err)
	}
	if passphrase == nil {
		return nil, errors.New("key file is sealed but no passphrase prompt is available")
	}
	pw, err := passphrase()
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(deriveKey(pw, env.Salt))
	if err != nil {
		return nil, err
	}
	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	seed, err := aesgcm.Open(nil, env.Nonce, env.Ciphertext, nil)
	if err != nil {
		return nil, ErrBadPassphrase
	}
	return seed, nil
}
