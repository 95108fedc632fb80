package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("  Drill  \n"))

	got, err := GetSimpleText(reader, "Equipment name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Drill", got)
	assert.Contains(t, out.String(), "Equipment name")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("Camera"))

	got, err := GetSimpleText(reader, "Equipment name", &out)
	require.NoError(t, err)
	assert.Equal(t, "Camera", got)
}

func TestGetPassphrase_UsesTerminalReader(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) { return []byte("hunter2"), nil }
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := GetPassphrase(&out)
	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), pw)
	assert.Contains(t, out.String(), "passphrase")
}
