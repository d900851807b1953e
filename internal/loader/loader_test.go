package loader

import (
	"encoding/binary"
	"path/filepath"
	"testing"
	"unicode/utf16"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nboyd-dev/tally/internal/testutil"
)

func TestLoadPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.go")
	testutil.WriteFile(t, path, "package main\n")

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Equal(t, "package main\n", string(v.Data))
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.go")
	testutil.WriteFile(t, path, "")

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Empty(t, v.Data)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.go"), 0)
	assert.Error(t, err)
}

func TestLoadUTF8BOMSkipped(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bom.go")
	testutil.WriteBytes(t, path, append([]byte{0xEF, 0xBB, 0xBF}, "x\n"...))

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Equal(t, "x\n", string(v.Data))
}

func encodeUTF16(t *testing.T, s string, bigEndian bool) []byte {
	t.Helper()
	units := utf16.Encode([]rune(s))
	var out []byte
	if bigEndian {
		out = []byte{0xFE, 0xFF}
	} else {
		out = []byte{0xFF, 0xFE}
	}
	for _, u := range units {
		var pair [2]byte
		if bigEndian {
			binary.BigEndian.PutUint16(pair[:], u)
		} else {
			binary.LittleEndian.PutUint16(pair[:], u)
		}
		out = append(out, pair[:]...)
	}
	return out
}

func TestLoadUTF16LittleEndian(t *testing.T) {
	path := filepath.Join(t.TempDir(), "le.go")
	testutil.WriteBytes(t, path, encodeUTF16(t, "a\nb\n", false))

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Equal(t, "a\nb\n", string(v.Data))
}

func TestLoadUTF16BigEndian(t *testing.T) {
	path := filepath.Join(t.TempDir(), "be.go")
	testutil.WriteBytes(t, path, encodeUTF16(t, "héllo\n", true))

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Equal(t, "héllo\n", string(v.Data))
}

func TestLoadUTF16OddLengthIsNotText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "odd.go")
	testutil.WriteBytes(t, path, []byte{0xFF, 0xFE, 'a', 0x00, 'b'})

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.False(t, v.Text)
}

func TestLoadUTF16BOMOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bomonly.go")
	testutil.WriteBytes(t, path, []byte{0xFF, 0xFE})

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
	assert.Empty(t, v.Data)
}

func TestLoadBinaryDetection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bin.go")
	testutil.WriteBytes(t, path, []byte{'e', 'l', 'f', 0x00, 0x01, 0x02})

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.False(t, v.Text)
}

func TestLoadNULBeyondProbeIsText(t *testing.T) {
	// The heuristic inspects only the first 4 KiB.
	content := make([]byte, binaryProbeSize+2)
	for i := range content {
		content[i] = 'a'
	}
	content[binaryProbeSize+1] = 0x00

	path := filepath.Join(t.TempDir(), "late-nul.go")
	testutil.WriteBytes(t, path, content)

	v, err := Load(path, 0)
	require.NoError(t, err)
	assert.True(t, v.Text)
}

func TestLoadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.go")
	testutil.WriteFile(t, path, "0123456789")

	_, err := Load(path, 4)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTooLarge)
}
