package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
)

func decode(t *testing.T, input []byte) string {
	t.Helper()

	r, err := enc.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	out, err := io.ReadAll(r)
	require.NoError(t, err)

	return string(out)
}

func TestPlainUTF8PassesThrough(t *testing.T) {
	assert.Equal(t, "Data;Importo\n", decode(t, []byte("Data;Importo\n")))
}

func TestUTF8BOMIsStripped(t *testing.T) {
	input := append([]byte{0xEF, 0xBB, 0xBF}, []byte("id,date")...)
	assert.Equal(t, "id,date", decode(t, input))
}

func TestUTF16LE(t *testing.T) {
	// "ab" as UTF-16 LE with BOM.
	input := []byte{0xFF, 0xFE, 'a', 0x00, 'b', 0x00}
	assert.Equal(t, "ab", decode(t, input))
}

func TestUTF16BE(t *testing.T) {
	input := []byte{0xFE, 0xFF, 0x00, 'a', 0x00, 'b'}
	assert.Equal(t, "ab", decode(t, input))
}

func TestLegacyBytesDecode(t *testing.T) {
	// 0xE9 is "é" in Windows-1252/ISO-8859-1 and invalid standalone UTF-8.
	got := decode(t, []byte{'c', 'a', 'f', 0xE9})
	assert.Equal(t, "café", got)
}
