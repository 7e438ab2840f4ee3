package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func TestDecodeText_PlainUTF8(t *testing.T) {
	got, err := DecodeText([]byte("Date,Description\n"))
	require.NoError(t, err)
	assert.Equal(t, "Date,Description\n", got)
}

func TestDecodeText_StripsUTF8BOM(t *testing.T) {
	got, err := DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "Date,Description"...))
	require.NoError(t, err)
	assert.Equal(t, "Date,Description", got)
}

func TestDecodeText_UTF16(t *testing.T) {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte("Date,Description\n09/01/2024,CAFÉ"))
	require.NoError(t, err)

	got, err := DecodeText(data)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description\n09/01/2024,CAFÉ", got)
}

func TestDecodeText_Windows1252(t *testing.T) {
	// 0xA3 is the pound sign in Windows-1252 and invalid as UTF-8.
	got, err := DecodeText([]byte("\xa312.50"))
	require.NoError(t, err)
	assert.Equal(t, "£12.50", got)
}

func TestDecodeText_FeedsEngine(t *testing.T) {
	text, err := DecodeText(append([]byte{0xEF, 0xBB, 0xBF}, "Date,Description,Debit,Credit,Balance\n09/01/2024,X,1,,9\n"...))
	require.NoError(t, err)

	res := Parse(text)
	require.True(t, res.Success)
	assert.Equal(t, "DBS", string(res.BankDetected))
}
