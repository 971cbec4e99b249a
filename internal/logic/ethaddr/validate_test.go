package ethaddr

import (
	"encoding/hex"
	"pda-miner-sol/internal/types"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const checksummed = "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B"

func TestValidate_Checksummed(t *testing.T) {
	addr, err := Validate(checksummed)
	require.NoError(t, err)

	assert.Equal(t, checksummed, addr.Raw())
	assert.Equal(t, checksummed, addr.Hex())
	assert.Equal(t, "ab5801a7d398351b8be11c439e05c5b3259aec9b", hex.EncodeToString(addr.Bytes()))
	assert.Len(t, addr.Bytes(), 20)

	// 不带前缀同样接受
	_, err = Validate(strings.TrimPrefix(checksummed, "0x"))
	assert.NoError(t, err)
}

func TestValidate_BytesIsCopy(t *testing.T) {
	addr, err := Validate(checksummed)
	require.NoError(t, err)

	b := addr.Bytes()
	b[0] = 0
	assert.Equal(t, byte(0xab), addr.Bytes()[0])
}

func TestValidate_Rejects(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"all lowercase", "0xab5801a7d398351b8be11c439e05c5b3259aec9b"},
		{"all uppercase", "0xAB5801A7D398351B8BE11C439E05C5B3259AEC9B"},
		{"one char case flipped", "0xab5801a7D398351b8bE11C439e05C5B3259aeC9B"},
		{"39 hex chars", "0xAb5801a7D398351b8bE11C439e05C5B3259aeC9"},
		{"41 hex chars", checksummed + "0"},
		{"non hex", "0x" + strings.Repeat("ZZ", 20)},
		{"empty", ""},
		{"prefix only", "0x"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Validate(tc.input)
			require.Error(t, err)
			assert.True(t, types.IsKind(err, types.KindInvalidChecksum), "got %v", err)
		})
	}
}
