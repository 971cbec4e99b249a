package pda

import (
	"crypto/ed25519"
	"encoding/hex"
	"fmt"
	"pda-miner-sol/internal/consts"
	"pda-miner-sol/internal/types"
	"testing"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHex(t *testing.T, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestDerive_MatchesSDK(t *testing.T) {
	raw := mustHex(t, "ab5801a7d398351b8be11c439e05c5b3259aec9b")

	got, err := Derive(consts.MinerProgram, raw)
	require.NoError(t, err)

	want, bump, err := common.FindProgramAddress([][]byte{raw}, consts.MinerProgram)
	require.NoError(t, err)

	assert.Equal(t, want, got.PublicKey)
	assert.Equal(t, bump, got.Bump)
	assert.Equal(t, want.ToBase58(), got.String())
}

func TestDerive_Deterministic(t *testing.T) {
	raw := mustHex(t, "ab5801a7d398351b8be11c439e05c5b3259aec9b")

	first, err := Derive(consts.MinerProgram, raw)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Derive(consts.MinerProgram, raw)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestDerive_OffCurve(t *testing.T) {
	for i := 0; i < 32; i++ {
		raw := make([]byte, 20)
		raw[0] = byte(i)
		addr, err := Derive(consts.MinerProgram, raw)
		require.NoError(t, err)
		assert.False(t, isOnCurve(addr.PublicKey), "seed %d", i)
	}
}

func TestDerive_Distinct(t *testing.T) {
	seen := make(map[common.PublicKey]string)
	for i := 0; i < 64; i++ {
		raw := make([]byte, 20)
		raw[19] = byte(i)
		raw[0] = byte(i * 7)
		addr, err := Derive(consts.MinerProgram, raw)
		require.NoError(t, err)

		key := fmt.Sprintf("%x", raw)
		prev, dup := seen[addr.PublicKey]
		assert.False(t, dup, "seed %s collides with %s", key, prev)
		seen[addr.PublicKey] = key
	}

	// 同一 seed 不同 program 也应得到不同地址
	raw := make([]byte, 20)
	a, err := Derive(consts.MinerProgram, raw)
	require.NoError(t, err)
	b, err := Derive(consts.SystemProgram, raw)
	require.NoError(t, err)
	assert.NotEqual(t, a.PublicKey, b.PublicKey)
}

func TestDerive_SeedTooLong(t *testing.T) {
	_, err := Derive(consts.MinerProgram, make([]byte, MaxSeedLength+1))
	require.Error(t, err)
	assert.True(t, types.IsKind(err, types.KindDerivationExhausted))
}

func TestIsOnCurve(t *testing.T) {
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	assert.True(t, isOnCurve(common.PublicKeyFromBytes(pub)))
}
