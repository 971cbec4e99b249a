package txbuilder

import (
	"crypto/ed25519"
	"encoding/binary"
	"encoding/hex"
	"pda-miner-sol/internal/consts"
	"pda-miner-sol/internal/logic/payload"
	"pda-miner-sol/internal/logic/pda"
	"testing"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildExample(t *testing.T, payer types.Account, fee uint64) (Unsigned, Params) {
	t.Helper()
	raw, err := payload.DecodeHex("0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B")
	require.NoError(t, err)
	addr, err := pda.Derive(consts.MinerProgram, raw)
	require.NoError(t, err)

	p := Params{
		ProgramID:        consts.MinerProgram,
		SystemProgramID:  consts.SystemProgram,
		Payer:            payer.PublicKey,
		Account:          addr.PublicKey,
		Envelope:         payload.EncodeEnvelope(raw),
		PriorityFee:      fee,
		ComputeUnitLimit: consts.DefaultComputeUnitLimit,
	}
	return Build(p), p
}

func TestBuild_Order(t *testing.T) {
	payer := types.NewAccount()
	u, p := buildExample(t, payer, 1000)

	require.Len(t, u.Instructions, 3)

	limit := u.Instructions[IndexComputeUnitLimit]
	assert.Equal(t, consts.ComputeBudgetProgram, limit.ProgramID)
	require.Len(t, limit.Data, 5)
	assert.Equal(t, byte(2), limit.Data[0])
	assert.Equal(t, uint32(1_200_000), binary.LittleEndian.Uint32(limit.Data[1:]))

	price := u.Instructions[IndexComputeUnitPrice]
	assert.Equal(t, consts.ComputeBudgetProgram, price.ProgramID)
	require.Len(t, price.Data, 9)
	assert.Equal(t, byte(3), price.Data[0])
	assert.Equal(t, uint64(1000), binary.LittleEndian.Uint64(price.Data[1:]))

	call := u.Instructions[IndexProgramCall]
	assert.Equal(t, consts.MinerProgram, call.ProgramID)
	// 外层前缀 24 + 内层前缀 20 + 地址
	require.Len(t, call.Data, 28)
	assert.Equal(t, uint32(24), binary.LittleEndian.Uint32(call.Data[:4]))
	assert.Equal(t, p.Envelope, call.Data[4:])
	assert.Equal(t, uint32(20), binary.LittleEndian.Uint32(call.Data[4:8]))
	assert.Equal(t, []types.AccountMeta{
		{PubKey: payer.PublicKey, IsSigner: true, IsWritable: true},
		{PubKey: p.Account, IsSigner: false, IsWritable: true},
		{PubKey: consts.SystemProgram, IsSigner: false, IsWritable: false},
	}, call.Accounts)
}

func TestBuild_ProgramCallWireBytes(t *testing.T) {
	u, _ := buildExample(t, types.NewAccount(), 1000)

	want, err := hex.DecodeString("18000000" + "14000000" + "ab5801a7d398351b8be11c439e05c5b3259aec9b")
	require.NoError(t, err)
	assert.Equal(t, want, u.Instructions[IndexProgramCall].Data)

	env, err := payload.DecodeInstructionData(u.Instructions[IndexProgramCall].Data)
	require.NoError(t, err)
	raw, err := payload.DecodeEnvelope(env)
	require.NoError(t, err)
	assert.Equal(t, want[8:], raw)
}

func TestBuild_EnvelopeCopied(t *testing.T) {
	payer := types.NewAccount()
	u, p := buildExample(t, payer, 1)

	before := append([]byte(nil), p.Envelope...)
	p.Envelope[4] ^= 0xff
	assert.Equal(t, before, u.Instructions[IndexProgramCall].Data[4:])
}

func TestBuild_ZeroFee(t *testing.T) {
	u, _ := buildExample(t, types.NewAccount(), 0)
	assert.Equal(t, uint64(0), binary.LittleEndian.Uint64(u.Instructions[IndexComputeUnitPrice].Data[1:]))
}

func TestSign(t *testing.T) {
	payer := types.NewAccount()
	u, _ := buildExample(t, payer, 1000)

	blockhash := types.NewAccount().PublicKey.ToBase58()
	tx, err := u.Sign(blockhash, payer)
	require.NoError(t, err)

	require.Len(t, tx.Signatures, 1)
	msg, err := tx.Message.Serialize()
	require.NoError(t, err)
	assert.True(t, ed25519.Verify(payer.PublicKey.Bytes(), msg, tx.Signatures[0]))

	// 编译后的指令顺序与构造顺序一致
	require.Len(t, tx.Message.Instructions, 3)
	programs := make([]string, 0, 3)
	for _, ci := range tx.Message.Instructions {
		programs = append(programs, tx.Message.Accounts[ci.ProgramIDIndex].ToBase58())
	}
	assert.Equal(t, []string{
		consts.ComputeBudgetProgramIdStr,
		consts.ComputeBudgetProgramIdStr,
		consts.MinerProgramStr,
	}, programs)

	// 付款人是第一个账户
	assert.Equal(t, payer.PublicKey, tx.Message.Accounts[0])
}

func TestSign_WrongSigner(t *testing.T) {
	u, _ := buildExample(t, types.NewAccount(), 1000)
	_, err := u.Sign(types.NewAccount().PublicKey.ToBase58(), types.NewAccount())
	assert.ErrorIs(t, err, ErrSignerMismatch)
}
