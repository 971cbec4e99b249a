package txbuilder

import (
	"fmt"
	"pda-miner-sol/internal/consts"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/near/borsh-go"
)

// ComputeBudget 程序指令判别值
const (
	ixSetComputeUnitLimit uint8 = 2
	ixSetComputeUnitPrice uint8 = 3
)

type setComputeUnitLimitData struct {
	Instruction uint8
	Units       uint32
}

type setComputeUnitPriceData struct {
	Instruction   uint8
	MicroLamports uint64
}

// SetComputeUnitLimit 设置整笔交易的 CU 上限
func SetComputeUnitLimit(units uint32) types.Instruction {
	return types.Instruction{
		ProgramID: consts.ComputeBudgetProgram,
		Accounts:  []types.AccountMeta{},
		Data:      mustSerialize(setComputeUnitLimitData{Instruction: ixSetComputeUnitLimit, Units: units}),
	}
}

// SetComputeUnitPrice 设置每 CU 的优先费（micro-lamports）
func SetComputeUnitPrice(microLamports uint64) types.Instruction {
	return types.Instruction{
		ProgramID: consts.ComputeBudgetProgram,
		Accounts:  []types.AccountMeta{},
		Data:      mustSerialize(setComputeUnitPriceData{Instruction: ixSetComputeUnitPrice, MicroLamports: microLamports}),
	}
}

func mustSerialize(v any) []byte {
	data, err := borsh.Serialize(v)
	if err != nil {
		panic(fmt.Errorf("borsh serialize %T: %w", v, err))
	}
	return data
}
