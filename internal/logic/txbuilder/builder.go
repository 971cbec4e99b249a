package txbuilder

import (
	"errors"
	"fmt"
	"pda-miner-sol/internal/logic/payload"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// 指令在交易中的固定位置。compute budget 指令是交易级设置，必须位于程序调用之前。
const (
	IndexComputeUnitLimit = iota
	IndexComputeUnitPrice
	IndexProgramCall
	InstructionCount
)

var ErrSignerMismatch = errors.New("signer is not the fee payer")

// Params 构造交易所需的全部输入
type Params struct {
	ProgramID        common.PublicKey // 目标程序
	SystemProgramID  common.PublicKey // 程序内部创建 PDA 账户时使用
	Payer            common.PublicKey // 付款人，同时是唯一签名者
	Account          common.PublicKey // 派生出的 PDA 计数账户
	Envelope         []byte           // borsh 封装后的地址（u32 前缀 + 20 字节）
	PriorityFee      uint64           // 每 CU 的 micro-lamports
	ComputeUnitLimit uint32           // CU 上限
}

// Unsigned 是未签名的交易骨架：指令顺序已确定，只差 blockhash 和签名
type Unsigned struct {
	Payer        common.PublicKey
	Instructions []types.Instruction
}

// Build 按固定顺序组装三条指令：CU 上限 → CU 价格 → 程序调用。不做签名。
// 程序调用的 data 是 envelope 再封装一层 Vec<u8> 的结果。
func Build(p Params) Unsigned {
	data := payload.EncodeInstructionData(p.Envelope)

	call := types.Instruction{
		ProgramID: p.ProgramID,
		Accounts: []types.AccountMeta{
			{PubKey: p.Payer, IsSigner: true, IsWritable: true},
			{PubKey: p.Account, IsSigner: false, IsWritable: true},
			{PubKey: p.SystemProgramID, IsSigner: false, IsWritable: false},
		},
		Data: data,
	}

	instrs := make([]types.Instruction, InstructionCount)
	instrs[IndexComputeUnitLimit] = SetComputeUnitLimit(p.ComputeUnitLimit)
	instrs[IndexComputeUnitPrice] = SetComputeUnitPrice(p.PriorityFee)
	instrs[IndexProgramCall] = call

	return Unsigned{
		Payer:        p.Payer,
		Instructions: instrs,
	}
}

// Sign 绑定 blockhash 并由付款人签名，signer 必须就是 Payer
func (u Unsigned) Sign(recentBlockhash string, signer types.Account) (types.Transaction, error) {
	if signer.PublicKey != u.Payer {
		return types.Transaction{}, fmt.Errorf("%w: signer=%s payer=%s", ErrSignerMismatch, signer.PublicKey.ToBase58(), u.Payer.ToBase58())
	}

	tx, err := types.NewTransaction(types.NewTransactionParam{
		Message: types.NewMessage(types.NewMessageParam{
			FeePayer:        u.Payer,
			RecentBlockhash: recentBlockhash,
			Instructions:    u.Instructions,
		}),
		Signers: []types.Account{signer},
	})
	if err != nil {
		return types.Transaction{}, fmt.Errorf("sign transaction: %w", err)
	}
	return tx, nil
}
