package consts

import "pda-miner-sol/internal/types"

// Base58 地址常量（可读性高，适合配置与日志使用）
const (
	//  Programs
	SystemProgramStr          = "11111111111111111111111111111111"
	ComputeBudgetProgramIdStr = "ComputeBudget111111111111111111111111111111"

	// 目标计数程序（devnet），每个以太坊地址对应一个 PDA 计数账户
	MinerProgramStr = "64SYet8RCT5ayZpMGbhcpk3vmt8UkwjZq8uy8Sd6V46A"
)

var (
	// Programs
	SystemProgram        = types.MustPubkeyFromBase58(SystemProgramStr)
	ComputeBudgetProgram = types.MustPubkeyFromBase58(ComputeBudgetProgramIdStr)
	MinerProgram         = types.MustPubkeyFromBase58(MinerProgramStr)
)
