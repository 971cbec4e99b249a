package svc

import (
	"fmt"
	"io"
	"pda-miner-sol/internal/chain"
	"pda-miner-sol/internal/config"
	"pda-miner-sol/internal/consts"
	"pda-miner-sol/internal/logic/worker"
	"pda-miner-sol/internal/types"
	"pda-miner-sol/internal/wallet"
	"pda-miner-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/common"
	soltypes "github.com/blocto/solana-go-sdk/types"
)

// ServiceContext 包含一次运行所需的共享资源（全部只读）
type ServiceContext struct {
	Config    config.MinerConfig
	Rpc       *chain.RpcService
	Payer     soltypes.Account
	ProgramID common.PublicKey
}

// NewServiceContext 加载密钥、解析程序 ID、初始化 RPC。任一步骤失败都在启动 worker 之前返回。
func NewServiceContext(c config.MinerConfig) (*ServiceContext, error) {
	programID, err := types.TryPubkeyFromBase58(c.ProgramID)
	if err != nil {
		return nil, fmt.Errorf("invalid program_id: %w", err)
	}

	payer, err := wallet.LoadKeypair(c.KeypairPath)
	if err != nil {
		logger.Errorf("[ServiceContext] 加载密钥失败: %v", err)
		return nil, err
	}

	rpcService, err := chain.NewRpcService(&c)
	if err != nil {
		return nil, err
	}

	logger.Infof("[ServiceContext] payer=%s program=%s", payer.PublicKey.ToBase58(), programID.ToBase58())
	return &ServiceContext{
		Config:    c,
		Rpc:       rpcService,
		Payer:     payer,
		ProgramID: programID,
	}, nil
}

// WorkerDeps 构造 worker 共享依赖
func (sc *ServiceContext) WorkerDeps(out io.Writer) worker.Deps {
	limit := sc.Config.ComputeUnitLimit
	if limit == 0 {
		limit = consts.DefaultComputeUnitLimit
	}
	return worker.Deps{
		Network:          sc.Rpc,
		Signer:           sc.Payer,
		ProgramID:        sc.ProgramID,
		SystemProgramID:  consts.SystemProgram,
		ComputeUnitLimit: limit,
		Out:              out,
	}
}

// WorkerCount 返回并发 worker 数
func (sc *ServiceContext) WorkerCount() int {
	if sc.Config.Workers <= 0 {
		return consts.DefaultWorkerCount
	}
	return sc.Config.Workers
}
