package chain

import (
	"context"
	"errors"
	"fmt"
	"pda-miner-sol/internal/config"
	mtypes "pda-miner-sol/internal/types"
	"pda-miner-sol/pkg/logger"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/rpc"
	"github.com/blocto/solana-go-sdk/types"
)

const (
	defaultConfirmTimeout = 90 * time.Second
	defaultPollInterval   = 500 * time.Millisecond
)

var (
	ErrConfirmTimeout = errors.New("transaction not confirmed before timeout")
	ErrNilClient      = errors.New("rpc client init failed")
)

// rpcClient 是用到的 blocto client 方法子集，便于测试替换
type rpcClient interface {
	SendTransaction(ctx context.Context, tx types.Transaction) (string, error)
	GetSignatureStatus(ctx context.Context, signature string) (*rpc.SignatureStatus, error)
	GetAccountInfo(ctx context.Context, base58Addr string) (client.AccountInfo, error)
}

// RpcService 封装 Solana RPC：取 blockhash、提交并等待确认、读账户数据。
// 无会话状态，可在多个 worker 间共享。
type RpcService struct {
	client          rpcClient
	latestBlockhash func(ctx context.Context) (string, error)
	commitment      rpc.Commitment
	confirmTimeout  time.Duration
	pollInterval    time.Duration
}

func NewRpcService(c *config.MinerConfig) (*RpcService, error) {
	cli := client.NewClient(c.RpcEndpoint)
	if cli == nil {
		return nil, ErrNilClient
	}
	s := newRpcService(cli, func(ctx context.Context) (string, error) {
		res, err := cli.GetLatestBlockhash(ctx)
		if err != nil {
			return "", err
		}
		return res.Blockhash, nil
	}, &c.ConfirmConf)
	logger.Infof("[RpcService] endpoint=%s commitment=%s confirmTimeout=%v", c.RpcEndpoint, s.commitment, s.confirmTimeout)
	return s, nil
}

func newRpcService(cli rpcClient, latest func(ctx context.Context) (string, error), c *config.ConfirmConfig) *RpcService {
	s := &RpcService{
		client:          cli,
		latestBlockhash: latest,
		commitment:      parseCommitment(c.Commitment),
		confirmTimeout:  c.Timeout(),
		pollInterval:    c.PollInterval(),
	}
	if s.confirmTimeout <= 0 {
		s.confirmTimeout = defaultConfirmTimeout
	}
	if s.pollInterval <= 0 {
		s.pollInterval = defaultPollInterval
	}
	return s
}

// LatestCheckpoint 返回最新 blockhash
func (s *RpcService) LatestCheckpoint(ctx context.Context) (string, error) {
	blockhash, err := s.latestBlockhash(ctx)
	if err != nil {
		return "", fmt.Errorf("get latest blockhash: %w", err)
	}
	if _, err := mtypes.HashFromBase58(blockhash); err != nil {
		return "", fmt.Errorf("malformed blockhash from rpc: %w", err)
	}
	return blockhash, nil
}

// SubmitAndConfirm 提交交易并轮询签名状态直到达到目标确认级别。只提交一次，不重发。
func (s *RpcService) SubmitAndConfirm(ctx context.Context, tx types.Transaction) (string, error) {
	sig, err := s.client.SendTransaction(ctx, tx)
	if err != nil {
		return "", fmt.Errorf("send transaction: %w", err)
	}
	logger.Debugf("[RpcService] sent tx=%s, waiting for %s", sig, s.commitment)

	ctx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		status, err := s.client.GetSignatureStatus(ctx, sig)
		if err != nil {
			// 单次查询失败只记录，继续等待下一轮
			logger.Warnf("[RpcService] get signature status failed: tx=%s err=%v", sig, err)
		} else {
			done, txErr := evaluateStatus(sig, status, s.commitment)
			if txErr != nil {
				return sig, txErr
			}
			if done {
				return sig, nil
			}
		}

		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				return sig, fmt.Errorf("%w: tx=%s after %v", ErrConfirmTimeout, sig, s.confirmTimeout)
			}
			return sig, ctx.Err()
		case <-ticker.C:
		}
	}
}

// ReadAccountBytes 读取账户数据；账户不存在时返回空切片
func (s *RpcService) ReadAccountBytes(ctx context.Context, addr common.PublicKey) ([]byte, error) {
	info, err := s.client.GetAccountInfo(ctx, addr.ToBase58())
	if err != nil {
		return nil, fmt.Errorf("get account info %s: %w", addr.ToBase58(), err)
	}
	return info.Data, nil
}
