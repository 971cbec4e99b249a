package chain

import (
	"fmt"

	"github.com/blocto/solana-go-sdk/rpc"
)

// TransactionError 表示交易已上链但执行失败（例如 PDA 已初始化）
type TransactionError struct {
	Signature string
	Err       any // RPC 返回的原始错误结构
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Signature, e.Err)
}

var commitmentRank = map[rpc.Commitment]int{
	rpc.CommitmentProcessed: 1,
	rpc.CommitmentConfirmed: 2,
	rpc.CommitmentFinalized: 3,
}

func parseCommitment(s string) rpc.Commitment {
	c := rpc.Commitment(s)
	if _, ok := commitmentRank[c]; ok {
		return c
	}
	return rpc.CommitmentConfirmed
}

// evaluateStatus 判断签名状态是否已达到 want 级别；执行失败时返回 *TransactionError
func evaluateStatus(sig string, status *rpc.SignatureStatus, want rpc.Commitment) (bool, error) {
	if status == nil {
		return false, nil // 节点还未看到该交易
	}
	if status.Err != nil {
		return false, &TransactionError{Signature: sig, Err: status.Err}
	}
	if status.ConfirmationStatus == nil {
		// 老节点不返回 confirmationStatus，Confirmations 为 nil 表示已 finalized
		return status.Confirmations == nil, nil
	}
	return commitmentRank[*status.ConfirmationStatus] >= commitmentRank[want], nil
}
