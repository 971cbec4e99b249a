package worker

import (
	"context"
	"io"
	"pda-miner-sol/internal/logic/ethaddr"
	"pda-miner-sol/internal/logic/payload"
	"pda-miner-sol/internal/logic/pda"
	"pda-miner-sol/internal/logic/txbuilder"
	mtypes "pda-miner-sol/internal/types"
	"pda-miner-sol/pkg/logger"

	"github.com/blocto/solana-go-sdk/common"
	"github.com/blocto/solana-go-sdk/types"
)

// Network 是 worker 依赖的外部 RPC 服务
type Network interface {
	LatestCheckpoint(ctx context.Context) (string, error)
	SubmitAndConfirm(ctx context.Context, tx types.Transaction) (string, error)
	ReadAccountBytes(ctx context.Context, addr common.PublicKey) ([]byte, error)
}

// Deps 是所有 worker 共享的只读依赖
type Deps struct {
	Network          Network
	Signer           types.Account // 只读共享，不会被修改
	ProgramID        common.PublicKey
	SystemProgramID  common.PublicKey
	ComputeUnitLimit uint32
	Out              io.Writer // 报告输出
}

// Input 是每个 worker 拿到的输入副本
type Input struct {
	Address     ethaddr.Address
	PriorityFee uint64
}

// State 表示一次提交周期所处的阶段
type State int

const (
	StateInit State = iota
	StateBuilt
	StateSigned
	StateSubmitted
	StateConfirmed
	StateFailed
	StateReported
)

var stateNames = []string{"Init", "Built", "Signed", "Submitted", "Confirmed", "Failed", "Reported"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return "Unknown"
}

type worker struct {
	id    int
	deps  Deps
	in    Input
	state State
}

func newWorker(id int, deps Deps, in Input) *worker {
	return &worker{id: id, deps: deps, in: in, state: StateInit}
}

func (w *worker) transition(next State) {
	logger.Debugf("[Worker %d] %s -> %s", w.id, w.state, next)
	w.state = next
}

// run 执行完整周期：构造 → 签名 → 提交并确认 → 读取 PDA → 报告。
// 任何阶段失败都只影响本 worker，最终一定产出一份报告。
func (w *worker) run(ctx context.Context, out io.Writer) Report {
	r := Report{Worker: w.id}

	logger.Infof("[Worker %d] sending transaction for address %s with priority fee %d", w.id, w.in.Address.Hex(), w.in.PriorityFee)

	account, tx, err := w.prepare(ctx)
	if account != nil {
		r.Account = account.String()
	}
	if err != nil {
		r.SubmitErr = err
		w.transition(StateFailed)
	} else {
		w.transition(StateSubmitted)
		sig, err := w.deps.Network.SubmitAndConfirm(ctx, tx)
		r.Signature = sig
		if err != nil {
			r.SubmitErr = mtypes.NewError(mtypes.KindSubmissionFailure, "worker.submit", err)
			w.transition(StateFailed)
		} else {
			w.transition(StateConfirmed)
		}
	}
	r.Outcome = w.state

	// 无论提交成功与否都读取账户：其他 worker 可能已经改写了它
	if account != nil {
		r.Counter, r.CounterOK, r.ReadErr = w.readCounter(ctx, account.PublicKey)
	} else {
		r.ReadErr = mtypes.Errorf(mtypes.KindAccountReadFailure, "worker.read", "no derived account")
	}

	w.transition(StateReported)
	r.State = w.state
	writeReport(out, r)
	return r
}

// prepare 完成提交前的全部步骤，返回已签名交易
func (w *worker) prepare(ctx context.Context) (*pda.Address, types.Transaction, error) {
	raw, err := payload.DecodeHex(w.in.Address.Hex())
	if err != nil {
		return nil, types.Transaction{}, err
	}

	account, err := pda.Derive(w.deps.ProgramID, raw)
	if err != nil {
		return nil, types.Transaction{}, err
	}

	unsigned := txbuilder.Build(txbuilder.Params{
		ProgramID:        w.deps.ProgramID,
		SystemProgramID:  w.deps.SystemProgramID,
		Payer:            w.deps.Signer.PublicKey,
		Account:          account.PublicKey,
		Envelope:         payload.EncodeEnvelope(raw),
		PriorityFee:      w.in.PriorityFee,
		ComputeUnitLimit: w.deps.ComputeUnitLimit,
	})
	w.transition(StateBuilt)

	// 只取一次 blockhash，过期与否由链上判定，不做重取
	blockhash, err := w.deps.Network.LatestCheckpoint(ctx)
	if err != nil {
		return &account, types.Transaction{}, mtypes.NewError(mtypes.KindSubmissionFailure, "worker.checkpoint", err)
	}
	tx, err := unsigned.Sign(blockhash, w.deps.Signer)
	if err != nil {
		return &account, types.Transaction{}, mtypes.NewError(mtypes.KindSubmissionFailure, "worker.sign", err)
	}
	w.transition(StateSigned)
	return &account, tx, nil
}

func (w *worker) readCounter(ctx context.Context, addr common.PublicKey) (uint32, bool, error) {
	data, err := w.deps.Network.ReadAccountBytes(ctx, addr)
	if err != nil {
		return 0, false, mtypes.NewError(mtypes.KindAccountReadFailure, "worker.read", err)
	}
	counter, ok := ParseCounter(data)
	return counter, ok, nil
}
