package worker

import (
	"context"
	"errors"
	"io"
	mtypes "pda-miner-sol/internal/types"
	"pda-miner-sol/pkg/logger"
	"runtime/debug"

	"golang.org/x/sync/errgroup"
)

const opRun = "worker.Run"

// Run 启动 n 个 worker，以相同的输入副本并发执行一次完整提交周期，等待全部结束。
// 业务失败记录在各自的 Report 中；只有 worker 无法正常回收（panic）时才返回 KindWorkerJoinError。
// ctx 仅作为取消入口，Run 本身不会取消任何 worker。n <= 0 时不启动 worker，返回空结果。
func Run(ctx context.Context, deps Deps, in Input, n int) ([]Report, error) {
	if n <= 0 {
		return []Report{}, nil
	}

	var out io.Writer
	if deps.Out != nil {
		out = &lockedWriter{w: deps.Out}
	}

	reports := make([]Report, n)
	joinErrs := make([]error, n)

	// 不使用 errgroup.WithContext：单个 worker 的故障不能取消其他 worker
	var g errgroup.Group
	for i := 0; i < n; i++ {
		id := i
		w := newWorker(id, deps, in)
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = mtypes.Errorf(mtypes.KindWorkerJoinError, opRun, "worker %d panic: %v", id, r)
					logger.Errorf("[Worker %d] panic: %v\nstack: %s", id, r, debug.Stack())
					joinErrs[id] = err
					reports[id] = Report{Worker: id, State: StateReported, Outcome: StateFailed, SubmitErr: err, ReadErr: err}
					writeReport(out, reports[id])
				}
			}()
			reports[id] = w.run(ctx, out)
			return nil
		})
	}
	_ = g.Wait()

	return reports, errors.Join(joinErrs...)
}

// Summary 统计成功 / 失败数量
func Summary(reports []Report) (succeeded, failed int) {
	for _, r := range reports {
		if r.Succeeded() {
			succeeded++
		} else {
			failed++
		}
	}
	return succeeded, failed
}
