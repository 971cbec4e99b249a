package worker

import (
	"encoding/binary"
	"fmt"
	"io"
	"pda-miner-sol/internal/consts"
	mtypes "pda-miner-sol/internal/types"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Report 是单个 worker 的最终结果，产出后只读
type Report struct {
	Worker    int
	State     State  // 最终状态，正常为 Reported
	Outcome   State  // 提交结果：Confirmed 或 Failed
	Account   string // PDA 地址（base58），派生失败时为空
	Signature string // 交易签名，未提交时为空
	SubmitErr error  // 提交链路上的错误（含提交前失败）
	Counter   uint32 // PDA 计数
	CounterOK bool   // 账户数据 >= 4 字节
	ReadErr   error  // 读取 PDA 的错误
}

// Succeeded 表示交易已确认
func (r Report) Succeeded() bool {
	return r.Outcome == StateConfirmed && r.SubmitErr == nil
}

// SubmitKind 返回提交错误类别，成功时为 KindUnknown
func (r Report) SubmitKind() mtypes.Kind {
	return mtypes.KindOf(r.SubmitErr)
}

// ParseCounter 读取账户数据前 4 字节的小端 u32 计数
func ParseCounter(data []byte) (uint32, bool) {
	if len(data) < consts.CounterLength {
		return 0, false
	}
	return binary.LittleEndian.Uint32(data[:consts.CounterLength]), true
}

var (
	labelStyle   = color.New(color.FgRed, color.Bold)
	counterStyle = color.New(color.FgGreen, color.Bold)
	sigStyle     = color.New(color.FgHiBlue, color.Bold)
	errStyle     = color.New(color.FgRed)
)

// Line 格式化为单行输出：先账户状态，后提交结果
func (r Report) Line() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[worker %d] ", r.Worker)

	switch {
	case r.ReadErr != nil:
		sb.WriteString(errStyle.Sprintf("Failed to read data: %v", r.ReadErr))
	case !r.CounterOK:
		sb.WriteString(errStyle.Sprint("Failed to read data: Account data too small"))
	default:
		sb.WriteString(labelStyle.Sprint("Total mined hashes so far: "))
		sb.WriteString(counterStyle.Sprint(r.Counter))
	}
	sb.WriteString(" | ")

	if r.Succeeded() {
		sb.WriteString("Transaction succeeded with signature: ")
		sb.WriteString(sigStyle.Sprint(r.Signature))
	} else {
		sb.WriteString("Transaction failed: ")
		sb.WriteString(errStyle.Sprint(r.SubmitErr))
	}
	return sb.String()
}

// lockedWriter 保证多个 worker 的报告按整行写出，不会交错
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

func writeReport(out io.Writer, r Report) {
	if out == nil {
		return
	}
	_, _ = io.WriteString(out, r.Line()+"\n")
}
