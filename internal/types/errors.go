package types

import (
	"errors"
	"fmt"
)

// Kind 表示错误类别，报告层按类别分支处理，不依赖错误文本
type Kind int

const (
	KindUnknown               Kind = iota
	KindInvalidChecksum            // 地址校验失败（fan-out 之前，整个进程退出）
	KindMalformedHex               // hex 解码失败（仅影响当前 worker）
	KindDerivationExhausted        // PDA bump 全部落在曲线上（理论上不会发生）
	KindCredentialLoadFailure      // 签名密钥加载失败（fan-out 之前）
	KindSubmissionFailure          // 提交 / 确认失败，写入报告，不重试
	KindAccountReadFailure         // 读取 PDA 账户失败，报告为 unreadable
	KindWorkerJoinError            // worker 无法正常回收（panic 等协程级故障）
)

var kindNames = []string{
	"Unknown",
	"InvalidChecksum",
	"MalformedHex",
	"DerivationExhausted",
	"CredentialLoadFailure",
	"SubmissionFailure",
	"AccountReadFailure",
	"WorkerJoinError",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[0]
}

// Error 是带类别的结构化错误
type Error struct {
	Kind Kind
	Op   string // 出错的操作，例如 "ethaddr.Validate"
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// NewError 构造结构化错误
func NewError(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Errorf 构造结构化错误，错误信息按 fmt 格式化（支持 %w）
func Errorf(kind Kind, op string, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf 返回错误链中第一个结构化错误的类别
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind 判断错误链中是否包含指定类别
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
