package logger

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogOption 日志初始化参数
type LogOption struct {
	Format   string // "console" 或 "json"
	LogDir   string // 为空时输出到 stderr
	Level    string // debug / info / warn / error
	Compress bool   // 是否压缩轮转后的日志
}

const (
	logFileName   = "miner.log"
	maxSizeMB     = 100
	maxBackups    = 10
	maxAgeDays    = 7
	callerSkipOne = 1
)

var (
	mu     sync.RWMutex
	sugar  = zap.NewNop().Sugar()
	closer func() error
)

// Init 根据 LogOption 初始化全局 logger，可重复调用（后一次覆盖前一次）
func Init(opt LogOption) error {
	level, err := zapcore.ParseLevel(strings.ToLower(orDefault(opt.Level, "info")))
	if err != nil {
		return err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.TimeKey = "ts"

	var encoder zapcore.Encoder
	if strings.EqualFold(opt.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	var ws zapcore.WriteSyncer
	var closeFn func() error
	if opt.LogDir == "" {
		ws = zapcore.Lock(os.Stderr)
	} else {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return err
		}
		rotator := &lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, logFileName),
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
			Compress:   opt.Compress,
			LocalTime:  true,
		}
		ws = zapcore.AddSync(rotator)
		closeFn = rotator.Close
	}

	core := zapcore.NewCore(encoder, ws, level)
	l := zap.New(core, zap.AddCaller(), zap.AddCallerSkip(callerSkipOne))

	mu.Lock()
	old := closer
	sugar = l.Sugar()
	closer = closeFn
	mu.Unlock()

	if old != nil {
		_ = old()
	}
	return nil
}

// Sync 刷新缓冲并关闭日志文件
func Sync() {
	mu.RLock()
	s, c := sugar, closer
	mu.RUnlock()

	_ = s.Sync()
	if c != nil {
		_ = c()
	}
}

func get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

func Debugf(template string, args ...any) { get().Debugf(template, args...) }
func Infof(template string, args ...any)  { get().Infof(template, args...) }
func Warnf(template string, args ...any)  { get().Warnf(template, args...) }
func Errorf(template string, args ...any) { get().Errorf(template, args...) }

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
