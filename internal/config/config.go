package config

import (
	"pda-miner-sol/pkg/logger"
	"time"

	"github.com/zeromicro/go-zero/core/conf"
)

type LogConfig struct {
	Format   string `json:"format,default=console"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional"`       // 日志目录（为空时输出到 stderr）
	Level    string `json:"level,default=info"`     // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional"`      // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// ConfirmConfig 交易确认轮询配置
type ConfirmConfig struct {
	Commitment string `json:"commitment,default=confirmed,options=processed|confirmed|finalized"` // 确认级别
	TimeoutSec int    `json:"timeout_sec,default=90"`                                             // 确认等待上限（blockhash 过期后交易不可能再上链）
	PollMs     int    `json:"poll_ms,default=500"`                                                // 状态轮询间隔（毫秒）
}

func (c *ConfirmConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

func (c *ConfirmConfig) PollInterval() time.Duration {
	return time.Duration(c.PollMs) * time.Millisecond
}

// MinerConfig 是主配置结构体
type MinerConfig struct {
	LogConf     LogConfig     `json:"logger,optional"`  // 日志配置
	ConfirmConf ConfirmConfig `json:"confirm,optional"` // 确认配置

	RpcEndpoint      string `json:"rpc_endpoint,default=https://api.devnet.solana.com"`               // Solana RPC 地址
	KeypairPath      string `json:"keypair_path,default=~/.config/solana/id.json"`                   // 付款人密钥文件
	ProgramID        string `json:"program_id,default=64SYet8RCT5ayZpMGbhcpk3vmt8UkwjZq8uy8Sd6V46A"` // 目标程序
	Workers          int    `json:"workers,default=10,range=[1:256]"`                                 // 并发 worker 数
	ComputeUnitLimit uint32 `json:"compute_unit_limit,default=1200000"`                               // CU 上限
}

// Load 加载配置文件；path 为空时只填充默认值
func Load(path string) (MinerConfig, error) {
	var c MinerConfig
	if path == "" {
		if err := conf.FillDefault(&c); err != nil {
			return c, err
		}
	} else if err := conf.Load(path, &c); err != nil {
		return c, err
	}
	c.normalize()
	return c, nil
}

// normalize 补齐可选嵌套配置的默认值（整段缺省时 conf 不会下钻填充）
func (c *MinerConfig) normalize() {
	if c.LogConf.Format == "" {
		c.LogConf.Format = "console"
	}
	if c.LogConf.Level == "" {
		c.LogConf.Level = "info"
	}
	if c.ConfirmConf.Commitment == "" {
		c.ConfirmConf.Commitment = "confirmed"
	}
	if c.ConfirmConf.TimeoutSec <= 0 {
		c.ConfirmConf.TimeoutSec = 90
	}
	if c.ConfirmConf.PollMs <= 0 {
		c.ConfirmConf.PollMs = 500
	}
}
