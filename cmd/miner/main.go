package main

import (
	"context"
	"fmt"
	"os"
	"pda-miner-sol/internal/config"
	"pda-miner-sol/internal/logic/ethaddr"
	"pda-miner-sol/internal/logic/worker"
	"pda-miner-sol/internal/svc"
	"pda-miner-sol/pkg/logger"
	"runtime/debug"

	"github.com/spf13/cobra"
)

const (
	FlagConfigFile = "config-file"
	FlagFee        = "fee"
	FlagAddress    = "address"
)

var (
	configPath  string
	priorityFee uint64
	ethAddress  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "miner --fee <FEE> --address <ADDRESS>",
		Short: "Executes a transaction with an Ethereum address on Solana",
		Long: `Derives the program account for an Ethereum address, then submits the
same counter transaction from several concurrent workers and reports the result.

Example:
  miner --fee 1000 --address 0xAb5801a7D398351b8bE11C439e05C5B3259aeC9B -f etc/miner.yaml`,
		Version:       "0.1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		Run: func(cmd *cobra.Command, args []string) {
			os.Exit(run())
		},
	}

	rootCmd.Flags().Uint64Var(&priorityFee, FlagFee, 0, "Priority fee per compute unit (micro-lamports)")
	rootCmd.Flags().StringVar(&ethAddress, FlagAddress, "", "Ethereum address for the transaction data (EIP-55 checksummed)")
	rootCmd.Flags().StringVarP(&configPath, FlagConfigFile, "f", "", "Path to the configuration file")
	_ = rootCmd.MarkFlagRequired(FlagFee)
	_ = rootCmd.MarkFlagRequired(FlagAddress)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() (code int) {
	defer func() {
		if r := recover(); r != nil {
			logger.Errorf("panic: %+v\nstack: %s", r, debug.Stack())
			code = 1
		}
		logger.Sync()
	}()

	c, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}
	if err := logger.Init(c.LogConf.ToLogOption()); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to init logger: %v\n", err)
		return 1
	}

	// 只在 fan-out 之前校验一次，失败直接退出
	addr, err := ethaddr.Validate(ethAddress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid checksummed Ethereum address: %s\n", ethAddress)
		logger.Errorf("[main] %v", err)
		return 1
	}

	sc, err := svc.NewServiceContext(c)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		return 1
	}

	n := sc.WorkerCount()
	logger.Infof("[main] starting %d workers: address=%s fee=%d", n, addr.Hex(), priorityFee)

	reports, err := worker.Run(context.Background(), sc.WorkerDeps(os.Stdout), worker.Input{
		Address:     addr,
		PriorityFee: priorityFee,
	}, n)

	succeeded, failed := worker.Summary(reports)
	logger.Infof("[main] done: succeeded=%d failed=%d", succeeded, failed)
	if err != nil {
		logger.Errorf("[main] worker join failed: %v", err)
		return 1
	}
	return 0
}
