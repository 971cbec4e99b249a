package consts

const (
	DevnetRpcEndpoint = "https://api.devnet.solana.com"

	// DefaultComputeUnitLimit 计数程序每次调用要做大量哈希，默认 200k CU 上限不够
	DefaultComputeUnitLimit uint32 = 1_200_000

	// DefaultWorkerCount 同一输入并发提交的 worker 数
	DefaultWorkerCount = 10

	// EthAddressLength 以太坊地址原始字节长度
	EthAddressLength = 20

	// CounterLength PDA 账户数据前 4 字节为小端 u32 计数
	CounterLength = 4
)
