package ethaddr

import (
	"pda-miner-sol/internal/consts"
	"pda-miner-sol/internal/types"
	"strings"

	ethcmn "github.com/ethereum/go-ethereum/common"
)

const opValidate = "ethaddr.Validate"

// Address 是已通过 EIP-55 校验的以太坊地址，只能由 Validate 构造
type Address struct {
	raw   string // 用户输入的原始字符串
	bytes [consts.EthAddressLength]byte
}

// Raw 返回原始输入
func (a Address) Raw() string { return a.raw }

// Hex 返回带 0x 前缀的校验和格式
func (a Address) Hex() string { return ethcmn.Address(a.bytes).Hex() }

// Bytes 返回 20 字节原始地址的拷贝
func (a Address) Bytes() []byte {
	b := a.bytes
	return b[:]
}

// Validate 按严格的 EIP-55 规则校验地址：
//   - 可选 0x / 0X 前缀，主体必须是 40 个 hex 字符
//   - 字母大小写必须与校验和编码完全一致（全小写 / 全大写同样拒绝）
func Validate(s string) (Address, error) {
	body := trimHexPrefix(s)
	if len(body) != 2*consts.EthAddressLength {
		return Address{}, types.Errorf(types.KindInvalidChecksum, opValidate,
			"invalid address length: got %d hex chars, want %d, input=%q", len(body), 2*consts.EthAddressLength, s)
	}
	if !ethcmn.IsHexAddress(body) {
		return Address{}, types.Errorf(types.KindInvalidChecksum, opValidate, "not a hex address: %q", s)
	}

	addr := ethcmn.HexToAddress(body)
	if want := addr.Hex()[2:]; body != want {
		return Address{}, types.Errorf(types.KindInvalidChecksum, opValidate,
			"checksum mismatch: input=%q, want 0x%s", s, want)
	}
	return Address{raw: s, bytes: addr}, nil
}

func trimHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s[2:]
	}
	return s
}
