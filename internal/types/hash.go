package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// Hash 是 32 字节的 blockhash
type Hash [32]byte

func (h Hash) String() string {
	return base58.Encode(h[:])
}

// HashFromBase58 解析 RPC 返回的 blockhash，长度不对时报错
func HashFromBase58(s string) (Hash, error) {
	var h Hash
	data, err := base58.Decode(s)
	if err != nil {
		return h, fmt.Errorf("failed to decode base58 hash %q: %w", s, err)
	}
	if len(data) != len(h) {
		return h, fmt.Errorf("invalid hash length: got %d, want %d, input=%q", len(data), len(h), s)
	}
	copy(h[:], data)
	return h, nil
}
