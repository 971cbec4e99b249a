package pda

import (
	"crypto/sha256"
	"pda-miner-sol/internal/types"

	"filippo.io/edwards25519"
	"github.com/blocto/solana-go-sdk/common"
)

const (
	opDerive = "pda.Derive"

	// MaxSeedLength 单个 seed 的最大长度（与链上运行时一致）
	MaxSeedLength = 32

	pdaMarker = "ProgramDerivedAddress"
)

// Address 是程序派生地址及其 bump seed
type Address struct {
	PublicKey common.PublicKey
	Bump      uint8
}

func (a Address) String() string {
	return a.PublicKey.ToBase58()
}

// Derive 以 raw 作为唯一 seed，从 bump=255 向下尝试，返回第一个不在 ed25519 曲线上的地址。
// 结果只取决于 (programID, raw)，任何持有相同输入的一方都能复算。
func Derive(programID common.PublicKey, raw []byte) (Address, error) {
	if len(raw) > MaxSeedLength {
		return Address{}, types.Errorf(types.KindDerivationExhausted, opDerive,
			"seed too long: %d > %d", len(raw), MaxSeedLength)
	}

	for bump := 255; bump >= 0; bump-- {
		candidate := createProgramAddress(programID, raw, uint8(bump))
		if !isOnCurve(candidate) {
			return Address{PublicKey: candidate, Bump: uint8(bump)}, nil
		}
	}
	return Address{}, types.Errorf(types.KindDerivationExhausted, opDerive,
		"no off-curve address for program=%s seed=%x", programID.ToBase58(), raw)
}

// createProgramAddress = sha256(seed || bump || programID || "ProgramDerivedAddress")
func createProgramAddress(programID common.PublicKey, seed []byte, bump uint8) common.PublicKey {
	h := sha256.New()
	h.Write(seed)
	h.Write([]byte{bump})
	h.Write(programID[:])
	h.Write([]byte(pdaMarker))

	var out common.PublicKey
	copy(out[:], h.Sum(nil))
	return out
}

// isOnCurve 判断 32 字节是否为合法的压缩 ed25519 点（接受非规范编码，与运行时一致）
func isOnCurve(p common.PublicKey) bool {
	_, err := new(edwards25519.Point).SetBytes(p[:])
	return err == nil
}
