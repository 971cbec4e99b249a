package payload

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"pda-miner-sol/internal/consts"
	"pda-miner-sol/internal/types"
	"strings"

	"github.com/near/borsh-go"
)

const (
	opDecodeHex      = "payload.DecodeHex"
	opDecodeEnvelope = "payload.DecodeEnvelope"
)

// Envelope 是程序指令数据的 borsh 结构：u32 小端长度前缀 + 原始字节。
// 链上程序按同样的结构反序列化，字段顺序和类型不能改动。
type Envelope struct {
	Data []byte
}

// DecodeHex 去掉 0x 前缀后做 hex 解码，要求正好 20 字节
func DecodeHex(text string) ([]byte, error) {
	body := text
	if strings.HasPrefix(body, "0x") || strings.HasPrefix(body, "0X") {
		body = body[2:]
	}
	raw, err := hex.DecodeString(body)
	if err != nil {
		return nil, types.Errorf(types.KindMalformedHex, opDecodeHex, "decode %q: %w", text, err)
	}
	if len(raw) != consts.EthAddressLength {
		return nil, types.Errorf(types.KindMalformedHex, opDecodeHex,
			"invalid length: got %d bytes, want %d, input=%q", len(raw), consts.EthAddressLength, text)
	}
	return raw, nil
}

// EncodeEnvelope 将原始字节封装为 borsh Vec<u8>
func EncodeEnvelope(b []byte) []byte {
	data, err := borsh.Serialize(Envelope{Data: b})
	if err != nil {
		// Vec<u8> 序列化只会追加字节，不存在失败路径
		panic(fmt.Errorf("borsh serialize envelope: %w", err))
	}
	return data
}

// EncodeInstructionData 把 envelope 再按 Vec<u8> 封装一层，得到程序调用指令的 data：
// u32 小端(len(envelope)) + envelope。链上程序按两层前缀解析。
func EncodeInstructionData(envelope []byte) []byte {
	return EncodeEnvelope(envelope)
}

// DecodeInstructionData 剥掉外层前缀，返回内层 envelope
func DecodeInstructionData(data []byte) ([]byte, error) {
	return DecodeEnvelope(data)
}

// DecodeEnvelope 是 EncodeEnvelope 的逆操作，拒绝截断或带多余字节的输入
func DecodeEnvelope(env []byte) (b []byte, err error) {
	const prefixLen = 4
	if len(env) < prefixLen {
		return nil, types.Errorf(types.KindMalformedHex, opDecodeEnvelope, "envelope too short: %d bytes", len(env))
	}
	n := binary.LittleEndian.Uint32(env[:prefixLen])
	if uint64(n) != uint64(len(env)-prefixLen) {
		return nil, types.Errorf(types.KindMalformedHex, opDecodeEnvelope,
			"length prefix mismatch: prefix=%d, payload=%d", n, len(env)-prefixLen)
	}

	defer func() {
		if r := recover(); r != nil {
			b, err = nil, types.Errorf(types.KindMalformedHex, opDecodeEnvelope, "borsh deserialize panic: %v", r)
		}
	}()

	var e Envelope
	if err := borsh.Deserialize(&e, env); err != nil {
		return nil, types.Errorf(types.KindMalformedHex, opDecodeEnvelope, "borsh deserialize: %w", err)
	}
	if e.Data == nil {
		e.Data = []byte{}
	}
	return e.Data, nil
}
