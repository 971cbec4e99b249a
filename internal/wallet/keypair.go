package wallet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	mtypes "pda-miner-sol/internal/types"
	"strings"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"
)

const opLoad = "wallet.LoadKeypair"

// LoadKeypair 读取本地签名密钥。支持两种格式：
//   - solana-keygen 生成的 id.json（64 个数字组成的 JSON 数组）
//   - base58 编码的 64 字节私钥字符串（钱包导出格式）
//
// 路径以 ~/ 开头时展开为用户主目录。
func LoadKeypair(path string) (types.Account, error) {
	resolved, err := expandHome(path)
	if err != nil {
		return types.Account{}, mtypes.NewError(mtypes.KindCredentialLoadFailure, opLoad, err)
	}

	content, err := os.ReadFile(resolved)
	if err != nil {
		return types.Account{}, mtypes.Errorf(mtypes.KindCredentialLoadFailure, opLoad, "read %s: %w", resolved, err)
	}

	secret, err := parseSecret(content)
	if err != nil {
		return types.Account{}, mtypes.Errorf(mtypes.KindCredentialLoadFailure, opLoad, "parse %s: %w", resolved, err)
	}

	account, err := types.AccountFromBytes(secret)
	if err != nil {
		return types.Account{}, mtypes.Errorf(mtypes.KindCredentialLoadFailure, opLoad, "keypair %s: %w", resolved, err)
	}
	return account, nil
}

func parseSecret(content []byte) ([]byte, error) {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty keypair file")
	}

	var secret []byte
	if trimmed[0] == '[' {
		var nums []int
		if err := json.Unmarshal(trimmed, &nums); err != nil {
			return nil, fmt.Errorf("invalid json keypair: %w", err)
		}
		secret = make([]byte, len(nums))
		for i, n := range nums {
			if n < 0 || n > 255 {
				return nil, fmt.Errorf("invalid keypair byte at %d: %d", i, n)
			}
			secret[i] = byte(n)
		}
	} else {
		decoded, err := base58.Decode(string(trimmed))
		if err != nil {
			return nil, fmt.Errorf("invalid base58 keypair: %w", err)
		}
		secret = decoded
	}

	if len(secret) != 64 {
		return nil, fmt.Errorf("invalid keypair length: got %d, want 64", len(secret))
	}
	return secret, nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
