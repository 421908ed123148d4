package xrid

import (
	"math/rand/v2"
	"strings"
	"unicode/utf8"
)

// Generator 生成单个随机片段。
//
// 实现必须并发安全，并且返回恰好 length 个取自 alphabet 的字符。
type Generator interface {
	Segment(length int, alphabet string) string
}

// GeneratorFunc 将普通函数适配为 Generator。
type GeneratorFunc func(length int, alphabet string) string

// Segment 实现 Generator 接口。
func (f GeneratorFunc) Segment(length int, alphabet string) string {
	return f(length, alphabet)
}

// RandomSegment 从 alphabet 中独立、均匀、有放回地抽取 length 个字符。
//
// 随机源为 math/rand/v2 的全局生成器，并发安全，但不具备密码学强度，
// 不得用作令牌或口令。
//
// 不保证跨调用唯一：两个片段相同的概率为 1/|alphabet|^length。
// 默认配置（36 个字符、长度 8）约为 3.5e-13；生成 n 个根标识时，
// 出现任意一次碰撞的概率近似 n²/(2·36^8)。
//
// alphabet 按 Unicode 字符计数，length 也以字符而非字节为单位。
func RandomSegment(length int, alphabet string) string {
	if length <= 0 || alphabet == "" {
		return ""
	}
	if isASCII(alphabet) {
		buf := make([]byte, length)
		for i := range buf {
			buf[i] = alphabet[rand.IntN(len(alphabet))]
		}
		return string(buf)
	}

	runes := []rune(alphabet)
	var sb strings.Builder
	sb.Grow(length * utf8.UTFMax)
	for range length {
		sb.WriteRune(runes[rand.IntN(len(runes))])
	}
	return sb.String()
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// defaultGenerator 默认的随机片段生成器。
var defaultGenerator Generator = GeneratorFunc(RandomSegment)
