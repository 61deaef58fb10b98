package editor

import (
	"fmt"
	"regexp"
	"strconv"
)

// 尾部重复计数器后缀，如 date-1、date-2
var counterSuffixPattern = regexp.MustCompile(`-(\d+)$`)

// BaseIdentity 去掉字段键尾部的 -<n> 重复计数器，还原语义标识
// 已知局限：基础标识本身以 -<数字> 结尾时与计数器后缀无法区分，
// 字段目录约定不使用这类标识
func BaseIdentity(key string) string {
	loc := counterSuffixPattern.FindStringIndex(key)
	if loc == nil {
		return key
	}
	return key[:loc[0]]
}

// keyCounter 字段键的计数器值，裸键计 0
func keyCounter(key string) int {
	match := counterSuffixPattern.FindStringSubmatch(key)
	if match == nil {
		return 0
	}
	n, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return n
}

// allocateKey 为 baseKey 在段内分配唯一键
// 无同基础标识的现有键时原样返回；否则取现有计数器最大值加一
func allocateKey(s *Section, baseKey string) string {
	base := BaseIdentity(baseKey)
	maxCounter := -1
	for existing := range s.FieldPositions {
		if BaseIdentity(existing) != base {
			continue
		}
		if c := keyCounter(existing); c > maxCounter {
			maxCounter = c
		}
	}
	if maxCounter < 0 {
		return baseKey
	}
	return fmt.Sprintf("%s-%d", base, maxCounter+1)
}
