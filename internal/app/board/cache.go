package board

import (
	"strconv"
	"strings"
)

const cachePrefix = "board"

// GenerationKey holds board's cache generation. It sits outside CachePattern
// so invalidating views never resets the counter.
func GenerationKey(board string) string {
	return cachePrefix + "-gen:" + board
}

func ListCacheKey(board string, gen int64) string {
	return cachePrefix + ":" + board + ":" + strconv.FormatInt(gen, 10) + ":threads"
}

func ThreadCacheKey(board string, gen int64, threadID string) string {
	return cachePrefix + ":" + board + ":" + strconv.FormatInt(gen, 10) + ":thread:" + threadID
}

// CachePattern matches every cached view of board. Glob metacharacters in the
// board name are escaped so one board never invalidates another.
func CachePattern(board string) string {
	var b strings.Builder
	for _, r := range board {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return cachePrefix + ":" + b.String() + ":*"
}
