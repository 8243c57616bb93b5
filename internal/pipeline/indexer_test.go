package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitTextWithOverlap(t *testing.T) {
	text := strings.Repeat("a", 120)
	chunks := splitText(text, 50, 10)

	// 步长 40：0-50、40-90、80-120
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 50)
	assert.Len(t, chunks[1], 50)
	assert.Len(t, chunks[2], 40)
}

func TestSplitTextShortInput(t *testing.T) {
	chunks := splitText("short", 500, 50)
	require.Len(t, chunks, 1)
	assert.Equal(t, "short", chunks[0])
}

func TestSplitTextEmpty(t *testing.T) {
	assert.Nil(t, splitText("", 500, 50))
}

func TestSplitTextInvalidOverlapFallsBack(t *testing.T) {
	text := strings.Repeat("b", 100)
	chunks := splitText(text, 40, 40)

	// 重叠不合法时退化为简单切分
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 40)
	assert.Len(t, chunks[2], 20)
}
