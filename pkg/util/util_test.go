package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertList(t *testing.T) {
	t.Parallel()
	got := ConvertList([]int{1, 2, 3}, func(i int) string { return string(rune('a' + i - 1)) })
	assert.Equal(t, []string{"a", "b", "c"}, got)
	assert.Empty(t, ConvertList([]int(nil), func(i int) int { return i }))
}

func TestFilter(t *testing.T) {
	t.Parallel()
	got := Filter([]int{1, 2, 3, 4}, func(i int) bool { return i%2 == 0 })
	assert.Equal(t, []int{2, 4}, got)
}

func TestMetricsRegisterTwice(t *testing.T) {
	h1, err := GetHistogramVec("util_test_duration_seconds", "op")
	require.NoError(t, err)
	h2, err := GetHistogramVec("util_test_duration_seconds", "op")
	require.NoError(t, err)
	assert.Same(t, h1, h2)

	c1, err := GetCounterVec("util_test_total", "op")
	require.NoError(t, err)
	c2, err := GetCounterVec("util_test_total", "op")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
}
