package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliceCardinality(t *testing.T) {
	assert.True(t, IsEmpty([]int(nil)))
	assert.False(t, IsSingle([]int(nil)))

	assert.True(t, IsSingle([]string{"a"}))
	assert.False(t, IsMultiple([]string{"a"}))
	assert.True(t, IsMultiple([]string{"a", "b"}))

	first, ok := First([]string{"a", "b"})
	assert.True(t, ok)
	assert.Equal(t, "a", first)

	_, ok = First([]string{})
	assert.False(t, ok)
}
