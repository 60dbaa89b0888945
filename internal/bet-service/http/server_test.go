package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSelectionSingle(t *testing.T) {
	assert.True(t, validSelection("single", "0"))
	assert.True(t, validSelection("single", "7"))
	assert.False(t, validSelection("single", "10"))
	assert.False(t, validSelection("single", ""))
	assert.False(t, validSelection("single", "a"))
}

func TestValidSelectionPatti(t *testing.T) {
	assert.True(t, validSelection("patti", "123"))
	assert.True(t, validSelection("patti", "120")) // 0 conta como 10, depois do 2
	assert.True(t, validSelection("patti", "000"))
	assert.False(t, validSelection("patti", "012")) // 0 não vem antes do 1
	assert.False(t, validSelection("patti", "321"))
	assert.False(t, validSelection("patti", "12"))
}

func TestValidSelectionJuri(t *testing.T) {
	assert.True(t, validSelection("juri", "3-7"))
	assert.True(t, validSelection("juri", "0-0"))
	assert.False(t, validSelection("juri", "37"))
	assert.False(t, validSelection("juri", "3-"))
	assert.False(t, validSelection("juri", "10-3"))
}

func TestValidSelectionUnknownType(t *testing.T) {
	assert.False(t, validSelection("double", "12"))
	assert.False(t, validSelection("", "1"))
}
