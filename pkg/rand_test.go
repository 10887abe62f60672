package pkg

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandStringLength(t *testing.T) {
	assert.Len(t, RandString(6), 6)
	assert.Len(t, RandString(8), 8)
}

func TestRandStringAvoidsAmbiguousCharacters(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := RandString(6)
		for _, ch := range code {
			assert.True(t, strings.ContainsRune(codeAlphabet, ch), "unexpected character %q", ch)
		}
		assert.NotContains(t, code, "0")
		assert.NotContains(t, code, "O")
		assert.NotContains(t, code, "1")
		assert.NotContains(t, code, "I")
		assert.NotContains(t, code, "L")
	}
}
