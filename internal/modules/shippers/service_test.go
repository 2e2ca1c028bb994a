package shippers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenTempPassword(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		pw, err := genTempPassword()
		require.NoError(t, err)
		assert.Len(t, pw, tempPasswordLen)
		for _, c := range pw {
			assert.True(t, strings.ContainsRune(tempPasswordChars, c), "unexpected char %q", c)
		}
		assert.False(t, seen[pw], "generated password repeated")
		seen[pw] = true
	}
}
