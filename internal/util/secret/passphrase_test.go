package secret

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate_Shape(t *testing.T) {
	t.Parallel()
	phrase, err := Generate()
	require.NoError(t, err)

	parts := strings.Split(phrase, "-")
	require.Len(t, parts, DefaultWordCount+1)

	for _, word := range parts[:DefaultWordCount] {
		assert.Contains(t, DefaultWordList, word)
	}

	suffix, err := strconv.Atoi(parts[DefaultWordCount])
	require.NoError(t, err)
	assert.GreaterOrEqual(t, suffix, 0)
	assert.Less(t, suffix, 100)
}

func TestGenerator_CustomList(t *testing.T) {
	t.Parallel()
	g := Generator{Words: 2, List: []string{"only"}}

	phrase, err := g.Generate()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(phrase, "only-only-"), "got %q", phrase)
}

func TestGenerate_Distinct(t *testing.T) {
	t.Parallel()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		phrase, err := Generate()
		require.NoError(t, err)
		seen[phrase] = true
	}
	// 50 draws from a 84^4*100 space colliding would indicate a broken RNG.
	assert.Greater(t, len(seen), 45)
}
