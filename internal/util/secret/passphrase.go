// Package secret generates account passphrases for migrated users.
//
// Passphrases are diceware-style: random words from a fixed list joined
// with hyphens plus a numeric suffix, readable enough to be typed from a
// welcome email while keeping adequate entropy.
package secret

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

// DefaultWordCount is the number of words in a generated passphrase.
const DefaultWordCount = 4

// DefaultWordList is the built-in word pool. Treated as immutable; callers
// that need a different pool pass their own list to the Generator.
var DefaultWordList = []string{
	"amber", "anchor", "aspen", "atlas", "aurora", "basil", "beacon", "birch",
	"breeze", "canyon", "cedar", "cinder", "clover", "cobalt", "comet", "coral",
	"crimson", "delta", "drift", "ember", "falcon", "fern", "flint", "forest",
	"garnet", "glacier", "grove", "harbor", "hazel", "heron", "indigo", "ivory",
	"jasper", "juniper", "lagoon", "lantern", "lilac", "linden", "lunar", "maple",
	"marble", "meadow", "mesa", "mirror", "monsoon", "nectar", "nimbus", "north",
	"ocean", "onyx", "opal", "orbit", "osprey", "pebble", "pinecone", "plume",
	"prairie", "quartz", "raven", "ridge", "river", "saffron", "sage", "sierra",
	"silver", "slate", "solstice", "sparrow", "spruce", "summit", "sunset", "tempo",
	"thistle", "timber", "topaz", "tundra", "velvet", "violet", "walnut", "willow",
	"winter", "wren", "zephyr", "zenith",
}

// Generator produces passphrases from a word list.
type Generator struct {
	// Words is the number of words per passphrase. Zero means
	// DefaultWordCount.
	Words int

	// List overrides DefaultWordList when non-empty.
	List []string
}

// Generate returns a new passphrase like "cedar-lagoon-flint-wren-83".
func (g Generator) Generate() (string, error) {
	words := g.Words
	if words <= 0 {
		words = DefaultWordCount
	}
	list := g.List
	if len(list) == 0 {
		list = DefaultWordList
	}

	parts := make([]string, 0, words+1)
	for i := 0; i < words; i++ {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(list))))
		if err != nil {
			return "", fmt.Errorf("failed to draw random word: %w", err)
		}
		parts = append(parts, list[n.Int64()])
	}

	suffix, err := rand.Int(rand.Reader, big.NewInt(100))
	if err != nil {
		return "", fmt.Errorf("failed to draw random suffix: %w", err)
	}
	parts = append(parts, fmt.Sprintf("%02d", suffix.Int64()))

	return strings.Join(parts, "-"), nil
}

// Generate returns a passphrase using the default generator settings.
func Generate() (string, error) {
	return Generator{}.Generate()
}
