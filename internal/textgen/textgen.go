// Package textgen builds random lowercase plaintext samples.
package textgen

import (
	"math/rand"
	"strings"

	"github.com/verte-zerg/caesar-breaker/internal/cipher"
)

const defaultPunctSet = ".,!?;:'\"-()0123456789"

// Generator produces randomized plaintext.
type Generator struct {
	rnd      *rand.Rand
	punctSet []rune
}

// New returns a Generator with a fixed seed so samples are reproducible.
func New(seed int64) *Generator {
	return &Generator{
		rnd:      rand.New(rand.NewSource(seed)),
		punctSet: []rune(defaultPunctSet),
	}
}

// Word returns a word of 1 to maxLen letters drawn from the cipher alphabet.
func (g *Generator) Word(maxLen int) string {
	if maxLen <= 0 {
		maxLen = 1
	}
	n := 1 + g.rnd.Intn(maxLen)
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(cipher.Alphabet[g.rnd.Intn(cipher.Size)])
	}
	return b.String()
}

// Text joins count words with spaces and appends punctuation to a word
// with probability punctPct.
func (g *Generator) Text(count int, punctPct float64) string {
	words := make([]string, 0, count)
	for i := 0; i < count; i++ {
		words = append(words, applyPunct(g.rnd, g.Word(8), punctPct, g.punctSet))
	}
	return strings.Join(words, " ")
}

// Shift returns a shift in [-3*Size, 3*Size].
func (g *Generator) Shift() int {
	return g.rnd.Intn(6*cipher.Size+1) - 3*cipher.Size
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
