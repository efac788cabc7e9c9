// Package cipher implements rotation over the fixed lowercase Latin alphabet.
package cipher

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Alphabet is the ordered set of letters a shift rotates through.
const Alphabet = "abcdefghijklmnopqrstuvwxyz"

// Size is the rotation modulus.
const Size = len(Alphabet)

// ErrOutOfAlphabet reports a letter that is not part of Alphabet.
var ErrOutOfAlphabet = errors.New("letter not in alphabet")

// OutOfAlphabetError carries the offending rune and its rune offset in the input.
type OutOfAlphabetError struct {
	Rune   rune
	Offset int
}

func (e *OutOfAlphabetError) Error() string {
	if e.Offset < 0 {
		return fmt.Sprintf("letter %q not in alphabet %q", e.Rune, Alphabet)
	}
	return fmt.Sprintf("letter %q at offset %d not in alphabet %q", e.Rune, e.Offset, Alphabet)
}

// Unwrap lets errors.Is match ErrOutOfAlphabet.
func (e *OutOfAlphabetError) Unwrap() error {
	return ErrOutOfAlphabet
}

// Index returns the position of r in Alphabet.
func Index(r rune) (int, bool) {
	if r < 'a' || r > 'z' {
		return 0, false
	}
	return strings.IndexRune(Alphabet, r), true
}

// Rotate moves every letter of text shift positions along Alphabet, wrapping
// around. Non-letters are copied through. Letters outside Alphabet, including
// uppercase ones, are rejected, so callers lowercase first.
func Rotate(text string, shift int) (string, error) {
	shift = Normalize(shift)
	var b strings.Builder
	b.Grow(len(text))
	offset := 0
	for _, r := range text {
		if !unicode.IsLetter(r) {
			b.WriteRune(r)
			offset++
			continue
		}
		idx, ok := Index(r)
		if !ok {
			return "", &OutOfAlphabetError{Rune: r, Offset: offset}
		}
		b.WriteByte(Alphabet[(idx+shift)%Size])
		offset++
	}
	return b.String(), nil
}

// Encrypt applies a Caesar key, moving letters key positions forward.
func Encrypt(plaintext string, key int) (string, error) {
	return Rotate(plaintext, key)
}

// Decrypt undoes Encrypt for the same key.
func Decrypt(ciphertext string, key int) (string, error) {
	return Rotate(ciphertext, -key)
}

// Normalize reduces any shift, negative ones included, into [0, Size).
func Normalize(shift int) int {
	return ((shift % Size) + Size) % Size
}
