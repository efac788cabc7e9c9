// Package freq counts letter occurrences in text.
package freq

import (
	"sort"
	"unicode"
)

// Map holds per-letter counts. Letters records each letter once, in the
// order it first appeared, so ties resolve the same way on every run.
type Map struct {
	Letters []rune
	Counts  map[rune]int
}

// Count tallies every letter of text. Runes are taken literally; callers
// fold case beforehand when they want case-insensitive counts.
func Count(text string) Map {
	m := Map{Counts: map[rune]int{}}
	for _, r := range text {
		if !unicode.IsLetter(r) {
			continue
		}
		if _, ok := m.Counts[r]; !ok {
			m.Letters = append(m.Letters, r)
		}
		m.Counts[r]++
	}
	return m
}

// Len returns the number of distinct letters.
func (m Map) Len() int {
	return len(m.Letters)
}

// Get returns the count for r.
func (m Map) Get(r rune) int {
	return m.Counts[r]
}

// Total returns the number of letters counted.
func (m Map) Total() int {
	total := 0
	for _, n := range m.Counts {
		total += n
	}
	return total
}

// MostFrequent returns the letter with the highest count. Among equal
// counts the letter seen first in the text wins. ok is false for an empty map.
func (m Map) MostFrequent() (letter rune, count int, ok bool) {
	for _, r := range m.Letters {
		if n := m.Counts[r]; n > count {
			letter, count, ok = r, n, true
		}
	}
	return letter, count, ok
}

// Entry pairs a letter with its count.
type Entry struct {
	Letter rune
	Count  int
}

// Top returns up to n entries by count, highest first, keeping first-seen
// order among ties. n <= 0 returns every entry.
func (m Map) Top(n int) []Entry {
	if len(m.Letters) == 0 {
		return nil
	}
	items := make([]Entry, 0, len(m.Letters))
	for _, r := range m.Letters {
		items = append(items, Entry{Letter: r, Count: m.Counts[r]})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Count > items[j].Count
	})
	if n <= 0 || n > len(items) {
		n = len(items)
	}
	return items[:n]
}
