// Package model defines shared data structures.
package model

// Mode selects how a ciphertext is broken.
type Mode int

const (
	// ModeFrequency infers one shift from letter frequencies.
	ModeFrequency Mode = iota
	// ModeBruteForce emits every possible shift.
	ModeBruteForce
)

func (m Mode) String() string {
	switch m {
	case ModeBruteForce:
		return "brute-force"
	case ModeFrequency:
		return "frequency"
	default:
		return "unknown"
	}
}

// Config defines resolved CLI settings.
type Config struct {
	Lang      string
	Force     bool
	ShowShift bool
	Verbose   bool
}

// Request describes a single break invocation.
type Request struct {
	Ciphertext string
	Mode       Mode
	Lang       string
}

// Candidate is one decoded plaintext and the shift that produced it.
type Candidate struct {
	Shift     int
	Plaintext string
}
