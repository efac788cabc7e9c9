// Package breaker recovers Caesar-shifted plaintext by brute force or by
// single-letter frequency analysis.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/verte-zerg/caesar-breaker/internal/cipher"
	"github.com/verte-zerg/caesar-breaker/internal/freq"
	"github.com/verte-zerg/caesar-breaker/internal/lang"
	"github.com/verte-zerg/caesar-breaker/internal/model"
)

// ErrNoLetters is returned when frequency analysis has nothing to count.
var ErrNoLetters = errors.New("cannot estimate shift: no letters found")

// Normalize prepares raw ciphertext for rotation.
func Normalize(text string) string {
	return strings.ToLower(text)
}

// EstimateShift returns the shift that maps the most frequent letter in m
// onto the most common letter of the given language. The result is not
// reduced modulo the alphabet size and may be negative.
func EstimateShift(m freq.Map, code string) (int, error) {
	profile, err := lang.Lookup(code)
	if err != nil {
		return 0, err
	}
	observed, _, ok := m.MostFrequent()
	if !ok {
		return 0, ErrNoLetters
	}
	observedIdx, ok := cipher.Index(observed)
	if !ok {
		return 0, &cipher.OutOfAlphabetError{Rune: observed, Offset: -1}
	}
	targetIdx, ok := cipher.Index(profile.MostCommon)
	if !ok {
		return 0, fmt.Errorf("profile %q: %w", profile.Code, &cipher.OutOfAlphabetError{Rune: profile.MostCommon, Offset: -1})
	}
	return targetIdx - observedIdx, nil
}

// BruteForce decodes text with every shift from 0 to 25.
func BruteForce(text string) ([]model.Candidate, error) {
	out := make([]model.Candidate, 0, cipher.Size)
	for shift := 0; shift < cipher.Size; shift++ {
		plain, err := cipher.Rotate(text, shift)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Candidate{Shift: shift, Plaintext: plain})
	}
	return out, nil
}

// Frequency decodes text with the shift inferred from its letter counts.
func Frequency(text, code string) (model.Candidate, error) {
	return FrequencyWithCounts(text, freq.Count(text), code)
}

// FrequencyWithCounts is Frequency for a caller that already counted text.
func FrequencyWithCounts(text string, counts freq.Map, code string) (model.Candidate, error) {
	shift, err := EstimateShift(counts, code)
	if err != nil {
		return model.Candidate{}, err
	}
	plain, err := cipher.Rotate(text, shift)
	if err != nil {
		return model.Candidate{}, err
	}
	return model.Candidate{Shift: shift, Plaintext: plain}, nil
}

// Breaker runs requests and logs what it decided.
type Breaker struct {
	logger *zap.Logger
}

// New returns a Breaker. A nil logger disables logging.
func New(logger *zap.Logger) *Breaker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Breaker{logger: logger}
}

// Run normalizes the request's ciphertext and decodes it in the requested mode.
func (b *Breaker) Run(ctx context.Context, req model.Request) ([]model.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text := Normalize(req.Ciphertext)
	log := b.logger.With(zap.Stringer("mode", req.Mode), zap.Int("length", len([]rune(text))))

	switch req.Mode {
	case model.ModeBruteForce:
		cands, err := BruteForce(text)
		if err != nil {
			log.Debug("brute force failed", zap.Error(err))
			return nil, err
		}
		log.Debug("brute force done", zap.Int("candidates", len(cands)))
		return cands, nil
	case model.ModeFrequency:
		counts := freq.Count(text)
		if letter, count, ok := counts.MostFrequent(); ok {
			log.Debug("letter frequencies",
				zap.Int("letters", counts.Total()),
				zap.Int("distinct", counts.Len()),
				zap.String("most_frequent", string(letter)),
				zap.Int("count", count))
		}
		cand, err := FrequencyWithCounts(text, counts, req.Lang)
		if err != nil {
			log.Debug("frequency analysis failed", zap.String("lang", req.Lang), zap.Error(err))
			return nil, err
		}
		log.Debug("estimated shift", zap.String("lang", req.Lang), zap.Int("shift", cand.Shift))
		return []model.Candidate{cand}, nil
	default:
		return nil, fmt.Errorf("unknown mode %d", int(req.Mode))
	}
}
