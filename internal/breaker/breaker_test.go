package breaker

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/verte-zerg/caesar-breaker/internal/cipher"
	"github.com/verte-zerg/caesar-breaker/internal/freq"
	"github.com/verte-zerg/caesar-breaker/internal/lang"
	"github.com/verte-zerg/caesar-breaker/internal/model"
	"github.com/verte-zerg/caesar-breaker/internal/textgen"
)

func TestEstimateShiftMapsMostFrequentOntoE(t *testing.T) {
	// o is the most frequent letter, so it is moved onto e even though the
	// text was encrypted with key 3.
	shift, err := EstimateShift(freq.Count("khoor zruog"), "en")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if shift != -10 {
		t.Fatalf("expected -10, got %d", shift)
	}
	plain, err := cipher.Rotate("khoor zruog", shift)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if plain != "axeeh phkew" {
		t.Fatalf("expected axeeh phkew, got %q", plain)
	}
}

func TestEstimateShiftRecoversEnglish(t *testing.T) {
	plain := "the sweetest berries were eaten by the eleven geese"
	for _, key := range []int{1, 3, 13, 25, -7} {
		ct, err := cipher.Encrypt(plain, key)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		shift, err := EstimateShift(freq.Count(ct), "en")
		if err != nil {
			t.Fatalf("estimate: %v", err)
		}
		if cipher.Normalize(shift) != cipher.Normalize(-key) {
			t.Fatalf("key %d: expected shift %d, got %d", key, cipher.Normalize(-key), shift)
		}
		got, err := cipher.Rotate(ct, shift)
		if err != nil {
			t.Fatalf("rotate: %v", err)
		}
		if got != plain {
			t.Fatalf("key %d: expected %q, got %q", key, plain, got)
		}
	}
}

func TestEstimateShiftUnsupportedLanguage(t *testing.T) {
	_, err := EstimateShift(freq.Count("khoor zruog"), "fr")
	if !errors.Is(err, lang.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestEstimateShiftNoLetters(t *testing.T) {
	_, err := EstimateShift(freq.Count("123 !?"), "en")
	if !errors.Is(err, ErrNoLetters) {
		t.Fatalf("expected ErrNoLetters, got %v", err)
	}
}

func TestEstimateShiftChecksLanguageFirst(t *testing.T) {
	_, err := EstimateShift(freq.Count(""), "fr")
	if !errors.Is(err, lang.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}

func TestEstimateShiftOutOfAlphabet(t *testing.T) {
	_, err := EstimateShift(freq.Count("ééa"), "en")
	if !errors.Is(err, cipher.ErrOutOfAlphabet) {
		t.Fatalf("expected ErrOutOfAlphabet, got %v", err)
	}
}

func TestEstimateShiftTieBreak(t *testing.T) {
	// x and y both appear twice; x is seen first, so x maps onto e.
	shift, err := EstimateShift(freq.Count("xyxy"), "en")
	if err != nil {
		t.Fatalf("estimate: %v", err)
	}
	if shift != 4-23 {
		t.Fatalf("expected %d, got %d", 4-23, shift)
	}
}

func TestBruteForceSingleLetter(t *testing.T) {
	cands, err := BruteForce("b")
	if err != nil {
		t.Fatalf("brute force: %v", err)
	}
	if len(cands) != cipher.Size {
		t.Fatalf("expected %d candidates, got %d", cipher.Size, len(cands))
	}
	for i, c := range cands {
		want := string(cipher.Alphabet[(1+i)%cipher.Size])
		if c.Shift != i || c.Plaintext != want {
			t.Fatalf("candidate %d: expected %d/%q, got %d/%q", i, i, want, c.Shift, c.Plaintext)
		}
	}
	if cands[25].Plaintext != "a" {
		t.Fatalf("expected wrap to a, got %q", cands[25].Plaintext)
	}
}

func TestBruteForceContainsPlaintext(t *testing.T) {
	gen := textgen.New(99)
	for i := 0; i < 50; i++ {
		plain := gen.Text(5, 0.3)
		key := gen.Shift()
		ct, err := cipher.Encrypt(plain, key)
		if err != nil {
			t.Fatalf("encrypt: %v", err)
		}
		cands, err := BruteForce(ct)
		if err != nil {
			t.Fatalf("brute force: %v", err)
		}
		if len(cands) != cipher.Size {
			t.Fatalf("expected %d candidates, got %d", cipher.Size, len(cands))
		}
		if got := cands[cipher.Normalize(-key)].Plaintext; got != plain {
			t.Fatalf("expected %q for key %d, got %q", plain, key, got)
		}
	}
}

func TestBruteForceRejectsUppercase(t *testing.T) {
	if _, err := BruteForce("Abc"); !errors.Is(err, cipher.ErrOutOfAlphabet) {
		t.Fatalf("expected ErrOutOfAlphabet, got %v", err)
	}
}

func TestFrequency(t *testing.T) {
	cand, err := Frequency("khoor zruog", "en")
	if err != nil {
		t.Fatalf("frequency: %v", err)
	}
	if cand.Shift != -10 || cand.Plaintext != "axeeh phkew" {
		t.Fatalf("unexpected candidate %+v", cand)
	}
}

func TestFrequencyWithCountsUsesGivenCounts(t *testing.T) {
	// Counts from another text decide the shift; text is only rotated.
	cand, err := FrequencyWithCounts("abc", freq.Count("ggg"), "en")
	if err != nil {
		t.Fatalf("frequency: %v", err)
	}
	if cand.Shift != -2 || cand.Plaintext != "yza" {
		t.Fatalf("unexpected candidate %+v", cand)
	}
	if _, err := FrequencyWithCounts("abc", freq.Count(""), "en"); !errors.Is(err, ErrNoLetters) {
		t.Fatalf("expected ErrNoLetters, got %v", err)
	}
}

func TestRunNormalizesAndLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(zap.New(core))

	cands, err := b.Run(context.Background(), model.Request{
		Ciphertext: "KHOOR ZRUOG",
		Mode:       model.ModeFrequency,
		Lang:       "en",
	})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(cands) != 1 || cands[0].Plaintext != "axeeh phkew" {
		t.Fatalf("unexpected candidates %+v", cands)
	}
	if logs.FilterMessage("estimated shift").Len() != 1 {
		t.Fatalf("expected estimated shift log entry, got %v", logs.All())
	}
	freqLogs := logs.FilterMessage("letter frequencies").All()
	if len(freqLogs) != 1 || freqLogs[0].ContextMap()["most_frequent"] != "o" {
		t.Fatalf("expected one letter frequencies entry for o, got %v", freqLogs)
	}

	cands, err = b.Run(context.Background(), model.Request{Ciphertext: "B", Mode: model.ModeBruteForce})
	if err != nil {
		t.Fatalf("run brute force: %v", err)
	}
	if len(cands) != cipher.Size || cands[0].Plaintext != "b" {
		t.Fatalf("unexpected brute force output %+v", cands)
	}
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(nil).Run(ctx, model.Request{Ciphertext: "abc"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRunUnsupportedLanguage(t *testing.T) {
	_, err := New(nil).Run(context.Background(), model.Request{Ciphertext: "abc", Mode: model.ModeFrequency, Lang: "fr"})
	if !errors.Is(err, lang.ErrUnsupportedLanguage) {
		t.Fatalf("expected ErrUnsupportedLanguage, got %v", err)
	}
}
