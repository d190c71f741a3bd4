package classify

import (
	"strings"
	"unicode"

	"github.com/abadojack/whatlanggo"
)

const (
	// DefaultThreshold is the score at or above which text is treated
	// as Farsi. Callers pass their own threshold to IsMatch; this is
	// the tuning that works for watch-page titles and descriptions,
	// where even partially Farsi text is worth keeping.
	DefaultThreshold = 0.10

	// DefaultScriptWeight is the blend weight of the script-ratio signal.
	DefaultScriptWeight = 0.7

	// DefaultStatWeight is the blend weight of the statistical signal.
	DefaultStatWeight = 0.3

	// DefaultMinStatRunes is the minimum number of non-whitespace runes
	// required before the statistical signal is consulted. Trigram
	// detection on shorter text is noise.
	DefaultMinStatRunes = 20
)

// farsiRanges covers the Unicode blocks Perso-Arabic text is written in.
// The base Arabic block carries standard Persian; the presentation-form
// blocks appear in text extracted from subtitles and older pages.
var farsiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0600, Hi: 0x06FF, Stride: 1}, // Arabic
		{Lo: 0x0750, Hi: 0x077F, Stride: 1}, // Arabic Supplement
		{Lo: 0x08A0, Hi: 0x08FF, Stride: 1}, // Arabic Extended-A
		{Lo: 0xFB50, Hi: 0xFDFF, Stride: 1}, // Arabic Presentation Forms-A
		{Lo: 0xFE70, Hi: 0xFEFF, Stride: 1}, // Arabic Presentation Forms-B
	},
}

// Classifier scores arbitrary text for Farsi-language likelihood.
// The zero-cost construction and lack of internal state make one
// instance safe to share across all crawl workers.
type Classifier struct {
	// scriptWeight is the blend weight of the script-ratio signal.
	scriptWeight float64

	// statWeight is the blend weight of the statistical signal.
	statWeight float64

	// minStatRunes is the rune count below which the statistical
	// signal is skipped and the script ratio stands alone.
	minStatRunes int
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithWeights sets the blend weights for the script-ratio and
// statistical signals. Weights should sum to at most 1; scores are
// clamped to [0,1] either way.
func WithWeights(script, statistical float64) Option {
	return func(c *Classifier) {
		c.scriptWeight = script
		c.statWeight = statistical
	}
}

// WithMinStatRunes sets the minimum non-whitespace rune count before
// the statistical signal is consulted.
func WithMinStatRunes(n int) Option {
	return func(c *Classifier) {
		c.minStatRunes = n
	}
}

// New creates a Classifier with default weights.
func New(opts ...Option) *Classifier {
	c := &Classifier{
		scriptWeight: DefaultScriptWeight,
		statWeight:   DefaultStatWeight,
		minStatRunes: DefaultMinStatRunes,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Score returns the Farsi likelihood of text in [0,1].
// Empty or whitespace-only text scores 0. Text too short for reliable
// statistical detection is scored by script ratio alone.
func (c *Classifier) Score(text string) float64 {
	ratio, count := scriptRatio(text)
	if count == 0 {
		return 0
	}

	if count < c.minStatRunes {
		return clamp(ratio)
	}

	stat, ok := statConfidence(text)
	if !ok {
		return clamp(ratio)
	}

	return clamp(c.scriptWeight*ratio + c.statWeight*stat)
}

// IsMatch reports whether text scores at or above threshold.
// Empty or whitespace-only text never matches, regardless of threshold.
func (c *Classifier) IsMatch(text string, threshold float64) bool {
	if strings.TrimSpace(text) == "" {
		return false
	}
	return c.Score(text) >= threshold
}

// scriptRatio returns the fraction of non-whitespace runes inside the
// Perso-Arabic blocks, and the total non-whitespace rune count.
func scriptRatio(text string) (ratio float64, count int) {
	var farsi int
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		count++
		if unicode.Is(farsiRanges, r) {
			farsi++
		}
	}

	if count == 0 {
		return 0, 0
	}
	return float64(farsi) / float64(count), count
}

// statConfidence returns the statistical Farsi confidence in [0,1].
// A confident detection of a different language is a real signal
// against Farsi and yields 0; a failed detection (no script found,
// zero confidence) reports ok=false so the caller falls back to the
// script ratio alone.
func statConfidence(text string) (confidence float64, ok bool) {
	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Pes {
		return info.Confidence, true
	}
	if info.Confidence == 0 {
		return 0, false
	}
	return 0, true
}

// clamp bounds a score to [0,1]. Caller-supplied weights may sum above
// 1, and the contract promises a score inside the unit interval.
func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 1:
		return 1
	default:
		return score
	}
}
