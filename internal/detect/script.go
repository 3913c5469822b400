package detect

import (
	"unicode"

	"studyloop.dev/backend/internal/language"
)

// scriptSampleRunes bounds how much of the input the classifier inspects.
const scriptSampleRunes = 96

// scriptConfidence is the fixed confidence assigned to an unambiguous
// script match. Script hits are treated as high-confidence by callers.
const scriptConfidence = 0.95

// scriptDominance is the minimum share of significant runes a single
// script must cover for a match; below it the text counts as mixed.
const scriptDominance = 0.6

type scriptRange struct {
	lo, hi rune
}

type scriptMapping struct {
	code   string
	ranges []scriptRange
}

// scriptTable maps Unicode blocks to registry languages, priority ordered.
// Kana is checked before the CJK block so Japanese text with kanji is not
// misread as Chinese; Latin-script languages are deliberately absent and
// fall through to the statistical detector.
var scriptTable = []scriptMapping{
	{code: "ja", ranges: []scriptRange{{0x3040, 0x309F}, {0x30A0, 0x30FF}}},
	{code: "ko", ranges: []scriptRange{{0xAC00, 0xD7AF}, {0x1100, 0x11FF}, {0x3130, 0x318F}}},
	{code: "zh", ranges: []scriptRange{{0x4E00, 0x9FFF}, {0x3400, 0x4DBF}}},
	{code: "hi", ranges: []scriptRange{{0x0900, 0x097F}}},
	{code: "ar", ranges: []scriptRange{{0x0600, 0x06FF}, {0x0750, 0x077F}}},
	{code: "th", ranges: []scriptRange{{0x0E00, 0x0E7F}}},
	{code: "ru", ranges: []scriptRange{{0x0400, 0x04FF}}},
}

// ScriptClassifier maps Unicode character ranges to candidate languages.
// Pure and synchronous; no I/O.
type ScriptClassifier struct{}

func NewScriptClassifier() *ScriptClassifier {
	return &ScriptClassifier{}
}

// Classify inspects the leading significant runes of text and returns a
// script-based detection, or nil when the text is too short, Latin-script,
// or mixed-script, deferring to the statistical detector.
func (c *ScriptClassifier) Classify(text string) *Result {
	counts := make(map[string]int, len(scriptTable))
	total := 0

	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		total++
		if code := scriptFor(r); code != "" {
			counts[code]++
		}
		if total >= scriptSampleRunes {
			break
		}
	}

	if total < MinSignificantRunes {
		return nil
	}

	// Japanese prose mixes kana with kanji from the CJK block; any kana
	// presence claims the CJK share for Japanese.
	if counts["ja"] > 0 {
		counts["ja"] += counts["zh"]
		counts["zh"] = 0
	}

	for _, mapping := range scriptTable {
		hits := counts[mapping.code]
		if hits == 0 {
			continue
		}
		if float64(hits)/float64(total) < scriptDominance {
			// Mixed script; let the statistical detector decide.
			return nil
		}
		return &Result{
			Code:       mapping.code,
			Confidence: scriptConfidence,
			Method:     MethodScript,
			Supported:  language.Supported(mapping.code),
		}
	}

	return nil
}

func scriptFor(r rune) string {
	for _, mapping := range scriptTable {
		for _, rng := range mapping.ranges {
			if r >= rng.lo && r <= rng.hi {
				return mapping.code
			}
		}
	}
	return ""
}
