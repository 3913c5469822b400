package detect

import (
	"strings"
	"unicode"
)

// Method identifies which strategy produced a detection result.
type Method string

const (
	MethodScript      Method = "script"
	MethodStatistical Method = "statistical"
	MethodExternal    Method = "external"
	MethodExplicit    Method = "explicit"
	MethodDefault     Method = "default"
)

// Result is one language detection outcome. Confidence is always in [0,1].
type Result struct {
	Code       string  `json:"code"`
	Confidence float64 `json:"confidence"`
	Method     Method  `json:"method"`
	Supported  bool    `json:"supported"`

	// Ambiguous marks a result the detector itself does not trust,
	// signalling the caller to escalate to remote detection.
	Ambiguous bool `json:"-"`
}

// MinSignificantRunes is the minimum number of non-whitespace runes a
// text needs before any local detection is attempted.
const MinSignificantRunes = 3

// SignificantRunes counts non-whitespace runes in text.
func SignificantRunes(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		count++
	}
	return count
}

// CountLetters counts letter runes in text.
func CountLetters(text string) int {
	count := 0
	for _, r := range strings.TrimSpace(text) {
		if unicode.IsLetter(r) {
			count++
		}
	}
	return count
}
