package detect

import (
	"strings"
	"sync"

	lingua "github.com/pemistahl/lingua-go"

	"studyloop.dev/backend/internal/language"
)

// Fixed heuristic confidence constants. The n-gram comparison itself is
// delegated to lingua; confidence reflects how much input it had to work
// with, with longer text earning a clearer margin.
const (
	statConfidenceLong  = 0.95
	statConfidenceShort = 0.7
	statConfidenceWeak  = 0.5

	statLongLetterCount = 5
)

// referenceLanguages maps registry codes to lingua reference profiles.
var referenceLanguages = map[string]lingua.Language{
	"ar": lingua.Arabic,
	"de": lingua.German,
	"en": lingua.English,
	"es": lingua.Spanish,
	"fr": lingua.French,
	"hi": lingua.Hindi,
	"id": lingua.Indonesian,
	"it": lingua.Italian,
	"ja": lingua.Japanese,
	"ko": lingua.Korean,
	"pt": lingua.Portuguese,
	"ru": lingua.Russian,
	"th": lingua.Thai,
	"tr": lingua.Turkish,
	"vi": lingua.Vietnamese,
	"zh": lingua.Chinese,
}

// StatisticalDetector compares n-gram frequency profiles of the input
// against reference profiles for every supported language. Pure CPU-bound
// work; no I/O.
type StatisticalDetector struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewStatisticalDetector() *StatisticalDetector {
	return &StatisticalDetector{}
}

// Detect returns the best statistical match for text. Results the detector
// does not trust are flagged ambiguous so the caller can escalate.
func (d *StatisticalDetector) Detect(text string) Result {
	sample := strings.TrimSpace(text)
	letters := CountLetters(sample)
	if letters == 0 {
		return Result{Method: MethodStatistical, Ambiguous: true}
	}

	detected, exists := d.linguaDetector().DetectLanguageOf(sample)
	if !exists {
		return Result{Method: MethodStatistical, Ambiguous: true}
	}

	code := strings.ToLower(detected.IsoCode639_1().String())
	if len(code) != 2 {
		return Result{Method: MethodStatistical, Ambiguous: true}
	}

	confidence := statConfidenceWeak
	switch {
	case letters >= statLongLetterCount:
		confidence = statConfidenceLong
	case letters >= MinSignificantRunes:
		confidence = statConfidenceShort
	}

	return Result{
		Code:       code,
		Confidence: confidence,
		Method:     MethodStatistical,
		Supported:  language.Supported(code),
		Ambiguous:  confidence <= statConfidenceWeak,
	}
}

func (d *StatisticalDetector) linguaDetector() lingua.LanguageDetector {
	d.once.Do(func() {
		languages := make([]lingua.Language, 0, len(referenceLanguages))
		for _, code := range language.Codes() {
			if ref, ok := referenceLanguages[code]; ok {
				languages = append(languages, ref)
			}
		}
		d.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(languages...).
			Build()
	})
	return d.detector
}
