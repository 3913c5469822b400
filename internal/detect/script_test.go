package detect

import "testing"

func TestScriptClassifierMatchesScripts(t *testing.T) {
	t.Parallel()

	classifier := NewScriptClassifier()

	cases := map[string]string{
		"आपका स्वागत है":    "hi",
		"مرحبا بالعالم":     "ar",
		"你好世界，今天天气很好":       "zh",
		"こんにちは、元気ですか":       "ja",
		"漢字とひらがなが混ざった日本語の文章": "ja",
		"안녕하세요 반갑습니다":       "ko",
		"สวัสดีครับ ยินดีต้อนรับ": "th",
		"Привет, как дела?": "ru",
	}

	for text, want := range cases {
		result := classifier.Classify(text)
		if result == nil {
			t.Fatalf("expected script match for %q", text)
		}
		if result.Code != want {
			t.Fatalf("Classify(%q) = %s, want %s", text, result.Code, want)
		}
		if result.Method != MethodScript {
			t.Fatalf("unexpected method: %s", result.Method)
		}
		if !result.Supported {
			t.Fatalf("expected %s to be marked supported", want)
		}
		if result.Confidence < 0.9 || result.Confidence > 1 {
			t.Fatalf("unexpected confidence: %f", result.Confidence)
		}
	}
}

func TestScriptClassifierDefersLatinAndShortInput(t *testing.T) {
	t.Parallel()

	classifier := NewScriptClassifier()

	for _, text := range []string{
		"Hello world",
		"Guten Morgen, wie geht es dir?",
		"हि", // below the significant-rune minimum
		"",
		"  \n\t ",
	} {
		if result := classifier.Classify(text); result != nil {
			t.Fatalf("expected nil for %q, got %+v", text, result)
		}
	}
}

func TestScriptClassifierDefersMixedScript(t *testing.T) {
	t.Parallel()

	classifier := NewScriptClassifier()

	// Mostly Latin with a trailing Devanagari word; no script dominates.
	if result := classifier.Classify("This sentence is mostly English text स्वागत"); result != nil {
		t.Fatalf("expected nil for mixed-script text, got %+v", result)
	}
}

func TestSignificantRunes(t *testing.T) {
	t.Parallel()

	if got := SignificantRunes(" a b "); got != 2 {
		t.Fatalf("unexpected count: %d", got)
	}
	if got := SignificantRunes("नमस्ते"); got < 3 {
		t.Fatalf("expected at least 3 significant runes, got %d", got)
	}
}
