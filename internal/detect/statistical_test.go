package detect

import "testing"

func TestStatisticalDetectorEnglish(t *testing.T) {
	t.Parallel()

	detector := NewStatisticalDetector()

	result := detector.Detect("The quick brown fox jumps over the lazy dog near the river bank.")
	if result.Code != "en" {
		t.Fatalf("unexpected code: %s", result.Code)
	}
	if result.Method != MethodStatistical {
		t.Fatalf("unexpected method: %s", result.Method)
	}
	if !result.Supported {
		t.Fatalf("expected en to be supported")
	}
	if result.Confidence < 0.9 {
		t.Fatalf("expected clear-margin confidence, got %f", result.Confidence)
	}
	if result.Ambiguous {
		t.Fatalf("did not expect ambiguous result")
	}
}

func TestStatisticalDetectorSpanish(t *testing.T) {
	t.Parallel()

	detector := NewStatisticalDetector()

	result := detector.Detect("Buenos días, ¿cómo está usted? Espero que tenga un buen día.")
	if result.Code != "es" {
		t.Fatalf("unexpected code: %s", result.Code)
	}
}

func TestStatisticalDetectorEmptyInputIsAmbiguous(t *testing.T) {
	t.Parallel()

	detector := NewStatisticalDetector()

	for _, text := range []string{"", "   ", "12345 !!"} {
		result := detector.Detect(text)
		if !result.Ambiguous {
			t.Fatalf("expected ambiguous result for %q, got %+v", text, result)
		}
		if result.Confidence >= 0.6 {
			t.Fatalf("expected low confidence for %q, got %f", text, result.Confidence)
		}
	}
}
