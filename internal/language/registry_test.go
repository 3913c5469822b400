package language

import "testing"

func TestRegistryIsFixedAndUnique(t *testing.T) {
	t.Parallel()

	all := All()
	if len(all) != 16 {
		t.Fatalf("unexpected registry size: got %d want 16", len(all))
	}

	seen := map[string]struct{}{}
	for _, info := range all {
		if info.Code == "" || info.Name == "" {
			t.Fatalf("incomplete registry entry: %+v", info)
		}
		if _, dup := seen[info.Code]; dup {
			t.Fatalf("duplicate language code: %s", info.Code)
		}
		seen[info.Code] = struct{}{}
	}

	for _, code := range []string{"en", "hi", "zh", "ar"} {
		if !Supported(code) {
			t.Fatalf("expected %s to be supported", code)
		}
	}
	if Supported("xx") {
		t.Fatalf("did not expect xx to be supported")
	}
	if !Supported(Canonical) {
		t.Fatalf("canonical language must be a registry member")
	}
}

func TestLookup(t *testing.T) {
	t.Parallel()

	info, ok := Lookup(" HI ")
	if !ok {
		t.Fatalf("expected lookup hit for hi")
	}
	if info.Name != "Hindi" || info.Native == "" {
		t.Fatalf("unexpected info for hi: %+v", info)
	}

	if _, ok := Lookup("tlh"); ok {
		t.Fatalf("did not expect lookup hit for tlh")
	}
}

func TestRemapBackendCode(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"zh-CN":   "zh",
		"zh_Hant": "zh",
		"in":      "id",
		"pt-BR":   "pt",
		"en-US":   "en",
		"fr":      "fr",
		"":        "",
		"12":      "",
	}
	for raw, want := range cases {
		if got := RemapBackendCode(raw); got != want {
			t.Fatalf("RemapBackendCode(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeTag(t *testing.T) {
	t.Parallel()

	if got := NormalizeTag(" EN_us "); got != "en-us" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("zh-Hans"); got != "zh-hans" {
		t.Fatalf("unexpected normalized tag: %q", got)
	}
	if got := NormalizeTag("en--US"); got != "en-us" {
		t.Fatalf("unexpected collapsed tag: %q", got)
	}
	if got := NormalizeTag("en_123"); got != "" {
		t.Fatalf("expected invalid tag to normalize to empty string, got %q", got)
	}
}

func TestNormalizeCode(t *testing.T) {
	t.Parallel()

	if got := NormalizeCode(" EN-us "); got != "en" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode("zh"); got != "zh" {
		t.Fatalf("unexpected normalized code: %q", got)
	}
	if got := NormalizeCode(" "); got != "" {
		t.Fatalf("expected empty code for blank input, got %q", got)
	}
}
