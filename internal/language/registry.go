package language

import "strings"

// Canonical is the processing language all content is normalized to
// before it reaches generation logic.
const Canonical = "en"

// Info describes one supported language.
type Info struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Native string `json:"native,omitempty"`
}

// supported is the static language table. Loaded once, immutable for the
// process lifetime. Order here is the order returned to API callers.
var supported = []Info{
	{Code: "ar", Name: "Arabic", Native: "العربية"},
	{Code: "de", Name: "German", Native: "Deutsch"},
	{Code: "en", Name: "English", Native: "English"},
	{Code: "es", Name: "Spanish", Native: "Español"},
	{Code: "fr", Name: "French", Native: "Français"},
	{Code: "hi", Name: "Hindi", Native: "हिन्दी"},
	{Code: "id", Name: "Indonesian", Native: "Bahasa Indonesia"},
	{Code: "it", Name: "Italian", Native: "Italiano"},
	{Code: "ja", Name: "Japanese", Native: "日本語"},
	{Code: "ko", Name: "Korean", Native: "한국어"},
	{Code: "pt", Name: "Portuguese", Native: "Português"},
	{Code: "ru", Name: "Russian", Native: "Русский"},
	{Code: "th", Name: "Thai", Native: "ไทย"},
	{Code: "tr", Name: "Turkish", Native: "Türkçe"},
	{Code: "vi", Name: "Vietnamese", Native: "Tiếng Việt"},
	{Code: "zh", Name: "Chinese", Native: "中文"},
}

var supportedByCode = func() map[string]Info {
	m := make(map[string]Info, len(supported))
	for _, info := range supported {
		m[info.Code] = info
	}
	return m
}()

// backendRemap folds backend-specific language codes into canonical
// registry codes. Static and finite; anything not listed falls through
// to NormalizeCode.
var backendRemap = map[string]string{
	"zh-cn":   "zh",
	"zh-tw":   "zh",
	"zh-hans": "zh",
	"zh-hant": "zh",
	"in":      "id",
	"pt-br":   "pt",
	"pt-pt":   "pt",
}

// Supported reports whether code is a registry member.
func Supported(code string) bool {
	_, ok := supportedByCode[NormalizeCode(code)]
	return ok
}

// Lookup resolves a registry entry by code.
func Lookup(code string) (Info, bool) {
	info, ok := supportedByCode[NormalizeCode(code)]
	return info, ok
}

// All returns the supported languages in display order.
func All() []Info {
	out := make([]Info, len(supported))
	copy(out, supported)
	return out
}

// Codes returns the supported language codes in display order.
func Codes() []string {
	codes := make([]string, 0, len(supported))
	for _, info := range supported {
		codes = append(codes, info.Code)
	}
	return codes
}

// RemapBackendCode converts a backend-reported language code into a
// canonical registry code. Unknown codes are reduced to their primary
// subtag; blank or invalid input returns an empty string.
func RemapBackendCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	if mapped, ok := backendRemap[tag]; ok {
		return mapped
	}
	return NormalizeCode(tag)
}

// NormalizeTag normalizes a language tag to lowercase and "-" separators.
// Returns an empty string when the value is blank or contains invalid
// characters.
func NormalizeTag(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}

	trimmed = strings.ReplaceAll(trimmed, "_", "-")
	parts := strings.Split(trimmed, "-")
	normalized := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if !isAlphaLower(part) {
			return ""
		}
		normalized = append(normalized, part)
	}

	if len(normalized) == 0 {
		return ""
	}
	return strings.Join(normalized, "-")
}

// NormalizeCode returns the primary language subtag (for example, "en"
// from "en-US").
func NormalizeCode(raw string) string {
	tag := NormalizeTag(raw)
	if tag == "" {
		return ""
	}
	if dash := strings.IndexByte(tag, '-'); dash >= 0 {
		return tag[:dash]
	}
	return tag
}

func isAlphaLower(value string) bool {
	for _, r := range value {
		if r < 'a' || r > 'z' {
			return false
		}
	}
	return true
}
