package config

import "log/slog"

const (
	LangEN = "en"
	LangES = "es"
)

// NormalizeLanguage maps lang to a supported language, falling back to English.
func NormalizeLanguage(lang string) string {
	switch lang {
	case LangEN:
		return LangEN
	case LangES:
		return LangES
	default:
		slog.Warn("language not supported, falling back to English", "language", lang)
		return LangEN
	}
}
