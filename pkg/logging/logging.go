package logging

import (
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/env"
)

// Setup builds the default slog logger for the given mode. Test and local
// modes get human-readable text output, everything else JSON.
func Setup(mode env.Mode) *slog.Logger {
	opts := &slog.HandlerOptions{Level: mode.SlogLevel()}

	var handler slog.Handler
	switch mode {
	case env.Test, env.Local:
		handler = slog.NewTextHandler(os.Stdout, opts)
	default:
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}

// RedactEmail shows the first 2 runes of the local part and replaces the
// rest with "****", keeping the domain intact. Malformed or too-short
// inputs are returned unchanged.
func RedactEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return s
	}

	local, domain := s[:at], s[at+1:]
	if utf8.RuneCountInString(local) < 3 {
		return s
	}

	offset := 0
	for count := 0; count < 2 && offset < len(local); count++ {
		_, size := utf8.DecodeRuneInString(local[offset:])
		offset += size
	}

	return local[:offset] + "****@" + domain
}

// RedactUsername keeps the first 2 runes and masks the rest.
func RedactUsername(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 {
		return s
	}

	offset := 0
	for count := 0; count < 2 && offset < len(s); count++ {
		_, size := utf8.DecodeRuneInString(s[offset:])
		offset += size
	}

	return s[:offset] + "****"
}
