package logging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/logging"
)

func TestRedactEmail(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"normal", "alice@example.com", "al****@example.com"},
		{"unicode local part", "ąłice@example.com", "ął****@example.com"},
		{"short local part", "ab@example.com", "ab@example.com"},
		{"no at sign", "not-an-email", "not-an-email"},
		{"at sign at end", "alice@", "alice@"},
		{"at sign at start", "@example.com", "@example.com"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, logging.RedactEmail(tt.input))
		})
	}
}

func TestRedactUsername(t *testing.T) {
	assert.Equal(t, "al****", logging.RedactUsername("alice"))
	assert.Equal(t, "ab", logging.RedactUsername("ab"))
	assert.Equal(t, "", logging.RedactUsername(""))
}
