package sanitizex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Mohamed-Hany1211/Moktashef-back/pkg/sanitizex"
)

func TestCleanSingleLine(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain", "alice", "alice"},
		{"surrounding whitespace", "  alice@example.com  ", "alice@example.com"},
		{"embedded newline", "ali\nce", "ali ce"},
		{"embedded tab", "ali\tce", "ali ce"},
		{"collapsed spaces", "a    b", "a b"},
		{"control characters", "ali\x00ce", "ali ce"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sanitizex.CleanSingleLine(tt.input))
		})
	}
}
