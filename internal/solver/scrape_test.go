package solver

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractSecretCode(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		wantCode   string
		wantSource string
	}{
		{
			name:       "secret code is pattern",
			text:       "Header 2024\nThe secret code is 4821 today\n",
			wantCode:   "4821",
			wantSource: "secret-code-is",
		},
		{
			name:       "first number on the secret code line",
			text:       "Page 1\nSecret code: ABC-77 (valid 3 days)",
			wantCode:   "77",
			wantSource: "first-number-on-line",
		},
		{
			name:       "secret code line without digits falls back to first number in page",
			text:       "The secret code is hidden\nWe sold 42 widgets\nand 7 gadgets",
			wantCode:   "42",
			wantSource: "first-number-in-page",
		},
		{
			name:       "case-insensitive line match",
			text:       "SECRET CODE => 915",
			wantCode:   "915",
			wantSource: "first-number-on-line",
		},
		{
			name:       "later qualifying line is used when an earlier one has no digits",
			text:       "secret code below\n100 things\nthe code (secret): 31337",
			wantCode:   "31337",
			wantSource: "first-number-on-line",
		},
		{
			name:       "no digits anywhere returns trimmed text",
			text:       "  \n nothing to see here \n",
			wantCode:   "nothing to see here",
			wantSource: "full-text",
		},
		{
			name:       "windows line endings",
			text:       "intro 5\r\nYour secret code is 123\r\n",
			wantCode:   "123",
			wantSource: "secret-code-is",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, source := ExtractSecretCode(tt.text)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, tt.wantSource, source)
		})
	}
}

func TestBuildCommand(t *testing.T) {
	assert.Equal(t,
		`uv http get https://example.com/uv.json?email=a@b.c -H "Accept: application/json"`,
		buildCommand("https://example.com/uv.json", "a@b.c"))
}
