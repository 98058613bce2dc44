package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLaTeX(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "This is normal text", "This is normal text"},
		{"backslash", `test\backslash`, `test\textbackslash{}backslash`},
		{"braces", "text{with}braces", `text\{with\}braces`},
		{"dollar", "cost $100", `cost \$100`},
		{"ampersand", "A & B", `A \& B`},
		{"percent", "100% complete", `100\% complete`},
		{"hash", "issue #123", `issue \#123`},
		{"caret", "x^2", `x\textasciicircum{}2`},
		{"underscore", "variable_name", `variable\_name`},
		{"tilde", "~approx", `\textasciitilde{}approx`},
		{"line break", "one\ntwo", `one\\ two`},
		{"all", `${}~&%#^_\`, `\$\{\}\textasciitilde{}\&\%\#\textasciicircum{}\_\textbackslash{}`},
		{"unicode", "résumé α β γ", "résumé α β γ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeLaTeX(tt.in))
		})
	}
}

func TestEscapeLaTeX_EscapesOnce(t *testing.T) {
	// the backslash introduced for '{' must not itself be escaped
	assert.Equal(t, `\{`, EscapeLaTeX("{"))
	assert.Equal(t, `\textbackslash{}\{`, EscapeLaTeX(`\{`))
}
