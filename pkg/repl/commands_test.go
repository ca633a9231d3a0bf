package repl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		token string
		want  Command
	}{
		{"li", CmdList},
		{"lis", CmdList},
		{"list", CmdList},
		{"lo", CmdLook},
		{"look", CmdLook},
		{"ex", CmdExit},
		{"exit", CmdExit},
		{"at", CmdAttachment},
		{"attach", CmdAttachment},
		{"op", CmdOpen},
		{"ig", CmdIgnore},
		{"re", CmdRemove},
		{"co", CmdCourse},
		{"course", CmdCourse},
		{"l", CmdNone},
		{"", CmdNone},
		{"lx", CmdNone},
		{"lists", CmdNone},
		{"looks", CmdNone},
		{"xl", CmdNone},
		{"LIST", CmdNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Resolve(tt.token), "token %q", tt.token)
	}
}

func TestVocabularyPrefixesAreDistinct(t *testing.T) {
	seen := make(map[string]Command)
	for _, c := range Vocabulary {
		p := string(c)[:minPrefix]
		if other, ok := seen[p]; ok {
			t.Fatalf("%s and %s share the prefix %q", c, other, p)
		}
		seen[p] = c
		assert.Equal(t, c, Resolve(p))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		line, token, target string
	}{
		{"list", "list", ""},
		{"  look   3  ", "look", "3"},
		{"ignore Art History", "ignore", "Art History"},
		{"ig\t\"Math\"", "ig", `"Math"`},
		{"", "", ""},
	}
	for _, tt := range tests {
		token, target := parse(tt.line)
		assert.Equal(t, tt.token, token, tt.line)
		assert.Equal(t, tt.target, target, tt.line)
	}
}

func TestUnquote(t *testing.T) {
	assert.Equal(t, "Math", unquote(`"Math"`))
	assert.Equal(t, "Art History", unquote(`'Art History'`))
	assert.Equal(t, `"Math`, unquote(`"Math`))
	assert.Equal(t, "Math", unquote("Math"))
	assert.Equal(t, "", unquote(`""`))
}
