package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quill/internal/errors"
)

const rustSample = `fn main() {
    // greet the world
    let greeting = "hello";
    println!("{} {}", greeting, 42);
}
`

func joined(fragments []Fragment) string {
	var b strings.Builder
	for _, f := range fragments {
		b.WriteString(f.Text)
	}
	return b.String()
}

func TestNew(t *testing.T) {
	t.Run("known grammar", func(t *testing.T) {
		d, err := New("rust", "dracula")
		require.NoError(t, err)
		assert.Equal(t, "rust", d.Grammar())
	})

	t.Run("unknown grammar", func(t *testing.T) {
		_, err := New("klingon", "dracula")
		require.Error(t, err)
		assert.True(t, errors.IsGrammarNotFound(err))
	})

	t.Run("unknown style falls back", func(t *testing.T) {
		d, err := New("rust", "no-such-style")
		require.NoError(t, err)

		fragments, err := d.Decorate(rustSample)
		require.NoError(t, err)
		assert.Equal(t, rustSample, joined(fragments))
	})
}

func TestDecorateRoundTrip(t *testing.T) {
	d, err := New("rust", "dracula")
	require.NoError(t, err)

	inputs := map[string]string{
		"rust source":    rustSample,
		"empty lines":    "\n\n\n",
		"not rust":       "once upon a time, in a land of pure text",
		"unclosed quote": `let s = "unterminated`,
		"unicode":        "let s = \"héllo wörld\"; // ünïcode\n",
	}

	for name, input := range inputs {
		t.Run(name, func(t *testing.T) {
			fragments, err := d.Decorate(input)
			require.NoError(t, err)
			assert.Equal(t, input, joined(fragments))
		})
	}
}

func TestPlain(t *testing.T) {
	d := Plain()

	fragments, err := d.Decorate("anything at all\n")
	require.NoError(t, err)
	require.Len(t, fragments, 1)
	assert.Equal(t, CategoryPlain, fragments[0].Category)
	assert.Equal(t, "anything at all\n", fragments[0].Text)
	assert.Empty(t, fragments[0].Color)
}

func TestDecorateEmpty(t *testing.T) {
	d, err := New("rust", "dracula")
	require.NoError(t, err)

	fragments, err := d.Decorate("")
	require.NoError(t, err)
	assert.Empty(t, fragments)
}

func TestDecorateCategories(t *testing.T) {
	d, err := New("rust", "dracula")
	require.NoError(t, err)

	fragments, err := d.Decorate(rustSample)
	require.NoError(t, err)

	byCategory := map[Category]bool{}
	for _, f := range fragments {
		byCategory[f.Category] = true
	}

	assert.True(t, byCategory[CategoryKeyword], "expected keyword fragments for fn/let")
	assert.True(t, byCategory[CategoryString], "expected string fragments")
	assert.True(t, byCategory[CategoryComment], "expected comment fragments")
	assert.True(t, byCategory[CategoryNumber], "expected number fragments")
}

func TestDecorateColors(t *testing.T) {
	d, err := New("rust", "dracula")
	require.NoError(t, err)

	fragments, err := d.Decorate(rustSample)
	require.NoError(t, err)

	sawColor := false
	for _, f := range fragments {
		if f.Color == "" {
			continue
		}
		sawColor = true
		assert.Regexp(t, `^#[0-9a-f]{6}$`, f.Color)
	}
	assert.True(t, sawColor, "expected at least one colored fragment")
}

func TestDecorateOrPlain(t *testing.T) {
	d, err := New("rust", "dracula")
	require.NoError(t, err)

	fragments := d.DecorateOrPlain(rustSample)
	assert.Equal(t, rustSample, joined(fragments))
}
