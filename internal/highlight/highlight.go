// Package highlight turns buffer text into colored fragments for the
// editor's syntax preview.
//
// A Decorator is fixed to one grammar and one color style at
// construction. Decorate never reorders or rewrites text: concatenating
// the Text of every returned fragment always reproduces the input
// exactly, so frontends can render fragments in order without tracking
// offsets.
package highlight

import (
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"

	"quill/internal/errors"
	"quill/internal/log"
)

// Category is the coarse syntactic class of a fragment, used by
// frontends that style classes rather than raw colors.
type Category string

const (
	CategoryPlain    Category = "plain"
	CategoryKeyword  Category = "keyword"
	CategoryName     Category = "name"
	CategoryString   Category = "string"
	CategoryNumber   Category = "number"
	CategoryComment  Category = "comment"
	CategoryOperator Category = "operator"
)

// Fragment is a run of text with one syntactic class and display color.
type Fragment struct {
	Category Category
	Color    string // "#rrggbb", or "" for the default foreground
	Text     string
}

// Decorator tokenizes text under a fixed grammar and style.
type Decorator struct {
	grammar string
	lexer   chroma.Lexer
	style   *chroma.Style
}

// New builds a decorator for the named grammar and chroma style.
// An unknown grammar is an error; an unknown style falls back to
// chroma's default style with a warning, since color choice is
// cosmetic where grammar choice is not.
func New(grammar, styleName string) (*Decorator, error) {
	lexer := lexers.Get(grammar)
	if lexer == nil {
		return nil, errors.NewHighlightError("no lexer for grammar", grammar, errors.GrammarNotFound, nil)
	}
	lexer = chroma.Coalesce(lexer)

	// styles.Get never returns nil; unknown names come back as the
	// fallback style. Color choice is cosmetic where grammar choice is
	// not, so that only rates a warning.
	style := styles.Get(styleName)
	if style == styles.Fallback && styleName != styles.Fallback.Name {
		log.LogWithFields(log.F("style", styleName)).Warn("unknown highlight style, using fallback")
	}

	return &Decorator{grammar: grammar, lexer: lexer, style: style}, nil
}

// Plain returns a decorator that colors nothing: every Decorate call
// yields the input as one plain fragment. Used as the fallback when the
// configured grammar doesn't resolve.
func Plain() *Decorator {
	return &Decorator{style: styles.Fallback}
}

// Grammar returns the grammar name the decorator was built with.
func (d *Decorator) Grammar() string {
	return d.grammar
}

// Decorate splits text into colored fragments. Tokenizer failures are
// recoverable: the whole text comes back as one plain fragment and the
// error reports what went wrong. In every case the fragment texts
// concatenate back to the input.
func (d *Decorator) Decorate(text string) ([]Fragment, error) {
	if text == "" {
		return nil, nil
	}
	if d.lexer == nil {
		return []Fragment{{Category: CategoryPlain, Text: text}}, nil
	}

	iterator, err := d.lexer.Tokenise(nil, text)
	if err != nil {
		return []Fragment{{Category: CategoryPlain, Text: text}},
			errors.NewHighlightError("tokenize failed", d.grammar, errors.TokenizeFailed, err)
	}

	var fragments []Fragment
	var consumed int
	for token := iterator(); token != chroma.EOF; token = iterator() {
		if token.Value == "" {
			continue
		}
		fragments = append(fragments, Fragment{
			Category: categoryOf(token.Type),
			Color:    d.colorOf(token.Type),
			Text:     token.Value,
		})
		consumed += len(token.Value)
	}

	// A lexer that stops short must not lose text; emit the remainder
	// as a plain tail fragment.
	if consumed < len(text) {
		fragments = append(fragments, Fragment{
			Category: CategoryPlain,
			Text:     text[consumed:],
		})
	}

	return fragments, nil
}

// DecorateOrPlain is Decorate with the error folded away: recoverable
// failures are logged and the plain fallback fragments are returned.
func (d *Decorator) DecorateOrPlain(text string) []Fragment {
	fragments, err := d.Decorate(text)
	if err != nil {
		log.LogWithFields(
			log.F("grammar", d.grammar),
			log.F("error", err),
		).Warn("highlight failed, rendering plain")
	}
	return fragments
}

func categoryOf(tt chroma.TokenType) Category {
	switch {
	case tt.InCategory(chroma.Keyword):
		return CategoryKeyword
	case tt.InSubCategory(chroma.LiteralString):
		return CategoryString
	case tt.InSubCategory(chroma.LiteralNumber):
		return CategoryNumber
	case tt.InCategory(chroma.Name):
		return CategoryName
	case tt.InCategory(chroma.Comment):
		return CategoryComment
	case tt.InCategory(chroma.Operator), tt.InCategory(chroma.Punctuation):
		return CategoryOperator
	default:
		return CategoryPlain
	}
}

func (d *Decorator) colorOf(tt chroma.TokenType) string {
	entry := d.style.Get(tt)
	if !entry.Colour.IsSet() {
		return ""
	}
	return strings.ToLower(entry.Colour.String())
}
