// Package refs parses human-style chapter references such as
// "Genesis 1-11", "1 Corinthians 3", or "Song of Solomon".
package refs

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

// Ref is a parsed chapter reference: a book name plus an optional chapter
// range. A zero StartChapter means the whole book.
type Ref struct {
	// Book is the book name as written (e.g., "1 Corinthians", "Gen").
	Book string `json:"book"`

	// StartChapter is the first chapter of the range (1-indexed, 0 when the
	// reference names the whole book).
	StartChapter int `json:"start_chapter,omitempty"`

	// EndChapter is the last chapter of the range (0 when absent; a bare
	// chapter reference has EndChapter equal to StartChapter).
	EndChapter int `json:"end_chapter,omitempty"`
}

// refGrammar is the participle grammar for chapter references.
// Examples: "Genesis", "Genesis 1", "Genesis 1-11", "1 Corinthians 3-5",
// "Song of Solomon 2"
//
//nolint:govet // participle grammar tags are not standard struct tags
type refGrammar struct {
	BookPrefix string        `@Int?`
	BookWords  []string      `@Ident+`
	Range      *chapterRange `@@?`
}

//nolint:govet // participle grammar tags are not standard struct tags
type chapterRange struct {
	Start int  `@Int`
	End   *int `( "-" @Int )?`
}

// refLexer defines the lexer for chapter references.
var refLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z][A-Za-z]*`},
	{Name: "Punct", Pattern: `-`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// refParser is the participle parser for chapter references.
var refParser = participle.MustBuild[refGrammar](
	participle.Lexer(refLexer),
	participle.Elide("Whitespace"),
)

// Parse parses a chapter reference string.
// Supported formats:
//   - "Genesis" (whole book)
//   - "Genesis 3" (single chapter)
//   - "Genesis 1-11" (chapter range)
//   - "1 Corinthians 3-5" (numbered book with range)
//   - "Song of Solomon" (multi-word book name)
func Parse(s string) (*Ref, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, &errors.ParseError{Format: "reference", Message: "empty reference"}
	}

	parsed, err := refParser.ParseString("", s)
	if err != nil {
		return nil, &errors.ParseError{
			Format:  "reference",
			Message: fmt.Sprintf("invalid reference %q", s),
			Err:     err,
		}
	}

	book := strings.Join(parsed.BookWords, " ")
	if parsed.BookPrefix != "" {
		book = parsed.BookPrefix + " " + book
	}

	ref := &Ref{Book: book}
	if parsed.Range != nil {
		ref.StartChapter = parsed.Range.Start
		ref.EndChapter = parsed.Range.Start
		if parsed.Range.End != nil {
			ref.EndChapter = *parsed.Range.End
		}
	}
	return ref, nil
}

// String returns the reference in its written form.
func (r *Ref) String() string {
	var sb strings.Builder
	sb.WriteString(r.Book)
	if r.StartChapter > 0 {
		sb.WriteString(" ")
		sb.WriteString(strconv.Itoa(r.StartChapter))
		if r.EndChapter > r.StartChapter {
			sb.WriteString("-")
			sb.WriteString(strconv.Itoa(r.EndChapter))
		}
	}
	return sb.String()
}

// IsWholeBook returns true when the reference names a book without chapters.
func (r *Ref) IsWholeBook() bool {
	return r.StartChapter == 0
}

// Resolve looks the reference up in a corpus and returns the book with the
// concrete chapter bounds, expanding whole-book references to 1..Chapters.
// The range is validated against the book.
func (r *Ref) Resolve(c *canon.Corpus) (*canon.Book, int, int, error) {
	book, err := c.BookByName(r.Book)
	if err != nil {
		return nil, 0, 0, err
	}

	start, end := r.StartChapter, r.EndChapter
	if r.IsWholeBook() {
		start, end = 1, book.Chapters
	}
	if _, err := book.VersesInRange(start, end); err != nil {
		return nil, 0, 0, err
	}
	return book, start, end, nil
}
