// Package canon holds the canonical book index: the 66 books with their
// chapter layouts, and the range queries reading plans are built from.
package canon

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

//go:embed data/old_testament.json
var oldTestamentJSON []byte

//go:embed data/new_testament.json
var newTestamentJSON []byte

// DefaultWordsPerMinute is the reading pace assumed when none is given.
const DefaultWordsPerMinute = 200

// testamentFile mirrors the embedded data file layout.
type testamentFile struct {
	Testament Testament `json:"testament"`
	Books     []*Book   `json:"books"`
}

// Corpus is the ordered book list for one scope, with lookup indexes.
type Corpus struct {
	// Scope is the slice of the canon this corpus covers.
	Scope Scope

	// Books are in canonical order.
	Books []*Book

	byKey map[string]*Book
}

// Stats summarizes a corpus for reporting.
type Stats struct {
	Scope          Scope   `json:"scope"`
	Books          int     `json:"books"`
	Chapters       int     `json:"chapters"`
	Verses         int     `json:"verses"`
	Words          int     `json:"words"`
	EstimatedHours float64 `json:"estimated_hours"`
	// AvgChaptersPerDay is the chapter pace required to finish in a year.
	AvgChaptersPerDay float64 `json:"avg_chapters_per_day_365"`
}

// Load builds the corpus for a scope from the embedded data files.
func Load(scope Scope) (*Corpus, error) {
	return LoadData(oldTestamentJSON, newTestamentJSON, scope)
}

// LoadData builds a corpus from raw data files. Exposed so the corpus
// importer can verify regenerated data round-trips through the same
// validation as the embedded files.
func LoadData(oldJSON, newJSON []byte, scope Scope) (*Corpus, error) {
	if !scope.IsValid() {
		return nil, errors.NewValidation("scope", fmt.Sprintf("unknown scope %q", string(scope)))
	}

	var all []*Book
	for _, raw := range [][]byte{oldJSON, newJSON} {
		var tf testamentFile
		if err := json.Unmarshal(raw, &tf); err != nil {
			return nil, errors.NewParse("JSON", "", err.Error())
		}
		if !tf.Testament.IsValid() {
			return nil, errors.NewData("", fmt.Sprintf("unknown testament %q", string(tf.Testament)))
		}
		for _, b := range tf.Books {
			b.Testament = tf.Testament
			all = append(all, b)
		}
	}

	c := &Corpus{
		Scope: scope,
		byKey: make(map[string]*Book),
	}
	for i, b := range all {
		b.Order = i + 1
		if err := b.Validate(); err != nil {
			return nil, err
		}
		if !scope.Includes(b.Testament) {
			continue
		}
		c.Books = append(c.Books, b)
		c.byKey[strings.ToLower(b.Name)] = b
		c.byKey[strings.ToLower(b.Abbrev)] = b
		c.byKey[b.Slug()] = b
	}
	return c, nil
}

// BookByName finds a book by full name, OSIS abbreviation, or slug.
// Lookup is case-insensitive.
func (c *Corpus) BookByName(name string) (*Book, error) {
	if b, ok := c.byKey[strings.ToLower(strings.TrimSpace(name))]; ok {
		return b, nil
	}
	return nil, errors.NewNotFound("book", name)
}

// TotalChapters returns the chapter count across the corpus.
func (c *Corpus) TotalChapters() int {
	total := 0
	for _, b := range c.Books {
		total += b.Chapters
	}
	return total
}

// TotalVerses returns the verse count across the corpus.
func (c *Corpus) TotalVerses() int {
	total := 0
	for _, b := range c.Books {
		total += b.TotalVerses
	}
	return total
}

// TotalWords returns the approximate word count across the corpus.
func (c *Corpus) TotalWords() int {
	total := 0
	for _, b := range c.Books {
		total += b.TotalWords
	}
	return total
}

// Stats computes the corpus summary at the given reading pace.
func (c *Corpus) Stats(wpm int) Stats {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	words := c.TotalWords()
	chapters := c.TotalChapters()
	return Stats{
		Scope:             c.Scope,
		Books:             len(c.Books),
		Chapters:          chapters,
		Verses:            c.TotalVerses(),
		Words:             words,
		EstimatedHours:    math.Round(float64(words)/float64(wpm)/60*10) / 10,
		AvgChaptersPerDay: math.Round(float64(chapters)/365*10) / 10,
	}
}

// ReadingMinutes estimates reading time for a word count at the given pace,
// rounded up to whole minutes.
func ReadingMinutes(words, wpm int) int {
	if wpm <= 0 {
		wpm = DefaultWordsPerMinute
	}
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / float64(wpm)))
}
