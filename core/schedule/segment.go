package schedule

import (
	"fmt"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
)

// ReadingSegment is a contiguous chapter range from a single book assigned
// to one study day. Verse, word, and minute totals are computed once at
// construction and cached.
type ReadingSegment struct {
	// Book is the source book.
	Book *canon.Book

	// StartChapter is the first chapter of the range (1-indexed).
	StartChapter int

	// EndChapter is the last chapter of the range (inclusive).
	EndChapter int

	// VerseCount is the number of verses in the range.
	VerseCount int

	// WordCount is the estimated word count of the range.
	WordCount int

	// EstimatedMinutes is the estimated reading time of the range.
	EstimatedMinutes int
}

// NewSegment builds a segment for chapters start..end of a book, computing
// the cached totals at the given reading pace.
func NewSegment(b *canon.Book, start, end, wpm int) (*ReadingSegment, error) {
	verses, err := b.VersesInRange(start, end)
	if err != nil {
		return nil, err
	}
	words, err := b.WordsInRange(start, end)
	if err != nil {
		return nil, err
	}
	return &ReadingSegment{
		Book:             b,
		StartChapter:     start,
		EndChapter:       end,
		VerseCount:       verses,
		WordCount:        words,
		EstimatedMinutes: canon.ReadingMinutes(words, wpm),
	}, nil
}

// ChapterCount returns the number of chapters in the segment.
func (s *ReadingSegment) ChapterCount() int {
	return s.EndChapter - s.StartChapter + 1
}

// ChapterRange returns the chapter span as "5" or "5-8".
func (s *ReadingSegment) ChapterRange() string {
	if s.StartChapter == s.EndChapter {
		return fmt.Sprintf("%d", s.StartChapter)
	}
	return fmt.Sprintf("%d-%d", s.StartChapter, s.EndChapter)
}

// String returns the segment as a human-readable reference, e.g.
// "Genesis 1-3" or "Obadiah 1".
func (s *ReadingSegment) String() string {
	return s.Book.Name + " " + s.ChapterRange()
}
