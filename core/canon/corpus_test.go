package canon

import (
	"testing"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

func TestLoadComplete(t *testing.T) {
	c, err := Load(ScopeComplete)
	if err != nil {
		t.Fatalf("Load(ScopeComplete) error = %v", err)
	}

	if got := len(c.Books); got != 66 {
		t.Fatalf("len(Books) = %d, want 66", got)
	}
	if got := c.TotalChapters(); got != 1189 {
		t.Errorf("TotalChapters() = %d, want 1189", got)
	}
	if got := c.TotalVerses(); got != 31102 {
		t.Errorf("TotalVerses() = %d, want 31102", got)
	}

	first, last := c.Books[0], c.Books[len(c.Books)-1]
	if first.Name != "Genesis" || first.Order != 1 {
		t.Errorf("first book = %s (order %d), want Genesis (order 1)", first.Name, first.Order)
	}
	if last.Name != "Revelation" || last.Order != 66 {
		t.Errorf("last book = %s (order %d), want Revelation (order 66)", last.Name, last.Order)
	}

	for i, b := range c.Books {
		if b.Order != i+1 {
			t.Errorf("Books[%d].Order = %d, want %d", i, b.Order, i+1)
		}
	}
}

func TestLoadScopes(t *testing.T) {
	tests := []struct {
		scope      Scope
		wantBooks  int
		wantVerses int
		firstBook  string
		firstOrder int
	}{
		{scope: ScopeOldTestament, wantBooks: 39, wantVerses: 23145, firstBook: "Genesis", firstOrder: 1},
		{scope: ScopeNewTestament, wantBooks: 27, wantVerses: 7957, firstBook: "Matthew", firstOrder: 40},
	}

	for _, tt := range tests {
		t.Run(string(tt.scope), func(t *testing.T) {
			c, err := Load(tt.scope)
			if err != nil {
				t.Fatalf("Load(%s) error = %v", tt.scope, err)
			}
			if got := len(c.Books); got != tt.wantBooks {
				t.Errorf("len(Books) = %d, want %d", got, tt.wantBooks)
			}
			if got := c.TotalVerses(); got != tt.wantVerses {
				t.Errorf("TotalVerses() = %d, want %d", got, tt.wantVerses)
			}
			if b := c.Books[0]; b.Name != tt.firstBook || b.Order != tt.firstOrder {
				t.Errorf("first book = %s (order %d), want %s (order %d)", b.Name, b.Order, tt.firstBook, tt.firstOrder)
			}
		})
	}
}

func TestKnownVersification(t *testing.T) {
	c, err := Load(ScopeComplete)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		book        string
		chapters    int
		totalVerses int
	}{
		{book: "Genesis", chapters: 50, totalVerses: 1533},
		{book: "Psalms", chapters: 150, totalVerses: 2461},
		{book: "Obadiah", chapters: 1, totalVerses: 21},
		{book: "Matthew", chapters: 28, totalVerses: 1071},
		{book: "Jude", chapters: 1, totalVerses: 25},
		{book: "Revelation", chapters: 22, totalVerses: 404},
	}

	for _, tt := range tests {
		t.Run(tt.book, func(t *testing.T) {
			b, err := c.BookByName(tt.book)
			if err != nil {
				t.Fatalf("BookByName(%q) error = %v", tt.book, err)
			}
			if b.Chapters != tt.chapters {
				t.Errorf("Chapters = %d, want %d", b.Chapters, tt.chapters)
			}
			if b.TotalVerses != tt.totalVerses {
				t.Errorf("TotalVerses = %d, want %d", b.TotalVerses, tt.totalVerses)
			}
		})
	}

	// Psalm 119 is the longest chapter in the canon.
	psalms, err := c.BookByName("Psalms")
	if err != nil {
		t.Fatalf("BookByName(Psalms) error = %v", err)
	}
	if got := psalms.ChapterVerses[118]; got != 176 {
		t.Errorf("Psalm 119 verse count = %d, want 176", got)
	}
}

func TestBookByName(t *testing.T) {
	c, err := Load(ScopeComplete)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	tests := []struct {
		query string
		want  string
	}{
		{query: "Genesis", want: "Genesis"},
		{query: "genesis", want: "Genesis"},
		{query: "1Cor", want: "1 Corinthians"},
		{query: "song-of-solomon", want: "Song of Solomon"},
		{query: " Revelation ", want: "Revelation"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			b, err := c.BookByName(tt.query)
			if err != nil {
				t.Fatalf("BookByName(%q) error = %v", tt.query, err)
			}
			if b.Name != tt.want {
				t.Errorf("BookByName(%q) = %s, want %s", tt.query, b.Name, tt.want)
			}
		})
	}

	t.Run("unknown book", func(t *testing.T) {
		_, err := c.BookByName("Hezekiah")
		if !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("BookByName(Hezekiah) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("out of scope", func(t *testing.T) {
		nt, err := Load(ScopeNewTestament)
		if err != nil {
			t.Fatalf("Load(ScopeNewTestament) error = %v", err)
		}
		if _, err := nt.BookByName("Genesis"); !errors.Is(err, errors.ErrNotFound) {
			t.Errorf("BookByName(Genesis) in NT scope error = %v, want ErrNotFound", err)
		}
	})
}

func TestStats(t *testing.T) {
	c, err := Load(ScopeComplete)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	s := c.Stats(200)
	if s.Books != 66 || s.Chapters != 1189 || s.Verses != 31102 {
		t.Errorf("Stats = %+v, want 66 books, 1189 chapters, 31102 verses", s)
	}
	if s.Words != c.TotalWords() {
		t.Errorf("Stats.Words = %d, want %d", s.Words, c.TotalWords())
	}
	wantHours := 65.8
	if s.EstimatedHours != wantHours {
		t.Errorf("Stats.EstimatedHours = %v, want %v", s.EstimatedHours, wantHours)
	}
	if s.AvgChaptersPerDay != 3.3 {
		t.Errorf("Stats.AvgChaptersPerDay = %v, want 3.3", s.AvgChaptersPerDay)
	}

	// wpm <= 0 falls back to the default pace.
	if got := c.Stats(0).EstimatedHours; got != wantHours {
		t.Errorf("Stats(0).EstimatedHours = %v, want %v", got, wantHours)
	}
}

func TestLoadDataErrors(t *testing.T) {
	validNT := []byte(`{"testament":"new","books":[]}`)

	t.Run("malformed JSON", func(t *testing.T) {
		_, err := LoadData([]byte(`{`), validNT, ScopeComplete)
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("LoadData error = %v, want ErrInvalidInput", err)
		}
	})

	t.Run("unknown testament", func(t *testing.T) {
		_, err := LoadData([]byte(`{"testament":"middle","books":[]}`), validNT, ScopeComplete)
		if !errors.Is(err, errors.ErrCorruptData) {
			t.Errorf("LoadData error = %v, want ErrCorruptData", err)
		}
	})

	t.Run("inconsistent book", func(t *testing.T) {
		bad := []byte(`{"testament":"old","books":[{"name":"Genesis","abbrev":"Gen","genre":"law","chapters":2,"chapter_verses":[3],"total_verses":3,"total_words":50}]}`)
		_, err := LoadData(bad, validNT, ScopeComplete)
		if !errors.Is(err, errors.ErrCorruptData) {
			t.Errorf("LoadData error = %v, want ErrCorruptData", err)
		}
		var dErr *errors.DataError
		if !errors.As(err, &dErr) {
			t.Fatal("LoadData error is not a DataError")
		}
		if dErr.Book != "Genesis" {
			t.Errorf("DataError.Book = %q, want Genesis", dErr.Book)
		}
	})

	t.Run("invalid scope", func(t *testing.T) {
		_, err := LoadData(validNT, validNT, Scope("partial"))
		if !errors.Is(err, errors.ErrInvalidInput) {
			t.Errorf("LoadData error = %v, want ErrInvalidInput", err)
		}
	})
}

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		name  string
		words int
		wpm   int
		want  int
	}{
		{name: "exact minute", words: 200, wpm: 200, want: 1},
		{name: "rounds up", words: 201, wpm: 200, want: 2},
		{name: "just under two", words: 399, wpm: 200, want: 2},
		{name: "zero words", words: 0, wpm: 200, want: 0},
		{name: "default pace", words: 400, wpm: 0, want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ReadingMinutes(tt.words, tt.wpm); got != tt.want {
				t.Errorf("ReadingMinutes(%d, %d) = %d, want %d", tt.words, tt.wpm, got, tt.want)
			}
		})
	}
}
