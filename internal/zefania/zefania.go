// Package zefania imports Zefania XML Bible modules, a Bible interchange
// format used primarily in German-speaking regions. The importer counts
// verses per chapter and estimates word counts from verse text, regenerating
// the corpus data files that ship embedded in core/canon.
package zefania

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/xml"
)

// Data file names, matching the embedded corpus files.
const (
	OldTestamentFile = "old_testament.json"
	NewTestamentFile = "new_testament.json"
)

// canonBooks maps Zefania book numbers 1..66 to canonical names and
// OSIS abbreviations. Zefania bname attributes are localized and cannot
// serve as canonical identity.
var canonBooks = [66]struct{ name, abbrev string }{
	{"Genesis", "Gen"}, {"Exodus", "Exod"}, {"Leviticus", "Lev"},
	{"Numbers", "Num"}, {"Deuteronomy", "Deut"}, {"Joshua", "Josh"},
	{"Judges", "Judg"}, {"Ruth", "Ruth"}, {"1 Samuel", "1Sam"},
	{"2 Samuel", "2Sam"}, {"1 Kings", "1Kgs"}, {"2 Kings", "2Kgs"},
	{"1 Chronicles", "1Chr"}, {"2 Chronicles", "2Chr"}, {"Ezra", "Ezra"},
	{"Nehemiah", "Neh"}, {"Esther", "Esth"}, {"Job", "Job"},
	{"Psalms", "Ps"}, {"Proverbs", "Prov"}, {"Ecclesiastes", "Eccl"},
	{"Song of Solomon", "Song"}, {"Isaiah", "Isa"}, {"Jeremiah", "Jer"},
	{"Lamentations", "Lam"}, {"Ezekiel", "Ezek"}, {"Daniel", "Dan"},
	{"Hosea", "Hos"}, {"Joel", "Joel"}, {"Amos", "Amos"},
	{"Obadiah", "Obad"}, {"Jonah", "Jonah"}, {"Micah", "Mic"},
	{"Nahum", "Nah"}, {"Habakkuk", "Hab"}, {"Zephaniah", "Zeph"},
	{"Haggai", "Hag"}, {"Zechariah", "Zech"}, {"Malachi", "Mal"},
	{"Matthew", "Matt"}, {"Mark", "Mark"}, {"Luke", "Luke"},
	{"John", "John"}, {"Acts", "Acts"}, {"Romans", "Rom"},
	{"1 Corinthians", "1Cor"}, {"2 Corinthians", "2Cor"}, {"Galatians", "Gal"},
	{"Ephesians", "Eph"}, {"Philippians", "Phil"}, {"Colossians", "Col"},
	{"1 Thessalonians", "1Thess"}, {"2 Thessalonians", "2Thess"},
	{"1 Timothy", "1Tim"}, {"2 Timothy", "2Tim"}, {"Titus", "Titus"},
	{"Philemon", "Phlm"}, {"Hebrews", "Heb"}, {"James", "Jas"},
	{"1 Peter", "1Pet"}, {"2 Peter", "2Pet"}, {"1 John", "1John"},
	{"2 John", "2John"}, {"3 John", "3John"}, {"Jude", "Jude"},
	{"Revelation", "Rev"},
}

// Module is a parsed Zefania XML Bible module reduced to the canonical
// book layout the planner works from.
type Module struct {
	// Name is the biblename attribute of the XMLBIBLE root.
	Name string

	// Language is the language attribute of the XMLBIBLE root, when present.
	Language string

	// Books are the canonical books found in the module, in canon order.
	Books []*canon.Book

	// Skipped names books outside the 66-book canon (apocrypha).
	Skipped []string
}

// dataFile mirrors the embedded corpus data file layout.
type dataFile struct {
	Testament canon.Testament `json:"testament"`
	Books     []*canon.Book   `json:"books"`
}

// Detect reports whether data looks like a Zefania XML module. Element
// names appear uppercase or lowercase in the wild.
func Detect(data []byte) bool {
	content := string(data)
	return strings.Contains(content, "<XMLBIBLE") || strings.Contains(content, "<xmlbible")
}

// ParseFile reads and parses a Zefania XML module from disk.
func ParseFile(path string) (*Module, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	return Parse(data)
}

// Parse parses a Zefania XML module. A chapter's verse count is the number
// of VERS elements it contains; word counts are summed over verse text.
func Parse(data []byte) (*Module, error) {
	doc, err := xml.Parse(data)
	if err != nil {
		return nil, errors.NewParse("Zefania", "", err.Error())
	}

	root, err := doc.XPathFirst("//XMLBIBLE|//xmlbible")
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, errors.NewParse("Zefania", "", "no XMLBIBLE root element")
	}

	m := &Module{
		Name:     attr(root, "biblename"),
		Language: attr(root, "language"),
	}

	bookNodes, err := root.XPath("BIBLEBOOK|biblebook")
	if err != nil {
		return nil, err
	}
	if len(bookNodes) == 0 {
		return nil, errors.NewParse("Zefania", "", "module has no BIBLEBOOK elements")
	}

	type numbered struct {
		num  int
		book *canon.Book
	}
	var parsed []numbered
	seen := make(map[int]bool)

	for _, bn := range bookNodes {
		numAttr := attr(bn, "bnumber")
		num, err := strconv.Atoi(numAttr)
		if err != nil || num < 1 {
			return nil, errors.NewParse("Zefania", "", fmt.Sprintf("BIBLEBOOK has bad bnumber %q", numAttr))
		}
		if num > len(canonBooks) {
			m.Skipped = append(m.Skipped, skippedName(bn, num))
			continue
		}
		entry := canonBooks[num-1]
		if seen[num] {
			return nil, errors.NewData(entry.name, fmt.Sprintf("duplicate book number %d", num))
		}
		seen[num] = true

		book, err := parseBook(bn, num)
		if err != nil {
			return nil, err
		}
		parsed = append(parsed, numbered{num, book})
	}

	sort.Slice(parsed, func(i, j int) bool { return parsed[i].num < parsed[j].num })
	for _, p := range parsed {
		m.Books = append(m.Books, p.book)
	}
	return m, nil
}

// parseBook builds one canonical book from a BIBLEBOOK element.
func parseBook(bn *xml.Node, num int) (*canon.Book, error) {
	entry := canonBooks[num-1]

	chapterNodes, err := bn.XPath("CHAPTER|chapter")
	if err != nil {
		return nil, err
	}

	counts := make(map[int]int)
	maxChapter := 0
	words := 0
	for _, ch := range chapterNodes {
		cnumAttr := attr(ch, "cnumber")
		cnum, err := strconv.Atoi(cnumAttr)
		if err != nil || cnum < 1 {
			return nil, errors.NewParse("Zefania", "", fmt.Sprintf("%s: chapter has bad cnumber %q", entry.name, cnumAttr))
		}
		if _, dup := counts[cnum]; dup {
			return nil, errors.NewData(entry.name, fmt.Sprintf("duplicate chapter number %d", cnum))
		}

		verseNodes, err := ch.XPath("VERS|vers")
		if err != nil {
			return nil, err
		}
		counts[cnum] = len(verseNodes)
		for _, v := range verseNodes {
			words += len(strings.Fields(v.InnerText()))
		}
		if cnum > maxChapter {
			maxChapter = cnum
		}
	}

	if maxChapter == 0 {
		return nil, errors.NewData(entry.name, "book has no chapters")
	}

	chapterVerses := make([]int, maxChapter)
	totalVerses := 0
	for c := 1; c <= maxChapter; c++ {
		chapterVerses[c-1] = counts[c]
		totalVerses += counts[c]
	}

	book := &canon.Book{
		Name:          entry.name,
		Abbrev:        entry.abbrev,
		Testament:     testamentFor(num),
		Genre:         genreFor(num),
		Chapters:      maxChapter,
		ChapterVerses: chapterVerses,
		TotalVerses:   totalVerses,
		TotalWords:    words,
	}
	if err := book.Validate(); err != nil {
		return nil, err
	}
	return book, nil
}

// DataFiles renders the module as the two corpus data files. Per-book
// testament is left to the enclosing file, matching the embedded layout.
func (m *Module) DataFiles() (oldJSON, newJSON []byte, err error) {
	ot := dataFile{Testament: canon.TestamentOld, Books: []*canon.Book{}}
	nt := dataFile{Testament: canon.TestamentNew, Books: []*canon.Book{}}
	for _, b := range m.Books {
		bc := *b
		bc.Testament = ""
		if b.Testament == canon.TestamentOld {
			ot.Books = append(ot.Books, &bc)
		} else {
			nt.Books = append(nt.Books, &bc)
		}
	}

	oldJSON, err = json.MarshalIndent(ot, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	newJSON, err = json.MarshalIndent(nt, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return append(oldJSON, '\n'), append(newJSON, '\n'), nil
}

// WriteDataFiles writes the corpus data files to dir, verifying first that
// the regenerated data round-trips through the same load path as the
// embedded files.
func (m *Module) WriteDataFiles(dir string) error {
	oldJSON, newJSON, err := m.DataFiles()
	if err != nil {
		return err
	}
	if _, err := canon.LoadData(oldJSON, newJSON, canon.ScopeComplete); err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewIO("create", dir, err)
	}
	files := []struct {
		name string
		data []byte
	}{
		{OldTestamentFile, oldJSON},
		{NewTestamentFile, newJSON},
	}
	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, f.data, 0644); err != nil {
			return errors.NewIO("write", path, err)
		}
	}
	return nil
}

// TotalVerses returns the verse count across the module's canonical books.
func (m *Module) TotalVerses() int {
	total := 0
	for _, b := range m.Books {
		total += b.TotalVerses
	}
	return total
}

// TotalWords returns the word count across the module's canonical books.
func (m *Module) TotalWords() int {
	total := 0
	for _, b := range m.Books {
		total += b.TotalWords
	}
	return total
}

// attr returns a named attribute value, matching case-insensitively.
// Zefania files vary attribute case along with element case.
func attr(n *xml.Node, name string) string {
	for k, v := range n.Attributes() {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// skippedName labels a non-canonical book for reporting.
func skippedName(bn *xml.Node, num int) string {
	if name := attr(bn, "bname"); name != "" {
		return name
	}
	return fmt.Sprintf("book %d", num)
}

// testamentFor classifies a book number by testament.
func testamentFor(num int) canon.Testament {
	if num <= 39 {
		return canon.TestamentOld
	}
	return canon.TestamentNew
}

// genreFor classifies a book number by canonical position.
func genreFor(num int) canon.Genre {
	switch {
	case num <= 5:
		return canon.GenreLaw
	case num <= 17:
		return canon.GenreHistory
	case num <= 22:
		return canon.GenreWisdom
	case num <= 27:
		return canon.GenreMajorProphets
	case num <= 39:
		return canon.GenreMinorProphets
	case num <= 43:
		return canon.GenreGospels
	case num == 44:
		return canon.GenreActs
	case num <= 65:
		return canon.GenreEpistles
	default:
		return canon.GenreApocalyptic
	}
}
