package canon

// types.go - Enumerations shared across the canon packages.
// Testament and Genre classify books; Scope selects the slice of the canon
// a reading plan covers.

import "strings"

// Testament identifies which testament a book belongs to.
type Testament string

// Testament constants.
const (
	TestamentOld Testament = "old"
	TestamentNew Testament = "new"
)

// validTestaments is the set of valid testaments.
var validTestaments = map[Testament]bool{
	TestamentOld: true,
	TestamentNew: true,
}

// IsValid returns true if the testament is valid.
func (t Testament) IsValid() bool {
	return validTestaments[t]
}

// Tag returns the testament as an Obsidian tag.
func (t Testament) Tag() string {
	return string(t)
}

// Label returns the capitalized testament name for display.
func (t Testament) Label() string {
	switch t {
	case TestamentOld:
		return "Old"
	case TestamentNew:
		return "New"
	default:
		return string(t)
	}
}

// Genre classifies a book for tags and statistics.
type Genre string

// Genre constants. The underscore forms are the storage values; Tag
// converts them for frontmatter.
const (
	GenreLaw           Genre = "law"
	GenreHistory       Genre = "history"
	GenreWisdom        Genre = "wisdom"
	GenreMajorProphets Genre = "major_prophets"
	GenreMinorProphets Genre = "minor_prophets"
	GenreGospels       Genre = "gospels"
	GenreActs          Genre = "acts"
	GenreEpistles      Genre = "epistles"
	GenreApocalyptic   Genre = "apocalyptic"
)

// validGenres is the set of valid genres.
var validGenres = map[Genre]bool{
	GenreLaw:           true,
	GenreHistory:       true,
	GenreWisdom:        true,
	GenreMajorProphets: true,
	GenreMinorProphets: true,
	GenreGospels:       true,
	GenreActs:          true,
	GenreEpistles:      true,
	GenreApocalyptic:   true,
}

// IsValid returns true if the genre is valid.
func (g Genre) IsValid() bool {
	return validGenres[g]
}

// Tag returns the genre as an Obsidian tag (underscores become hyphens).
func (g Genre) Tag() string {
	return strings.ReplaceAll(string(g), "_", "-")
}

// Label returns the genre as a display name, e.g. "Major Prophets".
func (g Genre) Label() string {
	words := strings.Split(string(g), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Scope selects which part of the canon a reading plan covers.
type Scope string

// Scope constants.
const (
	ScopeComplete     Scope = "complete"
	ScopeOldTestament Scope = "old-testament"
	ScopeNewTestament Scope = "new-testament"
)

// validScopes is the set of valid scopes.
var validScopes = map[Scope]bool{
	ScopeComplete:     true,
	ScopeOldTestament: true,
	ScopeNewTestament: true,
}

// IsValid returns true if the scope is valid.
func (s Scope) IsValid() bool {
	return validScopes[s]
}

// Includes reports whether books of the given testament fall inside the scope.
func (s Scope) Includes(t Testament) bool {
	switch s {
	case ScopeComplete:
		return true
	case ScopeOldTestament:
		return t == TestamentOld
	case ScopeNewTestament:
		return t == TestamentNew
	default:
		return false
	}
}

// Label returns the human-readable scope name.
func (s Scope) Label() string {
	switch s {
	case ScopeComplete:
		return "Complete Bible"
	case ScopeOldTestament:
		return "Old Testament"
	case ScopeNewTestament:
		return "New Testament"
	default:
		return string(s)
	}
}

// ParseScope normalizes a user-supplied scope string. It accepts the
// canonical values plus common aliases (ot, nt, old_testament, new_testament).
func ParseScope(s string) (Scope, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "complete", "all", "bible":
		return ScopeComplete, true
	case "old-testament", "old_testament", "ot", "old":
		return ScopeOldTestament, true
	case "new-testament", "new_testament", "nt", "new":
		return ScopeNewTestament, true
	default:
		return "", false
	}
}
