// Package render turns a generated schedule into Obsidian markdown: one note
// per study day, a plan overview note, and optional wikilinks into a
// BibleGateway-to-Obsidian scripture folder.
package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/schedule"
)

// LinkStyle selects how chapter wikilinks are laid out in a day note.
type LinkStyle string

const (
	// LinkStyleExpanded writes one bold link per chapter, one per line.
	LinkStyleExpanded LinkStyle = "expanded"
	// LinkStyleInline writes the range in bold with compact per-chapter links.
	LinkStyleInline LinkStyle = "inline"
	// LinkStyleHybrid writes the range in bold with a bullet list of links.
	LinkStyleHybrid LinkStyle = "hybrid"
)

// ParseLinkStyle parses a link style name from the command line.
func ParseLinkStyle(s string) (LinkStyle, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(LinkStyleExpanded):
		return LinkStyleExpanded, nil
	case string(LinkStyleInline):
		return LinkStyleInline, nil
	case string(LinkStyleHybrid):
		return LinkStyleHybrid, nil
	default:
		return "", errors.NewValidation("link-style", fmt.Sprintf("unknown link style %q (want expanded, inline, or hybrid)", s))
	}
}

// VaultLinker generates wikilinks to chapter files laid out the way the
// BibleGateway-to-Obsidian script creates them:
//
//	{folder}/{NN - Book}/{Book C}.md
//
// where NN is the book's two-digit canonical number (01-66).
type VaultLinker struct {
	folder string
	style  LinkStyle
}

// NewVaultLinker creates a linker for a scripture folder (e.g. "Scripture",
// "Bible/ESV") and a link style.
func NewVaultLinker(folder string, style LinkStyle) *VaultLinker {
	folder = strings.ReplaceAll(folder, "\\", "/")
	folder = strings.Trim(folder, "/")
	return &VaultLinker{folder: folder, style: style}
}

// Folder returns the normalized scripture folder path.
func (l *VaultLinker) Folder() string {
	return l.folder
}

// ValidatePath reports whether the scripture folder exists, checked relative
// to the output directory's parent and as a direct path.
func (l *VaultLinker) ValidatePath(outputDir string) bool {
	candidates := []string{
		filepath.Join(filepath.Dir(outputDir), filepath.FromSlash(l.folder)),
		filepath.FromSlash(l.folder),
	}
	for _, p := range candidates {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// ChapterPath returns the vault path of one chapter file, without extension.
func (l *VaultLinker) ChapterPath(b *canon.Book, chapter int) string {
	return fmt.Sprintf("%s/%02d - %s/%s %d", l.folder, b.Order, b.Name, b.Name, chapter)
}

// ChapterLinks returns one wikilink per chapter in the segment.
func (l *VaultLinker) ChapterLinks(s *schedule.ReadingSegment) []string {
	links := make([]string, 0, s.ChapterCount())
	for chapter := s.StartChapter; chapter <= s.EndChapter; chapter++ {
		links = append(links, fmt.Sprintf("[[%s|%s %d]]", l.ChapterPath(s.Book, chapter), s.Book.Name, chapter))
	}
	return links
}

// FormatSegment renders one segment's reading heading with chapter links in
// the configured style.
func (l *VaultLinker) FormatSegment(s *schedule.ReadingSegment) string {
	links := l.ChapterLinks(s)

	switch l.style {
	case LinkStyleInline:
		if s.EndChapter > s.StartChapter {
			parts := make([]string, len(links))
			for i := range links {
				chapter := s.StartChapter + i
				parts[i] = fmt.Sprintf("[[%s|%d]]", l.ChapterPath(s.Book, chapter), chapter)
			}
			return fmt.Sprintf("**%s** (%s)", s.String(), strings.Join(parts, ", "))
		}
		return fmt.Sprintf("**%s**", links[0])

	case LinkStyleHybrid:
		var sb strings.Builder
		sb.WriteString(fmt.Sprintf("**%s**\n", s.String()))
		for i, link := range links {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString("- " + link)
		}
		return sb.String()

	default:
		// Expanded: one bold link per line.
		bold := make([]string, len(links))
		for i, link := range links {
			bold[i] = fmt.Sprintf("**%s**", link)
		}
		return strings.Join(bold, "\n")
	}
}

// FrontmatterPaths returns the chapter file paths for a day, for use in
// frontmatter where bracketed links do not belong.
func (l *VaultLinker) FrontmatterPaths(d *schedule.StudyDay) []string {
	var paths []string
	for _, s := range d.Segments {
		for chapter := s.StartChapter; chapter <= s.EndChapter; chapter++ {
			paths = append(paths, l.ChapterPath(s.Book, chapter))
		}
	}
	return paths
}
