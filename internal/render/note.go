package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/plan"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/schedule"
)

// IndexFilename is the plan overview note, named to sort before the dated
// day notes.
const IndexFilename = "00-plan-overview.md"

// Options configure day note rendering.
type Options struct {
	// PlanID is recorded in each note's frontmatter when set.
	PlanID string

	// Linker generates scripture wikilinks. Nil renders plain bold headings.
	Linker *VaultLinker

	// BookTags adds one tag per book read that day.
	BookTags bool
}

// Note is a rendered file ready to be written into the plan directory.
type Note struct {
	Filename string
	Content  string
}

// dayFrontmatter is the YAML header of a day note. Field order is what
// Obsidian shows in the properties panel.
type dayFrontmatter struct {
	Date             string   `yaml:"date"`
	Day              int      `yaml:"day"`
	Tags             []string `yaml:"tags,flow"`
	Testament        string   `yaml:"testament"`
	Genre            string   `yaml:"genre"`
	Book             string   `yaml:"book"`
	Chapters         any      `yaml:"chapters,flow"`
	EstimatedMinutes int      `yaml:"estimated_minutes"`
	VerseCount       int      `yaml:"verse_count"`
	WordCount        int      `yaml:"word_count"`
	Status           string   `yaml:"status"`
	PlanID           string   `yaml:"plan_id,omitempty"`
	ScriptureLinks   []string `yaml:"scripture_links,omitempty"`
}

// NoteFilename returns the file name of a day note, e.g.
// "2026-01-01-day-001.md".
func NoteFilename(d *schedule.StudyDay) string {
	return fmt.Sprintf("%s-day-%03d.md", d.Date.Format(time.DateOnly), d.DayNumber)
}

// DayNote renders one study day as an Obsidian note.
func DayNote(d *schedule.StudyDay, opts Options) (*Note, error) {
	if len(d.Segments) == 0 {
		return nil, errors.NewValidation("day", fmt.Sprintf("day %d has no readings", d.DayNumber))
	}

	header, err := dayHeader(d, opts)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString(fmt.Sprintf("# Day %d: %s\n\n", d.DayNumber, d.Date.Format("Monday, January 02, 2006")))

	sb.WriteString("## 📖 Today's Reading\n\n")
	for _, s := range d.Segments {
		if opts.Linker != nil {
			sb.WriteString(opts.Linker.FormatSegment(s))
			sb.WriteString("\n\n")
		} else {
			sb.WriteString(fmt.Sprintf("**%s**\n\n", s.String()))
		}
	}

	sb.WriteString(fmt.Sprintf("- 📊 %d verses\n", d.TotalVerses()))
	sb.WriteString(fmt.Sprintf("- 📝 ~%d words\n", d.TotalWords()))
	sb.WriteString(fmt.Sprintf("- ⏱️ %d minutes\n\n", d.TotalMinutes()))

	sb.WriteString("---\n\n")
	sb.WriteString("## 📝 Notes & Observations\n\n")
	sb.WriteString("*What did you notice in today's reading?*\n\n")
	sb.WriteString("\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString("## 💭 Reflection\n\n")
	sb.WriteString("### Key Themes\n\n\n")
	sb.WriteString("### Questions\n\n\n")
	sb.WriteString("### Personal Application\n\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString("## 🙏 Prayer\n\n\n")

	sb.WriteString("---\n\n")
	sb.WriteString("## 📊 Metadata\n\n")
	sb.WriteString(fmt.Sprintf("**Testament**: %s  \n", d.Testament().Label()))
	sb.WriteString(fmt.Sprintf("**Genre**: %s  \n", d.Genre().Label()))
	sb.WriteString(fmt.Sprintf("**Progress**: Day %d of %d (%s%%)\n", d.DayNumber, d.TotalDays, formatPercent(d.ProgressPercent())))

	return &Note{Filename: NoteFilename(d), Content: sb.String()}, nil
}

// dayHeader marshals the day's frontmatter block.
func dayHeader(d *schedule.StudyDay, opts Options) (string, error) {
	fm := dayFrontmatter{
		Date:             d.Date.Format(time.DateOnly),
		Day:              d.DayNumber,
		Tags:             d.Tags(opts.BookTags),
		Testament:        string(d.Testament()),
		Genre:            string(d.Genre()),
		Book:             d.PrimaryBook().Name,
		EstimatedMinutes: d.TotalMinutes(),
		VerseCount:       d.TotalVerses(),
		WordCount:        d.TotalWords(),
		Status:           "pending",
		PlanID:           opts.PlanID,
	}

	if len(d.Segments) == 1 {
		fm.Chapters = d.Segments[0].ChapterRange()
	} else {
		ranges := make([]string, len(d.Segments))
		for i, s := range d.Segments {
			ranges[i] = s.ChapterRange()
		}
		fm.Chapters = ranges
	}

	if opts.Linker != nil {
		fm.ScriptureLinks = opts.Linker.FrontmatterPaths(d)
	}

	out, err := yaml.Marshal(&fm)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal frontmatter")
	}
	return "---\n" + strings.TrimSpace(string(out)) + "\n---\n\n", nil
}

// indexFrontmatter is the YAML header of the plan overview note.
type indexFrontmatter struct {
	PlanID    string   `yaml:"plan_id"`
	Name      string   `yaml:"name"`
	Scope     string   `yaml:"scope"`
	StartDate string   `yaml:"start_date"`
	EndDate   string   `yaml:"end_date"`
	Days      int      `yaml:"days"`
	Tags      []string `yaml:"tags,flow"`
	Created   string   `yaml:"created"`
}

// IndexNote renders the plan overview: parameters, totals, and a schedule
// table linking every day note.
func IndexNote(m *plan.Manifest, days []*schedule.StudyDay) (*Note, error) {
	if len(days) == 0 {
		return nil, errors.NewValidation("days", "schedule is empty")
	}

	fm := indexFrontmatter{
		PlanID:    m.ID,
		Name:      m.Name,
		Scope:     m.Parameters.Scope,
		StartDate: m.Parameters.StartDate,
		EndDate:   days[len(days)-1].Date.Format(time.DateOnly),
		Days:      m.Totals.Days,
		Tags:      []string{"bible-study", "plan"},
		Created:   m.CreatedAt,
	}
	out, err := yaml.Marshal(&fm)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal frontmatter")
	}

	scope := canon.Scope(m.Parameters.Scope)
	first := days[0]
	last := days[len(days)-1]

	var sb strings.Builder
	sb.WriteString("---\n" + strings.TrimSpace(string(out)) + "\n---\n\n")
	sb.WriteString(fmt.Sprintf("# Bible Study Plan: %s\n\n", m.Name))

	sb.WriteString(fmt.Sprintf("**Scope**: %s  \n", scope.Label()))
	sb.WriteString(fmt.Sprintf("**Start**: %s  \n", first.Date.Format("Monday, January 02, 2006")))
	sb.WriteString(fmt.Sprintf("**End**: %s  \n", last.Date.Format("Monday, January 02, 2006")))
	sb.WriteString(fmt.Sprintf("**Days**: %d\n\n", m.Totals.Days))

	sb.WriteString(fmt.Sprintf("- 📖 %d chapters\n", m.Totals.Chapters))
	sb.WriteString(fmt.Sprintf("- 📊 %d verses\n", m.Totals.Verses))
	sb.WriteString(fmt.Sprintf("- 📝 ~%d words\n", m.Totals.Words))
	sb.WriteString(fmt.Sprintf("- ⏱️ ~%d minutes (~%d hours)\n\n", m.Totals.Minutes, m.Totals.Minutes/60))

	sb.WriteString("---\n\n")
	sb.WriteString("## 📅 Schedule\n\n")
	sb.WriteString("| Day | Date | Reading | Verses | Minutes |\n")
	sb.WriteString("| ---: | --- | --- | ---: | ---: |\n")
	for _, d := range days {
		name := strings.TrimSuffix(NoteFilename(d), ".md")
		sb.WriteString(fmt.Sprintf("| %d | [[%s]] | %s | %d | %d |\n",
			d.DayNumber, name, d.ReadingSummary(), d.TotalVerses(), d.TotalMinutes()))
	}

	return &Note{Filename: IndexFilename, Content: sb.String()}, nil
}

func formatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', 1, 64)
}
