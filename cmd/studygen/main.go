// Command studygen is the CLI tool for the Bible study planner.
// It generates daily reading schedules as Obsidian markdown notes.
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/canon"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/plan"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/refs"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/schedule"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/config"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/logging"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/registry"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/render"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/validation"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/internal/zefania"
)

const version = "1.0.0"

// CLI defines the command-line interface for studygen.
var CLI struct {
	// Global flags
	Verbose bool `short:"v" help:"Enable verbose (debug) logging"`

	// Command groups (noun-first organization)
	Generate GenerateCmd `cmd:"" help:"Generate a reading plan as Obsidian day notes"`
	Corpus   CorpusGroup `cmd:"" help:"Corpus statistics, lookups, and data import"`
	Plans    PlansGroup  `cmd:"" help:"Generated plan registry"`
	Plan     PlanGroup   `cmd:"" help:"Operations on a plan directory"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// CorpusGroup contains corpus inspection and import operations.
type CorpusGroup struct {
	Stats  CorpusStatsCmd  `cmd:"" help:"Show corpus statistics"`
	Books  CorpusBooksCmd  `cmd:"" help:"List the books in a scope"`
	Range  CorpusRangeCmd  `cmd:"" help:"Resolve a chapter reference"`
	Import CorpusImportCmd `cmd:"" help:"Regenerate corpus data from a Zefania XML module"`
}

// PlansGroup contains plan registry operations.
type PlansGroup struct {
	List PlansListCmd `cmd:"" help:"List previously generated plans"`
}

// PlanGroup contains operations on a single plan directory.
type PlanGroup struct {
	Pack PlanPackCmd `cmd:"" help:"Pack a plan directory into a tar archive"`
}

// GenerateCmd generates a reading schedule and writes its day notes.
type GenerateCmd struct {
	StartDate   string `name:"start-date" help:"First reading date (YYYY-MM-DD)" xor:"start"`
	Year        int    `help:"Plan year, reading starts January 1" xor:"start"`
	Days        int    `help:"Length of the plan in days" xor:"span"`
	EndDate     string `name:"end-date" help:"Last reading date (YYYY-MM-DD)" xor:"span"`
	Scope       string `help:"Corpus scope: complete, ot, or nt" default:"complete"`
	Output      string `short:"o" help:"Output directory for the notes" default:"./bible-study" type:"path"`
	Name        string `help:"Plan name (defaults to the output directory name)"`
	WPM         int    `name:"wpm" help:"Reading speed in words per minute" default:"200"`
	VaultFolder string `name:"vault-folder" help:"Scripture folder in the vault, enables [[chapter]] links"`
	LinkStyle   string `name:"link-style" help:"Wikilink layout: expanded, inline, or hybrid" default:"expanded"`
	BookTags    bool   `name:"book-tags" help:"Tag each day note with the books read that day"`
	Archive     bool   `help:"Pack the generated plan into a tar archive"`
	Compression string `help:"Archive compression: xz or gzip" default:"xz"`
	DryRun      bool   `name:"dry-run" help:"Preview the schedule without writing files"`
	NoRegistry  bool   `name:"no-registry" help:"Skip recording the plan in the registry"`
}

func (c *GenerateCmd) Run() error {
	now := time.Now()

	scope, ok := canon.ParseScope(c.Scope)
	if !ok {
		return fmt.Errorf("unknown scope %q (want complete, ot, or nt)", c.Scope)
	}
	if c.WPM <= 0 {
		return fmt.Errorf("wpm must be a positive number")
	}

	start, err := c.resolveStart(now)
	if err != nil {
		return err
	}
	totalDays, err := c.resolveDays(start, now, scope)
	if err != nil {
		return err
	}

	if err := validation.ValidatePath(c.Output); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	outputDir, err := filepath.Abs(c.Output)
	if err != nil {
		return fmt.Errorf("failed to resolve output path: %w", err)
	}

	name := c.Name
	if name == "" {
		name = filepath.Base(outputDir)
	}
	name, err = validation.SanitizeFilename(name)
	if err != nil {
		return fmt.Errorf("invalid plan name: %w", err)
	}

	linkStyle, err := render.ParseLinkStyle(c.LinkStyle)
	if err != nil {
		return err
	}
	var linker *render.VaultLinker
	if c.VaultFolder != "" {
		folder, err := validation.SanitizePath(".", c.VaultFolder)
		if err != nil {
			return fmt.Errorf("invalid vault folder: %w", err)
		}
		linker = render.NewVaultLinker(folder, linkStyle)
		if !linker.ValidatePath(outputDir) {
			fmt.Printf("⚠️  Scripture folder %q not found next to the output directory, links may not resolve\n", linker.Folder())
		}
	}

	compression := plan.DefaultPackOptions().Compression
	if c.Archive {
		compression, err = plan.ParseCompression(c.Compression)
		if err != nil {
			return err
		}
	}

	corpus, err := canon.Load(scope)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	logging.CorpusLoaded(string(scope), len(corpus.Books), corpus.TotalChapters(), corpus.TotalVerses())

	stats := corpus.Stats(c.WPM)
	fmt.Println("📖 Bible Study Planner")
	fmt.Printf("   Start: %s\n", start.Format(time.DateOnly))
	fmt.Printf("   Scope: %s\n", scope.Label())
	fmt.Printf("   Days: %d\n", totalDays)
	fmt.Printf("   Output: %s\n", c.Output)
	fmt.Println()
	fmt.Println("📊 Scope Statistics:")
	fmt.Printf("   Books: %d\n", stats.Books)
	fmt.Printf("   Chapters: %d\n", stats.Chapters)
	fmt.Printf("   Verses: %d\n", stats.Verses)
	fmt.Printf("   Est. Hours: %.1fh\n", stats.EstimatedHours)
	fmt.Printf("   Avg Chapters/Day: %.2f\n", float64(stats.Chapters)/float64(totalDays))
	fmt.Println()

	days, err := schedule.Generate(corpus, start, totalDays, c.WPM)
	if err != nil {
		logging.GenerationError("generate", err)
		return fmt.Errorf("failed to generate schedule: %w", err)
	}
	if err := schedule.Validate(days); err != nil {
		logging.GenerationError("validate", err)
		return fmt.Errorf("generated schedule failed validation: %w", err)
	}
	totals := schedule.Summarize(days)
	logging.ScheduleGenerated(string(scope), totalDays, totals.Days, totals.Verses)

	fmt.Printf("✅ Generated %d study days\n", totals.Days)
	fmt.Println()

	if c.DryRun {
		printPreview(days, totals)
		return nil
	}

	m, err := plan.NewManifest(name, plan.Parameters{
		Scope:          string(scope),
		StartDate:      start.Format(time.DateOnly),
		RequestedDays:  totalDays,
		WordsPerMinute: c.WPM,
	}, days)
	if err != nil {
		return fmt.Errorf("failed to build plan manifest: %w", err)
	}
	m.Tool.Version = version
	if linker != nil {
		m.Parameters.LinkStyle = string(linkStyle)
	}

	opts := render.Options{PlanID: m.ID, Linker: linker, BookTags: c.BookTags}
	notes := make([]*render.Note, 0, totals.Days+2)
	for _, d := range days {
		n, err := render.DayNote(d, opts)
		if err != nil {
			return fmt.Errorf("failed to render day %d: %w", d.DayNumber, err)
		}
		notes = append(notes, n)
	}
	idx, err := render.IndexNote(m, days)
	if err != nil {
		return fmt.Errorf("failed to render plan overview: %w", err)
	}
	notes = append(notes, idx)

	for _, n := range notes {
		m.Notes = append(m.Notes, n.Filename)
	}
	manifestJSON, err := m.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	notes = append(notes, &render.Note{Filename: plan.ManifestName, Content: string(manifestJSON)})

	if err := render.WriteAll(outputDir, notes); err != nil {
		return err
	}
	for _, d := range days {
		logging.NoteWritten(filepath.Join(outputDir, render.NoteFilename(d)), d.DayNumber)
	}

	fmt.Printf("✅ Created %d markdown files\n", len(notes))
	fmt.Printf("📁 Output directory: %s\n", outputDir)

	if !c.NoRegistry {
		if err := recordPlan(m); err != nil {
			logging.Error("failed to record plan", "plan_id", m.ID, "error", err.Error())
			fmt.Printf("⚠️  Plan not recorded in registry: %v\n", err)
		}
	}

	if c.Archive {
		archivePath := outputDir + ".tar.xz"
		if compression == plan.CompressionGzip {
			archivePath = outputDir + ".tar.gz"
		}
		if _, err := plan.Pack(outputDir, archivePath, &plan.PackOptions{Compression: compression}); err != nil {
			return fmt.Errorf("failed to pack plan: %w", err)
		}
		fmt.Printf("📦 Archive: %s\n", archivePath)
	}

	fmt.Println()
	fmt.Println("🎉 Bible study plan generated successfully!")
	return nil
}

// resolveStart picks the first reading date: an explicit --start-date, an
// explicit --year starting January 1, or January 1 of the current year.
func (c *GenerateCmd) resolveStart(now time.Time) (time.Time, error) {
	switch {
	case c.StartDate != "":
		return validation.ParseDate("start-date", c.StartDate, now)
	case c.Year != 0:
		start := time.Date(c.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		if err := validation.ValidateDate("year", start, now); err != nil {
			return time.Time{}, err
		}
		return start, nil
	default:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC), nil
	}
}

// resolveDays picks the plan length: an explicit --days, the span up to
// --end-date, or the scope preset.
func (c *GenerateCmd) resolveDays(start, now time.Time, scope canon.Scope) (int, error) {
	switch {
	case c.Days != 0:
		if err := validation.ValidateDays(c.Days); err != nil {
			return 0, err
		}
		return c.Days, nil
	case c.EndDate != "":
		end, err := validation.ParseDate("end-date", c.EndDate, now)
		if err != nil {
			return 0, err
		}
		days, err := validation.DaysBetween(start, end)
		if err != nil {
			return 0, err
		}
		if err := validation.ValidateDays(days); err != nil {
			return 0, err
		}
		return days, nil
	default:
		return defaultDays(scope), nil
	}
}

// CorpusStatsCmd shows summary statistics for a corpus scope.
type CorpusStatsCmd struct {
	Scope string `help:"Corpus scope: complete, ot, or nt" default:"complete"`
	WPM   int    `name:"wpm" help:"Reading speed in words per minute" default:"200"`
}

func (c *CorpusStatsCmd) Run() error {
	scope, ok := canon.ParseScope(c.Scope)
	if !ok {
		return fmt.Errorf("unknown scope %q (want complete, ot, or nt)", c.Scope)
	}
	corpus, err := canon.Load(scope)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	stats := corpus.Stats(c.WPM)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Scope", "Books", "Chapters", "Verses", "Words", "Est. Hours", "Chapters/Day"})
	t.AppendRow(table.Row{
		scope.Label(),
		stats.Books,
		stats.Chapters,
		stats.Verses,
		stats.Words,
		fmt.Sprintf("%.1f", stats.EstimatedHours),
		fmt.Sprintf("%.1f", stats.AvgChaptersPerDay),
	})
	t.Render()
	return nil
}

// CorpusBooksCmd lists every book in a corpus scope.
type CorpusBooksCmd struct {
	Scope string `help:"Corpus scope: complete, ot, or nt" default:"complete"`
}

func (c *CorpusBooksCmd) Run() error {
	scope, ok := canon.ParseScope(c.Scope)
	if !ok {
		return fmt.Errorf("unknown scope %q (want complete, ot, or nt)", c.Scope)
	}
	corpus, err := canon.Load(scope)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Book", "Abbrev", "Testament", "Genre", "Chapters", "Verses", "Words"})
	for _, b := range corpus.Books {
		t.AppendRow(table.Row{b.Order, b.Name, b.Abbrev, b.Testament.Label(), b.Genre.Label(), b.Chapters, b.TotalVerses, b.TotalWords})
	}
	t.Render()
	return nil
}

// CorpusRangeCmd resolves a chapter reference and reports its size.
type CorpusRangeCmd struct {
	Ref []string `arg:"" help:"Chapter reference, e.g. \"Genesis 1-11\" or \"1 Corinthians 3\""`
	WPM int      `name:"wpm" help:"Reading speed in words per minute" default:"200"`
}

func (c *CorpusRangeCmd) Run() error {
	ref, err := refs.Parse(strings.Join(c.Ref, " "))
	if err != nil {
		return err
	}
	corpus, err := canon.Load(canon.ScopeComplete)
	if err != nil {
		return fmt.Errorf("failed to load corpus: %w", err)
	}
	book, start, end, err := ref.Resolve(corpus)
	if err != nil {
		return err
	}

	verses, err := book.VersesInRange(start, end)
	if err != nil {
		return err
	}
	words, err := book.WordsInRange(start, end)
	if err != nil {
		return err
	}
	minutes, err := book.ReadingMinutesInRange(start, end, c.WPM)
	if err != nil {
		return err
	}

	resolved := &refs.Ref{Book: book.Name, StartChapter: start, EndChapter: end}
	fmt.Printf("%s\n", resolved)
	fmt.Printf("  Book: %s (%s, %s)\n", book.Name, book.Abbrev, book.Genre.Label())
	fmt.Printf("  Chapters: %d of %d\n", end-start+1, book.Chapters)
	fmt.Printf("  Verses: %d\n", verses)
	fmt.Printf("  Words: ~%d\n", words)
	fmt.Printf("  Est. Time: ~%d min\n", minutes)
	return nil
}

// CorpusImportCmd regenerates the corpus data files from a Zefania XML
// module.
type CorpusImportCmd struct {
	Path string `arg:"" help:"Path to Zefania XML module" type:"existingfile"`
	Out  string `required:"" help:"Output directory for the data files" type:"path"`
}

func (c *CorpusImportCmd) Run() error {
	if err := validation.ValidatePath(c.Path); err != nil {
		return fmt.Errorf("invalid input path: %w", err)
	}
	if err := validation.ValidatePath(c.Out); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	info, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("failed to stat module: %w", err)
	}
	if info.Size() > validation.MaxFileSize {
		return fmt.Errorf("module is %d bytes, larger than the %d byte limit", info.Size(), validation.MaxFileSize)
	}

	data, err := os.ReadFile(c.Path)
	if err != nil {
		return fmt.Errorf("failed to read module: %w", err)
	}
	if _, err := validation.ValidateFileType(bytes.NewReader(data), c.Path); err != nil {
		return fmt.Errorf("invalid module file: %w", err)
	}
	if !zefania.Detect(data) {
		return fmt.Errorf("%s is not a Zefania XML module (no XMLBIBLE element)", c.Path)
	}

	mod, err := zefania.Parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse module: %w", err)
	}

	name := mod.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Printf("Module: %s\n", name)
	if mod.Language != "" {
		fmt.Printf("  Language: %s\n", mod.Language)
	}
	fmt.Printf("  Books: %d\n", len(mod.Books))
	fmt.Printf("  Verses: %d\n", mod.TotalVerses())
	fmt.Printf("  Words: ~%d\n", mod.TotalWords())
	if len(mod.Skipped) > 0 {
		fmt.Printf("  Skipped: %s\n", strings.Join(mod.Skipped, ", "))
	}

	if err := mod.WriteDataFiles(c.Out); err != nil {
		return fmt.Errorf("failed to write data files: %w", err)
	}
	fmt.Printf("Created: %s\n", filepath.Join(c.Out, zefania.OldTestamentFile))
	fmt.Printf("Created: %s\n", filepath.Join(c.Out, zefania.NewTestamentFile))
	return nil
}

// PlansListCmd lists previously generated plans from the registry.
type PlansListCmd struct{}

func (c *PlansListCmd) Run() error {
	reg, err := registry.Open(config.RegistryPath())
	if err != nil {
		return fmt.Errorf("failed to open registry: %w", err)
	}
	defer reg.Close()

	entries, err := reg.List()
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}
	if len(entries) == 0 {
		fmt.Println("No plans recorded yet. Generate one with \"studygen generate\".")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Scope", "Start", "Days", "Notes", "Created"})
	for _, e := range entries {
		t.AppendRow(table.Row{shortID(e.ID), e.Name, e.Scope, e.StartDate, e.Days, e.Notes, formatCreated(e.CreatedAt)})
	}
	t.Render()
	fmt.Printf("\nRegistry: %s\n", reg.Path())
	return nil
}

// PlanPackCmd packs an existing plan directory into a tar archive.
type PlanPackCmd struct {
	Dir         string `arg:"" help:"Plan directory to pack" type:"existingdir"`
	Out         string `required:"" help:"Output archive path" type:"path"`
	Compression string `help:"Archive compression: xz or gzip (default from the file extension)"`
}

func (c *PlanPackCmd) Run() error {
	opts := plan.DefaultPackOptions()
	if c.Compression != "" {
		compression, err := plan.ParseCompression(c.Compression)
		if err != nil {
			return err
		}
		opts.Compression = compression
	} else if strings.HasSuffix(c.Out, ".gz") || strings.HasSuffix(c.Out, ".tgz") {
		opts.Compression = plan.CompressionGzip
	}

	m, err := plan.Pack(c.Dir, c.Out, opts)
	if err != nil {
		return fmt.Errorf("failed to pack plan: %w", err)
	}

	fmt.Printf("Packed: %s\n", c.Dir)
	fmt.Printf("  Plan: %s (%s)\n", m.Name, shortID(m.ID))
	fmt.Printf("  Days: %d\n", m.Totals.Days)
	fmt.Printf("  SHA-256: %s\n", m.Digests.SHA256)
	fmt.Printf("Created: %s\n", c.Out)
	return nil
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("studygen version %s\n", version)
	return nil
}

// Helper functions

// defaultDays is the preset plan length per scope: a year for the complete
// Bible, nine months for the Old Testament, three for the New.
func defaultDays(scope canon.Scope) int {
	switch scope {
	case canon.ScopeOldTestament:
		return 270
	case canon.ScopeNewTestament:
		return 90
	default:
		return 365
	}
}

// printPreview shows the first days of a schedule without writing anything.
func printPreview(days []*schedule.StudyDay, totals schedule.Totals) {
	fmt.Println("🔍 Dry Run - Preview of first 5 days:")
	fmt.Println()
	limit := 5
	if len(days) < limit {
		limit = len(days)
	}
	for _, d := range days[:limit] {
		fmt.Printf("Day %d (%s):\n", d.DayNumber, d.Date.Format(time.DateOnly))
		for _, s := range d.Segments {
			fmt.Printf("  • %s\n", s)
		}
		fmt.Printf("  📊 %d chapters, %d verses, ~%d min\n", d.TotalChapters(), d.TotalVerses(), d.TotalMinutes())
		fmt.Println()
	}
	if len(days) > limit {
		fmt.Printf("... and %d more days\n", len(days)-limit)
		fmt.Println()
	}
	fmt.Printf("📊 Plan totals: %d days, %d chapters, %d verses, ~%d min\n", totals.Days, totals.Chapters, totals.Verses, totals.Minutes)
	fmt.Println()
	fmt.Println("✨ To generate files, remove the --dry-run flag")
}

// recordPlan stores the manifest in the plan registry.
func recordPlan(m *plan.Manifest) error {
	reg, err := registry.Open(config.RegistryPath())
	if err != nil {
		return err
	}
	defer reg.Close()

	if err := reg.Record(m); err != nil {
		return err
	}
	logging.RegistryEvent("record", m.ID)
	return nil
}

// shortID trims a plan UUID for table display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// formatCreated renders an RFC3339 timestamp as a local date and time.
func formatCreated(created string) string {
	ts, err := time.Parse(time.RFC3339, created)
	if err != nil {
		return created
	}
	return ts.Local().Format("2006-01-02 15:04")
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("studygen"),
		kong.Description("Bible Study Planner - Generate Obsidian-compatible daily study plans"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	level := logging.LevelInfo
	if CLI.Verbose {
		level = logging.LevelDebug
	}
	logging.InitLogger(level, logging.FormatText)

	if err := ctx.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Error: %v\n", err)
		os.Exit(1)
	}
}
