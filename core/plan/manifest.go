// Package plan records generated study plans. A plan manifest (plan.json)
// describes the parameters a schedule was generated with, its totals, and
// content digests of the canonical schedule encoding. Plan directories can
// be packed into portable tar.xz or tar.gz archives.
package plan

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/schedule"
)

// Version is the current plan manifest format version.
const Version = "1.0.0"

// ManifestName is the manifest filename inside a plan directory.
const ManifestName = "plan.json"

// ToolName identifies the generator in manifests and registries.
const ToolName = "studygen"

// Manifest represents the plan manifest (plan.json).
type Manifest struct {
	PlanVersion string          `json:"plan_version"`
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	CreatedAt   string          `json:"created_at"`
	Tool        ToolInfo        `json:"tool"`
	Parameters  Parameters      `json:"parameters"`
	Totals      schedule.Totals `json:"totals"`
	Digests     Digests         `json:"digests"`

	// Notes lists the rendered note filenames, day notes then index.
	Notes []string `json:"notes,omitempty"`
}

// ToolInfo describes the tool that generated this plan.
type ToolInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Parameters records the generation inputs.
type Parameters struct {
	// Scope is the corpus scope the plan covers.
	Scope string `json:"scope"`

	// StartDate is the first reading date (YYYY-MM-DD).
	StartDate string `json:"start_date"`

	// RequestedDays is the day count asked for. The schedule may be shorter;
	// Totals.Days is authoritative.
	RequestedDays int `json:"requested_days"`

	// WordsPerMinute is the reading pace used for time estimates.
	WordsPerMinute int `json:"words_per_minute"`

	// LinkStyle is the wiki-link style used in the notes, if any.
	LinkStyle string `json:"link_style,omitempty"`
}

// NewManifest builds a manifest for a generated schedule: a fresh plan ID,
// creation timestamp, totals, and content digests.
func NewManifest(name string, params Parameters, days []*schedule.StudyDay) (*Manifest, error) {
	digests, err := ComputeDigests(days)
	if err != nil {
		return nil, errors.Wrap(err, "failed to digest schedule")
	}

	return &Manifest{
		PlanVersion: Version,
		ID:          uuid.New().String(),
		Name:        name,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Tool: ToolInfo{
			Name:    ToolName,
			Version: Version,
		},
		Parameters: params,
		Totals:     schedule.Summarize(days),
		Digests:    *digests,
	}, nil
}

// ToJSON serializes the manifest to JSON.
func (m *Manifest) ToJSON() ([]byte, error) {
	return json.MarshalIndent(m, "", "  ")
}

// ParseManifest parses a manifest from JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, &errors.ParseError{Format: "plan manifest", Message: err.Error(), Err: errors.ErrCorruptData}
	}
	return &m, nil
}
