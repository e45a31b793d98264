package plan

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"

	"github.com/zeebo/blake3"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/schedule"
)

// Digests contains both SHA-256 and BLAKE3 hashes of a schedule's canonical
// encoding.
type Digests struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// dayDigest is one day in the canonical schedule encoding. Only the fields
// that identify the reading plan are included; verse and word totals are
// derived and omitted.
type dayDigest struct {
	Day      int             `json:"day"`
	Date     string          `json:"date"`
	Readings []segmentDigest `json:"readings"`
}

type segmentDigest struct {
	Book  string `json:"book"`
	Start int    `json:"start"`
	End   int    `json:"end"`
}

// CanonicalEncoding returns the deterministic JSON encoding of a schedule
// used for content digests. Two schedules with the same readings on the same
// dates encode identically.
func CanonicalEncoding(days []*schedule.StudyDay) ([]byte, error) {
	encoded := make([]dayDigest, len(days))
	for i, d := range days {
		readings := make([]segmentDigest, len(d.Segments))
		for j, s := range d.Segments {
			readings[j] = segmentDigest{
				Book:  s.Book.Name,
				Start: s.StartChapter,
				End:   s.EndChapter,
			}
		}
		encoded[i] = dayDigest{
			Day:      d.DayNumber,
			Date:     d.Date.Format(time.DateOnly),
			Readings: readings,
		}
	}
	return json.Marshal(encoded)
}

// ComputeDigests hashes the canonical encoding of a schedule with both
// SHA-256 and BLAKE3.
func ComputeDigests(days []*schedule.StudyDay) (*Digests, error) {
	data, err := CanonicalEncoding(days)
	if err != nil {
		return nil, err
	}

	sum := sha256.Sum256(data)
	b3 := blake3.Sum256(data)
	return &Digests{
		SHA256: hex.EncodeToString(sum[:]),
		BLAKE3: hex.EncodeToString(b3[:]),
	}, nil
}

// Verify recomputes the schedule digests and compares them against the
// manifest. A mismatch means the notes and the manifest describe different
// schedules.
func (m *Manifest) Verify(days []*schedule.StudyDay) error {
	digests, err := ComputeDigests(days)
	if err != nil {
		return errors.Wrap(err, "failed to digest schedule")
	}
	if digests.SHA256 != m.Digests.SHA256 || digests.BLAKE3 != m.Digests.BLAKE3 {
		return errors.Wrapf(errors.ErrCorruptData, "plan %s: schedule digest mismatch", m.ID)
	}
	return nil
}
