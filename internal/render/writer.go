package render

import (
	"os"
	"path/filepath"

	"github.com/deltajuliet/obsidian-daily-bible-study-generator/core/errors"
)

// WriteAll writes every note into dir, creating the directory if needed.
// If any write fails, the notes written by this call are removed so a
// partial plan is never left behind.
func WriteAll(dir string, notes []*Note) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewIO("create", dir, err)
	}

	written := make([]string, 0, len(notes))
	for _, n := range notes {
		path := filepath.Join(dir, n.Filename)
		if err := os.WriteFile(path, []byte(n.Content), 0644); err != nil {
			for _, p := range written {
				os.Remove(p)
			}
			return errors.NewIO("write", path, err)
		}
		written = append(written, path)
	}
	return nil
}
