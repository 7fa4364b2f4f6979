package export

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Upper bound on ' (n)' suffixes tried before giving up
const maxNameAttempts = 1000

// Sink receives finished downloads
type Sink interface {
	Save(d *Download) (string, error)
}

// DirSink writes downloads into a directory. Existing files are kept,
// a new download gets a ' (n)' suffix the way browsers name repeated
// downloads.
type DirSink struct {
	Dir string
}

func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

// Writes d to a temporary file and renames it into place once fully
// written, so a failure never leaves a partial image behind
func (s *DirSink) Save(d *Download) (string, error) {
	if d == nil || len(d.Data) == 0 {
		return "", fmt.Errorf("nothing to save")
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return "", fmt.Errorf(
			"failed to create output directory %s: %w",
			s.Dir,
			err,
		)
	}

	tmp, err := os.CreateTemp(s.Dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(d.Data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to chmod %s: %w", tmpPath, err)
	}

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		target := filepath.Join(s.Dir, candidateName(d.Name, attempt))

		// Link fails if target exists, which keeps earlier downloads
		err := os.Link(tmpPath, target)
		if err == nil {
			os.Remove(tmpPath)
			slog.Debug("Download saved", "path", target, "bytes", len(d.Data))
			return target, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		// Filesystems without hard links
		if _, statErr := os.Stat(target); errors.Is(statErr, fs.ErrNotExist) {
			if renameErr := os.Rename(tmpPath, target); renameErr != nil {
				os.Remove(tmpPath)
				return "", fmt.Errorf(
					"failed to move download to %s: %w",
					target,
					renameErr,
				)
			}
			slog.Debug("Download saved", "path", target, "bytes", len(d.Data))
			return target, nil
		}
	}

	os.Remove(tmpPath)
	return "", fmt.Errorf("no free file name for %s in %s", d.Name, s.Dir)
}

// 'resized-image.png', 'resized-image (1).png', ...
func candidateName(name string, attempt int) string {
	if attempt == 0 {
		return name
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s (%d)%s", base, attempt, ext)
}
