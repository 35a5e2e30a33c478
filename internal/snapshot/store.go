// Package snapshot persists one analysis snapshot per output directory.
// The file written at the end of a run is the baseline the next run
// diffs against; there is no history beyond that single prior version.
package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	apperrors "github.com/fabioluciano/profile-analyzer/internal/errors"
	"github.com/fabioluciano/profile-analyzer/internal/models"
)

const fileName = "snapshot.json"

// Store reads and writes the snapshot file inside a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the snapshot file path.
func (s *Store) Path() string {
	return filepath.Join(s.dir, fileName)
}

// Load reads the previous snapshot. A missing file is not an error: it
// means first run and returns (nil, nil). A corrupt file is an error.
func (s *Store) Load() (*models.Snapshot, error) {
	data, err := os.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.FileSystemErrorf(err, "read snapshot %s", s.Path())
	}

	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, apperrors.FileSystemErrorf(err, "decode snapshot %s", s.Path())
	}

	return &snap, nil
}

// Save writes the snapshot, replacing any prior one. The write goes to a
// temp file in the same directory and is renamed into place, so a crash
// mid-write never leaves a torn snapshot.
func (s *Store) Save(snap *models.Snapshot) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return apperrors.FileSystemErrorf(err, "create output dir %s", s.dir)
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return apperrors.FileSystemError(err, "encode snapshot")
	}

	tmp, err := os.CreateTemp(s.dir, fileName+".*")
	if err != nil {
		return apperrors.FileSystemError(err, "create snapshot temp file")
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return apperrors.FileSystemError(err, "write snapshot")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return apperrors.FileSystemError(err, "close snapshot temp file")
	}

	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		os.Remove(tmp.Name())
		return apperrors.FileSystemErrorf(err, "replace snapshot %s", s.Path())
	}

	return nil
}
