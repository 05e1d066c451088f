package lesson

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/japaniel/vocabprep/pkg/vocab"
)

// ErrLessonNotFound is returned when a lesson has no table file.
var ErrLessonNotFound = errors.New("lesson table not found")

// BackupSuffix is appended to a table path to name its backup copy.
const BackupSuffix = ".backup"

// Store is a directory of lesson tables named lesson_NN_vocabulary.csv.
type Store struct {
	Dir string
}

// Path returns the table path of lesson n.
func (s Store) Path(n int) string {
	return filepath.Join(s.Dir, fmt.Sprintf("lesson_%02d_vocabulary.csv", n))
}

// Exists reports whether lesson n has a table file.
func (s Store) Exists(n int) bool {
	_, err := os.Stat(s.Path(n))
	return err == nil
}

// Load reads lesson n. Entries without a lesson number take n.
func (s Store) Load(n int) (*Table, error) {
	t, err := Read(s.Path(n))
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("lesson %d: %w", n, ErrLessonNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lesson %d: %w", n, err)
	}
	for i := range t.Entries {
		if t.Entries[i].Lesson == 0 {
			t.Entries[i].Lesson = n
		}
		if t.Entries[i].LessonLabel == "" && t.Layout == Standard {
			t.Entries[i].LessonLabel = vocab.LessonLabel(n)
		}
	}
	return t, nil
}

// Save writes lesson n, creating the directory when needed.
func (s Store) Save(n int, t *Table) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	if err := Write(s.Path(n), t); err != nil {
		return fmt.Errorf("lesson %d: %w", n, err)
	}
	return nil
}

// Backup copies path to path+BackupSuffix, keeping its mode.
func Backup(path string) (string, error) {
	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	info, err := src.Stat()
	if err != nil {
		return "", err
	}

	dst := path + BackupSuffix
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return "", fmt.Errorf("create backup: %w", err)
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return "", fmt.Errorf("write backup: %w", err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	return dst, os.Chtimes(dst, info.ModTime(), info.ModTime())
}

// DiscardBackup removes the backup of path. A missing backup is not an error.
func DiscardBackup(path string) error {
	err := os.Remove(path + BackupSuffix)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
