// Package output lays generated files out under an output root and writes
// them without ever leaving a half-written file behind.
package output

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/pinmapgen/pinmapgen/emit"
)

// Paths maps each format to its location below the output root.
var Paths = map[emit.Format]string{
	emit.FormatJSON:        filepath.Join("pinmaps", "pinmap.json"),
	emit.FormatArduino:     filepath.Join("firmware", "include", "pinmap_arduino.h"),
	emit.FormatMicroPython: filepath.Join("firmware", "micropython", "pinmap_micropython.py"),
	emit.FormatMarkdown:    filepath.Join("firmware", "docs", "PINOUT.md"),
	emit.FormatMermaid:     filepath.Join("firmware", "docs", "pinout.mmd"),
}

// Path returns where format f is written below root.
func Path(root string, f emit.Format) string {
	return filepath.Join(root, Paths[f])
}

// A File is one rendered artifact.
type File struct {
	Format  emit.Format
	Path    string
	Content string
}

// Files is a set of rendered artifacts.
type Files []File

// Sorted returns the files ordered by path.
func (fs Files) Sorted() Files {
	out := append(Files(nil), fs...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// Size is the total content size in bytes.
func (fs Files) Size() int64 {
	var n int64
	for _, f := range fs {
		n += int64(len(f.Content))
	}
	return n
}

// A Writer writes files to Fs.
type Writer struct {
	Fs afero.Fs
}

// NewWriter returns a writer on the OS filesystem when fs is nil.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{Fs: fs}
}

// WriteAll writes every file. Each one goes to a temp file in the target
// directory first and is renamed into place.
func (w *Writer) WriteAll(files Files) error {
	for _, f := range files {
		if err := w.write(f); err != nil {
			return err
		}
	}
	return nil
}

func (w *Writer) write(f File) error {
	dir := filepath.Dir(f.Path)
	if err := w.Fs.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating %s", dir)
	}
	tmp, err := afero.TempFile(w.Fs, dir, "."+filepath.Base(f.Path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "creating temp file for %s", f.Path)
	}
	name := tmp.Name()
	if _, err := tmp.WriteString(f.Content); err != nil {
		tmp.Close()
		w.Fs.Remove(name)
		return errors.Wrapf(err, "writing %s", f.Path)
	}
	if err := tmp.Close(); err != nil {
		w.Fs.Remove(name)
		return errors.Wrapf(err, "writing %s", f.Path)
	}
	if err := w.Fs.Chmod(name, 0o644); err != nil {
		w.Fs.Remove(name)
		return errors.Wrapf(err, "setting mode on %s", f.Path)
	}
	if err := w.Fs.Rename(name, f.Path); err != nil {
		w.Fs.Remove(name)
		return errors.Wrapf(err, "moving %s into place", f.Path)
	}
	return nil
}

// Read returns the content at path, or false when there is no such file.
func (w *Writer) Read(path string) (string, bool, error) {
	data, err := afero.ReadFile(w.Fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrapf(err, "reading %s", path)
	}
	return string(data), true, nil
}
