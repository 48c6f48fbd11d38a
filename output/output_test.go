package output

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"go.viam.com/test"

	"github.com/pinmapgen/pinmapgen/emit"
)

func TestPath(t *testing.T) {
	test.That(t, Path("out", emit.FormatArduino), test.ShouldEqual, filepath.Join("out", "firmware", "include", "pinmap_arduino.h"))
	test.That(t, Path("/r", emit.FormatJSON), test.ShouldEqual, filepath.Join("/r", "pinmaps", "pinmap.json"))
	for _, f := range emit.Formats {
		test.That(t, Paths, test.ShouldContainKey, f)
	}
}

func TestWriteAll(t *testing.T) {
	fs := afero.NewMemMapFs()
	w := NewWriter(fs)
	files := Files{
		{Format: emit.FormatArduino, Path: Path("/out", emit.FormatArduino), Content: "#define LED 2\n"},
		{Format: emit.FormatJSON, Path: Path("/out", emit.FormatJSON), Content: "{}\n"},
	}
	test.That(t, w.WriteAll(files), test.ShouldBeNil)
	test.That(t, files.Size(), test.ShouldEqual, 17)

	got, ok, err := w.Read(files[0].Path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, got, test.ShouldEqual, "#define LED 2\n")

	// overwrite in place
	files[0].Content = "#define LED 3\n"
	test.That(t, w.WriteAll(files[:1]), test.ShouldBeNil)
	got, _, _ = w.Read(files[0].Path)
	test.That(t, got, test.ShouldEqual, "#define LED 3\n")

	entries, err := afero.ReadDir(fs, "/out/firmware/include")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].Name(), test.ShouldEqual, "pinmap_arduino.h")

	_, ok, err = w.Read("/out/missing.h")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestWriteAllReadOnly(t *testing.T) {
	w := NewWriter(afero.NewReadOnlyFs(afero.NewMemMapFs()))
	err := w.WriteAll(Files{{Path: "/out/pinmaps/pinmap.json", Content: "{}"}})
	test.That(t, err, test.ShouldNotBeNil)
	_, ok, _ := w.Read("/out/pinmaps/pinmap.json")
	test.That(t, ok, test.ShouldBeFalse)
}

func TestSorted(t *testing.T) {
	files := Files{{Path: "b"}, {Path: "a"}}
	sorted := files.Sorted()
	test.That(t, sorted[0].Path, test.ShouldEqual, "a")
	test.That(t, files[0].Path, test.ShouldEqual, "b")
}
