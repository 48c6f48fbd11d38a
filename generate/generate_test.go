package generate

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.viam.com/test"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/output"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

func blinky() *pinmap.Project {
	return &pinmap.Project{
		Name: "blinky",
		MCU:  "rp2040",
		Pins: []pinmap.Pin{
			{Name: "LED_RED", Number: 2, Role: pinmap.RoleLED, Description: "Red status LED"},
			{Name: "BUTTON_1", Number: 5, Role: pinmap.RoleButton},
			{Name: "I2C_SDA", Number: 4, Role: pinmap.RoleI2CSDA, Bus: "I2C"},
			{Name: "I2C_SCL", Number: 3, Role: pinmap.RoleI2CSCL, Bus: "I2C"},
		},
	}
}

func newGenerator(t *testing.T) (*Generator, *clock.Mock) {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2025, 9, 28, 5, 43, 31, 0, time.Local))
	return New(afero.NewMemMapFs(), clk, golog.NewTestLogger(t)), clk
}

func TestRunAndCheck(t *testing.T) {
	g, clk := newGenerator(t)
	ctx := context.Background()

	files, err := g.Run(ctx, blinky(), "/out", emit.Formats)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, files, test.ShouldHaveLength, len(emit.Formats))
	for _, f := range emit.Formats {
		ok, err := afero.Exists(g.Fs, output.Path("/out", f))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
	}

	header, err := afero.ReadFile(g.Fs, output.Path("/out", emit.FormatArduino))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(header), test.ShouldContainSubstring, "#define LED_RED 2  // Red status LED\n")

	clk.Add(time.Hour)
	stale, err := g.Check(blinky(), "/out", emit.Formats)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stale, test.ShouldBeEmpty)

	changed := blinky()
	changed.Pins[0].Number = 3
	stale, err = g.Check(changed, "/out", []emit.Format{emit.FormatArduino})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stale, test.ShouldHaveLength, 1)
	test.That(t, stale[0].Missing, test.ShouldBeFalse)
	test.That(t, stale[0].Diff, test.ShouldContainSubstring, "-#define LED_RED 2  // Red status LED\n")
	test.That(t, stale[0].Diff, test.ShouldContainSubstring, "+#define LED_RED 3  // Red status LED\n")
	test.That(t, stale[0].Diff, test.ShouldNotContainSubstring, "#endif")

	test.That(t, g.Fs.Remove(output.Path("/out", emit.FormatJSON)), test.ShouldBeNil)
	stale, err = g.Check(blinky(), "/out", emit.DefaultFormats)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, stale, test.ShouldResemble, []Stale{{Path: output.Path("/out", emit.FormatJSON), Missing: true}})
}

func TestRenderFailureWritesNothing(t *testing.T) {
	g, _ := newGenerator(t)
	p := blinky()
	p.Pins = append(p.Pins, pinmap.Pin{Name: "CAN_H", Number: 8, Role: pinmap.RoleCANH})

	_, err := g.Run(context.Background(), p, "/out", emit.DefaultFormats)
	var cfgErr *pinmap.ConfigurationError
	test.That(t, errors.As(err, &cfgErr), test.ShouldBeTrue)

	ok, err := afero.DirExists(g.Fs, "/out")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ok, test.ShouldBeFalse)
}

func TestRunAll(t *testing.T) {
	g, _ := newGenerator(t)
	other := blinky()
	other.Name = "other"

	err := g.RunAll(context.Background(), []Job{
		{Project: blinky(), Root: "/a", Formats: emit.DefaultFormats},
		{Project: other, Root: "/b", Formats: []emit.Format{emit.FormatMermaid}},
	})
	test.That(t, err, test.ShouldBeNil)
	ok, _ := afero.Exists(g.Fs, output.Path("/b", emit.FormatMermaid))
	test.That(t, ok, test.ShouldBeTrue)

	bad := blinky()
	bad.Pins = append(bad.Pins, bad.Pins[0])
	err = g.RunAll(context.Background(), []Job{
		{Project: bad, Root: "/c", Formats: emit.DefaultFormats},
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "LED_RED")
}

func TestRunCancelled(t *testing.T) {
	g, _ := newGenerator(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := g.Run(ctx, blinky(), "/out", emit.DefaultFormats)
	test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
}

func TestRunLogs(t *testing.T) {
	logger, logs := golog.NewObservedTestLogger(t)
	g := New(afero.NewMemMapFs(), clock.NewMock(), logger)
	p := blinky()
	p.Warnings = []string{"LED_RED (GP2): something"}
	_, err := g.Run(context.Background(), p, "/out", []emit.Format{emit.FormatJSON})
	test.That(t, err, test.ShouldBeNil)

	entries := logs.FilterMessage("generated pinmap").All()
	test.That(t, entries, test.ShouldHaveLength, 1)
	test.That(t, entries[0].ContextMap()["project"], test.ShouldEqual, "blinky")
	test.That(t, logs.FilterMessage("pin assignment").Len(), test.ShouldEqual, 1)
}

func TestLineDiff(t *testing.T) {
	have := strings.Join([]string{"a", "b", "c", "d", "e", "f", "g", ""}, "\n")
	want := strings.Join([]string{"a", "b", "c", "d", "E", "f", "g", ""}, "\n")
	diff := lineDiff("x", have, want)
	test.That(t, diff, test.ShouldEqual, "--- x (on disk)\n+++ x (generated)\n@@\n c\n d\n-e\n+E\n f\n g\n")
}
