package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/edaniels/golog"
	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"go.viam.com/test"

	_ "github.com/pinmapgen/pinmapgen/components/register"
	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/output"
)

const boardCSV = `Net,Pin,Component,RefDes
I2C_SDA,GP4,RP2040,U1
I2C_SCL,GP5,RP2040,U1
STATUS_LED,GP10,RP2040,U1
GND,GND,RP2040,U1
LED_OTHER,GP11,LED,D1
`

type harness struct {
	fs  afero.Fs
	out *bytes.Buffer
	clk *clock.Mock
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	color.NoColor = true
	h := &harness{fs: afero.NewMemMapFs(), out: &bytes.Buffer{}, clk: clock.NewMock()}
	h.clk.Set(time.Date(2025, 9, 28, 5, 43, 31, 0, time.UTC))
	test.That(t, afero.WriteFile(h.fs, "/hw/board.csv", []byte(boardCSV), 0o644), test.ShouldBeNil)
	return h
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	app := NewApp(Options{
		Fs:     h.fs,
		Clock:  h.clk,
		Stdout: h.out,
		Stderr: h.out,
		Logger: golog.NewTestLogger(t),
	})
	return app.RunContext(context.Background(), append([]string{"pinmapgen"}, args...))
}

func TestGenerateFromCSV(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "generate", "--csv", "/hw/board.csv", "--out-root", "/out", "--mermaid")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "generated board (rp2040)")

	for _, f := range append(emit.DefaultFormats, emit.FormatMermaid) {
		ok, err := afero.Exists(h.fs, output.Path("/out", f))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, ok, test.ShouldBeTrue)
	}
	header, err := afero.ReadFile(h.fs, output.Path("/out", emit.FormatArduino))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(header), test.ShouldContainSubstring, "#define SETUP_I2C(freq)")
	test.That(t, string(header), test.ShouldNotContainSubstring, "LED_OTHER")
}

func TestCheck(t *testing.T) {
	h := newHarness(t)
	args := []string{"--csv", "/hw/board.csv", "--out-root", "/out", "--format", "arduino,json"}

	err := h.run(t, append([]string{"check"}, args...)...)
	var stale *StaleError
	test.That(t, errors.As(err, &stale), test.ShouldBeTrue)
	test.That(t, stale.Paths, test.ShouldHaveLength, 2)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "missing ")

	test.That(t, h.run(t, append([]string{"generate"}, args...)...), test.ShouldBeNil)
	h.clk.Add(24 * time.Hour)
	h.out.Reset()
	test.That(t, h.run(t, append([]string{"check"}, args...)...), test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "up to date")

	edited := "/hw/board.csv"
	test.That(t, afero.WriteFile(h.fs, edited, []byte(boardCSV+"BUTTON_IN,GP14,RP2040,U1\n"), 0o644), test.ShouldBeNil)
	h.out.Reset()
	err = h.run(t, append([]string{"check"}, args...)...)
	test.That(t, errors.As(err, &stale), test.ShouldBeTrue)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "+#define BUTTON_IN 14")
}

func TestGenerateConfigs(t *testing.T) {
	h := newHarness(t)
	test.That(t, afero.WriteFile(h.fs, "/hw/a.yaml", []byte(`
name: sensor
mcu: rp2040
source:
  csv: board.csv
outputs:
  root: gen/a
  formats: [json]
`), 0o644), test.ShouldBeNil)
	test.That(t, afero.WriteFile(h.fs, "/hw/b.toml", []byte(`
name = "blinky"
mcu = "rp2040"

[[pins]]
name = "LED_RED"
pin = "GP2"
category = "Indicators"

[outputs]
root = "gen/b"
formats = ["arduino"]
`), 0o644), test.ShouldBeNil)

	err := h.run(t, "generate", "--config", "/hw/a.yaml", "--config", "/hw/b.toml")
	test.That(t, err, test.ShouldBeNil)
	ok, _ := afero.Exists(h.fs, output.Path("/hw/gen/a", emit.FormatJSON))
	test.That(t, ok, test.ShouldBeTrue)
	header, err := afero.ReadFile(h.fs, output.Path("/hw/gen/b", emit.FormatArduino))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, string(header), test.ShouldContainSubstring, "// Indicators Pins\n#define LED_RED 2")

}

func TestGenerateErrors(t *testing.T) {
	h := newHarness(t)
	err := h.run(t, "generate")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "--config, --csv or --sch")

	err = h.run(t, "generate", "--csv", "/hw/board.csv", "--mcu", "avr")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "avr")

	err = h.run(t, "generate", "--csv", "/hw/board.csv", "--platform", "arduino-avr")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "unsupported platform")
}

func TestProfiles(t *testing.T) {
	h := newHarness(t)
	test.That(t, h.run(t, "profiles"), test.ShouldBeNil)
	for _, want := range []string{"rp2040", "esp32", "stm32g0", "Arduino platforms: arduino-rp2040"} {
		test.That(t, h.out.String(), test.ShouldContainSubstring, want)
	}

	h.out.Reset()
	test.That(t, h.run(t, "profiles", "rp2040"), test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "GP29")
	test.That(t, h.out.String(), test.ShouldContainSubstring, "USB_DP")

	test.That(t, h.run(t, "profiles", "z80"), test.ShouldNotBeNil)
}

func TestSchema(t *testing.T) {
	h := newHarness(t)
	test.That(t, h.run(t, "schema"), test.ShouldBeNil)
	var doc map[string]interface{}
	test.That(t, json.Unmarshal(h.out.Bytes(), &doc), test.ShouldBeNil)
	test.That(t, doc, test.ShouldContainKey, "properties")
}

func TestGlobalFlags(t *testing.T) {
	h := newHarness(t)
	test.That(t, h.run(t, "--version"), test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "pinmapgen version "+emit.Version)

	h.out.Reset()
	test.That(t, h.run(t, "-v"), test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, emit.Version)

	h.out.Reset()
	test.That(t, h.run(t, "--verbose", "--log-json", "profiles"), test.ShouldBeNil)
	test.That(t, h.out.String(), test.ShouldContainSubstring, "rp2040")
}
