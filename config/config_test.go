package config

import (
	"encoding/json"
	"testing"

	"github.com/edaniels/golog"
	"github.com/spf13/afero"
	"go.uber.org/multierr"
	"go.viam.com/test"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	_ "github.com/pinmapgen/pinmapgen/components/register"
	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const ledButtonYAML = `
version: "1"
name: ${BOARD_NAME}
mcu: rp2040
pins:
  - name: LED_RED
    pin: GP2
    role: gpio
    category: Indicators
    description: Red status LED
  - name: BUTTON_1
    pin: 5
    role: gpio
    category: Inputs
outputs:
  root: out
  formats: [arduino]
  mermaid: true
`

func TestLoadYAML(t *testing.T) {
	t.Setenv("BOARD_NAME", "blinky")
	fs := afero.NewMemMapFs()
	test.That(t, afero.WriteFile(fs, "/proj/pinmapgen.yaml", []byte(ledButtonYAML), 0o644), test.ShouldBeNil)

	cfg, err := Load(fs, "/proj/pinmapgen.yaml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Validate(""), test.ShouldBeNil)
	test.That(t, cfg.Name, test.ShouldEqual, "blinky")
	test.That(t, cfg.Pins, test.ShouldHaveLength, 2)
	test.That(t, cfg.Pins[1].Pin, test.ShouldEqual, "5")
	test.That(t, cfg.OutputRoot(), test.ShouldEqual, "/proj/out")
	test.That(t, cfg.Ref(), test.ShouldEqual, DefaultRef)

	formats, err := cfg.Formats()
	test.That(t, err, test.ShouldBeNil)
	test.That(t, formats, test.ShouldResemble, []emit.Format{emit.FormatArduino, emit.FormatMermaid})

	profile, err := cfg.Profile()
	test.That(t, err, test.ShouldBeNil)
	p, err := cfg.Project(fs, profile, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Pins, test.ShouldResemble, []pinmap.Pin{
		{Name: "LED_RED", Number: 2, Role: pinmap.RoleGPIO, Description: "Red status LED", Category: pinmap.CategoryIndicators, Physical: "GP2"},
		{Name: "BUTTON_1", Number: 5, Role: pinmap.RoleGPIO, Category: pinmap.CategoryInputs, Physical: "GP5"},
	})
}

func TestReadFormats(t *testing.T) {
	jsonCfg := `{"name": "j", "mcu": "esp32", "pins": [{"name": "LED", "number": 2}]}`
	cfg, err := Read([]byte(jsonCfg), ".json")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, *cfg.Pins[0].Number, test.ShouldEqual, 2)

	tomlCfg := "name = \"t\"\nmcu = \"stm32g0\"\n\n[source]\ncsv = \"board.csv\"\nref = \"U3\"\n"
	cfg, err = Read([]byte(tomlCfg), ".toml")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, cfg.Source.CSV, test.ShouldEqual, "board.csv")
	test.That(t, cfg.Ref(), test.ShouldEqual, "U3")
	test.That(t, cfg.Validate(""), test.ShouldBeNil)

	_, err = Read([]byte("name: x\nmcuu: rp2040\n"), ".yml")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "mcuu")

	_, err = Read([]byte("name=x"), ".ini")
	test.That(t, err, test.ShouldNotBeNil)
}

func TestValidate(t *testing.T) {
	errs := multierr.Errors((&Config{}).Validate(""))
	test.That(t, errs, test.ShouldHaveLength, 3)
	test.That(t, errs[0].Error(), test.ShouldEqual, `error validating "name": field is required`)

	neg := -1
	cfg := &Config{
		Version: "2.1",
		Name:    "x",
		MCU:     "rp2040",
		Source:  Source{CSV: "a.csv"},
		Pins: []PinConfig{
			{Name: "A", Number: &neg},
			{Name: "B", Pin: "GP1", Role: "warp-drive"},
			{Name: "C", Pin: "GP2", Role: "led", Bus: "SPI1", Category: "Sensors"},
		},
		Outputs: Outputs{Formats: []string{"pdf"}},
	}
	err := cfg.Validate("projects.0")
	test.That(t, err, test.ShouldNotBeNil)
	for _, want := range []string{
		`"projects.0.version"`,
		`"projects.0.source"`,
		`"projects.0.pins.0.number"`,
		`"projects.0.pins.1.role"`,
		`"projects.0.pins.2.category"`,
		`"projects.0.pins.2.bus"`,
		`"projects.0.outputs.formats"`,
	} {
		test.That(t, err.Error(), test.ShouldContainSubstring, want)
	}
}

func TestProjectFromNetlist(t *testing.T) {
	fs := afero.NewMemMapFs()
	csv := "Net,Pin,Component,RefDes\nSTATUS_LED,GP10,RP2040,U1\nGND,GND,RP2040,U1\nI2C_SDA,GP4,RP2040,U1\nI2C_SCL,GP5,RP2040,U1\n"
	test.That(t, afero.WriteFile(fs, "/hw/board.csv", []byte(csv), 0o644), test.ShouldBeNil)
	test.That(t, afero.WriteFile(fs, "/hw/pinmapgen.yaml", []byte("name: hub\nmcu: rp2040\nsource:\n  csv: board.csv\n"), 0o644), test.ShouldBeNil)

	cfg, err := Load(fs, "/hw/pinmapgen.yaml")
	test.That(t, err, test.ShouldBeNil)
	profile, err := mcu.Lookup(cfg.MCU)
	test.That(t, err, test.ShouldBeNil)
	p, err := cfg.Project(fs, profile, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, p.Name, test.ShouldEqual, "hub")
	test.That(t, p.Pins, test.ShouldHaveLength, 3)
	test.That(t, p.Pins[0].Role, test.ShouldEqual, pinmap.RoleLED)
}

func TestProjectBadPin(t *testing.T) {
	cfg := &Config{Name: "x", MCU: "rp2040", Pins: []PinConfig{{Name: "LED", Pin: "GP42"}}}
	profile, err := cfg.Profile()
	test.That(t, err, test.ShouldBeNil)
	_, err = cfg.Project(afero.NewMemMapFs(), profile, golog.NewTestLogger(t))
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "GP0-GP29")
}

func TestSchema(t *testing.T) {
	out, err := json.Marshal(Schema())
	test.That(t, err, test.ShouldBeNil)
	var doc map[string]interface{}
	test.That(t, json.Unmarshal(out, &doc), test.ShouldBeNil)
	props, ok := doc["properties"].(map[string]interface{})
	test.That(t, ok, test.ShouldBeTrue)
	for _, key := range []string{"name", "mcu", "pins", "source", "outputs"} {
		test.That(t, props, test.ShouldContainKey, key)
	}
	test.That(t, doc["required"], test.ShouldResemble, []interface{}{"name", "mcu"})
}
