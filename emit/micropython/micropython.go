// Package micropython renders pinmap_micropython.py for MicroPython firmware.
package micropython

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const rule = "# ========================================"

// Target is the name used in validation errors.
const Target = "micropython-rp2040"

var unsupported = map[pinmap.Role]bool{
	pinmap.RoleCANH: true,
	pinmap.RoleCANL: true,
	pinmap.RoleDAC:  true,
}

// A Renderer renders MicroPython pin modules.
type Renderer struct {
	Clock clock.Clock
}

// NewRenderer returns a renderer reading the banner time from clk.
func NewRenderer(clk clock.Clock) *Renderer {
	if clk == nil {
		clk = clock.New()
	}
	return &Renderer{Clock: clk}
}

func supports(r pinmap.Role) bool { return r.Valid() && !unsupported[r] }

// Render returns the module source for p.
func (r *Renderer) Render(p *pinmap.Project) (string, error) {
	if err := emit.ValidateRoles(p, Target, supports); err != nil {
		return "", err
	}

	lines := []string{
		`"""`,
		fmt.Sprintf("Auto-generated MicroPython pinmap for %s.", emit.MCUName(p)),
		"Generated: " + r.Clock.Now().Format(emit.TimestampLayout),
		"Generator: " + emit.Generator,
		"",
		"This file contains pin constants and helper functions for easy hardware access.",
		`"""`,
		"",
		"from machine import Pin, I2C, SPI, PWM, ADC",
		"",
		rule, "# Pin Constants", rule, "",
	}

	for _, g := range p.Groups() {
		lines = append(lines, "# "+g.Category.Header())
		for _, pin := range g.Pins {
			line := fmt.Sprintf("%s = %d", pin.Macro(), pin.Number)
			if pin.Description != "" {
				line += "  # " + pin.Description
			}
			lines = append(lines, line)
		}
		lines = append(lines, "")
	}

	lines = append(lines, rule, "# Helper Functions", rule, "",
		"def pin_in(pin_num, pull=None):",
		`    """Create a digital input pin with optional pull resistor."""`,
		"    return Pin(pin_num, Pin.IN, pull)",
		"",
		"def pin_out(pin_num, value=0):",
		`    """Create a digital output pin with initial value."""`,
		"    return Pin(pin_num, Pin.OUT, value=value)",
		"",
	)

	if p.HasRole(pinmap.RoleADC) {
		lines = append(lines,
			"def adc(pin_num):",
			`    """Create an ADC object for analog reading."""`,
			"    return ADC(Pin(pin_num))",
			"",
		)
	}
	if p.HasRole(pinmap.RolePWM) {
		lines = append(lines,
			"def pwm(pin_num, freq=1000):",
			`    """Create a PWM object with specified frequency."""`,
			"    return PWM(Pin(pin_num), freq=freq)",
			"",
		)
	}

	for _, bus := range complete(p.Buses(pinmap.FamilyI2C)) {
		sda, scl := bus.Lines[pinmap.RoleI2CSDA], bus.Lines[pinmap.RoleI2CSCL]
		lines = append(lines,
			fmt.Sprintf("def setup_%s(freq=400000):", strings.ToLower(bus.Name)),
			fmt.Sprintf(`    """Setup %s with SDA=%s, SCL=%s."""`, bus.Name, physical(sda), physical(scl)),
			fmt.Sprintf("    return I2C(%d, sda=Pin(%s), scl=Pin(%s), freq=freq)",
				pinmap.BusIndex(bus.Name), sda.Macro(), scl.Macro()),
			"",
		)
	}
	for _, bus := range complete(p.Buses(pinmap.FamilySPI)) {
		mosi, miso, sck := bus.Lines[pinmap.RoleSPIMOSI], bus.Lines[pinmap.RoleSPIMISO], bus.Lines[pinmap.RoleSPISCK]
		lines = append(lines,
			fmt.Sprintf("def setup_%s(baudrate=1000000):", strings.ToLower(bus.Name)),
			fmt.Sprintf(`    """Setup %s with MOSI=%s, MISO=%s, SCK=%s."""`,
				bus.Name, physical(mosi), physical(miso), physical(sck)),
			fmt.Sprintf("    return SPI(%d, mosi=Pin(%s), miso=Pin(%s), sck=Pin(%s), baudrate=baudrate)",
				pinmap.BusIndex(bus.Name), mosi.Macro(), miso.Macro(), sck.Macro()),
			"",
		)
	}

	if len(p.Pairs) > 0 {
		lines = append(lines, rule, "# Differential Pair Classes", rule, "")
		names := pinmap.PairNames(p.Pairs)
		for i, pair := range p.Pairs {
			lines = append(lines, pairClass(p, pair, names[i])...)
		}
	}

	return strings.Join(lines, "\n"), nil
}

func complete(buses []pinmap.Bus) []pinmap.Bus {
	var out []pinmap.Bus
	for _, b := range buses {
		if b.Active() && b.Complete() {
			out = append(out, b)
		}
	}
	return out
}

// physical names the MCU pin in docstrings, falling back to the index.
func physical(pin pinmap.Pin) string {
	if pin.Physical != "" {
		return pin.Physical
	}
	return strconv.Itoa(pin.Number)
}

func pairClass(p *pinmap.Project, pair pinmap.DiffPair, name string) []string {
	pos, _ := p.Pin(pair.Positive)
	neg, _ := p.Pin(pair.Negative)
	posAttr, negAttr, what := "DP", "DN", "USB D+/D-"
	if pair.Kind == pinmap.FamilyCAN {
		posAttr, negAttr, what = "H", "L", "CAN H/L"
	}
	attr := func(name string, pin pinmap.Pin) string {
		s := fmt.Sprintf("    %s = %s", name, pin.Macro())
		if pin.Description != "" {
			s += "  # " + pin.Description
		}
		return s
	}
	return []string{
		fmt.Sprintf("class %sPins:", name),
		fmt.Sprintf(`    """%s differential pair pin definitions."""`, name),
		attr(posAttr, pos),
		attr(negAttr, neg),
		"",
		"    @classmethod",
		"    def get_pair(cls):",
		fmt.Sprintf(`        """Get %s pin tuple."""`, what),
		fmt.Sprintf("        return (cls.%s, cls.%s)", posAttr, negAttr),
		"",
	}
}
