// Package arduino renders pinmap_arduino.h, the C++ header consumed by
// Arduino and PlatformIO firmware builds.
package arduino

import (
	"fmt"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/pinmapgen/pinmapgen/emit"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const rule = "// ========================================"

// A Renderer renders projects for one Arduino profile. Only the banner
// timestamp depends on Clock.
type Renderer struct {
	Clock   clock.Clock
	Profile *Profile
}

// NewRenderer returns a renderer for the given platform selector.
func NewRenderer(platform string, clk clock.Clock) (*Renderer, error) {
	profile, err := Lookup(platform)
	if err != nil {
		return nil, err
	}
	if clk == nil {
		clk = clock.New()
	}
	return &Renderer{Clock: clk, Profile: profile}, nil
}

// Render renders p with the wall clock, selecting the profile from
// p.Platform.
func Render(p *pinmap.Project) (string, error) {
	r, err := NewRenderer(p.Platform, nil)
	if err != nil {
		return "", err
	}
	return r.Render(p)
}

// Validate checks p against the project invariants and the profile's
// supported roles.
func (r *Renderer) Validate(p *pinmap.Project) error {
	return emit.ValidateRoles(p, r.Profile.Name, r.Profile.Supports)
}

// Render returns the header text for p, or an error and no text.
func (r *Renderer) Render(p *pinmap.Project) (string, error) {
	if err := r.Validate(p); err != nil {
		return "", err
	}

	var b strings.Builder
	guard := r.Profile.Guard
	fmt.Fprintf(&b, "#ifndef %s\n#define %s\n\n", guard, guard)
	b.WriteString("/*\n")
	fmt.Fprintf(&b, " * Auto-generated Arduino pinmap for %s\n", emit.MCUName(p))
	fmt.Fprintf(&b, " * Generated: %s\n", r.Clock.Now().Format(emit.TimestampLayout))
	fmt.Fprintf(&b, " * Generator: %s\n", emit.Generator)
	b.WriteString(" *\n")
	b.WriteString(" * This file contains pin definitions, helper structures, and macros\n")
	b.WriteString(" * for easy hardware access in Arduino/PlatformIO projects.\n")
	b.WriteString(" */\n\n")
	fmt.Fprintf(&b, "#include %s\n\n", r.Profile.Include)

	section(&b, "Pin Definitions")
	for _, g := range p.Groups() {
		fmt.Fprintf(&b, "// %s\n", g.Category.Header())
		for _, pin := range g.Pins {
			fmt.Fprintf(&b, "#define %s %d%s\n", pin.Macro(), pin.Number, trailing(pin.Description))
		}
		b.WriteString("\n")
	}

	writePairs(&b, p)

	section(&b, "Helper Macros")
	b.WriteString("// Digital I/O helpers\n")
	b.WriteString("#define PIN_INPUT(pin)          pinMode(pin, INPUT)\n")
	b.WriteString("#define PIN_INPUT_PULLUP(pin)   pinMode(pin, INPUT_PULLUP)\n")
	b.WriteString("#define PIN_OUTPUT(pin)         pinMode(pin, OUTPUT)\n")
	b.WriteString("#define READ_PIN(pin)           digitalRead(pin)\n")
	b.WriteString("#define WRITE_PIN(pin, val)     digitalWrite(pin, val)\n\n")

	if p.HasRole(pinmap.RolePWM) {
		b.WriteString("// PWM helpers\n")
		b.WriteString("#define PWM_WRITE(pin, val)     analogWrite(pin, val)\n")
		b.WriteString("#define PWM_FREQ(pin, freq)     analogWriteFreq(freq)  // ESP32/RP2040\n\n")
	}
	if p.HasRole(pinmap.RoleADC) {
		b.WriteString("// ADC helpers\n")
		b.WriteString("#define ADC_READ(pin)           analogRead(pin)\n")
		b.WriteString("#define ADC_READ_VOLTAGE(pin)   (analogRead(pin) * 3.3f / 1023.0f)\n\n")
	}

	for _, periph := range r.Profile.Peripherals {
		writePeripheral(&b, periph, p.Buses(periph.Family))
	}

	fmt.Fprintf(&b, "#endif // %s\n", guard)
	return b.String(), nil
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "%s\n// %s\n%s\n\n", rule, title, rule)
}

func trailing(desc string) string {
	if desc == "" {
		return ""
	}
	return "  // " + desc
}

var pairFields = map[pinmap.Family][2]string{
	pinmap.FamilyUSB: {"DP", "DN"},
	pinmap.FamilyCAN: {"H", "L"},
}

func writePairs(b *strings.Builder, p *pinmap.Project) {
	if len(p.Pairs) == 0 {
		return
	}
	section(b, "Differential Pair Structures")
	names := pinmap.PairNames(p.Pairs)
	for i, pair := range p.Pairs {
		fields := pairFields[pair.Kind]
		// Validate has checked that both ends exist.
		pos, _ := p.Pin(pair.Positive)
		neg, _ := p.Pin(pair.Negative)
		fmt.Fprintf(b, "struct %sPins {\n", names[i])
		fmt.Fprintf(b, "    static constexpr uint8_t %s = %s;%s\n", fields[0], pos.Macro(), trailing(pos.Description))
		fmt.Fprintf(b, "    static constexpr uint8_t %s = %s;%s\n", fields[1], neg.Macro(), trailing(neg.Description))
		b.WriteString("};\n\n")
	}
}

// writePeripheral emits the include once and one SETUP_<BUS>(freq) macro per
// active bus. Validation has already rejected active buses that are missing
// a line, so every active bus here is complete.
func writePeripheral(b *strings.Builder, periph Peripheral, buses []pinmap.Bus) {
	var active []pinmap.Bus
	for _, bus := range buses {
		if bus.Active() {
			active = append(active, bus)
		}
	}
	if len(active) == 0 {
		return
	}
	fmt.Fprintf(b, "// %s setup helpers\n", periph.Family)
	fmt.Fprintf(b, "#include %s\n", periph.Include)
	for _, bus := range active {
		obj := periph.Object(bus.Name)
		stmts := make([]string, 0, len(periph.Calls))
		for _, c := range periph.Calls {
			if c.Line == pinmap.RoleUnknown {
				stmts = append(stmts, fmt.Sprintf(c.Format, obj))
				continue
			}
			line, _ := bus.Line(c.Line)
			stmts = append(stmts, fmt.Sprintf(c.Format, obj, line))
		}
		fmt.Fprintf(b, "#define SETUP_%s(freq) \\\n    %s\n\n", bus.Name, strings.Join(stmts, "; \\\n    "))
	}
}
