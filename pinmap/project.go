package pinmap

import (
	"regexp"
	"sort"
	"strings"

	"go.uber.org/multierr"
)

// A Pin is a named, numbered hardware signal line.
type Pin struct {
	// Name is the logical name; it becomes the emitted constant.
	Name string
	// Number is the target-specific pin index.
	Number int
	Role   Role
	// Description is reproduced verbatim as a trailing comment and must be a
	// single line.
	Description string
	// Category overrides the role's default category when set.
	Category Category
	// Bus names the peripheral instance, e.g. "SPI1". Empty means the
	// family default.
	Bus string
	// Physical is the normalized MCU pin name, e.g. "GP16".
	Physical string
}

// Macro is the sanitized constant name the pin is emitted as.
func (p Pin) Macro() string { return MacroName(p.Name) }

// Group reports the category the pin is listed under.
func (p Pin) Group() Category {
	if p.Category != "" {
		return p.Category
	}
	if p.Bus != "" && p.Bus != string(p.Role.Family()) {
		if _, ok := ParseBus(p.Bus, p.Role.Family()); ok && busInstanceRe.MatchString(p.Bus) {
			return Category(p.Bus)
		}
	}
	return p.Role.Category()
}

// BusName is the bus instance of the pin, defaulting to its family name.
func (p Pin) BusName() string {
	if p.Bus != "" {
		return p.Bus
	}
	return string(p.Role.Family())
}

// A DiffPair is a positive/negative pin pair such as USB D+/D-.
type DiffPair struct {
	Positive string
	Negative string
	// Kind is the role family, "USB" or "CAN".
	Kind Family
}

// A Project is one generation input: an ordered pin set for a target.
type Project struct {
	Name     string
	MCU      string
	Platform string
	Pins     []Pin
	Pairs    []DiffPair
	// Warnings are non-fatal notes collected while the project was built,
	// e.g. a pin used against its capability set.
	Warnings []string
	// SpecialPins lists physical pins with a dedicated MCU function.
	SpecialPins []string
}

// Pin looks a pin up by logical name.
func (p *Project) Pin(name string) (Pin, bool) {
	for _, pin := range p.Pins {
		if pin.Name == name {
			return pin, true
		}
	}
	return Pin{}, false
}

// HasRole reports whether any pin serves role r.
func (p *Project) HasRole(r Role) bool {
	for _, pin := range p.Pins {
		if pin.Role == r {
			return true
		}
	}
	return false
}

// A Group is a category together with its pins in input order.
type Group struct {
	Category Category
	Pins     []Pin
}

// Groups returns pins grouped by category in CategoryOrder. Bus instances of
// the same family are ordered by first appearance. Empty categories are
// omitted.
func (p *Project) Groups() []Group {
	index := map[Category]int{}
	var groups []Group
	for _, pin := range p.Pins {
		c := pin.Group()
		i, ok := index[c]
		if !ok {
			i = len(groups)
			index[c] = i
			groups = append(groups, Group{Category: c})
		}
		groups[i].Pins = append(groups[i].Pins, pin)
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Category.Rank() < groups[j].Category.Rank()
	})
	return groups
}

// A Bus is one peripheral instance and the pins wired to it, keyed by role.
type Bus struct {
	Name   string
	Family Family
	Lines  map[Role]Pin
}

// Line returns the macro name of the pin serving r on this bus.
func (b Bus) Line(r Role) (string, bool) {
	pin, ok := b.Lines[r]
	if !ok {
		return "", false
	}
	return pin.Macro(), true
}

// Buses returns the bus instances of a family in order of first appearance.
// When several pins serve the same role on one bus the first one wins.
func (p *Project) Buses(family Family) []Bus {
	var buses []Bus
	index := map[string]int{}
	for _, pin := range p.Pins {
		if pin.Role.Family() != family || family == FamilyNone {
			continue
		}
		name := pin.BusName()
		i, ok := index[name]
		if !ok {
			i = len(buses)
			index[name] = i
			buses = append(buses, Bus{Name: name, Family: family, Lines: map[Role]Pin{}})
		}
		if _, taken := buses[i].Lines[pin.Role]; !taken {
			buses[i].Lines[pin.Role] = pin
		}
	}
	return buses
}

// busRequirements lists the lines a bus needs once any of its gating lines
// is present. Chip-select and reset never gate a bus.
var busRequirements = map[Family][]Role{
	FamilySPI: {RoleSPISCK, RoleSPIMISO, RoleSPIMOSI},
	FamilyI2C: {RoleI2CSDA, RoleI2CSCL},
}

// Complete reports whether every mandatory line of the bus is present.
// Buses of families without requirements are always complete.
func (b Bus) Complete() bool {
	for _, r := range busRequirements[b.Family] {
		if _, ok := b.Lines[r]; !ok {
			return false
		}
	}
	return true
}

// Active reports whether the bus carries at least one of its gating lines.
func (b Bus) Active() bool {
	for _, r := range busRequirements[b.Family] {
		if _, ok := b.Lines[r]; ok {
			return true
		}
	}
	return false
}

// Validate checks the project against the invariants every emitter relies
// on. All problems are reported together in one *ConfigurationError.
func (p *Project) Validate() error {
	var errs error
	if !singleLine(p.MCU) || strings.Contains(p.MCU, "*/") {
		errs = multierr.Append(errs, NewConfigurationError("MCU name %q must be a single line without \"*/\"", p.MCU))
	}
	if !singleLine(p.Name) {
		errs = multierr.Append(errs, NewConfigurationError("project name %q must be a single line", p.Name))
	}
	seen := map[string]string{}
	for i, pin := range p.Pins {
		if strings.TrimSpace(pin.Name) == "" {
			errs = multierr.Append(errs, NewConfigurationError("pin #%d has no name", i))
			continue
		}
		if !singleLine(pin.Description) {
			errs = multierr.Append(errs, NewConfigurationError("pin %q: description must be a single line", pin.Name))
		}
		macro := pin.Macro()
		if prev, ok := seen[macro]; ok {
			if prev == pin.Name {
				errs = multierr.Append(errs, NewConfigurationError("duplicate pin name %q", pin.Name))
			} else {
				errs = multierr.Append(errs, NewConfigurationError(
					"pin names %q and %q both emit macro %s", prev, pin.Name, macro))
			}
		} else {
			seen[macro] = pin.Name
		}
		if !pin.Role.Valid() {
			errs = multierr.Append(errs, NewConfigurationError("pin %q has an unrecognized role", pin.Name))
			continue
		}
		if pin.Number < 0 {
			errs = multierr.Append(errs, NewConfigurationError("pin %q has negative index %d", pin.Name, pin.Number))
		}
		if pin.Category != "" && pin.Category.Rank() < 0 {
			errs = multierr.Append(errs, NewConfigurationError("pin %q has unknown category %q", pin.Name, pin.Category))
		}
		if pin.Bus != "" {
			if _, ok := ParseBus(pin.Bus, pin.Role.Family()); !ok || pin.Bus != strings.ToUpper(pin.Bus) {
				errs = multierr.Append(errs, NewConfigurationError(
					"pin %q: bus %q does not fit role %s", pin.Name, pin.Bus, pin.Role))
			}
		}
	}
	errs = multierr.Append(errs, p.validatePairs())
	if errs != nil {
		return ConfigurationErrorFrom(errs)
	}

	for _, family := range []Family{FamilySPI, FamilyI2C} {
		required := busRequirements[family]
		for _, bus := range p.Buses(family) {
			if !bus.Active() || bus.Complete() {
				continue
			}
			for _, r := range required {
				if _, ok := bus.Lines[r]; !ok {
					errs = multierr.Append(errs, NewConfigurationError(
						"%s bus %s is missing its %s line", family, bus.Name, r))
				}
			}
		}
	}
	return ConfigurationErrorFrom(errs)
}

// validatePairs checks that every pair names two existing pins of the
// matching polarity and that no pin sits in more than one pair.
func (p *Project) validatePairs() error {
	var errs error
	inPair := map[string]bool{}
	for _, pair := range p.Pairs {
		k, ok := pairKindOf(pair.Kind)
		if !ok {
			errs = multierr.Append(errs, NewConfigurationError("unknown differential pair kind %q", pair.Kind))
			continue
		}
		for _, end := range []struct {
			name string
			role Role
		}{{pair.Positive, k.pos}, {pair.Negative, k.neg}} {
			pin, ok := p.Pin(end.name)
			switch {
			case !ok:
				errs = multierr.Append(errs, NewConfigurationError("%s pair refers to unknown pin %q", pair.Kind, end.name))
			case pin.Role != end.role:
				errs = multierr.Append(errs, NewConfigurationError(
					"%s pair pin %q has role %s, want %s", pair.Kind, end.name, pin.Role, end.role))
			case inPair[end.name]:
				errs = multierr.Append(errs, NewConfigurationError("pin %q is in more than one differential pair", end.name))
			}
			inPair[end.name] = true
		}
	}
	return errs
}

func singleLine(s string) bool {
	return !strings.ContainsAny(s, "\r\n")
}

var (
	nonIdentRe      = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	leadingDigitsRe = regexp.MustCompile(`^[0-9]+`)
	underscoresRe   = regexp.MustCompile(`_{2,}`)
)

// MacroName sanitizes a net name into an upper-case C/Python identifier.
func MacroName(name string) string {
	s := nonIdentRe.ReplaceAllString(name, "_")
	s = leadingDigitsRe.ReplaceAllString(s, "")
	s = underscoresRe.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "UNNAMED_PIN"
	}
	return strings.ToUpper(s)
}
