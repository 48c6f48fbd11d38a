// Package mcu holds the microcontroller pin profiles used to normalize raw
// netlist pin names and to sanity check role assignments.
package mcu

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/pinmapgen/pinmapgen/pinmap"
)

// A Capability is a hardware function a pin can be routed to.
type Capability string

// Known capabilities.
const (
	GPIO    Capability = "gpio"
	ADC     Capability = "adc"
	DAC     Capability = "dac"
	PWM     Capability = "pwm"
	I2CSDA  Capability = "i2c_sda"
	I2CSCL  Capability = "i2c_scl"
	SPIMOSI Capability = "spi_mosi"
	SPIMISO Capability = "spi_miso"
	SPISCK  Capability = "spi_sck"
	SPICS   Capability = "spi_cs"
	UARTTX  Capability = "uart_tx"
	UARTRX  Capability = "uart_rx"
	USBDP   Capability = "usb_dp"
	USBDM   Capability = "usb_dm"
	CANTX   Capability = "can_tx"
	CANRX   Capability = "can_rx"
)

// roleCapability is the capability a role needs. Roles missing here (LEDs,
// buttons, plain GPIO) are not checked.
var roleCapability = map[pinmap.Role]Capability{
	pinmap.RoleADC:     ADC,
	pinmap.RoleDAC:     DAC,
	pinmap.RolePWM:     PWM,
	pinmap.RoleI2CSDA:  I2CSDA,
	pinmap.RoleI2CSCL:  I2CSCL,
	pinmap.RoleSPIMOSI: SPIMOSI,
	pinmap.RoleSPIMISO: SPIMISO,
	pinmap.RoleSPISCK:  SPISCK,
	pinmap.RoleSPICS:   SPICS,
	pinmap.RoleUARTTX:  UARTTX,
	pinmap.RoleUARTRX:  UARTRX,
	pinmap.RoleUSBDP:   USBDP,
	pinmap.RoleUSBDN:   USBDM,
}

// A PinDefinition describes one MCU pin.
type PinDefinition struct {
	Name            string
	Number          int
	Capabilities    []Capability
	SpecialFunction string
	Warnings        []string
	AlternateNames  []string
}

// Has reports whether the pin supports c.
func (d PinDefinition) Has(c Capability) bool {
	for _, have := range d.Capabilities {
		if have == c {
			return true
		}
	}
	return false
}

// A Rule rewrites a raw pin spelling into the canonical one, e.g.
// "GPIO12" -> "GP12".
type Rule struct {
	Pattern *regexp.Regexp
	Replace string
}

// An AssignmentCheck returns a warning, or "", for a pin used in a role.
type AssignmentCheck func(pin PinDefinition, role pinmap.Role) string

// ProfileInformation is what an MCU package registers.
type ProfileInformation struct {
	// Display is the upper-case name printed in generated banners.
	Display        string
	PinDefinitions []PinDefinition
	Rules          []Rule
	Checks         []AssignmentCheck
	// ValidRange is quoted in normalization errors.
	ValidRange string
}

// A Profile is a registered MCU with lookup tables built.
type Profile struct {
	Name    string
	Display string

	pins    map[string]PinDefinition
	order   []string
	aliases map[string]string
	rules   []Rule
	checks  []AssignmentCheck
	valid   string
}

// NoProfileFoundError is returned when an MCU name has no registered profile.
type NoProfileFoundError struct {
	Name string
}

func (err NoProfileFoundError) Error() string {
	return fmt.Sprintf("no MCU profile registered for %q (known: %s)", err.Name, strings.Join(Names(), ", "))
}

var (
	registryMu sync.RWMutex
	registry   = map[string]*Profile{}
)

// Register makes an MCU profile available under name.
func Register(name string, info ProfileInformation) error {
	name = strings.ToLower(name)
	p := &Profile{
		Name:    name,
		Display: info.Display,
		pins:    map[string]PinDefinition{},
		aliases: map[string]string{},
		rules:   info.Rules,
		checks:  info.Checks,
		valid:   info.ValidRange,
	}
	if p.Display == "" {
		p.Display = strings.ToUpper(name)
	}
	for _, def := range info.PinDefinitions {
		key := strings.ToUpper(def.Name)
		if _, dup := p.pins[key]; dup {
			return errors.Errorf("profile %s defines pin %s twice", name, def.Name)
		}
		p.pins[key] = def
		p.order = append(p.order, key)
	}
	for _, def := range info.PinDefinitions {
		for _, alt := range def.AlternateNames {
			alt = strings.ToUpper(alt)
			if _, isPin := p.pins[alt]; isPin {
				continue
			}
			if _, taken := p.aliases[alt]; !taken {
				p.aliases[alt] = strings.ToUpper(def.Name)
			}
		}
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[name]; ok {
		return errors.Errorf("MCU profile %q already registered", name)
	}
	registry[name] = p
	return nil
}

// Lookup returns the profile registered under name.
func Lookup(name string) (*Profile, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	p, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, NoProfileFoundError{Name: name}
	}
	return p, nil
}

// Names lists registered profiles in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Pins returns every pin definition in declaration order.
func (p *Profile) Pins() []PinDefinition {
	out := make([]PinDefinition, 0, len(p.order))
	for _, key := range p.order {
		out = append(out, p.pins[key])
	}
	return out
}

// Pin returns the definition of a canonical pin name.
func (p *Profile) Pin(name string) (PinDefinition, bool) {
	def, ok := p.pins[strings.ToUpper(name)]
	return def, ok
}

// Normalize maps a raw pin spelling onto the profile's canonical pin name.
func (p *Profile) Normalize(raw string) (string, error) {
	name := strings.ToUpper(strings.TrimSpace(raw))
	if name == "" {
		return "", errors.New("pin name cannot be empty")
	}
	if _, ok := p.pins[name]; ok {
		return name, nil
	}
	if canonical, ok := p.aliases[name]; ok {
		return canonical, nil
	}
	for _, r := range p.rules {
		if !r.Pattern.MatchString(name) {
			continue
		}
		rewritten := r.Pattern.ReplaceAllString(name, r.Replace)
		if _, ok := p.pins[rewritten]; ok {
			return rewritten, nil
		}
		if p.valid != "" {
			return "", errors.Errorf("invalid %s pin %s (valid range: %s)", p.Display, name, p.valid)
		}
		return "", errors.Errorf("invalid %s pin %s", p.Display, name)
	}
	return "", errors.Errorf("cannot normalize %s pin name %s", p.Display, name)
}

// CheckAssignment returns warnings for using a canonical pin in role.
func (p *Profile) CheckAssignment(pin string, role pinmap.Role) []string {
	def, ok := p.Pin(pin)
	if !ok {
		return []string{fmt.Sprintf("Pin %s not found in %s pin definitions", pin, p.Display)}
	}
	warnings := append([]string(nil), def.Warnings...)
	if c, ok := roleCapability[role]; ok && !def.Has(c) {
		warnings = append(warnings, fmt.Sprintf("Pin %s may not support %s (missing %s capability)", def.Name, role, c))
	}
	for _, check := range p.checks {
		if w := check(def, role); w != "" {
			warnings = append(warnings, w)
		}
	}
	return warnings
}

// Digits is a small helper for rules that strip leading zeros.
func Digits(prefix string) Rule {
	return Rule{Pattern: regexp.MustCompile(`^` + prefix + `0*(\d+)$`), Replace: prefix + "$1"}
}
