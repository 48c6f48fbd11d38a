package pinmap

import (
	"regexp"
	"strconv"
	"strings"
)

type rolePattern struct {
	role     Role
	patterns []*regexp.Regexp
}

func patterns(exprs ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, regexp.MustCompile(`(?i)`+e))
	}
	return out
}

// rolePatterns is checked top to bottom and the first match wins, so a bare
// "tx" claims a net before the SPI patterns see it.
var rolePatterns = []rolePattern{
	{RoleI2CSDA, patterns(`i2c.*sda`, `sda`)},
	{RoleI2CSCL, patterns(`i2c.*scl`, `scl`)},
	{RoleUARTTX, patterns(`uart.*tx`, `tx`, `serial.*tx`)},
	{RoleUARTRX, patterns(`uart.*rx`, `rx`, `serial.*rx`)},
	{RoleSPIMOSI, patterns(`spi.*mosi`, `mosi`, `spi.*tx`)},
	{RoleSPIMISO, patterns(`spi.*miso`, `miso`, `spi.*rx`)},
	{RoleSPISCK, patterns(`spi.*sck`, `sck`, `spi.*clk`)},
	{RoleSPICS, patterns(`spi.*cs`, `cs`, `spi.*ss`, `ss`)},
	{RoleUSBDP, patterns(`usb.*d\+`, `usb.*dp`, `usb.*plus`)},
	{RoleUSBDN, patterns(`usb.*d-`, `usb.*dn`, `usb.*minus`)},
	{RoleCANH, patterns(`can.*h`, `canh`)},
	{RoleCANL, patterns(`can.*l`, `canl`)},
	{RoleADC, patterns(`adc`, `analog.*in`, `ain`)},
	{RoleDAC, patterns(`dac`, `analog.*out`, `aout`)},
	{RolePWM, patterns(`pwm`, `pulse`, `servo`, `motor`)},
	{RoleLED, patterns(`led`, `light`)},
	{RoleButton, patterns(`button`, `btn`, `switch`, `sw`)},
	{RoleReset, patterns(`reset`, `rst`)},
	{RoleClock, patterns(`clock`, `clk`, `xtal`, `osc`)},
}

// InferRole guesses a pin's role from its net name. Nets that match nothing
// fall back to a direction hint and finally to plain GPIO.
func InferRole(net string) Role {
	for _, rp := range rolePatterns {
		for _, re := range rp.patterns {
			if re.MatchString(net) {
				return rp.role
			}
		}
	}
	lower := strings.ToLower(net)
	for _, kw := range []string{"in", "input", "sense"} {
		if strings.Contains(lower, kw) {
			return RoleGPIOIn
		}
	}
	for _, kw := range []string{"out", "output", "drive"} {
		if strings.Contains(lower, kw) {
			return RoleGPIOOut
		}
	}
	return RoleGPIO
}

var busNameRe = map[Family]*regexp.Regexp{
	FamilyUART: regexp.MustCompile(`(?i)(uart\d*)`),
	FamilySPI:  regexp.MustCompile(`(?i)(spi\d*)`),
	FamilyI2C:  regexp.MustCompile(`(?i)(i2c\d*)`),
}

// InferBus extracts the bus instance a net belongs to ("I2C0", "SPI"), or ""
// when the net name does not mention one.
func InferBus(net string, role Role) string {
	re, ok := busNameRe[role.Family()]
	if !ok {
		return ""
	}
	m := re.FindStringSubmatch(net)
	if m == nil {
		return ""
	}
	return strings.ToUpper(m[1])
}

// Describe returns the role description, suffixed with the bus when known.
func Describe(role Role, bus string) string {
	if bus != "" {
		return role.Description() + " (" + bus + ")"
	}
	return role.Description()
}

type pairKind struct {
	family   Family
	pos, neg Role
	// stem strips the polarity suffix off a pin name, "USB1_DP" -> "USB1".
	stem *regexp.Regexp
}

var pairKinds = []pairKind{
	{FamilyUSB, RoleUSBDP, RoleUSBDN, regexp.MustCompile(`(?i)[_\s-]*(D[_\s]?[PNM+-]|D?PLUS|D?MINUS)$`)},
	{FamilyCAN, RoleCANH, RoleCANL, regexp.MustCompile(`(?i)[_\s-]*(H|L|HIGH|LOW)$`)},
}

func pairKindOf(f Family) (pairKind, bool) {
	for _, k := range pairKinds {
		if k.family == f {
			return k, true
		}
	}
	return pairKind{}, false
}

// pairStem is the name a pin shares with its partner: the bus when set,
// otherwise the name without its polarity suffix.
func (k pairKind) pairStem(p Pin) string {
	if p.Bus != "" {
		return strings.ToUpper(p.Bus)
	}
	return strings.ToUpper(k.stem.ReplaceAllString(p.Name, ""))
}

// DetectPairs pairs USB D+/D- and CAN H/L pins one to one. A positive line
// takes the negative line with the same stem ("USB1_DP" with "USB1_DN"), and
// lines left over are then matched in input order. Unmatched lines are not
// paired.
func DetectPairs(pins []Pin) []DiffPair {
	var pairs []DiffPair
	for _, k := range pairKinds {
		var pos, neg []Pin
		for _, p := range pins {
			switch p.Role {
			case k.pos:
				pos = append(pos, p)
			case k.neg:
				neg = append(neg, p)
			}
		}
		matched := make([]int, len(pos))
		used := make([]bool, len(neg))
		for i, p := range pos {
			matched[i] = -1
			for j, n := range neg {
				if !used[j] && k.pairStem(p) == k.pairStem(n) {
					matched[i], used[j] = j, true
					break
				}
			}
		}
		for i := range pos {
			if matched[i] >= 0 {
				continue
			}
			for j := range neg {
				if !used[j] {
					matched[i], used[j] = j, true
					break
				}
			}
		}
		for i, p := range pos {
			if matched[i] >= 0 {
				pairs = append(pairs, DiffPair{Positive: p.Name, Negative: neg[matched[i]].Name, Kind: k.family})
			}
		}
	}
	return pairs
}

// PairNames returns an identifier per pair for emitted pair structures: the
// first pair of a kind is named after the kind ("USB"), later ones are
// numbered ("USB1", "USB2").
func PairNames(pairs []DiffPair) []string {
	seen := map[Family]int{}
	names := make([]string, len(pairs))
	for i, pair := range pairs {
		n := seen[pair.Kind]
		seen[pair.Kind]++
		if n == 0 {
			names[i] = string(pair.Kind)
			continue
		}
		names[i] = string(pair.Kind) + strconv.Itoa(n)
	}
	return names
}
