package pinmap

import (
	"regexp"
	"strings"
)

// A Category is a display grouping of pins. Bus instances such as "SPI1"
// are categories of their own and rank with their family.
type Category string

// Categories in emission order.
const (
	CategoryUART       Category = "UART"
	CategorySPI        Category = "SPI"
	CategoryI2C        Category = "I2C"
	CategoryUSB        Category = "USB"
	CategoryCAN        Category = "CAN"
	CategoryAnalog     Category = "Analog"
	CategoryPWM        Category = "PWM"
	CategoryGPIO       Category = "GPIO"
	CategoryOther      Category = "Other"
	CategoryIndicators Category = "Indicators"
	CategoryInputs     Category = "Inputs"
)

// CategoryOrder is the fixed order in which non-empty categories are emitted.
var CategoryOrder = []Category{
	CategoryUART,
	CategorySPI,
	CategoryI2C,
	CategoryUSB,
	CategoryCAN,
	CategoryAnalog,
	CategoryPWM,
	CategoryGPIO,
	CategoryOther,
	CategoryIndicators,
	CategoryInputs,
}

var busInstanceRe = regexp.MustCompile(`^(UART|SPI|I2C)(\d+)$`)

// Rank is the position of c in CategoryOrder. Bus instances rank with their
// family. Unknown categories report -1.
func (c Category) Rank() int {
	name := c
	if m := busInstanceRe.FindStringSubmatch(string(c)); m != nil {
		name = Category(m[1])
	}
	for i, known := range CategoryOrder {
		if known == name {
			return i
		}
	}
	return -1
}

// Header is the comment line that introduces the group in generated files.
func (c Category) Header() string { return string(c) + " Pins" }

// ParseCategory matches a category name case-insensitively.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range CategoryOrder {
		if strings.EqualFold(string(c), s) {
			return c, true
		}
	}
	return "", false
}

// ParseBus validates a bus instance name ("SPI", "SPI1", "i2c0") against the
// family it should belong to and returns it upper-cased.
func ParseBus(s string, family Family) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if family == FamilyNone {
		return "", false
	}
	if s == string(family) {
		return s, true
	}
	m := busInstanceRe.FindStringSubmatch(s)
	if m == nil || m[1] != string(family) {
		return "", false
	}
	return s, true
}

// BusIndex returns the numeric suffix of a bus instance, or 0 when the bus is
// just the family name.
func BusIndex(bus string) int {
	m := busInstanceRe.FindStringSubmatch(bus)
	if m == nil {
		return 0
	}
	n := 0
	for _, d := range m[2] {
		n = n*10 + int(d-'0')
	}
	return n
}
