// Package pinmap defines the pins, roles and projects that every emitter renders.
package pinmap

import (
	"strings"

	"github.com/pkg/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/pin"
	"periph.io/x/conn/v3/spi"
	"periph.io/x/conn/v3/uart"
)

// A Role is the peripheral function a pin serves. The set is closed.
type Role int

// The known roles. RoleUnknown is the zero value and never valid in a Project.
const (
	RoleUnknown Role = iota
	RoleUARTTX
	RoleUARTRX
	RoleSPISCK
	RoleSPIMISO
	RoleSPIMOSI
	RoleSPICS
	RoleI2CSDA
	RoleI2CSCL
	RoleUSBDP
	RoleUSBDN
	RoleCANH
	RoleCANL
	RoleADC
	RoleDAC
	RolePWM
	RoleGPIO
	RoleGPIOIn
	RoleGPIOOut
	RoleLED
	RoleButton
	RoleReset
	RoleClock
)

// A Family is the bus a role belongs to, if any.
type Family string

// Bus families that can be instanced (SPI0, SPI1, ...).
const (
	FamilyNone Family = ""
	FamilyUART Family = "UART"
	FamilySPI  Family = "SPI"
	FamilyI2C  Family = "I2C"
	FamilyUSB  Family = "USB"
	FamilyCAN  Family = "CAN"
)

type roleInfo struct {
	wire        string
	family      Family
	category    Category
	description string
	function    pin.Func
}

var roleTable = map[Role]roleInfo{
	RoleUARTTX:  {"uart.tx", FamilyUART, CategoryUART, "UART Transmit", uart.TX},
	RoleUARTRX:  {"uart.rx", FamilyUART, CategoryUART, "UART Receive", uart.RX},
	RoleSPISCK:  {"spi.sck", FamilySPI, CategorySPI, "SPI Serial Clock", spi.CLK},
	RoleSPIMISO: {"spi.miso", FamilySPI, CategorySPI, "SPI Master In Slave Out", spi.MISO},
	RoleSPIMOSI: {"spi.mosi", FamilySPI, CategorySPI, "SPI Master Out Slave In", spi.MOSI},
	RoleSPICS:   {"spi.cs", FamilySPI, CategorySPI, "SPI Chip Select", spi.CS},
	RoleI2CSDA:  {"i2c.sda", FamilyI2C, CategoryI2C, "I2C Serial Data", i2c.SDA},
	RoleI2CSCL:  {"i2c.scl", FamilyI2C, CategoryI2C, "I2C Serial Clock", i2c.SCL},
	RoleUSBDP:   {"usb.dp", FamilyUSB, CategoryUSB, "USB Data Positive", pin.Func("USB_DP")},
	RoleUSBDN:   {"usb.dn", FamilyUSB, CategoryUSB, "USB Data Negative", pin.Func("USB_DN")},
	RoleCANH:    {"can.h", FamilyCAN, CategoryCAN, "CAN Bus High", pin.Func("CAN_H")},
	RoleCANL:    {"can.l", FamilyCAN, CategoryCAN, "CAN Bus Low", pin.Func("CAN_L")},
	RoleADC:     {"adc", FamilyNone, CategoryAnalog, "Analog to Digital Converter", pin.Func("ADC")},
	RoleDAC:     {"dac", FamilyNone, CategoryAnalog, "Digital to Analog Converter", pin.Func("DAC")},
	RolePWM:     {"pwm", FamilyNone, CategoryPWM, "Pulse Width Modulation", gpio.PWM},
	RoleGPIO:    {"gpio", FamilyNone, CategoryOther, "General Purpose I/O", pin.Func("GPIO")},
	RoleGPIOIn:  {"gpio.in", FamilyNone, CategoryGPIO, "General Purpose Input", gpio.IN},
	RoleGPIOOut: {"gpio.out", FamilyNone, CategoryGPIO, "General Purpose Output", gpio.OUT},
	RoleLED:     {"led", FamilyNone, CategoryIndicators, "Light Emitting Diode", gpio.OUT},
	RoleButton:  {"button", FamilyNone, CategoryInputs, "Push Button Input", gpio.IN},
	RoleReset:   {"reset", FamilyNone, CategoryOther, "Reset Signal", gpio.OUT},
	RoleClock:   {"clock", FamilyNone, CategoryOther, "Clock Signal", gpio.CLK},
}

// Roles returns every valid role in declaration order.
func Roles() []Role {
	roles := make([]Role, 0, len(roleTable))
	for r := RoleUARTTX; r <= RoleClock; r++ {
		roles = append(roles, r)
	}
	return roles
}

// String returns the dotted wire name, e.g. "spi.sck".
func (r Role) String() string {
	if info, ok := roleTable[r]; ok {
		return info.wire
	}
	return "unknown"
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := roleTable[r]
	return ok
}

// Family returns the bus family of the role.
func (r Role) Family() Family { return roleTable[r].family }

// Category returns the category pins of this role fall into by default.
func (r Role) Category() Category { return roleTable[r].category }

// Description is the human readable name used in generated comments.
func (r Role) Description() string {
	if info, ok := roleTable[r]; ok {
		return info.description
	}
	return "General Purpose I/O"
}

// Function maps the role onto periph's pin function vocabulary.
func (r Role) Function() pin.Func { return roleTable[r].function }

// ParseRole accepts the dotted wire name ("i2c.sda") or the constant-style
// spelling ("I2C_SDA").
func ParseRole(s string) (Role, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "_", ".")
	for r, info := range roleTable {
		if info.wire == key {
			return r, nil
		}
	}
	return RoleUnknown, errors.Errorf("unrecognized pin role %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, errors.Errorf("cannot marshal invalid role %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	parsed, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
