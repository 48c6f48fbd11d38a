// Package esp32 registers the ESP32 (WROOM-32) pin profile. Peripherals are
// routed through the GPIO matrix so capability checks are loose; the warnings
// that matter are boot strapping and input-only pins.
package esp32

import (
	"fmt"
	"regexp"

	"github.com/edaniels/golog"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const modelName = "esp32"

func init() {
	info := mcu.ProfileInformation{
		Display:        "ESP32",
		PinDefinitions: pinDefinitions(),
		Rules: []mcu.Rule{
			{Pattern: regexp.MustCompile(`^IO0*(\d+)$`), Replace: "GPIO$1"},
			{Pattern: regexp.MustCompile(`^0*(\d+)$`), Replace: "GPIO$1"},
			mcu.Digits("GPIO"),
		},
		Checks: []mcu.AssignmentCheck{checkStrapping, checkConsole, checkInputOnly, checkADC2},
	}
	if err := mcu.Register(modelName, info); err != nil {
		golog.Global().Debugw("error registering esp32 profile", "error", err)
	}
}

func checkStrapping(def mcu.PinDefinition, _ pinmap.Role) string {
	if strapping[def.Number] {
		return fmt.Sprintf("%s is a strapping pin - may affect boot behavior", def.Name)
	}
	return ""
}

func checkConsole(def mcu.PinDefinition, role pinmap.Role) string {
	if (def.Number == 1 || def.Number == 3) && role.Family() != pinmap.FamilyUART {
		return fmt.Sprintf("%s is UART0 - may interfere with programming/console", def.Name)
	}
	return ""
}

func checkInputOnly(def mcu.PinDefinition, role pinmap.Role) string {
	if !inputOnly[def.Number] {
		return ""
	}
	switch role {
	case pinmap.RoleGPIOOut, pinmap.RolePWM, pinmap.RoleSPIMOSI, pinmap.RoleUARTTX, pinmap.RoleLED:
		return fmt.Sprintf("%s is input-only - cannot drive outputs", def.Name)
	}
	return ""
}

func checkADC2(def mcu.PinDefinition, role pinmap.Role) string {
	if adc2[def.Number] && role == pinmap.RoleADC {
		return fmt.Sprintf("%s ADC2 not available when WiFi is active", def.Name)
	}
	return ""
}
