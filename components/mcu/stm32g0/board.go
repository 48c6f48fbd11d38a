// Package stm32g0 registers the STM32G071 (48 pin) profile.
package stm32g0

import (
	"fmt"
	"regexp"

	"github.com/edaniels/golog"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const modelName = "stm32g0"

func init() {
	info := mcu.ProfileInformation{
		Display:        "STM32G0",
		PinDefinitions: pinDefinitions(),
		Rules: []mcu.Rule{
			{Pattern: regexp.MustCompile(`^GPIO([A-F])0*(\d+)$`), Replace: "P$1$2"},
			{Pattern: regexp.MustCompile(`^([A-F])0*(\d+)$`), Replace: "P$1$2"},
			{Pattern: regexp.MustCompile(`^P([A-F])0*(\d+)$`), Replace: "P$1$2"},
		},
		Checks: []mcu.AssignmentCheck{checkReserved},
	}
	if err := mcu.Register(modelName, info); err != nil {
		golog.Global().Debugw("error registering stm32g0 profile", "error", err)
	}
}

func checkReserved(def mcu.PinDefinition, role pinmap.Role) string {
	switch def.Name {
	case "PA13", "PA14":
		return fmt.Sprintf("Pin %s is SWD debug pin - may conflict with debugging", def.Name)
	case "PB2":
		return "PB2 is Boot1 pin - state affects boot mode selection"
	case "PC14", "PC15":
		if role != pinmap.RoleGPIO && role != pinmap.RoleClock {
			return fmt.Sprintf("Pin %s is LSE crystal pin - may conflict with RTC", def.Name)
		}
	case "PF0", "PF1":
		if role != pinmap.RoleGPIO && role != pinmap.RoleClock {
			return fmt.Sprintf("Pin %s is HSE crystal pin - may conflict with system clock", def.Name)
		}
	}
	return ""
}
