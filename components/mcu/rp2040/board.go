// Package rp2040 registers the Raspberry Pi RP2040 pin profile.
package rp2040

import (
	"fmt"
	"regexp"

	"github.com/edaniels/golog"

	"github.com/pinmapgen/pinmapgen/components/mcu"
	"github.com/pinmapgen/pinmapgen/pinmap"
)

const modelName = "rp2040"

func init() {
	info := mcu.ProfileInformation{
		Display:        "RP2040",
		PinDefinitions: pinDefinitions,
		Rules: []mcu.Rule{
			{Pattern: regexp.MustCompile(`^GPIO0*(\d+)$`), Replace: "GP$1"},
			{Pattern: regexp.MustCompile(`^IO0*(\d+)$`), Replace: "GP$1"},
			{Pattern: regexp.MustCompile(`^0*(\d+)$`), Replace: "GP$1"},
			mcu.Digits("GP"),
		},
		Checks:     []mcu.AssignmentCheck{checkSMPS, checkUSB, checkADC},
		ValidRange: "GP0-GP29",
	}
	if err := mcu.Register(modelName, info); err != nil {
		golog.Global().Debugw("error registering rp2040 profile", "error", err)
	}
}

func checkSMPS(def mcu.PinDefinition, role pinmap.Role) string {
	if def.Name == "GP23" && role != pinmap.RoleGPIO {
		return "GP23 has limited peripheral support due to SMPS function"
	}
	return ""
}

func checkUSB(def mcu.PinDefinition, role pinmap.Role) string {
	if (def.Name == "GP24" || def.Name == "GP25") && role.Family() != pinmap.FamilyUSB {
		return fmt.Sprintf("Pin %s is a USB pin - consider reserving for USB functionality", def.Name)
	}
	return ""
}

func checkADC(def mcu.PinDefinition, role pinmap.Role) string {
	if def.Number >= 26 && def.Number <= 29 && (role == pinmap.RolePWM || role == pinmap.RoleGPIOOut) {
		return fmt.Sprintf("Pin %s is an ADC pin - consider using for analog input", def.Name)
	}
	return ""
}
