package esp32

import (
	"fmt"

	"github.com/pinmapgen/pinmapgen/components/mcu"
)

// Pins broken out on the WROOM-32 module. GPIO6-11 drive the SPI flash and
// are left out.
var gpioPins = []int{
	0, 1, 2, 3, 4, 5, 12, 13, 14, 15, 16, 17, 18, 19, 21, 22, 23,
	25, 26, 27, 32, 33, 34, 35, 36, 37, 38, 39,
}

func set(nums ...int) map[int]bool {
	out := make(map[int]bool, len(nums))
	for _, n := range nums {
		out[n] = true
	}
	return out
}

var (
	inputOnly = set(34, 35, 36, 37, 38, 39)
	adc1      = set(32, 33, 34, 35, 36, 37, 38, 39)
	adc2      = set(0, 2, 4, 12, 13, 14, 15, 25, 26, 27)
	dac       = set(25, 26)
	strapping = set(0, 2, 5, 12, 15)
)

var specialFunctions = map[int]string{
	0:  "Strapping Pin / Boot Mode / ADC2_CH1 / Touch1",
	1:  "UART0 TX (Console)",
	2:  "Strapping Pin / Boot Mode / ADC2_CH2 / Touch2",
	3:  "UART0 RX (Console)",
	5:  "Strapping Pin / VSPI CS0",
	12: "Strapping Pin / Boot Voltage / ADC2_CH5 / Touch5",
	15: "Strapping Pin / Boot Silence / ADC2_CH3 / Touch3",
	25: "DAC1 / ADC2_CH8",
	26: "DAC2 / ADC2_CH9",
	34: "ADC1_CH6 (Input Only)",
	35: "ADC1_CH7 (Input Only)",
	36: "ADC1_CH0 / VP (Input Only)",
	37: "ADC1_CH1 (Input Only)",
	38: "ADC1_CH2 (Input Only)",
	39: "ADC1_CH3 / VN (Input Only)",
}

var bootWarnings = map[int]string{
	0:  "GPIO0 low at boot enters download mode",
	2:  "GPIO2 must be low/floating at boot",
	12: "GPIO12 controls boot voltage - keep low for 3.3V VDD",
	15: "GPIO15 controls boot message silence",
}

var matrix = []mcu.Capability{
	mcu.PWM,
	mcu.I2CSDA, mcu.I2CSCL,
	mcu.SPIMOSI, mcu.SPIMISO, mcu.SPISCK, mcu.SPICS,
	mcu.UARTTX, mcu.UARTRX,
}

func pinDefinitions() []mcu.PinDefinition {
	defs := make([]mcu.PinDefinition, 0, len(gpioPins))
	for _, n := range gpioPins {
		caps := []mcu.Capability{mcu.GPIO}
		if !inputOnly[n] {
			caps = append(caps, matrix...)
		}
		if adc1[n] || adc2[n] {
			caps = append(caps, mcu.ADC)
		}
		if dac[n] {
			caps = append(caps, mcu.DAC)
		}

		var warnings []string
		if strapping[n] {
			warnings = append(warnings, "Strapping pin - state at boot affects ESP32 behavior")
		}
		if w, ok := bootWarnings[n]; ok {
			warnings = append(warnings, w)
		}
		if n == 1 || n == 3 {
			warnings = append(warnings, "UART0 pin - used for programming and console output")
		}
		if inputOnly[n] {
			warnings = append(warnings, "Input-only pin - no output or pull-up capability")
		}
		if adc2[n] {
			warnings = append(warnings, "ADC2 not available when WiFi is active")
		}

		defs = append(defs, mcu.PinDefinition{
			Name:            fmt.Sprintf("GPIO%d", n),
			Number:          n,
			Capabilities:    caps,
			SpecialFunction: specialFunctions[n],
			Warnings:        warnings,
			AlternateNames:  []string{fmt.Sprintf("IO%d", n), fmt.Sprint(n)},
		})
	}
	return defs
}
