package stm32g0

import (
	"fmt"

	"github.com/pinmapgen/pinmapgen/components/mcu"
)

type portPin struct {
	port byte
	num  int
}

// ports lists the bonded pins per port. Pin numbers are port*16+pin with
// A=0 through F=5.
var ports = []struct {
	port byte
	pins []int
}{
	{'A', []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
	{'B', []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}},
	{'C', []int{6, 13, 14, 15}},
	{'D', []int{0, 1, 2, 3, 8, 9}},
	{'F', []int{0, 1, 2}},
}

// Alternate function routing of TIM1-3/14-17, ADC1, DAC1, I2C1-2, SPI1-2
// and USART1-3.
var alternateFunctions = map[portPin][]mcu.Capability{
	{'A', 0}:  {mcu.PWM, mcu.ADC},
	{'A', 1}:  {mcu.PWM, mcu.ADC},
	{'A', 2}:  {mcu.PWM, mcu.ADC, mcu.UARTTX},
	{'A', 3}:  {mcu.PWM, mcu.ADC, mcu.UARTRX},
	{'A', 4}:  {mcu.ADC, mcu.DAC, mcu.SPICS},
	{'A', 5}:  {mcu.ADC, mcu.DAC, mcu.SPISCK},
	{'A', 6}:  {mcu.PWM, mcu.ADC, mcu.SPIMISO},
	{'A', 7}:  {mcu.PWM, mcu.ADC, mcu.SPIMOSI},
	{'A', 8}:  {mcu.PWM},
	{'A', 9}:  {mcu.PWM, mcu.I2CSCL, mcu.UARTTX},
	{'A', 10}: {mcu.PWM, mcu.I2CSDA, mcu.UARTRX},
	{'A', 11}: {mcu.PWM, mcu.I2CSCL},
	{'A', 12}: {mcu.I2CSDA},
	{'A', 14}: {mcu.UARTTX},
	{'A', 15}: {mcu.SPICS, mcu.UARTRX},
	{'B', 0}:  {mcu.PWM, mcu.ADC},
	{'B', 1}:  {mcu.PWM, mcu.ADC},
	{'B', 2}:  {mcu.ADC},
	{'B', 3}:  {mcu.PWM, mcu.SPISCK},
	{'B', 4}:  {mcu.PWM, mcu.SPIMISO},
	{'B', 5}:  {mcu.PWM, mcu.SPIMOSI},
	{'B', 6}:  {mcu.PWM, mcu.I2CSCL, mcu.UARTTX},
	{'B', 7}:  {mcu.PWM, mcu.I2CSDA, mcu.UARTRX},
	{'B', 8}:  {mcu.PWM, mcu.I2CSCL},
	{'B', 9}:  {mcu.PWM, mcu.I2CSDA, mcu.SPICS},
	{'B', 10}: {mcu.ADC, mcu.I2CSCL, mcu.UARTTX},
	{'B', 11}: {mcu.ADC, mcu.I2CSDA, mcu.UARTRX},
	{'B', 12}: {mcu.ADC, mcu.SPICS},
	{'B', 13}: {mcu.I2CSCL, mcu.SPISCK},
	{'B', 14}: {mcu.PWM, mcu.I2CSDA, mcu.SPIMISO},
	{'B', 15}: {mcu.PWM, mcu.SPIMOSI},
	{'C', 6}:  {mcu.PWM},
}

var special = map[portPin]struct{ function, warning string }{
	{'A', 13}: {"SWD Debug IO (SWDIO)", "SWD debug pin - avoid using for GPIO if debugging needed"},
	{'A', 14}: {"SWD Debug Clock (SWCLK)", "SWD debug pin - avoid using for GPIO if debugging needed"},
	{'B', 2}:  {"Boot1 Pin", "Boot1 pin - state affects boot mode"},
	{'C', 14}: {"LSE Crystal (32kHz)", "LSE crystal pin - avoid if external 32kHz crystal used"},
	{'C', 15}: {"LSE Crystal (32kHz)", "LSE crystal pin - avoid if external 32kHz crystal used"},
	{'F', 0}:  {"HSE Crystal Input", "HSE crystal pin - avoid if external crystal/oscillator used"},
	{'F', 1}:  {"HSE Crystal Output", "HSE crystal pin - avoid if external crystal/oscillator used"},
	{'F', 2}:  {"NRST (Reset)", "NRST reset pin - typically connected to reset circuit"},
}

func pinDefinitions() []mcu.PinDefinition {
	var defs []mcu.PinDefinition
	for _, p := range ports {
		for _, n := range p.pins {
			key := portPin{p.port, n}
			def := mcu.PinDefinition{
				Name:           fmt.Sprintf("P%c%d", p.port, n),
				Number:         int(p.port-'A')*16 + n,
				Capabilities:   append([]mcu.Capability{mcu.GPIO}, alternateFunctions[key]...),
				AlternateNames: []string{fmt.Sprintf("GPIO%c%d", p.port, n), fmt.Sprintf("%c%d", p.port, n)},
			}
			if s, ok := special[key]; ok {
				def.SpecialFunction = s.function
				def.Warnings = []string{s.warning}
			}
			defs = append(defs, def)
		}
	}
	return defs
}
