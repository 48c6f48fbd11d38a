package rp2040

import "github.com/pinmapgen/pinmapgen/components/mcu"

var gpioFull = []mcu.Capability{
	mcu.GPIO, mcu.PWM,
	mcu.I2CSDA, mcu.I2CSCL,
	mcu.SPIMOSI, mcu.SPIMISO, mcu.SPISCK, mcu.SPICS,
	mcu.UARTTX, mcu.UARTRX,
}

var adcCapable = append([]mcu.Capability{mcu.ADC}, gpioFull...)

// pinDefinitions lists GP0-GP29. GP23-GP25 carry the SMPS and USB functions.
var pinDefinitions = []mcu.PinDefinition{
	{Name: "GP0", Number: 0, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO0", "IO0", "0"}},
	{Name: "GP1", Number: 1, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO1", "IO1", "1"}},
	{Name: "GP2", Number: 2, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO2", "IO2", "2"}},
	{Name: "GP3", Number: 3, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO3", "IO3", "3"}},
	{Name: "GP4", Number: 4, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO4", "IO4", "4"}},
	{Name: "GP5", Number: 5, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO5", "IO5", "5"}},
	{Name: "GP6", Number: 6, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO6", "IO6", "6"}},
	{Name: "GP7", Number: 7, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO7", "IO7", "7"}},
	{Name: "GP8", Number: 8, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO8", "IO8", "8"}},
	{Name: "GP9", Number: 9, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO9", "IO9", "9"}},
	{Name: "GP10", Number: 10, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO10", "IO10", "10"}},
	{Name: "GP11", Number: 11, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO11", "IO11", "11"}},
	{Name: "GP12", Number: 12, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO12", "IO12", "12"}},
	{Name: "GP13", Number: 13, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO13", "IO13", "13"}},
	{Name: "GP14", Number: 14, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO14", "IO14", "14"}},
	{Name: "GP15", Number: 15, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO15", "IO15", "15"}},
	{Name: "GP16", Number: 16, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO16", "IO16", "16"}},
	{Name: "GP17", Number: 17, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO17", "IO17", "17"}},
	{Name: "GP18", Number: 18, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO18", "IO18", "18"}},
	{Name: "GP19", Number: 19, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO19", "IO19", "19"}},
	{Name: "GP20", Number: 20, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO20", "IO20", "20"}},
	{Name: "GP21", Number: 21, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO21", "IO21", "21"}},
	{Name: "GP22", Number: 22, Capabilities: gpioFull, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO22", "IO22", "22"}},
	{Name: "GP23", Number: 23, Capabilities: []mcu.Capability{mcu.GPIO}, SpecialFunction: "SMPS_MODE", Warnings: []string{"GP23 controls SMPS mode - use with caution"}, AlternateNames: []string{"GPIO23", "IO23", "23"}},
	{Name: "GP24", Number: 24, Capabilities: []mcu.Capability{mcu.GPIO, mcu.USBDM}, SpecialFunction: "USB_DM", Warnings: []string{"GP24 is USB D- - avoid if using USB"}, AlternateNames: []string{"GPIO24", "IO24", "24", "USB_DM", "USB_DN", "USBDM", "USBDN"}},
	{Name: "GP25", Number: 25, Capabilities: []mcu.Capability{mcu.GPIO, mcu.USBDP}, SpecialFunction: "USB_DP", Warnings: []string{"GP25 is USB D+ - avoid if using USB"}, AlternateNames: []string{"GPIO25", "IO25", "25", "USB_DP", "USBDP"}},
	{Name: "GP26", Number: 26, Capabilities: adcCapable, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO26", "IO26", "26", "ADC0"}},
	{Name: "GP27", Number: 27, Capabilities: adcCapable, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO27", "IO27", "27", "ADC1"}},
	{Name: "GP28", Number: 28, Capabilities: adcCapable, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO28", "IO28", "28", "ADC2"}},
	{Name: "GP29", Number: 29, Capabilities: adcCapable, SpecialFunction: "", Warnings: nil, AlternateNames: []string{"GPIO29", "IO29", "29", "ADC3"}},
}
