// Package register registers all MCU profiles.
package register

import (
	// register MCU profiles.
	_ "github.com/pinmapgen/pinmapgen/components/mcu/esp32"
	_ "github.com/pinmapgen/pinmapgen/components/mcu/rp2040"
	_ "github.com/pinmapgen/pinmapgen/components/mcu/stm32g0"
)
