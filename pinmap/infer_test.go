package pinmap

import (
	"testing"

	"go.viam.com/test"
	"periph.io/x/conn/v3/spi"
)

func TestInferRole(t *testing.T) {
	for net, want := range map[string]Role{
		"I2C0_SDA":     RoleI2CSDA,
		"SDA":          RoleI2CSDA,
		"I2C_SCL":      RoleI2CSCL,
		"DEBUG_TX":     RoleUARTTX,
		"WIFI_RX":      RoleUARTRX,
		"SPI_MOSI":     RoleSPIMOSI,
		"SPI_MISO":     RoleSPIMISO,
		"SPI_SCK":      RoleSPISCK,
		"LORA_CS":      RoleSPICS,
		"USB_DP":       RoleUSBDP,
		"USB_DN":       RoleUSBDN,
		"CANH":         RoleCANH,
		"ADC_BATTERY":  RoleADC,
		"DAC_OUT":      RoleDAC,
		"MOTOR_PWM":    RolePWM,
		"STATUS_LED":   RoleLED,
		"LIGHT_ANALOG": RoleLED,
		"BUTTON_IN":    RoleButton,
		"LORA_RST":     RoleReset,
		"XTAL_IN":      RoleClock,
		"DOOR_SENSE":   RoleGPIOIn,
		"HEATER_DRIVE": RoleGPIOOut,
		"LORA_DIO0":    RoleGPIO,
		"SENSOR_DATA":  RoleGPIO,
	} {
		test.That(t, InferRole(net).String(), test.ShouldEqual, want.String())
	}
}

func TestInferBus(t *testing.T) {
	test.That(t, InferBus("I2C0_SDA", RoleI2CSDA), test.ShouldEqual, "I2C0")
	test.That(t, InferBus("i2c_scl", RoleI2CSCL), test.ShouldEqual, "I2C")
	test.That(t, InferBus("SPI1_SCK", RoleSPISCK), test.ShouldEqual, "SPI1")
	test.That(t, InferBus("LORA_CS", RoleSPICS), test.ShouldEqual, "")
	test.That(t, InferBus("STATUS_LED", RoleLED), test.ShouldEqual, "")
}

func TestDescribe(t *testing.T) {
	test.That(t, Describe(RoleSPISCK, "SPI"), test.ShouldEqual, "SPI Serial Clock (SPI)")
	test.That(t, Describe(RoleButton, ""), test.ShouldEqual, "Push Button Input")
	test.That(t, Describe(RoleGPIO, ""), test.ShouldEqual, "General Purpose I/O")
}

func TestDetectPairs(t *testing.T) {
	pins := []Pin{
		{Name: "USB_DP", Role: RoleUSBDP},
		{Name: "LED", Role: RoleLED},
		{Name: "USB_DN", Role: RoleUSBDN},
		{Name: "CAN_H", Role: RoleCANH},
	}
	pairs := DetectPairs(pins)
	test.That(t, pairs, test.ShouldResemble, []DiffPair{{Positive: "USB_DP", Negative: "USB_DN", Kind: FamilyUSB}})

	t.Run("two usb ports pair by stem", func(t *testing.T) {
		pins := []Pin{
			{Name: "USB1_DP", Role: RoleUSBDP},
			{Name: "USB2_DP", Role: RoleUSBDP},
			{Name: "USB2_DN", Role: RoleUSBDN},
			{Name: "USB1_DN", Role: RoleUSBDN},
			{Name: "CAN_H", Role: RoleCANH},
			{Name: "CAN_L", Role: RoleCANL},
		}
		pairs := DetectPairs(pins)
		test.That(t, pairs, test.ShouldResemble, []DiffPair{
			{Positive: "USB1_DP", Negative: "USB1_DN", Kind: FamilyUSB},
			{Positive: "USB2_DP", Negative: "USB2_DN", Kind: FamilyUSB},
			{Positive: "CAN_H", Negative: "CAN_L", Kind: FamilyCAN},
		})
		test.That(t, PairNames(pairs), test.ShouldResemble, []string{"USB", "USB1", "CAN"})
		test.That(t, (&Project{Pins: pins, Pairs: pairs}).Validate(), test.ShouldBeNil)
	})

	t.Run("unmatched stems fall back to input order", func(t *testing.T) {
		pairs := DetectPairs([]Pin{
			{Name: "D_PLUS", Role: RoleUSBDP},
			{Name: "HOST_DN", Role: RoleUSBDN},
			{Name: "EXTRA_DN", Role: RoleUSBDN},
		})
		test.That(t, pairs, test.ShouldResemble, []DiffPair{{Positive: "D_PLUS", Negative: "HOST_DN", Kind: FamilyUSB}})
	})
}

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		parsed, err := ParseRole(r.String())
		test.That(t, err, test.ShouldBeNil)
		test.That(t, parsed, test.ShouldEqual, r)
	}
	r, err := ParseRole("I2C_SDA")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, r, test.ShouldEqual, RoleI2CSDA)

	_, err = ParseRole("flux-capacitor")
	test.That(t, err, test.ShouldNotBeNil)

	test.That(t, RoleSPISCK.Function(), test.ShouldEqual, spi.CLK)
	test.That(t, RoleUnknown.Valid(), test.ShouldBeFalse)
}
