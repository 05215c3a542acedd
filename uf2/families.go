package uf2

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Well-known family IDs.
const (
	FamilyRP2040      = 0xE48BFF56
	FamilyAbsolute    = 0xE48BFF57
	FamilyData        = 0xE48BFF58
	FamilyRP2350ARMS  = 0xE48BFF59
	FamilyRP2350RISCV = 0xE48BFF5A
	FamilyRP2350ARMNS = 0xE48BFF5B
	FamilySAMD21      = 0x68ED2B88
	FamilySAMD51      = 0x55114460
	FamilySAML21      = 0x1851780A
	FamilyNRF52       = 0x1B57745F
	FamilyNRF52840    = 0xADA52840
	FamilySTM32F1     = 0x5EE21072
	FamilySTM32F4     = 0x57755A57
	FamilySTM32F407   = 0x6D0922FA
	FamilySTM32L4     = 0x00FF6919
	FamilyESP32       = 0x1C5F21B0
	FamilyESP32S2     = 0xBFDD4EEE
	FamilyESP32S3     = 0xC47E5767
	FamilyESP32C3     = 0xD42BA06C
	FamilyLPC55       = 0x2ABC77EC
	FamilyMIMXRT10XX  = 0x4FB2D5BD
)

var familyNames = map[uint32]string{
	FamilyRP2040:      "RP2040",
	FamilyAbsolute:    "ABSOLUTE",
	FamilyData:        "DATA",
	FamilyRP2350ARMS:  "RP2350_ARM_S",
	FamilyRP2350RISCV: "RP2350_RISCV",
	FamilyRP2350ARMNS: "RP2350_ARM_NS",
	FamilySAMD21:      "SAMD21",
	FamilySAMD51:      "SAMD51",
	FamilySAML21:      "SAML21",
	FamilyNRF52:       "NRF52",
	FamilyNRF52840:    "NRF52840",
	FamilySTM32F1:     "STM32F1",
	FamilySTM32F4:     "STM32F4",
	FamilySTM32F407:   "STM32F407",
	FamilySTM32L4:     "STM32L4",
	FamilyESP32:       "ESP32",
	FamilyESP32S2:     "ESP32S2",
	FamilyESP32S3:     "ESP32S3",
	FamilyESP32C3:     "ESP32C3",
	FamilyLPC55:       "LPC55",
	FamilyMIMXRT10XX:  "MIMXRT10XX",
}

// FamilyName returns the short name of a well-known family ID.
func FamilyName(id uint32) (string, bool) {
	name, ok := familyNames[id]
	return name, ok
}

// FamilyID returns the ID of a well-known family name. The lookup ignores case.
func FamilyID(name string) (uint32, bool) {
	name = strings.ToUpper(strings.TrimSpace(name))
	for id, n := range familyNames {
		if n == name {
			return id, true
		}
	}
	return 0, false
}

// ParseFamily accepts a well-known family name or a 32-bit number
// (decimal, or hex with a 0x prefix).
//
// Example:
//
//	id, err := uf2.ParseFamily("RP2040")     // 0xE48BFF56
//	id, err = uf2.ParseFamily("0xada52840")  // 0xADA52840
func ParseFamily(s string) (uint32, error) {
	if id, ok := FamilyID(s); ok {
		return id, nil
	}
	u, err := strconv.ParseUint(strings.TrimSpace(s), 0, 32)
	if err != nil {
		return 0, fmt.Errorf("bad family ID %q: not a known name or 32-bit number", s)
	}
	return uint32(u), nil
}

// Families returns the well-known family names sorted alphabetically.
func Families() []string {
	names := make([]string, 0, len(familyNames))
	for _, n := range familyNames {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
