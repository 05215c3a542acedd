package uf2

import (
	"sort"
	"strings"
	"testing"
)

func TestParseFamily(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    uint32
		wantErr bool
	}{
		{name: "known name", input: "RP2040", want: FamilyRP2040},
		{name: "lower case name", input: "samd51", want: FamilySAMD51},
		{name: "padded name", input: " rp2350_arm_s ", want: FamilyRP2350ARMS},
		{name: "hex number", input: "0xada52840", want: FamilyNRF52840},
		{name: "decimal number", input: "42", want: 42},
		{name: "unknown name", input: "Z80", wantErr: true},
		{name: "too large", input: "0x1FFFFFFFF", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFamily(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got 0x%08X", got)
				}
				if !strings.Contains(err.Error(), "bad family ID") {
					t.Errorf("error = %v, want substring %q", err, "bad family ID")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseFamily(%q) = 0x%08X, want 0x%08X", tt.input, got, tt.want)
			}
		})
	}
}

func TestFamilyName(t *testing.T) {
	if name, ok := FamilyName(FamilyRP2040); !ok || name != "RP2040" {
		t.Errorf("FamilyName(RP2040) = %q, %v", name, ok)
	}
	if name, ok := FamilyName(0x12345678); ok {
		t.Errorf("FamilyName(unknown) = %q, want not found", name)
	}
}

func TestFamilies(t *testing.T) {
	names := Families()
	if len(names) != len(familyNames) {
		t.Fatalf("Families() returned %d names, want %d", len(names), len(familyNames))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Families() is not sorted: %v", names)
	}
	for _, n := range names {
		id, ok := FamilyID(n)
		if !ok {
			t.Errorf("FamilyID(%q) not found", n)
			continue
		}
		if back, _ := FamilyName(id); back != n {
			t.Errorf("FamilyName(FamilyID(%q)) = %q", n, back)
		}
	}
}
