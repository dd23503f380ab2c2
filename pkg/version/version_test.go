package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  Firmware
	}{
		{"1.0.0", Firmware{1, 0, 0}},
		{"1.8.0", Firmware{1, 8, 0}},
		{"2.0.13", Firmware{2, 0, 13}},
		{"10.23.4", Firmware{10, 23, 4}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, v, tt.want)
			}
			if v.String() != tt.input {
				t.Errorf("String() = %q, want %q", v.String(), tt.input)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"1.0",
		"abc",
		"1.0.0.0",
		"1.x.0",
		"-1.0.0",
		"1..0",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if err == nil {
				t.Errorf("Parse(%q) should return error", input)
			}
		})
	}
}

func TestMustCurrent(t *testing.T) {
	if got := MustCurrent().String(); got != Current {
		t.Errorf("MustCurrent() = %q, want %q", got, Current)
	}
}

func TestCompatible(t *testing.T) {
	v1 := Firmware{1, 8, 0}
	if !v1.Compatible(Firmware{1, 0, 3}) {
		t.Error("1.8.0 should be compatible with 1.0.3")
	}
	if v1.Compatible(Firmware{2, 0, 0}) {
		t.Error("1.8.0 should not be compatible with 2.0.0")
	}
}

func TestLess(t *testing.T) {
	tests := []struct {
		a, b Firmware
		want bool
	}{
		{Firmware{1, 0, 0}, Firmware{1, 0, 1}, true},
		{Firmware{1, 2, 0}, Firmware{1, 10, 0}, true},
		{Firmware{2, 0, 0}, Firmware{1, 9, 9}, false},
		{Firmware{1, 8, 0}, Firmware{1, 8, 0}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Less(tt.b); got != tt.want {
			t.Errorf("%v.Less(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
