package version

import (
	"testing"
)

func TestParse_Valid(t *testing.T) {
	tests := []struct {
		input string
		major uint16
		minor uint16
	}{
		{"1.0", 1, 0},
		{"1.1", 1, 1},
		{"2.0", 2, 0},
		{"10.23", 10, 23},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if v.Major != tt.major {
				t.Errorf("Major = %d, want %d", v.Major, tt.major)
			}
			if v.Minor != tt.minor {
				t.Errorf("Minor = %d, want %d", v.Minor, tt.minor)
			}
		})
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []string{
		"",
		"1",
		"abc",
		"1.0.0",
		"1.x",
		"-1.0",
		".1",
		"1.",
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

func TestCurrent(t *testing.T) {
	v := Current()
	if v.String() != RegisterMap {
		t.Errorf("Current().String() = %q, want %q", v.String(), RegisterMap)
	}
	if v.Major == 0 {
		t.Error("Current().Major is 0")
	}
}

func TestMapVersion_String(t *testing.T) {
	v := MapVersion{Major: 10, Minor: 23}
	if v.String() != "10.23" {
		t.Errorf("String() = %q, want %q", v.String(), "10.23")
	}
}

func TestMapVersion_Compatible(t *testing.T) {
	tests := []struct {
		client, server string
		want           bool
	}{
		{"1.0", "1.0", true},
		{"1.0", "1.1", true},
		{"1.1", "1.0", false},
		{"1.0", "2.0", false},
		{"2.0", "1.9", false},
	}

	for _, tt := range tests {
		t.Run(tt.client+"->"+tt.server, func(t *testing.T) {
			c, _ := Parse(tt.client)
			s, _ := Parse(tt.server)
			if got := c.Compatible(s); got != tt.want {
				t.Errorf("Compatible = %v, want %v", got, tt.want)
			}
		})
	}
}
