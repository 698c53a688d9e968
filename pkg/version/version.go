// Package version identifies the simulator build and the register map it
// serves.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Build is the binary version, set at link time:
//
//	go build -ldflags "-X github.com/tanksim/tanksim-go/pkg/version.Build=v1.2.0"
var Build = "dev"

// RegisterMap is the version of the register layout. The major number
// changes when an existing cell moves or changes meaning; the minor number
// changes when cells are added.
const RegisterMap = "1.0"

// MapVersion is a parsed "major.minor" register map version.
type MapVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (MapVersion, error) {
	major, minor, ok := strings.Cut(s, ".")
	if !ok || strings.Contains(minor, ".") {
		return MapVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	ma, err := strconv.ParseUint(major, 10, 16)
	if err != nil {
		return MapVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}
	mi, err := strconv.ParseUint(minor, 10, 16)
	if err != nil {
		return MapVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return MapVersion{Major: uint16(ma), Minor: uint16(mi)}, nil
}

// Current returns the parsed RegisterMap.
func Current() MapVersion {
	v, _ := Parse(RegisterMap)
	return v
}

// String returns the version as "major.minor".
func (v MapVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if a client built for v can talk to a server
// serving other: same major, and other is at least as new.
func (v MapVersion) Compatible(other MapVersion) bool {
	return v.Major == other.Major && other.Minor >= v.Minor
}
