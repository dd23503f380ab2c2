// Package version provides firmware version parsing and comparison.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the firmware version reported in Features.
const Current = "1.8.0"

// Protocol is the host protocol revision advertised over mDNS.
const Protocol = 1

// Firmware represents a parsed "major.minor.patch" firmware version.
type Firmware struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// Parse parses a "major.minor.patch" version string.
func Parse(s string) (Firmware, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return Firmware{}, fmt.Errorf("invalid version %q: expected major.minor.patch", s)
	}

	var nums [3]uint32
	for i, name := range []string{"major", "minor", "patch"} {
		n, err := strconv.ParseUint(parts[i], 10, 32)
		if err != nil || parts[i] == "" {
			return Firmware{}, fmt.Errorf("invalid version %q: bad %s component", s, name)
		}
		nums[i] = uint32(n)
	}

	return Firmware{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// MustCurrent returns the parsed Current version.
func MustCurrent() Firmware {
	v, err := Parse(Current)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the version as "major.minor.patch".
func (v Firmware) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Compatible returns true if the other version has the same major version.
func (v Firmware) Compatible(other Firmware) bool {
	return v.Major == other.Major
}

// Less reports whether v is older than other.
func (v Firmware) Less(other Firmware) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	if v.Minor != other.Minor {
		return v.Minor < other.Minor
	}
	return v.Patch < other.Patch
}
