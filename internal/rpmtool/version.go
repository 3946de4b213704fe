package rpmtool

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a zero-padded major.minor.patch triple
type Version [3]int

// BooleanDependenciesVersion is the first rpm release supporting boolean
// dependency expressions such as "(a or b)"
var BooleanDependenciesVersion = Version{4, 13, 0}

// String formats the version as major.minor.patch
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}

// ParseVersion reads the leading three numeric components of s. Anything
// after a non-numeric character inside a component ("0-rc1", "90-git12844")
// ends parsing; missing components are 0. A leading "v" is ignored.
func ParseVersion(s string) (Version, error) {
	var v Version

	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	parts := strings.Split(s, ".")
	for i := 0; i < len(v) && i < len(parts); i++ {
		digits := leadingDigits(parts[i])
		if digits == "" {
			if i == 0 {
				return v, fmt.Errorf("no numeric version component in %q", s)
			}
			break
		}

		n, err := strconv.Atoi(digits)
		if err != nil {
			return v, fmt.Errorf("invalid version component %q: %w", parts[i], err)
		}
		v[i] = n

		if len(digits) < len(parts[i]) {
			break
		}
	}

	return v, nil
}

func leadingDigits(s string) string {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	return s[:end]
}

// Compare returns -1, 0 or 1 depending on whether v is lower than, equal to
// or greater than other, comparing components left to right.
func (v Version) Compare(other Version) int {
	for i := range v {
		switch {
		case v[i] < other[i]:
			return -1
		case v[i] > other[i]:
			return 1
		}
	}
	return 0
}

// AtLeast reports whether v >= other
func (v Version) AtLeast(other Version) bool {
	return v.Compare(other) >= 0
}

// LastToken returns the last whitespace-delimited token of the output of
// `rpmbuild --version` ("RPM version 4.14.2" -> "4.14.2")
func LastToken(output string) (string, error) {
	fields := strings.Fields(output)
	if len(fields) == 0 {
		return "", fmt.Errorf("empty version output")
	}
	return fields[len(fields)-1], nil
}

// VersionSupportsBooleanDependencies parses an rpm version string and
// compares it against BooleanDependenciesVersion. rpm does not follow
// semantic versioning, so only the numeric components are considered.
func VersionSupportsBooleanDependencies(version string) (bool, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return false, err
	}
	return v.AtLeast(BooleanDependenciesVersion), nil
}
