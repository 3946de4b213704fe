package utils

import "strings"

// SanitizeName returns name with a leading scope marker removed and every
// character that is not allowed in an RPM package name replaced with "-".
// "@scope/app" becomes "scope-app".
func SanitizeName(name string) string {
	name = strings.TrimPrefix(name, "@")

	var b strings.Builder
	b.Grow(len(name))
	for _, ch := range name {
		if isNameChar(ch) {
			b.WriteRune(ch)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

func isNameChar(ch rune) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == '-', ch == '.', ch == '_', ch == '+':
		return true
	}
	return false
}

// NormalizeVersion returns version with every hyphen replaced by a period,
// since hyphens separate version and release in RPM file names
func NormalizeVersion(version string) string {
	return strings.ReplaceAll(version, "-", ".")
}
