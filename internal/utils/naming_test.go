package utils

import "testing"

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"@scoped/myapp", "scoped-myapp"},
		{"Foo/Bar/Baz", "Foo-Bar-Baz"},
		{"my-app_1.0+git", "my-app_1.0+git"},
		{"my app", "my-app"},
		{"électron", "-lectron"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if again := SanitizeName(got); again != got {
				t.Errorf("SanitizeName is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

func TestNormalizeVersion(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1.0.0-beta", "1.0.0.beta"},
		{"1.0.0-multiple-hyphens", "1.0.0.multiple.hyphens"},
		{"1.0.0-beta+exp.sha.5114f85", "1.0.0.beta+exp.sha.5114f85"},
		{"1.0.0--double", "1.0.0..double"},
		{"1.0.0", "1.0.0"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeVersion(tt.input); got != tt.want {
			t.Errorf("NormalizeVersion(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
