package rpmtool

import (
	"testing"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input   string
		want    Version
		wantErr bool
	}{
		{"4.14.2", Version{4, 14, 2}, false},
		{"4.13", Version{4, 13, 0}, false},
		{"4", Version{4, 0, 0}, false},
		{"v1.7.2", Version{1, 7, 2}, false},
		{"4.14.2.1", Version{4, 14, 2}, false},
		{"4.12.0-rc1", Version{4, 12, 0}, false},
		{"4.13.90-git12844", Version{4, 13, 90}, false},
		{"4.15rc.2", Version{4, 15, 0}, false},
		{" 11.0.0\n", Version{11, 0, 0}, false},
		{"", Version{}, true},
		{"unknown", Version{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseVersion(%q) expected error, got %v", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionCompare(t *testing.T) {
	tests := []struct {
		a, b Version
		want int
	}{
		{Version{4, 13, 0}, Version{4, 13, 0}, 0},
		{Version{4, 12, 9}, Version{4, 13, 0}, -1},
		{Version{4, 14, 0}, Version{4, 13, 0}, 1},
		{Version{5, 0, 0}, Version{4, 99, 99}, 1},
		{Version{1, 7, 1}, Version{1, 7, 2}, -1},
	}

	for _, tt := range tests {
		if got := tt.a.Compare(tt.b); got != tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		if got := tt.b.Compare(tt.a); got != -tt.want {
			t.Errorf("%v.Compare(%v) = %d, want %d", tt.b, tt.a, got, -tt.want)
		}
	}
}

func TestVersionSupportsBooleanDependencies(t *testing.T) {
	tests := []struct {
		version string
		want    bool
	}{
		{"4.13.0", true},
		{"4.14.2", true},
		{"4.13", true},
		{"5.0.0", true},
		{"4.12.0", false},
		{"4.12.0.1", false},
		{"4.11.3", false},
		{"3.99.99", false},
	}

	for _, tt := range tests {
		got, err := VersionSupportsBooleanDependencies(tt.version)
		if err != nil {
			t.Fatalf("VersionSupportsBooleanDependencies(%q) failed: %v", tt.version, err)
		}
		if got != tt.want {
			t.Errorf("VersionSupportsBooleanDependencies(%q) = %t, want %t", tt.version, got, tt.want)
		}
	}
}

func TestLastToken(t *testing.T) {
	token, err := LastToken("RPM version 4.14.2\n")
	if err != nil {
		t.Fatalf("LastToken failed: %v", err)
	}
	if token != "4.14.2" {
		t.Errorf("Expected 4.14.2, got %s", token)
	}

	if _, err := LastToken("  \n"); err == nil {
		t.Error("Expected error for empty output")
	}
}
