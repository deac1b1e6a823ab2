package installer

import "testing"

func TestMeetsMinimum(t *testing.T) {
	tests := []struct {
		version string
		minimum string
		want    bool
	}{
		{"14.1.0", "13.0.0", true},
		{"14.1.0", "14.1.0", true},
		{"14.1.0", "14.2", false},
		{"0.9", "1.0", false},
		{"1.0", "", true},
		{"", "1.0", false},
		{"2024.07.16", "2023.01.01", true},
		{"v1.2.3", "1.2", true},
	}

	for _, tt := range tests {
		got := MeetsMinimum(tt.version, tt.minimum)
		if got != tt.want {
			t.Errorf("MeetsMinimum(%q, %q) = %v, want %v", tt.version, tt.minimum, got, tt.want)
		}
	}
}

func TestFirstLine(t *testing.T) {
	if got := firstLine("ripgrep 14.1.0\nextra"); got != "ripgrep 14.1.0" {
		t.Errorf("firstLine = %q", got)
	}
	if got := firstLine("single"); got != "single" {
		t.Errorf("firstLine = %q", got)
	}
}
