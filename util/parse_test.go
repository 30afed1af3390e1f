package util

import "testing"

func TestParseSize(t *testing.T) {
	tests := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"10MB", 10 << 20, true},
		{"512kb", 512 << 10, true},
		{" 2GB ", 2 << 30, true},
		{"100", 100, true},
		{"64B", 64, true},
		{"1 MB", 1 << 20, true},
		{"", 0, false},
		{"MB", 0, false},
		{"-1KB", 0, false},
		{"ten", 0, false},
	}
	for _, tc := range tests {
		got, err := ParseSize(tc.in)
		if tc.ok && (err != nil || got != tc.want) {
			t.Errorf("ParseSize(%q) = %d, %v; want %d", tc.in, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Errorf("ParseSize(%q) expected error, got %d", tc.in, got)
		}
	}
}

func TestParseSizeOr(t *testing.T) {
	if got := ParseSizeOr("bogus", 7); got != 7 {
		t.Errorf("expected fallback 7, got %d", got)
	}
	if got := ParseSizeOr("1KB", 7); got != 1024 {
		t.Errorf("expected 1024, got %d", got)
	}
}

func TestMaskSecret(t *testing.T) {
	if got := MaskSecret("abc", 4); got != "***" {
		t.Errorf("expected full mask, got %q", got)
	}
	if got := MaskSecret("eyJhbGciOi", 4); got != "eyJh***" {
		t.Errorf("expected prefix mask, got %q", got)
	}
}
