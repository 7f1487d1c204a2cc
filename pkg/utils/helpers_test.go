package utils

import (
	"os"
	"path"
	"testing"
)

func TestInSlice(t *testing.T) {
	tests := []struct {
		lookingFor string
		slice      []string
		expected   bool
	}{
		{".png", AllowedImageExtensions, true},
		{".jpeg", AllowedImageExtensions, true},
		{".gif", AllowedImageExtensions, false},
		{"", AllowedImageExtensions, false},
		{"a", nil, false},
	}

	for _, tt := range tests {
		if got := InSlice(tt.lookingFor, tt.slice); got != tt.expected {
			t.Errorf("InSlice(%q, %v) = %v, expected %v", tt.lookingFor, tt.slice, got, tt.expected)
		}
	}
}

func TestListDir(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.csv", "b.csv"} {
		if err := os.WriteFile(path.Join(dir, name), []byte("x"), 0644); err != nil {
			t.Fatalf("setup failed, got '%v'", err)
		}
	}

	names, err := ListDir(dir)
	if err != nil {
		t.Fatalf("ListDir failed, got '%v'", err)
	}
	if len(names) != 2 || !InSlice("a.csv", names) || !InSlice("b.csv", names) {
		t.Errorf("ListDir = %v", names)
	}
}

func TestListDir_MissingPath(t *testing.T) {
	if _, err := ListDir("/definitely/not/a/dir"); err == nil {
		t.Errorf("ListDir of a missing path did not fail")
	}
}
