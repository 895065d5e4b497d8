package pathutil

import "testing"

func TestHasSegment(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path    string
		segment string
		want    bool
	}{
		{"a/__pycache__/b.py", "__pycache__", true},
		{"__pycache__/b.py", "__pycache__", true},
		{"a/not__pycache__/b.py", "__pycache__", false},
		{"a/b.py", "__pycache__", false},
	}

	for _, tt := range tests {
		if got := HasSegment(tt.path, tt.segment); got != tt.want {
			t.Errorf("HasSegment(%q, %q) = %v, want %v", tt.path, tt.segment, got, tt.want)
		}
	}
}

func TestUnderAny(t *testing.T) {
	t.Parallel()

	prefixes := []string{"pkg/private", "vendor/"}

	tests := []struct {
		path     string
		prefixes []string
		want     bool
	}{
		{"pkg/private", prefixes, true},
		{"pkg/private/x.py", prefixes, true},
		{"vendor/lib.py", prefixes, true},
		{"pkg/privates/x.py", prefixes, false},
		{"pkg/public/x.py", prefixes, false},
		{"anything", nil, false},
		{"anything", []string{""}, false},
	}

	for _, tt := range tests {
		if got := UnderAny(tt.path, tt.prefixes); got != tt.want {
			t.Errorf("UnderAny(%q, %v) = %v, want %v", tt.path, tt.prefixes, got, tt.want)
		}
	}
}
