package cli

import (
	"reflect"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{1048576, "1.0 MB"},
		{5 * 1024 * 1024 * 1024, "5.0 GB"},
	}

	for _, tt := range tests {
		if got := formatBytes(tt.in); got != tt.want {
			t.Errorf("formatBytes(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFilterFlags(t *testing.T) {
	tests := []struct {
		name  string
		in    []string
		want  map[string]string
		valid bool
	}{
		{"empty", nil, nil, true},
		{"single", []string{"city=berlin"}, map[string]string{"city": "berlin"}, true},
		{"multiple", []string{"city=berlin", "age=34"}, map[string]string{"city": "berlin", "age": "34"}, true},
		{"value with equals", []string{"note=a=b"}, map[string]string{"note": "a=b"}, true},
		{"missing equals", []string{"city"}, nil, false},
		{"empty key", []string{"=x"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseFilterFlags(tt.in)
			if ok != tt.valid {
				t.Fatalf("parseFilterFlags(%v) ok = %v, want %v", tt.in, ok, tt.valid)
			}
			if tt.valid && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("parseFilterFlags(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
