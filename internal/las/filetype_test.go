package las

import "testing"

func TestIsCompressed(t *testing.T) {
	cases := []struct {
		path string
		want bool
	}{
		{"cloud.laz", true},
		{"cloud.LAZ", true},
		{"cloud.las", false},
		{"cloud.LAS", false},
		{"cloud.txt", false},
		{"noext", false},
	}
	for _, c := range cases {
		if got := IsCompressed(c.path); got != c.want {
			t.Errorf("IsCompressed(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}
