package id

import (
	"regexp"
	"testing"
)

var reUUID = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-4[a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)

func TestNew_Format(t *testing.T) {
	got := New()
	if !reUUID.MatchString(got) {
		t.Fatalf("not a v4 uuid: %q", got)
	}
}

func TestNew_Unique(t *testing.T) {
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		v := New()
		if seen[v] {
			t.Fatalf("duplicate id %q after %d draws", v, i)
		}
		seen[v] = true
	}
}
