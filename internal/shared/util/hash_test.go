package util

import (
	"regexp"
	"testing"
)

var hexSegment = regexp.MustCompile(`^[0-9a-f]{32}$`)

func TestHashUserKey(t *testing.T) {
	user := HashUserKey("user-1")
	guest := HashUserKey("guest:user-1")

	if user != HashUserKey("user-1") {
		t.Fatalf("expected stable hash, got %s", user)
	}
	if user == guest {
		t.Fatal("expected guests and users to hash apart")
	}
	for _, h := range []string{user, guest} {
		if !hexSegment.MatchString(h) {
			t.Fatalf("expected 32 hex characters, got %q", h)
		}
	}
}
