package version

import "testing"

func TestShortCommit(t *testing.T) {
	t.Parallel()

	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("shortCommit short: got %q", got)
	}
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("shortCommit long: got %q", got)
	}
}

func TestResolvePrefersLdflags(t *testing.T) {
	prev := Version
	Version = "v1.2.3"
	defer func() { Version = prev }()

	info := Resolve()
	if info.Version != "v1.2.3" {
		t.Fatalf("expected ldflags version, got %q", info.Version)
	}
	if String() == "" {
		t.Fatalf("String returned empty version")
	}
}
