package version

import "testing"

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = oldVersion, oldCommit, oldDate })

	Version, Commit, Date = "v1.2.0", "", ""
	if got := String(); got != "v1.2.0" {
		t.Fatalf("String() = %q, want v1.2.0", got)
	}

	Commit, Date = "abc123", "2026-10-01"
	if got := String(); got != "v1.2.0 (abc123) 2026-10-01" {
		t.Fatalf("String() = %q", got)
	}
}
