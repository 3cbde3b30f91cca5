package version

import (
	"strings"
	"testing"
)

func TestStringIncludesBuildInfo(t *testing.T) {
	origCommit, origDate := GitCommit, BuildDate
	defer func() { GitCommit, BuildDate = origCommit, origDate }()

	GitCommit, BuildDate = "", ""
	got := String()
	if !strings.HasPrefix(got, "imp ") {
		t.Errorf("String() = %q, want the binary name first", got)
	}
	if strings.Contains(got, "commit:") || strings.Contains(got, "built:") {
		t.Errorf("String() = %q, want no build info without ldflags", got)
	}

	GitCommit, BuildDate = "abc1234", "2026-08-30"
	got = String()
	if !strings.Contains(got, "commit: abc1234") {
		t.Errorf("String() = %q, missing the commit line", got)
	}
	if !strings.Contains(got, "built:  2026-08-30") {
		t.Errorf("String() = %q, missing the build date line", got)
	}
}

func TestColoredKeepsAllComponents(t *testing.T) {
	for _, part := range strings.SplitN(Version, ".", 3) {
		if !strings.Contains(Colored(), part) {
			t.Errorf("Colored() = %q, missing component %q", Colored(), part)
		}
	}
}
