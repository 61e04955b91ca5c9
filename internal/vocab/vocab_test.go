package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func writeList(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte(lines), 0644); err != nil {
		t.Fatalf("write word list: %v", err)
	}
	return path
}

func TestLoadFiltersAndDedupes(t *testing.T) {
	answers := writeList(t, "allot\nALLOT\n# comment\nsheer\ncat\nnope!\n\neerie\n")
	l, err := Load(answers, "", 5)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []string{"allot", "sheer", "eerie"}
	if len(l.Answers) != len(want) {
		t.Fatalf("got %d answers %v, want %v", len(l.Answers), l.Answers, want)
	}
	for i, w := range want {
		if l.Answers[i] != w {
			t.Errorf("answer %d = %q, want %q", i, l.Answers[i], w)
		}
	}
	// "ALLOT" dedupes after lowering, "cat" and "nope!" are unusable.
	if l.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", l.Skipped)
	}
}

func TestLoadUnion(t *testing.T) {
	answers := writeList(t, "allot\nsheer\n")
	allowed := writeList(t, "lolly\nsheer\ncrump\n")
	l, err := Load(answers, allowed, 5)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	union := l.Union()
	want := []string{"allot", "sheer", "lolly", "crump"}
	if len(union) != len(want) {
		t.Fatalf("union = %v, want %v", union, want)
	}
	for i := range want {
		if union[i] != want[i] {
			t.Errorf("union[%d] = %q, want %q", i, union[i], want[i])
		}
	}

	if !l.Contains("crump") || l.Contains("mount") {
		t.Error("Contains answered wrong")
	}
}

func TestLoadEmptyIsError(t *testing.T) {
	answers := writeList(t, "toolong\nno\n")
	if _, err := Load(answers, "", 5); err == nil {
		t.Fatal("expected error for empty usable set")
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.txt"), "", 5); err == nil {
		t.Fatal("expected error for missing file")
	}
}
