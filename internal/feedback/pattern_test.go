package feedback

import "testing"

func TestPatternRoundTrip(t *testing.T) {
	recs := Judge("lolly", "allot")
	pattern := Pattern(recs)
	if pattern != "yygbb" {
		t.Fatalf("Pattern = %q, want yygbb", pattern)
	}

	back, err := ParsePattern("lolly", pattern)
	if err != nil {
		t.Fatalf("ParsePattern: %v", err)
	}
	for i := range recs {
		if back[i] != recs[i] {
			t.Fatalf("slot %d round-tripped to %+v, want %+v", i, back[i], recs[i])
		}
	}
}

func TestParsePatternRejectsBadInput(t *testing.T) {
	if _, err := ParsePattern("lolly", "gg"); err == nil {
		t.Error("short pattern accepted")
	}
	if _, err := ParsePattern("lolly", "ggxgg"); err == nil {
		t.Error("unknown mark accepted")
	}
}
