package corpus

import (
	"testing"
	"time"
)

func TestFindColumn_HintPriority(t *testing.T) {
	tbl := Table{Columns: []string{"entered_date", "start_date", "occurrence_date"}}
	// "occurrence" outranks "start" and "entered" regardless of column order
	col, ok := tbl.FindColumn("occurrence", "reported", "start", "entered")
	if !ok || col != "occurrence_date" {
		t.Errorf("FindColumn = %q, %v; want occurrence_date", col, ok)
	}
}

func TestFindColumn_Missing(t *testing.T) {
	tbl := Table{Columns: []string{"title"}}
	if _, ok := tbl.FindColumn("occurrence", "reported"); ok {
		t.Error("expected no match for date hints")
	}
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []string{
		"2024-01-15",
		"2024-01-15 10:30:00",
		"01/15/2024",
		"15-Jan-2024",
	}
	want := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	for _, in := range cases {
		got, ok := ParseDate(in)
		if !ok {
			t.Errorf("ParseDate(%q): expected success", in)
			continue
		}
		if got.Year() != want.Year() || got.Month() != want.Month() || got.Day() != want.Day() {
			t.Errorf("ParseDate(%q) = %v, want date %v", in, got, want)
		}
	}
}

func TestParseDate_Garbage(t *testing.T) {
	for _, in := range []string{"", "nan", "NaT", "None", "soon", "Q3"} {
		if _, ok := ParseDate(in); ok {
			t.Errorf("ParseDate(%q) should fail", in)
		}
	}
}

func TestRowGet_TrimsAndTolerates(t *testing.T) {
	r := Row{"title": "  padded  "}
	if got := r.Get("title"); got != "padded" {
		t.Errorf("Get trimmed = %q", got)
	}
	if got := r.Get("absent"); got != "" {
		t.Errorf("absent column = %q, want empty", got)
	}
}
