package domain

import "testing"

func TestStatusCanTransition(t *testing.T) {
	cases := []struct {
		name   string
		from   Status
		to     Status
		want   bool
	}{
		{"open_to_resolved", StatusOpen, StatusResolved, true},
		{"implicit_open_to_resolved", Status(""), StatusResolved, true},
		{"resolved_to_resolved", StatusResolved, StatusResolved, false},
		{"resolved_to_open", StatusResolved, StatusOpen, false},
		{"open_to_open", StatusOpen, StatusOpen, false},
		{"unknown_state", Status("In Progress"), StatusResolved, false},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.from.CanTransition(tc.to); got != tc.want {
				t.Fatalf("CanTransition(%q -> %q) = %v; want %v", tc.from, tc.to, got, tc.want)
			}
		})
	}
}

func TestStatusIsTerminal(t *testing.T) {
	if StatusOpen.IsTerminal() {
		t.Fatalf("Open must not be terminal")
	}
	if Status("").IsTerminal() {
		t.Fatalf("implicit Open must not be terminal")
	}
	if !StatusResolved.IsTerminal() {
		t.Fatalf("Resolved must be terminal")
	}
}

func TestParseCategory(t *testing.T) {
	cases := map[string]struct {
		want Category
		ok   bool
	}{
		"photos":   {CategoryPhotos, true},
		"files":    {CategoryFiles, true},
		"":         {"", false},
		"Photos":   {"", false},
		"videos":   {"", false},
		"photos/":  {"", false},
		"solvedAt": {"", false}, // arbitrary field names must never pass
	}
	for in, exp := range cases {
		got, ok := ParseCategory(in)
		if ok != exp.ok || got != exp.want {
			t.Errorf("ParseCategory(%q) = (%q, %v); want (%q, %v)", in, got, ok, exp.want, exp.ok)
		}
	}
}

func TestIssueCurrentStatus(t *testing.T) {
	i := &Issue{}
	if i.CurrentStatus() != StatusOpen {
		t.Fatalf("empty status should read as Open, got %q", i.CurrentStatus())
	}
	i.Status = StatusResolved
	if i.CurrentStatus() != StatusResolved {
		t.Fatalf("explicit status should pass through, got %q", i.CurrentStatus())
	}
}

func TestTableNames(t *testing.T) {
	if (Issue{}).TableName() != "issues" {
		t.Fatalf("Issue table name = %q", Issue{}.TableName())
	}
	if (Attachment{}).TableName() != "attachments" {
		t.Fatalf("Attachment table name = %q", Attachment{}.TableName())
	}
}
