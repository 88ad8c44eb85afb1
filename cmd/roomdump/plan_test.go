package main

import (
	"strings"
	"testing"

	"github.com/Faultbox/wikiwalk/internal/room"
)

func TestPlanLobby(t *testing.T) {
	d := room.Build(room.ModeLobby, "", room.Params{Categories: []string{"Art", "Music"}}, room.DefaultLayout())
	p := newPlan(d, 40)
	lines := p.Lines()

	for i, line := range lines {
		if len([]rune(line)) != 40 {
			t.Fatalf("row %d is %d wide", i, len(line))
		}
	}
	if strings.Trim(lines[0], "#!") != "" {
		t.Errorf("north wall row = %q", lines[0])
	}
	if !strings.Contains(lines[0], "!") {
		t.Error("random-article button should sit on the north wall")
	}

	// East doors come first, so glyph 0 is on the right edge.
	found := false
	for _, line := range lines {
		r := []rune(line)
		if r[len(r)-1] == '0' {
			found = true
		}
	}
	if !found {
		t.Error("first category door not drawn on the east wall")
	}
	if p.doors['0'] != "Art" || p.doors['1'] != "Music" {
		t.Errorf("legend = %v", p.doors)
	}

	all := strings.Join(lines, "\n")
	for _, g := range []string{"O", "*"} {
		if !strings.Contains(all, g) {
			t.Errorf("plan has no %q:\n%s", g, all)
		}
	}
}

func TestPlanNarrowWidthIsClamped(t *testing.T) {
	d := room.Build(room.ModeGallery, "Moon", room.Params{}, room.DefaultLayout())
	if got := len(newPlan(d, 1).Lines()[0]); got != 8 {
		t.Errorf("width = %d, want 8", got)
	}
}

func TestSplit(t *testing.T) {
	if got := split(""); got != nil {
		t.Errorf("split(\"\") = %v", got)
	}
	if got := split("a, b ,c"); len(got) != 3 || got[1] != "b" {
		t.Errorf("split = %q", got)
	}
}
