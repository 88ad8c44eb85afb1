package game

import (
	"testing"

	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/room"
)

func TestNavigatorTrail(t *testing.T) {
	s := newSession(t, Callbacks{})
	nav := NewNavigator(s, 1)
	lobby := nav.Lobby()

	first := lobby.Doors[0]
	d := nav.Door(first)
	if d.Mode != room.ModeGallery {
		t.Fatalf("mode = %v, want gallery", d.Mode)
	}
	if got := nav.Trail(); len(got) != 1 || got[0] != first.Meta.Category {
		t.Errorf("trail = %v", got)
	}
	if s.State().Locked {
		t.Error("interaction still locked after the load")
	}
	for _, door := range s.State().Room.Doors {
		if door.Label.Overridden() {
			t.Errorf("door %s in the new room carries label %q", door.ID, door.DisplayLabel())
		}
	}
	// Related doors come from the lobby's other categories.
	related := firstArticleDoor(t, d)
	if related.Meta.ArticleTitle == first.Meta.Category {
		t.Errorf("unexpected related door %+v", related)
	}

	// Follow a related door, then come back through the previous door.
	second := nav.Door(*related)
	prev, ok := second.Door("previous")
	if !ok || prev.Meta.ArticleTitle != first.Meta.Category {
		t.Fatalf("previous door = %+v", prev)
	}
	nav.Door(*prev)
	if got := nav.Trail(); len(got) != 1 || got[0] != first.Meta.Category {
		t.Errorf("trail after going back = %v", got)
	}

	if d := nav.Action(room.ActionLobby); d.Mode != room.ModeLobby || len(nav.Trail()) != 0 {
		t.Error("lobby action should return to the lobby and clear the trail")
	}
}

func TestNavigatorRandom(t *testing.T) {
	s := newSession(t, Callbacks{})
	nav := NewNavigator(s, 7)
	nav.Lobby()
	d := nav.Action(room.ActionRandomArticle)
	if d == nil || d.Mode != room.ModeGallery {
		t.Fatalf("random action = %+v", d)
	}
	if cur := s.Rooms().Current(); *cur.SeedTitle != nav.Trail()[0] {
		t.Errorf("seed %q does not match trail %v", *cur.SeedTitle, nav.Trail())
	}
	if *s.Rooms().Current().Spawn != lifecycle.SpawnFromWall(room.South) {
		t.Error("galleries are entered from the south wall")
	}
}

func firstArticleDoor(t *testing.T, d *room.Descriptor) *room.Door {
	t.Helper()
	for i := range d.Doors {
		if d.Doors[i].Meta.Target == "article" {
			return &d.Doors[i]
		}
	}
	t.Fatal("no article doors")
	return nil
}
