package game

import (
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/game/lifecycle"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/seedrand"
)

// maxRelated is how many sibling titles an offline gallery links to.
const maxRelated = 6

// Navigator is an offline navigation collaborator: it turns door and action
// events into room loads using only what the current room already knows.
// Galleries it builds have titles and links but no article text or images.
type Navigator struct {
	s     *Session
	rooms *lifecycle.Manager
	trail []string
	rng   *seedrand.Rand
}

// NewNavigator creates a navigator over s. seed drives the random button.
func NewNavigator(s *Session, seed uint32) *Navigator {
	return &Navigator{s: s, rooms: s.Rooms(), rng: seedrand.New(seed)}
}

// Trail returns the titles visited since the lobby, current last.
func (n *Navigator) Trail() []string { return append([]string(nil), n.trail...) }

// Door follows door. Interaction stays locked until the next room is in.
func (n *Navigator) Door(door room.Door) *room.Descriptor {
	n.rooms.BeginTransition()

	switch door.Meta.Target {
	case "lobby":
		return n.Lobby()
	case "previous":
		title := door.Meta.ArticleTitle
		for i, t := range n.trail {
			if t == title {
				n.trail = n.trail[:i]
				break
			}
		}
		return n.gallery(title)
	default:
		title := door.Meta.ArticleTitle
		if title == "" {
			title = door.Meta.Category
		}
		if title == "" {
			title = door.Meta.Label
		}
		return n.gallery(title)
	}
}

// Action performs a button action.
func (n *Navigator) Action(a room.Action) *room.Descriptor {
	switch a {
	case room.ActionLobby:
		return n.Lobby()
	case room.ActionRandomArticle:
		d := n.s.State().Room
		if d == nil || len(d.Doors) == 0 {
			return nil
		}
		return n.Door(d.Doors[n.rng.Intn(len(d.Doors))])
	}
	logger.Warn("unknown action", zap.String("action", string(a)))
	return nil
}

// Lobby returns to the lobby and forgets the trail.
func (n *Navigator) Lobby() *room.Descriptor {
	n.trail = nil
	return n.rooms.LoadRoom(lifecycle.RoomOptions{
		Mode:      lifecycle.Ptr(room.ModeLobby),
		SeedTitle: lifecycle.Ptr(""),
		Spawn:     lifecycle.Ptr(lifecycle.SpawnCenter(0, 0)),
	})
}

func (n *Navigator) gallery(title string) *room.Descriptor {
	related := n.siblings(title)
	n.trail = append(n.trail, title)
	logger.Info("navigating", zap.String("title", title), zap.Strings("trail", n.trail))

	return n.rooms.LoadRoom(lifecycle.RoomOptions{
		Mode:                    lifecycle.Ptr(room.ModeGallery),
		SeedTitle:               lifecycle.Ptr(title),
		GalleryTitle:            lifecycle.Ptr(title),
		GalleryDescription:      lifecycle.Ptr(""),
		GalleryMainThumbnailURL: lifecycle.Ptr(""),
		GalleryPhotos:           lifecycle.Ptr([]room.Photo{}),
		GalleryLongExtract:      lifecycle.Ptr(""),
		GalleryRelatedTitles:    lifecycle.Ptr(related),
		GalleryTrail:            lifecycle.Ptr(append([]string(nil), n.trail...)),
		Spawn:                   lifecycle.Ptr(lifecycle.SpawnFromWall(room.South)),
	})
}

// siblings lists the other door titles of the current room.
func (n *Navigator) siblings(exclude string) []string {
	d := n.s.State().Room
	if d == nil {
		return []string{}
	}
	out := []string{}
	for _, door := range d.Doors {
		t := door.Meta.ArticleTitle
		if t == "" {
			t = door.Meta.Category
		}
		if t == "" || t == exclude || door.Meta.Target == "previous" {
			continue
		}
		out = append(out, t)
		if len(out) == maxRelated {
			break
		}
	}
	return out
}
