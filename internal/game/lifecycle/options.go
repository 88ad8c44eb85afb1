package lifecycle

import (
	"time"

	"github.com/Faultbox/wikiwalk/internal/room"
)

// Options tunes the manager.
type Options struct {
	// InterItemDelay is waited between deferred asset loads, after the frame yield.
	InterItemDelay time.Duration `yaml:"inter_item_delay"`
	// SpawnInset is how far from a wall a FromWall spawn stands.
	SpawnInset float32 `yaml:"spawn_inset"`
	// ResultBuffer bounds how many finished loads may wait for Pump.
	ResultBuffer int `yaml:"result_buffer"`

	Layout room.Layout `yaml:"-"`
}

// DefaultOptions returns the stock manager settings.
func DefaultOptions() Options {
	return Options{
		InterItemDelay: 30 * time.Millisecond,
		SpawnInset:     1.5,
		ResultBuffer:   16,
		Layout:         room.DefaultLayout(),
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.InterItemDelay < 0 {
		o.InterItemDelay = 0
	}
	if !(o.SpawnInset > 0) {
		o.SpawnInset = d.SpawnInset
	}
	if o.ResultBuffer <= 0 {
		o.ResultBuffer = d.ResultBuffer
	}
	return o
}

// Spawn says where the player appears in a new room.
type Spawn struct {
	// FromWall places the player inset from Wall facing into the room;
	// otherwise the player stands at the centre looking along Yaw/Pitch.
	FromWall bool        `yaml:"from_wall"`
	Wall     room.WallID `yaml:"wall"`
	Yaw      float32     `yaml:"yaw"`
	Pitch    float32     `yaml:"pitch"`
}

// SpawnCenter spawns at the room centre.
func SpawnCenter(yaw, pitch float32) Spawn {
	return Spawn{Yaw: yaw, Pitch: pitch}
}

// SpawnFromWall spawns just inside wall, facing away from it.
func SpawnFromWall(wall room.WallID) Spawn {
	return Spawn{FromWall: true, Wall: wall}
}

// RoomOptions configures one LoadRoom call. A nil field inherits the value
// from the previous call; a non-nil field replaces it, even when it points
// at an empty value.
type RoomOptions struct {
	Mode                    *room.Mode    `yaml:"mode,omitempty"`
	SeedTitle               *string       `yaml:"seed_title,omitempty"`
	LobbyCategories         *[]string     `yaml:"lobby_categories,omitempty"`
	GalleryRelatedTitles    *[]string     `yaml:"gallery_related_titles,omitempty"`
	GalleryTitle            *string       `yaml:"gallery_title,omitempty"`
	GalleryDescription      *string       `yaml:"gallery_description,omitempty"`
	GalleryMainThumbnailURL *string       `yaml:"gallery_main_thumbnail_url,omitempty"`
	GalleryPhotos           *[]room.Photo `yaml:"gallery_photos,omitempty"`
	GalleryLongExtract      *string       `yaml:"gallery_long_extract,omitempty"`
	GalleryTrail            *[]string     `yaml:"gallery_trail,omitempty"`
	Spawn                   *Spawn        `yaml:"spawn,omitempty"`
}

// Ptr returns a pointer to v, for filling RoomOptions.
func Ptr[T any](v T) *T { return &v }

// Merge returns o with every field set in next replaced.
func (o RoomOptions) Merge(next RoomOptions) RoomOptions {
	pick(&o.Mode, next.Mode)
	pick(&o.SeedTitle, next.SeedTitle)
	pick(&o.LobbyCategories, next.LobbyCategories)
	pick(&o.GalleryRelatedTitles, next.GalleryRelatedTitles)
	pick(&o.GalleryTitle, next.GalleryTitle)
	pick(&o.GalleryDescription, next.GalleryDescription)
	pick(&o.GalleryMainThumbnailURL, next.GalleryMainThumbnailURL)
	pick(&o.GalleryPhotos, next.GalleryPhotos)
	pick(&o.GalleryLongExtract, next.GalleryLongExtract)
	pick(&o.GalleryTrail, next.GalleryTrail)
	pick(&o.Spawn, next.Spawn)
	return o
}

func pick[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}

// ModeOrDefault returns the effective mode; lobby when unset.
func (o RoomOptions) ModeOrDefault() room.Mode { return deref(o.Mode) }

// SpawnOrDefault returns the effective spawn; the centre facing north when unset.
func (o RoomOptions) SpawnOrDefault() Spawn { return deref(o.Spawn) }

// Params converts the gallery and lobby fields into builder params.
func (o RoomOptions) Params() room.Params {
	return room.Params{
		Categories:       deref(o.LobbyCategories),
		Title:            deref(o.GalleryTitle),
		Description:      deref(o.GalleryDescription),
		MainThumbnailURL: deref(o.GalleryMainThumbnailURL),
		LongExtract:      deref(o.GalleryLongExtract),
		RelatedTitles:    deref(o.GalleryRelatedTitles),
		Photos:           deref(o.GalleryPhotos),
		Trail:            deref(o.GalleryTrail),
	}
}
