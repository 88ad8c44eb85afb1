package desktop

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/engine/renderer"
	"github.com/Faultbox/wikiwalk/internal/engine/texture"
	"github.com/Faultbox/wikiwalk/internal/game/world"
	"github.com/Faultbox/wikiwalk/internal/logger"
)

type picture struct {
	texture uint32
	w, h    int
	failed  bool
}

// pictures turns loaded slot images into textures, once per slot per room.
type pictures struct {
	room  uuid.UUID
	slots map[string]*picture
}

func newPictures() *pictures {
	return &pictures{slots: make(map[string]*picture)}
}

// sync uploads newly ready images and returns what to draw this frame.
func (p *pictures) sync(state *world.State) []renderer.Picture {
	if state.RoomID != p.room {
		p.release()
		p.room = state.RoomID
	}
	d := state.Room
	if d == nil {
		return nil
	}

	var out []renderer.Picture
	for i := range d.Slots {
		slot := &d.Slots[i]
		pic, ok := p.slots[slot.ID]
		if !ok {
			asset, ok := state.Asset(slot.ID)
			if !ok || asset.Status != world.AssetReady {
				continue
			}
			pic = &picture{}
			img, format, err := texture.Decode(asset.Data, texture.MaxSize)
			if err != nil {
				logger.Warn("slot image unusable", zap.String("slot", slot.ID), zap.Error(err))
				pic.failed = true
			} else {
				pic.w, pic.h = img.Bounds().Dx(), img.Bounds().Dy()
				pic.texture = texture.Upload(img)
				logger.Debug("slot image uploaded",
					zap.String("slot", slot.ID),
					zap.String("format", format),
					zap.Int("width", pic.w),
					zap.Int("height", pic.h))
			}
			p.slots[slot.ID] = pic
		}
		if pic.failed {
			continue
		}

		w, h := texture.FitRect(pic.w, pic.h, slot.Width, slot.Height)
		out = append(out, renderer.Picture{
			Texture: pic.texture,
			Center:  slot.Center,
			Right:   d.Walls[slot.Wall].Right,
			Normal:  slot.Normal,
			Width:   w,
			Height:  h,
		})
	}
	return out
}

func (p *pictures) release() {
	for id, pic := range p.slots {
		texture.Delete(pic.texture)
		delete(p.slots, id)
	}
}
