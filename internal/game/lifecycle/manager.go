// Package lifecycle swaps rooms in and out of the engine state and streams
// their slot images in the background without ever letting a stale load
// touch a newer room.
package lifecycle

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
	"go.uber.org/zap"

	"github.com/Faultbox/wikiwalk/internal/assets"
	"github.com/Faultbox/wikiwalk/internal/engine/scene"
	"github.com/Faultbox/wikiwalk/internal/game/player"
	"github.com/Faultbox/wikiwalk/internal/game/world"
	"github.com/Faultbox/wikiwalk/internal/logger"
	"github.com/Faultbox/wikiwalk/internal/room"
	"github.com/Faultbox/wikiwalk/pkg/math"
)

// result is one finished deferred load, tagged with the room it was for.
type result struct {
	token uint64
	room  uuid.UUID
	job   room.AssetJob
	data  []byte
	err   error
}

// Manager owns room transitions. Every method except the background loaders
// runs on the frame goroutine.
type Manager struct {
	state  *world.State
	loader assets.Loader
	opts   Options

	current RoomOptions

	// token identifies the newest load; background work compares against it
	// after every suspension point.
	token      atomic.Uint64
	activeRoom atomic.Value // uuid.UUID
	cancel     context.CancelFunc

	frameMu sync.Mutex
	frame   chan struct{}

	results chan result
	pending mapset.Set[string]
	wg      sync.WaitGroup
}

// New creates a manager over state. loader may be nil when no images are
// ever fetched; every job then fails.
func New(state *world.State, loader assets.Loader, opts Options) *Manager {
	opts = opts.withDefaults()
	m := &Manager{
		state:   state,
		loader:  loader,
		opts:    opts,
		frame:   make(chan struct{}),
		results: make(chan result, opts.ResultBuffer),
		pending: mapset.New[string](),
	}
	m.activeRoom.Store(uuid.Nil)
	return m
}

// Current returns the merged options of the last LoadRoom.
func (m *Manager) Current() RoomOptions { return m.current }

// Token returns the current generation.
func (m *Manager) Token() uint64 { return m.token.Load() }

// Pending returns how many asset jobs of the current room have not reported.
func (m *Manager) Pending() int { return m.pending.Size() }

// BeginTransition locks interaction until the next LoadRoom, for use while
// the caller fetches whatever the next room needs.
func (m *Manager) BeginTransition() {
	m.state.Locked = true
}

// LoadRoom builds and installs a room. Fields left nil in opts are inherited
// from the previous call.
func (m *Manager) LoadRoom(opts RoomOptions) *room.Descriptor {
	m.current = m.current.Merge(opts)
	o := m.current
	mode := o.ModeOrDefault()
	seed := deref(o.SeedTitle)

	token := m.supersede()
	m.teardown()

	d := room.Build(mode, seed, o.Params(), m.opts.Layout)
	id := uuid.New()
	m.state.Install(d, scene.FromDescriptor(d), id)
	m.activeRoom.Store(id)
	m.applySpawn(d, o.SpawnOrDefault())

	m.pending = mapset.New[string]()
	for _, job := range d.AssetJobs {
		m.pending.Put(job.ID)
	}
	if len(d.AssetJobs) > 0 {
		ctx, cancel := context.WithCancel(context.Background())
		m.cancel = cancel
		jobs := append([]room.AssetJob(nil), d.AssetJobs...)
		m.wg.Add(1)
		go m.stream(ctx, token, id, jobs)
	}
	m.state.Locked = false

	logger.Info("room loaded",
		zap.Stringer("mode", mode),
		zap.String("seed", seed),
		zap.Stringer("room", id),
		zap.Uint64("token", token),
		zap.Int("doors", len(d.Doors)),
		zap.Int("slots", len(d.Slots)),
		zap.Int("assets", len(d.AssetJobs)))
	return d
}

// SetDoorLabelOverride replaces a door's displayed label. Unknown ids are
// ignored.
func (m *Manager) SetDoorLabelOverride(doorID, text string) {
	if door, ok := m.state.Room.Door(doorID); ok {
		door.Label = room.OverrideLabel(text)
	}
}

// ClearDoorLabelOverride restores a door's original label. Unknown ids are
// ignored.
func (m *Manager) ClearDoorLabelOverride(doorID string) {
	if door, ok := m.state.Room.Door(doorID); ok {
		door.Label = room.OriginalLabel()
	}
}

// Dispose invalidates all background work and tears down the current room.
func (m *Manager) Dispose() {
	m.supersede()
	m.teardown()
	m.state.Clear()
	m.activeRoom.Store(uuid.Nil)
	m.pending = mapset.New[string]()
}

// Wait blocks until every background loader has exited.
func (m *Manager) Wait() {
	m.wg.Wait()
}

// Pump marks a frame boundary: waiting loaders are released for one item and
// finished results are applied. It returns how many results were applied.
func (m *Manager) Pump() int {
	m.frameMu.Lock()
	close(m.frame)
	m.frame = make(chan struct{})
	m.frameMu.Unlock()

	applied := 0
	for {
		select {
		case r := <-m.results:
			if m.apply(r) {
				applied++
			}
		default:
			return applied
		}
	}
}

// supersede bumps the generation and cancels the previous loader.
func (m *Manager) supersede() uint64 {
	token := m.token.Add(1)
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	return token
}

// teardown releases the held object and disposes the current scene.
func (m *Manager) teardown() {
	m.state.ReleaseHeld()
	if m.state.Scene != nil {
		// Failures are logged by Dispose; teardown carries on regardless.
		_ = m.state.Scene.Dispose()
	}
}

func (m *Manager) apply(r result) bool {
	if r.token != m.token.Load() || r.room != m.state.RoomID {
		logger.Debug("discarding stale asset result",
			zap.String("job", r.job.ID),
			zap.Uint64("token", r.token))
		return false
	}
	m.pending.Remove(r.job.ID)
	if r.err != nil {
		logger.Warn("asset load failed",
			zap.String("slot", r.job.SlotID),
			zap.String("url", r.job.URL),
			zap.Error(r.err))
		m.state.SetAsset(r.job.SlotID, world.SlotAsset{Status: world.AssetFailed, Err: r.err})
		return true
	}
	m.state.SetAsset(r.job.SlotID, world.SlotAsset{Status: world.AssetReady, Data: r.data})
	return true
}

// live reports whether the load identified by token and id is still current.
func (m *Manager) live(token uint64, id uuid.UUID) bool {
	return m.token.Load() == token && m.activeRoom.Load().(uuid.UUID) == id
}

func (m *Manager) nextFrame() <-chan struct{} {
	m.frameMu.Lock()
	defer m.frameMu.Unlock()
	return m.frame
}

// stream loads jobs one at a time, yielding a frame and InterItemDelay
// before each, and exits silently as soon as it is superseded.
func (m *Manager) stream(ctx context.Context, token uint64, id uuid.UUID, jobs []room.AssetJob) {
	defer m.wg.Done()
	for _, job := range jobs {
		select {
		case <-m.nextFrame():
		case <-ctx.Done():
			return
		}
		if m.opts.InterItemDelay > 0 {
			timer := time.NewTimer(m.opts.InterItemDelay)
			select {
			case <-timer.C:
			case <-ctx.Done():
				timer.Stop()
				return
			}
		}
		if !m.live(token, id) {
			return
		}

		var data []byte
		err := assets.ErrNotFound
		if m.loader != nil {
			data, err = m.loader.Load(ctx, job.URL)
		}
		if !m.live(token, id) {
			return
		}

		select {
		case m.results <- result{token: token, room: id, job: job, data: data, err: err}:
		case <-ctx.Done():
			return
		}
	}
}

// applySpawn places the player according to spawn, then moves them off any
// obstacle standing on the spawn point.
func (m *Manager) applySpawn(d *room.Descriptor, spawn Spawn) {
	m.state.Player.Place(SpawnPose(d, spawn, m.opts.SpawnInset))
	if !m.state.Player.Settle(player.BoundsOf(d), d.Obstacles) {
		logger.Warn("no clear spawn point", zap.String("mode", d.Mode.String()))
	}
	m.state.SyncCamera()
}

// SpawnPose returns the pose spawn resolves to in d.
func SpawnPose(d *room.Descriptor, spawn Spawn, inset float32) player.Pose {
	if !spawn.FromWall {
		return player.Pose{Yaw: spawn.Yaw, Pitch: spawn.Pitch}
	}
	x := max(d.HalfW-inset, 0)
	z := max(d.HalfL-inset, 0)
	switch spawn.Wall {
	case room.North:
		return player.Pose{Position: math.V3(0, 0, -z), Yaw: math.Pi}
	case room.South:
		return player.Pose{Position: math.V3(0, 0, z), Yaw: 0}
	case room.East:
		return player.Pose{Position: math.V3(x, 0, 0), Yaw: math.Pi / 2}
	case room.West:
		return player.Pose{Position: math.V3(-x, 0, 0), Yaw: -math.Pi / 2}
	}
	return player.Pose{}
}
