// Package viewsync keeps the two slice views and the track map consistent:
// viewport lock-step between slice views, a throttled live position indicator
// on the track map, and full POI marker refreshes on every store mutation.
package viewsync

import (
	"sync"
	"time"

	"github.com/groundscan/gpr-backend-go/internal/models"
)

// DefaultPositionThrottle bounds how often position updates reach the track
// map under fast pointer movement
const DefaultPositionThrottle = 50 * time.Millisecond

// ViewportFunc applies a viewport to a registered view
type ViewportFunc func(vp models.Viewport)

// PositionFunc moves the track map position indicator
type PositionFunc func(trackIndex int)

// MarkerFunc re-renders all POI markers on a surface
type MarkerFunc func(pois []models.POI)

type view struct {
	apply ViewportFunc
	// applying is true while an externally-driven viewport change is being
	// pushed into this view, so the resulting change event is recognized as
	// an echo and not propagated back out.
	applying bool
}

// Controller is the single coordination point between views
type Controller struct {
	mu          sync.Mutex
	views       map[string]*view
	syncEnabled bool

	positionSubs []PositionFunc
	markerSubs   []MarkerFunc

	throttle    time.Duration
	lastForward time.Time
	now         func() time.Time
}

// NewController creates a controller with viewport sync initially enabled
func NewController() *Controller {
	return &Controller{
		views:       make(map[string]*view),
		syncEnabled: true,
		throttle:    DefaultPositionThrottle,
		now:         time.Now,
	}
}

// RegisterView adds a slice view under id. apply is called to push a
// viewport into the view; the view must report the resulting change back
// through ViewportChanged like any other change.
func (c *Controller) RegisterView(id string, apply ViewportFunc) {
	c.mu.Lock()
	c.views[id] = &view{apply: apply}
	c.mu.Unlock()
}

// SubscribePosition registers a track map position indicator
func (c *Controller) SubscribePosition(fn PositionFunc) {
	c.mu.Lock()
	c.positionSubs = append(c.positionSubs, fn)
	c.mu.Unlock()
}

// SubscribeMarkers registers a surface that renders POI markers
func (c *Controller) SubscribeMarkers(fn MarkerFunc) {
	c.mu.Lock()
	c.markerSubs = append(c.markerSubs, fn)
	c.mu.Unlock()
}

// SetSyncEnabled toggles viewport lock-step between slice views
func (c *Controller) SetSyncEnabled(enabled bool) {
	c.mu.Lock()
	c.syncEnabled = enabled
	c.mu.Unlock()
}

// SyncEnabled reports whether viewport sync is on
func (c *Controller) SyncEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.syncEnabled
}

// ViewportChanged is the change handler every view reports into, whether the
// change came from the user or from a programmatic SetViewport. Echoes of
// propagated changes are absorbed here instead of ping-ponging back.
func (c *Controller) ViewportChanged(id string, vp models.Viewport) {
	c.mu.Lock()
	source, ok := c.views[id]
	if !ok || source.applying || !c.syncEnabled {
		c.mu.Unlock()
		return
	}

	var targets []*view
	for vid, v := range c.views {
		if vid != id {
			targets = append(targets, v)
		}
	}
	for _, v := range targets {
		v.applying = true
	}
	c.mu.Unlock()

	for _, v := range targets {
		v.apply(vp)
	}

	c.mu.Lock()
	for _, v := range targets {
		v.applying = false
	}
	c.mu.Unlock()
}

// PositionChanged forwards a resolved track index to the track map, at most
// once per throttle window. Updates inside the window are dropped, not
// queued; the last applied position stands until the next event outside the
// window.
func (c *Controller) PositionChanged(trackIndex int) {
	c.mu.Lock()
	now := c.now()
	if !c.lastForward.IsZero() && now.Sub(c.lastForward) < c.throttle {
		c.mu.Unlock()
		return
	}
	c.lastForward = now
	subs := make([]PositionFunc, len(c.positionSubs))
	copy(subs, c.positionSubs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(trackIndex)
	}
}

// POIChanged re-renders markers on every subscribed surface. Wire this to
// the POI store's Subscribe so each mutation refreshes all three surfaces.
func (c *Controller) POIChanged(pois []models.POI) {
	c.mu.Lock()
	subs := make([]MarkerFunc, len(c.markerSubs))
	copy(subs, c.markerSubs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn(pois)
	}
}
