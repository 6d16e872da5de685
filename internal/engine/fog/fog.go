// Package fog implements the distance fog state machine: named parameter
// slots, timed transitions between them, and the world's global fog volume
// transition.
package fog

import (
	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/logger"
)

// Slot names a fog parameter set.
type Slot int

const (
	None Slot = iota
	Sky
	PortalView
	HUD
	Map
	Water
	Server
	Current
	Last
	Target
	NumSlots
)

var slotNames = [NumSlots]string{
	"none", "sky", "portalview", "hud", "map", "water", "server", "current", "last", "target",
}

func (s Slot) String() string {
	if s < 0 || s >= NumSlots {
		return "invalid"
	}
	return slotNames[s]
}

// Mode is the fog falloff.
type Mode int

const (
	// Exp fog thickens with Density.
	Exp Mode = iota
	// Linear fog ramps from Start to End.
	Linear
)

// Params is one slot's fog.
type Params struct {
	Registered  bool
	Mode        Mode
	Color       [4]float32
	Start, End  float32
	Density     float32
	ClearScreen bool
	DrawSky     bool

	StartTime  int
	FinishTime int
}

// System holds the slots and any running transition. Time is supplied by
// the caller in milliseconds.
type System struct {
	slots  [NumSlots]Params
	active Slot
	global Global
	log    *zap.Logger
}

// NewSystem returns a system with every slot unregistered.
func NewSystem() *System {
	return &System{log: logger.Named("fog")}
}

// Slot returns a copy of a slot.
func (s *System) Slot(slot Slot) Params {
	return s.slots[slot]
}

// Active returns the slot last switched to, or None.
func (s *System) Active() Slot {
	return s.active
}

// SetSlot stores parameters in a slot. start and end both zero clears it.
// density above 1 selects linear fog, otherwise exponential fog of that
// density.
func (s *System) SetSlot(slot Slot, start, end float32, r, g, b, density float32) {
	if slot <= None || slot >= NumSlots {
		return
	}
	p := &s.slots[slot]
	if start == 0 && end == 0 {
		p.Registered = false
		return
	}

	p.Color = [4]float32{r, g, b, 1}
	p.Start = start
	p.End = end
	if density > 1 {
		p.Mode = Linear
		p.DrawSky = false
		p.ClearScreen = true
		p.Density = 1
	} else {
		p.Mode = Exp
		p.DrawSky = true
		p.ClearScreen = false
		p.Density = density
	}
	p.Registered = true
}

// Switch starts a transition from the current fog to slot over duration
// milliseconds. Unregistered slots are ignored.
func (s *System) Switch(slot Slot, duration, now int) {
	if slot <= None || slot >= NumSlots || !s.slots[slot].Registered {
		s.log.Debug("switch to unregistered fog ignored", zap.Stringer("slot", slot))
		return
	}
	s.active = slot

	if s.slots[Current].Registered {
		s.slots[Last] = s.slots[Current]
	} else {
		s.slots[Last] = s.slots[Map]
	}

	s.slots[Target] = s.slots[slot]
	s.slots[Target].StartTime = now
	s.slots[Target].FinishTime = now + duration
}

// ComputeCurrent advances the transition to now and returns CURRENT.
//
// Blending exponential and linear fog is not attempted: a transition
// between different modes snaps straight to the target.
func (s *System) ComputeCurrent(now int) Params {
	if s.active == None {
		return s.slots[Current]
	}

	last, target := &s.slots[Last], &s.slots[Target]
	cur := &s.slots[Current]

	switch {
	case now >= target.FinishTime:
		*cur = *target
	case last.Mode != target.Mode:
		*cur = *target
		s.log.Debug("fog mode mismatch, snapping to target")
	default:
		t := float32(1)
		if span := target.FinishTime - target.StartTime; span > 0 {
			t = float32(now-target.StartTime) / float32(span)
		}
		t = min(max(t, 0), 1)

		*cur = *target
		cur.Start = lerp(last.Start, target.Start, t)
		cur.End = lerp(last.End, target.End, t)
		cur.Density = lerp(last.Density, target.Density, t)
		for i := range cur.Color {
			cur.Color[i] = lerp(last.Color[i], target.Color[i], t)
		}
		cur.Registered = true
	}
	return *cur
}

// ForView returns the fog a pass should use: the portal view slot for
// portal passes when one is registered, CURRENT otherwise.
func (s *System) ForView(portal bool, now int) Params {
	if portal && s.slots[PortalView].Registered {
		return s.slots[PortalView]
	}
	return s.ComputeCurrent(now)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}
