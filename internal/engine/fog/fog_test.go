package fog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLinearPair() *System {
	s := NewSystem()
	s.SetSlot(Map, 0, 1000, 0.2, 0.2, 0.2, 2)
	s.SetSlot(Water, 0, 200, 0, 0.2, 0.6, 2)
	return s
}

func TestSetSlotModes(t *testing.T) {
	s := NewSystem()

	s.SetSlot(Map, 10, 500, 1, 0, 0, 2)
	p := s.Slot(Map)
	require.True(t, p.Registered)
	assert.Equal(t, Linear, p.Mode)
	assert.Equal(t, float32(1), p.Density)
	assert.True(t, p.ClearScreen)
	assert.False(t, p.DrawSky)

	s.SetSlot(Sky, 0, 1, 0, 1, 0, 0.0005)
	p = s.Slot(Sky)
	assert.Equal(t, Exp, p.Mode)
	assert.Equal(t, float32(0.0005), p.Density)
	assert.True(t, p.DrawSky)

	s.SetSlot(Map, 0, 0, 0, 0, 0, 0)
	assert.False(t, s.Slot(Map).Registered)
}

func TestSwitchIgnoresUnregistered(t *testing.T) {
	s := NewSystem()
	s.Switch(Water, 1000, 0)
	assert.Equal(t, None, s.Active())
	assert.False(t, s.Slot(Target).Registered)
}

func TestSwitchStartsFromMapWithoutCurrent(t *testing.T) {
	s := newLinearPair()
	s.Switch(Water, 1000, 500)

	assert.Equal(t, s.Slot(Map).Color, s.Slot(Last).Color)
	target := s.Slot(Target)
	assert.Equal(t, 500, target.StartTime)
	assert.Equal(t, 1500, target.FinishTime)
	assert.Equal(t, float32(200), target.End)
}

func TestComputeCurrentInterpolation(t *testing.T) {
	s := newLinearPair()
	s.Switch(Water, 1000, 1000)
	last, target := s.Slot(Last), s.Slot(Target)

	t.Run("start equals last", func(t *testing.T) {
		cur := s.ComputeCurrent(1000)
		assert.Equal(t, last.Color, cur.Color)
		assert.Equal(t, last.End, cur.End)
		assert.Equal(t, last.Start, cur.Start)
	})

	t.Run("midway lerps", func(t *testing.T) {
		cur := s.ComputeCurrent(1250)
		for i := range cur.Color {
			want := last.Color[i] + (target.Color[i]-last.Color[i])*0.25
			assert.InDelta(t, want, cur.Color[i], 1e-6)
		}
		assert.InDelta(t, 800, cur.End, 1e-3)
	})

	t.Run("finish equals target", func(t *testing.T) {
		cur := s.ComputeCurrent(2000)
		assert.Equal(t, target.Color, cur.Color)
		assert.Equal(t, target.End, cur.End)

		cur = s.ComputeCurrent(5000)
		assert.Equal(t, target.Color, cur.Color)
	})
}

func TestComputeCurrentModeMismatchSnaps(t *testing.T) {
	s := NewSystem()
	s.SetSlot(Map, 0, 1000, 0.5, 0.5, 0.5, 2) // linear
	s.SetSlot(Water, 0, 1, 0, 0, 1, 0.002)    // exponential
	s.Switch(Water, 10000, 0)

	cur := s.ComputeCurrent(1)
	assert.Equal(t, Exp, cur.Mode)
	assert.Equal(t, s.Slot(Water).Color, cur.Color)
	assert.Equal(t, float32(0.002), cur.Density)
}

func TestSwitchChainsFromCurrent(t *testing.T) {
	s := newLinearPair()
	s.Switch(Water, 1000, 0)
	mid := s.ComputeCurrent(500)

	s.Switch(Map, 1000, 500)
	assert.Equal(t, mid.Color, s.Slot(Last).Color)
	assert.Equal(t, mid.End, s.Slot(Last).End)
}

func TestForViewUsesPortalSlot(t *testing.T) {
	s := newLinearPair()
	s.Switch(Map, 0, 0)

	assert.Equal(t, s.Slot(Map).Color, s.ForView(true, 10).Color)

	s.SetSlot(PortalView, 0, 300, 1, 1, 1, 2)
	assert.Equal(t, [4]float32{1, 1, 1, 1}, s.ForView(true, 10).Color)
	assert.Equal(t, s.Slot(Map).Color, s.ForView(false, 10).Color)
}

func TestGlobalFogTransition(t *testing.T) {
	s := NewSystem()
	s.InitGlobal([3]float32{0.5, 0.5, 0.5}, 4000)

	s.SetGlobal(false, 1000, 0, 1, 0, 0, 2000)
	g := s.ComputeGlobal(500)
	assert.InDelta(t, 0.75, g.Color[0], 1e-6)
	assert.InDelta(t, 0.25, g.Color[1], 1e-6)
	assert.InDelta(t, 3000, g.DepthForOpaque, 1e-3)

	g = s.ComputeGlobal(1000)
	assert.Equal(t, [3]float32{1, 0, 0}, g.Color)
	assert.Equal(t, float32(2000), g.DepthForOpaque)

	s.SetGlobal(true, 0, 2000, 0, 0, 0, 0)
	g = s.ComputeGlobal(2000)
	assert.Equal(t, [3]float32{0.5, 0.5, 0.5}, g.Color)
	assert.Equal(t, float32(4000), g.DepthForOpaque)
}

func TestGlobalFogDisabled(t *testing.T) {
	s := NewSystem()
	s.SetGlobal(false, 0, 0, 1, 1, 1, 100)
	assert.False(t, s.ComputeGlobal(0).Enabled)
}
