package fog

// Global tracks the world's global fog volume: its color and the distance
// at which it becomes opaque, with an optional timed transition.
type Global struct {
	Enabled        bool
	Color          [3]float32
	DepthForOpaque float32

	original   [4]float32
	transStart [4]float32
	transEnd   [4]float32
	startTime  int
	endTime    int
}

// InitGlobal installs a world's global fog. A depth of zero disables it.
func (s *System) InitGlobal(color [3]float32, depthForOpaque float32) {
	s.global = Global{
		Enabled:        depthForOpaque > 0,
		Color:          color,
		DepthForOpaque: depthForOpaque,
		original:       [4]float32{color[0], color[1], color[2], depthForOpaque},
	}
}

// SetGlobal changes the global fog, over duration milliseconds when
// duration is positive. restore returns to the world's original values and
// ignores the color and depth arguments.
func (s *System) SetGlobal(restore bool, duration, now int, r, g, b, depthForOpaque float32) {
	gf := &s.global
	if !gf.Enabled {
		return
	}

	end := [4]float32{r, g, b, depthForOpaque}
	if restore {
		end = gf.original
	}

	if duration > 0 {
		gf.transStart = [4]float32{gf.Color[0], gf.Color[1], gf.Color[2], gf.DepthForOpaque}
		gf.transEnd = end
		gf.startTime = now
		gf.endTime = now + duration
		return
	}

	gf.Color = [3]float32{end[0], end[1], end[2]}
	gf.DepthForOpaque = end[3]
	gf.endTime = 0
}

// ComputeGlobal advances the global fog transition to now.
func (s *System) ComputeGlobal(now int) Global {
	gf := &s.global
	if !gf.Enabled || gf.endTime == 0 {
		return *gf
	}

	if now >= gf.endTime {
		gf.Color = [3]float32{gf.transEnd[0], gf.transEnd[1], gf.transEnd[2]}
		gf.DepthForOpaque = gf.transEnd[3]
		gf.endTime = 0
		return *gf
	}

	t := float32(now-gf.startTime) / float32(gf.endTime-gf.startTime)
	t = min(max(t, 0), 1)
	for i := range gf.Color {
		gf.Color[i] = lerp(gf.transStart[i], gf.transEnd[i], t)
	}
	gf.DepthForOpaque = lerp(gf.transStart[3], gf.transEnd[3], t)
	return *gf
}
