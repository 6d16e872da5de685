package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/ironsight/pkg/math"
)

func near(a, b, eps float32) bool {
	return math32.Abs(a-b) <= eps
}

func checkVec(t *testing.T, name string, got, want math.Vec3) {
	t.Helper()
	if !near(got.X, want.X, 1e-3) || !near(got.Y, want.Y, 1e-3) || !near(got.Z, want.Z, 1e-3) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func TestFovY(t *testing.T) {
	tests := []struct {
		name          string
		fovX          float32
		width, height int
		want          float32
	}{
		{"4:3", 90, 640, 480, 73.74},
		{"square", 90, 100, 100, 90},
		{"zero width", 90, 0, 480, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FovY(tt.fovX, tt.width, tt.height); !near(got, tt.want, 0.01) {
				t.Errorf("FovY(%v, %d, %d) = %v, want %v", tt.fovX, tt.width, tt.height, got, tt.want)
			}
		})
	}
}

func TestFirstPersonMove(t *testing.T) {
	c := NewFirstPerson(math.Vec3{})
	c.Speed = 100

	c.Move(1, 0, 0, 0.5)
	checkVec(t, "after forward", c.Origin, math.Vec3{X: 50})

	c.Move(0, 1, 0, 1)
	checkVec(t, "after strafe", c.Origin, math.Vec3{X: 50, Y: -100})

	c.Move(0, 0, 1, 0.25)
	checkVec(t, "after rise", c.Origin, math.Vec3{X: 50, Y: -100, Z: 25})
}

func TestFirstPersonLook(t *testing.T) {
	c := NewFirstPerson(math.Vec3{})
	c.Sensitivity = 1

	c.Look(90, 0)
	if !near(c.Yaw, 270, 1e-3) {
		t.Errorf("Yaw = %v, want 270", c.Yaw)
	}
	checkVec(t, "forward", c.Axis()[0], math.Vec3{Y: -1})

	c.Look(0, 1000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}
	if z := c.Axis()[0].Z; z >= -0.99 {
		t.Errorf("forward.Z = %v, want looking almost straight down", z)
	}
}

func TestOrbitLooksAtCenter(t *testing.T) {
	center := math.Vec3{X: 10, Y: 20, Z: 30}
	c := NewOrbit(center)
	c.Distance = 100

	pos := c.Position()
	if d := pos.Distance(center); !near(d, 100, 1e-3) {
		t.Errorf("distance to center = %v, want 100", d)
	}
	if pos.Z <= center.Z {
		t.Errorf("Position().Z = %v, want above the center with positive pitch", pos.Z)
	}

	rd := c.RefDef(90, 640, 480, 1000)
	checkVec(t, "look target", rd.ViewOrigin.MA(100, rd.ViewAxis[0]), center)
	if rd.Time != 1000 || rd.Width != 640 {
		t.Errorf("RefDef time/width = %d/%d, want 1000/640", rd.Time, rd.Width)
	}
}

func TestOrbitClamps(t *testing.T) {
	c := NewOrbit(math.Vec3{})

	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("Pitch = %v, want clamped to %v", c.Pitch, c.MaxPitch)
	}

	c.HandleZoom(1000)
	if c.Distance != c.MinDistance {
		t.Errorf("Distance = %v, want clamped to %v", c.Distance, c.MinDistance)
	}
}

func TestOrbitFitToBounds(t *testing.T) {
	c := NewOrbit(math.Vec3{})
	c.FitToBounds(math.Bounds{Min: math.Vec3{X: -100, Y: -100, Z: 0}, Max: math.Vec3{X: 100, Y: 100, Z: 100}})
	checkVec(t, "Center", c.Center, math.Vec3{Z: 50})
	if !near(c.Distance, 300, 1e-3) {
		t.Errorf("Distance = %v, want 300", c.Distance)
	}

	before := *c
	c.FitToBounds(math.EmptyBounds())
	if *c != before {
		t.Errorf("FitToBounds(empty) changed the camera: %+v, want %+v", *c, before)
	}
}
