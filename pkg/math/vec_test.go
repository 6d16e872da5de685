package math

import (
	"testing"
)

func TestVec2Rotate(t *testing.T) {
	v := Vec2{1, 0}
	got := v.Rotate(3.14159265 / 2)
	if abs(got.X) > 0.0001 || abs(got.Y-1) > 0.0001 {
		t.Errorf("Vec2.Rotate(90) = %v, want (0, 1)", got)
	}
}

func TestVec2Length(t *testing.T) {
	v := Vec2{3, 4}
	got := v.Length()
	want := float32(5)
	if got != want {
		t.Errorf("Vec2.Length() = %v, want %v", got, want)
	}
}

func TestVec3Cross(t *testing.T) {
	x := Vec3{1, 0, 0}
	y := Vec3{0, 1, 0}
	got := x.Cross(y)
	want := Vec3{0, 0, 1}
	if got != want {
		t.Errorf("Vec3.Cross() = %v, want %v", got, want)
	}
}

func TestVec3MA(t *testing.T) {
	got := Vec3{1, 1, 1}.MA(2, Vec3{0, 1, 2})
	want := Vec3{1, 3, 5}
	if got != want {
		t.Errorf("Vec3.MA() = %v, want %v", got, want)
	}
}

func TestVec3Lerp(t *testing.T) {
	a := Vec3{0, 10, -4}
	b := Vec3{10, 20, 4}

	tests := []struct {
		t    float32
		want Vec3
	}{
		{0, a},
		{1, b},
		{0.5, Vec3{5, 15, 0}},
	}
	for _, tt := range tests {
		if got := a.Lerp(b, tt.t); got != tt.want {
			t.Errorf("Lerp(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestPlaneFromPoints(t *testing.T) {
	p, ok := PlaneFromPoints(Vec3{0, 0, 5}, Vec3{0, 1, 5}, Vec3{1, 0, 5})
	if !ok {
		t.Fatal("expected valid plane")
	}
	if p.Normal != (Vec3{0, 0, 1}) || p.Dist != 5 {
		t.Errorf("plane = %+v, want normal (0,0,1) dist 5", p)
	}
	if d := p.Distance(Vec3{3, 3, 8}); d != 3 {
		t.Errorf("Distance = %v, want 3", d)
	}

	if _, ok := PlaneFromPoints(Vec3{}, Vec3{1, 1, 1}, Vec3{2, 2, 2}); ok {
		t.Error("collinear points should not form a plane")
	}
}

func TestBoundsCorners(t *testing.T) {
	b := Bounds{Min: Vec3{-1, -2, -3}, Max: Vec3{1, 2, 3}}
	seen := map[Vec3]bool{}
	for i := 0; i < 8; i++ {
		seen[b.Corner(i)] = true
	}
	if len(seen) != 8 {
		t.Errorf("expected 8 distinct corners, got %d", len(seen))
	}
	if b.Corner(0) != b.Min || b.Corner(7) != b.Max {
		t.Errorf("corner 0/7 = %v/%v, want min/max", b.Corner(0), b.Corner(7))
	}
}

func TestBoundsAddPoint(t *testing.T) {
	b := EmptyBounds()
	if !b.IsEmpty() {
		t.Fatal("EmptyBounds should be empty")
	}
	b = b.AddPoint(Vec3{1, 2, 3}).AddPoint(Vec3{-1, 5, 0})
	want := Bounds{Min: Vec3{-1, 2, 0}, Max: Vec3{1, 5, 3}}
	if b != want {
		t.Errorf("bounds = %+v, want %+v", b, want)
	}
}

func TestBoundsOverlapsSphere(t *testing.T) {
	b := Bounds{Min: Vec3{0, 0, 0}, Max: Vec3{10, 10, 10}}

	tests := []struct {
		name   string
		center Vec3
		radius float32
		want   bool
	}{
		{"inside", Vec3{5, 5, 5}, 1, true},
		{"touching face", Vec3{12, 5, 5}, 2, true},
		{"near face", Vec3{13, 5, 5}, 2, false},
		{"near corner box-overlap only", Vec3{12, 12, 12}, 3, false},
		{"corner", Vec3{12, 12, 12}, 3.5, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.OverlapsSphere(tt.center, tt.radius); got != tt.want {
				t.Errorf("OverlapsSphere = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnglesToAxisIdentity(t *testing.T) {
	a := AnglesToAxis(0, 0, 0)
	id := AxisIdentity()
	for i := 0; i < 3; i++ {
		if a[i].Distance(id[i]) > 0.0001 {
			t.Errorf("axis[%d] = %v, want %v", i, a[i], id[i])
		}
	}
}

func TestAnglesToAxisYaw(t *testing.T) {
	a := AnglesToAxis(0, 90, 0)
	if a[0].Distance(Vec3{0, 1, 0}) > 0.0001 {
		t.Errorf("forward at yaw 90 = %v, want (0,1,0)", a[0])
	}
	if a[1].Distance(Vec3{-1, 0, 0}) > 0.0001 {
		t.Errorf("left at yaw 90 = %v, want (-1,0,0)", a[1])
	}
}

func TestPerpendicularVector(t *testing.T) {
	for _, v := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, Vec3{1, 2, 3}.Normalize()} {
		p := PerpendicularVector(v)
		if abs(p.Dot(v)) > 0.0001 {
			t.Errorf("PerpendicularVector(%v) = %v is not perpendicular", v, p)
		}
		if abs(p.Length()-1) > 0.0001 {
			t.Errorf("PerpendicularVector(%v) length = %v, want 1", v, p.Length())
		}
	}
}

func TestRotatePointAroundVector(t *testing.T) {
	got := RotatePointAroundVector(Vec3{0, 0, 1}, Vec3{1, 0, 0}, 90)
	if got.Distance(Vec3{0, 1, 0}) > 0.0001 {
		t.Errorf("rotate x by 90 around z = %v, want (0,1,0)", got)
	}
}
