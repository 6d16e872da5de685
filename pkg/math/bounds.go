package math

import "github.com/chewxy/math32"

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds returns an inverted box that any AddPoint call will replace.
func EmptyBounds() Bounds {
	return Bounds{
		Min: Vec3{math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32},
		Max: Vec3{-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32},
	}
}

// IsEmpty reports whether no point has been added.
func (b Bounds) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// AddPoint returns b grown to include p.
func (b Bounds) AddPoint(p Vec3) Bounds {
	return Bounds{
		Min: Vec3{min(b.Min.X, p.X), min(b.Min.Y, p.Y), min(b.Min.Z, p.Z)},
		Max: Vec3{max(b.Max.X, p.X), max(b.Max.Y, p.Y), max(b.Max.Z, p.Z)},
	}
}

// Union returns the smallest box containing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return b.AddPoint(other.Min).AddPoint(other.Max)
}

// Corner returns corner i (0..7); bit 0 selects X, bit 1 Y, bit 2 Z.
func (b Bounds) Corner(i int) Vec3 {
	c := b.Min
	if i&1 != 0 {
		c.X = b.Max.X
	}
	if i&2 != 0 {
		c.Y = b.Max.Y
	}
	if i&4 != 0 {
		c.Z = b.Max.Z
	}
	return c
}

// Center returns the center point of the box.
func (b Bounds) Center() Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Radius returns the distance from the origin to the farthest corner, the
// bounding sphere radius of a model whose bounds are given in local space.
func (b Bounds) Radius() float32 {
	var corner Vec3
	corner.X = max(math32.Abs(b.Min.X), math32.Abs(b.Max.X))
	corner.Y = max(math32.Abs(b.Min.Y), math32.Abs(b.Max.Y))
	corner.Z = max(math32.Abs(b.Min.Z), math32.Abs(b.Max.Z))
	return corner.Length()
}

// Overlaps reports whether two boxes intersect.
func (b Bounds) Overlaps(other Bounds) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// OverlapsSphere reports whether the sphere at center with radius touches
// the box.
func (b Bounds) OverlapsSphere(center Vec3, radius float32) bool {
	var d2 float32
	for i := 0; i < 3; i++ {
		c := center.At(i)
		lo, hi := b.Min.At(i), b.Max.At(i)
		if c < lo {
			d2 += (lo - c) * (lo - c)
		} else if c > hi {
			d2 += (c - hi) * (c - hi)
		}
	}
	return d2 <= radius*radius
}
