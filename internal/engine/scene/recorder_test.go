package scene

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/ironsight/pkg/math"
)

type boxFogs struct {
	volume math.Bounds
}

func (f boxFogs) FogForBounds(b math.Bounds) int {
	if f.volume.Overlaps(b) {
		return 1
	}
	return 0
}

func triangle(offset float32) []PolyVert {
	return []PolyVert{
		{Pos: math.Vec3{X: offset, Y: 0, Z: 0}},
		{Pos: math.Vec3{X: offset, Y: 1, Z: 0}},
		{Pos: math.Vec3{X: offset, Y: 0, Z: 1}},
	}
}

func TestAddEntityRejectsBadType(t *testing.T) {
	r := NewRecorder(DefaultLimits())

	err := r.AddEntity(Entity{Type: EntityType(99)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBadEntityType))
	assert.Empty(t, r.Current().Entities)
}

func TestAddEntityDropsPastLimit(t *testing.T) {
	r := NewRecorder(DefaultLimits())

	for i := 0; i < MaxEntities+5; i++ {
		require.NoError(t, r.AddEntity(Entity{Type: EntitySprite}))
	}
	assert.Len(t, r.Current().Entities, MaxEntities)
	assert.Equal(t, 5, r.Drops().Entities)
}

func TestAddLight(t *testing.T) {
	tests := []struct {
		name    string
		dynamic bool
		light   DLight
		want    bool
	}{
		{"normal", true, DLight{Radius: 100, Intensity: 1}, true},
		{"zero radius", true, DLight{Radius: 0, Intensity: 1}, false},
		{"zero intensity", true, DLight{Radius: 100}, false},
		{"disabled", false, DLight{Radius: 100, Intensity: 1}, false},
		{"disabled but forced", false, DLight{Radius: 100, Intensity: 1, Flags: Force}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRecorder(DefaultLimits())
			r.SetDynamicLights(tt.dynamic)
			assert.Equal(t, tt.want, r.AddLight(tt.light))
		})
	}
}

func TestAddLightLimit(t *testing.T) {
	r := NewRecorder(DefaultLimits())
	for i := 0; i < MaxDLights; i++ {
		require.True(t, r.AddLight(DLight{Radius: 10, Intensity: 1}))
	}
	assert.False(t, r.AddLight(DLight{Radius: 10, Intensity: 1}))
	assert.Equal(t, 1, r.Drops().DLights)
}

func TestAddPoly(t *testing.T) {
	r := NewRecorder(Limits{MaxPolys: 2, MaxPolyVerts: 100})
	r.SetFogLocator(boxFogs{volume: math.Bounds{Min: math.Vec3{X: 5, Y: -1, Z: -1}, Max: math.Vec3{X: 10, Y: 2, Z: 2}}})

	assert.False(t, r.AddPoly(0, triangle(0)), "shaderless poly must be dropped")
	require.True(t, r.AddPoly(3, triangle(0)))
	require.True(t, r.AddPoly(3, triangle(6)))
	assert.False(t, r.AddPoly(3, triangle(7)), "poly count limit")

	polys := r.Current().Polys
	require.Len(t, polys, 2)
	assert.Equal(t, 0, polys[0].FogIndex)
	assert.Equal(t, 1, polys[1].FogIndex)
	assert.Equal(t, float32(6), polys[1].Verts[0].Pos.X)
	assert.Equal(t, 1, r.Drops().Polys)
}

func TestAddPolyVertLimit(t *testing.T) {
	r := NewRecorder(Limits{MaxPolys: 10, MaxPolyVerts: 5})

	require.True(t, r.AddPoly(1, triangle(0)))
	assert.False(t, r.AddPoly(1, triangle(1)))

	_, ok := r.AddPolyVerts(triangle(2)[:2])
	assert.True(t, ok)
	_, ok = r.AddPolyVerts(triangle(2)[:1])
	assert.False(t, ok)
}

func TestScenesWithinFrame(t *testing.T) {
	r := NewRecorder(DefaultLimits())

	require.NoError(t, r.AddEntity(Entity{Type: EntityModel}))
	r.AddLight(DLight{Radius: 10, Intensity: 1})
	assert.Len(t, r.Current().Entities, 1)

	r.ClearScene()
	assert.Empty(t, r.Current().Entities)
	assert.Empty(t, r.Current().DLights)

	require.NoError(t, r.AddEntity(Entity{Type: EntitySprite}))
	cur := r.Current()
	require.Len(t, cur.Entities, 1)
	assert.Equal(t, EntitySprite, cur.Entities[0].Type)
	assert.Equal(t, 1, r.FirstEntity())
	assert.Len(t, r.Frame().Entities, 2)

	r.Begin(NewFrame(DefaultLimits()))
	assert.Empty(t, r.Current().Entities)
	assert.Equal(t, 0, r.FirstEntity())
}
