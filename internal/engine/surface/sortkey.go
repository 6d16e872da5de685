package surface

import (
	"cmp"
	"slices"
)

// Sort key layout, least significant bit first:
//
//	bit  0      dlight
//	bit  1      front face
//	bits 2..6   fog volume
//	bits 7..17  entity
//	bits 18..31 shader sorted index
const (
	dlightShift    = 0
	frontFaceShift = 1
	fogShift       = 2
	fogBits        = 5
	entityShift    = 7
	entityBits     = 11
	shaderShift    = 18
	shaderBits     = 14
)

const (
	// WorldEntity is the entity number of world geometry.
	WorldEntity = 1<<entityBits - 1
	// MaxFogs is the number of fog volumes a key can address.
	MaxFogs = 1 << fogBits
)

// DrawSurf is a surface with its sort key.
type DrawSurf struct {
	Surface Surface
	Key     uint32
}

// Key packs the batching state of a surface into a sortable integer.
func Key(sortedShader, entity, fog int, frontFace, dlight bool) uint32 {
	k := uint32(sortedShader)&(1<<shaderBits-1)<<shaderShift |
		uint32(entity)&(1<<entityBits-1)<<entityShift |
		uint32(fog)&(1<<fogBits-1)<<fogShift
	if frontFace {
		k |= 1 << frontFaceShift
	}
	if dlight {
		k |= 1 << dlightShift
	}
	return k
}

// Decompose unpacks a sort key.
func Decompose(key uint32) (sortedShader, entity, fog int, frontFace, dlight bool) {
	sortedShader = int(key >> shaderShift & (1<<shaderBits - 1))
	entity = int(key >> entityShift & (1<<entityBits - 1))
	fog = int(key >> fogShift & (1<<fogBits - 1))
	frontFace = key>>frontFaceShift&1 != 0
	dlight = key>>dlightShift&1 != 0
	return
}

// Sort orders draw surfaces by ascending key.
func Sort(ds []DrawSurf) {
	slices.SortStableFunc(ds, func(a, b DrawSurf) int {
		return cmp.Compare(a.Key, b.Key)
	})
}
