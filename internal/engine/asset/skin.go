package asset

import "hash/fnv"

// SkinHandle identifies a registered skin. Zero means no skin.
type SkinHandle int

// SkinSurface maps one mesh surface name to an override shader.
type SkinSurface struct {
	Name   string
	Hash   uint32
	Shader *Shader
}

// Skin overrides mesh surface shaders by surface name.
type Skin struct {
	Name     string
	Index    int
	Surfaces []SkinSurface
}

// HashName returns the lookup hash for a surface name.
func HashName(name string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	return h.Sum32()
}

// Add appends a surface override.
func (s *Skin) Add(surface string, shader *Shader) {
	s.Surfaces = append(s.Surfaces, SkinSurface{Name: surface, Hash: HashName(surface), Shader: shader})
}

// ShaderFor returns the override shader for a surface name, or nil.
func (s *Skin) ShaderFor(surface string) *Shader {
	hash := HashName(surface)
	for i := range s.Surfaces {
		ss := &s.Surfaces[i]
		if ss.Hash == hash && ss.Name == surface {
			return ss.Shader
		}
	}
	return nil
}
