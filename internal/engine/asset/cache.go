package asset

import (
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/Faultbox/ironsight/internal/logger"
)

// Cache resolves handles for the renderer. Implementations are populated by
// the loading path and only read while a frame is being built.
// Shaders a Cache returns never have SortBad.
type Cache interface {
	Shader(h ShaderHandle) *Shader
	SortedShader(sortedIndex int) *Shader
	DefaultShader() *Shader
	Model(h ModelHandle) *Model
	Skin(h SkinHandle) *Skin
}

// DefaultShaderName names the fallback material.
const DefaultShaderName = "<default>"

// MemoryCache is an in-process Cache filled by explicit registration.
type MemoryCache struct {
	shaders []*Shader
	sorted  []*Shader
	byName  map[string]ShaderHandle
	models  []*Model
	skins   []*Skin
	log     *zap.Logger
}

// NewMemoryCache returns a cache holding only the default shader, the bad
// model and the empty skin at handle zero.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		byName: make(map[string]ShaderHandle),
		models: []*Model{{Name: "<bad>", Type: ModelBad}},
		skins:  []*Skin{{Name: "<none>"}},
		log:    logger.Named("asset"),
	}
	c.RegisterShader(Shader{Name: DefaultShaderName, Sort: SortOpaque, IsDefault: true, Color: [4]float32{1, 1, 1, 1}})
	return c
}

// RegisterShader adds a shader and returns its handle. A shader with the
// same name (case-insensitive) is returned instead of being registered
// twice.
func (c *MemoryCache) RegisterShader(s Shader) ShaderHandle {
	key := strings.ToLower(s.Name)
	if h, ok := c.byName[key]; ok {
		return h
	}
	if len(c.shaders) >= MaxShaders {
		c.log.Warn("shader limit reached", zap.String("shader", s.Name))
		return 0
	}
	if s.Sort == SortBad {
		c.log.Debug("shader without sort class drawn as opaque", zap.String("shader", s.Name))
		s.Sort = SortOpaque
	}

	sh := &s
	sh.Index = len(c.shaders)
	c.shaders = append(c.shaders, sh)
	c.byName[key] = ShaderHandle(sh.Index)
	c.resort()
	return ShaderHandle(sh.Index)
}

// resort recomputes SortedIndex so it orders shaders by sort class, keeping
// registration order inside a class.
func (c *MemoryCache) resort() {
	c.sorted = append(c.sorted[:0], c.shaders...)
	sort.SliceStable(c.sorted, func(i, j int) bool {
		return c.sorted[i].Sort < c.sorted[j].Sort
	})
	for i, s := range c.sorted {
		s.SortedIndex = i
	}
}

// FindShader returns the handle registered under name.
func (c *MemoryCache) FindShader(name string) (ShaderHandle, bool) {
	h, ok := c.byName[strings.ToLower(name)]
	return h, ok
}

// RegisterModel adds a model and returns its handle.
func (c *MemoryCache) RegisterModel(m *Model) ModelHandle {
	m.Index = len(c.models)
	c.models = append(c.models, m)
	return ModelHandle(m.Index)
}

// RegisterSkin adds a skin and returns its handle.
func (c *MemoryCache) RegisterSkin(s *Skin) SkinHandle {
	s.Index = len(c.skins)
	c.skins = append(c.skins, s)
	return SkinHandle(s.Index)
}

// Shader resolves h, falling back to the default shader.
func (c *MemoryCache) Shader(h ShaderHandle) *Shader {
	if h < 0 || int(h) >= len(c.shaders) {
		c.log.Warn("shader handle out of range, using default", zap.Int("handle", int(h)))
		return c.shaders[0]
	}
	return c.shaders[h]
}

// SortedShader returns the shader at a sorted index, as decoded from a sort key.
func (c *MemoryCache) SortedShader(sortedIndex int) *Shader {
	if sortedIndex < 0 || sortedIndex >= len(c.sorted) {
		return c.shaders[0]
	}
	return c.sorted[sortedIndex]
}

// DefaultShader returns the fallback material.
func (c *MemoryCache) DefaultShader() *Shader {
	return c.shaders[0]
}

// Model resolves h. Out of range handles return nil.
func (c *MemoryCache) Model(h ModelHandle) *Model {
	if h <= 0 || int(h) >= len(c.models) {
		return nil
	}
	return c.models[h]
}

// Skin resolves h. Zero and out of range handles return nil.
func (c *MemoryCache) Skin(h SkinHandle) *Skin {
	if h <= 0 || int(h) >= len(c.skins) {
		return nil
	}
	return c.skins[h]
}

// NumShaders returns how many shaders are registered.
func (c *MemoryCache) NumShaders() int {
	return len(c.shaders)
}
