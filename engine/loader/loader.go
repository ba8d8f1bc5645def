package loader

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"path/filepath"
	"strings"
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/model"
)

// ErrUnsupportedFormat is returned for model files whose extension has no backend.
var ErrUnsupportedFormat = errors.New("unsupported model format")

// LoaderBackendType identifies the model file format backend to use.
type LoaderBackendType int

const (
	// BackendTypeGLTF selects the glTF/GLB loader backend.
	BackendTypeGLTF LoaderBackendType = iota
)

// loader is the implementation of the Loader interface.
type loader struct {
	mu sync.RWMutex

	modelCache map[string]model.Model
	builtins   bool

	backend loaderBackend
}

// Loader imports triangle meshes from model files and caches them by path or name.
// All primitives of a file are merged into one model.Model.
type Loader interface {
	// Load imports a model file, returning the cached model if the path was loaded before.
	//
	// Parameters:
	//   - path: the .gltf or .glb file
	//
	// Returns:
	//   - model.Model: the loaded and cached model
	//   - error: ErrUnsupportedFormat, or an import or validation error
	Load(path string) (model.Model, error)

	// LoadReader imports a model from a reader stream and caches it by name.
	//
	// Parameters:
	//   - name: the cache key and fallback model name
	//   - r: the reader providing model data
	//   - isGLB: true if the reader provides GLB binary data
	//
	// Returns:
	//   - model.Model: the loaded model
	//   - error: error if loading fails
	LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error)

	// Resolve returns a built-in mesh for names like "cube", otherwise loads the named file.
	//
	// Parameters:
	//   - ref: a built-in mesh name or a file path
	//
	// Returns:
	//   - model.Model: the model
	//   - error: error if loading fails
	Resolve(ref string) (model.Model, error)

	// Get retrieves a cached model by key. Returns nil if not found.
	//
	// Parameters:
	//   - name: the cache key to look up
	//
	// Returns:
	//   - model.Model: the cached model or nil
	Get(name string) model.Model

	// Models returns a copy of the model cache.
	//
	// Returns:
	//   - map[string]model.Model: all cached models keyed by name
	Models() map[string]model.Model
}

var _ Loader = &loader{}

// NewLoader creates a new Loader with the specified backend type and options applied.
//
// Parameters:
//   - backendType: the type of loader backend to use (e.g., BackendTypeGLTF)
//   - options: a variadic list of LoaderBuilderOption functions to configure the Loader
//
// Returns:
//   - Loader: a new Loader
func NewLoader(backendType LoaderBackendType, options ...LoaderBuilderOption) Loader {
	l := &loader{
		modelCache: make(map[string]model.Model),
		builtins:   true,
	}

	switch backendType {
	case BackendTypeGLTF:
		l.backend = newGLTFLoaderBackend()
	}

	for _, option := range options {
		option(l)
	}
	return l
}

func (l *loader) Load(path string) (model.Model, error) {
	if cached := l.Get(path); cached != nil {
		return cached, nil
	}

	backend, err := l.resolveBackend(path)
	if err != nil {
		return nil, err
	}

	imported, err := backend.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	m, err := importedToModel(imported)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	common.Logger().Debug("model loaded", "path", path, "vertices", m.VertexCount(), "triangles", m.TriangleCount())
	return l.store(path, m), nil
}

func (l *loader) LoadReader(name string, r io.Reader, isGLB bool) (model.Model, error) {
	if cached := l.Get(name); cached != nil {
		return cached, nil
	}
	if l.backend == nil {
		return nil, ErrUnsupportedFormat
	}

	imported, err := l.backend.LoadReader(name, r, isGLB)
	if err != nil {
		return nil, err
	}

	m, err := importedToModel(imported)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", name, err)
	}
	return l.store(name, m), nil
}

func (l *loader) Resolve(ref string) (model.Model, error) {
	if cached := l.Get(ref); cached != nil {
		return cached, nil
	}
	if l.builtins {
		if m, ok := model.Builtin(ref); ok {
			return l.store(ref, m), nil
		}
	}
	return l.Load(ref)
}

func (l *loader) Get(name string) model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.modelCache[name]
}

func (l *loader) Models() map[string]model.Model {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return maps.Clone(l.modelCache)
}

// store caches m under key unless another goroutine got there first, returning the cached value.
func (l *loader) store(key string, m model.Model) model.Model {
	l.mu.Lock()
	defer l.mu.Unlock()
	if existing, ok := l.modelCache[key]; ok {
		return existing
	}
	l.modelCache[key] = m
	return m
}

// resolveBackend selects a backend by file extension.
func (l *loader) resolveBackend(path string) (loaderBackend, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gltf", ".glb":
		if l.backend != nil {
			return l.backend, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}

// importedToModel merges every imported primitive into one validated model.
func importedToModel(imported *model.ImportedModel) (model.Model, error) {
	return model.NewModel(model.FromImported(imported.Merge())...)
}
