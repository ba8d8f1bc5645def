package scene

import (
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/camera"
	"github.com/Carmen-Shannon/oxy-raster/engine/framebuffer"
	"github.com/Carmen-Shannon/oxy-raster/engine/game_object"
	"github.com/Carmen-Shannon/oxy-raster/engine/input"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
)

// Scene holds an ordered list of GameObjects, the Camera that views them, the input state that
// drives the camera, and the Rasterizer that draws them.
// Insertion order is draw order, which decides depth ties.
// Scenes can be hot-swapped via the Active flag to switch between different views or levels.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// Input returns the input manager read by Update.
	Input() input.Manager

	// Rasterizer returns the rasterizer that owns the scene's depth buffer.
	Rasterizer() raster.Rasterizer

	// Count returns the number of objects in the scene.
	//
	// Returns:
	//   - int: object count
	Count() int

	// Objects returns the objects in draw order.
	//
	// Returns:
	//   - []game_object.GameObject: a copy of the ordered object list
	Objects() []game_object.GameObject

	// Add appends a GameObject to the draw order, assigning an ID when it has none.
	//
	// Panics if the object has no Model.
	//
	// Parameters:
	//   - obj: the GameObject to add
	//
	// Returns:
	//   - uint64: the assigned object ID
	Add(obj game_object.GameObject) uint64

	// Get retrieves a GameObject by its ID.
	// Returns nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Remove removes a GameObject by ID, keeping the order of the rest.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes all objects from the scene.
	Clear()

	// Update applies held input to the camera and advances every object's spin.
	// W/S move forward/back, A/D strafe, Space/LeftControl move up/down, Q/E and the arrow keys orbit,
	// and accumulated scroll zooms. Movement is one unit per second scaled by the controller's speeds.
	//
	// Parameters:
	//   - dt: elapsed time since the last update in seconds
	Update(dt float32)

	// Render clears fb and draws every enabled object into it.
	// Vertices are transformed object-local -> world -> camera-local -> screen on the worker pool,
	// then triangles are rasterized on the calling goroutine in scene order and index order.
	// Concurrent Render calls are serialized.
	//
	// Parameters:
	//   - fb: the color buffer to draw into
	//
	// Returns:
	//   - raster.Stats: counters for the frame
	Render(fb *framebuffer.Framebuffer) raster.Stats

	// LastStats returns the counters of the most recent Render.
	LastStats() raster.Stats
}

type scene struct {
	mu *sync.RWMutex

	name   string
	active bool

	objects  []game_object.GameObject
	registry map[uint64]game_object.GameObject
	nextID   uint64

	cam   camera.Camera
	input input.Manager
	rast  raster.Rasterizer

	// renderMu serializes Render so the depth buffer and the batch slices belong to one frame at a time.
	renderMu  sync.Mutex
	batches   []objectBatch
	lastStats atomic.Pointer[raster.Stats]

	// computePool runs the per-object vertex stage. Workers persist across frames.
	computePool    worker.DynamicWorkerPool
	computeWorkers int
}

// objectBatch is the vertex stage output for one object, reused across frames.
type objectBatch struct {
	screen []common.Vec2
	depth  []float32
	tris   []raster.ScreenTriangle
	culled bool
}

var _ Scene = &scene{}

// NewScene creates a Scene viewed through cam.
// A nil camera gets a default one.
//
// Parameters:
//   - name: the scene identifier
//   - cam: the camera to view the scene through
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	s := &scene{
		mu:             &sync.RWMutex{},
		name:           name,
		cam:            cam,
		registry:       make(map[uint64]game_object.GameObject),
		nextID:         1,
		computeWorkers: max(runtime.NumCPU()-1, 1),
	}
	s.lastStats.Store(&raster.Stats{})

	for _, option := range options {
		option(s)
	}

	if s.cam == nil {
		s.cam = camera.NewCamera()
	}
	if s.input == nil {
		s.input = input.NewManager()
	}
	if s.rast == nil {
		s.rast = raster.NewRasterizer()
	}

	// Initialize the compute pool after options so WithComputeWorkers can override the default.
	s.computePool = worker.NewDynamicWorkerPool(s.computeWorkers, 256, 1*time.Second)
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = name
}

func (s *scene) Active() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) Input() input.Manager {
	return s.input
}

func (s *scene) Rasterizer() raster.Rasterizer {
	return s.rast
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.objects)
}

func (s *scene) Add(obj game_object.GameObject) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(obj)
}

// add registers obj. Caller must hold the write lock.
func (s *scene) add(obj game_object.GameObject) uint64 {
	if obj.Model() == nil {
		panic("scene: cannot Add a GameObject without a Model")
	}
	if obj.ID() == 0 {
		obj.SetID(s.nextID)
		s.nextID++
	}
	if _, exists := s.registry[obj.ID()]; exists {
		common.Logger().Warn("scene: replacing object with duplicate id", "scene", s.name, "id", obj.ID())
		s.removeLocked(obj.ID())
	}
	s.objects = append(s.objects, obj)
	s.registry[obj.ID()] = obj
	return obj.ID()
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.registry[id]
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

func (s *scene) removeLocked(id uint64) {
	if _, exists := s.registry[id]; !exists {
		return
	}
	delete(s.registry, id)
	s.objects = slices.DeleteFunc(s.objects, func(o game_object.GameObject) bool {
		return o.ID() == id
	})
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects = nil
	s.registry = make(map[uint64]game_object.GameObject)
}

func (s *scene) Update(dt float32) {
	s.mu.RLock()
	cam := s.cam
	objects := slices.Clone(s.objects)
	s.mu.RUnlock()

	if cam != nil {
		if ctrl := cam.Controller(); ctrl != nil {
			in := s.input
			if v := in.Axis(common.KeyS, common.KeyW); v != 0 {
				ctrl.PanForward(v * dt)
			}
			if v := in.Axis(common.KeyA, common.KeyD); v != 0 {
				ctrl.PanRight(v * dt)
			}
			if v := in.Axis(common.KeyLeftControl, common.KeySpace); v != 0 {
				ctrl.PanUp(v * dt)
			}
			dAz := in.Axis(common.KeyE, common.KeyQ) + in.Axis(common.KeyRight, common.KeyLeft)
			dEl := in.Axis(common.KeyDown, common.KeyUp)
			if dAz != 0 || dEl != 0 {
				ctrl.Orbit(dAz*dt, dEl*dt)
			}
			if scroll := in.ConsumeScroll(); scroll != 0 {
				ctrl.Zoom(scroll)
			}
		}
		cam.Update()
	}

	for _, obj := range objects {
		if obj.Enabled() {
			obj.Update(dt)
		}
	}
	s.input.EndUpdate()
}

func (s *scene) Render(fb *framebuffer.Framebuffer) raster.Stats {
	s.renderMu.Lock()
	defer s.renderMu.Unlock()

	s.mu.RLock()
	cam := s.cam
	objects := slices.Clone(s.objects)
	s.mu.RUnlock()

	fb.Clear()
	var stats raster.Stats
	fb.Draw(func(pixels []uint32, width, height int) {
		s.rast.Begin(width, height)
		if cam == nil {
			stats = s.rast.End()
			return
		}

		cam.SetScreenDimensions(width, height)
		cam.Update()
		proj := cam.Projection()
		s.projectObjects(objects, proj)

		culled := 0
		for i := range objects {
			if s.batches[i].culled {
				culled++
				continue
			}
			for _, st := range s.batches[i].tris {
				s.rast.DrawTriangle(pixels, st.Tri, st.Depth, proj.Viewport)
			}
		}
		stats = s.rast.End()
		stats.ObjectsCulled = culled
	})

	s.lastStats.Store(&stats)
	return stats
}

func (s *scene) LastStats() raster.Stats {
	return *s.lastStats.Load()
}

// projectObjects fills s.batches[i] for every enabled object on the compute pool.
// Each task writes only its own batch, and the WaitGroup is the per-frame barrier.
func (s *scene) projectObjects(objects []game_object.GameObject, proj camera.Projection) {
	if cap(s.batches) < len(objects) {
		s.batches = append(s.batches[:cap(s.batches)], make([]objectBatch, len(objects)-cap(s.batches))...)
	}
	s.batches = s.batches[:len(objects)]

	var wg sync.WaitGroup
	for i, obj := range objects {
		batch := &s.batches[i]
		batch.tris = batch.tris[:0]
		batch.culled = false
		if !obj.Enabled() || obj.Model() == nil {
			continue
		}

		wg.Add(1)
		s.computePool.SubmitTask(worker.Task{
			ID: i,
			Do: func() (any, error) {
				defer wg.Done()
				projectObject(obj, proj, batch)
				return nil, nil
			},
		})
	}
	wg.Wait()
}

// projectObject runs the vertex stage for one object: each shared vertex is transformed and
// projected once, then index triples pick their three projected vertices.
// An object whose model bounds lie wholly outside the view frustum is marked culled and projects nothing.
// Every pixel of such an object would fail the viewport or depth test anyway.
func projectObject(obj game_object.GameObject, proj camera.Projection, batch *objectBatch) {
	mdl := obj.Model()
	vertices := mdl.Vertices()

	world := obj.Transform()
	var modelView, mvp [16]float32
	common.Mul4(modelView[:], proj.View[:], world[:])
	common.Mul4(mvp[:], proj.Projection[:], modelView[:])

	frustum := common.ExtractFrustumFromMatrix(&mvp)
	if !frustum.IntersectsBox(mdl.Bounds()) {
		batch.culled = true
		return
	}

	batch.screen = slices.Grow(batch.screen[:0], len(vertices))[:len(vertices)]
	batch.depth = slices.Grow(batch.depth[:0], len(vertices))[:len(vertices)]
	for i, v := range vertices {
		local := common.Vec3{X: v[0], Y: v[1], Z: v[2]}.TransformPoint(&modelView)
		batch.screen[i], batch.depth[i] = proj.ProjectVertex(local)
	}

	for _, idx := range mdl.Triangles() {
		batch.tris = append(batch.tris, raster.ScreenTriangle{
			Tri: common.Triangle2{
				V0: batch.screen[idx[0]],
				V1: batch.screen[idx[1]],
				V2: batch.screen[idx[2]],
			},
			Depth: [3]float32{batch.depth[idx[0]], batch.depth[idx[1]], batch.depth[idx[2]]},
		})
	}
}
