package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/Carmen-Shannon/oxy-raster/engine/raster"
)

type cameraImpl struct {
	mu *sync.Mutex

	up [3]float32

	fov    float32
	aspect float32
	near   float32
	far    float32

	width    int
	height   int
	viewport raster.AABB

	viewMatrix           [16]float32
	projectionMatrix     [16]float32
	viewProjectionMatrix [16]float32

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds perspective settings and the output surface size, and computes view/projection
// matrices from an attached CameraController. It is the projection collaborator of the rasterizer:
// it maps camera-local triangles to pixel coordinates and normalized depth.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - x, y, z: up vector components
	Up() (x, y, z float32)

	// Fov returns the vertical field of view in radians.
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	Aspect() float32

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// ScreenDimensions returns the output surface size in pixels.
	//
	// Returns:
	//   - width, height: surface dimensions
	ScreenDimensions() (width, height int)

	// Viewport returns the screen AABB [0, width) x [0, height) that triangle bounds are clipped against.
	//
	// Returns:
	//   - raster.AABB: the viewport box
	Viewport() raster.AABB

	// LocalTransform returns the world to camera-local (view) matrix, column-major.
	//
	// Returns:
	//   - [16]float32: the view matrix
	LocalTransform() [16]float32

	// ProjectionMatrix returns the current 4x4 projection matrix (column-major).
	ProjectionMatrix() [16]float32

	// ViewProjectionMatrix returns the combined view-projection matrix (column-major).
	ViewProjectionMatrix() [16]float32

	// Projection captures the current matrices and surface size as an immutable value
	// that can be shared by concurrent vertex workers without locking.
	//
	// Returns:
	//   - Projection: the captured projection state
	Projection() Projection

	// ProjectTriangle maps a camera-local triangle to pixel coordinates and per-vertex normalized depth.
	//
	// Parameters:
	//   - t: triangle in camera-local space
	//
	// Returns:
	//   - common.Triangle2: vertices in pixels
	//   - [3]float32: depth per vertex, nominally in [0, 1]
	ProjectTriangle(t common.Triangle3) (common.Triangle2, [3]float32)

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// Update reads position/target from the controller and recomputes matrices.
	// Does nothing without a controller.
	Update()

	// SetScreenDimensions records the surface size, recomputing aspect ratio, viewport, and projection.
	// Zero dimensions keep the previous aspect ratio.
	//
	// Parameters:
	//   - width, height: surface dimensions in pixels
	SetScreenDimensions(width, height int)

	// SetUp sets the camera's up vector.
	SetUp(x, y, z float32)

	// SetFov sets the field of view in radians and recomputes matrices.
	SetFov(fov float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	SetFar(far float32)

	// SetController attaches a CameraController to the camera.
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera. Defaults: fov 1.5 rad, near 0.01, far 1000, a 1x1 surface,
// and a controller placed 5 units behind the origin looking at it.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:     &sync.Mutex{},
		up:     [3]float32{0, 1, 0},
		fov:    1.5,
		aspect: 1.0,
		near:   0.01,
		far:    1000.0,
		width:  1,
		height: 1,
	}
	for _, option := range options {
		option(c)
	}
	if c.controller == nil {
		c.controller = NewCameraController()
	}
	c.viewport = raster.Viewport(c.width, c.height)
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() (x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up[0], c.up[1], c.up[2]
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ScreenDimensions() (int, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.width, c.height
}

func (c *cameraImpl) Viewport() raster.AABB {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewport
}

func (c *cameraImpl) LocalTransform() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() [16]float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection()
}

func (c *cameraImpl) ProjectTriangle(t common.Triangle3) (common.Triangle2, [3]float32) {
	p := c.Projection()
	return p.ProjectTriangle(t)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetScreenDimensions(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	width = max(width, 0)
	height = max(height, 0)
	if width == c.width && height == c.height {
		return
	}
	c.width, c.height = width, height
	if width > 0 && height > 0 {
		c.aspect = float32(width) / float32(height)
	}
	c.viewport = raster.Viewport(width, height)
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = [3]float32{x, y, z}
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// projection copies the current state into a Projection. Caller must hold the mutex.
func (c *cameraImpl) projection() Projection {
	return Projection{
		View:       c.viewMatrix,
		Projection: c.projectionMatrix,
		Width:      c.width,
		Height:     c.height,
		Viewport:   c.viewport,
	}
}

// updateMatrices recalculates the view, projection, and view-projection matrices.
// The view matrix is read from the controller when one is attached; otherwise it is left unchanged.
// Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		px, py, pz := c.controller.Position()
		tx, ty, tz := c.controller.Target()
		common.LookAt(c.viewMatrix[:],
			px, py, pz,
			tx, ty, tz,
			c.up[0], c.up[1], c.up[2],
		)
	}

	common.Perspective(c.projectionMatrix[:],
		c.fov, c.aspect, c.near, c.far,
	)

	common.Mul4(c.viewProjectionMatrix[:], c.projectionMatrix[:], c.viewMatrix[:])
}
