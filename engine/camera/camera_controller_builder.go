package camera

import (
	"github.com/Carmen-Shannon/oxy-raster/common"
	"github.com/chewxy/math32"
)

// elevationLimit keeps the orbit off the poles, where the LookAt basis degenerates.
const elevationLimit = math32.Pi/2 - 1e-3

// CameraControllerOption configures a controller before its first position update.
// Radius and elevation are clamped to their bounds after all options are applied, so option order
// does not matter.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the starting distance from the target.
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.radius = radius }
}

// WithAzimuth sets the starting angle around +Y in radians. Zero places the camera on +Z looking
// toward -Z; Pi places it on -Z.
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.azimuth = azimuth }
}

// WithElevation sets the starting angle above the XZ plane in radians.
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.elevation = elevation }
}

// WithTarget sets the point the camera orbits and looks at.
//
// Parameters:
//   - x, y, z: world-space target
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target = [3]float32{x, y, z}
	}
}

// WithRadiusBounds limits zoom. Swapped bounds are reordered and the minimum never drops below
// a hundredth of a unit.
//
// Parameters:
//   - lo: closest allowed distance
//   - hi: farthest allowed distance
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithRadiusBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if lo > hi {
			lo, hi = hi, lo
		}
		cc.minRadius = math32.Max(lo, 0.01)
		cc.maxRadius = math32.Max(hi, cc.minRadius)
	}
}

// WithElevationBounds limits tilt. Both bounds are kept strictly inside (-Pi/2, Pi/2).
//
// Parameters:
//   - lo: lowest elevation in radians
//   - hi: highest elevation in radians
//
// Returns:
//   - CameraControllerOption: option function to apply
func WithElevationBounds(lo, hi float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		if lo > hi {
			lo, hi = hi, lo
		}
		cc.minElevation = common.Clamp(lo, -elevationLimit, elevationLimit)
		cc.maxElevation = common.Clamp(hi, -elevationLimit, elevationLimit)
	}
}

// WithOrbitSpeed scales the angles passed to Orbit.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.orbitSpeed = speed }
}

// WithZoomSpeed scales the delta passed to Zoom.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.zoomSpeed = speed }
}

// WithPanSpeed scales planar movement, in world units per unit of pan input.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) { cc.panSpeed = speed }
}
