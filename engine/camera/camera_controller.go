package camera

// CameraController owns the camera's positional state (position and look-at target).
// The Camera reads from it to build the view matrix. Orbit and planar controls both act on the
// same state, so a scene can orbit with one set of keys and fly with another.
type CameraController interface {
	orbitCameraController
	planarCameraController

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - x, y, z: world-space camera position
	Position() (x, y, z float32)

	// Target returns the look-at point.
	//
	// Returns:
	//   - x, y, z: world-space target position
	Target() (x, y, z float32)

	// SetTarget sets the look-at point and recomputes position from the orbit coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// Zoom moves the camera toward the target by delta * ZoomSpeed, clamped to the radius bounds.
	// Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount, typically a scroll offset
	Zoom(delta float32)
}

// orbitCameraController rotates the camera around its target using spherical coordinates.
type orbitCameraController interface {
	// Orbit changes azimuth and elevation by the given angles, scaled by OrbitSpeed.
	// Elevation is clamped to its bounds.
	//
	// Parameters:
	//   - dAzimuth: horizontal change in radians before scaling
	//   - dElevation: vertical change in radians before scaling
	Orbit(dAzimuth, dElevation float32)

	// Radius returns the distance from target.
	Radius() float32

	// SetRadius sets the distance from target, clamped to the radius bounds.
	SetRadius(radius float32)

	// Azimuth returns the horizontal angle around the Y axis in radians. Zero places the camera on +Z.
	Azimuth() float32

	// SetAzimuth sets the horizontal angle and recomputes position.
	SetAzimuth(azimuth float32)

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// SetElevation sets the vertical angle, clamped to the elevation bounds.
	SetElevation(elevation float32)

	// OrbitSpeed returns the multiplier applied to Orbit angles.
	OrbitSpeed() float32

	// ZoomSpeed returns the multiplier applied to Zoom deltas.
	ZoomSpeed() float32
}

// planarCameraController translates position and target together along the camera's local axes,
// leaving the orbit angles and radius unchanged.
type planarCameraController interface {
	// PanRight moves along the local right axis. Negative delta moves left.
	//
	// Parameters:
	//   - delta: distance before PanSpeed scaling
	PanRight(delta float32)

	// PanUp moves along the local up axis. Negative delta moves down.
	//
	// Parameters:
	//   - delta: distance before PanSpeed scaling
	PanUp(delta float32)

	// PanForward moves along the viewing direction. Negative delta moves backward.
	//
	// Parameters:
	//   - delta: distance before PanSpeed scaling
	PanForward(delta float32)

	// PanSpeed returns the multiplier applied to pan deltas, in world units per unit delta.
	PanSpeed() float32
}
