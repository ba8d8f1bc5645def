package common

// Key codes shared by every input source. Values are GLFW key codes, so the window forwards
// glfw.Key values unchanged and the terminal translates its key names into these.
// Printable keys use their uppercase ASCII value.
const (
	KeySpace = 32
	KeyA     = 65
	KeyC     = 67
	KeyD     = 68
	KeyE     = 69
	KeyQ     = 81
	KeyS     = 83
	KeyW     = 87
)

// Non-printable keys.
const (
	KeyEscape      = 256
	KeyRight       = 262
	KeyLeft        = 263
	KeyDown        = 264
	KeyUp          = 265
	KeyLeftShift   = 340
	KeyLeftControl = 341
)
