package interact

import "github.com/Faultbox/wikiwalk/pkg/math"

// Camera is the view the aim ray is cast from.
type Camera struct {
	Position math.Vec3
	Forward  math.Vec3
	FovY     float32 // vertical field of view, radians
	Aspect   float32 // width / height
}

// CameraProvider supplies the current camera each time it is needed.
type CameraProvider interface {
	Camera() Camera
}

// CameraFunc adapts a function to CameraProvider.
type CameraFunc func() Camera

// Camera implements CameraProvider.
func (f CameraFunc) Camera() Camera { return f() }
