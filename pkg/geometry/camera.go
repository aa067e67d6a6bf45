package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-recursive-raytracer/pkg/core"
	"github.com/go-gl/mathgl/mgl64"
)

// CameraConfig describes a pinhole camera
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // World up direction, defaults to +Y
	Width  int       // Image width in pixels
	Height int       // Image height in pixels
	VFov   float64   // Vertical field of view in degrees
}

// DefaultCameraConfig places the camera five units back on +Z looking at the origin,
// rendering 1280x720 with a 35° vertical field of view
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center: core.NewVec3(0, 0, 5),
		LookAt: core.NewVec3(0, 0, 0),
		Up:     core.NewVec3(0, 1, 0),
		Width:  1280,
		Height: 720,
		VFov:   35,
	}
}

// MergeCameraConfig returns base with every non-zero field of override applied
func MergeCameraConfig(base, override CameraConfig) CameraConfig {
	result := base
	zero := core.Vec3{}
	if override.Center != zero {
		result.Center = override.Center
	}
	if override.LookAt != zero {
		result.LookAt = override.LookAt
	}
	if override.Up != zero {
		result.Up = override.Up
	}
	if override.Width > 0 {
		result.Width = override.Width
	}
	if override.Height > 0 {
		result.Height = override.Height
	}
	if override.VFov > 0 {
		result.VFov = override.VFov
	}
	return result
}

// Validate checks that the configuration describes a usable camera
func (c CameraConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("camera image size must be positive, got %dx%d", c.Width, c.Height)
	}
	if !(c.VFov > 0 && c.VFov < 180) {
		return fmt.Errorf("camera field of view must be in (0, 180) degrees, got %g", c.VFov)
	}
	if !c.Center.IsFinite() || !c.LookAt.IsFinite() {
		return fmt.Errorf("camera position and target must be finite")
	}
	forward := c.LookAt.Subtract(c.Center)
	if forward.LengthSquared() == 0 {
		return fmt.Errorf("camera look-at target equals its position %v", c.Center)
	}
	if forward.Normalize().Cross(c.up().Normalize()).LengthSquared() < 1e-12 {
		return fmt.Errorf("camera view direction %v is parallel to up %v", forward.Normalize(), c.up())
	}
	return nil
}

func (c CameraConfig) up() core.Vec3 {
	if c.Up == (core.Vec3{}) {
		return core.NewVec3(0, 1, 0)
	}
	return c.Up
}

// Camera generates primary rays. In camera space the camera looks down -Z with +Y up.
type Camera struct {
	config         CameraConfig
	position       core.Vec3
	direction      core.Vec3 // Unit view direction in world space
	screenDistance float64   // Distance to the image plane that spans [-1,1] vertically
	aspectRatio    float64
	worldToLocal   mgl64.Mat3
	localToWorld   mgl64.Mat3
}

// NewCamera creates a camera from a validated configuration
func NewCamera(config CameraConfig) (*Camera, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	eye := toMgl(config.Center)
	view := mgl64.LookAtV(eye, toMgl(config.LookAt), toMgl(config.up()))

	// The view matrix is a rigid transform; its rotation part maps world to camera space
	// and its transpose maps back.
	worldToLocal := view.Mat3()

	return &Camera{
		config:         config,
		position:       config.Center,
		direction:      config.LookAt.Subtract(config.Center).Normalize(),
		screenDistance: 1.0 / math.Tan(mgl64.DegToRad(config.VFov)/2),
		aspectRatio:    float64(config.Width) / float64(config.Height),
		worldToLocal:   worldToLocal,
		localToWorld:   worldToLocal.Transpose(),
	}, nil
}

// GetRay returns the world-space ray through pixel (i, j) at a subpixel offset in [0,1)².
// Row 0 is the top of the image.
func (c *Camera) GetRay(i, j int, offset core.Vec2) core.Ray {
	u := 2*(float64(i)+offset.X)/float64(c.config.Width) - 1
	v := 1 - 2*(float64(j)+offset.Y)/float64(c.config.Height)
	u *= c.aspectRatio

	screenPoint := c.position.Add(c.LocalToWorld(core.NewVec3(u, v, -c.screenDistance)))
	return core.NewRayFromLine(c.position, screenPoint)
}

// LocalToWorld rotates a camera-space vector into world space
func (c *Camera) LocalToWorld(v core.Vec3) core.Vec3 {
	return fromMgl(c.localToWorld.Mul3x1(toMgl(v)))
}

// WorldToLocal rotates a world-space vector into camera space
func (c *Camera) WorldToLocal(v core.Vec3) core.Vec3 {
	return fromMgl(c.worldToLocal.Mul3x1(toMgl(v)))
}

// GetPosition returns the camera position
func (c *Camera) GetPosition() core.Vec3 {
	return c.position
}

// GetCameraForward returns the unit view direction
func (c *Camera) GetCameraForward() core.Vec3 {
	return c.direction
}

// GetScreenDistance returns 1/tan(fov/2)
func (c *Camera) GetScreenDistance() float64 {
	return c.screenDistance
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
