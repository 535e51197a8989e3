package viewer

import (
	"math"

	"github.com/philipparndt/stlmeasure/pkg/geometry"
)

const (
	defaultFOV    = math.Pi / 4 // 45 degrees
	defaultAngleX = 0.3
	defaultAngleY = 0.3
	maxPitch      = math.Pi/2 - 0.1
	minDistance   = 0.1
)

// CameraConfig is a suggested view for a loaded model
type CameraConfig struct {
	Position geometry.Vector3
	Target   geometry.Vector3
	Near     float64
	Far      float64
}

// SuggestCameraConfig frames the bounding box from a slightly raised,
// rotated viewpoint at twice the largest model dimension.
func SuggestCameraConfig(bbox geometry.BoundingBox) CameraConfig {
	return ViewConfig(bbox, defaultAngleX, defaultAngleY)
}

// Preset orbit angles (pitch, yaw) for the standard views
var (
	TopView    = [2]float64{maxPitch, 0}
	BottomView = [2]float64{-maxPitch, 0}
	FrontView  = [2]float64{0, 0}
	BackView   = [2]float64{0, math.Pi}
	LeftView   = [2]float64{0, -math.Pi / 2}
	RightView  = [2]float64{0, math.Pi / 2}
)

// ViewConfig frames the bounding box from the given orbit angles
func ViewConfig(bbox geometry.BoundingBox, angleX, angleY float64) CameraConfig {
	center := bbox.Center()
	distance := bbox.MaxDimension() * 2.0
	if distance <= 0 {
		distance = 10
	}

	offset := orbitOffset(distance, clamp(angleX, -maxPitch, maxPitch), angleY)
	near := math.Max(distance*0.01, 0.01)
	far := distance*10 + bbox.Diagonal()

	return CameraConfig{
		Position: center.Add(offset),
		Target:   center,
		Near:     near,
		Far:      far,
	}
}

// Camera represents a 3D orbit camera for viewing the model
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in radians
	Near      float64
	Far       float64
	Distance  float64
	RotationX float64 // Rotation around X axis (vertical)
	RotationY float64 // Rotation around Y axis (horizontal)
}

// NewCamera creates a new camera positioned to view a bounding box
func NewCamera(bbox geometry.BoundingBox) *Camera {
	c := &Camera{
		Up:  geometry.NewVector3(0, 1, 0),
		FOV: defaultFOV,
	}
	c.Apply(SuggestCameraConfig(bbox))
	return c
}

// Apply moves the camera to a suggested configuration
func (c *Camera) Apply(cfg CameraConfig) {
	c.Near = cfg.Near
	c.Far = cfg.Far
	c.SetLookAt(cfg.Position, cfg.Target)
}

// SetLookAt places the camera at position looking at target
func (c *Camera) SetLookAt(position, target geometry.Vector3) {
	offset := position.Sub(target)
	c.Target = target
	c.Distance = math.Max(offset.Length(), minDistance)
	c.RotationX = clamp(math.Asin(offset.Y/c.Distance), -maxPitch, maxPitch)
	c.RotationY = math.Atan2(offset.X, offset.Z)
	c.UpdatePosition()
}

// UpdatePosition updates camera position based on rotation angles
func (c *Camera) UpdatePosition() {
	c.Position = c.Target.Add(orbitOffset(c.Distance, c.RotationX, c.RotationY))
}

// orbitOffset converts spherical coordinates to a position relative to the target
func orbitOffset(distance, angleX, angleY float64) geometry.Vector3 {
	return geometry.NewVector3(
		distance*math.Cos(angleX)*math.Sin(angleY),
		distance*math.Sin(angleX),
		distance*math.Cos(angleX)*math.Cos(angleY),
	)
}

// Rotate rotates the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	// Clamp X rotation to prevent gimbal lock
	c.RotationX = clamp(c.RotationX+deltaX, -maxPitch, maxPitch)
	c.RotationY += deltaY
	c.UpdatePosition()
}

// Zoom changes the camera distance by a relative factor
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(c.Distance*(1.0+delta), minDistance)
	c.UpdatePosition()
}

// Pan moves the target in the view plane. dx and dy are fractions of the
// current distance.
func (c *Camera) Pan(dx, dy float64) {
	_, right, up := c.Basis()
	move := right.Mul(dx * c.Distance).Add(up.Mul(dy * c.Distance))
	c.Target = c.Target.Add(move)
	c.UpdatePosition()
}

// Basis returns the forward, right and up unit vectors of the view
func (c *Camera) Basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project projects a 3D point to 2D screen coordinates. depth is the distance
// along the view direction; it is negative for points behind the camera.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (screenX, screenY, depth float64) {
	forward, right, up := c.Basis()

	// Transform to camera space
	relative := point.Sub(c.Position)
	x := relative.Dot(right)
	y := relative.Dot(up)
	depth = relative.Dot(forward)

	// Perspective projection
	z := math.Max(depth, 1e-6)
	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	screenX = (x/(z*fovScale*aspect))*(width/2) + (width / 2)
	screenY = (-y/(z*fovScale))*(height/2) + (height / 2)

	return screenX, screenY, depth
}

// Unproject converts 2D screen coordinates back to 3D ray
func (c *Camera) Unproject(screenX, screenY, width, height float64) (origin, direction geometry.Vector3) {
	// Convert screen coordinates to normalized device coordinates (-1 to 1)
	ndcX := (2.0 * screenX / width) - 1.0
	ndcY := 1.0 - (2.0 * screenY / height)

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	forward, right, up := c.Basis()

	rayDir := forward.Add(right.Mul(ndcX * fovScale * aspect)).Add(up.Mul(ndcY * fovScale))
	return c.Position, rayDir.Normalize()
}

// Ray returns the pick ray through a screen coordinate
func (c *Camera) Ray(screenX, screenY, width, height float64) geometry.Ray {
	origin, direction := c.Unproject(screenX, screenY, width, height)
	return geometry.Ray{Origin: origin, Direction: direction}
}

// Projector returns an overlay projector for a viewport of the given size
func (c *Camera) Projector(width, height float64) Projector {
	return ProjectorFunc(func(p geometry.Vector3) (float64, float64, bool) {
		x, y, depth := c.Project(p, width, height)
		return x, y, depth > c.Near
	})
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
