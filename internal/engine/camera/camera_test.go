package camera

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/heightfield-labs/pkg/math"
)

func near(a, b float32) bool {
	return math32.Abs(a-b) < 1e-4
}

func vecNear(a, b math.Vec3) bool {
	return near(a.X, b.X) && near(a.Y, b.Y) && near(a.Z, b.Z)
}

func TestNewFlyCameraLooksAtOrigin(t *testing.T) {
	c := NewFlyCamera()

	if c.Position != (math.Vec3{X: -70, Y: 50, Z: 70}) {
		t.Errorf("position = %v", c.Position)
	}
	if !near(c.Direction.Length(), 1) {
		t.Errorf("direction not normalized: %v", c.Direction)
	}
	if c.Speed != 30 || c.RotationSpeed != 15 {
		t.Errorf("speed/rotation = %v/%v, want 30/15", c.Speed, c.RotationSpeed)
	}

	origin := c.ViewMatrix().TransformPoint(math.Vec3{})
	if !near(origin.X, 0) || !near(origin.Y, 0) || origin.Z >= 0 {
		t.Errorf("origin in view space = %v, want on -Z axis", origin)
	}
}

func TestMove(t *testing.T) {
	tests := []struct {
		name                   string
		forward, right, up, dt float32
		want                   func(c *FlyCamera, start math.Vec3) math.Vec3
	}{
		{
			name: "forward", forward: 1, dt: 0.5,
			want: func(c *FlyCamera, s math.Vec3) math.Vec3 { return s.Add(c.Direction.Scale(15)) },
		},
		{
			name: "backward", forward: -1, dt: 1,
			want: func(c *FlyCamera, s math.Vec3) math.Vec3 { return s.Sub(c.Direction.Scale(30)) },
		},
		{
			name: "strafe", right: 1, dt: 1,
			want: func(c *FlyCamera, s math.Vec3) math.Vec3 { return s.Add(c.Right().Scale(30)) },
		},
		{
			name: "down", up: -1, dt: 2,
			want: func(c *FlyCamera, s math.Vec3) math.Vec3 { return s.Add(math.Vec3{Y: -60}) },
		},
		{
			name: "idle", dt: 1,
			want: func(c *FlyCamera, s math.Vec3) math.Vec3 { return s },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewFlyCamera()
			start := c.Position
			c.Move(tt.forward, tt.right, tt.up, tt.dt)
			if want := tt.want(c, start); !vecNear(c.Position, want) {
				t.Errorf("position = %v, want %v", c.Position, want)
			}
		})
	}
}

func TestRightIsHorizontal(t *testing.T) {
	c := NewFlyCamera()
	r := c.Right()
	if !near(r.Y, 0) || !near(r.Length(), 1) {
		t.Errorf("right = %v", r)
	}
	if !near(r.Dot(c.Direction), 0) {
		t.Errorf("right not perpendicular to direction")
	}
}

func TestHandleDragYaw(t *testing.T) {
	c := NewFlyCamera()
	before := c.Direction

	c.HandleDrag(100, 0, 0.1)

	if !near(c.Direction.Y, before.Y) {
		t.Errorf("horizontal drag changed pitch: %v -> %v", before.Y, c.Direction.Y)
	}
	if vecNear(c.Direction, before) {
		t.Error("drag did not turn the camera")
	}
	if !near(c.Direction.Length(), 1) {
		t.Errorf("direction length = %v", c.Direction.Length())
	}
}

func TestHandleDragPitchClamped(t *testing.T) {
	c := NewFlyCamera()
	for i := 0; i < 100; i++ {
		c.HandleDrag(0, -1000, 0.1)
	}
	if math32.Abs(c.Direction.Dot(math.Up)) > maxPitchCos {
		t.Errorf("direction %v flipped over the pole", c.Direction)
	}
}

func TestProjectionMatrixAspectFallback(t *testing.T) {
	c := NewFlyCamera()
	if c.ProjectionMatrix(0) != c.ProjectionMatrix(1) {
		t.Error("non-positive aspect should fall back to 1")
	}
}
