package engine

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Transform struct {
	Position rl.Vector3
	Rotation rl.Vector3 // Euler angles in degrees
	Scale    rl.Vector3
}

// GetQuaternion converts the Euler rotation to a quaternion.
func (t Transform) GetQuaternion() rl.Quaternion {
	return eulerToQuaternion(t.Rotation)
}

// SetQuaternion stores q back as Euler degrees.
func (t *Transform) SetQuaternion(q rl.Quaternion) {
	t.Rotation = rl.Vector3Scale(rl.QuaternionToEuler(rl.QuaternionNormalize(q)), rl.Rad2deg)
}

func eulerToQuaternion(deg rl.Vector3) rl.Quaternion {
	return rl.QuaternionFromEuler(deg.X*rl.Deg2rad, deg.Y*rl.Deg2rad, deg.Z*rl.Deg2rad)
}

// QuaternionAngle returns the angle in degrees between two orientations.
func QuaternionAngle(a, b rl.Quaternion) float32 {
	dot := a.X*b.X + a.Y*b.Y + a.Z*b.Z + a.W*b.W
	if dot < 0 {
		dot = -dot
	}
	if dot > 1 {
		dot = 1
	}
	return 2 * float32(math.Acos(float64(dot))) * rl.Rad2deg
}
