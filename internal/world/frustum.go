package world

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Frustum is the six planes of a camera's view volume, normals pointing in.
type Frustum struct {
	planes [6]Plane // left, right, bottom, top, near, far
}

// Plane is n.p + d = 0 with unit n.
type Plane struct {
	normal   rl.Vector3
	distance float32
}

// ExtractFrustum extracts frustum planes from the camera's view-projection
// matrix (Gribb/Hartmann). aspect is viewport width over height.
func ExtractFrustum(camera rl.Camera3D, aspect, near, far float32) Frustum {
	view := rl.MatrixLookAt(camera.Position, camera.Target, camera.Up)

	var proj rl.Matrix
	if camera.Projection == rl.CameraPerspective {
		proj = rl.MatrixPerspective(camera.Fovy*rl.Deg2rad, aspect, near, far)
	} else {
		halfH := camera.Fovy / 2.0
		halfW := halfH * aspect
		proj = rl.MatrixOrtho(-halfW, halfW, -halfH, halfH, near, far)
	}

	// Combine view and projection: VP = P * V
	vp := rl.MatrixMultiply(view, proj)

	// Rows of VP as (x, y, z, w); each plane is row4 plus or minus another row.
	rows := [4][4]float32{
		{vp.M0, vp.M4, vp.M8, vp.M12},
		{vp.M1, vp.M5, vp.M9, vp.M13},
		{vp.M2, vp.M6, vp.M10, vp.M14},
		{vp.M3, vp.M7, vp.M11, vp.M15},
	}
	var f Frustum
	for i := range f.planes {
		row, sign := rows[i/2], float32(1)
		if i%2 == 1 {
			sign = -1
		}
		f.planes[i] = normalizePlane(Plane{
			normal: rl.Vector3{
				X: rows[3][0] + sign*row[0],
				Y: rows[3][1] + sign*row[1],
				Z: rows[3][2] + sign*row[2],
			},
			distance: rows[3][3] + sign*row[3],
		})
	}
	return f
}

func normalizePlane(p Plane) Plane {
	length := rl.Vector3Length(p.normal)
	if length == 0 {
		return p
	}
	return Plane{
		normal:   rl.Vector3Scale(p.normal, 1.0/length),
		distance: p.distance / length,
	}
}

// ContainsSphere reports whether a sphere is at least partly inside.
func (f *Frustum) ContainsSphere(center rl.Vector3, radius float32) bool {
	for _, p := range f.planes {
		dist := rl.Vector3DotProduct(p.normal, center) + p.distance
		// If sphere is completely behind any plane, it's outside
		if dist < -radius {
			return false
		}
	}
	return true
}

// ContainsPoint reports whether point is inside.
func (f *Frustum) ContainsPoint(point rl.Vector3) bool {
	for _, p := range f.planes {
		dist := rl.Vector3DotProduct(p.normal, point) + p.distance
		if dist < 0 {
			return false
		}
	}
	return true
}
