package types

// A Transform places an object in world space by scaling, rotating and then
// translating it. A zero Rotation or Scale is treated as the identity so the
// zero value is a valid transform.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec3
}

// Create a transform that leaves points unchanged.
func IdentTransform() Transform {
	return Transform{
		Rotation: QuatIdent(),
		Scale:    Vec3{1, 1, 1},
	}
}

// Create a transform that only translates.
func Translation(v Vec3) Transform {
	t := IdentTransform()
	t.Translation = v
	return t
}

// Apply the transform to a point.
func (t Transform) Apply(p Vec3) Vec3 {
	return t.Rotation.orIdent().Rotate(p.MulVec(t.scale())).Add(t.Translation)
}

// Generate the matrix M = T * R * S.
func (t Transform) Mat4() Mat4 {
	return Translate4(t.Translation).Mul4(t.Rotation.orIdent().Mat4().Mul4(Scale4(t.scale())))
}

func (t Transform) scale() Vec3 {
	if t.Scale == (Vec3{}) {
		return Vec3{1, 1, 1}
	}
	return t.Scale
}

// A line segment between two points.
type Segment struct {
	A, B Vec3
}
