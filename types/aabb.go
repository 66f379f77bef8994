package types

import "math"

// An axis-aligned bounding box.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create an inverted box that any Include/Union call will replace.
func EmptyAABB() AABB {
	return AABB{
		Min: Vec3{math.MaxFloat32, math.MaxFloat32, math.MaxFloat32},
		Max: Vec3{-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32},
	}
}

// Create the smallest box enclosing a set of points.
func AABBFromPoints(points []Vec3) AABB {
	box := EmptyAABB()
	for _, p := range points {
		box = box.Include(p)
	}
	return box
}

// Returns false for boxes that do not contain any point.
func (b AABB) IsValid() bool {
	return b.Min[0] <= b.Max[0] && b.Min[1] <= b.Max[1] && b.Min[2] <= b.Max[2]
}

// Enlarge the box to include a point.
func (b AABB) Include(p Vec3) AABB {
	return AABB{Min: MinVec3(b.Min, p), Max: MaxVec3(b.Max, p)}
}

// Returns the box enclosing both boxes.
func (b AABB) Union(o AABB) AABB {
	return AABB{Min: MinVec3(b.Min, o.Min), Max: MaxVec3(b.Max, o.Max)}
}

// Get the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box side lengths.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Get the box half-widths.
func (b AABB) Extents() Vec3 {
	return b.Size().Mul(0.5)
}

// Get the box volume.
func (b AABB) Volume() float32 {
	side := b.Size()
	return side[0] * side[1] * side[2]
}

// Get the box surface area.
func (b AABB) SurfaceArea() float32 {
	side := b.Size()
	return 2 * (side[0]*side[1] + side[1]*side[2] + side[0]*side[2])
}

// Get the index of the longest box side. Ties resolve to the lowest axis.
func (b AABB) LongestAxis() int {
	side := b.Size()
	axis := 0
	if side[1] > side[axis] {
		axis = 1
	}
	if side[2] > side[axis] {
		axis = 2
	}
	return axis
}

// Check whether the point lies inside the box grown by eps.
func (b AABB) Contains(p Vec3, eps float32) bool {
	for axis := 0; axis < 3; axis++ {
		if p[axis] < b.Min[axis]-eps || p[axis] > b.Max[axis]+eps {
			return false
		}
	}
	return true
}

// Check whether o lies inside the box grown by eps.
func (b AABB) ContainsBox(o AABB, eps float32) bool {
	return b.Contains(o.Min, eps) && b.Contains(o.Max, eps)
}

// Get the 8 box corners. Bit 0 of the index selects max x, bit 1 max y and
// bit 2 max z.
func (b AABB) Corners() [8]Vec3 {
	var corners [8]Vec3
	for i := range corners {
		for axis := 0; axis < 3; axis++ {
			if i&(1<<uint(axis)) != 0 {
				corners[i][axis] = b.Max[axis]
			} else {
				corners[i][axis] = b.Min[axis]
			}
		}
	}
	return corners
}

// Transform the box corners and return the box enclosing them.
func (b AABB) Transform(m Mat4) AABB {
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out = out.Include(m.TransformPoint(c))
	}
	return out
}

// Test whether the ray origin + t*dir hits the box for some t in [0, tMax]
// using the slab method.
func (b AABB) Hit(origin, dir Vec3, tMax float32) bool {
	var tMin float32
	for axis := 0; axis < 3; axis++ {
		if abs32(dir[axis]) < floatCmpEpsilon {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return false
			}
			continue
		}

		invDir := 1 / dir[axis]
		t1 := (b.Min[axis] - origin[axis]) * invDir
		t2 := (b.Max[axis] - origin[axis]) * invDir
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = max(tMin, t1)
		tMax = min(tMax, t2)
		if tMin > tMax {
			return false
		}
	}
	return true
}
