package volume

import (
	"math"

	"github.com/achilleasa/karma/log"
	"github.com/achilleasa/karma/types"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

var logger = log.New("volume")

// The principal frame of a point set: the mean and the eigenvectors of the
// covariance matrix sorted by decreasing eigenvalue. Axes form a right
// handed orthonormal basis.
type principalFrame struct {
	mean types.Vec3
	axes [3]types.Vec3

	// Eigenvalues matching axes.
	variance [3]float64
}

var worldAxes = [3]types.Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}

// Compute the principal frame of a point set. Inputs with fewer than two
// points, or inputs whose covariance cannot be decomposed into a finite
// basis, fall back to the world axes.
func newPrincipalFrame(points []types.Vec3) principalFrame {
	frame := principalFrame{mean: mean(points), axes: worldAxes}
	if len(points) < 2 {
		return frame
	}

	data := make([]float64, 0, 3*len(points))
	for _, p := range points {
		data = append(data, float64(p[0]), float64(p[1]), float64(p[2]))
	}

	var cov mat.SymDense
	stat.CovarianceMatrix(&cov, mat.NewDense(len(points), 3, data), nil)

	var eigen mat.EigenSym
	if !eigen.Factorize(&cov, true) {
		logger.Debug("covariance eigen decomposition failed; using world axes")
		return frame
	}

	// Values are returned in ascending order
	values := eigen.Values(nil)
	var vectors mat.Dense
	eigen.VectorsTo(&vectors)

	var axes [3]types.Vec3
	for i := 0; i < 3; i++ {
		col := 2 - i
		axes[i] = types.Vec3{
			float32(vectors.At(0, col)),
			float32(vectors.At(1, col)),
			float32(vectors.At(2, col)),
		}.Normalize()
		frame.variance[i] = values[col]
	}

	// Canonical signs keep the frame stable across identical inputs; the
	// third axis is rebuilt so the basis is right handed.
	axes[0] = canonicalSign(axes[0])
	axes[1] = canonicalSign(axes[1])
	axes[2] = axes[0].Cross(axes[1]).Normalize()
	axes[1] = axes[2].Cross(axes[0]).Normalize()

	for _, axis := range axes {
		if !axis.IsFinite() || axis.LenSq() < 0.5 {
			logger.Debug("degenerate principal axes; using world axes")
			frame.variance = [3]float64{}
			return frame
		}
	}

	frame.axes = axes
	return frame
}

// Express p in frame coordinates relative to origin.
func (f principalFrame) project(p, origin types.Vec3) types.Vec3 {
	d := p.Sub(origin)
	return types.Vec3{d.Dot(f.axes[0]), d.Dot(f.axes[1]), d.Dot(f.axes[2])}
}

// Map frame coordinates relative to origin back to world space.
func (f principalFrame) unproject(local, origin types.Vec3) types.Vec3 {
	return origin.
		Add(f.axes[0].Mul(local[0])).
		Add(f.axes[1].Mul(local[1])).
		Add(f.axes[2].Mul(local[2]))
}

// Flip v so that its largest magnitude component is positive.
func canonicalSign(v types.Vec3) types.Vec3 {
	a := v.Abs()
	axis := 0
	if a[1] > a[axis] {
		axis = 1
	}
	if a[2] > a[axis] {
		axis = 2
	}
	if v[axis] < 0 {
		return v.Mul(-1)
	}
	return v
}

// Arithmetic mean in double precision.
func mean(points []types.Vec3) types.Vec3 {
	var sum [3]float64
	for _, p := range points {
		sum[0] += float64(p[0])
		sum[1] += float64(p[1])
		sum[2] += float64(p[2])
	}
	n := float64(len(points))
	return types.Vec3{float32(sum[0] / n), float32(sum[1] / n), float32(sum[2] / n)}
}

// Raise every component of v to at least MinExtent.
func clampExtents(v types.Vec3) types.Vec3 {
	for axis := range v {
		if !(v[axis] >= MinExtent) {
			v[axis] = MinExtent
		}
	}
	return v
}

func sqrt32(v float32) float32 {
	return float32(math.Sqrt(float64(v)))
}
