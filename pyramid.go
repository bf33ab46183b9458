package normalmap

import (
	"fmt"

	"github.com/gogpu/normalmap/internal/field"
	"github.com/gogpu/normalmap/internal/parallel"
)

// pyramidMinSize is the size both halved dimensions must exceed for
// another pyramid level.
const pyramidMinSize = 3

// composePyramid averages normal estimates over the octaves of lum.
//
// Level 0 is lum itself. Coarser levels are area-halved until a halved
// dimension would be pyramidMinSize or less, or until maxDetail caps the
// level count. Each level's normals are cubic-upsampled to full size and
// all levels are averaged without weights. The result is in the biased
// range and is not renormalized.
//
// Levels are estimated on pool, which may be nil for sequential execution.
// They are summed in level order, so the result does not depend on pool.
func composePyramid(lum *field.Field, strength, maxDetail float64, pool *parallel.WorkerPool) (*field.VectorField, int, error) {
	levels := field.BuildPyramid(lum, pyramidMinSize, pyramidLevels(maxDetail))
	n := levels.NumLevels()
	w, h := lum.Bounds()

	normals := make([]*field.VectorField, n)
	jobs := make([]parallel.Job, n)
	for i := range n {
		jobs[i] = func() error {
			level := levels.Level(i)
			v := estimateNormals(level, strength)
			if i > 0 {
				up, err := v.Resize(w, h, field.InterpCubic)
				if err != nil {
					return fmt.Errorf("pyramid level %d: %w", i, err)
				}
				v = up
			}
			normals[i] = v
			Logger().Debug("normalmap: pyramid level",
				"level", i, "width", level.Width(), "height", level.Height())
			return nil
		}
	}
	if err := pool.Run(jobs); err != nil {
		return nil, 0, err
	}

	sum := normals[0]
	for _, v := range normals[1:] {
		sum = sum.Add(v)
	}
	return sum.Scale(1 / float64(n)), n, nil
}
