package field

import "math"

// Pyramid holds successively halved versions of a field.
//
// Level 0 is the source field (not copied). Each following level is
// floor(w/2) x floor(h/2) of the previous one, produced with area
// averaging. Unlike a full mipmap chain, the pyramid stops early: a level
// is only added while both halved dimensions stay above minSize.
type Pyramid struct {
	levels []*Field
}

// Downsample returns f halved in each dimension (floor) with area
// averaging, so each output sample is the mean of its input block.
func Downsample(f *Field) (*Field, error) {
	w, h := f.Bounds()
	return Resize(f, w/2, h/2, InterpArea)
}

// CanHalve reports whether a w x h field can be halved while keeping both
// dimensions above minSize.
func CanHalve(w, h, minSize int) bool {
	return w/2 > minSize && h/2 > minSize
}

// BuildPyramid creates a pyramid from src. maxLevels caps the total number
// of levels including level 0; zero or negative means no cap.
//
// Returns nil if src is nil.
func BuildPyramid(src *Field, minSize, maxLevels int) *Pyramid {
	if src == nil {
		return nil
	}

	p := &Pyramid{levels: []*Field{src}}
	cur := src
	for maxLevels <= 0 || len(p.levels) < maxLevels {
		w, h := cur.Bounds()
		if !CanHalve(w, h, minSize) {
			break
		}
		next, err := Downsample(cur)
		if err != nil {
			break
		}
		p.levels = append(p.levels, next)
		cur = next
	}
	return p
}

// Level returns the field at level n, or nil if n is out of range.
func (p *Pyramid) Level(n int) *Field {
	if p == nil || n < 0 || n >= len(p.levels) {
		return nil
	}
	return p.levels[n]
}

// NumLevels returns the number of levels including level 0.
// Returns 0 if the pyramid is nil.
func (p *Pyramid) NumLevels() int {
	if p == nil {
		return 0
	}
	return len(p.levels)
}

// MaxExtraLevels is the bound floor(log2(min(w, h) / minSize)) on the
// number of levels a pyramid can add beyond level 0.
func MaxExtraLevels(w, h, minSize int) int {
	m := min(w, h)
	if m <= minSize {
		return 0
	}
	return int(math.Floor(math.Log2(float64(m) / float64(minSize))))
}
