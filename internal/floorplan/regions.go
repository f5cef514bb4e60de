package floorplan

// Region is a 4-connected component of booth-like pixels with its bounding
// box and pixel count.
type Region struct {
	MinX, MinY int
	MaxX, MaxY int
	PixelCount int
}

// Width returns the bounding-box width in pixels.
func (r Region) Width() int { return r.MaxX - r.MinX + 1 }

// Height returns the bounding-box height in pixels.
func (r Region) Height() int { return r.MaxY - r.MinY + 1 }

// CenterX returns the bounding-box center x coordinate.
func (r Region) CenterX() float64 { return float64(r.MinX+r.MaxX) / 2 }

// CenterY returns the bounding-box center y coordinate.
func (r Region) CenterY() float64 { return float64(r.MinY+r.MaxY) / 2 }

// FillRatio is pixel count over bounding-box area; 1.0 for a solid rectangle.
func (r Region) FillRatio() float64 {
	area := r.Width() * r.Height()
	if area <= 0 {
		return 0
	}
	return float64(r.PixelCount) / float64(area)
}

// unionFind is a flat union-find over pixel indices. Find is iterative with
// an explicit second compression pass; recursion would risk stack depth on
// large scans.
type unionFind struct {
	parent []int32
	rank   []uint8
}

func newUnionFind(n int) *unionFind {
	uf := &unionFind{
		parent: make([]int32, n),
		rank:   make([]uint8, n),
	}
	for i := range uf.parent {
		uf.parent[i] = int32(i)
	}
	return uf
}

func (uf *unionFind) find(i int32) int32 {
	root := i
	for uf.parent[root] != root {
		root = uf.parent[root]
	}
	for uf.parent[i] != root {
		next := uf.parent[i]
		uf.parent[i] = root
		i = next
	}
	return root
}

func (uf *unionFind) union(a, b int32) {
	ra, rb := uf.find(a), uf.find(b)
	if ra == rb {
		return
	}
	if uf.rank[ra] < uf.rank[rb] {
		ra, rb = rb, ra
	}
	uf.parent[rb] = ra
	if uf.rank[ra] == uf.rank[rb] {
		uf.rank[ra]++
	}
}

// LabelBoothRegions groups contiguous booth-like pixels (4-connectivity) into
// regions. Regions are emitted in raster order of their first pixel, so the
// result is independent of any internal map iteration. A malformed buffer
// yields an empty slice.
func LabelBoothRegions(buf *PixelBuffer) []Region {
	if !buf.Valid() {
		return nil
	}

	w, h := buf.Width, buf.Height
	booth := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b := buf.RGB(x, y)
			booth[y*w+x] = BoothLike(r, g, b)
		}
	}

	uf := newUnionFind(w * h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !booth[i] {
				continue
			}
			if x > 0 && booth[i-1] {
				uf.union(int32(i), int32(i-1))
			}
			if y > 0 && booth[i-w] {
				uf.union(int32(i), int32(i-w))
			}
		}
	}

	// Accumulate per-root stats in first-seen (raster) order.
	index := make(map[int32]int)
	var regions []Region
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := y*w + x
			if !booth[i] {
				continue
			}
			root := uf.find(int32(i))
			ri, ok := index[root]
			if !ok {
				ri = len(regions)
				index[root] = ri
				regions = append(regions, Region{MinX: x, MinY: y, MaxX: x, MaxY: y})
			}
			reg := &regions[ri]
			if x < reg.MinX {
				reg.MinX = x
			}
			if x > reg.MaxX {
				reg.MaxX = x
			}
			if y < reg.MinY {
				reg.MinY = y
			}
			if y > reg.MaxY {
				reg.MaxY = y
			}
			reg.PixelCount++
		}
	}

	return regions
}
