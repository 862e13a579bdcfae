package tangent

import (
	"math"
)

// SpatialHashGrid is the broadphase index for the world: bodies are binned
// into fixed-size cells by their AABB so overlap candidates can be queried
// without testing every pair.
type SpatialHashGrid struct {
	cellSize float64
	cells    map[uint64][]*Body
}

func NewSpatialHashGrid(cellSize float64) *SpatialHashGrid {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}
	return &SpatialHashGrid{
		cellSize: cellSize,
		cells:    make(map[uint64][]*Body),
	}
}

func (grid *SpatialHashGrid) Clear() {
	clear(grid.cells)
}

func (grid *SpatialHashGrid) Insert(body *Body) {
	aabb := body.Bounds()
	minX, maxX := grid.cellIndex(aabb.Min.X()), grid.cellIndex(aabb.Max.X())
	minY, maxY := grid.cellIndex(aabb.Min.Y()), grid.cellIndex(aabb.Max.Y())

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := grid.hashKey(x, y)
			grid.cells[key] = append(grid.cells[key], body)
		}
	}
}

// QueryAABB returns every inserted body whose cells overlap the given AABB.
// Results are broadphase candidates; callers still need an exact overlap
// test. A body spanning multiple cells is reported once.
func (grid *SpatialHashGrid) QueryAABB(aabb AABB) []*Body {
	minX, maxX := grid.cellIndex(aabb.Min.X()), grid.cellIndex(aabb.Max.X())
	minY, maxY := grid.cellIndex(aabb.Min.Y()), grid.cellIndex(aabb.Max.Y())

	unique := make(map[*Body]struct{})
	var results []*Body

	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			key := grid.hashKey(x, y)
			for _, body := range grid.cells[key] {
				if _, ok := unique[body]; !ok {
					unique[body] = struct{}{}
					results = append(results, body)
				}
			}
		}
	}
	return results
}

func (grid *SpatialHashGrid) cellIndex(pos float64) int {
	return int(math.Floor(pos / grid.cellSize))
}

// Simple hash function for 2D cell coordinates
func (grid *SpatialHashGrid) hashKey(x, y int) uint64 {
	const p1 = 73856093
	const p2 = 19349663
	return uint64(x*p1 ^ y*p2)
}
