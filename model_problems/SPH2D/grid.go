package SPH2D

import "math"

/*
	Grid is the uniform-cell spatial index used to accelerate neighbor search.
	Cells are CellSize (= 2h) on a side, so the 3x3 Moore neighborhood of a
	particle's cell is guaranteed to cover the full kernel support radius 2h.
	The grid is rebuilt from scratch every force evaluation - positions move
	continuously and there is no incremental update path.
*/
type Grid struct {
	NCellsX, NCellsY int
	CellSize         float64
	DomainMin        [2]float64
	CellOffsets      []int // Prefix sums of per-cell counts, length NCells()+1
	SortedIndices    []int // Particle indices grouped by cell id
}

func (g *Grid) NCells() int {
	return g.NCellsX * g.NCellsY
}

// CellCoords clamps into the valid range so that ghost particles sitting on
// or slightly outside the nominal domain still land in an edge cell.
func (g *Grid) CellCoords(pos [2]float64) (ix, iy int) {
	ix = int((pos[0] - g.DomainMin[0]) / g.CellSize)
	iy = int((pos[1] - g.DomainMin[1]) / g.CellSize)
	if ix < 0 {
		ix = 0
	} else if ix > g.NCellsX-1 {
		ix = g.NCellsX - 1
	}
	if iy < 0 {
		iy = 0
	} else if iy > g.NCellsY-1 {
		iy = g.NCellsY - 1
	}
	return
}

func (g *Grid) CellID(pos [2]float64) (id int) {
	ix, iy := g.CellCoords(pos)
	id = ix + iy*g.NCellsX
	return
}

// BuildGrid bins the given positions (real particles plus ghosts) into cells
// using a stable counting sort by cell id. Every index appears in exactly one
// bucket and CellOffsets[NCells()] equals len(positions).
func BuildGrid(positions [][2]float64, domainMin, domainMax [2]float64, cellSize float64) (g *Grid) {
	g = &Grid{
		CellSize:  cellSize,
		DomainMin: domainMin,
		NCellsX:   int(math.Ceil((domainMax[0]-domainMin[0])/cellSize)) + 1,
		NCellsY:   int(math.Ceil((domainMax[1]-domainMin[1])/cellSize)) + 1,
	}
	var (
		n      = len(positions)
		nCells = g.NCells()
	)
	cellIDs := make([]int, n)
	g.CellOffsets = make([]int, nCells+1)
	g.SortedIndices = make([]int, n)
	for i, pos := range positions {
		cellIDs[i] = g.CellID(pos)
		g.CellOffsets[cellIDs[i]+1]++
	}
	for c := 0; c < nCells; c++ {
		g.CellOffsets[c+1] += g.CellOffsets[c]
	}
	cursor := make([]int, nCells)
	for i := 0; i < n; i++ {
		c := cellIDs[i]
		g.SortedIndices[g.CellOffsets[c]+cursor[c]] = i
		cursor[c]++
	}
	return
}
