package idx

// Grid is a row-major matrix of 8-bit intensities backed by one flat buffer.
type Grid struct {
	Rows int
	Cols int
	Pix  []byte
}

func NewGrid(rows, cols int) Grid {
	return Grid{Rows: rows, Cols: cols, Pix: make([]byte, rows*cols)}
}

func (g Grid) At(r, c int) byte {
	return g.Pix[r*g.Cols+c]
}

// Row returns a view of row r; it aliases Pix.
func (g Grid) Row(r int) []byte {
	off := r * g.Cols
	return g.Pix[off : off+g.Cols : off+g.Cols]
}

// Sample is one label paired with its pixel grid.
type Sample struct {
	Index uint32
	Label uint8
	Grid  Grid
}
