package vecmath

import (
	"gonum.org/v1/gonum/mat"
)

// Matrix is the read-only two-dimensional operand of NumericVector.Multiply.
type Matrix interface {
	Rows() int
	Columns() int
	GetFloat(row, col int) float32
}

// IntMatrix is a Matrix with integer cells. Multiplying an integer vector by an
// IntMatrix yields an IntVector.
type IntMatrix interface {
	Matrix
	GetInt(row, col int) int
}

// DenseMatrix is a float Matrix backed by a gonum dense matrix.
type DenseMatrix struct {
	m *mat.Dense
}

var _ Matrix = (*DenseMatrix)(nil)

// NewDenseMatrix returns a rows x cols matrix. data is row-major and is copied;
// a nil data allocates a zero matrix.
func NewDenseMatrix(rows, cols int, data []float32) *DenseMatrix {
	var backing []float64
	if data != nil {
		backing = make([]float64, len(data))
		for i, x := range data {
			backing[i] = float64(x)
		}
	}
	return &DenseMatrix{m: mat.NewDense(rows, cols, backing)}
}

// FromGonum wraps an existing gonum matrix without copying it.
func FromGonum(m mat.Matrix) Matrix {
	return gonumMatrix{m: m}
}

func (d *DenseMatrix) Rows() int {
	r, _ := d.m.Dims()
	return r
}

func (d *DenseMatrix) Columns() int {
	_, c := d.m.Dims()
	return c
}

func (d *DenseMatrix) GetFloat(row, col int) float32 { return float32(d.m.At(row, col)) }

// Set stores value at row, col.
func (d *DenseMatrix) Set(row, col int, value float32) { d.m.Set(row, col, float64(value)) }

// Gonum exposes the backing matrix.
func (d *DenseMatrix) Gonum() *mat.Dense { return d.m }

type gonumMatrix struct {
	m mat.Matrix
}

func (g gonumMatrix) Rows() int {
	r, _ := g.m.Dims()
	return r
}

func (g gonumMatrix) Columns() int {
	_, c := g.m.Dims()
	return c
}

func (g gonumMatrix) GetFloat(row, col int) float32 { return float32(g.m.At(row, col)) }

// DenseIntMatrix is a row-major IntMatrix.
type DenseIntMatrix struct {
	rows, cols int
	data       []int
}

var _ IntMatrix = (*DenseIntMatrix)(nil)

// NewDenseIntMatrix returns a rows x cols matrix over a copy of the row-major data.
// It panics if len(data) != rows*cols, as gonum does.
func NewDenseIntMatrix(rows, cols int, data []int) *DenseIntMatrix {
	if data == nil {
		data = make([]int, rows*cols)
	}
	if len(data) != rows*cols {
		panic(mat.ErrShape)
	}
	return &DenseIntMatrix{rows: rows, cols: cols, data: append([]int(nil), data...)}
}

func (d *DenseIntMatrix) Rows() int                     { return d.rows }
func (d *DenseIntMatrix) Columns() int                  { return d.cols }
func (d *DenseIntMatrix) GetInt(row, col int) int       { return d.data[row*d.cols+col] }
func (d *DenseIntMatrix) GetFloat(row, col int) float32 { return float32(d.GetInt(row, col)) }
