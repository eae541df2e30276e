package matrix

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// CopySym copies the upper triangle of the square matrix m into dst.
// It panics if m is not square or its size differs from dst.
func CopySym(dst *mat.SymDense, m mat.Matrix) {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrSquare)
	}

	if r != dst.SymmetricDim() {
		panic(mat.ErrShape)
	}

	for i := 0; i < r; i++ {
		for j := i; j < c; j++ {
			dst.SetSym(i, j, m.At(i, j))
		}
	}
}

// Asymmetry returns the Frobenius norm of m - mᵀ.
// It panics if m is not square.
func Asymmetry(m mat.Matrix) float64 {
	r, c := m.Dims()
	if r != c {
		panic(mat.ErrSquare)
	}

	sum := 0.0
	for i := 0; i < r; i++ {
		for j := i + 1; j < c; j++ {
			d := m.At(i, j) - m.At(j, i)
			sum += 2 * d * d
		}
	}

	return math.Sqrt(sum)
}

// Widen returns a copy of m padded with zero columns up to cols columns.
// It panics if m has more than cols columns.
func Widen(m mat.Matrix, cols int) *mat.Dense {
	r, c := m.Dims()
	if c > cols {
		panic(mat.ErrShape)
	}

	w := mat.NewDense(r, cols, nil)
	w.Slice(0, r, 0, c).(*mat.Dense).Copy(m)

	return w
}

// Block copies n elements of v starting at off into dst.
// dst is resized to length n if it is empty.
func Block(dst, v *mat.VecDense, off, n int) {
	if dst.IsEmpty() {
		dst.ReuseAsVec(n)
	}
	dst.CopyVec(v.SliceVec(off, off+n))
}

// SetBlock overwrites the elements of v starting at off with src.
func SetBlock(v *mat.VecDense, off int, src mat.Vector) {
	v.SliceVec(off, off+src.Len()).(*mat.VecDense).CopyVec(src)
}
