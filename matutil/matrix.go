// Package matutil collects small matrix helpers shared by the statespace
// packages.
package matutil

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Ones returns a (m by n) matrix filled with ones
func Ones(m, n int) *mat.Dense {
	return Full(m, n, 1.)
}

// Full returns a (m by n) matrix filled with value
func Full(m, n int, value float64) *mat.Dense {
	data := make([]float64, m*n)
	for index := range data {
		data[index] = value
	}
	return mat.NewDense(m, n, data)
}

// Eye returns the (n by n) identity matrix
func Eye(n int) *mat.Dense {
	return EyeOffset(n, n, 0)
}

// EyeOffset returns a (m by n) matrix with ones on the k-th diagonal.
// k = 0 is the main diagonal, k < 0 shifts it below and k > 0 above.
func EyeOffset(m, n, k int) *mat.Dense {
	res := mat.NewDense(m, n, nil)
	for row := 0; row < m; row++ {
		col := row + k
		if col >= 0 && col < n {
			res.Set(row, col, 1)
		}
	}
	return res
}

// AllZero reports whether every entry of matrix is within tol of zero.
// A nil matrix counts as zero.
func AllZero(matrix mat.Matrix, tol float64) bool {
	if matrix == nil {
		return true
	}
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.Abs(matrix.At(row, col)) > tol {
				return false
			}
		}
	}
	return true
}

// HasNaN checks if there are any NaN in matrix
func HasNaN(matrix mat.Matrix) bool {
	m, n := matrix.Dims()
	for row := 0; row < m; row++ {
		for col := 0; col < n; col++ {
			if math.IsNaN(matrix.At(row, col)) {
				return true
			}
		}
	}
	return false
}

// Sym copies a square matrix into a symmetric matrix using its upper triangle.
func Sym(matrix mat.Matrix) *mat.SymDense {
	n, _ := matrix.Dims()
	res := mat.NewSymDense(n, nil)
	for row := 0; row < n; row++ {
		for col := row; col < n; col++ {
			res.SetSym(row, col, matrix.At(row, col))
		}
	}
	return res
}
