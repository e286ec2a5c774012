// SPDX-License-Identifier: MIT

package matrix

import (
	"math"
	"sort"
)

// Eigen computes eigenvalues and eigenvectors of a symmetric matrix via cyclic Jacobi sweeps.
// Implementation:
//   - Stage 1: Validate non-nil, square, finite and symmetric within tol·max(1,‖A‖_F).
//   - Stage 2: Sweep every (p,q), p<q, in row order and annihilate A[p,q] with a Jacobi
//     rotation; accumulate the rotations into V.
//   - Stage 3: Stop when ‖offdiag(A)‖_F ≤ tol·‖A‖_F; sort the pairs by ascending eigenvalue.
//
// Behavior highlights:
//   - Deterministic sweep order and a stable sort produce bit-identical results for identical input.
//   - After a few sweeps, rotations whose A[p,q] is negligible against both diagonal entries are
//     replaced by an exact zero (classic Rutishauser threshold), which avoids useless work.
//
// Inputs:
//   - m: symmetric Matrix.
//   - opts: WithTolerance, WithMaxSweeps.
//
// Returns:
//   - []float64: eigenvalues in ascending order.
//   - *Dense: V whose k-th column is the unit eigenvector for the k-th eigenvalue.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf, ErrAsymmetry,
//     ErrMatrixEigenFailed (not converged after max sweeps). All wrapped with "Eigen".
//
// Complexity:
//   - Time O(sweeps · n^3), Space O(n^2).
//
// AI-Hints:
//   - 6-10 sweeps are typical for double precision; raise WithMaxSweeps only for pathological spectra.
func Eigen(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)

	if err := ValidateSquare(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, err := asDense(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	for _, v := range src.data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, nil, matrixErrorf(opEigen, ErrNaNInf)
		}
	}
	total := frobenius(src.data)
	if err = ValidateSymmetric(src, o.tol*math.Max(1, total)); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	n := src.r
	a := src.Clone().(*Dense).data // working copy, row-major n×n
	V, _ := NewIdentity(n)         // n > 0 after ValidateSquare on a constructed matrix
	v := V.data

	var (
		sweep, p, q, k     int
		app, aqq, apq, g   float64
		theta, t, c, s     float64
		akp, akq, vkp, vkq float64
		converged          bool
	)
	for sweep = 0; sweep < o.maxSweeps; sweep++ {
		if offDiagonal(a, n) <= o.tol*total {
			converged = true
			break
		}
		for p = 0; p < n-1; p++ {
			for q = p + 1; q < n; q++ {
				apq = a[p*n+q]
				if apq == 0 {
					continue
				}
				app = a[p*n+p]
				aqq = a[q*n+q]
				g = 100 * math.Abs(apq)
				if sweep > 3 && math.Abs(app)+g == math.Abs(app) && math.Abs(aqq)+g == math.Abs(aqq) {
					a[p*n+q], a[q*n+p] = 0, 0
					continue
				}

				// θ = (aqq−app)/(2·apq); t = sign(θ)/(|θ|+√(θ²+1)) is the smaller root of t²+2θt−1=0.
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1 / math.Sqrt(t*t+1)
				s = t * c

				for k = 0; k < n; k++ {
					if k == p || k == q {
						continue
					}
					akp = a[k*n+p]
					akq = a[k*n+q]
					a[k*n+p] = c*akp - s*akq
					a[p*n+k] = a[k*n+p]
					a[k*n+q] = s*akp + c*akq
					a[q*n+k] = a[k*n+q]
				}
				a[p*n+p] = app - t*apq
				a[q*n+q] = aqq + t*apq
				a[p*n+q], a[q*n+p] = 0, 0

				for k = 0; k < n; k++ {
					vkp = v[k*n+p]
					vkq = v[k*n+q]
					v[k*n+p] = c*vkp - s*vkq
					v[k*n+q] = s*vkp + c*vkq
				}
			}
		}
	}
	if !converged && offDiagonal(a, n) > o.tol*total {
		return nil, nil, matrixErrorf(opEigen, ErrMatrixEigenFailed)
	}

	// Sort eigenpairs ascending; ties keep sweep order.
	idx := make([]int, n)
	for k = 0; k < n; k++ {
		idx[k] = k
	}
	sort.SliceStable(idx, func(x, y int) bool { return a[idx[x]*n+idx[x]] < a[idx[y]*n+idx[y]] })

	vals := make([]float64, n)
	vecs, _ := NewDense(n, n)
	for k = 0; k < n; k++ {
		vals[k] = a[idx[k]*n+idx[k]]
		for p = 0; p < n; p++ {
			vecs.data[p*n+k] = v[p*n+idx[k]]
		}
	}

	return vals, vecs, nil
}

// offDiagonal returns √(Σ_{i≠j} a[i,j]²) for a row-major n×n buffer.
func offDiagonal(a []float64, n int) float64 {
	var sum float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			sum += 2 * a[i*n+j] * a[i*n+j]
		}
	}

	return math.Sqrt(sum)
}
