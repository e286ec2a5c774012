// Package covmat wraps a real symmetric matrix (a covariance matrix) and
// exposes its matrix functions as memoized, on-demand properties.
//
// 🚀 What is a CovMat?
//
//	A CovMat owns one n×n symmetric matrix plus a set of nullable cache slots:
//		• eigen decomposition (shared by every spectral function)
//		• Logm, Expm, Sqrtm, Invsqrtm, Powm(p), Inverse
//		• Norm (Frobenius), Determinant, Correlation
//
//	Sources: a raw matrix (New, FromDense, FromSlice), Zeros, Random(size), or
//	observations via FromSamples (sample covariance).
//
//	The first access to a slot computes and stores it; later accesses return the
//	stored value without recomputation. ResetFields empties every slot without
//	touching the matrix, so the "first access" cost can be timed repeatedly.
//	In-place mutators (AddInPlace, SubInPlace, ScaleInPlace, Randomize, SetZero)
//	empty the cache as well.
//
// ✨ Guarantees
//
//   - Errors, never panics, on user input: ErrInvalidArgument, ErrDimensionMismatch,
//     ErrNumerical (match with errors.Is).
//   - A failed computation leaves its slot empty; the next access retries.
//   - Safe for concurrent use: a per-value mutex serializes compute-if-absent, so
//     two goroutines never compute the same slot twice.
//   - Derived values (the CovMat returned by Logm, Expm, …) are owned by their
//     parent's cache and are read-only; Clone them before mutating.
//
// Numerics are delegated to gonum (mat.EigenSym, mat.Cholesky, mat.Norm, mat.Det,
// stat.CovarianceMatrix).
//
// Quick example:
//
//	c, _ := covmat.Random(100, covmat.WithSeed(1))
//	l, _ := c.Logm()         // computed
//	l, _ = c.Logm()          // cached
//	c.ResetFields()          // next Logm recomputes
//	d, _ := c.Distance(other) // ‖c − other‖_F
package covmat
