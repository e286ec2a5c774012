// Package matrix is the dense, dependency-free reference toolkit of spdlab.
//
// The matrix package provides:
//
//   - Dense, a bounds-checked row-major matrix behind the small Matrix interface.
//   - Generic kernels (Add, Sub, Mul, Transpose, Scale, FrobeniusNorm, AllClose)
//     with a flat-slice fast path for *Dense operands.
//   - Eigen, a cyclic Jacobi eigen-solver for symmetric matrices.
//   - Stateless matrix functions of symmetric matrices: Logm, Expm, Sqrtm,
//     Invsqrtm and Powm. Every call recomputes the decomposition; nothing is
//     cached. These are the "old" function-call style that package covmat
//     replaces, and they serve as an independent reference for it.
//   - LU with partial pivoting, Inverse and Det.
//   - Sample statistics over observation matrices: CenterColumns, Covariance,
//     Correlation.
//
// Jacobi is O(n³) per sweep and typically needs 6-10 sweeps, so the package is
// best for small and medium matrices (n ≤ ~250).
//
// See the examples in this package for usage patterns.
package matrix
