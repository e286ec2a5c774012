// Package spdlab is a small laboratory for symmetric positive (semi-)definite
// matrices: covariance matrices whose matrix functions are computed on demand
// and memoized.
//
// What's inside:
//
//	covmat/              CovMat: a symmetric matrix with cached Logm, Expm, Sqrtm,
//	                       Invsqrtm, Powm, Inverse, Norm, Determinant, Correlation;
//	                       arithmetic, sample covariance, explicit ResetFields
//	matrix/              stateless reference kernels: Dense, Jacobi eigen solver,
//	                       spectral matrix functions, LU, sample statistics
//	internal/bench       timing harness: reference functions vs. CovMat recompute
//	internal/logging     zap logger construction
//	internal/metrics     Prometheus cache and benchmark instrumentation
//	cmd/covbench         CLI around internal/bench (COVBENCH_* environment)
//
// Quick example:
//
//	c, _ := covmat.Random(100)
//	l, _ := c.Logm() // computed
//	l, _ = c.Logm()  // cached
//	c.ResetFields()  // next access recomputes
//
//	go get github.com/katalvlaran/spdlab
package spdlab
