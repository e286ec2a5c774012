package covmat_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/spdlab/covmat"
)

// ExampleCovMat_Logm computes a cached matrix logarithm. The second call is a cache hit.
func ExampleCovMat_Logm() {
	c, _ := covmat.FromSlice(2, []float64{
		4, 0,
		0, 1,
	})
	l, err := c.Logm()
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	v, _ := l.At(0, 0)
	fmt.Printf("log(4) = %.4f\n", v)

	again, _ := c.Logm()
	fmt.Println("same value:", again == l)

	// Output:
	// log(4) = 1.3863
	// same value: true
}

// ExampleCovMat_ResetFields forces a recompute on unchanged data.
func ExampleCovMat_ResetFields() {
	c, _ := covmat.Random(10, covmat.WithSeed(1))
	_, _ = c.Expm()
	c.ResetFields()
	_, _ = c.Expm()

	fmt.Println("expm computed:", c.Stats().Computes[covmat.FieldExpm])

	// Output:
	// expm computed: 2
}

// ExampleCovMat_Sub shows the dimension check on subtraction.
func ExampleCovMat_Sub() {
	a, _ := covmat.Random(2)
	b, _ := covmat.Random(3)
	_, err := a.Sub(b)
	fmt.Println(errors.Is(err, covmat.ErrDimensionMismatch))

	// Output:
	// true
}
