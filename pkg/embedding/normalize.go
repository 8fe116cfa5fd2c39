package embedding

import (
	"fmt"
	"math"
)

// Normalize forces a vector to the target width: shorter vectors get a
// zero-padded tail, longer vectors are truncated. No magnitude
// renormalization follows — this is a compatibility shim against the
// fixed-width index, not a guarantee that truncation preserves similarity
// quality. Vectors containing NaN or Inf are rejected.
func Normalize(vector []float32, targetDims int) ([]float32, error) {
	if targetDims <= 0 {
		targetDims = TargetDimensions
	}

	for i, v := range vector {
		if math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return nil, fmt.Errorf("non-finite value at dimension %d", i)
		}
	}

	if len(vector) == targetDims {
		return vector, nil
	}

	out := make([]float32, targetDims)
	copy(out, vector) // truncates or leaves a zero tail
	return out, nil
}
