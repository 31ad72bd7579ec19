package similarity

import (
	"errors"
	"fmt"
	"math"
)

var ErrEmptyVector = errors.New("empty embedding vector")

// Cosine returns dot(v1,v2)/(|v1||v2|). A zero-magnitude vector yields 0.
func Cosine(v1, v2 []float64) (float64, error) {
	if len(v1) == 0 || len(v2) == 0 {
		return 0, ErrEmptyVector
	}
	if len(v1) != len(v2) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(v1), len(v2))
	}

	var dot, n1, n2 float64
	for i := range v1 {
		dot += v1[i] * v2[i]
		n1 += v1[i] * v1[i]
		n2 += v2[i] * v2[i]
	}
	if n1 == 0 || n2 == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(n1) * math.Sqrt(n2)), nil
}

// Clamp01 maps a similarity into [0,1]; negative similarity counts as none.
func Clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
