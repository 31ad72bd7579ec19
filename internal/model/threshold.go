package model

import (
	"fmt"
	"math"
)

// ThresholdPolicy maps a level difficulty to its pass threshold:
// max(Floor, Base - difficulty*Step), rounded to two decimals.
type ThresholdPolicy struct {
	Base  float64 `json:"base" yaml:"base"`
	Step  float64 `json:"step" yaml:"step"`
	Floor float64 `json:"floor" yaml:"floor"`
}

// DefaultThresholdPolicy returns the stock authoring policy
func DefaultThresholdPolicy() ThresholdPolicy {
	return ThresholdPolicy{Base: 0.8, Step: 0.1, Floor: 0.3}
}

// Validate rejects policies that are not monotonic decreasing or leave (0,1]
func (p ThresholdPolicy) Validate() error {
	if p.Floor <= 0 || p.Floor > 1 {
		return fmt.Errorf("threshold floor %.2f outside (0,1]", p.Floor)
	}
	if p.Base < p.Floor || p.Base > 1 {
		return fmt.Errorf("threshold base %.2f outside [floor,1]", p.Base)
	}
	if p.Step < 0 {
		return fmt.Errorf("threshold step %.2f must not be negative", p.Step)
	}
	return nil
}

// Threshold returns the pass threshold for a difficulty
func (p ThresholdPolicy) Threshold(difficulty int) float64 {
	t := p.Base - float64(difficulty)*p.Step
	t = math.Round(t*100) / 100
	if t < p.Floor {
		t = p.Floor
	}
	if t > 1 {
		t = 1
	}
	return t
}
