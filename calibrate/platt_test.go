package calibrate

import (
	"testing"
)

func TestFitSigmoid(t *testing.T) {
	// 分数越高越偏正类
	scores := []float64{0.1, 0.2, 0.3, 0.35, 0.6, 0.7, 0.8, 0.9}
	y := []float64{0, 0, 0, 0, 1, 1, 1, 1}

	sig := fitSigmoid(scores, y)

	// 概率在 (0,1) 且随分数单调不减
	prev := -1.0
	for _, f := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := sig.prob(f)
		if p <= 0 || p >= 1 {
			t.Errorf("prob(%v) = %v, want within (0,1)", f, p)
		}
		if p < prev {
			t.Errorf("prob(%v) = %v < prob at lower score %v, want monotone", f, p, prev)
		}
		prev = p
	}

	// 两端有区分度
	if sig.prob(0.9)-sig.prob(0.1) < 0.2 {
		t.Errorf("prob(0.9)=%v prob(0.1)=%v, calibration should separate the classes",
			sig.prob(0.9), sig.prob(0.1))
	}
}

func TestFitSigmoid_AllOneClass(t *testing.T) {
	// 单一类别也要收敛到一个合法的 sigmoid
	scores := []float64{0.2, 0.4, 0.6}
	y := []float64{1, 1, 1}

	sig := fitSigmoid(scores, y)
	p := sig.prob(0.5)
	if p <= 0 || p >= 1 {
		t.Errorf("prob(0.5) = %v, want within (0,1)", p)
	}
	if p < 0.5 {
		t.Errorf("prob(0.5) = %v, all-positive targets should push probability up", p)
	}
}

func TestSigmoid_Overflow(t *testing.T) {
	sig := sigmoid{a: -1, b: 0}
	for _, f := range []float64{-1e6, 1e6} {
		p := sig.prob(f)
		if p < 0 || p > 1 {
			t.Errorf("prob(%v) = %v, want within [0,1]", f, p)
		}
	}
}
