package tune

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	got := Classify([]float64{0.1, 0.5, 0.9}, 0.5)
	want := []float64{0, 1, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Classify()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestMetrics(t *testing.T) {
	tests := []struct {
		name          string
		y, pred       []float64
		wantPrecision float64
		wantRecall    float64
		wantF1        float64
		wantAccuracy  float64
	}{
		{
			name: "perfect",
			y:    []float64{1, 0, 1, 0},
			pred: []float64{1, 0, 1, 0},
			wantPrecision: 1, wantRecall: 1, wantF1: 1, wantAccuracy: 1,
		},
		{
			name: "mixed",
			y:    []float64{1, 1, 0, 0},
			pred: []float64{1, 0, 1, 0},
			// tp=1 fp=1 fn=1
			wantPrecision: 0.5, wantRecall: 0.5, wantF1: 0.5, wantAccuracy: 0.5,
		},
		{
			name: "no positive predictions",
			y:    []float64{1, 1, 0},
			pred: []float64{0, 0, 0},
			wantPrecision: 0, wantRecall: 0, wantF1: 0, wantAccuracy: 1.0 / 3,
		},
		{
			name: "no positive labels",
			y:    []float64{0, 0},
			pred: []float64{1, 1},
			wantPrecision: 0, wantRecall: 0, wantF1: 0, wantAccuracy: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Precision(tt.y, tt.pred); math.Abs(got-tt.wantPrecision) > 1e-12 {
				t.Errorf("Precision() = %v, want %v", got, tt.wantPrecision)
			}
			if got := Recall(tt.y, tt.pred); math.Abs(got-tt.wantRecall) > 1e-12 {
				t.Errorf("Recall() = %v, want %v", got, tt.wantRecall)
			}
			if got := F1(tt.y, tt.pred); math.Abs(got-tt.wantF1) > 1e-12 {
				t.Errorf("F1() = %v, want %v", got, tt.wantF1)
			}
			if got := Accuracy(tt.y, tt.pred); math.Abs(got-tt.wantAccuracy) > 1e-12 {
				t.Errorf("Accuracy() = %v, want %v", got, tt.wantAccuracy)
			}
		})
	}
}
