package feature

import (
	"context"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

// rfeFixture 构造 5 个特征的已标准化数据：第 0 列携带标签信号，
// 其余为噪声。
func rfeFixture(t *testing.T) *core.RunContext {
	t.Helper()
	const rows, cols = 40, 5
	rng := rand.New(rand.NewSource(11))

	x := mat.NewDense(rows, cols, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if i%2 == 0 {
			y[i] = 1
		}
		x.Set(i, 0, y[i]*2+rng.Float64()*0.1)
		for j := 1; j < cols; j++ {
			x.Set(i, j, rng.NormFloat64())
		}
	}

	features := []string{"f0", "f1", "f2", "f3", "f4"}
	return &core.RunContext{
		Seed: 11,
		Artifacts: core.Artifacts{
			Data: &core.Dataset{Features: features, X: x, Y: y},
			Split: &core.Split{
				TrainX: x, TrainY: y,
				TestX: mat.DenseCopyOf(x), TestY: append([]float64(nil), y...),
			},
		},
	}
}

func TestSelectNode_Process(t *testing.T) {
	rctx := rfeFixture(t)
	node := &SelectNode{Keep: 2, RankerTrees: 5}

	if _, err := node.Process(context.Background(), rctx, core.NewTable()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	mask := rctx.Artifacts.Mask
	if mask == nil {
		t.Fatal("Artifacts.Mask not set")
	}
	keptNames := mask.Names()
	if len(keptNames) != 2 {
		t.Fatalf("kept %d features, want exactly 2", len(keptNames))
	}
	// 信号列必须活到最后
	if keptNames[0] != "f0" && keptNames[1] != "f0" {
		t.Errorf("kept = %v, informative feature f0 must survive elimination", keptNames)
	}

	data := rctx.Artifacts.Data
	if _, cols := data.X.Dims(); cols != 2 {
		t.Errorf("Data.X cols = %d, want 2", cols)
	}
	if len(data.Features) != 2 {
		t.Errorf("Data.Features = %v, want 2 names", data.Features)
	}
	if _, cols := rctx.Artifacts.Split.TrainX.Dims(); cols != 2 {
		t.Errorf("Split.TrainX cols = %d, want 2", cols)
	}
	if _, cols := rctx.Artifacts.Split.TestX.Dims(); cols != 2 {
		t.Errorf("Split.TestX cols = %d, want 2", cols)
	}
	if rctx.Artifacts.Scaler == nil || len(rctx.Artifacts.Scaler.Columns) != 2 {
		t.Error("scaler must be refit over the kept columns")
	}
}

func TestSelectNode_KeepAll(t *testing.T) {
	rctx := rfeFixture(t)
	node := &SelectNode{Keep: 5, RankerTrees: 5}

	if _, err := node.Process(context.Background(), rctx, core.NewTable()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if got := len(rctx.Artifacts.Mask.Names()); got != 5 {
		t.Errorf("kept %d features, want all 5 when Keep >= feature count", got)
	}
}

func TestSelectNode_RequiresUpstream(t *testing.T) {
	node := &SelectNode{}
	rctx := &core.RunContext{}
	if _, err := node.Process(context.Background(), rctx, core.NewTable()); !core.IsInvalidInput(err) {
		t.Errorf("Process() without upstream artifacts error = %v, want INVALID_INPUT", err)
	}
}
