package sample

import (
	"context"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

func nodeFixture() (*mat.Dense, []float64) {
	rows := 40
	x := mat.NewDense(rows, 2, nil)
	y := make([]float64, rows)
	for i := 0; i < rows; i++ {
		if i < 10 {
			y[i] = 1
			x.Set(i, 0, 10+float64(i))
			x.Set(i, 1, 10-float64(i))
		} else {
			x.Set(i, 0, float64(i)*0.1)
			x.Set(i, 1, float64(i)*0.2)
		}
	}
	return x, y
}

func TestSplitBalanceNode_Process(t *testing.T) {
	x, y := nodeFixture() // 10 正 30 负
	rctx := &core.RunContext{
		Seed:      42,
		Artifacts: core.Artifacts{Data: &core.Dataset{Features: []string{"a", "b"}, X: x, Y: y}},
	}

	// 与纯切分对照，验证测试分区不被重采样触碰
	want := Split(x, y, 0.2, 42)

	node := &SplitBalanceNode{Neighbors: 1}
	if _, err := node.Process(context.Background(), rctx, core.NewTable()); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	split := rctx.Artifacts.Split
	if split == nil {
		t.Fatal("Artifacts.Split not set")
	}

	gotRows, _ := split.TestX.Dims()
	wantRows, _ := want.TestX.Dims()
	if gotRows != wantRows {
		t.Errorf("test rows = %d, want %d (test partition must be untouched)", gotRows, wantRows)
	}
	for i := range want.TestY {
		if split.TestY[i] != want.TestY[i] {
			t.Errorf("TestY[%d] = %v, want %v", i, split.TestY[i], want.TestY[i])
		}
	}

	// 训练分区平衡
	pos, neg := 0, 0
	for _, v := range split.TrainY {
		if v == 1 {
			pos++
		} else {
			neg++
		}
	}
	if pos != neg {
		t.Errorf("train pos=%d neg=%d, want balanced", pos, neg)
	}
}

func TestSplitBalanceNode_RequiresData(t *testing.T) {
	node := &SplitBalanceNode{}
	rctx := &core.RunContext{}
	if _, err := node.Process(context.Background(), rctx, core.NewTable()); !core.IsInvalidInput(err) {
		t.Errorf("Process() without data error = %v, want INVALID_INPUT", err)
	}
}
