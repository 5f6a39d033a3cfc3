package feature

import (
	"context"
	"testing"

	"github.com/rushteam/attrikit/core"
)

func TestStandardizeNode_Process(t *testing.T) {
	tbl := core.NewTable()
	tbl.SetFloats("EmployeeNumber", []float64{1, 2, 3, 4})
	tbl.SetFloats("Age", []float64{25, 35, 45, 55})
	tbl.SetFloats("MonthlyIncome", []float64{3000, 5000, 7000, 9000})
	tbl.SetStrings("Department", []string{"a", "b", "a", "b"})
	tbl.SetFloats("Retained", []float64{1, 0, 1, 0})

	rctx := &core.RunContext{IDColumn: "EmployeeNumber", TargetColumn: "Retained"}
	node := &StandardizeNode{}
	if _, err := node.Process(context.Background(), rctx, tbl); err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	data := rctx.Artifacts.Data
	if data == nil {
		t.Fatal("Artifacts.Data not set")
	}
	// 标识列、目标列、文本列都不进特征矩阵
	if len(data.Features) != 2 || data.Features[0] != "Age" || data.Features[1] != "MonthlyIncome" {
		t.Errorf("Features = %v, want [Age MonthlyIncome]", data.Features)
	}
	rows, cols := data.X.Dims()
	if rows != 4 || cols != 2 {
		t.Errorf("X dims = %dx%d, want 4x2", rows, cols)
	}
	if rctx.Artifacts.Scaler == nil || len(rctx.Artifacts.Scaler.Columns) != 2 {
		t.Error("Artifacts.Scaler not fitted over feature columns")
	}
	for i, want := range []float64{1, 0, 1, 0} {
		if data.Y[i] != want {
			t.Errorf("Y[%d] = %v, want %v", i, data.Y[i], want)
		}
	}
}

func TestStandardizeNode_MissingTarget(t *testing.T) {
	tbl := core.NewTable()
	tbl.SetFloats("Age", []float64{25, 35})

	node := &StandardizeNode{}
	rctx := &core.RunContext{TargetColumn: "Retained"}
	if _, err := node.Process(context.Background(), rctx, tbl); err == nil {
		t.Error("Process() without target column should fail")
	}
}
