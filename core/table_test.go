package core

import (
	"testing"
)

func newTestTable(t *testing.T) *Table {
	t.Helper()
	tbl := NewTable()
	if err := tbl.SetFloats("id", []float64{1, 2, 3}); err != nil {
		t.Fatalf("SetFloats() error = %v", err)
	}
	if err := tbl.SetFloats("score", []float64{0.3, 0.9, 0.1}); err != nil {
		t.Fatalf("SetFloats() error = %v", err)
	}
	if err := tbl.SetStrings("dept", []string{"sales", "lab", "sales"}); err != nil {
		t.Fatalf("SetStrings() error = %v", err)
	}
	return tbl
}

func TestTable_SetFloats(t *testing.T) {
	tbl := newTestTable(t)

	if got := tbl.NumRows(); got != 3 {
		t.Fatalf("NumRows() = %d, want 3", got)
	}
	if got := tbl.NumCols(); got != 3 {
		t.Fatalf("NumCols() = %d, want 3", got)
	}

	// 同名覆盖，不追加新列
	if err := tbl.SetFloats("score", []float64{1, 1, 1}); err != nil {
		t.Fatalf("SetFloats() overwrite error = %v", err)
	}
	if got := tbl.NumCols(); got != 3 {
		t.Errorf("NumCols() after overwrite = %d, want 3", got)
	}
	vals, err := tbl.Floats("score")
	if err != nil {
		t.Fatalf("Floats() error = %v", err)
	}
	if vals[0] != 1 {
		t.Errorf("score[0] = %v, want 1", vals[0])
	}

	// 长度不符
	if err := tbl.SetFloats("bad", []float64{1}); err == nil {
		t.Error("SetFloats() with wrong length should fail")
	}
}

func TestTable_FloatsKindMismatch(t *testing.T) {
	tbl := newTestTable(t)

	if _, err := tbl.Floats("dept"); !IsInvalidInput(err) {
		t.Errorf("Floats(text column) error = %v, want INVALID_INPUT", err)
	}
	if _, err := tbl.Floats("nope"); !IsNotFound(err) {
		t.Errorf("Floats(missing column) error = %v, want NOT_FOUND", err)
	}
	if _, err := tbl.Strings("score"); !IsInvalidInput(err) {
		t.Errorf("Strings(numeric column) error = %v, want INVALID_INPUT", err)
	}
}

func TestTable_DropColumns(t *testing.T) {
	tbl := newTestTable(t)

	// 不存在的列被静默跳过
	tbl.DropColumns("id", "no_such_column")
	if tbl.HasColumn("id") {
		t.Error("id should be dropped")
	}
	if !tbl.HasColumn("score") {
		t.Error("score should survive")
	}
	if got := tbl.NumCols(); got != 2 {
		t.Errorf("NumCols() = %d, want 2", got)
	}
}

func TestTable_NumericNames(t *testing.T) {
	tbl := newTestTable(t)

	got := tbl.NumericNames("id")
	if len(got) != 1 || got[0] != "score" {
		t.Errorf("NumericNames(exclude id) = %v, want [score]", got)
	}
}

func TestTable_Matrix(t *testing.T) {
	tbl := newTestTable(t)

	x, err := tbl.Matrix([]string{"id", "score"})
	if err != nil {
		t.Fatalf("Matrix() error = %v", err)
	}
	rows, cols := x.Dims()
	if rows != 3 || cols != 2 {
		t.Fatalf("Matrix() dims = %dx%d, want 3x2", rows, cols)
	}
	if x.At(1, 1) != 0.9 {
		t.Errorf("Matrix()[1][1] = %v, want 0.9", x.At(1, 1))
	}

	if _, err := tbl.Matrix([]string{"dept"}); err == nil {
		t.Error("Matrix() over text column should fail")
	}
}

func TestTable_SelectRows(t *testing.T) {
	tbl := newTestTable(t)

	sub := tbl.SelectRows([]int{2, 0})
	if got := sub.NumRows(); got != 2 {
		t.Fatalf("NumRows() = %d, want 2", got)
	}
	ids, _ := sub.Floats("id")
	if ids[0] != 3 || ids[1] != 1 {
		t.Errorf("ids = %v, want [3 1]", ids)
	}
	depts, _ := sub.Strings("dept")
	if depts[0] != "sales" {
		t.Errorf("dept[0] = %q, want sales", depts[0])
	}
}

func TestTable_SortByFloatDesc(t *testing.T) {
	tbl := newTestTable(t)

	if err := tbl.SortByFloatDesc("score"); err != nil {
		t.Fatalf("SortByFloatDesc() error = %v", err)
	}
	scores, _ := tbl.Floats("score")
	ids, _ := tbl.Floats("id")
	wantScores := []float64{0.9, 0.3, 0.1}
	wantIDs := []float64{2, 1, 3}
	for i := range wantScores {
		if scores[i] != wantScores[i] {
			t.Errorf("score[%d] = %v, want %v", i, scores[i], wantScores[i])
		}
		if ids[i] != wantIDs[i] {
			t.Errorf("id[%d] = %v, want %v (columns must move together)", i, ids[i], wantIDs[i])
		}
	}
}

func TestTable_Clone(t *testing.T) {
	tbl := newTestTable(t)
	cp := tbl.Clone()

	vals, _ := cp.Floats("score")
	vals[0] = 99

	orig, _ := tbl.Floats("score")
	if orig[0] == 99 {
		t.Error("Clone() must deep-copy column data")
	}
}
