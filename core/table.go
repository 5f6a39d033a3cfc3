package core

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// ColumnKind 标记列的数据类型：数值列参与建模，文本列只随表透传。
type ColumnKind int

const (
	ColumnNumeric ColumnKind = iota
	ColumnText
)

// Column 是 Table 中的一列。Kind 决定 Floats / Strings 哪个有效。
type Column struct {
	Name    string
	Kind    ColumnKind
	Floats  []float64
	Strings []string
}

// Len 返回列的行数。
func (c *Column) Len() int {
	if c.Kind == ColumnNumeric {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Table 是批式管道中流转的统一数据结构：带列名的有序列集合。
// 不变式：所有列行数相同；列名唯一；列序即导出顺序。
type Table struct {
	cols  []*Column
	index map[string]int
}

func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows 返回行数（空表为 0）。
func (t *Table) NumRows() int {
	if len(t.cols) == 0 {
		return 0
	}
	return t.cols[0].Len()
}

func (t *Table) NumCols() int { return len(t.cols) }

// ColumnNames 按列序返回所有列名。
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Column 按名取列。
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// Floats 取数值列的值。列不存在或为文本列时返回领域错误。
func (t *Table) Floats(name string) ([]float64, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, NewDomainError(ModuleDataset, ErrorCodeNotFound, fmt.Sprintf("column %q not found", name))
	}
	if c.Kind != ColumnNumeric {
		return nil, NewDomainError(ModuleDataset, ErrorCodeInvalidInput, fmt.Sprintf("column %q is not numeric", name))
	}
	return c.Floats, nil
}

// Strings 取文本列的值。
func (t *Table) Strings(name string) ([]string, error) {
	c, ok := t.Column(name)
	if !ok {
		return nil, NewDomainError(ModuleDataset, ErrorCodeNotFound, fmt.Sprintf("column %q not found", name))
	}
	if c.Kind != ColumnText {
		return nil, NewDomainError(ModuleDataset, ErrorCodeInvalidInput, fmt.Sprintf("column %q is not text", name))
	}
	return c.Strings, nil
}

// SetFloats 写入数值列：同名列被整列覆盖，新列追加到末尾。
// 非空表上长度必须与现有行数一致。
func (t *Table) SetFloats(name string, vals []float64) error {
	if err := t.checkLen(len(vals)); err != nil {
		return err
	}
	col := &Column{Name: name, Kind: ColumnNumeric, Floats: vals}
	if i, ok := t.index[name]; ok {
		t.cols[i] = col
		return nil
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, col)
	return nil
}

// SetStrings 写入文本列，语义同 SetFloats。
func (t *Table) SetStrings(name string, vals []string) error {
	if err := t.checkLen(len(vals)); err != nil {
		return err
	}
	col := &Column{Name: name, Kind: ColumnText, Strings: vals}
	if i, ok := t.index[name]; ok {
		t.cols[i] = col
		return nil
	}
	t.index[name] = len(t.cols)
	t.cols = append(t.cols, col)
	return nil
}

func (t *Table) checkLen(n int) error {
	if len(t.cols) > 0 && n != t.NumRows() {
		return NewDomainError(ModuleDataset, ErrorCodeInvalidInput,
			fmt.Sprintf("column length %d does not match table rows %d", n, t.NumRows()))
	}
	return nil
}

// DropColumns 删除指定列；不存在的列名被静默跳过。
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := make([]*Column, 0, len(t.cols))
	for _, c := range t.cols {
		if !drop[c.Name] {
			kept = append(kept, c)
		}
	}
	t.cols = kept
	t.reindex()
}

// NumericNames 按列序返回所有数值列名，排除 exclude 中的列。
func (t *Table) NumericNames(exclude ...string) []string {
	skip := make(map[string]bool, len(exclude))
	for _, n := range exclude {
		skip[n] = true
	}
	var names []string
	for _, c := range t.cols {
		if c.Kind == ColumnNumeric && !skip[c.Name] {
			names = append(names, c.Name)
		}
	}
	return names
}

// Matrix 把指定数值列投影为行 × 列的稠密矩阵。
func (t *Table) Matrix(names []string) (*mat.Dense, error) {
	n := t.NumRows()
	if len(names) == 0 {
		return nil, NewDomainError(ModuleDataset, ErrorCodeInvalidInput, "no columns to project")
	}
	x := mat.NewDense(n, len(names), nil)
	for j, name := range names {
		vals, err := t.Floats(name)
		if err != nil {
			return nil, err
		}
		for i := 0; i < n; i++ {
			x.Set(i, j, vals[i])
		}
	}
	return x, nil
}

// SelectRows 按行下标构造新表（列序与列类型保持不变）。
func (t *Table) SelectRows(idx []int) *Table {
	out := NewTable()
	for _, c := range t.cols {
		if c.Kind == ColumnNumeric {
			vals := make([]float64, len(idx))
			for i, r := range idx {
				vals[i] = c.Floats[r]
			}
			_ = out.SetFloats(c.Name, vals)
			continue
		}
		vals := make([]string, len(idx))
		for i, r := range idx {
			vals[i] = c.Strings[r]
		}
		_ = out.SetStrings(c.Name, vals)
	}
	return out
}

// SortByFloatDesc 按数值列降序稳定排序，同步重排所有列。
func (t *Table) SortByFloatDesc(name string) error {
	key, err := t.Floats(name)
	if err != nil {
		return err
	}
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return key[order[a]] > key[order[b]]
	})
	for _, c := range t.cols {
		if c.Kind == ColumnNumeric {
			vals := make([]float64, len(order))
			for i, r := range order {
				vals[i] = c.Floats[r]
			}
			c.Floats = vals
			continue
		}
		vals := make([]string, len(order))
		for i, r := range order {
			vals[i] = c.Strings[r]
		}
		c.Strings = vals
	}
	return nil
}

// Clone 深拷贝整张表。
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, c := range t.cols {
		if c.Kind == ColumnNumeric {
			_ = out.SetFloats(c.Name, append([]float64(nil), c.Floats...))
			continue
		}
		_ = out.SetStrings(c.Name, append([]string(nil), c.Strings...))
	}
	return out
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.cols))
	for i, c := range t.cols {
		t.index[c.Name] = i
	}
}
