// Package dataset 负责批数据的读入与结果导出：CSV 文件 ↔ core.Table，
// 以及评分结果向键值存储的分发。
package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/rushteam/attrikit/core"
)

// ReadCSV 从 CSV 文件读入 Table。首行必须为列头。
// 某列所有非空单元都能解析为浮点数时判定为数值列，否则整列按文本
// 处理；数值列中的空单元记为 NaN（缺失），并按列告警。
func ReadCSV(path string) (*core.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeNotFound,
			fmt.Sprintf("open %s: %v", path, err))
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			fmt.Sprintf("parse %s: %v", path, err))
	}
	if len(records) == 0 {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeInvalidInput,
			"csv: missing header row")
	}

	header := records[0]
	rows := records[1:]
	tbl := core.NewTable()
	for j, name := range header {
		raw := make([]string, len(rows))
		for i, rec := range rows {
			raw[i] = rec[j]
		}
		floats, numeric := parseFloats(raw)
		if numeric {
			if n := countMissing(floats); n > 0 {
				slog.Warn("numeric column has empty cells", "column", name, "rows", n)
			}
			if err := tbl.SetFloats(name, floats); err != nil {
				return nil, err
			}
			continue
		}
		if err := tbl.SetStrings(name, raw); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}

// parseFloats 尝试把整列解析为 float64。类型判定只看非空单元：
// 全部可解析才算数值列，空单元记为 NaN。没有任何非空单元的列
// 视为文本列。
func parseFloats(raw []string) ([]float64, bool) {
	out := make([]float64, len(raw))
	nonEmpty := false
	for i, s := range raw {
		if s == "" {
			out[i] = math.NaN()
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, false
		}
		out[i] = v
		nonEmpty = true
	}
	if !nonEmpty {
		return nil, false
	}
	return out, true
}

func countMissing(vals []float64) int {
	n := 0
	for _, v := range vals {
		if math.IsNaN(v) {
			n++
		}
	}
	return n
}
