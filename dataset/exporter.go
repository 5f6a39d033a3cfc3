package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/rushteam/attrikit/core"
)

// WriteCSV 把 Table 按列序导出为 CSV 文件，首行为列头。
// 数值以最短无损形式格式化。
func WriteCSV(path string, tbl *core.Table) error {
	f, err := os.Create(path)
	if err != nil {
		return core.NewDomainError(core.ModuleDataset, core.ErrorCodeInternalError,
			fmt.Sprintf("create %s: %v", path, err))
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(tbl.ColumnNames()); err != nil {
		return err
	}

	names := tbl.ColumnNames()
	record := make([]string, len(names))
	for i := 0; i < tbl.NumRows(); i++ {
		for j, name := range names {
			col, _ := tbl.Column(name)
			if col.Kind == core.ColumnNumeric {
				record[j] = strconv.FormatFloat(col.Floats[i], 'g', -1, 64)
				continue
			}
			record[j] = col.Strings[i]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
