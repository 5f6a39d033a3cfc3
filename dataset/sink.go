package dataset

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/rushteam/attrikit/core"
)

// Sink 把评分结果发布到键值存储：风险分写入 zset 保序，
// 行明细以 JSON 写入 hash。下游按分数区间拉取即可。
type Sink struct {
	Store core.KeyValueStore

	// KeyPrefix 键名前缀，默认 "attrikit"。
	KeyPrefix string

	// RiskColumn / IDColumn 覆盖默认的分数列与成员标识列。
	RiskColumn string
	IDColumn   string
}

func (s *Sink) rankKey() string   { return s.prefix() + ":risk" }
func (s *Sink) detailKey() string { return s.prefix() + ":detail" }

func (s *Sink) prefix() string {
	if s.KeyPrefix == "" {
		return "attrikit"
	}
	return s.KeyPrefix
}

// Publish 把整张结果表写入存储。member 取 IDColumn 的值；
// 数值型 ID 以整数形式作为 member。
func (s *Sink) Publish(ctx context.Context, tbl *core.Table, idColumn, riskColumn string) error {
	if s.Store == nil {
		return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, "sink: no store configured")
	}
	if s.IDColumn != "" {
		idColumn = s.IDColumn
	}
	if s.RiskColumn != "" {
		riskColumn = s.RiskColumn
	}

	risk, err := tbl.Floats(riskColumn)
	if err != nil {
		return err
	}
	members, err := memberIDs(tbl, idColumn)
	if err != nil {
		return err
	}

	names := tbl.ColumnNames()
	for i := 0; i < tbl.NumRows(); i++ {
		if err := s.Store.ZAdd(ctx, s.rankKey(), risk[i], members[i]); err != nil {
			return err
		}
		row := make(map[string]any, len(names))
		for _, name := range names {
			col, _ := tbl.Column(name)
			if col.Kind == core.ColumnNumeric {
				row[name] = col.Floats[i]
				continue
			}
			row[name] = col.Strings[i]
		}
		payload, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if err := s.Store.HSet(ctx, s.detailKey(), members[i], payload); err != nil {
			return err
		}
	}
	return nil
}

func memberIDs(tbl *core.Table, idColumn string) ([]string, error) {
	col, ok := tbl.Column(idColumn)
	if !ok {
		return nil, core.NewDomainError(core.ModuleDataset, core.ErrorCodeNotFound,
			fmt.Sprintf("id column %q not found", idColumn))
	}
	out := make([]string, col.Len())
	if col.Kind == core.ColumnNumeric {
		for i, v := range col.Floats {
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		return out, nil
	}
	copy(out, col.Strings)
	return out, nil
}
