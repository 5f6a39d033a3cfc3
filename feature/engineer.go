package feature

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
	"github.com/rushteam/attrikit/pkg/conv"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
	celEnvErr  error
)

// getCELEnv 获取或创建 CEL 环境。公式中通过 row.<列名> 引用当前行的数值列。
func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("row", cel.MapType(cel.StringType, cel.DoubleType)),
		)
	})
	return celEnv, celEnvErr
}

// Derived 声明一个派生列：当 Requires 中的列都存在时，逐行求值 Expr
// 写入 Output 列；缺任意一个来源列则整条规则静默跳过。
//
// Expr 使用 CEL (Common Expression Language) 语法，例如：
//   - `row.JobSatisfaction * row.WorkLifeBalance`
//   - `row.YearsSinceLastPromotion / (row.YearsAtCompany + 1.0)`
//
// 新增派生特征只需追加声明，不需要改代码。
type Derived struct {
	Output   string
	Requires []string
	Expr     string
}

// DefaultDerived 返回内置的派生特征清单。
func DefaultDerived() []Derived {
	return []Derived{
		{
			Output:   "Engagement_Index",
			Requires: []string{"JobSatisfaction", "WorkLifeBalance"},
			Expr:     "row.JobSatisfaction * row.WorkLifeBalance",
		},
		{
			Output:   "Promotion_Rate",
			Requires: []string{"YearsSinceLastPromotion", "YearsAtCompany"},
			// 分母 +1，构造上不会除零
			Expr: "row.YearsSinceLastPromotion / (row.YearsAtCompany + 1.0)",
		},
		{
			Output:   "Overtime_LabTech",
			Requires: []string{"Doing_Overtime", "Laboratory_Technician"},
			Expr:     "row.Doing_Overtime * row.Laboratory_Technician",
		},
	}
}

// EngineerNode 是特征工程 Node：按声明式规则追加派生列。
// 重复执行是幂等的：已存在的派生列会被相同的值整列覆盖。
type EngineerNode struct {
	Features []Derived
}

func (n *EngineerNode) Name() string        { return "feature.engineer" }
func (n *EngineerNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *EngineerNode) Process(
	_ context.Context,
	_ *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	features := n.Features
	if features == nil {
		features = DefaultDerived()
	}

	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	for _, d := range features {
		cols := make(map[string][]float64, len(d.Requires))
		missing := false
		for _, name := range d.Requires {
			vals, err := tbl.Floats(name)
			if err != nil {
				missing = true
				break
			}
			cols[name] = vals
		}
		if missing {
			continue // 来源列不全，跳过而不报错
		}

		ast, issues := env.Compile(d.Expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("compile %s: %w", d.Output, issues.Err())
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("program %s: %w", d.Output, err)
		}

		rows := tbl.NumRows()
		out := make([]float64, rows)
		row := make(map[string]any, len(d.Requires))
		for i := 0; i < rows; i++ {
			for name, vals := range cols {
				row[name] = vals[i]
			}
			val, _, err := prg.Eval(map[string]any{"row": row})
			if err != nil {
				return nil, fmt.Errorf("eval %s row %d: %w", d.Output, i, err)
			}
			f, ok := conv.ToFloat64(val.Value())
			if !ok {
				return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
					fmt.Sprintf("formula %s must return a number, got %T", d.Output, val.Value()))
			}
			out[i] = f
		}

		if err := tbl.SetFloats(d.Output, out); err != nil {
			return nil, err
		}
	}
	return tbl, nil
}
