package feature

import (
	"context"
	"fmt"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
)

// StandardizeNode 构建建模视图：剔除标识列与目标列（容忍缺失），
// 把剩余数值列投影为特征矩阵，并在整批数据上拟合标准化变换。
//
// 注意：标准化在整批（含测试分区）上拟合，与下游评分的批相对
// 语义一致；要改成只在训练分区拟合，换掉拟合范围即可，Apply 不变。
type StandardizeNode struct{}

func (n *StandardizeNode) Name() string        { return "feature.standardize" }
func (n *StandardizeNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *StandardizeNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	if rctx.TargetColumn == "" {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "target column not set")
	}
	y, err := tbl.Floats(rctx.TargetColumn)
	if err != nil {
		return nil, fmt.Errorf("target column: %w", err)
	}

	names := tbl.NumericNames(rctx.IDColumn, rctx.TargetColumn)
	if len(names) == 0 {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput, "no numeric feature columns")
	}

	x, err := tbl.Matrix(names)
	if err != nil {
		return nil, err
	}

	scaler := FitStandard(x, names)
	rctx.Artifacts.Scaler = scaler
	rctx.Artifacts.Data = &core.Dataset{
		Features: names,
		X:        scaler.Apply(x),
		Y:        append([]float64(nil), y...),
	}
	return tbl, nil
}
