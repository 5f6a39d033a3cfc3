package explain

import (
	"context"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
)

// Contributor 是可归因模型的能力接口：对单行输出基线与逐特征的
// 加性贡献，满足 prediction = baseline + sum(contrib)。
// 随机森林实现了它（路径归因）。
type Contributor interface {
	Contributions(row []float64) (float64, []float64)
}

// ContributionNode 是归因 Node：对选择后的全量矩阵计算调参基模型的
// 逐特征归因，按平均绝对贡献排序，头部特征写入 Report。
// 纯诊断用途，不回流评分。
type ContributionNode struct {
	// TopN 报告的头部特征数，默认 10。
	TopN int
}

func (n *ContributionNode) Name() string        { return "explain.contributions" }
func (n *ContributionNode) Kind() pipeline.Kind { return pipeline.KindPostProcess }

func (n *ContributionNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	data := rctx.Artifacts.Data
	base := rctx.Artifacts.BaseModel
	if data == nil || base == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"contributions requires a trained base model")
	}
	c, ok := base.(Contributor)
	if !ok {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotSupported,
			"contributions: base model does not expose per-feature attributions")
	}

	topN := n.TopN
	if topN <= 0 {
		topN = 10
	}

	rows, cols := data.X.Dims()
	meanAbs := make([]float64, cols)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, data.X)
		_, contrib := c.Contributions(row)
		for j, v := range contrib {
			if v < 0 {
				v = -v
			}
			meanAbs[j] += v
		}
	}
	for j := range meanAbs {
		meanAbs[j] /= float64(rows)
	}

	weights := make([]core.FeatureWeight, cols)
	for j := range meanAbs {
		weights[j] = core.FeatureWeight{Name: data.Features[j], Weight: meanAbs[j]}
	}
	sort.SliceStable(weights, func(a, b int) bool { return weights[a].Weight > weights[b].Weight })
	if len(weights) > topN {
		weights = weights[:topN]
	}

	if rctx.Artifacts.Report == nil {
		rctx.Artifacts.Report = &core.Report{}
	}
	rctx.Artifacts.Report.TopFeatures = weights
	return tbl, nil
}
