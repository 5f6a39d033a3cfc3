package score

import (
	"context"
	"sort"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
)

// 风险层级，按序排列。
const (
	TierLow      = "Low"
	TierModerate = "Moderate"
	TierHigh     = "High"
)

// 输出列名。
const (
	DefaultProbColumn = "Predicted_Prob_Stay"
	DefaultRiskColumn = "Retention_Risk"
	DefaultTierColumn = "Risk_Level"
)

// RiskNode 是评分/分层 Node：对全量批次输出校准后的留任概率，
// 风险分 risk = 1 - minmax(prob)，其中 minmax 在当前批次上拟合
// （批次相对，每次运行重算，不复用训练期参数）。
//
// 分层按批次自身的分位数切：risk ≤ p50 为 Low，p50 < risk ≤ p90 为
// Moderate，其余为 High。落在边界上的取下层（闭上界）。
// 最后按风险分降序稳定排序整张表。
type RiskNode struct {
	ProbColumn string
	RiskColumn string
	TierColumn string

	// LowQuantile / HighQuantile 分层分位点，默认 0.5 / 0.9。
	LowQuantile  float64
	HighQuantile float64
}

func (n *RiskNode) Name() string        { return "score.risk" }
func (n *RiskNode) Kind() pipeline.Kind { return pipeline.KindScore }

func (n *RiskNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	data := rctx.Artifacts.Data
	scorer := rctx.Artifacts.Model
	if data == nil || scorer == nil {
		return nil, core.NewDomainError(core.ModuleScore, core.ErrorCodeInvalidInput,
			"risk requires a calibrated model")
	}

	probs, err := scorer.PredictProba(data.X)
	if err != nil {
		return nil, err
	}
	if len(probs) != tbl.NumRows() {
		return nil, core.NewDomainError(core.ModuleScore, core.ErrorCodeInternalError,
			"risk: prediction count does not match table rows")
	}

	probCol := n.ProbColumn
	if probCol == "" {
		probCol = DefaultProbColumn
	}
	riskCol := n.RiskColumn
	if riskCol == "" {
		riskCol = DefaultRiskColumn
	}
	tierCol := n.TierColumn
	if tierCol == "" {
		tierCol = DefaultTierColumn
	}
	lowQ := n.LowQuantile
	if lowQ <= 0 {
		lowQ = 0.5
	}
	highQ := n.HighQuantile
	if highQ <= 0 {
		highQ = 0.9
	}

	// minmax 在被评分批次上拟合；常数批次映射为 0（风险恒为 1）
	minP, maxP := probs[0], probs[0]
	for _, p := range probs {
		if p < minP {
			minP = p
		}
		if p > maxP {
			maxP = p
		}
	}
	denom := maxP - minP
	if denom == 0 {
		denom = 1
	}

	risk := make([]float64, len(probs))
	for i, p := range probs {
		risk[i] = 1 - (p-minP)/denom
	}

	sorted := append([]float64(nil), risk...)
	sort.Float64s(sorted)
	p50 := percentile(sorted, lowQ)
	p90 := percentile(sorted, highQ)

	tiers := make([]string, len(risk))
	for i, r := range risk {
		switch {
		case r <= p50:
			tiers[i] = TierLow
		case r <= p90:
			tiers[i] = TierModerate
		default:
			tiers[i] = TierHigh
		}
	}

	if err := tbl.SetFloats(probCol, probs); err != nil {
		return nil, err
	}
	if err := tbl.SetFloats(riskCol, risk); err != nil {
		return nil, err
	}
	if err := tbl.SetStrings(tierCol, tiers); err != nil {
		return nil, err
	}
	if err := tbl.SortByFloatDesc(riskCol); err != nil {
		return nil, err
	}
	return tbl, nil
}

// percentile 线性插值分位数，输入须已升序。
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1
	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}
