package config

import (
	"context"
	"math/rand"
	"testing"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
	"github.com/rushteam/attrikit/score"
)

// attritionTable 构造 120 行合成员工数据，30 人离职（Retained=0），
// 离职人群满意度低、晋升间隔长。
func attritionTable() *core.Table {
	const rows = 120
	rng := rand.New(rand.NewSource(99))

	ids := make([]float64, rows)
	satisfaction := make([]float64, rows)
	balance := make([]float64, rows)
	yearsAt := make([]float64, rows)
	sincePromo := make([]float64, rows)
	income := make([]float64, rows)
	retained := make([]float64, rows)

	for i := 0; i < rows; i++ {
		ids[i] = float64(1000 + i)
		stay := 1.0
		if i%4 == 0 {
			stay = 0
		}
		retained[i] = stay
		satisfaction[i] = 1 + rng.Float64()*2 + stay*1.5
		balance[i] = 1 + rng.Float64() + stay
		yearsAt[i] = rng.Float64() * 12
		sincePromo[i] = rng.Float64()*3 + (1-stay)*4
		income[i] = 3000 + rng.Float64()*5000 + stay*2000
	}

	tbl := core.NewTable()
	tbl.SetFloats("EmployeeNumber", ids)
	tbl.SetFloats("JobSatisfaction", satisfaction)
	tbl.SetFloats("WorkLifeBalance", balance)
	tbl.SetFloats("YearsAtCompany", yearsAt)
	tbl.SetFloats("YearsSinceLastPromotion", sincePromo)
	tbl.SetFloats("MonthlyIncome", income)
	tbl.SetFloats("Retained", retained)
	return tbl
}

// smallPipeline 用缩小的模型规模走完整条链路。
func smallPipeline(t *testing.T) *pipeline.Pipeline {
	t.Helper()
	cfg := &pipeline.Config{}
	cfg.Pipeline.Name = "attrition-test"
	cfg.Pipeline.Nodes = []pipeline.NodeConfig{
		{Type: "feature.engineer"},
		{Type: "feature.standardize"},
		{Type: "sample.split_balance"},
		{Type: "feature.select", Config: map[string]any{"keep": 3, "ranker_trees": 5}},
		{Type: "model.grid_search", Config: map[string]any{
			"trees": []any{5}, "max_depth": []any{3}, "folds": 3,
		}},
		{Type: "model.calibrate", Config: map[string]any{"folds": 3}},
		{Type: "score.risk"},
		{Type: "explain.contributions", Config: map[string]any{"top_n": 3}},
	}

	p, err := cfg.BuildPipeline(DefaultFactory())
	if err != nil {
		t.Fatalf("BuildPipeline() error = %v", err)
	}
	return p
}

func runOnce(t *testing.T) (*core.Table, *core.RunContext) {
	t.Helper()
	rctx := &core.RunContext{
		Seed:         42,
		IDColumn:     "EmployeeNumber",
		TargetColumn: "Retained",
	}
	out, err := smallPipeline(t).Run(context.Background(), rctx, attritionTable())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	return out, rctx
}

func TestPipeline_EndToEnd(t *testing.T) {
	out, rctx := runOnce(t)

	if got := out.NumRows(); got != 120 {
		t.Fatalf("NumRows() = %d, want 120 (scoring covers the whole batch)", got)
	}
	for _, col := range []string{score.DefaultProbColumn, score.DefaultRiskColumn, score.DefaultTierColumn} {
		if !out.HasColumn(col) {
			t.Fatalf("output column %q missing", col)
		}
	}
	// 派生列随表透传到结果
	if !out.HasColumn("Engagement_Index") || !out.HasColumn("Promotion_Rate") {
		t.Error("derived columns should survive to the output")
	}
	if out.HasColumn("Overtime_LabTech") {
		t.Error("rule with missing sources must not produce a column")
	}

	risk, _ := out.Floats(score.DefaultRiskColumn)
	tiers, _ := out.Strings(score.DefaultTierColumn)
	for i := range risk {
		if risk[i] < 0 || risk[i] > 1 {
			t.Errorf("risk[%d] = %v, want within [0,1]", i, risk[i])
		}
		if i > 0 && risk[i] > risk[i-1] {
			t.Fatalf("risk[%d] > risk[%d], output must be sorted descending", i, i-1)
		}
		if tiers[i] != score.TierLow && tiers[i] != score.TierModerate && tiers[i] != score.TierHigh {
			t.Fatalf("tier[%d] = %q, partition must be exhaustive", i, tiers[i])
		}
	}

	counts := map[string]int{}
	for _, tier := range tiers {
		counts[tier]++
	}
	// p50 闭上界：至少一半落在 Low
	if counts[score.TierLow] < 60 {
		t.Errorf("Low = %d, want >= 60 of 120", counts[score.TierLow])
	}
	if counts[score.TierLow]+counts[score.TierModerate]+counts[score.TierHigh] != 120 {
		t.Errorf("tier counts = %v, must sum to 120", counts)
	}

	// 链路产物齐全
	if rctx.Artifacts.Mask == nil || len(rctx.Artifacts.Mask.Names()) != 3 {
		t.Error("feature selection should keep exactly 3 features")
	}
	if rctx.Artifacts.BestSpec == nil || rctx.Artifacts.Model == nil {
		t.Error("model artifacts missing")
	}
	report := rctx.Artifacts.Report
	if report == nil {
		t.Fatal("report missing")
	}
	if report.CVScore < 0 || report.CVScore > 1 {
		t.Errorf("CVScore = %v, want within [0,1]", report.CVScore)
	}
	if len(report.TopFeatures) == 0 || len(report.TopFeatures) > 3 {
		t.Errorf("TopFeatures = %d entries, want 1..3", len(report.TopFeatures))
	}
}

func TestPipeline_EndToEndDeterministic(t *testing.T) {
	outA, _ := runOnce(t)
	outB, _ := runOnce(t)

	riskA, _ := outA.Floats(score.DefaultRiskColumn)
	riskB, _ := outB.Floats(score.DefaultRiskColumn)
	idsA, _ := outA.Floats("EmployeeNumber")
	idsB, _ := outB.Floats("EmployeeNumber")
	for i := range riskA {
		if riskA[i] != riskB[i] || idsA[i] != idsB[i] {
			t.Fatalf("row %d differs between runs, pipeline must be seed-deterministic", i)
		}
	}
}
