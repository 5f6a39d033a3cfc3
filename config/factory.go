// Package config 组装 Node 工厂与默认管道，隔离 pipeline 包与各
// Node 实现包之间的依赖。
package config

import (
	"github.com/rushteam/attrikit/calibrate"
	"github.com/rushteam/attrikit/explain"
	"github.com/rushteam/attrikit/feature"
	"github.com/rushteam/attrikit/pipeline"
	"github.com/rushteam/attrikit/pkg/conv"
	"github.com/rushteam/attrikit/sample"
	"github.com/rushteam/attrikit/score"
	"github.com/rushteam/attrikit/tune"
)

// DefaultFactory 返回注册了全部内置 Node 的工厂。
func DefaultFactory() *pipeline.NodeFactory {
	f := pipeline.NewNodeFactory()

	f.Register("feature.engineer", func(cfg map[string]any) (pipeline.Node, error) {
		node := &feature.EngineerNode{}
		if raw, ok := cfg["features"].([]any); ok {
			for _, e := range raw {
				m, ok := e.(map[string]any)
				if !ok {
					continue
				}
				node.Features = append(node.Features, feature.Derived{
					Output:   conv.ConfigGet(m, "output", ""),
					Requires: conv.SliceAnyToString(m["requires"]),
					Expr:     conv.ConfigGet(m, "expr", ""),
				})
			}
		}
		return node, nil
	})

	f.Register("feature.standardize", func(cfg map[string]any) (pipeline.Node, error) {
		return &feature.StandardizeNode{}, nil
	})

	f.Register("sample.split_balance", func(cfg map[string]any) (pipeline.Node, error) {
		return &sample.SplitBalanceNode{
			TestFraction: conv.ConfigGetFloat(cfg, "test_fraction", 0),
			Neighbors:    conv.ConfigGetInt(cfg, "neighbors", 0),
		}, nil
	})

	f.Register("feature.select", func(cfg map[string]any) (pipeline.Node, error) {
		return &feature.SelectNode{
			Keep:        conv.ConfigGetInt(cfg, "keep", 0),
			RankerTrees: conv.ConfigGetInt(cfg, "ranker_trees", 0),
		}, nil
	})

	f.Register("model.grid_search", func(cfg map[string]any) (pipeline.Node, error) {
		grid := tune.Grid{
			Trees:           conv.SliceAnyToInt(cfg["trees"]),
			MaxDepth:        conv.SliceAnyToInt(cfg["max_depth"]),
			MinSamplesSplit: conv.SliceAnyToInt(cfg["min_samples_split"]),
			MinSamplesLeaf:  conv.SliceAnyToInt(cfg["min_samples_leaf"]),
		}
		if len(grid.Trees) == 0 && len(grid.MaxDepth) == 0 &&
			len(grid.MinSamplesSplit) == 0 && len(grid.MinSamplesLeaf) == 0 {
			grid = tune.DefaultGrid()
		}
		return &tune.GridSearchNode{
			Grid:          grid,
			Folds:         conv.ConfigGetInt(cfg, "folds", 0),
			MaxConcurrent: conv.ConfigGetInt(cfg, "max_concurrent", 0),
		}, nil
	})

	f.Register("model.calibrate", func(cfg map[string]any) (pipeline.Node, error) {
		return &calibrate.CalibrateNode{
			Folds: conv.ConfigGetInt(cfg, "folds", 0),
		}, nil
	})

	f.Register("score.risk", func(cfg map[string]any) (pipeline.Node, error) {
		return &score.RiskNode{
			ProbColumn:   conv.ConfigGet(cfg, "prob_column", ""),
			RiskColumn:   conv.ConfigGet(cfg, "risk_column", ""),
			TierColumn:   conv.ConfigGet(cfg, "tier_column", ""),
			LowQuantile:  conv.ConfigGetFloat(cfg, "low_quantile", 0),
			HighQuantile: conv.ConfigGetFloat(cfg, "high_quantile", 0),
		}, nil
	})

	f.Register("explain.contributions", func(cfg map[string]any) (pipeline.Node, error) {
		return &explain.ContributionNode{
			TopN: conv.ConfigGetInt(cfg, "top_n", 0),
		}, nil
	})

	return f
}

// Default 返回默认管道：与 configs/attrition.yaml 等价，
// 所有 Node 取默认参数。
func Default() *pipeline.Pipeline {
	return &pipeline.Pipeline{Nodes: []pipeline.Node{
		&feature.EngineerNode{},
		&feature.StandardizeNode{},
		&sample.SplitBalanceNode{},
		&feature.SelectNode{},
		&tune.GridSearchNode{Grid: tune.DefaultGrid()},
		&calibrate.CalibrateNode{},
		&score.RiskNode{},
		&explain.ContributionNode{},
	}}
}
