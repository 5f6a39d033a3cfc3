package sample

import (
	"context"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/pipeline"
)

// SplitBalanceNode 是切分与类别平衡 Node：固定种子切分训练/测试分区，
// 然后只在训练分区上做 SMOTE 过采样。测试分区的行数与标签分布
// 在本阶段之后保持不变。
type SplitBalanceNode struct {
	// TestFraction 测试分区占比，默认 0.2。
	TestFraction float64
	// Neighbors SMOTE 的近邻数，默认 5。
	Neighbors int
}

func (n *SplitBalanceNode) Name() string        { return "sample.split_balance" }
func (n *SplitBalanceNode) Kind() pipeline.Kind { return pipeline.KindSample }

func (n *SplitBalanceNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	data := rctx.Artifacts.Data
	if data == nil {
		return nil, core.NewDomainError(core.ModuleSample, core.ErrorCodeInvalidInput,
			"split_balance requires standardize to run first")
	}

	frac := n.TestFraction
	if frac <= 0 {
		frac = 0.2
	}
	k := n.Neighbors
	if k <= 0 {
		k = 5
	}

	split := Split(data.X, data.Y, frac, rctx.Seed)

	balX, balY, err := Oversample(split.TrainX, split.TrainY, k, rctx.Seed)
	if err != nil {
		return nil, err
	}
	split.TrainX = balX
	split.TrainY = balY

	rctx.Artifacts.Split = split
	return tbl, nil
}
