package feature

import (
	"context"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/model"
	"github.com/rushteam/attrikit/pipeline"
)

// SelectNode 是递归特征消除（RFE）Node：反复用森林的重要性排序
// 淘汰最弱的一个特征，直到恰好保留 Keep 个。
// 在平衡后的训练分区上拟合排序模型；Keep 不小于特征数时为空操作。
//
// 选择完成后对保留列在整批矩阵上重拟合标准化参数，并同步裁剪
// Data/Split 中的矩阵。
type SelectNode struct {
	// Keep 保留的特征数，默认 20。
	Keep int
	// RankerTrees 排序模型的树数量，默认 100。
	RankerTrees int
}

func (n *SelectNode) Name() string        { return "feature.select" }
func (n *SelectNode) Kind() pipeline.Kind { return pipeline.KindFeature }

func (n *SelectNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	data := rctx.Artifacts.Data
	split := rctx.Artifacts.Split
	if data == nil || split == nil {
		return nil, core.NewDomainError(core.ModuleFeature, core.ErrorCodeInvalidInput,
			"select requires standardize and split_balance to run first")
	}

	keep := n.Keep
	if keep <= 0 {
		keep = 20
	}
	rankerTrees := n.RankerTrees
	if rankerTrees <= 0 {
		rankerTrees = 100
	}

	active := make([]int, len(data.Features))
	for i := range active {
		active[i] = i
	}

	// 每轮淘汰重要性最低的一个特征
	for len(active) > keep {
		sub := takeCols(split.TrainX, active)
		ranker := model.NewRandomForest(
			WithRankerDefaults(rankerTrees, rctx.Seed)...,
		)
		if err := ranker.Fit(sub, split.TrainY); err != nil {
			return nil, err
		}
		imp := ranker.Importances()

		worst := 0
		for i, v := range imp {
			if v < imp[worst] {
				worst = i
			}
		}
		active = append(active[:worst], active[worst+1:]...)
	}

	kept := make([]bool, len(data.Features))
	for _, j := range active {
		kept[j] = true
	}
	mask := &core.FeatureMask{
		Columns: append([]string(nil), data.Features...),
		Kept:    kept,
	}

	// 在整批（已标准化）矩阵的保留列上重拟合标准化
	selFull := mask.Apply(data.X)
	scaler := FitStandard(selFull, mask.Names())

	rctx.Artifacts.Mask = mask
	rctx.Artifacts.Scaler = scaler
	rctx.Artifacts.Data = &core.Dataset{
		Features: mask.Names(),
		X:        scaler.Apply(selFull),
		Y:        data.Y,
	}
	rctx.Artifacts.Split = &core.Split{
		TrainX:   scaler.Apply(mask.Apply(split.TrainX)),
		TrainY:   split.TrainY,
		TestX:    scaler.Apply(mask.Apply(split.TestX)),
		TestY:    split.TestY,
		TrainIdx: split.TrainIdx,
		TestIdx:  split.TestIdx,
	}
	return tbl, nil
}

// WithRankerDefaults 返回 RFE 排序模型的固定配置。
func WithRankerDefaults(trees int, seed int64) []model.ForestOption {
	return []model.ForestOption{
		model.WithEstimators(trees),
		model.WithForestSeed(seed),
	}
}

// takeCols 取矩阵的列子集。
func takeCols(x *mat.Dense, cols []int) *mat.Dense {
	rows, _ := x.Dims()
	out := mat.NewDense(rows, len(cols), nil)
	for oj, j := range cols {
		for i := 0; i < rows; i++ {
			out.Set(i, oj, x.At(i, j))
		}
	}
	return out
}
