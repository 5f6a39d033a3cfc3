package tune

import (
	"context"
	"log/slog"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/model"
	"github.com/rushteam/attrikit/pipeline"
)

// Grid 是森林超参数的网格。空维度取各自的默认值。
type Grid struct {
	Trees           []int
	MaxDepth        []int // 0 表示不限深度
	MinSamplesSplit []int
	MinSamplesLeaf  []int
}

// DefaultGrid 返回内置网格：2×3×2×2 = 24 个组合。
func DefaultGrid() Grid {
	return Grid{
		Trees:           []int{100, 200},
		MaxDepth:        []int{0, 10, 20},
		MinSamplesSplit: []int{2, 5},
		MinSamplesLeaf:  []int{1, 2},
	}
}

// Specs 展开网格为超参数组合列表（遍历顺序固定，平分时取先出现者）。
func (g Grid) Specs() []core.ModelSpec {
	trees := g.Trees
	if len(trees) == 0 {
		trees = []int{100}
	}
	depth := g.MaxDepth
	if len(depth) == 0 {
		depth = []int{0}
	}
	minSplit := g.MinSamplesSplit
	if len(minSplit) == 0 {
		minSplit = []int{2}
	}
	minLeaf := g.MinSamplesLeaf
	if len(minLeaf) == 0 {
		minLeaf = []int{1}
	}

	specs := make([]core.ModelSpec, 0, len(trees)*len(depth)*len(minSplit)*len(minLeaf))
	for _, t := range trees {
		for _, d := range depth {
			for _, s := range minSplit {
				for _, l := range minLeaf {
					specs = append(specs, core.ModelSpec{
						Trees:           t,
						MaxDepth:        d,
						MinSamplesSplit: s,
						MinSamplesLeaf:  l,
					})
				}
			}
		}
	}
	return specs
}

// GridSearchNode 是训练/调参 Node：在平衡后的训练集上做 k 折交叉验证
// 网格搜索，以 F1 为准选出最优组合并在全量训练集上重拟合。
//
// 每个 组合 × 折 是一个独立任务，errgroup 并发执行；任务间没有共享
// 可变状态（各写各的结果槽位），唯一的汇聚点是取最大均分。
type GridSearchNode struct {
	Grid Grid
	// Folds 交叉验证折数，默认 3。
	Folds int
	// MaxConcurrent 最大并发任务数，0 表示 CPU 核数。
	MaxConcurrent int
}

func (n *GridSearchNode) Name() string        { return "model.grid_search" }
func (n *GridSearchNode) Kind() pipeline.Kind { return pipeline.KindTrain }

func (n *GridSearchNode) Process(
	ctx context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	split := rctx.Artifacts.Split
	if split == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"grid_search requires split_balance to run first")
	}

	folds := n.Folds
	if folds <= 0 {
		folds = 3
	}
	rows, _ := split.TrainX.Dims()
	if rows < folds {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInsufficientData,
			"grid_search: fewer training rows than folds")
	}

	specs := n.Grid.Specs()
	assign := foldAssign(rows, folds, rctx.Seed)

	// scores[spec][fold]，各任务写独立槽位
	scores := make([][]float64, len(specs))
	for i := range scores {
		scores[i] = make([]float64, folds)
	}

	eg, gctx := errgroup.WithContext(ctx)
	limit := n.MaxConcurrent
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	eg.SetLimit(limit)

	for si := range specs {
		for f := 0; f < folds; f++ {
			si, f := si, f
			eg.Go(func() error {
				// 兄弟任务失败或上游取消后不再起新训练
				if err := gctx.Err(); err != nil {
					return err
				}
				trainIdx, valIdx := foldIndices(assign, f)
				forest := model.FromSpec(specs[si], rctx.Seed)
				if err := forest.Fit(takeRows(split.TrainX, trainIdx), takeVals(split.TrainY, trainIdx)); err != nil {
					return err
				}
				probs, err := forest.PredictProba(takeRows(split.TrainX, valIdx))
				if err != nil {
					return err
				}
				scores[si][f] = F1(takeVals(split.TrainY, valIdx), Classify(probs, 0.5))
				return nil
			})
		}
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	best, bestScore := 0, -1.0
	for si := range specs {
		mean := 0.0
		for _, s := range scores[si] {
			mean += s
		}
		mean /= float64(folds)
		if mean > bestScore {
			best, bestScore = si, mean
		}
	}

	spec := specs[best]
	forest := model.FromSpec(spec, rctx.Seed)
	if err := forest.Fit(split.TrainX, split.TrainY); err != nil {
		return nil, err
	}

	slog.Debug("grid search done",
		"trees", spec.Trees,
		"max_depth", spec.MaxDepth,
		"min_split", spec.MinSamplesSplit,
		"min_leaf", spec.MinSamplesLeaf,
		"cv_f1", bestScore,
	)

	rctx.Artifacts.BestSpec = &spec
	rctx.Artifacts.BaseModel = forest
	if rctx.Artifacts.Report == nil {
		rctx.Artifacts.Report = &core.Report{}
	}
	rctx.Artifacts.Report.CVScore = bestScore
	return tbl, nil
}

// foldAssign 把行随机（按种子）分配到各折。
func foldAssign(rows, folds int, seed int64) []int {
	perm := rand.New(rand.NewSource(seed)).Perm(rows)
	assign := make([]int, rows)
	for i, r := range perm {
		assign[r] = i % folds
	}
	return assign
}

// foldIndices 返回第 f 折的训练/验证行下标。
func foldIndices(assign []int, f int) (train, val []int) {
	for i, a := range assign {
		if a == f {
			val = append(val, i)
		} else {
			train = append(train, i)
		}
	}
	return train, val
}

func takeRows(x *mat.Dense, idx []int) *mat.Dense {
	_, cols := x.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	row := make([]float64, cols)
	for i, r := range idx {
		mat.Row(row, r, x)
		out.SetRow(i, row)
	}
	return out
}

func takeVals(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = y[r]
	}
	return out
}
