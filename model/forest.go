package model

import (
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

// RandomForest 是自举聚合（bagging）的随机森林二分类器。
//
// 工程特征：
//   - 每棵树在自举样本 + 每次分裂 sqrt(d) 特征子集上训练
//   - 树间相互独立，errgroup 并发拟合；每棵树的种子从森林种子
//     派生，结果与调度顺序无关
//   - 概率输出为各树叶子正类占比的均值
type RandomForest struct {
	// NEstimators 树的数量。
	NEstimators int
	// MaxDepth 单棵树最大深度，0 表示不限。
	MaxDepth int
	// MinSamplesSplit / MinSamplesLeaf 透传给基树。
	MinSamplesSplit int
	MinSamplesLeaf  int
	// MaxFeatures 每次分裂考察的特征数，0 表示 sqrt(d)。
	MaxFeatures int
	// Seed 森林种子。
	Seed int64

	trees     []*DecisionTree
	nFeatures int
}

// ForestOption 配置 RandomForest。
type ForestOption func(*RandomForest)

func WithEstimators(n int) ForestOption         { return func(f *RandomForest) { f.NEstimators = n } }
func WithForestMaxDepth(d int) ForestOption     { return func(f *RandomForest) { f.MaxDepth = d } }
func WithForestMinSplit(n int) ForestOption     { return func(f *RandomForest) { f.MinSamplesSplit = n } }
func WithForestMinLeaf(n int) ForestOption      { return func(f *RandomForest) { f.MinSamplesLeaf = n } }
func WithForestMaxFeatures(n int) ForestOption  { return func(f *RandomForest) { f.MaxFeatures = n } }
func WithForestSeed(seed int64) ForestOption    { return func(f *RandomForest) { f.Seed = seed } }

func NewRandomForest(opts ...ForestOption) *RandomForest {
	f := &RandomForest{
		NEstimators:     100,
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FromSpec 按超参数组合构建森林（网格搜索 / 校准阶段复用同一配置时使用）。
func FromSpec(spec core.ModelSpec, seed int64) *RandomForest {
	return NewRandomForest(
		WithEstimators(spec.Trees),
		WithForestMaxDepth(spec.MaxDepth),
		WithForestMinSplit(spec.MinSamplesSplit),
		WithForestMinLeaf(spec.MinSamplesLeaf),
		WithForestSeed(seed),
	)
}

func (f *RandomForest) Name() string { return "random_forest" }

// Fit 并发拟合所有基树。
func (f *RandomForest) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "forest: empty training set")
	}
	if rows != len(y) {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "forest: X rows and y length mismatch")
	}

	f.nFeatures = cols
	f.trees = make([]*DecisionTree, f.NEstimators)

	maxFeatures := f.MaxFeatures
	if maxFeatures <= 0 {
		maxFeatures = int(math.Sqrt(float64(cols)))
		if maxFeatures < 1 {
			maxFeatures = 1
		}
	}

	var eg errgroup.Group
	eg.SetLimit(runtime.NumCPU())

	for i := 0; i < f.NEstimators; i++ {
		i := i
		eg.Go(func() error {
			// 每棵树的种子只依赖森林种子与树下标
			seed := f.Seed + int64(i)*1000003
			rng := rand.New(rand.NewSource(seed))

			sx := mat.NewDense(rows, cols, nil)
			sy := make([]float64, rows)
			row := make([]float64, cols)
			for k := 0; k < rows; k++ {
				j := rng.Intn(rows)
				mat.Row(row, j, x)
				sx.SetRow(k, row)
				sy[k] = y[j]
			}

			tree := NewDecisionTree(
				WithMaxDepth(f.MaxDepth),
				WithMinSamplesSplit(f.MinSamplesSplit),
				WithMinSamplesLeaf(f.MinSamplesLeaf),
				WithMaxFeatures(maxFeatures),
				WithTreeSeed(seed+1),
			)
			if err := tree.Fit(sx, sy); err != nil {
				return err
			}
			f.trees[i] = tree // 各自写独立下标，无需加锁
			return nil
		})
	}
	return eg.Wait()
}

// PredictProba 返回逐行的正类概率（各树均值）。
func (f *RandomForest) PredictProba(x *mat.Dense) ([]float64, error) {
	if len(f.trees) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFitted, "forest: not fitted")
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for _, tree := range f.trees {
		probs, err := tree.PredictProba(x)
		if err != nil {
			return nil, err
		}
		for i, p := range probs {
			out[i] += p
		}
	}
	for i := range out {
		out[i] /= float64(len(f.trees))
	}
	return out, nil
}

// Importances 返回各树重要性的均值（已归一化）。
func (f *RandomForest) Importances() []float64 {
	if len(f.trees) == 0 {
		return nil
	}
	out := make([]float64, f.nFeatures)
	for _, tree := range f.trees {
		for i, v := range tree.Importances() {
			out[i] += v
		}
	}
	sum := 0.0
	for _, v := range out {
		sum += v
	}
	if sum > 0 {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}

// Contributions 计算单行的加性路径归因（各树均值）。
// 满足 prediction = baseline + sum(contrib)。
func (f *RandomForest) Contributions(row []float64) (float64, []float64) {
	contrib := make([]float64, f.nFeatures)
	baseline := 0.0
	if len(f.trees) == 0 {
		return 0, contrib
	}
	for _, tree := range f.trees {
		b, c := tree.Contributions(row)
		baseline += b
		for i, v := range c {
			contrib[i] += v
		}
	}
	n := float64(len(f.trees))
	baseline /= n
	for i := range contrib {
		contrib[i] /= n
	}
	return baseline, contrib
}

var (
	_ Classifier  = (*RandomForest)(nil)
	_ Classifier  = (*DecisionTree)(nil)
	_ core.Scorer = (*RandomForest)(nil)
)
