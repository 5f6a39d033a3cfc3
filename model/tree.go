package model

import (
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

// DecisionTree 是 CART 风格的二分类决策树（基尼不纯度）。
//
// 工程特征：
//   - 每个内部节点同样保留正类占比，供路径归因（explain 包）使用
//   - MaxFeatures > 0 时每次分裂只在随机特征子集上寻找切分点，
//     这是随机森林的基树形态
//   - 给定 Seed 后完全确定
type DecisionTree struct {
	// MaxDepth 最大深度，0 表示不限。
	MaxDepth int
	// MinSamplesSplit 继续分裂所需的最小样本数。
	MinSamplesSplit int
	// MinSamplesLeaf 叶子节点的最小样本数。
	MinSamplesLeaf int
	// MaxFeatures 每次分裂考察的特征数，0 表示全部。
	MaxFeatures int
	// Seed 随机种子，驱动特征子集抽样。
	Seed int64

	root        *treeNode
	nFeatures   int
	nSamples    int
	importances []float64
}

type treeNode struct {
	leaf      bool
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	prob      float64 // 节点上正类占比
	samples   int
}

// TreeOption 配置 DecisionTree。
type TreeOption func(*DecisionTree)

func WithMaxDepth(d int) TreeOption        { return func(t *DecisionTree) { t.MaxDepth = d } }
func WithMinSamplesSplit(n int) TreeOption { return func(t *DecisionTree) { t.MinSamplesSplit = n } }
func WithMinSamplesLeaf(n int) TreeOption  { return func(t *DecisionTree) { t.MinSamplesLeaf = n } }
func WithMaxFeatures(n int) TreeOption     { return func(t *DecisionTree) { t.MaxFeatures = n } }
func WithTreeSeed(seed int64) TreeOption   { return func(t *DecisionTree) { t.Seed = seed } }

func NewDecisionTree(opts ...TreeOption) *DecisionTree {
	t := &DecisionTree{
		MinSamplesSplit: 2,
		MinSamplesLeaf:  1,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *DecisionTree) Name() string { return "decision_tree" }

// Fit 在 x/y 上构建树。y 取值 {0,1}。
func (t *DecisionTree) Fit(x *mat.Dense, y []float64) error {
	rows, cols := x.Dims()
	if rows == 0 {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: empty training set")
	}
	if rows != len(y) {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput, "tree: X rows and y length mismatch")
	}

	t.nFeatures = cols
	t.nSamples = rows
	t.importances = make([]float64, cols)

	idx := make([]int, rows)
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(t.Seed))
	t.root = t.build(x, y, idx, 0, rng)

	// 归一化重要性
	sum := 0.0
	for _, v := range t.importances {
		sum += v
	}
	if sum > 0 {
		for i := range t.importances {
			t.importances[i] /= sum
		}
	}
	return nil
}

func (t *DecisionTree) build(x *mat.Dense, y []float64, idx []int, depth int, rng *rand.Rand) *treeNode {
	n := len(idx)
	pos := 0
	for _, i := range idx {
		if y[i] == 1 {
			pos++
		}
	}
	node := &treeNode{prob: float64(pos) / float64(n), samples: n, leaf: true}

	if pos == 0 || pos == n || n < t.MinSamplesSplit {
		return node
	}
	if t.MaxDepth > 0 && depth >= t.MaxDepth {
		return node
	}

	feature, threshold, gain, ok := t.bestSplit(x, y, idx, pos, rng)
	if !ok {
		return node
	}

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if x.At(i, feature) <= threshold {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}

	t.importances[feature] += float64(n) / float64(t.nSamples) * gain

	node.leaf = false
	node.feature = feature
	node.threshold = threshold
	node.left = t.build(x, y, leftIdx, depth+1, rng)
	node.right = t.build(x, y, rightIdx, depth+1, rng)
	return node
}

// bestSplit 在候选特征上寻找基尼增益最大的切分点。
// 返回 ok=false 表示没有满足 MinSamplesLeaf 且增益为正的切分。
func (t *DecisionTree) bestSplit(x *mat.Dense, y []float64, idx []int, pos int, rng *rand.Rand) (int, float64, float64, bool) {
	n := len(idx)
	parent := gini(pos, n)

	candidates := t.candidateFeatures(rng)

	bestGain := 1e-12
	bestFeature, bestThreshold := -1, 0.0

	pairs := make([]valueLabel, n)

	for _, f := range candidates {
		for k, i := range idx {
			pairs[k] = valueLabel{v: x.At(i, f), y: y[i]}
		}
		sortPairs(pairs)

		// 从左到右扫描，增量维护左侧正类数
		leftPos := 0
		for k := 0; k < n-1; k++ {
			if pairs[k].y == 1 {
				leftPos++
			}
			if pairs[k].v == pairs[k+1].v {
				continue
			}
			nl := k + 1
			nr := n - nl
			if nl < t.MinSamplesLeaf || nr < t.MinSamplesLeaf {
				continue
			}
			gl := gini(leftPos, nl)
			gr := gini(pos-leftPos, nr)
			gain := parent - (float64(nl)*gl+float64(nr)*gr)/float64(n)
			if gain > bestGain {
				bestGain = gain
				bestFeature = f
				bestThreshold = (pairs[k].v + pairs[k+1].v) / 2
			}
		}
	}

	if bestFeature < 0 {
		return 0, 0, 0, false
	}
	return bestFeature, bestThreshold, bestGain, true
}

func (t *DecisionTree) candidateFeatures(rng *rand.Rand) []int {
	if t.MaxFeatures <= 0 || t.MaxFeatures >= t.nFeatures {
		all := make([]int, t.nFeatures)
		for i := range all {
			all[i] = i
		}
		return all
	}
	return rng.Perm(t.nFeatures)[:t.MaxFeatures]
}

// PredictProba 返回逐行的正类概率。
func (t *DecisionTree) PredictProba(x *mat.Dense) ([]float64, error) {
	if t.root == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFitted, "tree: not fitted")
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	row := make([]float64, t.nFeatures)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, x)
		out[i] = t.predictRow(row)
	}
	return out, nil
}

func (t *DecisionTree) predictRow(row []float64) float64 {
	cur := t.root
	for !cur.leaf {
		if row[cur.feature] <= cur.threshold {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return cur.prob
}

// Contributions 计算单行的加性路径归因：从根到叶，每经过一次分裂，
// 节点间正类占比的变化记到该分裂特征上。满足
// prediction = baseline + sum(contrib)。
func (t *DecisionTree) Contributions(row []float64) (float64, []float64) {
	contrib := make([]float64, t.nFeatures)
	if t.root == nil {
		return 0, contrib
	}
	baseline := t.root.prob
	cur := t.root
	for !cur.leaf {
		next := cur.right
		if row[cur.feature] <= cur.threshold {
			next = cur.left
		}
		contrib[cur.feature] += next.prob - cur.prob
		cur = next
	}
	return baseline, contrib
}

// Importances 返回归一化的基尼重要性（未拟合时为 nil）。
func (t *DecisionTree) Importances() []float64 {
	return t.importances
}

func gini(pos, n int) float64 {
	if n == 0 {
		return 0
	}
	p := float64(pos) / float64(n)
	return 1 - p*p - (1-p)*(1-p)
}

type valueLabel struct {
	v float64
	y float64
}

func sortPairs(pairs []valueLabel) {
	sort.Slice(pairs, func(i, j int) bool { return pairs[i].v < pairs[j].v })
}
