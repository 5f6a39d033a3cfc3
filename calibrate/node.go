package calibrate

import (
	"context"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
	"github.com/rushteam/attrikit/model"
	"github.com/rushteam/attrikit/pipeline"
)

// Calibrated 是概率校准后的模型：k 个（基模型, sigmoid）对的集成，
// 最终概率取各折校准概率的均值。
// 每折内部输出对基模型分数单调；跨折均值不保证全局单调。
type Calibrated struct {
	folds []foldModel
}

type foldModel struct {
	base core.Scorer
	sig  sigmoid
}

func (c *Calibrated) Name() string { return "calibrated_forest" }

// PredictProba 返回逐行校准后的正类概率。
func (c *Calibrated) PredictProba(x *mat.Dense) ([]float64, error) {
	if len(c.folds) == 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFitted, "calibrate: not fitted")
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for _, fm := range c.folds {
		scores, err := fm.base.PredictProba(x)
		if err != nil {
			return nil, err
		}
		for i, s := range scores {
			out[i] += fm.sig.prob(s)
		}
	}
	for i := range out {
		out[i] /= float64(len(c.folds))
	}
	return out, nil
}

var _ core.Scorer = (*Calibrated)(nil)

// Fit 以 k 折交叉验证方式构建校准模型：每折用其余折重拟合一个
// 同配置的森林，在留出折上拟合 sigmoid。
func Fit(spec core.ModelSpec, x *mat.Dense, y []float64, folds int, seed int64) (*Calibrated, error) {
	rows, cols := x.Dims()
	if rows < folds {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInsufficientData,
			"calibrate: fewer rows than folds")
	}

	perm := rand.New(rand.NewSource(seed)).Perm(rows)
	assign := make([]int, rows)
	for i, r := range perm {
		assign[r] = i % folds
	}

	c := &Calibrated{}
	row := make([]float64, cols)
	for f := 0; f < folds; f++ {
		var trainIdx, valIdx []int
		for i, a := range assign {
			if a == f {
				valIdx = append(valIdx, i)
			} else {
				trainIdx = append(trainIdx, i)
			}
		}

		trainX := mat.NewDense(len(trainIdx), cols, nil)
		trainY := make([]float64, len(trainIdx))
		for i, r := range trainIdx {
			mat.Row(row, r, x)
			trainX.SetRow(i, row)
			trainY[i] = y[r]
		}
		valX := mat.NewDense(len(valIdx), cols, nil)
		valY := make([]float64, len(valIdx))
		for i, r := range valIdx {
			mat.Row(row, r, x)
			valX.SetRow(i, row)
			valY[i] = y[r]
		}

		base := model.FromSpec(spec, seed+int64(f))
		if err := base.Fit(trainX, trainY); err != nil {
			return nil, err
		}
		scores, err := base.PredictProba(valX)
		if err != nil {
			return nil, err
		}
		c.folds = append(c.folds, foldModel{base: base, sig: fitSigmoid(scores, valY)})
	}
	return c, nil
}

// CalibrateNode 是概率校准 Node：把网格搜索选出的配置包一层
// k 折 sigmoid 校准，产出最终评分模型。
type CalibrateNode struct {
	// Folds 校准折数，默认 5。
	Folds int
}

func (n *CalibrateNode) Name() string        { return "model.calibrate" }
func (n *CalibrateNode) Kind() pipeline.Kind { return pipeline.KindCalibrate }

func (n *CalibrateNode) Process(
	_ context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	split := rctx.Artifacts.Split
	spec := rctx.Artifacts.BestSpec
	if split == nil || spec == nil {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			"calibrate requires grid_search to run first")
	}

	folds := n.Folds
	if folds <= 0 {
		folds = 5
	}

	calibrated, err := Fit(*spec, split.TrainX, split.TrainY, folds, rctx.Seed)
	if err != nil {
		return nil, err
	}
	rctx.Artifacts.Model = calibrated
	return tbl, nil
}
