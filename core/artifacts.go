package core

import "gonum.org/v1/gonum/mat"

// Artifacts 汇集一次运行中各阶段拟合出的不可变产物。
// 约定：产物一经写入不再修改；需要变更时整体替换。
type Artifacts struct {
	// Scaler 是当前生效的标准化参数（特征选择后会被整体替换）。
	Scaler *ScalerParams

	// Data 是标准化后的全量特征矩阵与标签。
	Data *Dataset

	// Split 是训练/测试划分（训练侧已过采样平衡）。
	Split *Split

	// Mask 是特征选择的结果。
	Mask *FeatureMask

	// BestSpec 是网格搜索选出的最优超参数组合。
	BestSpec *ModelSpec

	// BaseModel 是调参后的基模型；Model 是概率校准后的最终模型。
	BaseModel Scorer
	Model     Scorer

	// Report 是诊断信息（交叉验证得分、特征归因），不回流评分。
	Report *Report
}

// Scorer 是评分阶段的最小抽象：输入特征矩阵，输出逐行的正类概率。
type Scorer interface {
	Name() string
	PredictProba(x *mat.Dense) ([]float64, error)
}

// Dataset 是标准化后的建模视图：特征名、矩阵、标签一一对应。
type Dataset struct {
	Features []string
	X        *mat.Dense
	Y        []float64
}

// Split 是训练/测试划分。TrainX/TrainY 为平衡后的训练集；
// TestX/TestY 保持原始分布，绝不被重采样触碰。
type Split struct {
	TrainX *mat.Dense
	TrainY []float64
	TestX  *mat.Dense
	TestY  []float64

	// TrainIdx / TestIdx 是相对原始批次的行下标。
	TrainIdx []int
	TestIdx  []int
}

// ScalerParams 是标准化变换的拟合参数（逐列均值与缩放）。
// 不变式：推理时必须复用拟合参数，Apply 绝不重新拟合。
type ScalerParams struct {
	Columns []string
	Mean    []float64
	Scale   []float64
}

// Apply 按拟合参数变换矩阵，返回新矩阵，不修改输入。
func (s *ScalerParams) Apply(x *mat.Dense) *mat.Dense {
	rows, cols := x.Dims()
	out := mat.NewDense(rows, cols, nil)
	for j := 0; j < cols; j++ {
		m, sc := s.Mean[j], s.Scale[j]
		for i := 0; i < rows; i++ {
			out.Set(i, j, (x.At(i, j)-m)/sc)
		}
	}
	return out
}

// FeatureMask 是特征选择结果：原始列名与保留标记。
type FeatureMask struct {
	Columns []string
	Kept    []bool
}

// Names 返回保留列名（保持原始列序）。
func (m *FeatureMask) Names() []string {
	names := make([]string, 0, len(m.Columns))
	for i, keep := range m.Kept {
		if keep {
			names = append(names, m.Columns[i])
		}
	}
	return names
}

// Apply 对矩阵做列裁剪，返回仅含保留列的新矩阵。
func (m *FeatureMask) Apply(x *mat.Dense) *mat.Dense {
	rows, _ := x.Dims()
	kept := make([]int, 0, len(m.Kept))
	for j, keep := range m.Kept {
		if keep {
			kept = append(kept, j)
		}
	}
	out := mat.NewDense(rows, len(kept), nil)
	for oj, j := range kept {
		for i := 0; i < rows; i++ {
			out.Set(i, oj, x.At(i, j))
		}
	}
	return out
}

// ModelSpec 是一组森林超参数。MaxDepth 为 0 表示不限深度。
type ModelSpec struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
}

// FeatureWeight 是特征归因报告中的一项。
type FeatureWeight struct {
	Name   string
	Weight float64
}

// Report 是诊断报告：调参得分与头部归因特征。
type Report struct {
	CVScore     float64
	TopFeatures []FeatureWeight
}
