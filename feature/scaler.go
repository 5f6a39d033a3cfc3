package feature

import (
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/rushteam/attrikit/core"
)

// FitStandard 在矩阵上拟合标准化参数：逐列均值与总体标准差。
// 零方差列的 scale 置 1，变换后该列恒为 0。
// 拟合与变换分离：参数作为不可变产物挂在 RunContext 上，
// 评分阶段只允许复用，不允许重新拟合。
func FitStandard(x *mat.Dense, columns []string) *core.ScalerParams {
	rows, cols := x.Dims()
	mean := make([]float64, cols)
	scale := make([]float64, cols)

	col := make([]float64, rows)
	for j := 0; j < cols; j++ {
		mat.Col(col, j, x)
		m := stat.Mean(col, nil)

		variance := 0.0
		for _, v := range col {
			variance += (v - m) * (v - m)
		}
		variance /= float64(rows)

		s := math.Sqrt(variance)
		if s == 0 {
			s = 1
		}
		mean[j] = m
		scale[j] = s
	}

	return &core.ScalerParams{
		Columns: append([]string(nil), columns...),
		Mean:    mean,
		Scale:   scale,
	}
}
