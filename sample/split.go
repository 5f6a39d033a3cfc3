package sample

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

// Split 按固定种子洗牌后切分训练/测试分区。
// testFraction 为测试分区占比；划分只依赖 seed 与行数，可复现。
func Split(x *mat.Dense, y []float64, testFraction float64, seed int64) *core.Split {
	n, _ := x.Dims()
	perm := rand.New(rand.NewSource(seed)).Perm(n)

	nTest := int(math.Ceil(float64(n) * testFraction))
	if nTest > n {
		nTest = n
	}
	testIdx := append([]int(nil), perm[:nTest]...)
	trainIdx := append([]int(nil), perm[nTest:]...)

	return &core.Split{
		TrainX:   takeRows(x, trainIdx),
		TrainY:   takeVals(y, trainIdx),
		TestX:    takeRows(x, testIdx),
		TestY:    takeVals(y, testIdx),
		TrainIdx: trainIdx,
		TestIdx:  testIdx,
	}
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
