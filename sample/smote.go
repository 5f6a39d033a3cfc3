package sample

import (
	"fmt"
	"sort"

	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/attrikit/core"
)

// Oversample 对少数类做 SMOTE 式过采样：随机取一个少数类样本及其
// k 近邻（欧氏距离，只在少数类内部找），在两点连线上均匀插值合成
// 新样本，直到两类数量相等。
//
// 约束：少数类样本数必须大于 k，否则返回 INSUFFICIENT_DATA。
// 输入矩阵不被修改；返回新矩阵与新标签。
func Oversample(x *mat.Dense, y []float64, k int, seed int64) (*mat.Dense, []float64, error) {
	rows, cols := x.Dims()

	var posIdx, negIdx []int
	for i, v := range y {
		if v == 1 {
			posIdx = append(posIdx, i)
		} else {
			negIdx = append(negIdx, i)
		}
	}

	minIdx, majCount := posIdx, len(negIdx)
	minLabel := 1.0
	if len(negIdx) < len(posIdx) {
		minIdx, majCount = negIdx, len(posIdx)
		minLabel = 0.0
	}

	need := majCount - len(minIdx)
	if need == 0 {
		out := mat.DenseCopyOf(x)
		return out, append([]float64(nil), y...), nil
	}
	if len(minIdx) <= k {
		return nil, nil, core.NewDomainError(core.ModuleSample, core.ErrorCodeInsufficientData,
			fmt.Sprintf("smote: minority class has %d samples, need more than %d neighbors", len(minIdx), k))
	}

	neighbors := nearestNeighbors(x, minIdx, k)

	out := mat.NewDense(rows+need, cols, nil)
	row := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(row, i, x)
		out.SetRow(i, row)
	}
	outY := make([]float64, rows+need)
	copy(outY, y)

	rng := rand.New(rand.NewSource(seed))
	a := make([]float64, cols)
	b := make([]float64, cols)
	for s := 0; s < need; s++ {
		i := rng.Intn(len(minIdx))
		j := neighbors[i][rng.Intn(k)]
		mat.Row(a, minIdx[i], x)
		mat.Row(b, minIdx[j], x)

		gap := rng.Float64()
		for c := 0; c < cols; c++ {
			row[c] = a[c] + gap*(b[c]-a[c])
		}
		out.SetRow(rows+s, row)
		outY[rows+s] = minLabel
	}
	return out, outY, nil
}

// nearestNeighbors 为每个少数类样本找出少数类内部的 k 近邻。
// 返回的下标是 minIdx 内的相对下标。
func nearestNeighbors(x *mat.Dense, minIdx []int, k int) [][]int {
	m := len(minIdx)
	_, cols := x.Dims()

	rowsBuf := make([][]float64, m)
	for i, r := range minIdx {
		rowsBuf[i] = make([]float64, cols)
		mat.Row(rowsBuf[i], r, x)
	}

	neighbors := make([][]int, m)
	type cand struct {
		idx  int
		dist float64
	}
	for i := 0; i < m; i++ {
		cands := make([]cand, 0, m-1)
		for j := 0; j < m; j++ {
			if j == i {
				continue
			}
			d := 0.0
			for c := 0; c < cols; c++ {
				diff := rowsBuf[i][c] - rowsBuf[j][c]
				d += diff * diff
			}
			cands = append(cands, cand{idx: j, dist: d})
		}
		sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })

		nb := make([]int, k)
		for n := 0; n < k; n++ {
			nb[n] = cands[n].idx
		}
		neighbors[i] = nb
	}
	return neighbors
}
