// Package model 提供本地训练的树模型：CART 决策树与随机森林。
// 模型只依赖内存中的矩阵，不涉及远程推理。
package model

import "gonum.org/v1/gonum/mat"

// Classifier 是二分类模型的统一接口。
// y 取值 {0,1}，PredictProba 返回逐行的正类概率。
type Classifier interface {
	Name() string
	Fit(x *mat.Dense, y []float64) error
	PredictProba(x *mat.Dense) ([]float64, error)
	Importances() []float64
}
