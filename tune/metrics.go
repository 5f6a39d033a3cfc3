package tune

// 二分类指标，正类恒为 1。除零情形一律返回 0。

// Classify 按阈值把概率离散为 0/1 标签。
func Classify(probs []float64, threshold float64) []float64 {
	out := make([]float64, len(probs))
	for i, p := range probs {
		if p >= threshold {
			out[i] = 1
		}
	}
	return out
}

// Precision 精确率：TP / (TP + FP)。
func Precision(y, pred []float64) float64 {
	tp, fp := counts(y, pred)
	if tp+fp == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fp)
}

// Recall 召回率：TP / (TP + FN)。
func Recall(y, pred []float64) float64 {
	tp, _ := counts(y, pred)
	fn := 0
	for i := range y {
		if y[i] == 1 && pred[i] != 1 {
			fn++
		}
	}
	if tp+fn == 0 {
		return 0
	}
	return float64(tp) / float64(tp+fn)
}

// F1 精确率与召回率的调和平均。
func F1(y, pred []float64) float64 {
	p := Precision(y, pred)
	r := Recall(y, pred)
	if p+r == 0 {
		return 0
	}
	return 2 * p * r / (p + r)
}

// Accuracy 准确率。
func Accuracy(y, pred []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	hit := 0
	for i := range y {
		if y[i] == pred[i] {
			hit++
		}
	}
	return float64(hit) / float64(len(y))
}

func counts(y, pred []float64) (tp, fp int) {
	for i := range y {
		if pred[i] == 1 {
			if y[i] == 1 {
				tp++
			} else {
				fp++
			}
		}
	}
	return tp, fp
}
