package calibrate

import "math"

// sigmoid 是 Platt 缩放的单调映射：p = 1 / (1 + exp(a*f + b))。
// 对分数越大越偏正类的模型，拟合出的 a 为负。
type sigmoid struct {
	a, b float64
}

func (s sigmoid) prob(f float64) float64 {
	fApB := s.a*f + s.b
	// 两种写法数值等价，按符号选择避免溢出
	if fApB >= 0 {
		return math.Exp(-fApB) / (1 + math.Exp(-fApB))
	}
	return 1 / (1 + math.Exp(fApB))
}

// fitSigmoid 用带回溯线搜索的牛顿迭代拟合 a/b，目标是正则化目标值
// 上的对数损失（Platt 的先验平滑：正类目标 (N+ + 1)/(N+ + 2)，
// 负类目标 1/(N- + 2)）。
func fitSigmoid(scores, y []float64) sigmoid {
	const (
		maxIter = 100
		minStep = 1e-10
		sigma   = 1e-12 // Hessian 对角正则
	)

	prior1, prior0 := 0, 0
	for _, v := range y {
		if v == 1 {
			prior1++
		} else {
			prior0++
		}
	}

	hiTarget := (float64(prior1) + 1) / (float64(prior1) + 2)
	loTarget := 1 / (float64(prior0) + 2)

	t := make([]float64, len(y))
	for i, v := range y {
		if v == 1 {
			t[i] = hiTarget
		} else {
			t[i] = loTarget
		}
	}

	a := 0.0
	b := math.Log((float64(prior0) + 1) / (float64(prior1) + 1))
	fval := sigmoidLoss(scores, t, a, b)

	for iter := 0; iter < maxIter; iter++ {
		h11, h22 := sigma, sigma
		h21, g1, g2 := 0.0, 0.0, 0.0
		for i, f := range scores {
			fApB := a*f + b
			var p, q float64
			if fApB >= 0 {
				p = math.Exp(-fApB) / (1 + math.Exp(-fApB))
				q = 1 / (1 + math.Exp(-fApB))
			} else {
				p = 1 / (1 + math.Exp(fApB))
				q = math.Exp(fApB) / (1 + math.Exp(fApB))
			}
			d2 := p * q
			h11 += f * f * d2
			h22 += d2
			h21 += f * d2
			d1 := t[i] - p
			g1 += f * d1
			g2 += d1
		}

		if math.Abs(g1) < 1e-5 && math.Abs(g2) < 1e-5 {
			break
		}

		det := h11*h22 - h21*h21
		dA := -(h22*g1 - h21*g2) / det
		dB := -(-h21*g1 + h11*g2) / det
		gd := g1*dA + g2*dB

		step := 1.0
		for step >= minStep {
			newA := a + step*dA
			newB := b + step*dB
			newF := sigmoidLoss(scores, t, newA, newB)
			if newF < fval+1e-4*step*gd {
				a, b, fval = newA, newB, newF
				break
			}
			step /= 2
		}
		if step < minStep {
			break
		}
	}
	return sigmoid{a: a, b: b}
}

func sigmoidLoss(scores, t []float64, a, b float64) float64 {
	loss := 0.0
	for i, f := range scores {
		fApB := a*f + b
		if fApB >= 0 {
			loss += t[i]*fApB + math.Log1p(math.Exp(-fApB))
		} else {
			loss += (t[i]-1)*fApB + math.Log1p(math.Exp(fApB))
		}
	}
	return loss
}
