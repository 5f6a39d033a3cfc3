// Package attrikit 是一个员工流失风险评分工具包（Attrition Kit）。
//
// 设计要点：
// - Pipeline-first: 批式评分通过 Node 串联（Feature → Sample → Train → Calibrate → Score）
// - Artifacts-first: 阶段间拟合产物（scaler、特征掩码、模型）显式传递，不做隐式共享状态
// - Node 可扩展: 自定义 Node 即可插拔扩展
package attrikit

import "github.com/rushteam/attrikit/pipeline"

// 轻量 facade：便于用户直接 import "attrikit" 使用核心抽象。
type Pipeline = pipeline.Pipeline
type Node = pipeline.Node
type Kind = pipeline.Kind

const (
	KindFeature     = pipeline.KindFeature
	KindSample      = pipeline.KindSample
	KindTrain       = pipeline.KindTrain
	KindCalibrate   = pipeline.KindCalibrate
	KindScore       = pipeline.KindScore
	KindPostProcess = pipeline.KindPostProcess
)
