package pipeline

import (
	"context"

	"github.com/rushteam/attrikit/core"
)

// Kind 用于标记 Node 所属的管道阶段，方便观测/编排（例如按阶段打点）。
type Kind string

const (
	KindFeature     Kind = "feature"     // 特征阶段：派生列 / 标准化 / 特征选择
	KindSample      Kind = "sample"      // 采样阶段：切分与类别平衡
	KindTrain       Kind = "train"       // 训练阶段：超参搜索与拟合
	KindCalibrate   Kind = "calibrate"   // 校准阶段：概率校准
	KindScore       Kind = "score"       // 评分阶段：风险分与分层
	KindPostProcess Kind = "postprocess" // 后处理阶段：归因 / 报告
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 table -> 输出 table”的形态；拟合产物通过 rctx.Artifacts
// 显式向后传递，Node 之间没有其他共享状态。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RunContext,
		tbl *core.Table,
	) (*core.Table, error)
}
