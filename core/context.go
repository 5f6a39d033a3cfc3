package core

// RunContext 承载一次评分运行的全局配置，贯穿整个 Pipeline 透传。
// 各阶段拟合出的产物（标准化参数、特征掩码、模型）都显式挂在
// Artifacts 上，而不是藏在节点内部，保证每个阶段可独立复现与测试。
type RunContext struct {
	// Seed 是全局随机种子，所有阶段的随机性都从它派生。
	Seed int64

	// IDColumn / TargetColumn 是标识列与二分类目标列的列名。
	IDColumn     string
	TargetColumn string

	// Params 请求级参数，供自定义 Node 使用。
	Params map[string]any

	// Artifacts 是各阶段产出的拟合产物，后续阶段只读使用。
	Artifacts Artifacts
}

// PutParam 写入请求级参数。
func (rctx *RunContext) PutParam(key string, v any) {
	if rctx.Params == nil {
		rctx.Params = make(map[string]any)
	}
	rctx.Params[key] = v
}

// GetParam 读取请求级参数。
func (rctx *RunContext) GetParam(key string) (any, bool) {
	if rctx.Params == nil {
		return nil, false
	}
	v, ok := rctx.Params[key]
	return v, ok
}
