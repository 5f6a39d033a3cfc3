package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rushteam/attrikit/core"
)

// Pipeline 是 attrikit 的核心抽象：把评分流程拆成可组合的 Node 链。
// 单向前馈、快速失败：任一阶段出错即中止整次运行。
type Pipeline struct {
	Nodes []Node
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RunContext,
	tbl *core.Table,
) (*core.Table, error) {
	cur := tbl
	for _, node := range p.Nodes {
		start := time.Now()
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", node.Name(), err)
		}
		slog.Debug("stage done",
			"node", node.Name(),
			"kind", string(node.Kind()),
			"rows", next.NumRows(),
			"took", time.Since(start),
		)
		cur = next
	}
	return cur, nil
}
