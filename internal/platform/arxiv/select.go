package arxiv

import (
	"PaperNotify/internal/models"
)

// SelectBest 按优先级顺序返回第一个有候选的 tag 的第一篇论文。
// tag 之间的先后完全由 priority 的位置决定，tag 内部沿用来源自身的
// 排序（这里不重排）。不在 priority 里的 tag 永远不会被选中。
func SelectBest(papersByTag map[string][]models.Paper, priority []string) *models.Paper {
	for _, tag := range priority {
		if papers, ok := papersByTag[tag]; ok && len(papers) > 0 {
			p := papers[0]
			return &p
		}
	}
	return nil
}
