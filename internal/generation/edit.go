package generation

import (
	"context"
	"fmt"

	"bidwriter/internal/llm"
	"bidwriter/internal/logging"
)

// Editor offers stateless editing assistance over already-drafted proposal
// text. Results are returned raw, without the markup transform, since the
// caller splices them into content it already controls.
type Editor struct {
	client llm.Client
	logger logging.Logger
}

// NewEditor builds an editor over the given model client.
func NewEditor(client llm.Client, logger logging.Logger) *Editor {
	return &Editor{client: client, logger: logging.OrNop(logger)}
}

// Continue writes a follow-on passage for the section named by label. An
// empty label defaults to "下一部分".
func (e *Editor) Continue(ctx context.Context, content, label string) (string, error) {
	if label == "" {
		label = "下一部分"
	}
	prompt := fmt.Sprintf("请基于下面的标书内容续写，保持风格一致，内容专业：\n\n%s\n\n请续写关于\"%s\"的内容。", content, label)
	return e.complete(ctx, "你是一位专业的标书撰写专家，擅长续写标书内容。", prompt)
}

// Expand rewrites content with more detail, focusing on the section named by
// label. An empty label defaults to "全文".
func (e *Editor) Expand(ctx context.Context, content, label string) (string, error) {
	if label == "" {
		label = "全文"
	}
	prompt := fmt.Sprintf("请扩展以下标书内容，使其更加详细、专业，增加相关细节和专业术语：\n\n%s\n\n特别关注\"%s\"部分。", content, label)
	return e.complete(ctx, "你是一位专业的标书撰写专家，擅长扩展标书内容使其更加专业详实。", prompt)
}

// Polish improves wording and fixes grammar without changing structure.
func (e *Editor) Polish(ctx context.Context, content string) (string, error) {
	prompt := fmt.Sprintf("请对以下标书内容进行润色，提升语言表达，修正语法错误，使文档更加专业、流畅：\n\n%s", content)
	return e.complete(ctx, "你是一位专业的标书语言专家，擅长润色和优化标书语言表达。", prompt)
}

func (e *Editor) complete(ctx context.Context, system, prompt string) (string, error) {
	return e.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.SystemMessage(system),
			llm.UserMessage(prompt),
		},
		Temperature: 0.3,
	})
}
