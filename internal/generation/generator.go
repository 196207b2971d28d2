package generation

import (
	"context"
	"fmt"
	"strings"

	"bidwriter/internal/analysis"
	"bidwriter/internal/llm"
	"bidwriter/internal/logging"
)

const drafterSystemPrompt = "你是一位专业的标书撰写专家，擅长根据项目要求和评分标准生成专业、详实的标书内容。"

// Generator drafts full proposal content from an outline, project metadata
// and scoring criteria. Unlike the analyzer there is no fallback: a failed
// model call is reported, not masked, so the system never fabricates full
// proposal text.
type Generator struct {
	client llm.Client
	logger logging.Logger
}

// NewGenerator builds a generator over the given model client.
func NewGenerator(client llm.Client, logger logging.Logger) *Generator {
	return &Generator{client: client, logger: logging.OrNop(logger)}
}

// Draft produces the proposal as flat markup.
func (g *Generator) Draft(ctx context.Context, outline []analysis.OutlineSection, info analysis.ProjectInfo, criteria []analysis.ScoringCriterion) (string, error) {
	prompt := buildDraftPrompt(outline, info, criteria)

	response, err := g.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.SystemMessage(drafterSystemPrompt),
			llm.UserMessage(prompt),
		},
		Temperature: 0.5,
	})
	if err != nil {
		return "", err
	}
	return FormatContent(response), nil
}

func buildDraftPrompt(outline []analysis.OutlineSection, info analysis.ProjectInfo, criteria []analysis.ScoringCriterion) string {
	var b strings.Builder

	b.WriteString("请根据以下信息生成一份完整的标书内容。要求语言专业、结构清晰、内容详实。\n\n")
	b.WriteString("项目信息：\n")
	fmt.Fprintf(&b, "项目名称：%s\n", orDefault(info.Name, "未知项目"))
	fmt.Fprintf(&b, "项目类型：%s\n", orDefault(info.Type, "未知"))
	fmt.Fprintf(&b, "预算金额：%s\n", orDefault(info.Budget, "未知"))
	fmt.Fprintf(&b, "截止日期：%s\n", orDefault(info.Deadline, "未知"))

	b.WriteString("\n项目要求：\n")
	if len(info.Requirements) > 0 {
		b.WriteString(strings.Join(info.Requirements, ", "))
	} else {
		b.WriteString("无具体要求")
	}

	b.WriteString("\n\n评分标准：\n")
	for _, criterion := range criteria {
		fmt.Fprintf(&b, "\n%s - %s: %s", criterion.Category, criterion.Item, criterion.Description)
		if len(criterion.Requirements) > 0 {
			fmt.Fprintf(&b, "\n具体要求: %s", strings.Join(criterion.Requirements, ", "))
		}
	}

	b.WriteString("\n\n请按照以下大纲生成标书内容（以HTML格式输出，便于前端显示）：\n")
	for _, section := range outline {
		fmt.Fprintf(&b, "\n# %s\n", section.Title)
		fmt.Fprintf(&b, "%s\n", section.Description)
		fmt.Fprintf(&b, "关键点: %s\n", strings.Join(section.KeyPoints, ", "))
	}

	return b.String()
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
