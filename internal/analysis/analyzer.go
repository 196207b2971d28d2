package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"bidwriter/internal/llm"
	"bidwriter/internal/logging"
)

const systemPrompt = "你是一个专业的标书分析专家，擅长从招标文件中提取关键信息、评分标准并生成标书大纲。请始终以有效的JSON格式返回结果。"

const promptTemplate = `请分析以下招标文件内容，提取关键信息、评分标准并生成标书大纲。请以JSON格式返回，格式如下：
{
    "project_info": {
        "name": "项目名称",
        "type": "项目类型",
        "budget": "预算金额",
        "deadline": "截止日期",
        "requirements": ["主要要求1", "主要要求2", ...]
    },
    "scoring_criteria": [
        {
            "id": "1",
            "category": "评分类别",
            "item": "评分项",
            "score": "分值",
            "description": "评分标准描述",
            "requirements": ["具体要求1", "具体要求2", ...]
        },
        ...
    ],
    "outline": [
        {
            "id": "1",
            "title": "章节标题",
            "required": true/false,
            "description": "章节描述",
            "key_points": ["关键点1", "关键点2", ...]
        },
        ...
    ]
}

招标文件内容：
%s`

// Analyzer asks the external model for structured tender analysis. It never
// fails observably: any call, parse or validation problem degrades into the
// fixed fallback result so the upload flow always returns usable structure.
type Analyzer struct {
	client         llm.Client
	logger         logging.Logger
	maxInputTokens int
}

// NewAnalyzer builds an analyzer over the given model client.
func NewAnalyzer(client llm.Client, maxInputTokens int, logger logging.Logger) *Analyzer {
	return &Analyzer{
		client:         client,
		logger:         logging.OrNop(logger),
		maxInputTokens: maxInputTokens,
	}
}

// Analyze extracts project metadata, scoring criteria and a proposal outline
// from tender document text.
func (a *Analyzer) Analyze(ctx context.Context, content string) Result {
	result, err := a.tryAnalyze(ctx, content)
	if err != nil {
		a.logger.Warn("analysis degraded to fallback: %v", err)
		return FallbackResult()
	}
	return result
}

func (a *Analyzer) tryAnalyze(ctx context.Context, content string) (Result, error) {
	bounded := TruncateTokens(content, a.maxInputTokens)
	if len(bounded) < len(content) {
		a.logger.Info("analysis input truncated from %d to %d bytes", len(content), len(bounded))
	}

	response, err := a.client.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			llm.SystemMessage(systemPrompt),
			llm.UserMessage(fmt.Sprintf(promptTemplate, bounded)),
		},
		Temperature: 0.3,
		JSONMode:    true,
	})
	if err != nil {
		return Result{}, err
	}
	if strings.TrimSpace(response) == "" {
		return Result{}, fmt.Errorf("model returned empty content")
	}

	// Strict parse only: a malformed response is degraded, never repaired.
	var decoded map[string]any
	if err := json.Unmarshal([]byte(response), &decoded); err != nil {
		return Result{}, fmt.Errorf("parse model response: %w", err)
	}
	if _, ok := decoded["project_info"]; !ok {
		return Result{}, fmt.Errorf("model response missing project_info")
	}
	if _, ok := decoded["outline"]; !ok {
		return Result{}, fmt.Errorf("model response missing outline")
	}

	// The parsed values pass through untouched; outline entries without
	// key_points are not backfilled on this path.
	return Result{
		ProjectInfo:     decoded["project_info"],
		ScoringCriteria: decoded["scoring_criteria"],
		Outline:         decoded["outline"],
	}, nil
}
