package orchestrator

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bidwriter/internal/analysis"
	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/generation"
	"bidwriter/internal/llm"
	"bidwriter/internal/task"
)

type stubExtractor struct {
	text string
	err  error
}

func (s *stubExtractor) Extract(path string) (string, error) {
	return s.text, s.err
}

func newOrchestrator(t *testing.T, extractor *stubExtractor, client llm.Client) *Orchestrator {
	t.Helper()
	analyzer := analysis.NewAnalyzer(client, 0, nil)
	generator := generation.NewGenerator(client, nil)
	parsing := task.NewRegistry(64, time.Minute)
	generationTasks := task.NewRegistry(64, time.Minute)
	return New(extractor, analyzer, generator, parsing, generationTasks, nil)
}

func validAnalysisJSON() string {
	return `{"project_info":{"name":"测试项目"},"scoring_criteria":[],"outline":[{"id":"1","title":"技术方案"}]}`
}

func TestProcessUploadSuccess(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return validAnalysisJSON(), nil
		},
	}
	o := newOrchestrator(t, &stubExtractor{text: "招标文件正文"}, client)

	result, err := o.ProcessUpload(context.Background(), "uploads/tender.pdf")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(result.TaskID, "parse_"))
	assert.Equal(t, "招标文件正文", result.Content)

	status, err := o.ParsingStatus(result.TaskID)
	require.NoError(t, err)
	assert.Equal(t, task.Status{Progress: 100, State: task.StateSuccess, Message: "解析完成"}, status)
}

func TestProcessUploadAnalysisFallback(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "", errors.New("connection refused")
		},
	}
	o := newOrchestrator(t, &stubExtractor{text: "招标文件正文"}, client)

	result, err := o.ProcessUpload(context.Background(), "uploads/tender.pdf")
	require.NoError(t, err, "analysis failure must not fail the upload")
	assert.Equal(t, analysis.FallbackResult(), result.Analysis)

	status, err := o.ParsingStatus(result.TaskID)
	require.NoError(t, err)
	assert.Equal(t, task.StateSuccess, status.State)
	assert.Equal(t, 100, status.Progress)
}

func TestProcessUploadExtractionFailure(t *testing.T) {
	extractErr := biderrors.Externalf(errors.New("bad zip"), "无法读取文件内容")
	o := newOrchestrator(t, &stubExtractor{err: extractErr}, &llm.MockClient{})

	result, err := o.ProcessUpload(context.Background(), "uploads/tender.docx")
	require.Error(t, err)
	assert.NotEmpty(t, result.TaskID, "task id is reported even on failure")

	status, statusErr := o.ParsingStatus(result.TaskID)
	require.NoError(t, statusErr)
	assert.Equal(t, task.StateError, status.State)
	assert.Equal(t, 30, status.Progress, "progress keeps its last value on error")
	assert.Equal(t, "解析失败: 无法读取文件内容", status.Message)
}

func TestGenerateProposalSuccess(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "# 技术方案\n正文", nil
		},
	}
	o := newOrchestrator(t, &stubExtractor{}, client)

	content, err := o.GenerateProposal(context.Background(), "gen_1", analysis.StandardOutline(), analysis.ProjectInfo{}, nil)
	require.NoError(t, err)
	assert.Equal(t, "<h1>技术方案</h1><p>正文</p>", content)

	status, err := o.GenerationStatus("gen_1")
	require.NoError(t, err)
	assert.Equal(t, task.Status{Progress: 100, State: task.StateSuccess, Message: "标书生成完成"}, status)

	stored, err := o.GenerationResult("gen_1")
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestGenerateProposalFailure(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return "", errors.New("model unavailable")
		},
	}
	o := newOrchestrator(t, &stubExtractor{}, client)

	_, err := o.GenerateProposal(context.Background(), "gen_1", nil, analysis.ProjectInfo{}, nil)
	require.Error(t, err)

	status, statusErr := o.GenerationStatus("gen_1")
	require.NoError(t, statusErr)
	assert.Equal(t, task.StateError, status.State)
	assert.Equal(t, 0, status.Progress, "failed generation resets progress to zero")
	assert.True(t, strings.HasPrefix(status.Message, "生成失败: "))

	_, err = o.GenerationResult("gen_1")
	assert.True(t, biderrors.IsNotFound(err), "no result is stored for a failed generation")
}

func TestGenerateProposalRequiresTaskID(t *testing.T) {
	o := newOrchestrator(t, &stubExtractor{}, &llm.MockClient{})

	_, err := o.GenerateProposal(context.Background(), "", nil, analysis.ProjectInfo{}, nil)
	require.Error(t, err)
	assert.Equal(t, biderrors.KindBadRequest, biderrors.KindOf(err))
	assert.Equal(t, "缺少任务ID", err.Error())
}

func TestStatusEndpointsAreKindScoped(t *testing.T) {
	client := &llm.MockClient{
		CompleteFunc: func(ctx context.Context, req llm.Request) (string, error) {
			return validAnalysisJSON(), nil
		},
	}
	o := newOrchestrator(t, &stubExtractor{text: "正文"}, client)

	result, err := o.ProcessUpload(context.Background(), "uploads/tender.pdf")
	require.NoError(t, err)

	// A parse id is unknown to the generation side, and vice versa.
	_, err = o.GenerationStatus(result.TaskID)
	assert.True(t, biderrors.IsNotFound(err))
	_, err = o.ParsingStatus("gen_unknown")
	assert.True(t, biderrors.IsNotFound(err))
}
