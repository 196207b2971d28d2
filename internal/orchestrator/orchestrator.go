package orchestrator

import (
	"context"
	"fmt"

	"bidwriter/internal/analysis"
	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/extract"
	"bidwriter/internal/generation"
	"bidwriter/internal/logging"
	"bidwriter/internal/metrics"
	"bidwriter/internal/task"
)

// Orchestrator drives the two long operations, upload-and-parse and proposal
// generation, recording coarse progress as it goes. Both run synchronously
// within the caller's request; the registries exist so separate polling
// requests can observe progress and terminal states. Parsing and generation
// tasks live in separate registries, so an id of one kind is unknown to the
// other kind's status endpoint.
type Orchestrator struct {
	extractor  extract.Extractor
	analyzer   *analysis.Analyzer
	generator  *generation.Generator
	parsing    *task.Registry
	generation *task.Registry
	logger     logging.Logger
}

// New wires an orchestrator from its collaborators.
func New(extractor extract.Extractor, analyzer *analysis.Analyzer, generator *generation.Generator, parsing, generationTasks *task.Registry, logger logging.Logger) *Orchestrator {
	return &Orchestrator{
		extractor:  extractor,
		analyzer:   analyzer,
		generator:  generator,
		parsing:    parsing,
		generation: generationTasks,
		logger:     logging.OrNop(logger),
	}
}

// UploadResult is the payload of a completed upload-and-parse run.
type UploadResult struct {
	TaskID   string
	Content  string
	Analysis analysis.Result
}

// ProcessUpload extracts text from the stored file and analyzes it. Analysis
// never fails (it degrades to the fixed fallback), so the only error path is
// extraction; the returned task id is valid either way so the caller can
// report it for later status inspection.
func (o *Orchestrator) ProcessUpload(ctx context.Context, filePath string) (UploadResult, error) {
	taskID := task.NewParseID()
	status := task.Status{Progress: 10, State: task.StateProcessing, Message: "文件已上传，开始解析..."}
	o.parsing.Set(taskID, status)

	status.Progress = 30
	status.Message = "正在解析文件内容..."
	o.parsing.Set(taskID, status)

	content, err := o.extractor.Extract(filePath)
	if err != nil {
		// Progress keeps its last value; only state and message change.
		status.State = task.StateError
		status.Message = fmt.Sprintf("解析失败: %s", err.Error())
		o.parsing.Set(taskID, status)
		metrics.RecordUpload("error")
		metrics.RecordTask("parsing", "error")
		o.logger.Error("upload %s failed: %v", taskID, err)
		return UploadResult{TaskID: taskID}, err
	}

	status.Progress = 60
	status.Message = "正在使用AI分析内容..."
	o.parsing.Set(taskID, status)

	result := o.analyzer.Analyze(ctx, content)

	o.parsing.Set(taskID, task.Status{Progress: 100, State: task.StateSuccess, Message: "解析完成"})
	metrics.RecordUpload("success")
	metrics.RecordTask("parsing", "success")
	o.logger.Info("upload %s parsed, %d bytes of text", taskID, len(content))

	return UploadResult{TaskID: taskID, Content: content, Analysis: result}, nil
}

// GenerateProposal drafts the proposal for a caller-supplied task id and
// stores the result for later retrieval. On failure the task is marked error
// with progress reset to zero and no result is stored.
func (o *Orchestrator) GenerateProposal(ctx context.Context, taskID string, outline []analysis.OutlineSection, info analysis.ProjectInfo, criteria []analysis.ScoringCriterion) (string, error) {
	if taskID == "" {
		return "", biderrors.BadRequest("缺少任务ID")
	}

	o.generation.Set(taskID, task.Status{Progress: 0, State: task.StateProcessing, Message: "开始生成标书..."})
	o.generation.Set(taskID, task.Status{Progress: 30, State: task.StateProcessing, Message: "正在生成标书内容..."})
	o.generation.Set(taskID, task.Status{Progress: 60, State: task.StateProcessing, Message: "正在调用AI模型..."})

	content, err := o.generator.Draft(ctx, outline, info, criteria)
	if err != nil {
		o.generation.Set(taskID, task.Status{Progress: 0, State: task.StateError, Message: fmt.Sprintf("生成失败: %s", err.Error())})
		metrics.RecordTask("generation", "error")
		o.logger.Error("generation %s failed: %v", taskID, err)
		return "", err
	}

	o.generation.Set(taskID, task.Status{Progress: 90, State: task.StateProcessing, Message: "正在处理生成结果..."})
	o.generation.SetResult(taskID, content)
	o.generation.Set(taskID, task.Status{Progress: 100, State: task.StateSuccess, Message: "标书生成完成"})
	metrics.RecordTask("generation", "success")
	o.logger.Info("generation %s completed, %d bytes of markup", taskID, len(content))

	return content, nil
}

// ParsingStatus returns the progress snapshot of an upload-and-parse task.
func (o *Orchestrator) ParsingStatus(taskID string) (task.Status, error) {
	status, ok := o.parsing.Get(taskID)
	if !ok {
		return task.Status{}, biderrors.NotFound("Task not found")
	}
	return status, nil
}

// GenerationStatus returns the progress snapshot of a generation task.
func (o *Orchestrator) GenerationStatus(taskID string) (task.Status, error) {
	status, ok := o.generation.Get(taskID)
	if !ok {
		return task.Status{}, biderrors.NotFound("Task not found")
	}
	return status, nil
}

// GenerationResult returns the stored proposal content for a completed
// generation task.
func (o *Orchestrator) GenerationResult(taskID string) (string, error) {
	content, ok := o.generation.Result(taskID)
	if !ok {
		return "", biderrors.NotFound("Task result not found")
	}
	return content, nil
}
