package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"bidwriter/internal/analysis"
	"bidwriter/internal/auth"
	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/export"
	"bidwriter/internal/extract"
	"bidwriter/internal/library"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pair, err := s.authService.Login(req.Username, req.Password)
	if err != nil {
		c.JSON(biderrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":         pair.AccessToken,
		"refresh_token": pair.RefreshToken,
	})
}

func (s *Server) handleRefresh(c *gin.Context) {
	token := auth.BearerToken(c.GetHeader("Authorization"))
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
		return
	}
	access, err := s.authService.Refresh(token)
	if err != nil {
		c.JSON(biderrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": access})
}

func (s *Server) handleUpload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.cfg.Storage.MaxUploadBytes)

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file part"})
		return
	}
	if file.Filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No selected file"})
		return
	}
	if !extract.AllowedFile(file.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid file type"})
		return
	}

	if err := os.MkdirAll(s.cfg.Storage.UploadDir, 0o755); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}
	filename := export.SanitizeName(filepath.Base(file.Filename))
	path := filepath.Join(s.cfg.Storage.UploadDir, filename)
	if err := c.SaveUploadedFile(file, path); err != nil {
		s.logger.Error("store upload %s: %v", filename, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store file"})
		return
	}

	result, err := s.orchestrator.ProcessUpload(c.Request.Context(), path)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   fmt.Sprintf("解析失败: %s", err.Error()),
			"task_id": result.TaskID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "文件上传成功",
		"task_id":          result.TaskID,
		"content":          result.Content,
		"project_info":     result.Analysis.ProjectInfo,
		"scoring_criteria": result.Analysis.ScoringCriteria,
		"outline":          result.Analysis.Outline,
	})
}

func (s *Server) handleParsingStatus(c *gin.Context) {
	status, err := s.orchestrator.ParsingStatus(c.Param("task_id"))
	if err != nil {
		c.JSON(biderrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

type generateRequest struct {
	Outline         []analysis.OutlineSection   `json:"outline"`
	ProjectInfo     analysis.ProjectInfo        `json:"projectInfo"`
	ScoringCriteria []analysis.ScoringCriterion `json:"scoringCriteria"`
	TaskID          string                      `json:"task_id"`
}

func (s *Server) handleGenerateProposal(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.TaskID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少任务ID"})
		return
	}

	content, err := s.orchestrator.GenerateProposal(c.Request.Context(), req.TaskID, req.Outline, req.ProjectInfo, req.ScoringCriteria)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "生成标书失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

func (s *Server) handleGenerationStatus(c *gin.Context) {
	status, err := s.orchestrator.GenerationStatus(c.Param("task_id"))
	if err != nil {
		c.JSON(biderrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleGenerationResult(c *gin.Context) {
	content, err := s.orchestrator.GenerationResult(c.Param("task_id"))
	if err != nil {
		c.JSON(biderrors.HTTPStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

type proposalRequest struct {
	Content     string               `json:"content"`
	ProjectInfo analysis.ProjectInfo `json:"projectInfo"`
}

func (s *Server) handleSaveProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	path, err := s.store.SaveHTML(req.Content, req.ProjectInfo.Name)
	if err != nil {
		s.logger.Error("save proposal: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "标书保存失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "标书保存成功", "path": path})
}

func (s *Server) handleDownloadProposal(c *gin.Context) {
	var req proposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	pkg, err := export.BuildDocx(req.Content, req.ProjectInfo)
	if err != nil {
		s.logger.Error("build docx: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "下载标书失败"})
		return
	}

	name := export.SanitizeName(req.ProjectInfo.Name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+".docx"))
	c.Data(http.StatusOK, export.MediaType(), pkg)
}

type editRequest struct {
	Content string `json:"content"`
	Context struct {
		Label string `json:"label"`
	} `json:"context"`
}

func (s *Server) handleAIContinue(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	continued, err := s.editor.Continue(c.Request.Context(), req.Content, req.Context.Label)
	if err != nil {
		s.logger.Error("ai continue: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI续写失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"continuedContent": continued})
}

func (s *Server) handleAIExpand(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	expanded, err := s.editor.Expand(c.Request.Context(), req.Content, req.Context.Label)
	if err != nil {
		s.logger.Error("ai expand: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI扩写失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"expandedContent": expanded})
}

func (s *Server) handleAIPolish(c *gin.Context) {
	var req editRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	polished, err := s.editor.Polish(c.Request.Context(), req.Content)
	if err != nil {
		s.logger.Error("ai polish: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "AI润色失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"polishedContent": polished})
}

func (s *Server) handleImageLibrary(c *gin.Context) {
	c.JSON(http.StatusOK, library.Images())
}

type searchRequest struct {
	Query string `json:"query"`
}

func (s *Server) handleSearchContent(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	c.JSON(http.StatusOK, library.Search(req.Query))
}
