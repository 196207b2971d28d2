package extract

import (
	"fmt"
	"path/filepath"
	"strings"

	biderrors "bidwriter/internal/errors"
	"bidwriter/internal/logging"
)

// allowedExtensions is the upload allow-list; enforced before any extraction
// attempt.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".docx": true,
	".doc":  true,
}

// AllowedFile reports whether the filename carries an accepted extension.
func AllowedFile(filename string) bool {
	return allowedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Extractor maps a stored file to extracted plain text or a failure.
type Extractor interface {
	Extract(path string) (string, error)
}

// DocumentExtractor dispatches on file extension.
type DocumentExtractor struct {
	logger logging.Logger
}

// NewDocumentExtractor builds the default extractor.
func NewDocumentExtractor(logger logging.Logger) *DocumentExtractor {
	return &DocumentExtractor{logger: logging.OrNop(logger)}
}

// Extract returns the plain text of a PDF or Word document.
func (e *DocumentExtractor) Extract(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if !allowedExtensions[ext] {
		return "", biderrors.BadRequest(fmt.Sprintf("unsupported file type: %s", ext))
	}

	var (
		text string
		err  error
	)
	switch ext {
	case ".pdf":
		text, err = extractPDF(path)
	default:
		// .docx and legacy .doc both go through the OOXML reader; true
		// binary .doc files fail as unreadable.
		text, err = extractDocx(path)
	}
	if err != nil {
		e.logger.Warn("extract %s failed: %v", filepath.Base(path), err)
		return "", biderrors.Externalf(err, "无法读取文件内容")
	}
	e.logger.Debug("extracted %d chars from %s", len(text), filepath.Base(path))
	return text, nil
}
