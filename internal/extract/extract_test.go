package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	biderrors "bidwriter/internal/errors"
)

func TestAllowedFile(t *testing.T) {
	allowed := []string{"tender.pdf", "tender.docx", "tender.doc", "TENDER.PDF", "a.b.docx"}
	for _, name := range allowed {
		assert.True(t, AllowedFile(name), name)
	}
	rejected := []string{"tender.txt", "tender", "tender.pdf.exe", "", ".pdf.txt"}
	for _, name := range rejected {
		assert.False(t, AllowedFile(name), name)
	}
}

func TestExtractRejectsUnsupportedExtension(t *testing.T) {
	e := NewDocumentExtractor(nil)
	_, err := e.Extract("notes.txt")
	require.Error(t, err)
	assert.Equal(t, biderrors.KindBadRequest, biderrors.KindOf(err))
}

func writeDocx(t *testing.T, paragraphs []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tender.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)

	var b strings.Builder
	b.WriteString(`<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, p := range paragraphs {
		b.WriteString(`<w:p><w:r><w:t>` + p + `</w:t></w:r></w:p>`)
	}
	b.WriteString(`</w:body></w:document>`)
	_, err = w.Write([]byte(b.String()))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return path
}

func TestExtractDocx(t *testing.T) {
	path := writeDocx(t, []string{"第一段", "第二段"})
	e := NewDocumentExtractor(nil)

	text, err := e.Extract(path)
	require.NoError(t, err)
	assert.Equal(t, "第一段\n第二段", text)
}

func TestExtractDocxSplitRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tender.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	doc := `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
		`<w:p><w:r><w:t>招标</w:t></w:r><w:r><w:t>文件</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	_, err = w.Write([]byte(doc))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	text, err := extractDocx(path)
	require.NoError(t, err)
	assert.Equal(t, "招标文件", text)
}

func TestExtractCorruptDocxIsExternalFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tender.docx")
	require.NoError(t, os.WriteFile(path, []byte("not a zip archive"), 0o644))

	e := NewDocumentExtractor(nil)
	_, err := e.Extract(path)
	require.Error(t, err)
	assert.Equal(t, biderrors.KindExternal, biderrors.KindOf(err))
	assert.Equal(t, "无法读取文件内容", err.Error())
}

func TestExtractDocxWithoutDocumentPart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tender.docx")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("word/other.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte("<x/>"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	_, err = extractDocx(path)
	assert.Error(t, err)
}

func TestExtractMissingPDF(t *testing.T) {
	e := NewDocumentExtractor(nil)
	_, err := e.Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Equal(t, biderrors.KindExternal, biderrors.KindOf(err))
}

func TestReadDocumentTextIgnoresNonTextNodes(t *testing.T) {
	doc := `<w:document xmlns:w="x"><w:body>` +
		`<w:p><w:pPr><w:pStyle w:val="Heading1"/></w:pPr><w:r><w:t>标题</w:t></w:r></w:p>` +
		`<w:p><w:r><w:tab/><w:t>正文</w:t></w:r></w:p>` +
		`</w:body></w:document>`
	text, err := readDocumentText(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "标题\n正文", text)
}
