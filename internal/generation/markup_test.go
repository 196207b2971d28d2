package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatContentHeadings(t *testing.T) {
	input := "# 投标函\n## 报价说明\n### 明细"
	assert.Equal(t, "<h1>投标函</h1><h2>报价说明</h2><h3>明细</h3>", FormatContent(input))
}

func TestFormatContentListAndParagraph(t *testing.T) {
	input := "- 第一点\n- 第二点\n正文段落"
	assert.Equal(t, "<li>第一点</li><li>第二点</li><p>正文段落</p>", FormatContent(input))
}

func TestFormatContentNoSeparators(t *testing.T) {
	out := FormatContent("a\nb")
	assert.Equal(t, "<p>a</p><p>b</p>", out)
	assert.NotContains(t, out, "\n")
}

func TestFormatContentMarkerNeedsSpace(t *testing.T) {
	// A bare "#" or "-" without a trailing space is just text.
	assert.Equal(t, "<p>#标题</p>", FormatContent("#标题"))
	assert.Equal(t, "<p>-项目</p>", FormatContent("-项目"))
}

func TestFormatContentEmptyLines(t *testing.T) {
	assert.Equal(t, "<p></p>", FormatContent(""))
	assert.Equal(t, "<p></p><p></p>", FormatContent("\n"))
}

func TestFormatContentPreservesOrder(t *testing.T) {
	input := "段落\n# 标题\n- 条目"
	assert.Equal(t, "<p>段落</p><h1>标题</h1><li>条目</li>", FormatContent(input))
}
