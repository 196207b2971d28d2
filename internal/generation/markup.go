package generation

import "strings"

// FormatContent converts the model's Markdown-like draft into the flat markup
// the frontend renders. This is deliberately a naive line classifier, not a
// Markdown parser: no nested lists, no inline emphasis, no multi-line
// paragraphs. Downstream rendering depends on this exact flat structure.
func FormatContent(content string) string {
	var b strings.Builder
	for _, line := range strings.Split(content, "\n") {
		switch {
		case strings.HasPrefix(line, "### "):
			b.WriteString("<h3>" + line[4:] + "</h3>")
		case strings.HasPrefix(line, "## "):
			b.WriteString("<h2>" + line[3:] + "</h2>")
		case strings.HasPrefix(line, "# "):
			b.WriteString("<h1>" + line[2:] + "</h1>")
		case strings.HasPrefix(line, "- "):
			b.WriteString("<li>" + line[2:] + "</li>")
		default:
			b.WriteString("<p>" + line + "</p>")
		}
	}
	return b.String()
}
