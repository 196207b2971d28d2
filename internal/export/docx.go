package export

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"bidwriter/internal/analysis"
	biderrors "bidwriter/internal/errors"
)

const docxMediaType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// MediaType is the content type served for DOCX downloads.
func MediaType() string { return docxMediaType }

type docxBlock struct {
	style string
	text  string
}

// BuildDocx renders the proposal markup into a minimal OOXML word package:
// a title heading, the project metadata block, then one paragraph per markup
// element.
func BuildDocx(content string, info analysis.ProjectInfo) ([]byte, error) {
	blocks := []docxBlock{
		{style: "Title", text: orUnnamed(info.Name)},
		{text: "项目信息："},
		{text: fmt.Sprintf("项目名称：%s", orUnknown(info.Name, "未知项目"))},
		{text: fmt.Sprintf("项目类型：%s", orUnknown(info.Type, "未知"))},
		{text: fmt.Sprintf("预算金额：%s", orUnknown(info.Budget, "未知"))},
		{text: fmt.Sprintf("截止日期：%s", orUnknown(info.Deadline, "未知"))},
	}

	parsed, err := parseMarkup(content)
	if err != nil {
		return nil, biderrors.Internal(fmt.Errorf("parse proposal markup: %w", err))
	}
	blocks = append(blocks, parsed...)

	return assembleDocx(blocks)
}

func orUnnamed(name string) string {
	if strings.TrimSpace(name) == "" {
		return "unnamed_project"
	}
	return name
}

func orUnknown(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

// parseMarkup flattens the h1/h2/h3/li/p stream into styled blocks.
func parseMarkup(content string) ([]docxBlock, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, err
	}

	var blocks []docxBlock
	doc.Find("body").Children().Each(func(_ int, sel *goquery.Selection) {
		text := sel.Text()
		switch goquery.NodeName(sel) {
		case "h1":
			blocks = append(blocks, docxBlock{style: "Heading1", text: text})
		case "h2":
			blocks = append(blocks, docxBlock{style: "Heading2", text: text})
		case "h3":
			blocks = append(blocks, docxBlock{style: "Heading3", text: text})
		case "li":
			blocks = append(blocks, docxBlock{text: "• " + text})
		default:
			blocks = append(blocks, docxBlock{text: text})
		}
	})
	return blocks, nil
}

func assembleDocx(blocks []docxBlock) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	parts := []struct {
		name string
		data string
	}{
		{"[Content_Types].xml", docxContentTypes},
		{"_rels/.rels", docxPackageRels},
		{"word/_rels/document.xml.rels", docxDocumentRels},
		{"word/styles.xml", docxStyles},
		{"word/document.xml", renderDocument(blocks)},
	}
	for _, part := range parts {
		w, err := zw.Create(part.name)
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", part.name, err)
		}
		if _, err := w.Write([]byte(part.data)); err != nil {
			return nil, fmt.Errorf("write %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close package: %w", err)
	}
	return buf.Bytes(), nil
}

func renderDocument(blocks []docxBlock) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, block := range blocks {
		b.WriteString("<w:p>")
		if block.style != "" {
			fmt.Fprintf(&b, `<w:pPr><w:pStyle w:val="%s"/></w:pPr>`, block.style)
		}
		fmt.Fprintf(&b, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, escapeXML(block.text))
		b.WriteString("</w:p>")
	}
	b.WriteString(`<w:sectPr/></w:body></w:document>`)
	return b.String()
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return ""
	}
	return buf.String()
}

const docxContentTypes = xml.Header + `<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`</Types>`

const docxPackageRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`</Relationships>`

const docxDocumentRels = xml.Header + `<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`</Relationships>`

const docxStyles = xml.Header + `<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:rPr><w:b/><w:sz w:val="56"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:rPr><w:b/><w:sz w:val="40"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading2"><w:name w:val="heading 2"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading3"><w:name w:val="heading 3"/><w:rPr><w:b/><w:sz w:val="28"/></w:rPr></w:style>` +
	`</w:styles>`
