package library

import "fmt"

// Image is one entry of the static image catalog.
type Image struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Images returns the static catalog offered to the proposal editor.
func Images() []Image {
	return []Image{
		{ID: 1, Name: "公司logo", URL: "/static/images/logo.png", Category: "公司形象"},
		{ID: 2, Name: "项目示意图", URL: "/static/images/project.png", Category: "项目展示"},
		{ID: 3, Name: "组织架构", URL: "/static/images/org.png", Category: "团队介绍"},
		{ID: 4, Name: "资质证书", URL: "/static/images/cert.png", Category: "资质证明"},
		{ID: 5, Name: "技术流程", URL: "/static/images/flow.png", Category: "技术方案"},
	}
}

// SearchResult is one entry of the mock web search.
type SearchResult struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Source  string `json:"source"`
}

// Search fabricates reference material for a query. There is no real search
// backend; results are templated from the query text.
func Search(query string) []SearchResult {
	return []SearchResult{
		{
			Title:   fmt.Sprintf("关于%s的行业标准", query),
			Content: fmt.Sprintf("%s是一种重要的技术/产品/服务，在行业中有明确的标准和规范...", query),
			Source:  "行业标准网",
		},
		{
			Title:   fmt.Sprintf("%s最新研究进展", query),
			Content: fmt.Sprintf("近期研究表明，%s在应用领域有了新的突破...", query),
			Source:  "技术研究中心",
		},
		{
			Title:   fmt.Sprintf("%s成功案例分析", query),
			Content: fmt.Sprintf("某公司成功应用%s解决了实际问题...", query),
			Source:  "案例分析网",
		},
	}
}
