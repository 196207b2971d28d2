package analysis

// StandardOutline returns the default proposal chapter list used when the
// model fails to produce one. Entries carry no key points; FallbackResult
// backfills them.
func StandardOutline() []OutlineSection {
	return []OutlineSection{
		{ID: "1", Title: "投标函", Required: true, Description: "投标人对招标文件的响应和承诺"},
		{ID: "2", Title: "投标报价表", Required: true, Description: "详细的报价信息"},
		{ID: "3", Title: "技术方案", Required: true, Description: "详细的技术实施方案"},
		{ID: "4", Title: "项目团队", Required: true, Description: "项目团队成员介绍"},
		{ID: "5", Title: "业绩证明", Required: true, Description: "类似项目业绩证明"},
		{ID: "6", Title: "资质证书", Required: true, Description: "相关资质证书"},
		{ID: "7", Title: "售后服务方案", Required: false, Description: "售后服务承诺和方案"},
		{ID: "8", Title: "其他补充材料", Required: false, Description: "其他补充说明材料"},
	}
}

// FallbackResult is the fixed degraded analysis returned whenever the model
// call fails or its response cannot be used. Every outline entry is
// guaranteed a non-empty key_points list.
func FallbackResult() Result {
	outline := StandardOutline()
	for i := range outline {
		if len(outline[i].KeyPoints) == 0 {
			outline[i].KeyPoints = []string{"请填写关键点"}
		}
	}
	return Result{
		ProjectInfo: ProjectInfo{
			Name:         "未识别到项目名称",
			Type:         "未知",
			Budget:       "未知",
			Deadline:     "未知",
			Requirements: []string{"需求提取失败"},
		},
		ScoringCriteria: []ScoringCriterion{
			{
				ID:           "1",
				Category:     "未能识别评分类别",
				Item:         "默认评分项",
				Score:        "100",
				Description:  "无法从文档中提取评分标准",
				Requirements: []string{"请手动编辑评分要求"},
			},
		},
		Outline: outline,
	}
}
