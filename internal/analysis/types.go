package analysis

// ProjectInfo is the metadata block of an analysis result.
type ProjectInfo struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Budget       string   `json:"budget"`
	Deadline     string   `json:"deadline"`
	Requirements []string `json:"requirements"`
}

// ScoringCriterion is one scoring-table entry.
type ScoringCriterion struct {
	ID           string   `json:"id"`
	Category     string   `json:"category"`
	Item         string   `json:"item"`
	Score        string   `json:"score"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements,omitempty"`
}

// OutlineSection is one proposal outline entry.
type OutlineSection struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Required    bool     `json:"required"`
	Description string   `json:"description"`
	KeyPoints   []string `json:"key_points,omitempty"`
}

// Result is what the analyzer hands back to the upload flow. On the success
// path the three fields hold the decoded JSON values untouched, so callers
// serialize exactly what the model produced; on the fallback path they hold
// the typed literals from fallback.go.
type Result struct {
	ProjectInfo     any `json:"project_info"`
	ScoringCriteria any `json:"scoring_criteria"`
	Outline         any `json:"outline"`
}
