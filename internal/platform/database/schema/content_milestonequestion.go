package schema

// ContentMilestoneQuestionTable represents the 'content.milestonequestion' table
type ContentMilestoneQuestionTable struct {
	Table        string
	ID           string
	MilestoneID  string
	Prompt       string
	Options      string
	CorrectIndex string
	SortOrder    string
	CreatedAt    string
	UpdatedAt    string
}

// ContentMilestoneQuestion is the schema definition for content.milestonequestion
var ContentMilestoneQuestion = ContentMilestoneQuestionTable{
	Table:        "content.milestonequestion",
	ID:           "id",
	MilestoneID:  "milestoneid",
	Prompt:       "prompt",
	Options:      "options",
	CorrectIndex: "correctindex",
	SortOrder:    "sortorder",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
}

// Columns returns all standard column names
func (t ContentMilestoneQuestionTable) Columns() []string {
	return []string{
		t.ID, t.MilestoneID, t.Prompt, t.Options, t.CorrectIndex,
		t.SortOrder, t.CreatedAt, t.UpdatedAt,
	}
}
