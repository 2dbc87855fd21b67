package schema

// ReadingQuizResultTable represents the 'reading.quizresult' table
type ReadingQuizResultTable struct {
	Table       string
	ID          string
	UserID      string
	MilestoneID string
	Score       string
	Total       string
	SubmittedAt string
}

// ReadingQuizResult is the schema definition for reading.quizresult
var ReadingQuizResult = ReadingQuizResultTable{
	Table:       "reading.quizresult",
	ID:          "id",
	UserID:      "userid",
	MilestoneID: "milestoneid",
	Score:       "score",
	Total:       "total",
	SubmittedAt: "submittedat",
}

func (t ReadingQuizResultTable) Columns() []string {
	return []string{t.ID, t.UserID, t.MilestoneID, t.Score, t.Total, t.SubmittedAt}
}
