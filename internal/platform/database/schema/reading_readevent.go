package schema

// ReadingReadEventTable represents the 'reading.readevent' table
type ReadingReadEventTable struct {
	Table       string
	UserID      string
	MilestoneID string
	ReadAt      string
}

// ReadingReadEvent is the schema definition for reading.readevent
var ReadingReadEvent = ReadingReadEventTable{
	Table:       "reading.readevent",
	UserID:      "userid",
	MilestoneID: "milestoneid",
	ReadAt:      "readat",
}

func (t ReadingReadEventTable) Columns() []string {
	return []string{t.UserID, t.MilestoneID, t.ReadAt}
}
