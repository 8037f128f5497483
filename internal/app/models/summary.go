package models

// Summary is a stored result of the PDF summarizer.
type Summary struct {
	ID            string     `json:"id"`
	UserID        string     `json:"userId"`
	SummaryTitle  string     `json:"summaryTitle"`
	SummaryResult string     `json:"summaryResult"`
	CreatedAt     *Timestamp `json:"createdAt,omitempty"`
	Language      string     `json:"language,omitempty"`
}
