package query

// AskRequest represents a natural-language question against the minutes corpus
type AskRequest struct {
	Utterance string `json:"utterance" validate:"required,min=1,max=1000"`
}

// ExportRequest represents a request to export a question's result set
type ExportRequest struct {
	Utterance string `json:"utterance" validate:"required,min=1,max=1000"`
}

// HistoryRequest represents query parameters for the audit-trail listing
type HistoryRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=200"`
}
