package minutes

// ListMinutesRequest represents query parameters for listing minutes
type ListMinutesRequest struct {
	WeekNumber *int   `query:"week_number" validate:"omitempty,min=1,max=53"`
	Topic      string `query:"topic"`
	Attendee   string `query:"attendee"`
	From       string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To         string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"page_size" validate:"omitempty,min=1,max=200"`
	SortBy     string `query:"sort_by" validate:"omitempty,oneof=meeting_date week_number meeting_topic created_at"`
	SortOrder  string `query:"sort_order" validate:"omitempty,oneof=asc desc"`
}
