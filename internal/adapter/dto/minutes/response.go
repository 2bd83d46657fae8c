package minutes

// MinuteResponse is one meeting-minutes row shaped for the API
type MinuteResponse struct {
	ID             string   `json:"id"`
	WeekNumber     int      `json:"week_number"`
	MeetingDate    string   `json:"meeting_date"`
	Details        string   `json:"details,omitempty"`
	Attendees      []string `json:"attendees,omitempty"`
	MeetingTopic   string   `json:"meeting_topic"`
	MeetingPurpose string   `json:"meeting_purpose,omitempty"`
	Summary        string   `json:"summary,omitempty"`
	TargetDate     string   `json:"target_date,omitempty"`
	FuturePlan     string   `json:"future_plan,omitempty"`
	Decisions      []string `json:"decisions,omitempty"`
	Responsible    string   `json:"responsible,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	CreatedAt      string   `json:"created_at"`
}

// StatsResponse summarizes the imported corpus
type StatsResponse struct {
	RowCount     int64  `json:"row_count"`
	FirstMeeting string `json:"first_meeting"`
	LastMeeting  string `json:"last_meeting"`
	WeeksCovered int    `json:"weeks_covered"`
}
