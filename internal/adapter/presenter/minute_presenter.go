package presenter

import (
	"github.com/insightlab/meeting-insights/internal/adapter/dto/common"
	"github.com/insightlab/meeting-insights/internal/adapter/dto/minutes"
	"github.com/insightlab/meeting-insights/internal/domain/entities"
	"github.com/insightlab/meeting-insights/internal/domain/repositories"
)

const dateLayout = "2006-01-02"

// ToMinuteResponse converts a Minute entity to its API shape
func ToMinuteResponse(m *entities.Minute) *minutes.MinuteResponse {
	if m == nil {
		return nil
	}

	resp := &minutes.MinuteResponse{
		ID:             m.ID.String(),
		WeekNumber:     m.WeekNumber,
		MeetingDate:    m.MeetingDate.Format(dateLayout),
		Details:        m.Details,
		Attendees:      m.AttendeeList(),
		MeetingTopic:   m.MeetingTopic,
		MeetingPurpose: m.MeetingPurpose,
		Summary:        m.Summary,
		FuturePlan:     m.FuturePlan,
		Decisions:      m.DecisionList(),
		Responsible:    m.Responsible,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if m.TargetDate != nil {
		resp.TargetDate = m.TargetDate.Format(dateLayout)
	}
	return resp
}

// ToMinuteListResponse converts a page of minutes with pagination metadata
func ToMinuteListResponse(rows []*entities.Minute, total int64, page, pageSize int) *common.ListResponse {
	data := make([]*minutes.MinuteResponse, len(rows))
	for i, m := range rows {
		data[i] = ToMinuteResponse(m)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize != 0 {
		totalPages++
	}

	return &common.ListResponse{
		Data: data,
		Pagination: &common.PaginationResponse{
			Page:       page,
			PageSize:   pageSize,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}
}

// ToStatsResponse converts corpus statistics to their API shape
func ToStatsResponse(stats *repositories.CorpusStats) *minutes.StatsResponse {
	if stats == nil {
		return nil
	}
	return &minutes.StatsResponse{
		RowCount:     stats.RowCount,
		FirstMeeting: stats.FirstMeeting.Format(dateLayout),
		LastMeeting:  stats.LastMeeting.Format(dateLayout),
		WeeksCovered: stats.WeeksCovered,
	}
}
