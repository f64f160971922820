package get_availability_range

import (
	"github.com/Diana0617/BC-sub011/internal/api/handlers/get_availability"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

// AvailabilityRangeResponse дни диапазона, в которых есть рабочее окно
type AvailabilityRangeResponse struct {
	StartDate string                                      `json:"startDate"`
	EndDate   string                                      `json:"endDate"`
	Days      []*get_availability.DayAvailabilityResponse `json:"days"`
}

// FromDays конвертирует результат сервиса в HTTP response
func FromDays(startDate, endDate string, days []*availability.DayAvailability) *AvailabilityRangeResponse {
	items := make([]*get_availability.DayAvailabilityResponse, len(days))
	for i, day := range days {
		items[i] = get_availability.FromDayAvailability(day)
	}
	return &AvailabilityRangeResponse{
		StartDate: startDate,
		EndDate:   endDate,
		Days:      items,
	}
}
