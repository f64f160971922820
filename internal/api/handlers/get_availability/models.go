package get_availability

import (
	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

// DayAvailabilityResponse HTTP response model
type DayAvailabilityResponse struct {
	Date           string              `json:"date"`
	DayOfWeek      string              `json:"dayOfWeek"`
	Branch         BranchResponse      `json:"branch"`
	Specialist     *SpecialistResponse `json:"specialist,omitempty"`
	Service        *ServiceResponse    `json:"service,omitempty"`
	WorkingHours   *WorkingHours       `json:"workingHours,omitempty"`
	Slots          []SlotResponse      `json:"slots"`
	TotalSlots     int                 `json:"totalSlots"`
	AvailableSlots int                 `json:"availableSlots"`
	OccupiedSlots  int                 `json:"occupiedSlots"`
	Closed         bool                `json:"closed,omitempty"`
	Message        string              `json:"message,omitempty"`
}

type BranchResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type SpecialistResponse struct {
	ID        int64  `json:"id"`
	ProfileID int64  `json:"profileId,omitempty"`
	Name      string `json:"name"`
}

type ServiceResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Duration int    `json:"duration"`
	Price    string `json:"price"`
}

type WorkingHours struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type SlotResponse struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// FromDayAvailability конвертирует доступность дня в HTTP response
func FromDayAvailability(day *availability.DayAvailability) *DayAvailabilityResponse {
	slots := make([]SlotResponse, len(day.Slots))
	for i, slot := range day.Slots {
		slots[i] = SlotResponse{
			StartTime: slot.StartTime.String(),
			EndTime:   slot.EndTime.String(),
		}
	}

	resp := &DayAvailabilityResponse{
		Date:           day.Date.Format(domain.DateFormat),
		DayOfWeek:      day.DayOfWeek,
		Branch:         BranchResponse{ID: day.Branch.ID, Name: day.Branch.Name},
		Slots:          slots,
		TotalSlots:     day.TotalSlots,
		AvailableSlots: day.AvailableSlots,
		OccupiedSlots:  day.OccupiedSlots,
		Closed:         day.Closed,
		Message:        day.Message,
	}

	if day.Specialist != nil {
		resp.Specialist = &SpecialistResponse{
			ID:        int64(day.Specialist.UserID),
			ProfileID: int64(day.Specialist.ProfileID),
			Name:      day.Specialist.FullName(),
		}
	}
	if day.Service != nil {
		resp.Service = &ServiceResponse{
			ID:       day.Service.ID,
			Name:     day.Service.Name,
			Duration: day.Service.Duration,
			Price:    day.Service.Price,
		}
	}
	if day.WorkingHours != nil {
		resp.WorkingHours = &WorkingHours{
			Start: day.WorkingHours.Start.String(),
			End:   day.WorkingHours.End.String(),
		}
	}

	return resp
}
