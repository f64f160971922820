package get_available_specialists

import (
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

// AvailableSpecialistsResponse HTTP response model
type AvailableSpecialistsResponse struct {
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	ServiceID   int64                `json:"serviceId"`
	Specialists []SpecialistWithSlot `json:"specialists"`
}

type SpecialistWithSlot struct {
	ID           int64  `json:"id"`
	ProfileID    int64  `json:"profileId"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	WorkingStart string `json:"workingStart"`
	WorkingEnd   string `json:"workingEnd"`
	SlotStart    string `json:"slotStart"`
	SlotEnd      string `json:"slotEnd"`
}

// FromAvailableSpecialists конвертирует результат сервиса в HTTP response
func FromAvailableSpecialists(date, at string, serviceID int64, list []availability.AvailableSpecialist) *AvailableSpecialistsResponse {
	items := make([]SpecialistWithSlot, len(list))
	for i, s := range list {
		items[i] = SpecialistWithSlot{
			ID:           int64(s.Specialist.UserID),
			ProfileID:    int64(s.Specialist.ProfileID),
			FirstName:    s.Specialist.FirstName,
			LastName:     s.Specialist.LastName,
			WorkingStart: s.WorkingHours.Start.String(),
			WorkingEnd:   s.WorkingHours.End.String(),
			SlotStart:    s.Slot.StartTime.String(),
			SlotEnd:      s.Slot.EndTime.String(),
		}
	}

	return &AvailableSpecialistsResponse{
		Date:        date,
		Time:        at,
		ServiceID:   serviceID,
		Specialists: items,
	}
}
