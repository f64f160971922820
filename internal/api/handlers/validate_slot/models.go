package validate_slot

import (
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/availability"
)

// ValidateSlotRequest HTTP request model. Время в RFC3339.
// Специалист задается ровно одним из specialistProfileId и specialistUserId
type ValidateSlotRequest struct {
	SpecialistProfileID int64  `json:"specialistProfileId,omitempty" validate:"required_without=SpecialistUserID,excluded_with=SpecialistUserID,gte=0"`
	SpecialistUserID    int64  `json:"specialistUserId,omitempty" validate:"required_without=SpecialistProfileID,excluded_with=SpecialistProfileID,gte=0"`
	ServiceID           int64  `json:"serviceId" validate:"required,gt=0"`
	StartTime           string `json:"startTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	EndTime             string `json:"endTime" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ValidateSlotResponse HTTP response model
type ValidateSlotResponse struct {
	Available bool   `json:"available"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToServiceRequest конвертирует HTTP запрос в запрос сервиса
func (r *ValidateSlotRequest) ToServiceRequest(businessID, branchID int64) (*availability.ValidateRequest, error) {
	specialist, err := domain.NewSpecialistRef(r.SpecialistProfileID, r.SpecialistUserID)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.EndTime)
	if err != nil {
		return nil, err
	}

	return &availability.ValidateRequest{
		BusinessID: businessID,
		BranchID:   branchID,
		Specialist: specialist,
		ServiceID:  r.ServiceID,
		StartTime:  start,
		EndTime:    end,
	}, nil
}
