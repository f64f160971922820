package update_appointment_status

import (
	"github.com/Diana0617/BC-sub011/internal/service/appointments/models"
)

// UpdateStatusRequest HTTP request model
type UpdateStatusRequest struct {
	Status string  `json:"status" validate:"required,oneof=CONFIRMED IN_PROGRESS COMPLETED CANCELED NO_SHOW"`
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

// ToServiceRequest конвертирует HTTP request в модель сервиса
func (r *UpdateStatusRequest) ToServiceRequest(userID int64) *models.UpdateStatusRequest {
	reason := ""
	if r.Reason != nil {
		reason = *r.Reason
	}

	return &models.UpdateStatusRequest{
		UserID: userID,
		Status: r.Status,
		Reason: reason,
	}
}
