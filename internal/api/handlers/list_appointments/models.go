package list_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/Diana0617/BC-sub011/internal/domain"
	"github.com/Diana0617/BC-sub011/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задает один день, from/to - период (to включительно)
func ToServiceRequest(businessID, userID int64, query url.Values) (*models.ListRequest, error) {
	req := &models.ListRequest{
		UserID:     userID,
		BusinessID: businessID,
	}

	if v := query.Get("branchId"); v != "" {
		branchID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid branchId: %w", err)
		}
		req.BranchID = &branchID
	}

	if v := query.Get("specialistId"); v != "" {
		specialistID, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid specialistId: %w", err)
		}
		req.SpecialistID = &specialistID
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	if v := query.Get("date"); v != "" {
		date, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		to := date.AddDate(0, 0, 1)
		req.From = &date
		req.To = &to
	} else {
		if v := query.Get("from"); v != "" {
			from, err := time.Parse(domain.DateFormat, v)
			if err != nil {
				return nil, fmt.Errorf("invalid from: %w", err)
			}
			req.From = &from
		}
		if v := query.Get("to"); v != "" {
			to, err := time.Parse(domain.DateFormat, v)
			if err != nil {
				return nil, fmt.Errorf("invalid to: %w", err)
			}
			to = to.AddDate(0, 0, 1)
			req.To = &to
		}
	}

	if v := query.Get("includeInactive"); v != "" {
		includeInactive, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive value: %w", err)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
