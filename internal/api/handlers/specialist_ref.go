package handlers

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

// Query-параметры идентификатора специалиста
const (
	ParamSpecialistProfileID = "specialistProfileId"
	ParamSpecialistUserID    = "specialistUserId"
)

// SpecialistRefFromQuery читает specialistProfileId или specialistUserId.
// Должен быть задан ровно один из них
func SpecialistRefFromQuery(query url.Values) (domain.SpecialistRef, error) {
	profileID, err := optionalID(query, ParamSpecialistProfileID)
	if err != nil {
		return domain.SpecialistRef{}, err
	}
	userID, err := optionalID(query, ParamSpecialistUserID)
	if err != nil {
		return domain.SpecialistRef{}, err
	}
	return domain.NewSpecialistRef(profileID, userID)
}

func optionalID(query url.Values, key string) (int64, error) {
	raw := query.Get(key)
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return id, nil
}
