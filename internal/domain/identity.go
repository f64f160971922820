package domain

import (
	"errors"
	"strconv"
)

// UserID идентификатор пользователя (users.id).
// Appointments и specialist_services ссылаются на специалиста через UserID
type UserID int64

// SpecialistProfileID идентификатор профиля специалиста (specialist_profiles.id).
// specialist_branch_schedules ссылаются на специалиста через SpecialistProfileID
type SpecialistProfileID int64

func (id UserID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func (id SpecialistProfileID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ErrInvalidSpecialistRef задан не ровно один идентификатор специалиста
var ErrInvalidSpecialistRef = errors.New("domain: exactly one of specialistProfileId and specialistUserId is required")

// SpecialistRef ссылка на специалиста из запроса. Задается ровно одно поле:
// users.id и specialist_profiles.id - независимые последовательности и пересекаются
type SpecialistRef struct {
	ProfileID SpecialistProfileID
	UserID    UserID
}

// ProfileRef ссылка по ID профиля специалиста
func ProfileRef(id SpecialistProfileID) SpecialistRef {
	return SpecialistRef{ProfileID: id}
}

// UserRef ссылка по ID пользователя
func UserRef(id UserID) SpecialistRef {
	return SpecialistRef{UserID: id}
}

// NewSpecialistRef собирает ссылку из необязательных полей запроса (0 - поле не задано)
func NewSpecialistRef(profileID, userID int64) (SpecialistRef, error) {
	ref := SpecialistRef{ProfileID: SpecialistProfileID(profileID), UserID: UserID(userID)}
	if err := ref.Validate(); err != nil {
		return SpecialistRef{}, err
	}
	return ref, nil
}

// Validate проверяет, что задан ровно один положительный идентификатор
func (r SpecialistRef) Validate() error {
	switch {
	case r.ProfileID > 0 && r.UserID == 0, r.UserID > 0 && r.ProfileID == 0:
		return nil
	default:
		return ErrInvalidSpecialistRef
	}
}

// IsProfile ссылка задана через ID профиля
func (r SpecialistRef) IsProfile() bool {
	return r.ProfileID > 0
}

func (r SpecialistRef) String() string {
	if r.IsProfile() {
		return "profile:" + r.ProfileID.String()
	}
	return "user:" + r.UserID.String()
}

// IdentitySource указывает, как был распознан идентификатор специалиста
type IdentitySource string

const (
	SourceSpecialistProfile IdentitySource = "specialistProfile"
	SourceUserID            IdentitySource = "userId"
)

// SpecialistIdentity обе идентичности одного специалиста.
// Получается только через нормализатор идентификаторов
type SpecialistIdentity struct {
	UserID    UserID
	ProfileID SpecialistProfileID
	Source    IdentitySource
	FirstName string
	LastName  string
}

// FullName имя специалиста для ответов API
func (s SpecialistIdentity) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
