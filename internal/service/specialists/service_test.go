package specialists

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
	specialistRepo "github.com/Diana0617/BC-sub011/internal/infra/storage/specialist"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// memRepo хранилище в памяти с семантикой ON CONFLICT DO NOTHING
type memRepo struct {
	mu       sync.Mutex
	users    map[domain.UserID]*domain.User
	profiles map[domain.SpecialistProfileID]*domain.SpecialistProfile
	offers   map[domain.UserID][]int64
	nextID   domain.SpecialistProfileID
	inserts  int
	findErr  error
}

func newMemRepo() *memRepo {
	return &memRepo{
		users:    map[domain.UserID]*domain.User{},
		profiles: map[domain.SpecialistProfileID]*domain.SpecialistProfile{},
		offers:   map[domain.UserID][]int64{},
		nextID:   1,
	}
}

func (r *memRepo) FindProfileInBusiness(_ context.Context, businessID int64, id domain.SpecialistProfileID) (*domain.SpecialistProfile, *domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, nil, r.findErr
	}
	p, ok := r.profiles[id]
	if !ok || p.BusinessID != businessID {
		return nil, nil, specialistRepo.ErrProfileNotFound
	}
	u := r.users[p.UserID]
	if u == nil || !u.IsActive() {
		return nil, nil, specialistRepo.ErrProfileNotFound
	}
	cp := *p
	cu := *u
	return &cp, &cu, nil
}

func (r *memRepo) FindUserInBusiness(_ context.Context, businessID int64, id domain.UserID, roles []domain.UserRole) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || u.BusinessID != businessID || !u.IsActive() {
		return nil, specialistRepo.ErrUserNotFound
	}
	for _, role := range roles {
		if role == u.Role {
			cu := *u
			return &cu, nil
		}
	}
	return nil, specialistRepo.ErrUserNotFound
}

func (r *memRepo) FindProfileByUser(_ context.Context, businessID int64, userID domain.UserID) (*domain.SpecialistProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == userID && p.BusinessID == businessID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, specialistRepo.ErrProfileNotFound
}

func (r *memRepo) CreateProfileIfNotExists(_ context.Context, profile *domain.SpecialistProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.profiles {
		if p.UserID == profile.UserID && p.BusinessID == profile.BusinessID {
			return nil
		}
	}
	r.inserts++
	cp := *profile
	cp.ID = r.nextID
	r.nextID++
	r.profiles[cp.ID] = &cp
	return nil
}

func (r *memRepo) OffersService(_ context.Context, userID domain.UserID, serviceID int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.offers[userID] {
		if id == serviceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memRepo) ListByService(_ context.Context, businessID, serviceID int64, _ []domain.UserRole) ([]domain.SpecialistCandidate, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.SpecialistCandidate
	for userID, services := range r.offers {
		for _, id := range services {
			if id != serviceID {
				continue
			}
			u := r.users[userID]
			identity := domain.SpecialistIdentity{UserID: userID, FirstName: u.FirstName, Source: domain.SourceUserID}
			for _, p := range r.profiles {
				if p.UserID == userID && p.BusinessID == businessID {
					identity.ProfileID = p.ID
				}
			}
			out = append(out, domain.SpecialistCandidate{Identity: identity, Role: u.Role})
		}
	}
	return out, nil
}

func (r *memRepo) addUser(id domain.UserID, businessID int64, role domain.UserRole) {
	r.users[id] = &domain.User{ID: id, BusinessID: businessID, FirstName: "Ana", LastName: "Gomez", Role: role, Status: domain.UserStatusActive}
}

func TestResolve_ByProfileID(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(7, 1, domain.RoleSpecialist)
	repo.profiles[55] = &domain.SpecialistProfile{ID: 55, UserID: 7, BusinessID: 1, IsActive: true}

	svc := NewService(repo, nopLogger{})
	identity, err := svc.Resolve(context.Background(), 1, domain.ProfileRef(55))
	require.NoError(t, err)

	assert.Equal(t, domain.UserID(7), identity.UserID)
	assert.Equal(t, domain.SpecialistProfileID(55), identity.ProfileID)
	assert.Equal(t, domain.SourceSpecialistProfile, identity.Source)
	assert.Equal(t, "Ana Gomez", identity.FullName())
}

func TestResolve_ByUserIDCreatesProfile(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(9, 1, domain.RoleBusiness)

	svc := NewService(repo, nopLogger{})
	identity, err := svc.Resolve(context.Background(), 1, domain.UserRef(9))
	require.NoError(t, err)

	assert.Equal(t, domain.UserID(9), identity.UserID)
	assert.Equal(t, domain.SourceUserID, identity.Source)
	require.NotZero(t, identity.ProfileID)
	assert.Equal(t, "Propietario - Especialista", repo.profiles[identity.ProfileID].Specialization)
}

func TestResolve_Idempotent(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(9, 1, domain.RoleReceptionistSpecialist)
	svc := NewService(repo, nopLogger{})

	first, err := svc.Resolve(context.Background(), 1, domain.UserRef(9))
	require.NoError(t, err)
	second, err := svc.Resolve(context.Background(), 1, domain.UserRef(9))
	require.NoError(t, err)

	assert.Equal(t, first.UserID, second.UserID)
	assert.Equal(t, first.ProfileID, second.ProfileID)
	assert.Equal(t, 1, repo.inserts)

	// Разрешение через полученный профиль дает того же пользователя
	viaProfile, err := svc.Resolve(context.Background(), 1, domain.ProfileRef(first.ProfileID))
	require.NoError(t, err)
	assert.Equal(t, first.UserID, viaProfile.UserID)
	assert.Equal(t, first.ProfileID, viaProfile.ProfileID)
}

func TestResolve_ConcurrentCallsCreateOneProfile(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(9, 1, domain.RoleSpecialist)
	svc := NewService(repo, nopLogger{})

	const workers = 8
	results := make([]domain.SpecialistIdentity, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			identity, err := svc.Resolve(context.Background(), 1, domain.UserRef(9))
			assert.NoError(t, err)
			results[i] = identity
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, results[0].ProfileID, r.ProfileID)
	}
	assert.Equal(t, 1, repo.inserts)
}

func TestResolve_NotFound(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(3, 1, domain.RoleReceptionist)
	repo.addUser(4, 2, domain.RoleSpecialist)
	repo.users[5] = &domain.User{ID: 5, BusinessID: 1, Role: domain.RoleSpecialist, Status: domain.UserStatusInactive}

	svc := NewService(repo, nopLogger{})

	for _, id := range []domain.UserID{3, 4, 5, 999} {
		_, err := svc.Resolve(context.Background(), 1, domain.UserRef(id))
		assert.ErrorIs(t, err, ErrSpecialistNotFound, "user=%d", id)
	}

	_, err := svc.Resolve(context.Background(), 1, domain.ProfileRef(999))
	assert.ErrorIs(t, err, ErrSpecialistNotFound)

	for _, ref := range []domain.SpecialistRef{{}, {ProfileID: 1, UserID: 1}, {UserID: -1}} {
		_, err := svc.Resolve(context.Background(), 1, ref)
		assert.ErrorIs(t, err, ErrInvalidInput, "ref=%+v", ref)
	}
}

func TestResolve_RepositoryError(t *testing.T) {
	repo := newMemRepo()
	repo.findErr = errors.New("connection reset")

	_, err := NewService(repo, nopLogger{}).Resolve(context.Background(), 1, domain.ProfileRef(1))
	assert.ErrorIs(t, err, ErrInternal)
}

func TestListForService_FillsMissingProfiles(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(7, 1, domain.RoleSpecialist)
	repo.addUser(8, 1, domain.RoleSpecialist)
	repo.profiles[55] = &domain.SpecialistProfile{ID: 55, UserID: 7, BusinessID: 1}
	repo.offers[7] = []int64{20}
	repo.offers[8] = []int64{20}

	list, err := NewService(repo, nopLogger{}).ListForService(context.Background(), 1, 20)
	require.NoError(t, err)
	require.Len(t, list, 2)
	for _, s := range list {
		assert.NotZero(t, s.ProfileID)
	}
	assert.Equal(t, 1, repo.inserts)
}

func TestResolve_OverlappingIDSpaces(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(1, 1, domain.RoleBusiness)
	repo.addUser(2, 1, domain.RoleSpecialist)
	repo.users[2].FirstName = "Sofia"
	svc := NewService(repo, nopLogger{})

	// Профиль пользователя 2 получает ID 1, совпадающий с ID владельца
	specialist, err := svc.Resolve(context.Background(), 1, domain.UserRef(2))
	require.NoError(t, err)
	require.Equal(t, domain.SpecialistProfileID(1), specialist.ProfileID)

	owner, err := svc.Resolve(context.Background(), 1, domain.UserRef(1))
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(1), owner.UserID)
	assert.Equal(t, domain.SourceUserID, owner.Source)
	assert.Equal(t, "Ana", owner.FirstName)
	assert.NotEqual(t, specialist.ProfileID, owner.ProfileID)

	viaProfile, err := svc.Resolve(context.Background(), 1, domain.ProfileRef(1))
	require.NoError(t, err)
	assert.Equal(t, domain.UserID(2), viaProfile.UserID)
	assert.Equal(t, "Sofia", viaProfile.FirstName)
}

func TestListForService_DefaultSpecializationByRole(t *testing.T) {
	repo := newMemRepo()
	repo.addUser(1, 1, domain.RoleBusiness)
	repo.addUser(2, 1, domain.RoleReceptionistSpecialist)
	repo.addUser(3, 1, domain.RoleSpecialist)
	for id := domain.UserID(1); id <= 3; id++ {
		repo.offers[id] = []int64{5}
	}

	list, err := NewService(repo, nopLogger{}).ListForService(context.Background(), 1, 5)
	require.NoError(t, err)
	require.Len(t, list, 3)

	want := map[domain.UserID]string{
		1: "Propietario - Especialista",
		2: "Recepcionista - Especialista",
		3: "Especialista",
	}
	for _, s := range list {
		profile := repo.profiles[s.ProfileID]
		require.NotNil(t, profile)
		assert.Equal(t, s.UserID, profile.UserID)
		assert.Equal(t, want[s.UserID], profile.Specialization, "user=%d", s.UserID)
	}
}
