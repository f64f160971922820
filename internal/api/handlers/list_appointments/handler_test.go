package list_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/api/middleware"
	"github.com/Diana0617/BC-sub011/internal/service/appointments"
	"github.com/Diana0617/BC-sub011/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
	req *models.ListRequest
}

func (f *fakeService) List(_ context.Context, req *models.ListRequest) (*models.AppointmentListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{{ID: 100}}}, nil
}

func serve(svc AppointmentService, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/businesses/{businessId}/appointments", NewHandler(svc, nopLogger{}).Handle)
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), 1))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest(1, 7, url.Values{
		"branchId":        {"2"},
		"specialistId":    {"8"},
		"status":          {"CONFIRMED"},
		"date":            {"2025-03-10"},
		"includeInactive": {"true"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *req.BranchID)
	assert.Equal(t, int64(8), *req.SpecialistID)
	assert.Equal(t, "CONFIRMED", *req.Status)
	assert.True(t, req.IncludeInactive)
	assert.Equal(t, 24*time.Hour, req.To.Sub(*req.From))

	req, err = ToServiceRequest(1, 7, url.Values{"from": {"2025-03-10"}, "to": {"2025-03-16"}})
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, req.To.Sub(*req.From))

	_, err = ToServiceRequest(1, 7, url.Values{"branchId": {"x"}})
	assert.Error(t, err)
	_, err = ToServiceRequest(1, 7, url.Values{"includeInactive": {"maybe"}})
	assert.Error(t, err)
}

func TestHandle(t *testing.T) {
	svc := &fakeService{}
	rec := serve(svc, "/businesses/1/appointments?branchId=2")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"appointments":[`)
	assert.Equal(t, int64(1), svc.req.UserID)

	rec = serve(&fakeService{err: appointments.ErrAccessDenied}, "/businesses/1/appointments")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = serve(&fakeService{err: appointments.ErrInvalidInput}, "/businesses/1/appointments?status=DONE")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(&fakeService{}, "/businesses/1/appointments?date=tomorrow")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
