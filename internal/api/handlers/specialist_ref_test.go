package handlers

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Diana0617/BC-sub011/internal/domain"
)

func TestSpecialistRefFromQuery(t *testing.T) {
	ref, err := SpecialistRefFromQuery(url.Values{ParamSpecialistProfileID: {"70"}})
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileRef(70), ref)

	ref, err = SpecialistRefFromQuery(url.Values{ParamSpecialistUserID: {"7"}})
	require.NoError(t, err)
	assert.Equal(t, domain.UserRef(7), ref)

	for name, query := range map[string]url.Values{
		"none":     {},
		"both":     {ParamSpecialistProfileID: {"70"}, ParamSpecialistUserID: {"7"}},
		"not int":  {ParamSpecialistProfileID: {"abc"}},
		"negative": {ParamSpecialistUserID: {"-7"}},
	} {
		_, err := SpecialistRefFromQuery(query)
		assert.Error(t, err, name)
	}
}
