package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/torneos-admin-api/internal/domain"
)

func TestStepError_EsProvisioningYCausa(t *testing.T) {
	cause := errors.New("timeout")
	err := fmt.Errorf("crear usuario: %w", &domain.StepError{Step: "upsert_profile", Err: cause})

	assert.ErrorIs(t, err, domain.ErrProvisioning)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "upsert_profile", domain.FailedStep(err))
	assert.Contains(t, err.Error(), "paso upsert_profile")
}

func TestFailedStep_SinStepError(t *testing.T) {
	assert.Equal(t, "", domain.FailedStep(domain.ErrValidation))
}
