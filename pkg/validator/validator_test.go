package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medicare-platform/admin-api/internal/model"
)

func TestCustomValidationTags(t *testing.T) {
	require.NoError(t, RegisterCustomValidations())

	tests := []struct {
		name    string
		payload interface{}
		wantErr bool
	}{
		{"valid user status", &model.UpdateUserStatusRequest{Status: model.UserStatusSuspended}, false},
		{"invalid user status", &model.UpdateUserStatusRequest{Status: "banned"}, true},
		{"valid urgency", &model.CreateDonationRequestRequest{UrgencyLevel: model.UrgencyHigh}, false},
		{"invalid urgency", &model.CreateDonationRequestRequest{UrgencyLevel: "Extreme"}, true},
		{"empty urgency defers to service default", &model.CreateDonationRequestRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(tt.payload)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
