package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/medicare-platform/admin-api/internal/model"
)

// RegisterCustomValidations wires the closed-set field validators into
// gin's binding engine. Call once during startup.
func RegisterCustomValidations() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	if err := v.RegisterValidation("bloodgroup", validBloodGroup); err != nil {
		return err
	}
	if err := v.RegisterValidation("urgency", validUrgency); err != nil {
		return err
	}
	if err := v.RegisterValidation("userrole", validRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("userstatus", validStatus); err != nil {
		return err
	}
	return nil
}

func validBloodGroup(fl validator.FieldLevel) bool {
	return model.IsValidBloodGroup(fl.Field().String())
}

func validUrgency(fl validator.FieldLevel) bool {
	return model.IsValidUrgencyLevel(model.UrgencyLevel(fl.Field().String()))
}

func validRole(fl validator.FieldLevel) bool {
	return model.IsValidRole(model.Role(fl.Field().String()))
}

func validStatus(fl validator.FieldLevel) bool {
	return model.IsValidUserStatus(model.UserStatus(fl.Field().String()))
}
