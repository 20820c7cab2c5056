package rest

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/RealTimeMap/RealTimeMap-backend/domain"
)

// RegisterValidations installs the custom binding rules on gin's validator
// engine. Call once before building the route table.
func RegisterValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("reaction_type", func(fl validator.FieldLevel) bool {
			return domain.ReactionType(fl.Field().String()).Valid()
		})
	}
}
