package dto

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
)

// RegisterValidators 向 gin 的绑定校验器注册自定义标签：
//
//	term             Fall / Spring
//	assignment_type  HW / Quiz / Midterm / Final / Project / Essay / Other
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("binding 校验器类型不是 *validator.Validate")
	}

	if err := v.RegisterValidation("term", func(fl validator.FieldLevel) bool {
		_, err := model.ParseTerm(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}

	return v.RegisterValidation("assignment_type", func(fl validator.FieldLevel) bool {
		return model.IsValidAssignmentType(fl.Field().String())
	})
}
