package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 按结构体 tag 校验入参，错误类型交给 response 层翻译
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
