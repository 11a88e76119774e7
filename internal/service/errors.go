package service

import (
	"errors"

	"Fishing_Forum/internal/apperr"

	"gorm.io/gorm"
)

// notFoundOr 记录不存在转 404，其他错误按内部错误处理
func notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.NotFound(msg)
	}
	return internal(err)
}

func internal(err error) error {
	if _, ok := apperr.As(err); ok {
		return err
	}
	return apperr.Wrap(apperr.ErrDatabase, "internal server error", err)
}

const msgNotFound = "Not found."
