package service

import (
	"codequest_backend/internal/util"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// notFound 将记录不存在转换为业务错误，其他错误原样返回
func notFound(err error, kind, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %q", util.ErrNotFound, kind, id)
	}
	return err
}
