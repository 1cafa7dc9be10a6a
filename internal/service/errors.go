package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
)

// translateStoreError 把模块未单独处理的 gorm 错误归入 pkg/errors 的分类
func translateStoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%w: %v", apperrors.ErrNotFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %v", apperrors.ErrConstraintViolation, err)
	}
	return err
}

// normalizeOptional 空串或纯空白视为未填写（存为 NULL），其余原样保留
func normalizeOptional(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
