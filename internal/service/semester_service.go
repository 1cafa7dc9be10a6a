package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
)

// ── 学期模块业务错误 ──

var (
	ErrSemesterNotFound = fmt.Errorf("学期不存在: %w", apperrors.ErrNotFound)
	ErrInvalidTerm      = fmt.Errorf("学期类型只能是 Fall 或 Spring: %w", apperrors.ErrConstraintViolation)
	ErrInvalidYear      = fmt.Errorf("学年必须为正数: %w", apperrors.ErrConstraintViolation)
)

// SemesterService 学期业务接口
type SemesterService interface {
	// GetOrCreate 按 (term, year) 查找学期，不存在则创建；同一键重复调用返回同一 ID
	GetOrCreate(ctx context.Context, term string, year int) (*model.Semester, error)
	GetByID(ctx context.Context, id int64) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
}

type semesterService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSemesterService 创建 SemesterService 实例
func NewSemesterService(repo *repository.Repository, logger *zap.Logger) SemesterService {
	return &semesterService{repo: repo, logger: logger}
}

// ────────────────────── GetOrCreate ──────────────────────

func (s *semesterService) GetOrCreate(ctx context.Context, term string, year int) (*model.Semester, error) {
	t, err := model.ParseTerm(term)
	if err != nil {
		return nil, ErrInvalidTerm
	}
	if year <= 0 {
		return nil, ErrInvalidYear
	}

	semester, err := s.repo.Semester.FirstOrCreate(ctx, t, year)
	if err != nil {
		s.logger.Error("查找或创建学期失败",
			zap.String("term", string(t)), zap.Int("year", year), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return semester, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *semesterService) GetByID(ctx context.Context, id int64) (*model.Semester, error) {
	semester, err := s.repo.Semester.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Int64("id", id), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return semester, nil
}

// ────────────────────── List ──────────────────────

func (s *semesterService) List(ctx context.Context) ([]model.Semester, error) {
	semesters, err := s.repo.Semester.List(ctx)
	if err != nil {
		s.logger.Error("列出学期失败", zap.Error(err))
		return nil, translateStoreError(err)
	}

	return semesters, nil
}
