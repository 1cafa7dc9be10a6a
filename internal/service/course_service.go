package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
)

// ── 课程模块业务错误 ──

var (
	// ErrCourseNotFound 课程不存在或不属于当前用户，两种情况不做区分
	ErrCourseNotFound   = fmt.Errorf("课程不存在: %w", apperrors.ErrNotFound)
	ErrCourseFieldEmpty = fmt.Errorf("课程代码和名称不能为空: %w", apperrors.ErrConstraintViolation)
)

// CourseInput 创建/更新课程的输入；ColorHex 为空时使用默认颜色
type CourseInput struct {
	Code     string
	Name     string
	ColorHex string
}

// CourseService 课程业务接口
type CourseService interface {
	Create(ctx context.Context, userID, semesterID int64, in CourseInput) (*model.Course, error)
	GetByID(ctx context.Context, userID, courseID int64) (*model.Course, error)
	// ListBySemester 按课程代码排序
	ListBySemester(ctx context.Context, userID, semesterID int64) ([]model.Course, error)
	Update(ctx context.Context, userID, courseID int64, in CourseInput) (*model.Course, error)
	// Delete 在同一事务中删除课程及其全部作业
	Delete(ctx context.Context, userID, courseID int64) error
}

type courseService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCourseService 创建 CourseService 实例
func NewCourseService(repo *repository.Repository, logger *zap.Logger) CourseService {
	return &courseService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *courseService) Create(ctx context.Context, userID, semesterID int64, in CourseInput) (*model.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	course := &model.Course{
		UserID:     userID,
		SemesterID: semesterID,
		Code:       in.Code,
		Name:       in.Name,
		ColorHex:   in.color(),
	}

	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := tx.Semester.GetByID(ctx, semesterID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSemesterNotFound
			}
			return err
		}
		return tx.Course.Create(ctx, course)
	})
	if err != nil {
		if errors.Is(err, ErrSemesterNotFound) {
			return nil, err
		}
		s.logger.Error("创建课程失败",
			zap.Int64("user_id", userID), zap.Int64("semester_id", semesterID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return course, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *courseService) GetByID(ctx context.Context, userID, courseID int64) (*model.Course, error) {
	course, err := getOwnedCourse(ctx, s.repo, userID, courseID)
	if err != nil {
		if !errors.Is(err, ErrCourseNotFound) {
			s.logger.Error("查询课程失败", zap.Int64("id", courseID), zap.Error(err))
			return nil, translateStoreError(err)
		}
		return nil, err
	}
	return course, nil
}

// ────────────────────── ListBySemester ──────────────────────

func (s *courseService) ListBySemester(ctx context.Context, userID, semesterID int64) ([]model.Course, error) {
	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Int64("semester_id", semesterID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	courses, err := s.repo.Course.ListByUserAndSemester(ctx, userID, semesterID)
	if err != nil {
		s.logger.Error("列出课程失败",
			zap.Int64("user_id", userID), zap.Int64("semester_id", semesterID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return courses, nil
}

// ────────────────────── Update ──────────────────────

func (s *courseService) Update(ctx context.Context, userID, courseID int64, in CourseInput) (*model.Course, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var course *model.Course
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := getOwnedCourse(ctx, tx, userID, courseID)
		if err != nil {
			return err
		}

		existing.Code = in.Code
		existing.Name = in.Name
		existing.ColorHex = in.color()

		if err := tx.Course.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		course = existing
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return nil, err
		}
		s.logger.Error("更新课程失败", zap.Int64("id", courseID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return course, nil
}

// ────────────────────── Delete ──────────────────────

func (s *courseService) Delete(ctx context.Context, userID, courseID int64) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := getOwnedCourse(ctx, tx, userID, courseID); err != nil {
			return err
		}
		if err := tx.Course.DeleteCascade(ctx, courseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCourseNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return err
		}
		s.logger.Error("删除课程失败", zap.Int64("id", courseID), zap.Error(err))
		return translateStoreError(err)
	}

	s.logger.Info("课程已删除", zap.Int64("id", courseID), zap.Int64("user_id", userID))
	return nil
}

// ── 内部辅助方法 ──

// getOwnedCourse 读取课程并校验归属；不属于 userID 时同样返回 ErrCourseNotFound
func getOwnedCourse(ctx context.Context, repo *repository.Repository, userID, courseID int64) (*model.Course, error) {
	course, err := repo.Course.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	if course.UserID != userID {
		return nil, ErrCourseNotFound
	}
	return course, nil
}

func (in CourseInput) validate() error {
	if strings.TrimSpace(in.Code) == "" || strings.TrimSpace(in.Name) == "" {
		return ErrCourseFieldEmpty
	}
	return nil
}

func (in CourseInput) color() string {
	if strings.TrimSpace(in.ColorHex) == "" {
		return model.DefaultCourseColor
	}
	return in.ColorHex
}
