package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
)

// ── 作业模块业务错误 ──

var (
	// ErrAssignmentNotFound 作业不存在或所属课程不属于当前用户
	ErrAssignmentNotFound    = fmt.Errorf("作业不存在: %w", apperrors.ErrNotFound)
	ErrInvalidAssignmentType = fmt.Errorf("无效的作业类型: %w", apperrors.ErrConstraintViolation)
	ErrAssignmentTitleEmpty  = fmt.Errorf("作业标题不能为空: %w", apperrors.ErrConstraintViolation)
	ErrAssignmentDueRequired = fmt.Errorf("作业截止时间不能为空: %w", apperrors.ErrConstraintViolation)
)

// AssignmentInput 创建/更新作业的输入
// DueAt 为绝对时刻，存储前统一换算为 UTC；Topics/Notes 为空白时存为 NULL
type AssignmentInput struct {
	// CourseID 仅更新时有效：非零表示把作业移到当前用户的另一门课程
	CourseID int64
	Type     model.AssignmentType
	Title    string
	DueAt    time.Time
	Topics   *string
	Notes    *string
}

// AssignmentService 作业业务接口
type AssignmentService interface {
	Create(ctx context.Context, userID, courseID int64, in AssignmentInput) (*model.Assignment, error)
	GetByID(ctx context.Context, userID, assignmentID int64) (*model.Assignment, error)
	// ListByCourse 按截止时刻升序
	ListByCourse(ctx context.Context, userID, courseID int64) ([]model.Assignment, error)
	Update(ctx context.Context, userID, assignmentID int64, in AssignmentInput) (*model.Assignment, error)
	Delete(ctx context.Context, userID, assignmentID int64) error
}

type assignmentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewAssignmentService 创建 AssignmentService 实例
func NewAssignmentService(repo *repository.Repository, logger *zap.Logger) AssignmentService {
	return &assignmentService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *assignmentService) Create(ctx context.Context, userID, courseID int64, in AssignmentInput) (*model.Assignment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	assignment := &model.Assignment{CourseID: courseID}
	in.applyTo(assignment)

	// 课程引用校验与插入在同一事务内
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := getOwnedCourse(ctx, tx, userID, courseID); err != nil {
			return err
		}
		return tx.Assignment.Create(ctx, assignment)
	})
	if err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return nil, err
		}
		s.logger.Error("创建作业失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return assignment, nil
}

// ────────────────────── GetByID ──────────────────────

func (s *assignmentService) GetByID(ctx context.Context, userID, assignmentID int64) (*model.Assignment, error) {
	assignment, err := getOwnedAssignment(ctx, s.repo, userID, assignmentID)
	if err != nil {
		return nil, s.wrapLookupError("查询作业失败", assignmentID, err)
	}
	return assignment, nil
}

// ────────────────────── ListByCourse ──────────────────────

func (s *assignmentService) ListByCourse(ctx context.Context, userID, courseID int64) ([]model.Assignment, error) {
	if _, err := getOwnedCourse(ctx, s.repo, userID, courseID); err != nil {
		if errors.Is(err, ErrCourseNotFound) {
			return nil, err
		}
		s.logger.Error("查询课程失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	assignments, err := s.repo.Assignment.ListByCourse(ctx, courseID)
	if err != nil {
		s.logger.Error("列出作业失败", zap.Int64("course_id", courseID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	return assignments, nil
}

// ────────────────────── Update ──────────────────────

func (s *assignmentService) Update(ctx context.Context, userID, assignmentID int64, in AssignmentInput) (*model.Assignment, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	var assignment *model.Assignment
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := getOwnedAssignment(ctx, tx, userID, assignmentID)
		if err != nil {
			return err
		}

		if in.CourseID != 0 && in.CourseID != existing.CourseID {
			if _, err := getOwnedCourse(ctx, tx, userID, in.CourseID); err != nil {
				return err
			}
			existing.CourseID = in.CourseID
		}
		in.applyTo(existing)

		if err := tx.Assignment.Update(ctx, existing); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		assignment = existing
		return nil
	})
	if err != nil {
		return nil, s.wrapLookupError("更新作业失败", assignmentID, err)
	}

	return assignment, nil
}

// ────────────────────── Delete ──────────────────────

func (s *assignmentService) Delete(ctx context.Context, userID, assignmentID int64) error {
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		if _, err := getOwnedAssignment(ctx, tx, userID, assignmentID); err != nil {
			return err
		}
		if err := tx.Assignment.Delete(ctx, assignmentID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAssignmentNotFound
			}
			return err
		}
		return nil
	})
	if err != nil {
		return s.wrapLookupError("删除作业失败", assignmentID, err)
	}
	return nil
}

// ── 内部辅助方法 ──

// getOwnedAssignment 读取作业并经由所属课程校验归属。
// 作业引用的课程不存在说明数据已损坏，返回 ErrCorrupted。
func getOwnedAssignment(ctx context.Context, repo *repository.Repository, userID, assignmentID int64) (*model.Assignment, error) {
	assignment, err := repo.Assignment.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAssignmentNotFound
		}
		return nil, err
	}

	course, err := repo.Course.GetByID(ctx, assignment.CourseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: 作业 %d 引用的课程 %d 不存在",
				apperrors.ErrCorrupted, assignment.AssignmentID, assignment.CourseID)
		}
		return nil, err
	}
	if course.UserID != userID {
		return nil, ErrAssignmentNotFound
	}
	return assignment, nil
}

// wrapLookupError 已知业务错误原样返回，其余记录日志后归类
func (s *assignmentService) wrapLookupError(msg string, id int64, err error) error {
	switch {
	case errors.Is(err, ErrAssignmentNotFound), errors.Is(err, ErrCourseNotFound):
		return err
	case errors.Is(err, apperrors.ErrCorrupted):
		s.logger.Error("作业数据不一致", zap.Int64("id", id), zap.Error(err))
		return err
	}
	s.logger.Error(msg, zap.Int64("id", id), zap.Error(err))
	return translateStoreError(err)
}

func (in AssignmentInput) validate() error {
	if !model.IsValidAssignmentType(string(in.Type)) {
		return ErrInvalidAssignmentType
	}
	if strings.TrimSpace(in.Title) == "" {
		return ErrAssignmentTitleEmpty
	}
	if in.DueAt.IsZero() {
		return ErrAssignmentDueRequired
	}
	return nil
}

func (in AssignmentInput) applyTo(a *model.Assignment) {
	a.Type = in.Type
	a.Title = in.Title
	a.DueAt = model.NewUnixTime(in.DueAt)
	a.Topics = normalizeOptional(in.Topics)
	a.Notes = normalizeOptional(in.Notes)
}
