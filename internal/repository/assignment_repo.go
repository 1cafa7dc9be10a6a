package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
)

// AssignmentRepository 作业数据访问接口
type AssignmentRepository interface {
	Create(ctx context.Context, assignment *model.Assignment) error
	GetByID(ctx context.Context, id int64) (*model.Assignment, error)
	ListByCourse(ctx context.Context, courseID int64) ([]model.Assignment, error)
	// ListUpcoming 返回 (用户, 学期) 范围内全部作业，按截止时刻升序、ID 升序
	ListUpcoming(ctx context.Context, userID, semesterID int64) ([]model.Assignment, error)
	CountByCourse(ctx context.Context, courseID int64) (int64, error)
	// Update 全量替换（含置空 topics/notes）；记录不存在返回 gorm.ErrRecordNotFound
	Update(ctx context.Context, assignment *model.Assignment) error
	Delete(ctx context.Context, id int64) error
}

type assignmentRepo struct {
	db *gorm.DB
}

// NewAssignmentRepo 创建 AssignmentRepository 实例
func NewAssignmentRepo(db *gorm.DB) AssignmentRepository {
	return &assignmentRepo{db: db}
}

func (r *assignmentRepo) Create(ctx context.Context, assignment *model.Assignment) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *assignmentRepo) GetByID(ctx context.Context, id int64) (*model.Assignment, error) {
	var assignment model.Assignment
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *assignmentRepo) ListByCourse(ctx context.Context, courseID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("due_at_utc ASC, id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) ListUpcoming(ctx context.Context, userID, semesterID int64) ([]model.Assignment, error) {
	var assignments []model.Assignment
	err := r.db.WithContext(ctx).
		Select("assignments.*").
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("courses.user_id = ? AND courses.semester_id = ?", userID, semesterID).
		Order("assignments.due_at_utc ASC, assignments.id ASC").
		Find(&assignments).Error
	return assignments, err
}

func (r *assignmentRepo) CountByCourse(ctx context.Context, courseID int64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("course_id = ?", courseID).
		Count(&n).Error
	return n, err
}

func (r *assignmentRepo) Update(ctx context.Context, assignment *model.Assignment) error {
	result := r.db.WithContext(ctx).
		Model(&model.Assignment{}).
		Where("id = ?", assignment.AssignmentID).
		Updates(map[string]interface{}{
			"course_id":  assignment.CourseID,
			"type":       assignment.Type,
			"title":      assignment.Title,
			"due_at_utc": assignment.DueAt,
			"topics":     assignment.Topics,
			"notes":      assignment.Notes,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assignmentRepo) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Assignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
