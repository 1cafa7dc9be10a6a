package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
)

// CourseRepository 课程数据访问接口
type CourseRepository interface {
	Create(ctx context.Context, course *model.Course) error
	GetByID(ctx context.Context, id int64) (*model.Course, error)
	ListByUserAndSemester(ctx context.Context, userID, semesterID int64) ([]model.Course, error)
	ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error)
	// Update 全量替换可变字段（code/name/color_hex）；记录不存在返回 gorm.ErrRecordNotFound
	Update(ctx context.Context, course *model.Course) error
	// DeleteCascade 在同一事务中先删除课程下全部作业，再删除课程本身
	DeleteCascade(ctx context.Context, id int64) error
}

type courseRepo struct {
	db *gorm.DB
}

// NewCourseRepo 创建 CourseRepository 实例
func NewCourseRepo(db *gorm.DB) CourseRepository {
	return &courseRepo{db: db}
}

func (r *courseRepo) Create(ctx context.Context, course *model.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *courseRepo) GetByID(ctx context.Context, id int64) (*model.Course, error) {
	var course model.Course
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&course).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepo) ListByUserAndSemester(ctx context.Context, userID, semesterID int64) ([]model.Course, error) {
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND semester_id = ?", userID, semesterID).
		Order("code ASC, id ASC").
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) ListByIDs(ctx context.Context, ids []int64) ([]model.Course, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var courses []model.Course
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&courses).Error
	return courses, err
}

func (r *courseRepo) Update(ctx context.Context, course *model.Course) error {
	result := r.db.WithContext(ctx).
		Model(&model.Course{}).
		Where("id = ?", course.CourseID).
		Updates(map[string]interface{}{
			"code":      course.Code,
			"name":      course.Name,
			"color_hex": course.ColorHex,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *courseRepo) DeleteCascade(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("course_id = ?", id).Delete(&model.Assignment{}).Error; err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&model.Course{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			// 课程不存在：回滚已执行的作业删除
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
