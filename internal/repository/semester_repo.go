package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
)

// SemesterRepository 学期数据访问接口
type SemesterRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Semester, error)
	GetByKey(ctx context.Context, term model.Term, year int) (*model.Semester, error)
	List(ctx context.Context) ([]model.Semester, error)
	// FirstOrCreate 原子地按 (term, year) 查找，不存在则插入；重复调用返回同一记录
	FirstOrCreate(ctx context.Context, term model.Term, year int) (*model.Semester, error)
}

type semesterRepo struct {
	db *gorm.DB
}

// NewSemesterRepo 创建 SemesterRepository 实例
func NewSemesterRepo(db *gorm.DB) SemesterRepository {
	return &semesterRepo{db: db}
}

func (r *semesterRepo) GetByID(ctx context.Context, id int64) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) GetByKey(ctx context.Context, term model.Term, year int) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).
		Where("term = ? AND year = ?", term, year).
		First(&semester).Error
	if err != nil {
		return nil, err
	}
	return &semester, nil
}

func (r *semesterRepo) List(ctx context.Context) ([]model.Semester, error) {
	var semesters []model.Semester
	err := r.db.WithContext(ctx).
		Order("year DESC, term ASC").
		Find(&semesters).Error
	return semesters, err
}

func (r *semesterRepo) FirstOrCreate(ctx context.Context, term model.Term, year int) (*model.Semester, error) {
	var semester model.Semester
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("term = ? AND year = ?", term, year).First(&semester).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		semester = model.Semester{Term: term, Year: year}
		return tx.Create(&semester).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 另一连接抢先插入了同一键：唯一约束兜底，回读已存在的记录
		return r.GetByKey(ctx, term, year)
	}
	if err != nil {
		return nil, err
	}
	return &semester, nil
}
