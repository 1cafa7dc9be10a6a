package repository

import (
	"context"

	"gorm.io/gorm"
)

// Repository 所有 Repository 的聚合入口
type Repository struct {
	db *gorm.DB

	User       UserRepository
	Semester   SemesterRepository
	Course     CourseRepository
	Assignment AssignmentRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		User:       NewUserRepo(db),
		Semester:   NewSemesterRepo(db),
		Course:     NewCourseRepo(db),
		Assignment: NewAssignmentRepo(db),
	}
}

// Transaction 在单个事务中执行 fn，fn 收到绑定到该事务的 Repository。
// fn 返回错误或 panic 时整体回滚，成功返回后提交。
// 未绑定底层连接（单元测试用内存 mock 组装）时直接以自身调用 fn。
func (r *Repository) Transaction(ctx context.Context, fn func(tx *Repository) error) error {
	if r.db == nil {
		return fn(r)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}
