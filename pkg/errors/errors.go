// Package errors 定义跨层共享的错误分类。
// 各模块的业务错误通过 %w 包装这里的分类，调用方用 errors.Is 判断类别。
package errors

import "errors"

var (
	// ErrNotFound 引用的实体不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateUsername 用户名已被注册
	ErrDuplicateUsername = errors.New("用户名已存在")
	// ErrWrongPassword 密码摘要不匹配
	ErrWrongPassword = errors.New("密码错误")
	// ErrConstraintViolation 违反唯一性或引用完整性约束
	ErrConstraintViolation = errors.New("违反数据约束")
	// ErrStorageUnavailable 存储无法打开或迁移（启动期致命错误）
	ErrStorageUnavailable = errors.New("存储不可用")
	// ErrCorrupted 数据不变量被破坏，例如作业引用了不存在的课程
	ErrCorrupted = errors.New("数据不一致")
)
