package dto

import "time"

// ── 作业模块 DTO ──

// AssignmentRequest 创建/更新作业请求
// due_at 为带时区偏移的 RFC3339 时间；course_id 仅在更新时用于移动作业
type AssignmentRequest struct {
	CourseID int64     `json:"course_id" binding:"omitempty,min=1"`
	Type     string    `json:"type"      binding:"required,assignment_type"`
	Title    string    `json:"title"     binding:"required,max=255"`
	DueAt    time.Time `json:"due_at"    binding:"required"`
	Topics   *string   `json:"topics"    binding:"omitempty,max=500"`
	Notes    *string   `json:"notes"     binding:"omitempty,max=5000"`
}

// AssignmentResponse 作业响应
type AssignmentResponse struct {
	ID         int64   `json:"id"`
	CourseID   int64   `json:"course_id"`
	Type       string  `json:"type"`
	Title      string  `json:"title"`
	DueAt      string  `json:"due_at"`       // UTC，RFC3339
	DueAtLocal string  `json:"due_at_local"` // 展示时区
	Topics     *string `json:"topics,omitempty"`
	Notes      *string `json:"notes,omitempty"`
}

// UpcomingQuery 即将截止列表查询参数；limit 缺省时使用服务端配置
type UpcomingQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100"`
}

// UpcomingItemResponse 即将截止列表项
type UpcomingItemResponse struct {
	AssignmentID int64   `json:"assignment_id"`
	CourseID     int64   `json:"course_id"`
	CourseCode   string  `json:"course_code"`
	CourseColor  string  `json:"course_color"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Topics       *string `json:"topics,omitempty"`
	DueAt        string  `json:"due_at"`
	DueAtLocal   string  `json:"due_at_local"`
	Label        string  `json:"label"`
}
