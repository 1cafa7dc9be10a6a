package dto

// ── 学期模块 DTO ──

// SemesterRequest 按 (term, year) 查找或创建学期
type SemesterRequest struct {
	Term string `json:"term" binding:"required,term"`
	Year int    `json:"year" binding:"required,gte=1900,lte=9999"`
}

// SemesterResponse 学期响应
type SemesterResponse struct {
	ID    int64  `json:"id"`
	Term  string `json:"term"`
	Year  int    `json:"year"`
	Label string `json:"label"`
}
