package dto

// ── 课程模块 DTO ──

// CourseRequest 创建/更新课程请求；更新为全量替换，未给 color_hex 时恢复默认颜色
type CourseRequest struct {
	Code     string `json:"code"      binding:"required,max=32"`
	Name     string `json:"name"      binding:"required,max=128"`
	ColorHex string `json:"color_hex" binding:"omitempty,hexcolor"`
}

// CourseResponse 课程响应
type CourseResponse struct {
	ID         int64  `json:"id"`
	SemesterID int64  `json:"semester_id"`
	Code       string `json:"code"`
	Name       string `json:"name"`
	ColorHex   string `json:"color_hex"`
}
