package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ag-enzo/coursepilot-college-organizer/config"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/model"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/ranking"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/repository"
	apperrors "github.com/ag-enzo/coursepilot-college-organizer/pkg/errors"
)

const defaultUpcomingLimit = 10

// AssignmentView "即将截止" 列表中的一项，附带所属课程信息
type AssignmentView struct {
	AssignmentID int64
	CourseID     int64
	CourseCode   string
	CourseColor  string
	Type         model.AssignmentType
	Title        string
	DueAt        time.Time // UTC
	Topics       *string
	// Label 形如 "[HW] CS101 — PS1  •  recursion"，不含时间
	Label string
}

// UpcomingService "即将截止" 视图
type UpcomingService interface {
	// Top 返回 (userID, semesterID) 范围内截止最早的至多 k 个作业；k <= 0 使用配置的默认条数
	Top(ctx context.Context, userID, semesterID int64, k int) ([]AssignmentView, error)
}

type upcomingService struct {
	limit  int
	repo   *repository.Repository
	logger *zap.Logger
}

// NewUpcomingService 创建 UpcomingService 实例
func NewUpcomingService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) UpcomingService {
	limit := cfg.Upcoming.Limit
	if limit <= 0 {
		limit = defaultUpcomingLimit
	}
	return &upcomingService{limit: limit, repo: repo, logger: logger}
}

func (s *upcomingService) Top(ctx context.Context, userID, semesterID int64, k int) ([]AssignmentView, error) {
	if k <= 0 {
		k = s.limit
	}

	if _, err := s.repo.Semester.GetByID(ctx, semesterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSemesterNotFound
		}
		s.logger.Error("查询学期失败", zap.Int64("semester_id", semesterID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	candidates, err := s.repo.Assignment.ListUpcoming(ctx, userID, semesterID)
	if err != nil {
		s.logger.Error("加载作业失败",
			zap.Int64("user_id", userID), zap.Int64("semester_id", semesterID), zap.Error(err))
		return nil, translateStoreError(err)
	}

	top := ranking.TopK(candidates, k)
	if len(top) == 0 {
		return []AssignmentView{}, nil
	}

	courses, err := s.loadCourses(ctx, top)
	if err != nil {
		return nil, err
	}

	views := make([]AssignmentView, 0, len(top))
	for i := range top {
		a := &top[i]
		course, ok := courses[a.CourseID]
		if !ok {
			err := fmt.Errorf("%w: 作业 %d 引用的课程 %d 不存在", apperrors.ErrCorrupted, a.AssignmentID, a.CourseID)
			s.logger.Error("作业数据不一致", zap.Error(err))
			return nil, err
		}
		views = append(views, AssignmentView{
			AssignmentID: a.AssignmentID,
			CourseID:     a.CourseID,
			CourseCode:   course.Code,
			CourseColor:  course.ColorHex,
			Type:         a.Type,
			Title:        a.Title,
			DueAt:        a.DueAt.Time,
			Topics:       a.Topics,
			Label:        formatLabel(a.Type, course.Code, a.Title, "", a.Topics),
		})
	}

	return views, nil
}

// loadCourses 批量读取结果中涉及的课程
func (s *upcomingService) loadCourses(ctx context.Context, items []model.Assignment) (map[int64]*model.Course, error) {
	seen := make(map[int64]struct{}, len(items))
	ids := make([]int64, 0, len(items))
	for _, a := range items {
		if _, ok := seen[a.CourseID]; ok {
			continue
		}
		seen[a.CourseID] = struct{}{}
		ids = append(ids, a.CourseID)
	}

	courses, err := s.repo.Course.ListByIDs(ctx, ids)
	if err != nil {
		s.logger.Error("批量查询课程失败", zap.Error(err))
		return nil, translateStoreError(err)
	}

	byID := make(map[int64]*model.Course, len(courses))
	for i := range courses {
		byID[courses[i].CourseID] = &courses[i]
	}
	return byID, nil
}

// LabelWithDue 在标题后插入展示层格式化好的截止时间，形如 "[HW] CS101 — PS1 (2024-09-15 19:00)  •  recursion"
func (v AssignmentView) LabelWithDue(due string) string {
	return formatLabel(v.Type, v.CourseCode, v.Title, due, v.Topics)
}

func formatLabel(typ model.AssignmentType, courseCode, title, due string, topics *string) string {
	text := fmt.Sprintf("[%s] %s — %s", typ, courseCode, title)
	if due != "" {
		text += " (" + due + ")"
	}
	if topics != nil && *topics != "" {
		text += "  •  " + *topics
	}
	return text
}
