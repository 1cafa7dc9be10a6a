package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ag-enzo/coursepilot-college-organizer/config"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/api/handler"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/api/middleware"
	"github.com/ag-enzo/coursepilot-college-organizer/internal/dto"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/jwt"
	"github.com/ag-enzo/coursepilot-college-organizer/pkg/redis"
)

const (
	maxBodyBytes = 1 << 20

	// 认证接口限流：每个 IP 每分钟最多 20 次
	authRateLimit  = 20
	authRateWindow = time.Minute
)

// Setup 初始化并返回 Gin 路由引擎；rdb 可为 nil
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)

	if err := dto.RegisterValidators(); err != nil {
		return nil, err
	}

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, authRateLimit, authRateWindow))
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb, logger))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)

			// 学期模块
			semesters := authorized.Group("/semesters")
			{
				semesters.GET("", h.Semester.ListSemesters)
				semesters.POST("", h.Semester.GetOrCreateSemester)
				semesters.GET("/:id", h.Semester.GetSemester)
				semesters.GET("/:id/courses", h.Semester.ListCourses)
				semesters.POST("/:id/courses", h.Semester.CreateCourse)
				semesters.GET("/:id/upcoming", h.Semester.Upcoming)
			}

			// 课程模块
			courses := authorized.Group("/courses")
			{
				courses.GET("/:id", h.Course.GetCourse)
				courses.PUT("/:id", h.Course.UpdateCourse)
				courses.DELETE("/:id", h.Course.DeleteCourse)
				courses.GET("/:id/assignments", h.Course.ListAssignments)
				courses.POST("/:id/assignments", h.Course.CreateAssignment)
			}

			// 作业模块
			assignments := authorized.Group("/assignments")
			{
				assignments.GET("/:id", h.Assignment.GetAssignment)
				assignments.PUT("/:id", h.Assignment.UpdateAssignment)
				assignments.DELETE("/:id", h.Assignment.DeleteAssignment)
			}
		}
	}

	return r, nil
}
