package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"shiftcare/config"
	"shiftcare/internal/api/handler"
	"shiftcare/internal/api/middleware"
	"shiftcare/pkg/jwt"
	"shiftcare/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 邀请接受（无需认证，受邀者尚无账号）
		v1.GET("/invitations/token/:token", h.Invitation.GetByToken)
		v1.POST("/invitations/accept", h.Invitation.Accept)

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 菜单
			authorized.GET("/menu", h.Menu.GetMenu)

			// 权限与角色目录
			authorized.GET("/permissions", middleware.RoleAuth("super_admin", "org_admin"), h.Permission.ListPermissions)
			authorized.GET("/roles", middleware.RoleAuth("super_admin", "org_admin"), h.Permission.ListRoles)
			authorized.GET("/roles/:name/permissions", middleware.RoleAuth("super_admin", "org_admin"), h.Permission.ResolveRolePermissions)

			// 机构模块
			organizations := authorized.Group("/organizations")
			{
				organizations.GET("/:id", h.Organization.Get)
				organizations.GET("", middleware.RoleAuth("super_admin"), h.Organization.List)
				organizations.POST("", middleware.RoleAuth("super_admin"), h.Organization.Create)
				organizations.PUT("/:id", middleware.RoleAuth("super_admin", "org_admin"), h.Organization.Update)
				organizations.PUT("/:id/settings", middleware.RoleAuth("super_admin", "org_admin"), h.Organization.UpdateSettings)
				organizations.DELETE("/:id", middleware.RoleAuth("super_admin"), h.Organization.Delete)
			}

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("", middleware.RoleAuth("super_admin", "org_admin", "manager"), h.User.List)
				users.GET("/:id", h.User.Get)
				users.POST("", middleware.RoleAuth("super_admin", "org_admin"), h.User.Create)
				users.PUT("/:id", middleware.RoleAuth("super_admin", "org_admin"), h.User.Update)
				users.DELETE("/:id", middleware.RoleAuth("super_admin", "org_admin"), h.User.Delete)
			}

			// 班次类型模块
			shiftTypes := authorized.Group("/shift-types")
			{
				shiftTypes.GET("/templates", h.ShiftType.ListTemplates)
				shiftTypes.POST("/apply-template", middleware.RoleAuth("org_admin", "manager"), h.ShiftType.ApplyTemplate)
				shiftTypes.GET("", h.ShiftType.List)
				shiftTypes.GET("/:id", h.ShiftType.Get)
				shiftTypes.POST("", middleware.RoleAuth("org_admin", "manager"), h.ShiftType.Create)
				shiftTypes.PUT("/:id", middleware.RoleAuth("org_admin", "manager"), h.ShiftType.Update)
				shiftTypes.DELETE("/:id", middleware.RoleAuth("org_admin", "manager"), h.ShiftType.Delete)
			}

			// 支付配置模块
			paymentConfigs := authorized.Group("/payment-configs")
			{
				paymentConfigs.GET("/active", middleware.RoleAuth("org_admin", "manager"), h.PaymentConfig.GetActive)
				paymentConfigs.GET("", middleware.RoleAuth("org_admin", "manager"), h.PaymentConfig.List)
				paymentConfigs.GET("/:id", middleware.RoleAuth("org_admin", "manager"), h.PaymentConfig.Get)
				paymentConfigs.POST("", middleware.RoleAuth("org_admin"), h.PaymentConfig.Create)
				paymentConfigs.PUT("/:id", middleware.RoleAuth("org_admin"), h.PaymentConfig.Update)
				paymentConfigs.POST("/:id/deactivate", middleware.RoleAuth("org_admin"), h.PaymentConfig.Deactivate)
				paymentConfigs.DELETE("/:id", middleware.RoleAuth("org_admin"), h.PaymentConfig.Delete)
			}

			// 员工费率覆盖模块
			staffRates := authorized.Group("/staff-rates")
			{
				staffRates.GET("/effective", middleware.RoleAuth("org_admin", "manager"), h.StaffRate.ResolveEffectiveRate)
				staffRates.GET("", middleware.RoleAuth("org_admin", "manager"), h.StaffRate.List)
				staffRates.GET("/:id", middleware.RoleAuth("org_admin", "manager"), h.StaffRate.Get)
				staffRates.POST("", middleware.RoleAuth("org_admin"), h.StaffRate.Create)
				staffRates.PUT("/:id", middleware.RoleAuth("org_admin"), h.StaffRate.Update)
				staffRates.DELETE("/:id", middleware.RoleAuth("org_admin"), h.StaffRate.Delete)
			}

			// 员工可用性模块
			availability := authorized.Group("/employee-availability")
			{
				availability.GET("/available", middleware.RoleAuth("org_admin", "manager"), h.Availability.AvailableEmployees)
				availability.GET("", h.Availability.Query)
				availability.POST("", h.Availability.Upsert)
				availability.PUT("/date", h.Availability.UpdateSingleDate)
				availability.DELETE("/:id", h.Availability.Delete)
			}

			// 排班规则模块
			schedulingRules := authorized.Group("/scheduling-rules")
			{
				schedulingRules.GET("", h.SchedulingRule.List)
				schedulingRules.GET("/:id", h.SchedulingRule.Get)
				schedulingRules.POST("", middleware.RoleAuth("org_admin", "manager"), h.SchedulingRule.Create)
				schedulingRules.PUT("/:id", middleware.RoleAuth("org_admin", "manager"), h.SchedulingRule.Update)
				schedulingRules.DELETE("/:id", middleware.RoleAuth("org_admin", "manager"), h.SchedulingRule.Delete)
			}

			// 轮班模式模块
			rotationPatterns := authorized.Group("/rotation-patterns")
			{
				rotationPatterns.GET("", h.RotationPattern.List)
				rotationPatterns.GET("/:id", h.RotationPattern.Get)
				rotationPatterns.POST("", middleware.RoleAuth("org_admin", "manager"), h.RotationPattern.Create)
				rotationPatterns.PUT("/:id", middleware.RoleAuth("org_admin", "manager"), h.RotationPattern.Update)
				rotationPatterns.DELETE("/:id", middleware.RoleAuth("org_admin", "manager"), h.RotationPattern.Delete)
			}

			// 员工邀请模块
			invitations := authorized.Group("/invitations")
			{
				invitations.GET("", middleware.RoleAuth("org_admin", "manager"), h.Invitation.List)
				invitations.POST("", middleware.RoleAuth("org_admin", "manager"), h.Invitation.Invite)
				invitations.DELETE("/:id", middleware.RoleAuth("org_admin", "manager"), h.Invitation.Revoke)
			}

			// 工时模块
			timesheets := authorized.Group("/timesheets")
			{
				timesheets.GET("", h.Timesheet.List)
				timesheets.GET("/:id", h.Timesheet.Get)
				timesheets.POST("", h.Timesheet.Create)
				timesheets.POST("/:id/review", middleware.RoleAuth("org_admin", "manager"), h.Timesheet.Review)
				timesheets.DELETE("/:id", middleware.RoleAuth("org_admin", "manager"), h.Timesheet.Delete)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/timesheets", middleware.RoleAuth("org_admin", "manager"), h.Export.ExportTimesheets)
				export.GET("/availability.ics", h.Export.AvailabilityFeed)
			}
		}
	}

	return r
}
