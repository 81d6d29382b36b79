package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/MasterMIS/ERP-Google-Sheet-sub000/config"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/api/handler"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/internal/api/middleware"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/jwt"
	"github.com/MasterMIS/ERP-Google-Sheet-sub000/pkg/redis"
)

const maxBodyBytes = 20 << 20 // uploads carry attachments

// Setup builds the Gin engine with every route wired.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no session required)
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.GET("", h.Auth.Status)
		}

		// calendar subscription (consumed by external calendar clients)
		v1.GET("/calendar/feed.ics", h.Calendar.Feed)

		// session required
		authorized := v1.Group("")
		authorized.Use(middleware.SessionAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// departments
			departments := authorized.Group("/departments")
			{
				departments.GET("", h.Department.List)
				departments.POST("", middleware.RoleAuth("admin"), h.Department.Create)
				departments.DELETE("/:id", middleware.RoleAuth("admin"), h.Department.Delete)
			}

			// attendance
			attendance := authorized.Group("/attendance")
			{
				attendance.POST("/check-in", h.Attendance.CheckIn)
				attendance.POST("/check-out", h.Attendance.CheckOut)
				attendance.GET("/status", h.Attendance.Status)
				attendance.GET("", h.Attendance.List)
			}

			// delegations
			delegations := authorized.Group("/delegations")
			{
				delegations.GET("", h.Delegation.List)
				delegations.POST("", h.Delegation.Create)
				delegations.GET("/:id", h.Delegation.Get)
				delegations.PATCH("/:id", h.Delegation.Update)
				delegations.DELETE("/:id", middleware.RoleAuth("admin"), h.Delegation.Delete)
				delegations.GET("/:id/remarks", h.Delegation.ListRemarks)
				delegations.POST("/:id/remarks", h.Delegation.AddRemark)
				delegations.GET("/:id/revisions", h.Delegation.ListRevisions)
			}

			// helpdesk
			tickets := authorized.Group("/helpdesk/tickets")
			{
				tickets.GET("", h.Helpdesk.List)
				tickets.POST("", h.Helpdesk.Create)
				tickets.GET("/:id", h.Helpdesk.Get)
				tickets.PATCH("/:id", h.Helpdesk.Update)
				tickets.PUT("/:id/status", h.Helpdesk.UpdateStatus)
				tickets.DELETE("/:id", middleware.RoleAuth("admin"), h.Helpdesk.Delete)
				tickets.GET("/:id/remarks", h.Helpdesk.ListRemarks)
				tickets.POST("/:id/remarks", h.Helpdesk.AddRemark)
			}

			// NBD pipeline
			nbd := authorized.Group("/nbd")
			{
				nbd.GET("", h.NBD.List)
				nbd.POST("", h.NBD.Create)
				nbd.GET("/crr-eligible", h.NBD.ListCRREligible)
				nbd.POST("/shift-to-crr", middleware.RoleAuth("admin"), h.NBD.ShiftToCRR)
				nbd.GET("/:id", h.NBD.Get)
				nbd.PATCH("/:id", h.NBD.Update)
				nbd.DELETE("/:id", middleware.RoleAuth("admin"), h.NBD.Delete)
				nbd.GET("/:id/followups", h.NBD.ListFollowUps)
				nbd.POST("/:id/followups", h.NBD.AddFollowUp)
			}

			// export and import
			export := authorized.Group("/export")
			{
				export.GET("/:domain/csv", h.Export.CSV)
				export.GET("/:domain/xlsx", h.Export.XLSX)
				export.GET("/:domain/template", h.Export.Template)
			}
			authorized.POST("/import/:domain", middleware.RoleAuth("admin"), h.Import.Import)

			// attachments
			authorized.POST("/uploads", h.Upload.Upload)
		}
	}

	return r
}
