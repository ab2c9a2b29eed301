package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/skillbridge-web/internal/middleware"
	"github.com/noah-isme/skillbridge-web/internal/models"
	"github.com/noah-isme/skillbridge-web/internal/view"
)

// Routes bundles everything Register mounts. Nil middleware is skipped.
type Routes struct {
	Public  *PublicHandler
	Auth    *AuthHandler
	Student *StudentHandler
	Tutor   *TutorHandler
	Admin   *AdminHandler
	Ops     *MetricsHandler

	AuthProxy http.Handler
	APIProxy  http.Handler

	// Session resolves the visitor on page routes.
	Session gin.HandlerFunc
	// CSRF guards page routes.
	CSRF gin.HandlerFunc
	// CORS applies to the proxy routes only.
	CORS gin.HandlerFunc

	AuditLogger *zap.Logger
	Metrics     bool
	Docs        bool
}

// Register mounts the pages, the proxy routes and the ops endpoints.
func Register(r *gin.Engine, rt Routes) {
	r.StaticFS("/static", http.FS(view.Static()))

	if rt.Ops != nil {
		r.GET("/health", rt.Ops.Health)
		r.GET("/ready", rt.Ops.Ready)
		if rt.Metrics {
			r.GET("/metrics", rt.Ops.Prometheus)
		}
	}
	if rt.Docs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group("/api", use(rt.CORS)...)
	if rt.AuthProxy != nil {
		api.Any("/auth/*path", gin.WrapH(rt.AuthProxy))
	}
	if rt.APIProxy != nil {
		api.Any("/proxy/*path", gin.WrapH(rt.APIProxy))
	}

	pages := r.Group("/", use(rt.Session, rt.CSRF)...)

	pages.GET("/", rt.Public.Home)
	pages.GET("/tutors", rt.Public.Tutors)
	pages.GET("/tutors/:id", rt.Public.TutorDetail)
	pages.POST("/tutors/:id/book", middleware.RequireSignedIn(), rt.Public.Book)
	pages.GET("/categories", rt.Public.Categories)

	pages.GET("/register", rt.Auth.RegisterForm)
	pages.POST("/register", rt.Auth.Register)
	pages.GET("/login", rt.Auth.LoginForm)
	pages.POST("/login", rt.Auth.Login)
	pages.POST("/logout", rt.Auth.Logout)
	pages.GET("/verify-email", rt.Auth.VerifyEmail)

	student := pages.Group("/dashboard", middleware.RequireSignedIn())
	student.GET("", rt.Student.Dashboard)
	student.GET("/bookings", rt.Student.Bookings)
	student.POST("/bookings/:id/cancel", rt.Student.Cancel)
	student.GET("/profile", rt.Student.Profile)
	student.POST("/profile", rt.Student.UpdateProfile)
	student.GET("/reviews/create", rt.Student.ReviewForm)
	student.POST("/reviews/create", rt.Student.SubmitReview)

	tutor := pages.Group("/tutor", middleware.RequireRole(models.RoleTutor))
	tutor.GET("/dashboard", rt.Tutor.Dashboard)
	tutor.GET("/bookings", rt.Tutor.Bookings)
	tutor.POST("/bookings/:id/:action", rt.Tutor.BookingAction)
	tutor.GET("/profile", rt.Tutor.Profile)
	tutor.POST("/profile", rt.Tutor.SaveProfile)
	tutor.GET("/availability", rt.Tutor.Availability)
	tutor.POST("/availability", rt.Tutor.AddAvailability)
	tutor.POST("/availability/:id/delete", rt.Tutor.RemoveAvailability)

	admin := pages.Group("/admin", middleware.RequireRole(models.RoleAdmin))
	audit := func(action, resource string) gin.HandlerFunc {
		return middleware.Audit(rt.AuditLogger, action, resource)
	}
	admin.GET("", rt.Admin.Dashboard)
	admin.GET("/users", rt.Admin.Users)
	admin.POST("/users/:id/role", audit("update_role", "user"), rt.Admin.ChangeRole)
	admin.POST("/users/:id/status", audit("update_status", "user"), rt.Admin.ChangeStatus)
	admin.GET("/categories", rt.Admin.Categories)
	admin.POST("/categories", audit("create", "category"), rt.Admin.CreateCategory)
	admin.POST("/categories/:id", audit("update", "category"), rt.Admin.UpdateCategory)
	admin.POST("/categories/:id/delete", audit("delete", "category"), rt.Admin.DeleteCategory)
	admin.GET("/bookings", rt.Admin.Bookings)
	admin.GET("/bookings/export", audit("export", "booking"), rt.Admin.ExportBookings)
	admin.POST("/bookings/:id/status", audit("update_status", "booking"), rt.Admin.UpdateBookingStatus)

	r.NoRoute(append(use(rt.Session), func(c *gin.Context) {
		renderError(c, http.StatusNotFound, "The page you are looking for does not exist.")
	})...)
}

// Recovery renders the error page for panics in page handlers.
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("panic recovered", zap.Any("error", recovered), zap.String("path", c.Request.URL.Path))
		renderError(c, http.StatusInternalServerError, "Something went wrong. Please try again later.")
		c.Abort()
	})
}

func use(handlers ...gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
