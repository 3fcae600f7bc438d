// Package router assembles the gin engine and every route of the site.
package router

import (
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	accountshandler "lifetrail/internal/feature/accounts/transport/handler"
	activityhandler "lifetrail/internal/feature/activity/transport/handler"
	checkinhandler "lifetrail/internal/feature/checkin/transport/handler"
	dashboardhandler "lifetrail/internal/feature/dashboard/transport/handler"
	locationhandler "lifetrail/internal/feature/location/transport/handler"
	musichandler "lifetrail/internal/feature/music/transport/handler"
	platformhandler "lifetrail/internal/platform/http/handler"
	"lifetrail/internal/platform/http/middleware"
	jwtmw "lifetrail/internal/platform/jwt"
	"lifetrail/internal/web"
)

// Handlers groups the page handlers mounted by NewRouter.
type Handlers struct {
	Auth      *accountshandler.AuthHandler
	Profile   *accountshandler.ProfileHandler
	Dashboard *dashboardhandler.DashboardHandler
	Location  *locationhandler.LocationHandler
	CheckIn   *checkinhandler.CheckInHandler
	Activity  *activityhandler.ActivityHandler
	Music     *musichandler.MusicHandler
	Media     *platformhandler.MediaHandler
	Health    *platformhandler.HealthHandler
}

// Options carries the router-level settings.
type Options struct {
	Templates    *template.Template
	JWTSecret    string
	Sessions     jwtmw.SessionValidator
	Cookie       jwtmw.CookieOptions
	CORSOrigins  []string
	MaxBodyBytes int64
	Logger       logrus.FieldLogger
}

// NewRouter builds the engine with the shared middleware chain and mounts
// the public, guest and signed-in routes. State-changing routes accept POST only.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	log := opts.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), gin.Recovery())

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     opts.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "HEAD", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Cookie"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	r.SetHTMLTemplate(opts.Templates)
	r.NoRoute(web.NotFound)

	// Public
	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	guest := r.Group("/")
	guest.Use(jwtmw.RedirectIfAuthenticated(opts.JWTSecret, opts.Sessions))
	{
		guest.GET("/login", h.Auth.LoginPage)
		guest.POST("/login", h.Auth.Login)
		guest.GET("/register", h.Auth.RegisterPage)
		guest.POST("/register", h.Auth.Register)
	}

	// Logout works with or without a live session.
	r.GET("/logout", h.Auth.Logout)
	r.POST("/logout", h.Auth.Logout)

	auth := r.Group("/")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret, opts.Sessions, opts.Cookie))
	{
		auth.GET("/", h.Dashboard.Show)

		auth.GET("/profile", h.Profile.Show)
		auth.POST("/profile", h.Profile.Update)
		auth.POST("/profile/delete", h.Profile.Delete)

		auth.GET("/location/", h.Location.List)
		auth.POST("/location/", h.Location.Create)
		auth.POST("/location/:id/default", h.Location.SetDefault)
		auth.POST("/location/:id/delete", h.Location.Delete)

		auth.GET("/checkin/", h.CheckIn.Form)
		auth.POST("/checkin/", h.CheckIn.Submit)

		auth.GET("/activity/", h.Activity.List)
		auth.POST("/activity/", h.Activity.Create)

		auth.GET("/music/", h.Music.List)
		auth.POST("/music/upload/", h.Music.Upload)
		auth.POST("/music/delete/:id/", h.Music.Delete)

		auth.GET("/media/*key", h.Media.Serve)
	}

	return r
}
