// Package app assembles the notes service: storage, services, sessions and routes.
package app

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-contrib/sessions/memstore"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/notes-app/internal/config"
	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/handlers"
	"github.com/yukikurage/notes-app/internal/middleware"
	"github.com/yukikurage/notes-app/internal/password"
	"github.com/yukikurage/notes-app/internal/repository"
	"github.com/yukikurage/notes-app/internal/services"
	"gorm.io/gorm"
)

// NewSessionStore builds the session backend named by cfg.SessionStore.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	var store sessions.Store
	switch cfg.SessionStore {
	case "memory":
		store = memstore.NewStore([]byte(cfg.SessionSecret))
	case "cookie":
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.SessionStore)
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsRelease(),
		SameSite: http.SameSiteLaxMode,
	})
	return store, nil
}

// Options tunes NewRouter.
type Options struct {
	// HSTS adds Strict-Transport-Security to every response.
	HSTS bool
}

// NewRouter wires repositories, services and handlers onto a gin engine.
func NewRouter(db *gorm.DB, store sessions.Store, hasher password.Hasher, opts Options) *gin.Engine {
	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	deleter := repository.NewDeleter(db)

	authService := services.NewAuthService(userRepo, hasher)
	userService := services.NewUserService(userRepo, deleter)
	noteService := services.NewNoteService(noteRepo, userRepo, deleter)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService, noteService)
	noteHandler := handlers.NewNoteHandler(noteService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.RequestLog(),
		middleware.Prometheus(),
		middleware.SecurityHeaders(opts.HSTS),
		sessions.Sessions(constants.SessionCookieName, store),
		middleware.LoadIdentity(),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", authHandler.Home)
	r.GET("/register", authHandler.RegisterForm)
	r.POST("/register", authHandler.Register)
	r.GET("/login", authHandler.LoginForm)
	r.POST("/login", authHandler.Login)
	r.POST("/logout", middleware.RequireForgeryToken(middleware.To("/login")), authHandler.Logout)

	users := r.Group("/users/:username")
	users.Use(middleware.RequireProfileOwner())
	{
		users.GET("", userHandler.Profile)
		users.POST("/delete", middleware.RequireForgeryToken(middleware.To("/")), userHandler.DeleteAccount)
		users.GET("/notes", noteHandler.ListNotes)
		users.GET("/notes/add", noteHandler.NewNoteForm)
		users.POST("/notes/add", noteHandler.CreateNote)
	}

	notes := r.Group("/notes/:note_id")
	notes.Use(middleware.RequireNoteAccess(noteService))
	{
		notes.GET("", noteHandler.GetNote)
		notes.GET("/update", noteHandler.EditNoteForm)
		notes.POST("/update", noteHandler.UpdateNote)
		notes.POST("/delete", middleware.RequireForgeryToken(middleware.ToOwnProfile()), noteHandler.DeleteNote)
	}

	return r
}
