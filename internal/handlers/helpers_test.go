package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/notes-app/internal/constants"
	"github.com/yukikurage/notes-app/internal/middleware"
	"github.com/yukikurage/notes-app/internal/models"
	"github.com/yukikurage/notes-app/internal/password"
	"github.com/yukikurage/notes-app/internal/repository"
	"github.com/yukikurage/notes-app/internal/services"
	"github.com/yukikurage/notes-app/internal/session"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type handlerTestEnv struct {
	db          *gorm.DB
	authService *services.AuthService
	userService *services.UserService
	noteService *services.NoteService
}

func setupHandlerTestEnv(t *testing.T) handlerTestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Note{}))

	userRepo := repository.NewUserRepository(db)
	noteRepo := repository.NewNoteRepository(db)
	deleter := repository.NewDeleter(db)

	return handlerTestEnv{
		db:          db,
		authService: services.NewAuthService(userRepo, password.NewBcryptHasher(bcrypt.MinCost)),
		userService: services.NewUserService(userRepo, deleter),
		noteService: services.NewNoteService(noteRepo, userRepo, deleter),
	}
}

func (env handlerTestEnv) registerUser(t *testing.T, username string) {
	t.Helper()
	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Username:  username,
		Password:  "password123",
		Email:     username + "@example.com",
		FirstName: "First",
		LastName:  "Last",
	})
	require.NoError(t, err)
}

// newSessionRouter returns an engine with sessions and identity loading, plus
// a /test/login/:username route that binds the session without credentials.
func newSessionRouter() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store), middleware.LoadIdentity())
	r.POST("/test/login/:username", func(c *gin.Context) {
		if err := session.Establish(sessions.Default(c), c.Param("username")); err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/test/form", func(c *gin.Context) {
		form, err := session.PrepareForm(sessions.Default(c))
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, form)
	})
	return r
}

// testClient replays session cookies across requests.
type testClient struct {
	t       *testing.T
	router  *gin.Engine
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, router *gin.Engine) *testClient {
	return &testClient{t: t, router: router, cookies: map[string]*http.Cookie{}}
}

func (cl *testClient) do(method, path string, form url.Values) *httptest.ResponseRecorder {
	cl.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.router.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func (cl *testClient) loginAs(username string) {
	cl.t.Helper()
	w := cl.do(http.MethodPost, "/test/login/"+username, nil)
	require.Equal(cl.t, http.StatusNoContent, w.Code)
}

func (cl *testClient) forgeryToken() string {
	cl.t.Helper()
	w := cl.do(http.MethodGet, "/test/form", nil)
	require.Equal(cl.t, http.StatusOK, w.Code)

	var form session.FormData
	require.NoError(cl.t, json.Unmarshal(w.Body.Bytes(), &form))
	require.NotEmpty(cl.t, form.ForgeryToken)
	return form.ForgeryToken
}
