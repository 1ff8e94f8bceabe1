package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/constants"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/database"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/middleware"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/token"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	tokens      *token.Manager
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Crew{},
		&models.ConstructionObject{},
		&models.Task{},
		&models.TaskFile{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	userRepo := repository.NewUserRepository(db)
	tokens := token.NewManager("test-secret", time.Hour, 7*24*time.Hour)
	authService := services.NewAuthService(userRepo, tokens)
	handler := NewAuthHandler(authService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		tokens:      tokens,
	}
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	payload := map[string]string{
		"email":     "ivan@buildcrew.ru",
		"password":  "supersecret",
		"firstName": "Ivan",
		"lastName":  "Petrov",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "email = ?", payload["email"]).Error)
	require.Equal(t, models.RoleWorker, stored.Role)
	require.NotEqual(t, payload["password"], stored.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte(payload["password"])))
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:     "taken@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/register", env.handler.Register)

	payload := map[string]string{
		"email":     "taken@buildcrew.ru",
		"password":  "othersecret",
		"firstName": "Petr",
		"lastName":  "Ivanov",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "existing@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "existing@buildcrew.ru",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User struct {
			Email string `json:"email"`
		} `json:"user"`
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.User.Email)
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)

	claims, err := env.tokens.Parse(response.AccessToken)
	require.NoError(t, err)
	require.Equal(t, user.ID, claims.UserID)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(services.RegisterInput{
		Email:     "existing@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"email":    "existing@buildcrew.ru",
		"password": "wrongsecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "profile@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	pair, err := env.authService.Login(user)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/auth/profile", middleware.RequireAuth(env.authService, env.tokens), env.handler.Profile)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Email    string `json:"email"`
		FullName string `json:"fullName"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.Email, response.Email)
	require.Equal(t, "Ivan Petrov", response.FullName)
}

func TestAuthHandler_Profile_InvalidToken(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := gin.New()
	r.GET("/api/auth/profile", middleware.RequireAuth(env.authService, env.tokens), env.handler.Profile)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile_DeactivatedUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "inactive@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	pair, err := env.authService.Login(user)
	require.NoError(t, err)

	require.NoError(t, env.db.Model(user).Update("is_active", false).Error)

	r := gin.New()
	r.GET("/api/auth/profile", middleware.RequireAuth(env.authService, env.tokens), env.handler.Profile)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "refresh@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	pair, err := env.authService.Login(user)
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/auth/refresh", middleware.RequireAuth(env.authService, env.tokens), env.handler.Refresh)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.NotEmpty(t, response.AccessToken)
	require.NotEmpty(t, response.RefreshToken)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "change@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"currentPassword": "supersecret",
		"newPassword":     "evenmoresecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/change-password", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextUserKey, user)

	env.handler.ChangePassword(c)

	require.Equal(t, http.StatusOK, w.Code)

	validated, err := env.authService.ValidateCredentials(user.Email, "evenmoresecret")
	require.NoError(t, err)
	require.NotNil(t, validated)

	rejected, err := env.authService.ValidateCredentials(user.Email, "supersecret")
	require.NoError(t, err)
	require.Nil(t, rejected)
}

func TestAuthHandler_ChangePassword_WrongCurrent(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(services.RegisterInput{
		Email:     "change@buildcrew.ru",
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
	})
	require.NoError(t, err)

	payload := map[string]string{
		"currentPassword": "wrongsecret",
		"newPassword":     "evenmoresecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/auth/change-password", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Set(constants.ContextUserKey, user)

	env.handler.ChangePassword(c)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
