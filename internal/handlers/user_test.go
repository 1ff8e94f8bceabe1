package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MrAlexGov/BuildCrew-Pro/internal/database"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/models"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/repository"
	"github.com/MrAlexGov/BuildCrew-Pro/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type userTestEnv struct {
	db          *gorm.DB
	handler     *UserHandler
	userService *services.UserService
}

func setupUserTestEnv(t *testing.T) userTestEnv {
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
	objectRepo := repository.NewObjectRepository(db)
	userService := services.NewUserService(userRepo, objectRepo)
	handler := NewUserHandler(userService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return userTestEnv{
		db:          db,
		handler:     handler,
		userService: userService,
	}
}

func createTestUser(t *testing.T, userService *services.UserService, email string, role models.UserRole) *models.User {
	t.Helper()

	user, err := userService.Create(services.CreateUserInput{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Ivan",
		LastName:  "Petrov",
		Role:      role,
	})
	require.NoError(t, err)
	return user
}

func TestUserHandler_CreateAndGet(t *testing.T) {
	env := setupUserTestEnv(t)

	r := gin.New()
	r.POST("/api/users", env.handler.Create)
	r.GET("/api/users/:id", env.handler.Get)

	payload := map[string]string{
		"email":          "worker@buildcrew.ru",
		"password":       "supersecret",
		"firstName":      "Ivan",
		"lastName":       "Petrov",
		"role":           "worker",
		"specialization": "electrician",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		ID             string  `json:"id"`
		Email          string  `json:"email"`
		Specialization *string `json:"specialization"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	require.Equal(t, payload["email"], created.Email)
	require.NotNil(t, created.Specialization)
	require.Equal(t, "electrician", *created.Specialization)

	req = httptest.NewRequest(http.MethodGet, "/api/users/"+created.ID, nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_Create_ShortPassword(t *testing.T) {
	env := setupUserTestEnv(t)

	r := gin.New()
	r.POST("/api/users", env.handler.Create)

	payload := map[string]string{
		"email":     "worker@buildcrew.ru",
		"password":  "short",
		"firstName": "Ivan",
		"lastName":  "Petrov",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Delete(t *testing.T) {
	env := setupUserTestEnv(t)

	user := createTestUser(t, env.userService, "worker@buildcrew.ru", models.RoleWorker)

	r := gin.New()
	r.DELETE("/api/users/:id", env.handler.Delete)
	r.GET("/api/users/:id", env.handler.Get)

	req := httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.String(), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	// Soft-deleted users disappear from reads.
	req = httptest.NewRequest(http.MethodGet, "/api/users/"+user.ID.String(), nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)

	// The row itself survives with a deletion timestamp.
	var deleted models.User
	require.NoError(t, env.db.Unscoped().First(&deleted, "id = ?", user.ID).Error)
	require.True(t, deleted.DeletedAt.Valid)

	req = httptest.NewRequest(http.MethodDelete, "/api/users/"+user.ID.String(), nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUserHandler_ListByRole(t *testing.T) {
	env := setupUserTestEnv(t)

	createTestUser(t, env.userService, "foreman@buildcrew.ru", models.RoleForeman)
	createTestUser(t, env.userService, "worker1@buildcrew.ru", models.RoleWorker)
	createTestUser(t, env.userService, "worker2@buildcrew.ru", models.RoleWorker)

	r := gin.New()
	r.GET("/api/users/role/:role", env.handler.ListByRole)

	req := httptest.NewRequest(http.MethodGet, "/api/users/role/worker", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var workers []struct {
		Role string `json:"role"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &workers))
	require.Len(t, workers, 2)

	req = httptest.NewRequest(http.MethodGet, "/api/users/role/director", nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUserHandler_Update_Email(t *testing.T) {
	env := setupUserTestEnv(t)

	user := createTestUser(t, env.userService, "old@buildcrew.ru", models.RoleWorker)
	createTestUser(t, env.userService, "taken@buildcrew.ru", models.RoleWorker)

	r := gin.New()
	r.PATCH("/api/users/:id", env.handler.Update)

	// A new address is normalized and persisted.
	payload := map[string]any{
		"email": "New@BuildCrew.ru",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/"+user.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, env.db.First(&stored, "id = ?", user.ID).Error)
	require.Equal(t, "new@buildcrew.ru", stored.Email)

	// An address already held by another user is rejected.
	payload["email"] = "taken@buildcrew.ru"
	body, err = json.Marshal(payload)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPatch, "/api/users/"+user.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)

	// Re-sending the current address is a no-op, not a conflict.
	payload["email"] = "new@buildcrew.ru"
	body, err = json.Marshal(payload)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodPatch, "/api/users/"+user.ID.String(), bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestUserHandler_Update(t *testing.T) {
	env := setupUserTestEnv(t)

	user := createTestUser(t, env.userService, "worker@buildcrew.ru", models.RoleWorker)

	r := gin.New()
	r.PATCH("/api/users/:id", env.handler.Update)

	payload := map[string]any{
		"firstName": "Petr",
		"grade":     "senior",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	url := fmt.Sprintf("/api/users/%s", user.ID)
	req := httptest.NewRequest(http.MethodPatch, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		FirstName string  `json:"firstName"`
		LastName  string  `json:"lastName"`
		FullName  string  `json:"fullName"`
		Grade     *string `json:"grade"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Petr", response.FirstName)
	require.Equal(t, "Petrov", response.LastName)
	require.Equal(t, "Petr Petrov", response.FullName)
	require.NotNil(t, response.Grade)
	require.Equal(t, "senior", *response.Grade)
}
