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

type crewTestEnv struct {
	db          *gorm.DB
	handler     *CrewHandler
	userService *services.UserService
	crewService *services.CrewService
}

func setupCrewTestEnv(t *testing.T) crewTestEnv {
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
	crewRepo := repository.NewCrewRepository(db)

	userService := services.NewUserService(userRepo, objectRepo)
	crewService := services.NewCrewService(crewRepo, userRepo)
	handler := NewCrewHandler(crewService)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return crewTestEnv{
		db:          db,
		handler:     handler,
		userService: userService,
		crewService: crewService,
	}
}

func TestCrewHandler_Create(t *testing.T) {
	env := setupCrewTestEnv(t)

	r := gin.New()
	r.POST("/api/crews", env.handler.Create)

	payload := map[string]string{
		"name":        "Concrete crew",
		"description": "Foundation and monolith works",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/crews", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Name        string `json:"name"`
		MemberCount int    `json:"memberCount"`
		IsActive    bool   `json:"isActive"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Concrete crew", response.Name)
	require.Equal(t, 0, response.MemberCount)
	require.True(t, response.IsActive)
}

func TestCrewHandler_AddAndRemoveMember(t *testing.T) {
	env := setupCrewTestEnv(t)

	worker := createTestUser(t, env.userService, "worker@buildcrew.ru", models.RoleWorker)
	crew, err := env.crewService.Create(services.CreateCrewInput{Name: "Concrete crew"})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/crews/:id/members/:userId", env.handler.AddMember)
	r.DELETE("/api/crews/:id/members/:userId", env.handler.RemoveMember)

	url := fmt.Sprintf("/api/crews/%s/members/%s", crew.ID, worker.ID)
	req := httptest.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		MemberCount       int `json:"memberCount"`
		ActiveMemberCount int `json:"activeMemberCount"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 1, response.MemberCount)
	require.Equal(t, 1, response.ActiveMemberCount)

	req = httptest.NewRequest(http.MethodDelete, url, nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, 0, response.MemberCount)
}

func TestCrewHandler_AddMember_UnknownUser(t *testing.T) {
	env := setupCrewTestEnv(t)

	crew, err := env.crewService.Create(services.CreateCrewInput{Name: "Concrete crew"})
	require.NoError(t, err)

	r := gin.New()
	r.POST("/api/crews/:id/members/:userId", env.handler.AddMember)

	url := fmt.Sprintf("/api/crews/%s/members/%s", crew.ID, "a2b40d53-5a67-4a4c-9ae4-183f59b101e1")
	req := httptest.NewRequest(http.MethodPost, url, nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestCrewHandler_Members(t *testing.T) {
	env := setupCrewTestEnv(t)

	worker1 := createTestUser(t, env.userService, "worker1@buildcrew.ru", models.RoleWorker)
	worker2 := createTestUser(t, env.userService, "worker2@buildcrew.ru", models.RoleWorker)
	crew, err := env.crewService.Create(services.CreateCrewInput{Name: "Concrete crew"})
	require.NoError(t, err)

	_, err = env.crewService.AddMember(crew.ID, worker1.ID)
	require.NoError(t, err)
	_, err = env.crewService.AddMember(crew.ID, worker2.ID)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/api/crews/:id/members", env.handler.Members)

	req := httptest.NewRequest(http.MethodGet, "/api/crews/"+crew.ID.String()+"/members", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var members []struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &members))
	require.Len(t, members, 2)
}

func TestCrewHandler_Delete(t *testing.T) {
	env := setupCrewTestEnv(t)

	crew, err := env.crewService.Create(services.CreateCrewInput{Name: "Concrete crew"})
	require.NoError(t, err)

	r := gin.New()
	r.DELETE("/api/crews/:id", env.handler.Delete)
	r.GET("/api/crews/:id", env.handler.Get)

	req := httptest.NewRequest(http.MethodDelete, "/api/crews/"+crew.ID.String(), nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/crews/"+crew.ID.String(), nil)
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNotFound, w.Code)
}
