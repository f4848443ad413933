package handlers

import (
	"context"

	"todoapp/internal/models"
	"todoapp/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAccounts struct {
	registerUser models.User
	registerErr  error
	loginUser    models.User
	loginErr     error

	lastRegisterEmail    string
	lastRegisterPassword string
	lastLoginEmail       string
	lastLoginPassword    string
}

func (m *mockAccounts) Register(_ context.Context, email, password string) (models.User, error) {
	m.lastRegisterEmail = email
	m.lastRegisterPassword = password
	return m.registerUser, m.registerErr
}

func (m *mockAccounts) Login(_ context.Context, email, password string) (models.User, error) {
	m.lastLoginEmail = email
	m.lastLoginPassword = password
	return m.loginUser, m.loginErr
}

type mockSessions struct {
	issueValue string
	issueErr   error
	resolveID  int
	resolveErr error
	destroyErr error

	issueCalls      []int
	lastResolved    string
	destroyedValues []string
}

func (m *mockSessions) Issue(_ context.Context, userID int) (string, error) {
	m.issueCalls = append(m.issueCalls, userID)
	return m.issueValue, m.issueErr
}

func (m *mockSessions) Resolve(_ context.Context, cookieValue string) (int, error) {
	m.lastResolved = cookieValue
	return m.resolveID, m.resolveErr
}

func (m *mockSessions) Destroy(_ context.Context, cookieValue string) error {
	m.destroyedValues = append(m.destroyedValues, cookieValue)
	return m.destroyErr
}

func (m *mockSessions) PruneExpired(_ context.Context) (int64, error) { return 0, nil }

type mockTodos struct {
	listResp   []models.Todo
	listErr    error
	createResp models.Todo
	createErr  error
	updateResp models.Todo
	updateErr  error
	deleteErr  error

	lastListUserID   int
	lastCreateUserID int
	lastCreateText   string
	lastUpdateID     int
	lastUpdateUserID int
	lastUpdateValue  bool
	lastDeleteID     int
	lastDeleteUserID int
	deleteCalls      int
}

func (m *mockTodos) List(_ context.Context, userID int) ([]models.Todo, error) {
	m.lastListUserID = userID
	return m.listResp, m.listErr
}

func (m *mockTodos) Create(_ context.Context, userID int, text string) (models.Todo, error) {
	m.lastCreateUserID = userID
	m.lastCreateText = text
	return m.createResp, m.createErr
}

func (m *mockTodos) SetCompleted(_ context.Context, id, userID int, completed bool) (models.Todo, error) {
	m.lastUpdateID = id
	m.lastUpdateUserID = userID
	m.lastUpdateValue = completed
	return m.updateResp, m.updateErr
}

func (m *mockTodos) Delete(_ context.Context, id, userID int) error {
	m.deleteCalls++
	m.lastDeleteID = id
	m.lastDeleteUserID = userID
	return m.deleteErr
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, false)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
