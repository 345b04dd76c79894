package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/political-canvas/canvass-api/internal/constants"
	"github.com/political-canvas/canvass-api/internal/database"
	"github.com/political-canvas/canvass-api/internal/dto"
	"github.com/political-canvas/canvass-api/internal/metrics"
	"github.com/political-canvas/canvass-api/internal/models"
	"github.com/political-canvas/canvass-api/internal/services"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// APITestSuite drives the full router with real tokens over an in-memory store
type APITestSuite struct {
	suite.Suite
	db     *gorm.DB
	svc    Services
	router *gin.Engine

	admin     *models.User
	manager   *models.User
	volunteer *models.User

	adminToken     string
	managerToken   string
	volunteerToken string
}

// SetupTest runs before each test
func (suite *APITestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.SetMaxOpenConns(1)

	suite.Require().NoError(database.Migrate(suite.db))

	tokens := services.NewTokenService("test-secret", "canvass-test", time.Hour)
	suite.svc = NewServices(suite.db, tokens, metrics.New(prometheus.NewRegistry()))

	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	store := cookie.NewStore([]byte("secret"))
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, store))
	RegisterRoutes(suite.router, suite.svc)

	suite.admin, suite.adminToken = suite.createUser("admin", models.RoleAdmin)
	suite.manager, suite.managerToken = suite.createUser("manager", models.RoleManager)
	suite.volunteer, suite.volunteerToken = suite.createUser("volunteer", models.RoleVolunteer)
}

// TearDownTest runs after each test
func (suite *APITestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func TestAPITestSuite(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (suite *APITestSuite) createUser(username string, role models.Role) (*models.User, string) {
	user, err := suite.svc.Auth.CreateUser(services.CreateUserInput{
		Username: username,
		Password: "password123",
		Role:     string(role),
	})
	suite.Require().NoError(err)

	token, err := suite.svc.Tokens.Issue(user.ID, user.Role)
	suite.Require().NoError(err)
	return user, token
}

func (suite *APITestSuite) createVoter(name string, territoryID *uint64) *models.Voter {
	address := name + " Street"
	voter := &models.Voter{
		Name:          name,
		Address:       &address,
		TerritoryID:   territoryID,
		ContactStatus: models.ContactStatusNotContacted,
	}
	suite.Require().NoError(suite.db.Create(voter).Error)
	return voter
}

func (suite *APITestSuite) createTerritory(name string, assignedTo *uint64) *models.Territory {
	territory, err := suite.svc.Territories.CreateTerritory(services.TerritoryInput{Name: name, AssignedTo: assignedTo})
	suite.Require().NoError(err)
	return territory
}

func (suite *APITestSuite) do(method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		payload, err := json.Marshal(body)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(payload))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *APITestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

// TestVolunteerRoleMatrix checks which routes a volunteer token may reach
func (suite *APITestSuite) TestVolunteerRoleMatrix() {
	territory := suite.createTerritory("Ward 1", &suite.volunteer.ID)
	voter := suite.createVoter("Asha", &territory.ID)

	forbidden := []struct {
		method, url string
		body        interface{}
	}{
		{http.MethodPost, "/api/territories", gin.H{"name": "New"}},
		{http.MethodPut, "/api/territories/1", gin.H{"name": "Renamed"}},
		{http.MethodDelete, "/api/territories/1", nil},
		{http.MethodPost, "/api/territories/1/assign-voters", gin.H{"voter_ids": []uint64{voter.ID}}},
		{http.MethodDelete, "/api/voters/1", nil},
		{http.MethodPost, "/api/voters", gin.H{"name": "Someone"}},
		{http.MethodPut, "/api/voters/1", gin.H{"name": "Someone"}},
		{http.MethodPost, "/api/walklists", gin.H{"name": "List", "territory_id": territory.ID}},
		{http.MethodGet, "/api/users/volunteers", nil},
		{http.MethodPost, "/api/users", gin.H{"username": "boss", "password": "password123", "role": "admin"}},
	}
	for _, tc := range forbidden {
		w := suite.do(tc.method, tc.url, suite.volunteerToken, tc.body)
		assert.Equal(suite.T(), http.StatusForbidden, w.Code, "%s %s", tc.method, tc.url)

		var body map[string]interface{}
		suite.decode(w, &body)
		assert.NotEmpty(suite.T(), body["error"], "%s %s", tc.method, tc.url)
	}

	allowed := []string{
		"/api/voters",
		"/api/voters/1",
		"/api/territories",
		"/api/territories/my",
		"/api/territories/1",
		"/api/walklists",
		"/api/walklists/my",
		"/api/logs",
		"/api/stats/party-tally",
		"/api/stats/contact-status",
		"/api/auth/me",
	}
	for _, url := range allowed {
		w := suite.do(http.MethodGet, url, suite.volunteerToken, nil)
		assert.Equal(suite.T(), http.StatusOK, w.Code, "GET %s", url)
	}

	w := suite.do(http.MethodPut, "/api/voters/1/contact", suite.volunteerToken, gin.H{"contact_status": "supporter"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
	var resp map[string]interface{}
	suite.decode(w, &resp)
	assert.Equal(suite.T(), true, resp["success"])

	// Nothing the volunteer was refused has changed.
	var count int64
	suite.db.Model(&models.Territory{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
	suite.db.Model(&models.Voter{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestManagerAndAdminRoutes checks the privileged side of the matrix
func (suite *APITestSuite) TestManagerAndAdminRoutes() {
	w := suite.do(http.MethodPost, "/api/territories", suite.managerToken, gin.H{
		"name":        "Ward 2",
		"area_type":   "ward",
		"assigned_to": suite.volunteer.ID,
	})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var territory dto.TerritoryDTO
	suite.decode(w, &territory)

	voter := suite.createVoter("Biju", nil)
	w = suite.do(http.MethodPost, "/api/territories/1/assign-voters", suite.managerToken, gin.H{"voter_ids": []uint64{voter.ID}})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/api/voters/1", suite.managerToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodDelete, "/api/voters/1", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodDelete, "/api/voters/1", suite.adminToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/territories", suite.managerToken, gin.H{"name": "Bad", "assigned_to": 999})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/territories/999", suite.managerToken, gin.H{"name": "Missing"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodGet, "/api/users/volunteers", suite.managerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var volunteers []dto.UserDTO
	suite.decode(w, &volunteers)
	suite.Require().Len(volunteers, 1)
	assert.Equal(suite.T(), "volunteer", volunteers[0].Username)

	w = suite.do(http.MethodPut, "/api/users/3/role", suite.managerToken, gin.H{"role": "manager"})
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodPut, "/api/users/3/role", suite.adminToken, gin.H{"role": "manager"})
	assert.Equal(suite.T(), http.StatusOK, w.Code)
}

// TestAuthentication covers tokens, sessions and registration
func (suite *APITestSuite) TestAuthentication() {
	w := suite.do(http.MethodGet, "/api/voters", "", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/voters", "garbage", nil)
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodGet, "/api/health", "", nil)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "newbie", "password": "password123", "role": "admin"})
	suite.Require().Equal(http.StatusCreated, w.Code)
	newbie, err := suite.svc.Auth.Authenticate(services.LoginInput{Username: "newbie", Password: "password123"})
	suite.Require().NoError(err)
	assert.Equal(suite.T(), models.RoleVolunteer, newbie.Role)

	w = suite.do(http.MethodPost, "/api/auth/register", "", gin.H{"username": "newbie", "password": "password123"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "newbie", "password": "wrong-pass"})
	assert.Equal(suite.T(), http.StatusUnauthorized, w.Code)

	w = suite.do(http.MethodPost, "/api/auth/login", "", gin.H{"username": "newbie", "password": "password123"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var login dto.LoginResponse
	suite.decode(w, &login)
	assert.NotEmpty(suite.T(), login.Token)
	assert.Equal(suite.T(), "newbie", login.User.Username)

	cookies := w.Result().Cookies()
	suite.Require().NotEmpty(cookies, "expected session cookie to be set")

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	me := httptest.NewRecorder()
	suite.router.ServeHTTP(me, req)
	suite.Require().Equal(http.StatusOK, me.Code)
	var user dto.UserDTO
	suite.decode(me, &user)
	assert.Equal(suite.T(), "newbie", user.Username)
}

// TestSyncPartialApplication checks that earlier entries survive a rejected one
func (suite *APITestSuite) TestSyncPartialApplication() {
	v1 := suite.createVoter("First", nil)
	v2 := suite.createVoter("Second", nil)
	other := suite.manager.ID

	w := suite.do(http.MethodPost, "/api/sync", suite.volunteerToken, gin.H{
		"logs": []gin.H{
			{"voter_id": v1.ID, "user_id": suite.volunteer.ID, "sentiment": "positive", "notes": "met at door"},
			{"voter_id": v2.ID, "user_id": other, "notes": "not mine"},
		},
	})
	suite.Require().Equal(http.StatusForbidden, w.Code)

	var body map[string]interface{}
	suite.decode(w, &body)
	assert.NotEmpty(suite.T(), body["error"])
	assert.Equal(suite.T(), float64(1), body["applied"])

	var count int64
	suite.db.Model(&models.ContactLog{}).Where("voter_id = ?", v1.ID).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
	suite.db.Model(&models.ContactLog{}).Where("voter_id = ?", v2.ID).Count(&count)
	assert.Equal(suite.T(), int64(0), count)

	w = suite.do(http.MethodPost, "/api/sync", suite.managerToken, gin.H{
		"logs": []gin.H{
			{"voter_id": v2.ID, "user_id": suite.volunteer.ID, "contact_status": "not_home"},
		},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/logs?voter_id=2", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	assert.Equal(suite.T(), "1", w.Header().Get("X-Total-Count"))

	w = suite.do(http.MethodGet, "/api/voters/2", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var voter dto.VoterDTO
	suite.decode(w, &voter)
	assert.Equal(suite.T(), models.ContactStatusNotHome, voter.ContactStatus)

	w = suite.do(http.MethodPost, "/api/logs", suite.volunteerToken, gin.H{
		"voter_id": 424242, "user_id": suite.volunteer.ID, "notes": "no such door",
	})
	suite.Require().Equal(http.StatusNotFound, w.Code)
	suite.db.Model(&models.ContactLog{}).Where("voter_id = ?", 424242).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestContactAndLastContact covers the live contact flow over HTTP
func (suite *APITestSuite) TestContactAndLastContact() {
	voter := suite.createVoter("Chitra", nil)

	w := suite.do(http.MethodGet, "/api/voters/1/last-contact", suite.volunteerToken, nil)
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPut, "/api/voters/1/contact", suite.volunteerToken, gin.H{"contact_status": "not_contacted"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodPut, "/api/voters/999/contact", suite.volunteerToken, gin.H{"contact_status": "contacted"})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPut, "/api/voters/1/contact", suite.volunteerToken, gin.H{
		"contact_status": "undecided",
		"sentiment":      "neutral",
		"issues":         "jobs",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/voters/1/last-contact", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var entry dto.ContactLogDTO
	suite.decode(w, &entry)
	assert.Equal(suite.T(), voter.ID, entry.VoterID)
	assert.Equal(suite.T(), suite.volunteer.ID, entry.UserID)
	suite.Require().NotNil(entry.Issues)
	assert.Equal(suite.T(), "jobs", *entry.Issues)
}

// TestWalklistLifecycle covers creation defaults and status transitions
func (suite *APITestSuite) TestWalklistLifecycle() {
	territory := suite.createTerritory("Ward 5", &suite.volunteer.ID)
	suite.createVoter("Dev", &territory.ID)

	w := suite.do(http.MethodPost, "/api/walklists", suite.managerToken, gin.H{"name": "Saturday", "territory_id": 999})
	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	w = suite.do(http.MethodPost, "/api/walklists", suite.managerToken, gin.H{"name": "Saturday", "territory_id": territory.ID})
	suite.Require().Equal(http.StatusCreated, w.Code)
	var created dto.WalklistDTO
	suite.decode(w, &created)
	suite.Require().NotNil(created.AssignedTo)
	assert.Equal(suite.T(), suite.volunteer.ID, *created.AssignedTo)
	assert.Equal(suite.T(), models.WalklistStatusNotStarted, created.Status)

	w = suite.do(http.MethodPut, "/api/walklists/1", suite.volunteerToken, gin.H{"status": "completed"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var completed dto.WalklistDTO
	suite.decode(w, &completed)
	assert.NotNil(suite.T(), completed.CompletedAt)

	w = suite.do(http.MethodPut, "/api/walklists/1", suite.volunteerToken, gin.H{"status": "in_progress"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var reopened dto.WalklistDTO
	suite.decode(w, &reopened)
	assert.Nil(suite.T(), reopened.CompletedAt)

	w = suite.do(http.MethodPut, "/api/walklists/1", suite.volunteerToken, gin.H{"status": "done"})
	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	w = suite.do(http.MethodGet, "/api/walklists/my", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var mine []dto.WalklistDTO
	suite.decode(w, &mine)
	suite.Require().Len(mine, 1)
	assert.Equal(suite.T(), int64(1), mine[0].TotalVoters)
	assert.Equal(suite.T(), 0, mine[0].Progress)
}

// TestTerritoryOwnershipAndDelete covers the volunteer detail check and delete cascade
func (suite *APITestSuite) TestTerritoryOwnershipAndDelete() {
	other, otherToken := suite.createUser("other", models.RoleVolunteer)
	territory := suite.createTerritory("Ward 7", &suite.volunteer.ID)
	suite.createVoter("Eli", &territory.ID)
	suite.createVoter("Fatima", &territory.ID)

	w := suite.do(http.MethodGet, "/api/territories/1", otherToken, nil)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	w = suite.do(http.MethodGet, "/api/territories/my", otherToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var none []dto.MyTerritoryDTO
	suite.decode(w, &none)
	assert.Empty(suite.T(), none)
	assert.NotZero(suite.T(), other.ID)

	w = suite.do(http.MethodGet, "/api/territories/1", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var detail dto.TerritoryDetailDTO
	suite.decode(w, &detail)
	assert.Len(suite.T(), detail.Voters, 2)

	w = suite.do(http.MethodDelete, "/api/territories/1", suite.managerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/voters", suite.volunteerToken, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var voters []dto.VoterDTO
	suite.decode(w, &voters)
	suite.Require().Len(voters, 2)
	for _, v := range voters {
		assert.Nil(suite.T(), v.TerritoryID)
	}
}
