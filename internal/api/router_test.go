package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fitcontest/internal/common"
	"fitcontest/internal/common/security"
	"fitcontest/internal/domain/model"
)

type testEnv struct {
	users    *fakeUsers
	contests *fakeContests
	stats    *fakeStats
	weighins *fakeWeighins
	points   *fakePoints
	wins     *fakeWins
	router   http.Handler
}

func newTestEnv(t *testing.T, opts Options) *testEnv {
	t.Helper()
	env := &testEnv{
		users:    &fakeUsers{},
		contests: &fakeContests{},
		stats:    &fakeStats{},
		weighins: &fakeWeighins{},
		points:   &fakePoints{},
		wins:     &fakeWins{},
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Registry == nil {
		opts.Registry = prometheus.NewRegistry()
	}
	if opts.AllowedOrigins == nil {
		opts.AllowedOrigins = []string{"http://localhost:3000"}
	}
	env.router = NewRouter(opts, Dependencies{
		Users:        env.users,
		Contests:     env.contests,
		ContestUsers: &fakeContestUsers{},
		CurrentStats: env.stats,
		Measurements: &fakeMeasurements{},
		Weighins:     env.weighins,
		Workouts:     &fakeWorkouts{},
		Points:       env.points,
		Wins:         env.wins,
	})
	return env
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp common.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return resp.Error.Message
}

func TestRootAndHealth(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Hello, world!", w.Body.String())
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = env.do(http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.do(http.MethodGet, "/api/wins", "")

	w := env.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "http_requests_total")
	assert.Contains(t, w.Body.String(), `status="200"`)
}

func TestCollectionGetEmpty(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodGet, "/api/wins", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestPointsScenario(t *testing.T) {
	env := newTestEnv(t, Options{})

	for _, category := range []string{"weight", "workout", "stomach", "weight", "workout", "stomach"} {
		body := `{"user_id":1,"contest_id":1,"points":3,"category":"` + category + `"}`
		w := env.do(http.MethodPost, "/api/points", body)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	}
	w := env.do(http.MethodPost, "/api/points", `{"user_id":2,"contest_id":1,"points":4,"category":"weight"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodGet, "/api/points/userId/1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var rows []model.Points
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Len(t, rows, 6)
	for _, p := range rows {
		assert.Equal(t, int64(1), p.UserID)
		assert.Equal(t, int64(3), p.Points)
	}

	w = env.do(http.MethodGet, "/api/points/totalUserPoints?user_id=1&contest_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"sum":"18"}]`, w.Body.String())

	w = env.do(http.MethodGet, "/api/points/totalUserPoints?user_id=3&contest_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"sum":null}]`, w.Body.String())

	w = env.do(http.MethodGet, "/api/points/userId/3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Points do not exist", errorMessage(t, w))
}

func TestCreateRequiresFieldsInOrder(t *testing.T) {
	env := newTestEnv(t, Options{})

	tests := []struct {
		name string
		path string
		body string
		want string
	}{
		{"first missing wins", "/api/points", `{"points":3}`, "Missing 'user_id' in request body"},
		{"null counts as missing", "/api/points", `{"user_id":1,"contest_id":null,"points":3,"category":"weight"}`, "Missing 'contest_id' in request body"},
		{"last field", "/api/points", `{"user_id":1,"contest_id":1,"points":3}`, "Missing 'category' in request body"},
		{"users", "/api/users", `{"username":"abby"}`, "Missing 'password' in request body"},
		{"contests", "/api/contests", `{"date_start":"2024-01-01","contest_name":"x","weighin_day":"Monday"}`, "Missing 'date_end' in request body"},
		{"wins", "/api/wins", `{"contest_id":1}`, "Missing 'win' in request body"},
		{"weighins", "/api/weighins", `{"user_id":1,"contest_id":1}`, "Missing 'weight' in request body"},
		{"currentstats", "/api/currentstats", `{"user_id":1,"current_weight":200}`, "Missing 'goal_weight' in request body"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(http.MethodPost, tc.path, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.want, errorMessage(t, w))
		})
	}
	assert.Empty(t, env.points.points)
	assert.Empty(t, env.users.users)
}

func TestZeroValuedRequiredFieldIsAccepted(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodPost, "/api/points", `{"user_id":1,"contest_id":1,"points":0,"category":"weight"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestMalformedBody(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodPost, "/api/wins", `{"win":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.True(t, strings.HasPrefix(errorMessage(t, w), "Invalid request payload: "))
}

func TestInvalidKeyParameter(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodGet, "/api/points/userId/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid 'user_id' parameter", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/points/totalUserPoints?user_id=1", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid 'contest_id' parameter", errorMessage(t, w))
}

func TestWinKeyedRoutes(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.wins.wins = []model.Win{{WinID: 4, Win: "Lost 5 lbs", ContestID: 1}}

	w := env.do(http.MethodGet, "/api/wins/winId/4", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"win_id":4,"win":"Lost 5 lbs","contest_id":1}]`, w.Body.String())

	w = env.do(http.MethodGet, "/api/wins/winId/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Win does not exist", errorMessage(t, w))

	w = env.do(http.MethodDelete, "/api/wins/winId/5", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Empty(t, env.wins.deleted)

	w = env.do(http.MethodDelete, "/api/wins/winId/4", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
	assert.Equal(t, []int64{4}, env.wins.deleted)

	w = env.do(http.MethodPatch, "/api/wins/winId/4", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Request body must contain either 'win' or 'contest_id'", errorMessage(t, w))
}

func TestUserRoutes(t *testing.T) {
	env := newTestEnv(t, Options{})

	w := env.do(http.MethodPost, "/api/users", `{"password":"hunter2","display_name":"Abby","username":"abby"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created model.User
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, int64(1), created.UserID)
	assert.NotEqual(t, "hunter2", created.Password)

	for _, path := range []string{"/api/users/1", "/api/users/id/1"} {
		w = env.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w = env.do(http.MethodGet, "/api/users/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User doesn't exist", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/users/username/abby/id", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":1}`, w.Body.String())

	w = env.do(http.MethodPatch, "/api/users/1", `{"display_name":""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Request body must contain either 'password', 'display_name', or 'username'", errorMessage(t, w))

	w = env.do(http.MethodPatch, "/api/users/id/1", `{"display_name":"Abigail"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "Abigail", *env.users.patched[1].DisplayName)

	w = env.do(http.MethodDelete, "/api/users/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{1}, env.users.deleted)
}

func TestLogin(t *testing.T) {
	env := newTestEnv(t, Options{})
	w := env.do(http.MethodPost, "/api/users", `{"password":"hunter2","display_name":"Abby","username":"abby"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodGet, "/api/users/login/userAuth?username=abby&password=hunter2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var resp model.LoginResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.UserID)
	assert.Equal(t, "token-1", resp.Token)

	w = env.do(http.MethodGet, "/api/users/login/userAuth?username=abby&password=nope", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "password does not match", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/users/login/userAuth?username=ghost&password=x", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User doesn't exist", errorMessage(t, w))
}

func TestContestLookups(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.contests.contests = []model.Contest{
		{ContestID: 1, ContestName: "Spring Shred 2024", WeighinDay: "Monday", DateStart: epoch},
		{ContestID: 2, ContestName: "Summer Slimdown", WeighinDay: "Friday", DateStart: epoch},
	}

	w := env.do(http.MethodGet, "/api/contests/slug/spring-shred-2024", "")
	require.Equal(t, http.StatusOK, w.Code)
	var found []model.Contest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &found))
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].ContestID)

	w = env.do(http.MethodGet, "/api/contests/contestName/Summer%20Slimdown/id", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"contest_id":2}`, w.Body.String())

	w = env.do(http.MethodGet, "/api/contests/contestName/Winter", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Contest doesn't exist", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/contests/id/2", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestWeighinProjectionAndLatest(t *testing.T) {
	env := newTestEnv(t, Options{})
	for i, v := range []string{"200", "198.5", "197"} {
		env.weighins.weighins = append(env.weighins.weighins, model.Weighin{
			ID: int64(i + 1), UserID: 1, ContestID: 1,
			Weight:      decimal.RequireFromString(v),
			DateCreated: epoch.Add(time.Duration(i) * 24 * time.Hour),
		})
	}

	w := env.do(http.MethodGet, "/api/weighins/id/2", "")
	require.Equal(t, http.StatusOK, w.Code)
	var one []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &one))
	require.Len(t, one, 1)
	assert.Equal(t, "198.5", one[0]["weight"])

	w = env.do(http.MethodGet, "/api/weighins/latest?user_id=1&contest_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	var latest []model.Weighin
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &latest))
	require.Len(t, latest, 2)
	assert.Equal(t, int64(3), latest[0].ID)
	assert.Equal(t, []int{2}, env.weighins.limits)

	w = env.do(http.MethodGet, "/api/weighins/id/9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Weighins do not exist", errorMessage(t, w))
}

func TestCurrentStatsContestUser(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.stats.stats = []model.CurrentStats{{
		UserID: 1, ContestID: 2, DisplayName: "Abby",
		CurrentWeight: decimal.NewFromInt(200), GoalWeight: decimal.NewFromInt(180),
	}}

	w := env.do(http.MethodGet, "/api/currentstats/contestUserId/displayname?user_id=1&contest_id=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `"Abby"`, w.Body.String())

	w = env.do(http.MethodGet, "/api/currentstats/contestUserId/displayname?user_id=1&contest_id=3", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "CurrentStats doesn't exist", errorMessage(t, w))

	w = env.do(http.MethodGet, "/api/currentstats/contestUserId?user_id=1&contest_id=2", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[{"user_id":1,"contest_id":2,"current_weight":"200","goal_weight":"180","display_name":"Abby"}]`, w.Body.String())

	w = env.do(http.MethodPatch, "/api/currentstats/contestUserId?user_id=1&contest_id=2", `{"current_weight":195}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, env.stats.updates, 1)
	assert.Equal(t, "current_weight", env.stats.updates[0][0].Column)
	assert.Equal(t, "195", env.stats.updates[0][0].Value)

	w = env.do(http.MethodPatch, "/api/currentstats/contestUserId?user_id=9&contest_id=2", `{"current_weight":195}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Len(t, env.stats.updates, 1)
}

func TestConstraintViolationIsServerError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", Message: "duplicate key value violates unique constraint"}

	t.Run("production", func(t *testing.T) {
		env := newTestEnv(t, Options{Production: true})
		env.contests.err = common.ClassifyDBError("pgContestRepository.Create", pgErr)

		w := env.do(http.MethodPost, "/api/contests", `{"date_start":"2024-01-01","date_end":"2024-02-01","contest_name":"x","weighin_day":"Monday"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{"error":{"message":"server error"}}`, w.Body.String())
	})

	t.Run("development", func(t *testing.T) {
		env := newTestEnv(t, Options{})
		env.contests.err = common.ClassifyDBError("pgContestRepository.Create", pgErr)

		w := env.do(http.MethodPost, "/api/contests", `{"date_start":"2024-01-01","date_end":"2024-02-01","contest_name":"x","weighin_day":"Monday"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Contains(t, body["message"], "duplicate key")
		assert.Equal(t, "23505", body["error"].(map[string]interface{})["Code"])
	})
}

func TestCORSRejection(t *testing.T) {
	env := newTestEnv(t, Options{Production: true})

	req := httptest.NewRequest(http.MethodGet, "/api/wins", nil)
	req.Header.Set("Origin", "http://evil.example")
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "server error", errorMessage(t, w))
}

func TestRequireAuth(t *testing.T) {
	issuer := security.NewTokenIssuer([]byte("secret"), time.Hour)
	env := newTestEnv(t, Options{RequireAuth: true, TokenAuth: issuer.Auth})

	w := env.do(http.MethodPost, "/api/users", `{"password":"hunter2","display_name":"Abby","username":"abby"}`)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = env.do(http.MethodPost, "/api/wins", `{"win":"w","contest_id":1}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.do(http.MethodGet, "/api/wins", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentStatsKeyedRoutes(t *testing.T) {
	env := newTestEnv(t, Options{})
	env.stats.stats = []model.CurrentStats{
		{UserID: 1, ContestID: 2, DisplayName: "Abby", CurrentWeight: decimal.NewFromInt(200), GoalWeight: decimal.NewFromInt(180)},
		{UserID: 2, ContestID: 2, DisplayName: "Ben", CurrentWeight: decimal.RequireFromString("210.5"), GoalWeight: decimal.NewFromInt(190)},
	}

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		code    int
		message string
		rows    int
	}{
		{"user rows", http.MethodGet, "/api/currentstats/userId/1", "", http.StatusOK, "", 1},
		{"unknown user", http.MethodGet, "/api/currentstats/userId/9", "", http.StatusNotFound, "CurrentStats doesn't exist", 0},
		{"contest rows", http.MethodGet, "/api/currentstats/contestId/2", "", http.StatusOK, "", 2},
		{"empty contest", http.MethodGet, "/api/currentstats/contestId/3", "", http.StatusNotFound, "CurrentStats doesn't exist", 0},
		{"weight page", http.MethodGet, "/api/currentstats/contestUserId/weightPageStats?user_id=2&contest_id=2", "", http.StatusOK, "", 1},
		{"weight page empty", http.MethodGet, "/api/currentstats/contestUserId/weightPageStats?user_id=2&contest_id=3", "", http.StatusNotFound, "CurrentStats doesn't exist", 0},
		{"user patch without contest", http.MethodPatch, "/api/currentstats/userId/1", `{"goal_weight":170}`, http.StatusBadRequest, "Request body must contain 'contest_id'", 0},
		{"user patch empty", http.MethodPatch, "/api/currentstats/userId/1", `{}`, http.StatusBadRequest, "Request body must contain 'contest_id'", 0},
		{"user patch unknown", http.MethodPatch, "/api/currentstats/userId/9", `{"contest_id":3}`, http.StatusNotFound, "CurrentStats doesn't exist", 0},
		{"user delete unknown", http.MethodDelete, "/api/currentstats/userId/9", "", http.StatusNotFound, "CurrentStats doesn't exist", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(tc.method, tc.path, tc.body)
			require.Equal(t, tc.code, w.Code, w.Body.String())
			if tc.message != "" {
				assert.Equal(t, tc.message, errorMessage(t, w))
				return
			}
			var rows []map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
			assert.Len(t, rows, tc.rows)
		})
	}
	assert.Empty(t, env.stats.userUpdates)
	assert.Empty(t, env.stats.deleted)

	w := env.do(http.MethodPatch, "/api/currentstats/userId/1", `{"contest_id":3,"goal_weight":170}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
	require.Len(t, env.stats.userUpdates, 1)
	require.Len(t, env.stats.userUpdates[0], 1)
	assert.Equal(t, "contest_id", env.stats.userUpdates[0][0].Column)
	assert.Equal(t, int64(3), env.stats.userUpdates[0][0].Value)

	w = env.do(http.MethodGet, "/api/currentstats/contestUserId/weightPageStats?user_id=2&contest_id=2", "")
	assert.JSONEq(t, `[{"user_id":2,"contest_id":2,"current_weight":210.5,"goal_weight":190,"display_name":"Ben"}]`, w.Body.String())

	w = env.do(http.MethodDelete, "/api/currentstats/userId/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = env.do(http.MethodDelete, "/api/currentstats/contestUserId?user_id=2&contest_id=2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, []int64{1, 2}, env.stats.deleted)
}
