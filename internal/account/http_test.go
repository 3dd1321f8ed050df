package account

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/team-hub/internal/bootstrap"
	"github.com/yourusername/team-hub/internal/catalog"
	"github.com/yourusername/team-hub/internal/session"
	"github.com/yourusername/team-hub/internal/store"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.NewMemStore()
	if err := bootstrap.New(st, testLogger()).Run(context.Background()); err != nil {
		t.Fatalf("bootstrap failed: %v", err)
	}

	sm := session.NewManager(24 * time.Hour)
	svc := NewService(st, testLogger())

	router := gin.New()
	router.Use(sessions.Sessions(session.CookieName, cookie.NewStore([]byte("test-secret"))))
	router.POST("/api/register", RegisterHandler(svc))
	router.POST("/api/login", LoginHandler(svc, sm))
	router.POST("/api/logout", LogoutHandler(sm))
	router.GET("/api/players", catalog.PlayersHandler(st))
	router.GET("/api/me", RequireLogin(sm), MeHandler(svc))
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to parse response %q: %v", rec.Body.String(), err)
	}
	return payload
}

func TestRegisterLoginLogoutScenario(t *testing.T) {
	router := newTestRouter(t)

	// 登録
	rec := postJSON(t, router, "/api/register", map[string]string{
		"firstName": "Rohit",
		"lastName":  "Sharma",
		"email":     "rohit@example.com",
		"password":  "Secret123",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: unexpected status %d body=%s", rec.Code, rec.Body.String())
	}
	if payload := decodeBody(t, rec); payload["success"] != true {
		t.Fatalf("register: expected success, got %v", payload)
	}

	// 正しい資格情報でログイン
	rec = postJSON(t, router, "/api/login", map[string]string{
		"email":    "rohit@example.com",
		"password": "Secret123",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("login: unexpected status %d body=%s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	user, ok := payload["user"].(map[string]any)
	if !ok {
		t.Fatalf("login: expected user in response, got %v", payload)
	}
	if user["firstName"] != "Rohit" || user["lastName"] != "Sharma" || user["email"] != "rohit@example.com" {
		t.Fatalf("login: unexpected profile %v", user)
	}
	if _, found := user["passwordHash"]; found {
		t.Fatal("login: passwordHash must never leave the service boundary")
	}
	if _, found := user["id"]; found {
		t.Fatal("login: id must never leave the service boundary")
	}
	loginCookies := rec.Result().Cookies()
	if len(loginCookies) == 0 {
		t.Fatal("login: expected a session cookie")
	}

	// 間違ったパスワードでログイン
	rec = postJSON(t, router, "/api/login", map[string]string{
		"email":    "rohit@example.com",
		"password": "WrongPass",
	}, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong password: unexpected status %d", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["code"] != CodeInvalidCredentials {
		t.Fatalf("wrong password: unexpected code %v", payload["code"])
	}

	// ログアウト
	rec = postJSON(t, router, "/api/logout", map[string]string{}, loginCookies)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: unexpected status %d", rec.Code)
	}
	if payload := decodeBody(t, rec); payload["success"] != true {
		t.Fatalf("logout: expected success, got %v", payload)
	}

	// 再度のログアウトも成功する（冪等）
	rec = postJSON(t, router, "/api/logout", map[string]string{}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("second logout: unexpected status %d", rec.Code)
	}
}

func TestLoginFailureShapeIsIdentical(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/api/register", map[string]string{
		"firstName": "Rohit",
		"lastName":  "Sharma",
		"email":     "rohit@example.com",
		"password":  "Secret123",
	}, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("register: unexpected status %d", rec.Code)
	}

	wrongPassword := postJSON(t, router, "/api/login", map[string]string{
		"email":    "rohit@example.com",
		"password": "WrongPass",
	}, nil)
	unknownEmail := postJSON(t, router, "/api/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "Secret123",
	}, nil)

	if wrongPassword.Code != unknownEmail.Code {
		t.Fatalf("status differs: %d vs %d", wrongPassword.Code, unknownEmail.Code)
	}
	if !bytes.Equal(wrongPassword.Body.Bytes(), unknownEmail.Body.Bytes()) {
		t.Fatalf("response bodies differ:\n%s\n%s", wrongPassword.Body.String(), unknownEmail.Body.String())
	}
}

func TestRegisterDuplicateOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	payload := map[string]string{
		"firstName": "Rohit",
		"lastName":  "Sharma",
		"email":     "rohit@example.com",
		"password":  "Secret123",
	}
	if rec := postJSON(t, router, "/api/register", payload, nil); rec.Code != http.StatusOK {
		t.Fatalf("first register: unexpected status %d", rec.Code)
	}

	rec := postJSON(t, router, "/api/register", payload, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register: unexpected status %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["code"] != CodeDuplicateAccount {
		t.Fatalf("duplicate register: unexpected code %v", body["code"])
	}
}

func TestMeRequiresLogin(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a session, got %d", rec.Code)
	}
}

func TestMeReturnsProfileForActiveSession(t *testing.T) {
	router := newTestRouter(t)

	if rec := postJSON(t, router, "/api/register", map[string]string{
		"firstName": "Rohit",
		"lastName":  "Sharma",
		"email":     "rohit@example.com",
		"password":  "Secret123",
	}, nil); rec.Code != http.StatusOK {
		t.Fatalf("register: unexpected status %d", rec.Code)
	}

	login := postJSON(t, router, "/api/login", map[string]string{
		"email":    "rohit@example.com",
		"password": "Secret123",
	}, nil)
	if login.Code != http.StatusOK {
		t.Fatalf("login: unexpected status %d", login.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	for _, c := range login.Result().Cookies() {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("me: unexpected status %d body=%s", rec.Code, rec.Body.String())
	}
	payload := decodeBody(t, rec)
	user, ok := payload["user"].(map[string]any)
	if !ok || user["email"] != "rohit@example.com" {
		t.Fatalf("me: unexpected payload %v", payload)
	}
}

func TestPlayersIsPublic(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/players", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("players: unexpected status %d", rec.Code)
	}

	var players []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &players); err != nil {
		t.Fatalf("players: failed to parse response: %v", err)
	}
	if len(players) != 4 {
		t.Fatalf("players: expected 4 seed entries, got %d", len(players))
	}
}
