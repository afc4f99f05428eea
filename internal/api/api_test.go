package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/gigbridge/gigbridge/internal/auth"
	"github.com/gigbridge/gigbridge/internal/db"
	"github.com/gigbridge/gigbridge/internal/models"
	"github.com/gigbridge/gigbridge/internal/notify"
	"github.com/gigbridge/gigbridge/internal/view"
)

// captureNotifier records events instead of delivering them.
type captureNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *captureNotifier) Notify(_ context.Context, ev notify.Event) {
	n.mu.Lock()
	n.events = append(n.events, ev)
	n.mu.Unlock()
}

func (n *captureNotifier) kinds() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.events))
	for _, ev := range n.events {
		out = append(out, ev.Kind)
	}
	return out
}

type testAPI struct {
	router   *gin.Engine
	db       *gorm.DB
	notifier *captureNotifier
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	notifier := &captureNotifier{}
	router, err := NewRouter(StartOpts{
		DB:       gdb,
		Issuer:   auth.NewTokenIssuer("test-secret", time.Hour),
		Notifier: notifier,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &testAPI{router: router, db: gdb, notifier: notifier}
}

func (ta *testAPI) seedCatalog(t *testing.T) {
	t.Helper()
	rows := []any{
		&models.Skill{ID: uuid.NewString(), NameEn: "Design", NameRu: "Дизайн"},
		&models.Tool{ID: uuid.NewString(), Name: "Figma"},
	}
	for _, row := range rows {
		if err := ta.db.Create(row).Error; err != nil {
			t.Fatalf("seed catalog: %v", err)
		}
	}
}

// do sends a JSON request through the router. An empty token leaves
// the Authorization header off.
func (ta *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ta.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
}

// register creates a user through the API and returns token and id.
func (ta *testAPI) register(t *testing.T, email string) (token, userID string) {
	t.Helper()
	w := ta.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": email, "password": "hunter22", "name": "Test",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", email, w.Code, w.Body.String())
	}
	var resp tokenResponse
	decode(t, w, &resp)
	return resp.Token, resp.User.ID
}

func (ta *testAPI) createOrder(t *testing.T, token, title string) view.FullOrder {
	t.Helper()
	w := ta.do(t, http.MethodPost, "/api/orders", token, gin.H{
		"title": title, "skill": "Design", "tools": []string{"Figma"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create order: status = %d, body %s", w.Code, w.Body.String())
	}
	var full view.FullOrder
	decode(t, w, &full)
	return full
}

func TestNewRouter_Validation(t *testing.T) {
	if _, err := NewRouter(StartOpts{}); err == nil {
		t.Error("expected error for nil db")
	}
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if _, err := NewRouter(StartOpts{DB: gdb}); err == nil {
		t.Error("expected error for nil issuer")
	}
}

func TestRegisterAndLogin(t *testing.T) {
	ta := newTestAPI(t)

	token, userID := ta.register(t, "alice@example.com")
	if token == "" || userID == "" {
		t.Fatal("register returned empty token or user id")
	}

	// The registration event reached the notifier.
	if kinds := ta.notifier.kinds(); len(kinds) != 1 || kinds[0] != "user.signup" {
		t.Errorf("notifier events = %v, want [user.signup]", kinds)
	}

	// Duplicate email.
	w := ta.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email": "alice@example.com", "password": "other",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", w.Code)
	}

	w = ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "wrong",
	})
	if w.Code != http.StatusForbidden {
		t.Errorf("bad login status = %d, want 403", w.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	ta := newTestAPI(t)

	w := ta.do(t, http.MethodGet, "/api/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/me", "garbage", nil)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", w.Code)
	}
}

func TestMe(t *testing.T) {
	ta := newTestAPI(t)
	token, userID := ta.register(t, "alice@example.com")

	w := ta.do(t, http.MethodGet, "/api/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me status = %d, body %s", w.Code, w.Body.String())
	}
	var profile view.UserProfile
	decode(t, w, &profile)
	if profile.ID != userID || profile.Email != "alice@example.com" {
		t.Errorf("profile = %+v", profile)
	}
}

func TestCatalog(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)

	w := ta.do(t, http.MethodGet, "/api/skills", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("skills status = %d", w.Code)
	}
	var skills []skillResponse
	decode(t, w, &skills)
	if len(skills) != 1 || skills[0].NameEn != "Design" {
		t.Errorf("skills = %+v", skills)
	}

	w = ta.do(t, http.MethodGet, "/api/tools", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("tools status = %d", w.Code)
	}
	var tools []toolResponse
	decode(t, w, &tools)
	if len(tools) != 1 || tools[0].Name != "Figma" {
		t.Errorf("tools = %+v", tools)
	}
}

func TestOrderLifecycle(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	ownerToken, _ := ta.register(t, "owner@example.com")
	otherToken, _ := ta.register(t, "other@example.com")

	// Unknown skill is rejected.
	w := ta.do(t, http.MethodPost, "/api/orders", ownerToken, gin.H{
		"title": "Logo", "skill": "Underwater basket weaving",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown skill status = %d, want 400", w.Code)
	}

	full := ta.createOrder(t, ownerToken, "Logo design")
	if full.Skill == nil || full.Skill.NameEn != "Design" {
		t.Errorf("order skill = %+v", full.Skill)
	}
	if len(full.Tools) != 1 || full.Tools[0] != "Figma" {
		t.Errorf("order tools = %v", full.Tools)
	}

	// Publication event.
	kinds := ta.notifier.kinds()
	if kinds[len(kinds)-1] != "order.published" {
		t.Errorf("last event = %v, want order.published", kinds)
	}

	// Public search finds it without auth.
	w = ta.do(t, http.MethodGet, "/api/orders", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	var listed []view.FullOrder
	decode(t, w, &listed)
	if len(listed) != 1 || listed[0].ID != full.ID {
		t.Errorf("search = %+v", listed)
	}

	w = ta.do(t, http.MethodGet, "/api/orders/"+full.ID, "", nil)
	if w.Code != http.StatusOK {
		t.Errorf("get order status = %d", w.Code)
	}
	w = ta.do(t, http.MethodGet, "/api/orders/"+uuid.NewString(), "", nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing order status = %d, want 404", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/orders/mine", ownerToken, nil)
	decode(t, w, &listed)
	if len(listed) != 1 {
		t.Errorf("mine = %+v", listed)
	}

	// Only the owner may delete.
	w = ta.do(t, http.MethodDelete, "/api/orders/"+full.ID, otherToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/orders/"+full.ID, ownerToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/orders", "", nil)
	decode(t, w, &listed)
	if len(listed) != 0 {
		t.Errorf("search after delete = %+v", listed)
	}
}

func TestInteractionFlow(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	ownerToken, _ := ta.register(t, "owner@example.com")
	aliceToken, _ := ta.register(t, "alice@example.com")
	ord := ta.createOrder(t, ownerToken, "Logo design")

	w := ta.do(t, http.MethodPost, "/api/interactions", aliceToken, gin.H{"orderId": ord.ID})
	if w.Code != http.StatusCreated {
		t.Fatalf("apply status = %d, body %s", w.Code, w.Body.String())
	}
	var inter view.FullInteraction
	decode(t, w, &inter)
	if inter.Getter.Email != "owner@example.com" || inter.Status != models.StatusActive {
		t.Errorf("interaction = %+v", inter)
	}

	// The owner sees it among received applications.
	w = ta.do(t, http.MethodGet, "/api/interactions/received", ownerToken, nil)
	var received []view.FullInteraction
	decode(t, w, &received)
	if len(received) != 1 || received[0].ID != inter.ID {
		t.Errorf("received = %+v", received)
	}

	// Only the getter may accept.
	w = ta.do(t, http.MethodPost, "/api/interactions/"+inter.ID+"/accept", aliceToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("sender accept status = %d, want 403", w.Code)
	}

	w = ta.do(t, http.MethodPost, "/api/interactions/"+inter.ID+"/accept", ownerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("accept status = %d, body %s", w.Code, w.Body.String())
	}
	var accepted view.FullInteraction
	decode(t, w, &accepted)
	if accepted.Status != models.StatusAccepted {
		t.Errorf("status = %q, want accepted", accepted.Status)
	}

	kinds := ta.notifier.kinds()
	if kinds[len(kinds)-1] != "collaboration.started" {
		t.Errorf("last event = %v, want collaboration.started", kinds)
	}

	// A second accept conflicts.
	w = ta.do(t, http.MethodPost, "/api/interactions/"+inter.ID+"/accept", ownerToken, nil)
	if w.Code != http.StatusConflict {
		t.Errorf("double accept status = %d, want 409", w.Code)
	}

	// Both parties now hold the order in their collaborations tab.
	for _, token := range []string{ownerToken, aliceToken} {
		w = ta.do(t, http.MethodGet, "/api/tabs/collaborations", token, nil)
		var collabs []view.FullOrder
		decode(t, w, &collabs)
		if len(collabs) != 1 || collabs[0].ID != ord.ID {
			t.Errorf("collaborations = %+v", collabs)
		}
	}

	// The closed order left the public listing.
	w = ta.do(t, http.MethodGet, "/api/orders", "", nil)
	var listed []view.FullOrder
	decode(t, w, &listed)
	if len(listed) != 0 {
		t.Errorf("search after accept = %+v", listed)
	}

	// Applying to the closed order conflicts.
	w = ta.do(t, http.MethodPost, "/api/interactions", aliceToken, gin.H{"orderId": ord.ID})
	if w.Code != http.StatusConflict {
		t.Errorf("apply to closed order status = %d, want 409", w.Code)
	}
}

func TestRejectAndDelete(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	ownerToken, _ := ta.register(t, "owner@example.com")
	aliceToken, _ := ta.register(t, "alice@example.com")
	ord := ta.createOrder(t, ownerToken, "Logo design")

	w := ta.do(t, http.MethodPost, "/api/interactions", aliceToken, gin.H{"orderId": ord.ID})
	var inter view.FullInteraction
	decode(t, w, &inter)

	// Only the getter may reject.
	w = ta.do(t, http.MethodPost, "/api/interactions/"+inter.ID+"/reject", aliceToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("sender reject status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodPost, "/api/interactions/"+inter.ID+"/reject", ownerToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("reject status = %d, want 204", w.Code)
	}

	// Only the sender may delete.
	w = ta.do(t, http.MethodDelete, "/api/interactions/"+inter.ID, ownerToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("getter delete status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/interactions/"+inter.ID, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/interactions/"+inter.ID, aliceToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("delete again status = %d, want 404", w.Code)
	}
}

func TestFavorites(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	ownerToken, _ := ta.register(t, "owner@example.com")
	aliceToken, _ := ta.register(t, "alice@example.com")
	ord := ta.createOrder(t, ownerToken, "Logo design")

	w := ta.do(t, http.MethodPost, "/api/tabs/favorites/"+ord.ID, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("add favorite status = %d", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/tabs/favorites", aliceToken, nil)
	var favorites []view.FullOrder
	decode(t, w, &favorites)
	if len(favorites) != 1 || favorites[0].ID != ord.ID {
		t.Errorf("favorites = %+v", favorites)
	}

	w = ta.do(t, http.MethodDelete, "/api/tabs/favorites/"+ord.ID, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("remove favorite status = %d", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/tabs/favorites/"+ord.ID, aliceToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("remove again status = %d, want 404", w.Code)
	}
}

func TestPortfolioProjects(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, aliceID := ta.register(t, "alice@example.com")
	bobToken, _ := ta.register(t, "bob@example.com")

	// Name is required.
	w := ta.do(t, http.MethodPost, "/api/portfolio", aliceToken, gin.H{"description": "nameless"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("nameless project status = %d, want 400", w.Code)
	}

	w = ta.do(t, http.MethodPost, "/api/portfolio", aliceToken, gin.H{
		"name": "Bakery rebrand", "description": "Identity refresh", "files": []string{"a.png"},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create project status = %d, body %s", w.Code, w.Body.String())
	}
	var project projectResponse
	decode(t, w, &project)
	if project.UserID != aliceID || len(project.Files) != 1 {
		t.Errorf("project = %+v", project)
	}

	// The project shows up both on the portfolio tab and the public
	// profile listing.
	w = ta.do(t, http.MethodGet, "/api/tabs/portfolio", aliceToken, nil)
	var shown []projectResponse
	decode(t, w, &shown)
	if len(shown) != 1 || shown[0].ID != project.ID {
		t.Errorf("portfolio tab = %+v", shown)
	}
	w = ta.do(t, http.MethodGet, "/api/users/"+aliceID+"/portfolio", "", nil)
	decode(t, w, &shown)
	if len(shown) != 1 || shown[0].ID != project.ID {
		t.Errorf("public portfolio = %+v", shown)
	}

	// Only the owner may update or delete.
	w = ta.do(t, http.MethodPut, "/api/portfolio/"+project.ID, bobToken, gin.H{"name": "Hijacked"})
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign update status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodPut, "/api/portfolio/"+project.ID, aliceToken, gin.H{"name": "Final cut"})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var updated projectResponse
	decode(t, w, &updated)
	if updated.Name != "Final cut" || updated.Description != "Identity refresh" {
		t.Errorf("updated = %+v", updated)
	}

	w = ta.do(t, http.MethodDelete, "/api/portfolio/"+project.ID, bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("foreign delete status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/portfolio/"+project.ID, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/tabs/portfolio", aliceToken, nil)
	decode(t, w, &shown)
	if len(shown) != 0 {
		t.Errorf("portfolio tab after delete = %+v", shown)
	}
}

func TestUpdateProfile(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	token, userID := ta.register(t, "alice@example.com")

	w := ta.do(t, http.MethodPut, "/api/me", token, gin.H{
		"surname":    "Ruiz",
		"experience": "senior",
		"skills":     []string{"Design"},
		"tools":      []string{"Figma"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, body %s", w.Code, w.Body.String())
	}
	var profile view.UserProfile
	decode(t, w, &profile)
	if profile.ID != userID || profile.Surname != "Ruiz" {
		t.Errorf("profile = %+v", profile)
	}
	if len(profile.Skills) != 1 || !profile.Skills[0].Primary {
		t.Errorf("skills = %+v, want one primary skill", profile.Skills)
	}
	if len(profile.Tools) != 1 || profile.Tools[0] != "Figma" {
		t.Errorf("tools = %+v", profile.Tools)
	}

	// Unknown skill names are rejected.
	w = ta.do(t, http.MethodPut, "/api/me", token, gin.H{"skills": []string{"Nope"}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown skill status = %d, want 400", w.Code)
	}

	// A changed password takes effect immediately.
	w = ta.do(t, http.MethodPut, "/api/me", token, gin.H{"password": "s3cretly"})
	if w.Code != http.StatusOK {
		t.Fatalf("password update status = %d, body %s", w.Code, w.Body.String())
	}
	w = ta.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "alice@example.com", "password": "s3cretly",
	})
	if w.Code != http.StatusOK {
		t.Errorf("login with new password status = %d", w.Code)
	}
}

func TestSearchUsers(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	aliceToken, aliceID := ta.register(t, "alice@example.com")
	bobToken, _ := ta.register(t, "bob@example.com")

	w := ta.do(t, http.MethodPut, "/api/me", aliceToken, gin.H{
		"experience": "senior", "skills": []string{"Design"},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("set up alice: %d", w.Code)
	}
	// Bob opts out of the listing.
	w = ta.do(t, http.MethodPut, "/api/me", bobToken, gin.H{"searchable": false})
	if w.Code != http.StatusOK {
		t.Fatalf("set up bob: %d", w.Code)
	}

	// The listing is public and honors the searchable flag.
	w = ta.do(t, http.MethodGet, "/api/users", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("search status = %d", w.Code)
	}
	var users []view.UserProfile
	decode(t, w, &users)
	if len(users) != 1 || users[0].ID != aliceID {
		t.Errorf("users = %+v, want only alice", users)
	}

	var design models.Skill
	if err := ta.db.Where("name_en = ?", "Design").First(&design).Error; err != nil {
		t.Fatalf("load skill: %v", err)
	}
	w = ta.do(t, http.MethodGet, "/api/users?skill="+design.ID+"&experience=senior", "", nil)
	decode(t, w, &users)
	if len(users) != 1 || users[0].ID != aliceID {
		t.Errorf("filtered users = %+v", users)
	}
	w = ta.do(t, http.MethodGet, "/api/users?experience=junior", "", nil)
	decode(t, w, &users)
	if len(users) != 0 {
		t.Errorf("junior users = %+v, want none", users)
	}
}

func TestActiveTab(t *testing.T) {
	ta := newTestAPI(t)
	ta.seedCatalog(t)
	ownerToken, _ := ta.register(t, "owner@example.com")
	ord := ta.createOrder(t, ownerToken, "Logo design")

	w := ta.do(t, http.MethodGet, "/api/tabs/active", ownerToken, nil)
	var active []view.FullOrder
	decode(t, w, &active)
	if len(active) != 1 || active[0].ID != ord.ID {
		t.Errorf("active tab = %+v", active)
	}
}

func TestMessages(t *testing.T) {
	ta := newTestAPI(t)
	aliceToken, aliceID := ta.register(t, "alice@example.com")
	bobToken, bobID := ta.register(t, "bob@example.com")

	w := ta.do(t, http.MethodPost, "/api/messages", aliceToken, gin.H{
		"receiverId": bobID, "body": "hello",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("send status = %d, body %s", w.Code, w.Body.String())
	}
	var sent messageResponse
	decode(t, w, &sent)
	if sent.SenderID != aliceID || sent.IsRead {
		t.Errorf("sent = %+v", sent)
	}

	// Empty body is rejected.
	w = ta.do(t, http.MethodPost, "/api/messages", aliceToken, gin.H{"receiverId": bobID})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty body status = %d, want 400", w.Code)
	}

	w = ta.do(t, http.MethodGet, "/api/messages/with/"+aliceID, bobToken, nil)
	var conv []messageResponse
	decode(t, w, &conv)
	if len(conv) != 1 || conv[0].Body != "hello" {
		t.Errorf("conversation = %+v", conv)
	}

	w = ta.do(t, http.MethodGet, "/api/messages/unread", bobToken, nil)
	var unread struct {
		Count int64 `json:"count"`
	}
	decode(t, w, &unread)
	if unread.Count != 1 {
		t.Errorf("unread = %d, want 1", unread.Count)
	}

	// Only the sender may edit.
	w = ta.do(t, http.MethodPatch, "/api/messages/"+sent.ID, bobToken, gin.H{"body": "edited"})
	if w.Code != http.StatusForbidden {
		t.Errorf("receiver edit status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodPatch, "/api/messages/"+sent.ID, aliceToken, gin.H{"body": "edited"})
	if w.Code != http.StatusOK {
		t.Fatalf("edit status = %d, body %s", w.Code, w.Body.String())
	}
	var edited messageResponse
	decode(t, w, &edited)
	if edited.Body != "edited" {
		t.Errorf("edited body = %q", edited.Body)
	}

	// Only the receiver may mark read.
	w = ta.do(t, http.MethodPost, "/api/messages/"+sent.ID+"/read", aliceToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("sender mark read status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodPost, "/api/messages/"+sent.ID+"/read", bobToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("mark read status = %d, want 204", w.Code)
	}

	// Only the sender may delete.
	w = ta.do(t, http.MethodDelete, "/api/messages/"+sent.ID, bobToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("receiver delete status = %d, want 403", w.Code)
	}
	w = ta.do(t, http.MethodDelete, "/api/messages/"+sent.ID, aliceToken, nil)
	if w.Code != http.StatusNoContent {
		t.Errorf("delete status = %d, want 204", w.Code)
	}
}
