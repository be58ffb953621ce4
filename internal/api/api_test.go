package api

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"healthnudge/internal/insights"
	"healthnudge/internal/model"
	"healthnudge/internal/session"
	"healthnudge/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, *gorm.DB, *session.Manager) {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared&_fk=1", name, time.Now().UnixNano())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite memory: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.Medicine{}, &model.HealthLog{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	sessions := session.NewManager("test-secret")
	server := New(store.New(db), sessions, insights.New(""), log.New(io.Discard, "", 0))
	ts := httptest.NewServer(server.Router())
	t.Cleanup(ts.Close)
	return ts, db, sessions
}

func bearerToken(t *testing.T, sessions *session.Manager, userID uint) string {
	t.Helper()
	token, err := sessions.Issue(userID, time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func doGet(t *testing.T, url, token string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	return resp
}

func TestMedicinesRequiresSession(t *testing.T) {
	t.Parallel()
	ts, _, sessions := newTestServer(t)

	resp := doGet(t, ts.URL+"/api/medicines", "")
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("no token: status %d, want 401", resp.StatusCode)
	}

	expired, err := sessions.Issue(1, -time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	resp = doGet(t, ts.URL+"/api/medicines", expired)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expired token: status %d, want 401", resp.StatusCode)
	}
}

func TestListMedicinesScopedToOwner(t *testing.T) {
	t.Parallel()
	ts, db, sessions := newTestServer(t)

	owner := model.User{Name: "Asha", Email: "asha@example.com"}
	other := model.User{Name: "Ben", Email: "ben@example.com"}
	for _, u := range []*model.User{&owner, &other} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}
	meds := []model.Medicine{
		{UserID: owner.ID, Name: "Aspirin", Time: "08:00", IsActive: true},
		{UserID: other.ID, Name: "Metformin", Time: "09:00", IsActive: true},
	}
	for i := range meds {
		if err := db.Create(&meds[i]).Error; err != nil {
			t.Fatalf("seed medicine: %v", err)
		}
	}

	resp := doGet(t, ts.URL+"/api/medicines", bearerToken(t, sessions, owner.ID))
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Medicines []model.Medicine `json:"medicines"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(payload.Medicines) != 1 || payload.Medicines[0].Name != "Aspirin" {
		t.Fatalf("unexpected medicines: %+v", payload.Medicines)
	}
}

func TestChatReturnsMockAnswer(t *testing.T) {
	t.Parallel()
	ts, db, sessions := newTestServer(t)

	user := model.User{Name: "Asha", Email: "asha@example.com", AIDataAccess: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	body := strings.NewReader(`{"message": "Is my blood pressure ok?"}`)
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/ai/chat", body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, sessions, user.ID))
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}

	var payload struct {
		Response string `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(payload.Response, "[MOCK AI]") {
		t.Fatalf("unexpected chat response: %q", payload.Response)
	}
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	t.Parallel()
	ts, db, sessions := newTestServer(t)

	user := model.User{Name: "Asha", Email: "asha@example.com"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/ai/chat", strings.NewReader(`{}`))
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+bearerToken(t, sessions, user.ID))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}
}
