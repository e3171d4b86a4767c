package service

import (
	"context"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/modules/meeting/entity"

	"github.com/google/uuid"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

type stubConnectionRepo struct {
	conn    *entity.CalendarConnection
	getErr  error
	saved   *entity.CalendarConnection
	deleted bool
}

func (r *stubConnectionRepo) GetByUserAndProvider(ctx context.Context, userID uuid.UUID, provider string) (*entity.CalendarConnection, error) {
	return r.conn, r.getErr
}

func (r *stubConnectionRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entity.CalendarConnection, error) {
	if r.conn == nil {
		return nil, nil
	}
	return []entity.CalendarConnection{*r.conn}, nil
}

func (r *stubConnectionRepo) Save(ctx context.Context, conn *entity.CalendarConnection) error {
	r.saved = conn
	return nil
}

func (r *stubConnectionRepo) Delete(ctx context.Context, userID uuid.UUID, provider string) error {
	r.deleted = true
	return nil
}

func validConnection() *entity.CalendarConnection {
	expires := testNow.Add(time.Hour)
	conn := &entity.CalendarConnection{
		UserID:         uuid.New(),
		Provider:       entity.ProviderGoogle,
		Email:          "alex@example.com",
		AccessToken:    "token-valid",
		TokenExpiresAt: &expires,
	}
	conn.ID = uuid.New()
	return conn
}

func newTestProvisioner(repo *stubConnectionRepo, eventsAPI string) *linkProvisioner {
	return &linkProvisioner{
		repo:         repo,
		clk:          clock.Fixed(testNow),
		httpClient:   &http.Client{Timeout: 2 * time.Second},
		eventsAPI:    eventsAPI,
		fallbackBase: "https://meet.jit.si",
	}
}

func provisionRequest() ProvisionRequest {
	return ProvisionRequest{
		OwnerID:          uuid.New(),
		OwnerName:        "Alex Reviewer",
		OwnerEmail:       "alex@example.com",
		CounterpartEmail: "sam@example.com",
		Title:            "CV review session",
		Date:             "2025-03-01",
		StartTime:        "09:00",
		EndTime:          "09:30",
		Timezone:         "UTC",
	}
}

func TestProvisionPrimary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer token-valid" {
			t.Errorf("authorization = %q, want the stored access token", got)
		}
		if r.URL.Query().Get("conferenceDataVersion") != "1" {
			t.Error("conferenceDataVersion=1 missing from the request")
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"evt-123","hangoutLink":"https://meet.google.com/abc-defg-hij"}`))
	}))
	defer srv.Close()

	p := newTestProvisioner(&stubConnectionRepo{conn: validConnection()}, srv.URL)

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodPrimary {
		t.Fatalf("method = %q, want primary", got.Method)
	}
	if got.Link != "https://meet.google.com/abc-defg-hij" {
		t.Errorf("link = %q, want the hangout link", got.Link)
	}
	if got.EventID == nil || *got.EventID != "evt-123" {
		t.Errorf("event id = %v, want evt-123", got.EventID)
	}
}

func TestProvisionPrimaryEntryPointLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"evt-456","conferenceData":{"entryPoints":[{"uri":"https://meet.google.com/xyz"}]}}`))
	}))
	defer srv.Close()

	p := newTestProvisioner(&stubConnectionRepo{conn: validConnection()}, srv.URL)

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodPrimary || got.Link != "https://meet.google.com/xyz" {
		t.Errorf("got %+v, want primary with the entry point link", got)
	}
}

func TestProvisionFallbackWhenNoConnection(t *testing.T) {
	p := newTestProvisioner(&stubConnectionRepo{}, "http://127.0.0.1:0")

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodFallback {
		t.Fatalf("method = %q, want fallback", got.Method)
	}
	if got.EventID != nil {
		t.Error("fallback carried an event id")
	}
	if !strings.HasPrefix(got.Link, "https://meet.jit.si/alex-reviewer-") {
		t.Errorf("link = %q, want a slugged room under the fallback base", got.Link)
	}
}

func TestProvisionFallbackWhenRepoFails(t *testing.T) {
	p := newTestProvisioner(&stubConnectionRepo{getErr: stderrors.New("db down")}, "http://127.0.0.1:0")

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodFallback {
		t.Fatalf("method = %q, want fallback", got.Method)
	}
}

func TestProvisionFallbackOnAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusForbidden)
	}))
	defer srv.Close()

	p := newTestProvisioner(&stubConnectionRepo{conn: validConnection()}, srv.URL)

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodFallback {
		t.Fatalf("method = %q, want fallback", got.Method)
	}
	if got.Link == "" {
		t.Error("fallback link is empty")
	}
}

func TestProvisionFallbackOnEmptyLink(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"evt-789"}`))
	}))
	defer srv.Close()

	p := newTestProvisioner(&stubConnectionRepo{conn: validConnection()}, srv.URL)

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodFallback {
		t.Fatalf("method = %q, want fallback when the response has no link", got.Method)
	}
}

func TestProvisionFallbackOnExpiredTokenWithoutRefresh(t *testing.T) {
	conn := validConnection()
	expired := testNow.Add(-time.Hour)
	conn.TokenExpiresAt = &expired

	p := newTestProvisioner(&stubConnectionRepo{conn: conn}, "http://127.0.0.1:0")

	got := p.Provision(context.Background(), provisionRequest())
	if got.Method != MethodFallback {
		t.Fatalf("method = %q, want fallback", got.Method)
	}
}

func TestFallbackLinksAreDistinct(t *testing.T) {
	p := newTestProvisioner(&stubConnectionRepo{}, "http://127.0.0.1:0")

	a := p.fallback(provisionRequest())
	b := p.fallback(provisionRequest())
	if a.Link == b.Link {
		t.Errorf("two fallback links collided: %q", a.Link)
	}
}

func TestFallbackWithEmptyOwnerName(t *testing.T) {
	p := newTestProvisioner(&stubConnectionRepo{}, "http://127.0.0.1:0")

	req := provisionRequest()
	req.OwnerName = ""

	got := p.fallback(req)
	if !strings.HasPrefix(got.Link, "https://meet.jit.si/meeting-") {
		t.Errorf("link = %q, want the neutral room prefix", got.Link)
	}
}
