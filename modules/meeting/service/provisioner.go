package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Akius1/cv-review-sub000/core/clock"
	"github.com/Akius1/cv-review-sub000/core/config"
	"github.com/Akius1/cv-review-sub000/core/constants"
	"github.com/Akius1/cv-review-sub000/core/logger"
	"github.com/Akius1/cv-review-sub000/core/utils"
	"github.com/Akius1/cv-review-sub000/modules/meeting/entity"
	"github.com/Akius1/cv-review-sub000/modules/meeting/repository"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const googleEventsAPI = "https://www.googleapis.com/calendar/v3/calendars/primary/events"

// ProvisionMethod tags which path produced the meeting link. Consumers
// must handle both arms; EventID is non-nil only for MethodPrimary.
type ProvisionMethod string

const (
	MethodPrimary  ProvisionMethod = "primary"
	MethodFallback ProvisionMethod = "fallback"
)

// ProvisionedMeeting is the provisioner's result.
type ProvisionedMeeting struct {
	Link    string          `json:"link"`
	EventID *string         `json:"event_id,omitempty"`
	Method  ProvisionMethod `json:"method"`
}

// ProvisionRequest describes the meeting to provision.
type ProvisionRequest struct {
	OwnerID          uuid.UUID
	OwnerName        string
	OwnerEmail       string
	CounterpartEmail string
	Title            string
	Description      string
	Date             string
	StartTime        string
	EndTime          string
	Timezone         string
}

// Provisioner obtains a join link for a meeting. It never fails upward:
// any primary-provider problem falls back to an ad-hoc room link.
type Provisioner interface {
	Provision(ctx context.Context, req ProvisionRequest) ProvisionedMeeting
}

type linkProvisioner struct {
	repo         repository.ConnectionRepositoryInterface
	clk          clock.Clock
	httpClient   *http.Client
	eventsAPI    string
	fallbackBase string
}

func NewProvisioner(repo repository.ConnectionRepositoryInterface, clk clock.Clock) Provisioner {
	fallbackBase := "https://meet.jit.si"
	if cfg, ok := config.GetSafe(); ok && cfg.Fallback.MeetingBaseURL != "" {
		fallbackBase = cfg.Fallback.MeetingBaseURL
	}
	return &linkProvisioner{
		repo:         repo,
		clk:          clk,
		httpClient:   &http.Client{Timeout: constants.ProvisionTimeout},
		eventsAPI:    googleEventsAPI,
		fallbackBase: fallbackBase,
	}
}

// Provision tries the primary calendar provider; on any failure it
// returns a fallback room link. The call is bounded so provisioning can
// never block a booking indefinitely.
func (p *linkProvisioner) Provision(ctx context.Context, req ProvisionRequest) ProvisionedMeeting {
	ctx, cancel := context.WithTimeout(ctx, constants.ProvisionTimeout)
	defer cancel()

	link, eventID, err := p.provisionPrimary(ctx, req)
	if err != nil {
		logger.Warn("Provisioner:Provision:PrimaryFailed",
			"owner_id", req.OwnerID, "error", err)
		return p.fallback(req)
	}

	logger.Info("Provisioner:Provision:Primary", "owner_id", req.OwnerID, "event_id", eventID)
	return ProvisionedMeeting{
		Link:    link,
		EventID: &eventID,
		Method:  MethodPrimary,
	}
}

func (p *linkProvisioner) provisionPrimary(ctx context.Context, req ProvisionRequest) (string, string, error) {
	conn, err := p.repo.GetByUserAndProvider(ctx, req.OwnerID, entity.ProviderGoogle)
	if err != nil {
		return "", "", fmt.Errorf("failed to load calendar connection: %w", err)
	}
	if conn == nil {
		return "", "", fmt.Errorf("no %s calendar connection for owner", entity.ProviderGoogle)
	}

	accessToken, err := p.ensureValidToken(ctx, conn)
	if err != nil {
		return "", "", err
	}

	start, end, err := p.eventTimes(req)
	if err != nil {
		return "", "", err
	}

	event := map[string]any{
		"summary":     req.Title,
		"description": req.Description,
		"start": map[string]string{
			"dateTime": start,
			"timeZone": req.Timezone,
		},
		"end": map[string]string{
			"dateTime": end,
			"timeZone": req.Timezone,
		},
		"attendees": []map[string]string{
			{"email": req.OwnerEmail},
			{"email": req.CounterpartEmail},
		},
		"conferenceData": map[string]any{
			"createRequest": map[string]any{
				"requestId":             utils.GenerateRandomString(16),
				"conferenceSolutionKey": map[string]string{"type": "hangoutsMeet"},
			},
		},
	}

	eventJSON, _ := json.Marshal(event)
	httpReq, err := http.NewRequestWithContext(ctx, "POST", p.eventsAPI+"?conferenceDataVersion=1", strings.NewReader(string(eventJSON)))
	if err != nil {
		return "", "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+accessToken)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", "", fmt.Errorf("calendar API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(resp.Body)
		return "", "", fmt.Errorf("calendar API error %d: %s", resp.StatusCode, string(body))
	}

	var result struct {
		ID             string `json:"id"`
		HangoutLink    string `json:"hangoutLink"`
		ConferenceData struct {
			EntryPoints []struct {
				URI string `json:"uri"`
			} `json:"entryPoints"`
		} `json:"conferenceData"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", "", fmt.Errorf("failed to parse calendar response: %w", err)
	}

	link := result.HangoutLink
	if link == "" && len(result.ConferenceData.EntryPoints) > 0 {
		link = result.ConferenceData.EntryPoints[0].URI
	}
	if link == "" || result.ID == "" {
		return "", "", fmt.Errorf("calendar response carried no meeting link")
	}

	return link, result.ID, nil
}

// fallback builds a collision-free ad-hoc room link. EventID stays nil.
func (p *linkProvisioner) fallback(req ProvisionRequest) ProvisionedMeeting {
	name := slug.Make(req.OwnerName)
	if name == "" {
		name = "meeting"
	}
	link := fmt.Sprintf("%s/%s-%d-%s", p.fallbackBase, name, p.clk.Now().Unix(), utils.GenerateID())

	logger.Info("Provisioner:Provision:Fallback", "owner_id", req.OwnerID, "link", link)
	return ProvisionedMeeting{
		Link:   link,
		Method: MethodFallback,
	}
}

// ensureValidToken refreshes an expired access token through the OAuth
// refresh flow and persists the rotated credential.
func (p *linkProvisioner) ensureValidToken(ctx context.Context, conn *entity.CalendarConnection) (string, error) {
	if conn.TokenExpiresAt == nil || p.clk.Now().Before(*conn.TokenExpiresAt) {
		return conn.AccessToken, nil
	}

	if conn.RefreshToken == nil || *conn.RefreshToken == "" {
		return "", fmt.Errorf("access token expired and no refresh token stored")
	}

	cfg, ok := config.GetSafe()
	if !ok {
		return "", fmt.Errorf("config not initialized")
	}

	oauthConfig := &oauth2.Config{
		ClientID:     cfg.GoogleAPI.ClientID,
		ClientSecret: cfg.GoogleAPI.ClientSecret,
		Endpoint:     google.Endpoint,
	}

	tokenSource := oauthConfig.TokenSource(ctx, &oauth2.Token{
		RefreshToken: *conn.RefreshToken,
	})

	newToken, err := tokenSource.Token()
	if err != nil {
		return "", fmt.Errorf("failed to refresh access token: %w", err)
	}

	conn.AccessToken = newToken.AccessToken
	if newToken.RefreshToken != "" {
		conn.RefreshToken = &newToken.RefreshToken
	}
	expiry := newToken.Expiry
	conn.TokenExpiresAt = &expiry

	if err := p.repo.Save(ctx, conn); err != nil {
		logger.Error("Provisioner:ensureValidToken:Save:Error", err)
		// The refreshed token is still usable for this call.
	}

	return newToken.AccessToken, nil
}

func (p *linkProvisioner) eventTimes(req ProvisionRequest) (string, string, error) {
	loc, err := time.LoadLocation(req.Timezone)
	if err != nil {
		loc = time.UTC
	}
	layout := constants.DateLayout + " " + constants.TimeLayout

	start, err := time.ParseInLocation(layout, req.Date+" "+req.StartTime, loc)
	if err != nil {
		return "", "", fmt.Errorf("invalid meeting start: %w", err)
	}
	end, err := time.ParseInLocation(layout, req.Date+" "+req.EndTime, loc)
	if err != nil {
		return "", "", fmt.Errorf("invalid meeting end: %w", err)
	}

	return start.Format(time.RFC3339), end.Format(time.RFC3339), nil
}
