package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/totegamma/confadmin/internal/domain"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "confadmin"
	conferencesKey   = "conferences"
)

// Client talks to the conference backend REST API.
type Client struct {
	client    *http.Client
	cache     *cache.Cache
	baseURL   string
	userAgent string
}

func New(baseURL string) *Client {
	httpClient := http.Client{
		Timeout: defaultTimeout,
	}

	c := &Client{
		client:    &httpClient,
		cache:     cache.New(1*time.Minute, 5*time.Minute),
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: defaultUserAgent,
	}
	httpClient.Transport = c
	return c
}

// WithUserAgent overrides the User-Agent sent on every request.
func (c *Client) WithUserAgent(ua string) *Client {
	c.userAgent = ua
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

// HttpRequest performs a JSON request against the backend and decodes the reply into response.
// body may be nil.
func (c *Client) HttpRequest(ctx context.Context, method, path string, body any, response any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + path
	slog.DebugContext(ctx, "backend request", slog.String("method", method), slog.String("url", endpoint), slog.String("module", "client"))

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if response == nil {
		return nil
	}

	err = json.NewDecoder(resp.Body).Decode(response)
	if err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (c *Client) GetAllSpeakers(ctx context.Context) ([]domain.Speaker, error) {
	var speakers []domain.Speaker
	err := c.HttpRequest(ctx, http.MethodGet, "/api/getallspeakers", nil, &speakers)
	if err != nil {
		return nil, fmt.Errorf("failed to get speakers: %w", err)
	}
	return speakers, nil
}

func (c *Client) DeleteSpeaker(ctx context.Context, speakerID string) error {
	err := c.HttpRequest(ctx, http.MethodPost, "/api/deletespeaker", map[string]string{"id": speakerID}, nil)
	if err != nil {
		return fmt.Errorf("failed to delete speaker %s: %w", speakerID, err)
	}
	return nil
}

// UpdateSpeaker creates or updates a speaker and returns the backend's copy.
// notify asks the backend to email the speaker about the change.
func (c *Client) UpdateSpeaker(ctx context.Context, speaker domain.Speaker, notify bool) (domain.Speaker, error) {
	var updated domain.Speaker
	path := "/api/updatespeaker/" + strconv.FormatBool(notify)
	err := c.HttpRequest(ctx, http.MethodPost, path, speaker, &updated)
	if err != nil {
		return domain.Speaker{}, fmt.Errorf("failed to update speaker: %w", err)
	}
	return updated, nil
}

// SendToDropbox asks the backend to push an uploaded file into the shared dropbox.
// The backend reply is returned as-is.
func (c *Client) SendToDropbox(ctx context.Context, filename, directory, name string) (json.RawMessage, error) {
	path := "/api/dropbox/" + url.PathEscape(filename) + "/" + url.PathEscape(directory) + "/" + url.PathEscape(name)
	var result json.RawMessage
	err := c.HttpRequest(ctx, http.MethodGet, path, nil, &result)
	if err != nil {
		return nil, fmt.Errorf("failed to send %s to dropbox: %w", filename, err)
	}
	return result, nil
}

func (c *Client) GetAllSessions(ctx context.Context) ([]domain.Session, error) {
	var sessions []domain.Session
	err := c.HttpRequest(ctx, http.MethodGet, "/api/getallsessions", nil, &sessions)
	if err != nil {
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}
	return sessions, nil
}

// GetAllConferences returns the conference list, served from a short-lived cache unless fresh is set.
func (c *Client) GetAllConferences(ctx context.Context, fresh bool) ([]domain.Conference, error) {
	if !fresh {
		if x, found := c.cache.Get(conferencesKey); found {
			slog.DebugContext(ctx, "cache hit for conferences", slog.String("module", "client"))
			return x.([]domain.Conference), nil
		}
	}

	var conferences []domain.Conference
	err := c.HttpRequest(ctx, http.MethodGet, "/api/getallconferences", nil, &conferences)
	if err != nil {
		return nil, fmt.Errorf("failed to get conferences: %w", err)
	}

	c.cache.Set(conferencesKey, conferences, cache.DefaultExpiration)
	return conferences, nil
}

type updateConferenceRequest struct {
	CurrentTitle string `json:"currentTitle"`
	Title        string `json:"title"`
	VenueName    string `json:"venueName"`
	VenueAddress string `json:"venueAddress"`
}

func (c *Client) UpdateConference(ctx context.Context, currentTitle, title, venueName, venueAddress string) error {
	defer c.cache.Delete(conferencesKey)
	req := updateConferenceRequest{
		CurrentTitle: currentTitle,
		Title:        title,
		VenueName:    venueName,
		VenueAddress: venueAddress,
	}
	err := c.HttpRequest(ctx, http.MethodPost, "/api/updateconference", req, nil)
	if err != nil {
		return fmt.Errorf("failed to update conference %s: %w", currentTitle, err)
	}
	return nil
}

type timeslotRequest struct {
	StartTime       string           `json:"startTime,omitempty"`
	EndTime         string           `json:"endTime,omitempty"`
	ConferenceTitle string           `json:"conferenceTitle"`
	Date            string           `json:"date"`
	TimeSlot        *domain.TimeSlot `json:"timeslot,omitempty"`
}

// AddTimeslot returns the conference as the backend stored it after the insert.
func (c *Client) AddTimeslot(ctx context.Context, conferenceTitle, date, start, end string) (domain.Conference, error) {
	defer c.cache.Delete(conferencesKey)
	req := timeslotRequest{
		StartTime:       start,
		EndTime:         end,
		ConferenceTitle: conferenceTitle,
		Date:            date,
	}
	var conf domain.Conference
	err := c.HttpRequest(ctx, http.MethodPost, "/api/addtimeslot", req, &conf)
	if err != nil {
		return domain.Conference{}, fmt.Errorf("failed to add timeslot: %w", err)
	}
	return conf, nil
}

// DeleteTimeslot returns the backend message; a refusal arrives as a 200 with a message.
func (c *Client) DeleteTimeslot(ctx context.Context, conferenceTitle, date string, slot domain.TimeSlot) (domain.BackendMessage, error) {
	defer c.cache.Delete(conferencesKey)
	req := timeslotRequest{
		ConferenceTitle: conferenceTitle,
		Date:            date,
		TimeSlot:        &slot,
	}
	var msg domain.BackendMessage
	err := c.HttpRequest(ctx, http.MethodPost, "/api/deletetimeslot", req, &msg)
	if err != nil {
		return domain.BackendMessage{}, fmt.Errorf("failed to delete timeslot: %w", err)
	}
	return msg, nil
}

type roomRequest struct {
	ConferenceTitle string `json:"conferenceTitle"`
	Name            string `json:"name,omitempty"`
	Room            string `json:"room,omitempty"`
	Direction       string `json:"direction,omitempty"`
}

func (c *Client) AddRoom(ctx context.Context, conferenceTitle, name string) (domain.Conference, error) {
	defer c.cache.Delete(conferencesKey)
	var conf domain.Conference
	err := c.HttpRequest(ctx, http.MethodPost, "/api/addroom", roomRequest{ConferenceTitle: conferenceTitle, Name: name}, &conf)
	if err != nil {
		return domain.Conference{}, fmt.Errorf("failed to add room %s: %w", name, err)
	}
	return conf, nil
}

func (c *Client) DeleteRoom(ctx context.Context, conferenceTitle, room string) (domain.BackendMessage, error) {
	defer c.cache.Delete(conferencesKey)
	var msg domain.BackendMessage
	err := c.HttpRequest(ctx, http.MethodPost, "/api/deleteroom", roomRequest{ConferenceTitle: conferenceTitle, Room: room}, &msg)
	if err != nil {
		return domain.BackendMessage{}, fmt.Errorf("failed to delete room %s: %w", room, err)
	}
	return msg, nil
}

func (c *Client) MoveRoom(ctx context.Context, conferenceTitle, room, direction string) (domain.Conference, error) {
	defer c.cache.Delete(conferencesKey)
	req := roomRequest{ConferenceTitle: conferenceTitle, Room: room, Direction: direction}
	var conf domain.Conference
	err := c.HttpRequest(ctx, http.MethodPost, "/api/moveroom", req, &conf)
	if err != nil {
		return domain.Conference{}, fmt.Errorf("failed to move room %s: %w", room, err)
	}
	return conf, nil
}

func (c *Client) ArchiveConference(ctx context.Context, conferenceTitle string, archive bool) error {
	defer c.cache.Delete(conferencesKey)
	req := struct {
		ConferenceTitle string `json:"conferenceTitle"`
		Archive         bool   `json:"archive"`
	}{conferenceTitle, archive}
	err := c.HttpRequest(ctx, http.MethodPost, "/api/archiveconf", req, nil)
	if err != nil {
		return fmt.Errorf("failed to archive conference %s: %w", conferenceTitle, err)
	}
	return nil
}
