package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// APIClient handles HTTP communication with the backend
type APIClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewAPIClient creates a new API client
func NewAPIClient(baseURL string) *APIClient {
	return &APIClient{
		baseURL: baseURL + "/api",
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Response types matching backend

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type AuthResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

type Suggestion struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SelectMoodResponse struct {
	Success     bool         `json:"success"`
	Suggestions []Suggestion `json:"suggestions"`
}

type MoodEntry struct {
	ID        string    `json:"id"`
	Mood      string    `json:"mood"`
	CreatedAt time.Time `json:"createdAt"`
}

type HistoryResponse struct {
	Success bool        `json:"success"`
	History []MoodEntry `json:"history"`
}

type Analytics struct {
	TotalUsers          int64            `json:"totalUsers"`
	TotalMoodSelections int64            `json:"totalMoodSelections"`
	TotalContacts       int64            `json:"totalContacts"`
	MoodDistribution    map[string]int64 `json:"moodDistribution"`
}

type AnalyticsResponse struct {
	Success   bool      `json:"success"`
	Analytics Analytics `json:"analytics"`
}

// StatusError is returned when the server answers with an unexpected status.
type StatusError struct {
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.Status, e.Body)
}

// Signup creates a new account
func (c *APIClient) Signup(name, email, password string) (*AuthResponse, error) {
	var result AuthResponse
	body := map[string]string{"name": name, "email": email, "password": password}
	if err := c.do(http.MethodPost, "/auth/signup", body, "", http.StatusCreated, &result); err != nil {
		return nil, fmt.Errorf("signup: %w", err)
	}
	return &result, nil
}

// Login authenticates an existing account
func (c *APIClient) Login(email, password string) (*AuthResponse, error) {
	var result AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(http.MethodPost, "/auth/login", body, "", http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return &result, nil
}

// SelectMood records a mood and returns its suggestions
func (c *APIClient) SelectMood(token, mood string) (*SelectMoodResponse, error) {
	var result SelectMoodResponse
	if err := c.do(http.MethodPost, "/mood/select", map[string]string{"mood": mood}, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("select mood: %w", err)
	}
	return &result, nil
}

// History returns the caller's recent moods
func (c *APIClient) History(token string) ([]MoodEntry, error) {
	var result HistoryResponse
	if err := c.do(http.MethodGet, "/mood/history", nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("mood history: %w", err)
	}
	return result.History, nil
}

// Analytics fetches the dashboard summary
func (c *APIClient) Analytics(token string) (*Analytics, error) {
	var result AnalyticsResponse
	if err := c.do(http.MethodGet, "/admin/analytics", nil, token, http.StatusOK, &result); err != nil {
		return nil, fmt.Errorf("analytics: %w", err)
	}
	return &result.Analytics, nil
}

func (c *APIClient) do(method, path string, body interface{}, token string, wantStatus int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return &StatusError{Status: resp.StatusCode, Body: string(bodyBytes)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
