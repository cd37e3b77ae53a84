package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/dsapatterns/dsatrack/internal/domain"
)

// sendFunc performs one HTTP exchange and returns the response body.
// The resilience wrapper replaces it on a configured client.
type sendFunc func(ctx context.Context, method, path string, body []byte) ([]byte, error)

// Client talks to the tracker backend REST API. All user-scoped calls
// are issued under the configured user id with bearer-token auth when a
// token is present.
type Client struct {
	baseURL    string
	userID     string
	token      string
	httpClient *http.Client
	send       sendFunc
}

// Config holds configuration for the backend client.
type Config struct {
	BaseURL string
	UserID  string
	Token   string
	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client
}

// NewClient creates a new backend client.
func NewClient(cfg Config) *Client {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	c := &Client{
		baseURL:    cfg.BaseURL,
		userID:     cfg.UserID,
		token:      cfg.Token,
		httpClient: httpClient,
	}
	c.send = c.roundTrip
	return c
}

// UserID returns the user id the client issues calls under.
func (c *Client) UserID() string {
	return c.userID
}

// CompanyTag is a company tag from the backend.
type CompanyTag struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Stats is the backend's aggregate progress payload.
type Stats struct {
	TotalProblems  int `json:"total_problems"`
	SolvedProblems int `json:"solved_problems"`
	EasySolved     int `json:"easy_solved"`
	EasyTotal      int `json:"easy_total"`
	MediumSolved   int `json:"medium_solved"`
	MediumTotal    int `json:"medium_total"`
	HardSolved     int `json:"hard_solved"`
	HardTotal      int `json:"hard_total"`
}

type wireProblem struct {
	ID         int      `json:"id"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
	Subtopic   string   `json:"subtopic"`
	Link       string   `json:"link"`
	Solution   string   `json:"solution"`
}

func (w wireProblem) toDomain() domain.Problem {
	return domain.Problem{
		ID:         w.ID,
		Title:      w.Title,
		Difficulty: domain.ParseDifficulty(w.Difficulty),
		Topics:     w.Topics,
		Subtopic:   w.Subtopic,
		Link:       w.Link,
		Solution:   w.Solution,
	}
}

// NewProblem is the payload for adding a problem to the catalog.
type NewProblem struct {
	Number     int      `json:"number"`
	Title      string   `json:"title"`
	Difficulty string   `json:"difficulty"`
	Topics     []string `json:"topics"`
	Link       string   `json:"link,omitempty"`
	Subtopic   string   `json:"subtopic,omitempty"`
}

// ListProblems fetches the full problem catalog.
func (c *Client) ListProblems(ctx context.Context) ([]domain.Problem, error) {
	var wire []wireProblem
	if err := c.do(ctx, http.MethodGet, "/api/problems/", nil, &wire); err != nil {
		return nil, fmt.Errorf("list problems: %w", err)
	}

	problems := make([]domain.Problem, 0, len(wire))
	for _, w := range wire {
		problems = append(problems, w.toDomain())
	}
	return problems, nil
}

// GetProblem fetches one problem by id.
func (c *Client) GetProblem(ctx context.Context, problemID int) (domain.Problem, error) {
	var wire wireProblem
	path := "/api/problems/" + strconv.Itoa(problemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &wire); err != nil {
		return domain.Problem{}, fmt.Errorf("get problem %d: %w", problemID, err)
	}
	return wire.toDomain(), nil
}

// CreateProblem adds a problem to the catalog.
func (c *Client) CreateProblem(ctx context.Context, p NewProblem) (domain.Problem, error) {
	var wire wireProblem
	if err := c.do(ctx, http.MethodPost, "/api/problems/", p, &wire); err != nil {
		return domain.Problem{}, fmt.Errorf("create problem: %w", err)
	}
	return wire.toDomain(), nil
}

// DeleteProblem removes a problem from the catalog.
func (c *Client) DeleteProblem(ctx context.Context, problemID int) error {
	path := "/api/problems/" + strconv.Itoa(problemID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete problem %d: %w", problemID, err)
	}
	return nil
}

// SolvedSet fetches the authoritative solved problem ids.
func (c *Client) SolvedSet(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.do(ctx, http.MethodGet, c.userPath("/solved"), nil, &ids); err != nil {
		return nil, fmt.Errorf("get solved set: %w", err)
	}
	return ids, nil
}

// MarkSolved records a solve on the backend. The caller's local calendar
// date travels with the request so the server never shifts the solve to
// its own timezone's date.
func (c *Client) MarkSolved(ctx context.Context, problemID int, localDate domain.DateKey) error {
	body := map[string]string{"solved_at": string(localDate)}
	path := c.userPath("/solved/" + strconv.Itoa(problemID))
	if err := c.do(ctx, http.MethodPost, path, body, nil); err != nil {
		return fmt.Errorf("mark solved %d: %w", problemID, err)
	}
	return nil
}

// MarkUnsolved removes a solve on the backend.
func (c *Client) MarkUnsolved(ctx context.Context, problemID int) error {
	path := c.userPath("/solved/" + strconv.Itoa(problemID))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("mark unsolved %d: %w", problemID, err)
	}
	return nil
}

// Stats fetches the backend's aggregate progress stats.
func (c *Client) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	if err := c.do(ctx, http.MethodGet, c.userPath("/stats"), nil, &stats); err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return stats, nil
}

// Calendar fetches the per-day solve counts. Entries with a missing date
// are dropped; a missing or negative count reads as 0.
func (c *Client) Calendar(ctx context.Context) (map[domain.DateKey]int, error) {
	var wire []struct {
		Date         string `json:"date"`
		ProblemCount int    `json:"problem_count"`
	}
	if err := c.do(ctx, http.MethodGet, c.userPath("/calendar"), nil, &wire); err != nil {
		return nil, fmt.Errorf("get calendar: %w", err)
	}

	counts := make(map[domain.DateKey]int, len(wire))
	for _, entry := range wire {
		if entry.Date == "" {
			continue
		}
		count := entry.ProblemCount
		if count < 0 {
			count = 0
		}
		counts[domain.DateKey(entry.Date)] = count
	}
	return counts, nil
}

// RevisionList fetches the problem ids marked for revision.
func (c *Client) RevisionList(ctx context.Context) ([]int, error) {
	var ids []int
	if err := c.do(ctx, http.MethodGet, c.userPath("/revision"), nil, &ids); err != nil {
		return nil, fmt.Errorf("get revision list: %w", err)
	}
	return ids, nil
}

// AddRevision marks a problem for revision.
func (c *Client) AddRevision(ctx context.Context, problemID int) error {
	path := c.userPath("/revision/" + strconv.Itoa(problemID))
	if err := c.do(ctx, http.MethodPost, path, nil, nil); err != nil {
		return fmt.Errorf("add revision %d: %w", problemID, err)
	}
	return nil
}

// RemoveRevision unmarks a problem for revision.
func (c *Client) RemoveRevision(ctx context.Context, problemID int) error {
	path := c.userPath("/revision/" + strconv.Itoa(problemID))
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("remove revision %d: %w", problemID, err)
	}
	return nil
}

// ListCompanyTags fetches all company tags.
func (c *Client) ListCompanyTags(ctx context.Context) ([]CompanyTag, error) {
	var tags []CompanyTag
	if err := c.do(ctx, http.MethodGet, "/api/company-tags/", nil, &tags); err != nil {
		return nil, fmt.Errorf("list company tags: %w", err)
	}
	return tags, nil
}

// CreateCompanyTag creates a new company tag.
func (c *Client) CreateCompanyTag(ctx context.Context, name string) (CompanyTag, error) {
	var tag CompanyTag
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, "/api/company-tags/", body, &tag); err != nil {
		return CompanyTag{}, fmt.Errorf("create company tag: %w", err)
	}
	return tag, nil
}

// UpdateCompanyTag renames a company tag.
func (c *Client) UpdateCompanyTag(ctx context.Context, tagID int, name string) error {
	body := map[string]string{"name": name}
	path := "/api/company-tags/" + strconv.Itoa(tagID)
	if err := c.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("update company tag %d: %w", tagID, err)
	}
	return nil
}

// DeleteCompanyTag removes a company tag.
func (c *Client) DeleteCompanyTag(ctx context.Context, tagID int) error {
	path := "/api/company-tags/" + strconv.Itoa(tagID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return fmt.Errorf("delete company tag %d: %w", tagID, err)
	}
	return nil
}

// ProblemTags fetches the tag ids attached to one problem.
func (c *Client) ProblemTags(ctx context.Context, problemID int) ([]int, error) {
	var ids []int
	path := "/api/company-tags/problem/" + strconv.Itoa(problemID)
	if err := c.do(ctx, http.MethodGet, path, nil, &ids); err != nil {
		return nil, fmt.Errorf("get problem tags %d: %w", problemID, err)
	}
	return ids, nil
}

// SetProblemTags replaces the tag ids attached to one problem.
func (c *Client) SetProblemTags(ctx context.Context, problemID int, tagIDs []int) error {
	path := "/api/company-tags/problem/" + strconv.Itoa(problemID)
	if tagIDs == nil {
		tagIDs = []int{}
	}
	if err := c.do(ctx, http.MethodPut, path, tagIDs, nil); err != nil {
		return fmt.Errorf("set problem tags %d: %w", problemID, err)
	}
	return nil
}

// AllProblemTags fetches the problem-id to tag-ids mapping in one call.
func (c *Client) AllProblemTags(ctx context.Context) (map[int][]int, error) {
	var wire map[string][]int
	if err := c.do(ctx, http.MethodGet, "/api/company-tags/all-problem-tags", nil, &wire); err != nil {
		return nil, fmt.Errorf("get all problem tags: %w", err)
	}

	tags := make(map[int][]int, len(wire))
	for key, ids := range wire {
		problemID, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		tags[problemID] = ids
	}
	return tags, nil
}

func (c *Client) userPath(suffix string) string {
	return "/api/user/" + c.userID + suffix
}

// do marshals in (when non-nil), sends the request through the transport
// and decodes the response into out (when non-nil).
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body []byte
	if in != nil {
		var err error
		body, err = json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	raw, err := c.send(ctx, method, path, body)
	if err != nil {
		return err
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// roundTrip performs one HTTP exchange against the backend.
func (c *Client) roundTrip(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("API error (status 401): %w", domain.ErrUnauthorized)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("API error (status 404): %w", domain.ErrNotFound)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(raw))
	}

	return raw, nil
}
