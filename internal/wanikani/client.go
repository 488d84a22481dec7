package wanikani

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultBaseURL is the v2 API root.
	DefaultBaseURL = "https://api.wanikani.com/v2"
	// Revision pins the API revision sent with every request.
	Revision = "20170710"

	maxAssetBytes int64 = 4 << 20
	maxErrorBody  int64 = 512
)

// Review is the outcome of one finished review item.
type Review struct {
	AssignmentID            int `json:"assignment_id"`
	IncorrectMeaningAnswers int `json:"incorrect_meaning_answers"`
	IncorrectReadingAnswers int `json:"incorrect_reading_answers"`
}

// Client is a bearer-token API client. It is safe to share, but the study
// sessions use it strictly sequentially.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  logrus.FieldLogger
	clock   func() time.Time
}

// Option customizes client construction.
type Option func(*Client)

// WithBaseURL points the client at another API root, e.g. a test server.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			c.baseURL = base
		}
	}
}

// WithHTTPClient overrides the pooled default transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger routes request logging to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithClock allows tests to control "now" for summary filtering.
func WithClock(clock func() time.Time) Option {
	return func(c *Client) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// NewClient creates a client authenticating with token.
func NewClient(token string, opts ...Option) *Client {
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	c := &Client{
		baseURL: DefaultBaseURL,
		token:   strings.TrimSpace(token),
		http:    cleanhttp.DefaultPooledClient(),
		logger:  quiet,
		clock:   func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Authenticate checks the token by fetching the user it belongs to.
func (c *Client) Authenticate(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "authenticate", "/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// FetchSubject loads one subject by id.
func (c *Client) FetchSubject(ctx context.Context, id int) (*Subject, error) {
	var subject Subject
	op := fmt.Sprintf("fetch subject %d", id)
	if err := c.do(ctx, http.MethodGet, op, "/subjects/"+strconv.Itoa(id), nil, &subject); err != nil {
		return nil, err
	}
	return &subject, nil
}

// FetchSummary loads the lessons/reviews availability report.
func (c *Client) FetchSummary(ctx context.Context) (*Summary, error) {
	var summary Summary
	if err := c.do(ctx, http.MethodGet, "fetch summary", "/summary", nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// FetchAssignments loads every page of /assignments matching query.
func (c *Client) FetchAssignments(ctx context.Context, query url.Values) ([]Assignment, error) {
	target := "/assignments"
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var all []Assignment
	for target != "" {
		var page AssignmentCollection
		if err := c.do(ctx, http.MethodGet, "fetch assignments", target, nil, &page); err != nil {
			return nil, err
		}
		all = append(all, page.Data...)
		target = ""
		if page.Pages.NextURL != nil {
			target = strings.TrimSpace(*page.Pages.NextURL)
		}
	}
	return all, nil
}

// ReviewAssignments lists the assignments the service says are due now.
func (c *Client) ReviewAssignments(ctx context.Context) ([]Assignment, error) {
	return c.FetchAssignments(ctx, url.Values{
		"immediately_available_for_review": {"true"},
		"hidden":                           {"false"},
	})
}

// LessonSubjectIDs lists subjects unlocked but not yet studied, in the
// order the service returns them.
func (c *Client) LessonSubjectIDs(ctx context.Context) ([]int, error) {
	assignments, err := c.FetchAssignments(ctx, url.Values{
		"immediately_available_for_lessons": {"true"},
		"hidden":                            {"false"},
	})
	if err != nil {
		return nil, err
	}
	return SubjectIDs(assignments), nil
}

// Now returns the client's notion of the current time.
func (c *Client) Now() time.Time {
	return c.clock()
}

// SubmitReview records a finished review item.
func (c *Client) SubmitReview(ctx context.Context, review Review) error {
	body := struct {
		Review Review `json:"review"`
	}{review}
	op := fmt.Sprintf("submit review for assignment %d", review.AssignmentID)
	return c.do(ctx, http.MethodPost, op, "/reviews", body, nil)
}

// FetchAsset downloads a public asset such as a radical's SVG. Asset URLs
// live on a CDN and are requested without the API token.
func (c *Client) FetchAsset(ctx context.Context, assetURL string) ([]byte, error) {
	op := "fetch asset"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, assetURL, nil)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(op, resp)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxAssetBytes))
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	return data, nil
}

func (c *Client) resolve(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return c.baseURL + target
}

func (c *Client) do(ctx context.Context, method, op, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("wanikani: %s: encode: %w", op, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(target), reader)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Wanikani-Revision", Revision)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.WithError(err).WithField("op", op).Warn("request failed")
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	c.logger.WithFields(logrus.Fields{
		"method":   method,
		"path":     req.URL.Path,
		"status":   resp.StatusCode,
		"duration": time.Since(started).String(),
	}).Debug("request completed")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(op, resp)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &DecodeError{Op: op, Err: err}
	}
	return nil
}

func statusError(op string, resp *http.Response) error {
	if resp.StatusCode == http.StatusUnauthorized {
		return &TransportError{Op: op, Status: resp.StatusCode, Err: ErrUnauthorized}
	}
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(snippet))
	if json.Unmarshal(snippet, &apiErr) == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	if msg == "" {
		return &TransportError{Op: op, Status: resp.StatusCode}
	}
	return &TransportError{Op: op, Status: resp.StatusCode, Err: errors.New(msg)}
}
