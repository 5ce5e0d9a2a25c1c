package trials

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://clinicaltrials.gov/api/v2"
	MaxPageSize    = 30

	// only completed studies with posted results
	aggFilters = "results:with,status:com"
	fields     = "NCTId,OfficialTitle,BriefSummary,ResultsSection"
)

const (
	pathNCTID   = "protocolSection.identificationModule.nctId"
	pathTitle   = "protocolSection.identificationModule.officialTitle"
	pathSummary = "protocolSection.descriptionModule.briefSummary"
	pathResults = "resultsSection"
)

// Client queries the ClinicalTrials.gov v2 studies endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	pageSize   int
	logger     *zap.Logger
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient = &http.Client{Timeout: timeout}
		}
	}
}

// WithPageSize limits the number of studies requested, clamped to 1..MaxPageSize.
func WithPageSize(size int) Option {
	return func(c *Client) {
		c.pageSize = min(max(size, 1), MaxPageSize)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		pageSize:   MaxPageSize,
		logger:     zap.L(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch returns completed trials with results matching q, in registry order.
// Studies missing any required field are skipped with one warning each.
func (c *Client) Fetch(ctx context.Context, q Query) ([]Trial, error) {
	params, err := q.Values()
	if err != nil {
		return nil, err
	}

	params.Set("aggFilters", aggFilters)
	params.Set("fields", fields)
	params.Set("pageSize", strconv.Itoa(c.pageSize))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/studies?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: error reading response: %w", ErrUpstreamUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstreamUnavailable, resp.StatusCode, string(body))
	}

	return c.parseStudies(body)
}

func (c *Client) FetchAsync(ctx context.Context, q Query) <-chan async.Result[[]Trial] {
	return async.Go(func() ([]Trial, error) {
		return c.Fetch(ctx, q)
	})
}

func (c *Client) parseStudies(body []byte) ([]Trial, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrMalformedUpstreamResponse)
	}

	studies := gjson.GetBytes(body, "studies")
	if !studies.IsArray() {
		return nil, fmt.Errorf("%w: field `studies` is missing", ErrMalformedUpstreamResponse)
	}

	records := studies.Array()
	if len(records) > c.pageSize {
		records = records[:c.pageSize]
	}

	trials := make([]Trial, 0, len(records))
	for _, study := range records {
		trial, ok := toTrial(study)
		if !ok {
			c.logger.Warn("Skipping trial with missing fields",
				zap.String("nctId", trial.ID),
				zap.Bool("hasTitle", trial.Title != ""),
				zap.Bool("hasSummary", trial.Summary != ""),
				zap.Bool("hasResults", len(trial.Results) > 0))
			continue
		}
		trials = append(trials, trial)
	}

	return trials, nil
}

// toTrial reports false when a required field is absent or empty.
// An empty resultsSection object counts as absent.
func toTrial(study gjson.Result) (Trial, bool) {
	trial := Trial{
		ID:      study.Get(pathNCTID).String(),
		Title:   study.Get(pathTitle).String(),
		Summary: study.Get(pathSummary).String(),
	}

	results := study.Get(pathResults)
	if results.IsObject() && len(results.Map()) > 0 {
		trial.Results = []byte(results.Raw)
	}

	ok := trial.ID != "" && trial.Title != "" && trial.Summary != "" && len(trial.Results) > 0
	return trial, ok
}
