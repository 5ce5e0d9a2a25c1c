package trials

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/SaiNageswarS/go-collection-boot/async"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const twoCompleteStudies = `{
  "studies": [
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT12345678", "officialTitle": "Test Clinical Trial for Ibuprofen"},
        "descriptionModule": {"briefSummary": "This is a test summary of the clinical trial."}
      },
      "resultsSection": {"dummy_key_1": "dummy_value_1", "dummy_key_2": "dummy_value_2"}
    },
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT87654321", "officialTitle": "Another Test Trial"},
        "descriptionModule": {"briefSummary": "Another test summary."}
      },
      "resultsSection": {"dummy_key_3": "dummy_value_3"}
    }
  ]
}`

const oneIncompleteStudy = `{
  "studies": [
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT12345678"},
        "descriptionModule": {"briefSummary": "This is a test summary."}
      },
      "resultsSection": {"dummy_key": "dummy_value"}
    },
    {
      "protocolSection": {
        "identificationModule": {"nctId": "NCT87654321", "officialTitle": "Complete Trial"},
        "descriptionModule": {"briefSummary": "Complete summary."}
      },
      "resultsSection": {"dummy_key": "dummy_value"}
    }
  ]
}`

type recordedRequest struct {
	path  string
	query url.Values
}

type requestLog struct {
	mu       sync.Mutex
	requests []recordedRequest
}

func (l *requestLog) add(r *http.Request) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.requests = append(l.requests, recordedRequest{path: r.URL.Path, query: r.URL.Query()})
}

func (l *requestLog) all() []recordedRequest {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recordedRequest(nil), l.requests...)
}

func newTestClient(t *testing.T, status int, body string, opts ...Option) (*Client, *requestLog, *observer.ObservedLogs) {
	requests := &requestLog{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.add(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	core, logs := observer.New(zapcore.WarnLevel)
	opts = append([]Option{WithBaseURL(server.URL), WithLogger(zap.New(core))}, opts...)
	return NewClient(opts...), requests, logs
}

func TestFetchWellFormedStudies(t *testing.T) {
	client, requests, logs := newTestClient(t, http.StatusOK, twoCompleteStudies)

	trials, err := client.Fetch(context.Background(), StructuredQuery(map[string]string{"query.term": "ibuprofen"}))

	require.NoError(t, err)
	require.Len(t, trials, 2)
	assert.Equal(t, "NCT12345678", trials[0].ID)
	assert.Equal(t, "Test Clinical Trial for Ibuprofen", trials[0].Title)
	assert.Equal(t, "This is a test summary of the clinical trial.", trials[0].Summary)
	assert.JSONEq(t, `{"dummy_key_1": "dummy_value_1", "dummy_key_2": "dummy_value_2"}`, string(trials[0].Results))
	assert.Equal(t, "NCT87654321", trials[1].ID)
	assert.Equal(t, 0, logs.Len())

	require.Len(t, requests.all(), 1)
	assert.Equal(t, "/studies", requests.all()[0].path)
}

func TestFetchSkipsIncompleteStudyWithOneWarning(t *testing.T) {
	client, _, logs := newTestClient(t, http.StatusOK, oneIncompleteStudy)

	trials, err := client.Fetch(context.Background(), TextQuery("test query"))

	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, "NCT87654321", trials[0].ID)

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.WarnLevel, entry.Level)
	assert.Contains(t, entry.Message, "Skipping trial with missing fields")
	assert.Equal(t, "NCT12345678", entry.ContextMap()["nctId"])
	assert.Equal(t, false, entry.ContextMap()["hasTitle"])
}

func TestFetchTreatsEmptyResultsSectionAsMissing(t *testing.T) {
	body := `{"studies": [{
	  "protocolSection": {
	    "identificationModule": {"nctId": "NCT00000001", "officialTitle": "T"},
	    "descriptionModule": {"briefSummary": "S"}
	  },
	  "resultsSection": {}
	}]}`
	client, _, logs := newTestClient(t, http.StatusOK, body)

	trials, err := client.Fetch(context.Background(), TextQuery("x"))

	require.NoError(t, err)
	assert.Empty(t, trials)
	assert.Equal(t, 1, logs.Len())
}

func TestFetchMissingStudiesField(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, `{}`)

	trials, err := client.Fetch(context.Background(), TextQuery("test query"))

	assert.ErrorIs(t, err, ErrMalformedUpstreamResponse)
	assert.Nil(t, trials)
}

func TestFetchInvalidJSON(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, `<html>oops</html>`)

	_, err := client.Fetch(context.Background(), TextQuery("test query"))

	assert.ErrorIs(t, err, ErrMalformedUpstreamResponse)
}

func TestFetchEmptyStudies(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, `{"studies": []}`)

	trials, err := client.Fetch(context.Background(), TextQuery("nonexistent query"))

	require.NoError(t, err)
	assert.Empty(t, trials)
}

func TestFetchHTTPError(t *testing.T) {
	client, requests, _ := newTestClient(t, http.StatusServiceUnavailable, `{"message":"down"}`)

	_, err := client.Fetch(context.Background(), TextQuery("test query"))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.Contains(t, err.Error(), "503")
	assert.Len(t, requests.all(), 1)
}

func TestFetchTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.Fetch(context.Background(), TextQuery("test query"))

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
}

func TestFetchRequestParameters(t *testing.T) {
	client, requests, _ := newTestClient(t, http.StatusOK, `{"studies": []}`)

	_, err := client.Fetch(context.Background(), TextQuery("diabetes treatment"))
	require.NoError(t, err)

	require.Len(t, requests.all(), 1)
	assert.Equal(t, url.Values{
		"query.term": {"diabetes treatment"},
		"aggFilters": {"results:with,status:com"},
		"fields":     {"NCTId,OfficialTitle,BriefSummary,ResultsSection"},
		"pageSize":   {"30"},
	}, requests.all()[0].query)
}

func TestFetchStructuredQueryFiltersKeys(t *testing.T) {
	client, requests, _ := newTestClient(t, http.StatusOK, `{"studies": []}`, WithPageSize(10))

	_, err := client.Fetch(context.Background(), StructuredQuery(map[string]string{
		"query.cond":  "back pain",
		"query.intr":  "ibuprofen AND caffeine",
		"query.locn":  "  ",
		"query.bogus": "ignored",
		"format":      "csv",
	}))
	require.NoError(t, err)

	q := requests.all()[0].query
	assert.Equal(t, "back pain", q.Get("query.cond"))
	assert.Equal(t, "ibuprofen AND caffeine", q.Get("query.intr"))
	assert.False(t, q.Has("query.locn"))
	assert.False(t, q.Has("query.bogus"))
	assert.False(t, q.Has("format"))
	assert.Equal(t, "10", q.Get("pageSize"))
}

func TestFetchInvalidQueryMakesNoRequest(t *testing.T) {
	client, requests, _ := newTestClient(t, http.StatusOK, `{"studies": []}`)

	cases := map[string]Query{
		"empty text":        TextQuery("   "),
		"empty structured":  StructuredQuery(map[string]string{}),
		"only unknown keys": StructuredQuery(map[string]string{"query.bogus": "x"}),
		"only blank values": StructuredQuery(map[string]string{"query.cond": ""}),
	}

	for name, q := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := client.Fetch(context.Background(), q)
			assert.True(t, errors.Is(err, ErrInvalidQuery))
		})
	}
	assert.Empty(t, requests.all())
}

func TestFetchIsIdempotentOnFixedSnapshot(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, twoCompleteStudies)
	q := TextQuery("ibuprofen")

	first, err := client.Fetch(context.Background(), q)
	require.NoError(t, err)
	second, err := client.Fetch(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFetchCapsAtPageSize(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, twoCompleteStudies, WithPageSize(1))

	trials, err := client.Fetch(context.Background(), TextQuery("ibuprofen"))

	require.NoError(t, err)
	require.Len(t, trials, 1)
	assert.Equal(t, "NCT12345678", trials[0].ID)
}

func TestFetchAsync(t *testing.T) {
	client, _, _ := newTestClient(t, http.StatusOK, twoCompleteStudies)

	trials, err := async.Await(client.FetchAsync(context.Background(), TextQuery("ibuprofen")))

	require.NoError(t, err)
	assert.Len(t, trials, 2)
}

func TestWithPageSizeClamps(t *testing.T) {
	assert.Equal(t, 1, NewClient(WithPageSize(0)).pageSize)
	assert.Equal(t, MaxPageSize, NewClient(WithPageSize(500)).pageSize)
	assert.Equal(t, 12, NewClient(WithPageSize(12)).pageSize)
}

func TestTrialHeadline(t *testing.T) {
	trial := Trial{ID: "NCT00000001", Title: "Title", Summary: "Summary"}
	assert.Equal(t, "NCT00000001: Title - Summary", trial.Headline())
}
