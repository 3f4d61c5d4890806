package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchFixture = `{
  "count": 2,
  "results": [
    {
      "id": "4711",
      "title": "Golang Engineer",
      "company": {"display_name": "Acme Ltd"},
      "location": {"display_name": "London, UK"},
      "description": "Build services",
      "created": "2024-04-02T08:15:00Z",
      "redirect_url": "https://example.com/4711",
      "contract_type": "permanent",
      "category": {"label": "IT Jobs"},
      "salary_min": 60000,
      "salary_max": 80000
    },
    {
      "title": "Recruiter",
      "company": {"display_name": "Beta"},
      "location": {"display_name": "Berlin"},
      "created": "not a date"
    }
  ]
}`

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{AppID: "id"})
	assert.Error(t, err)
}

func TestSearchJobs(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(searchFixture))
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "key", Country: "gb", BaseURL: srv.URL + "/", PageSize: 50})
	require.NoError(t, err)

	jobs, err := client.SearchJobs(context.Background(), "golang", SearchParams{Location: "London", Limit: 10, Page: 2})
	require.NoError(t, err)

	assert.Equal(t, "/v1/api/jobs/gb/search/2", gotPath)
	assert.Equal(t, "golang", gotQuery["what"][0])
	assert.Equal(t, "London", gotQuery["where"][0])
	assert.Equal(t, "10", gotQuery["results_per_page"][0])

	require.Len(t, jobs, 2)
	assert.Equal(t, "4711", jobs[0].ID)
	assert.Equal(t, "IT Jobs", jobs[0].Category)
	assert.Equal(t, "permanent", jobs[0].Contract)
	assert.Equal(t, 80000.0, jobs[0].SalaryMax)
	assert.Equal(t, 2024, jobs[0].PostedAt.Year())

	assert.NotEmpty(t, jobs[1].ID, "missing ids are generated")
	assert.True(t, jobs[1].PostedAt.IsZero())
}

func TestSearchJobs_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client, err := NewClient(Config{AppID: "id", AppKey: "key", BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = client.SearchJobs(context.Background(), "golang", SearchParams{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "bad key")
}

func TestSearchJobs_RequiresQuery(t *testing.T) {
	client, err := NewClient(Config{AppID: "id", AppKey: "key"})
	require.NoError(t, err)

	_, err = client.SearchJobs(context.Background(), "", SearchParams{})
	assert.Error(t, err)
}
