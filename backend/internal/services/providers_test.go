package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"jobrelay/backend/internal/config"
	"jobrelay/backend/internal/proxy"
)

func TestUpstreamSearcher(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/search", r.URL.Path)
		assert.Equal(t, "react", r.URL.Query().Get("keywords"))
		assert.Equal(t, "remote", r.URL.Query().Get("location"))
		assert.Equal(t, "v1", r.URL.Query().Get("api"), "target query must be kept")

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPartialContent)
		w.Write([]byte(`{"success":true,"jobs":[{"position":"React dev"}]}`))
	}))
	defer upstream.Close()

	searcher, err := NewUpstreamSearcher(upstream.URL+"/api/search?api=v1", proxy.NewClient(nil))
	require.NoError(t, err)

	result, err := searcher.SearchJobs(context.Background(), url.Values{
		"keywords": {"react"},
		"location": {"remote"},
	})
	require.NoError(t, err)

	assert.Equal(t, http.StatusPartialContent, result.StatusCode)
	assert.JSONEq(t, `{"success":true,"jobs":[{"position":"React dev"}]}`, string(result.Body))
}

func TestUpstreamSearcherCancelledContext(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not reach upstream")
	}))
	defer upstream.Close()

	searcher, err := NewUpstreamSearcher(upstream.URL, proxy.NewClient(nil))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = searcher.SearchJobs(ctx, url.Values{"keywords": {"go"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestJoobleSearcher(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/secret-key", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]string{"keywords": "golang", "location": "Quito", "page": "2"}, body)

		w.Write([]byte(`{"totalCount":1,"jobs":[]}`))
	}))
	defer upstream.Close()

	searcher, err := NewJoobleSearcher(upstream.URL+"/api/", "secret-key", proxy.NewClient(nil))
	require.NoError(t, err)

	result, err := searcher.SearchJobs(context.Background(), url.Values{
		"keywords": {"golang"},
		"location": {"Quito"},
		"page":     {"2"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"totalCount":1,"jobs":[]}`, string(result.Body))
}

func TestRapidAPISearcher(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		queryParam string
		params     url.Values
		want       url.Values
	}{
		{
			name:       "jsearch",
			path:       "/search",
			queryParam: "query",
			params:     url.Values{"keywords": {"golang"}, "page": {"2"}},
			want:       url.Values{"query": {"golang"}, "page": {"2"}},
		},
		{
			name:       "linkedin job search",
			path:       "/active-jb-7d",
			queryParam: "title_filter",
			params:     url.Values{"keywords": {"data engineer"}, "limit": {"100"}, "offset": {"0"}},
			want:       url.Values{"title_filter": {"data engineer"}, "limit": {"100"}, "offset": {"0"}},
		},
		{
			name:       "explicit query wins over keywords",
			path:       "/search",
			queryParam: "query",
			params:     url.Values{"keywords": {"go"}, "query": {"go developer in Quito"}},
			want:       url.Values{"query": {"go developer in Quito"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.path, r.URL.Path)
				assert.Equal(t, tt.want, r.URL.Query())
				assert.Equal(t, "rapid-key", r.Header.Get("x-rapidapi-key"))
				assert.Equal(t, "127.0.0.1", r.Header.Get("x-rapidapi-host"))

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"status":"OK","data":[]}`))
			}))
			defer upstream.Close()

			searcher, err := NewRapidAPISearcher(upstream.URL+tt.path, "rapid-key", tt.queryParam, proxy.NewClient(nil))
			require.NoError(t, err)

			paramsBefore := len(tt.params)
			result, err := searcher.SearchJobs(context.Background(), tt.params)
			require.NoError(t, err)

			assert.Equal(t, http.StatusOK, result.StatusCode)
			assert.JSONEq(t, `{"status":"OK","data":[]}`, string(result.Body))
			assert.Len(t, tt.params, paramsBefore, "params must not be modified")
		})
	}
}

func TestCoreSignalSearcher(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/cdapi/v2/job_base/search/filter", r.URL.Path)
		assert.Equal(t, "core-key", r.Header.Get("apikey"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var filter map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&filter))
		assert.Equal(t, map[string]string{"title": "backend developer", "location": "Ecuador"}, filter)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[101,102,103]`))
	}))
	defer upstream.Close()

	searcher, err := NewCoreSignalSearcher(upstream.URL+"/cdapi/v2/job_base/search/filter", "core-key", proxy.NewClient(nil))
	require.NoError(t, err)

	result, err := searcher.SearchJobs(context.Background(), url.Values{
		"keywords": {"backend developer"},
		"location": {"Ecuador"},
	})
	require.NoError(t, err)
	assert.Equal(t, `[101,102,103]`, string(result.Body))

	_, err = NewCoreSignalSearcher(upstream.URL, "", proxy.NewClient(nil))
	require.Error(t, err)
}

func TestJoobleSearcherRequiresKey(t *testing.T) {
	_, err := NewJoobleSearcher("https://jooble.org/api", "", proxy.NewClient(nil))
	require.Error(t, err)
}

func TestCareerjetSearcher(t *testing.T) {
	tests := []struct {
		name         string
		params       url.Values
		wantLocation string
		wantPage     string
	}{
		{
			name:         "fills default location and first page",
			params:       url.Values{"keywords": {"devops"}},
			wantLocation: "EC",
			wantPage:     "1",
		},
		{
			name:         "keeps explicit values",
			params:       url.Values{"keywords": {"devops"}, "location": {"Madrid"}, "page": {"3"}},
			wantLocation: "Madrid",
			wantPage:     "3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				assert.Equal(t, "devops", q.Get("keywords"))
				assert.Equal(t, tt.wantLocation, q.Get("location"))
				assert.Equal(t, tt.wantPage, q.Get("page"))
				w.Write([]byte(`{"jobs":[]}`))
			}))
			defer upstream.Close()

			searcher, err := NewCareerjetSearcher(upstream.URL+"/jobs", "EC", proxy.NewClient(nil))
			require.NoError(t, err)

			keys := len(tt.params)
			_, err = searcher.SearchJobs(context.Background(), tt.params)
			require.NoError(t, err)
			assert.Len(t, tt.params, keys, "caller params must not be mutated")
		})
	}
}

func TestHHServiceAnonymous(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/vacancies", r.URL.Path)
		assert.Equal(t, "golang", r.URL.Query().Get("text"))
		assert.Empty(t, r.URL.Query().Get("keywords"))
		assert.Equal(t, "1", r.URL.Query().Get("area"))
		assert.Equal(t, HHUserAgent, r.Header.Get("HH-User-Agent"))
		assert.Empty(t, r.Header.Get("Authorization"))

		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors":[{"type":"bad_argument"}]}`))
	}))
	defer upstream.Close()

	service, err := NewHHService(&config.HHConfig{APIBaseURL: upstream.URL}, 0, zap.NewNop())
	require.NoError(t, err)

	result, err := service.SearchJobs(context.Background(), url.Values{
		"keywords": {"golang"},
		"area":     {"1"},
	})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, result.StatusCode, "provider status is passed through")
}

func TestHHServiceClientCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/oauth/token", func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "client_credentials", r.PostForm.Get("grant_type"))
		assert.Equal(t, "app-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "app-secret", r.PostForm.Get("client_secret"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"app-token","token_type":"bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/vacancies", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer app-token", r.Header.Get("Authorization"))
		w.Write([]byte(`{"items":[],"found":0}`))
	})
	upstream := httptest.NewServer(mux)
	defer upstream.Close()

	service, err := NewHHService(&config.HHConfig{
		APIBaseURL:   upstream.URL,
		TokenURL:     upstream.URL + "/oauth/token",
		ClientID:     "app-id",
		ClientSecret: "app-secret",
	}, 0, zap.NewNop())
	require.NoError(t, err)

	result, err := service.SearchJobs(context.Background(), url.Values{"keywords": {"go"}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.JSONEq(t, `{"items":[],"found":0}`, string(result.Body))
}

func TestNewJobSearcher(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.SearchConfig
		want    interface{}
		wantErr bool
	}{
		{
			name: "upstream",
			cfg:  config.SearchConfig{Provider: config.ProviderUpstream, UpstreamURL: "http://localhost:3001/api/search"},
			want: &UpstreamSearcher{},
		},
		{
			name: "jooble",
			cfg:  config.SearchConfig{Provider: config.ProviderJooble, JoobleAPIURL: "https://jooble.org/api", JoobleAPIKey: "k"},
			want: &JoobleSearcher{},
		},
		{
			name: "careerjet",
			cfg:  config.SearchConfig{Provider: config.ProviderCareerjet, CareerjetAPIURL: "https://api.careerjet.com/jobs"},
			want: &CareerjetSearcher{},
		},
		{
			name: "hh",
			cfg:  config.SearchConfig{Provider: config.ProviderHH, HH: config.HHConfig{APIBaseURL: "https://api.hh.ru"}},
			want: &HHService{},
		},
		{
			name: "rapidapi",
			cfg:  config.SearchConfig{Provider: config.ProviderRapidAPI, RapidAPIURL: "https://jsearch.p.rapidapi.com/search", RapidAPIKey: "k"},
			want: &RapidAPISearcher{},
		},
		{
			name: "coresignal",
			cfg:  config.SearchConfig{Provider: config.ProviderCoreSignal, CoreSignalAPIURL: "https://api.coresignal.com/cdapi/v2/job_base/search/filter", CoreSignalAPIKey: "k"},
			want: &CoreSignalSearcher{},
		},
		{
			name:    "rapidapi without key",
			cfg:     config.SearchConfig{Provider: config.ProviderRapidAPI, RapidAPIURL: "https://jsearch.p.rapidapi.com/search"},
			wantErr: true,
		},
		{
			name:    "unknown",
			cfg:     config.SearchConfig{Provider: "monster"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			searcher, err := NewJobSearcher(tt.cfg, zap.NewNop())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.want, searcher)
		})
	}
}
