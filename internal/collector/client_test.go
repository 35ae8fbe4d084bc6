package collector

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alfredjeanlab/runline/internal/lineage"
)

// testHandler captures the incoming request details and returns a canned response.
type testHandler struct {
	method      string
	path        string
	query       string
	body        string
	contentType string
	auth        string

	statusCode   int
	responseBody string
}

func (h *testHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.method = r.Method
	h.path = r.URL.Path
	h.query = r.URL.RawQuery
	h.contentType = r.Header.Get("Content-Type")
	h.auth = r.Header.Get("Authorization")
	if r.Body != nil {
		data, _ := io.ReadAll(r.Body)
		h.body = string(data)
	}

	w.Header().Set("Content-Type", "application/json")
	if h.statusCode != 0 {
		w.WriteHeader(h.statusCode)
	} else {
		w.WriteHeader(http.StatusCreated)
	}
	if h.responseBody != "" {
		_, _ = w.Write([]byte(h.responseBody))
	}
}

func TestURL_MergesBaseAndRequestParams(t *testing.T) {
	// Base URL already carries query params; request params are appended
	// after them, base order preserved.
	c, err := New("http://localhost:5000?a=1&b=2", "", 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	got := c.URL("/p", Param{"c", "3"}).String()
	want := "http://localhost:5000/p?a=1&b=2&c=3"
	if got != want {
		t.Errorf("URL() = %q, want %q", got, want)
	}
}

func TestURL(t *testing.T) {
	for _, tc := range []struct {
		name   string
		base   string
		path   string
		params []Param
		want   string
	}{
		{
			name: "NoParams",
			base: "http://localhost:5000",
			path: "/api/v1/lineage",
			want: "http://localhost:5000/api/v1/lineage",
		},
		{
			name:   "OnlyRequestParams",
			base:   "http://localhost:5000",
			path:   "/test",
			params: []Param{{"param2", "value2"}},
			want:   "http://localhost:5000/test?param2=value2",
		},
		{
			name:   "BaseParamsFirst",
			base:   "http://localhost:5000?param0=value0&param1=value1",
			path:   "/test",
			params: []Param{{"param2", "value2"}},
			want:   "http://localhost:5000/test?param0=value0&param1=value1&param2=value2",
		},
		{
			name:   "RequestParamOrderPreserved",
			base:   "http://localhost:5000",
			path:   "/test",
			params: []Param{{"z", "1"}, {"a", "2"}, {"m", "3"}},
			want:   "http://localhost:5000/test?z=1&a=2&m=3",
		},
		{
			name: "BasePathPrefix",
			base: "http://localhost:5000/base",
			path: "/test",
			want: "http://localhost:5000/base/test",
		},
		{
			name: "TrailingSlashOnBase",
			base: "http://localhost:5000/base/",
			path: "/test",
			want: "http://localhost:5000/base/test",
		},
		{
			name:   "ParamValueEscaped",
			base:   "http://localhost:5000",
			path:   "/test",
			params: []Param{{"q", "a b&c"}},
			want:   "http://localhost:5000/test?q=a+b%26c",
		},
		{
			name:   "CollidingKeysBothKept",
			base:   "http://localhost:5000?k=base",
			path:   "/test",
			params: []Param{{"k", "req"}},
			want:   "http://localhost:5000/test?k=base&k=req",
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c, err := New(tc.base, "", 0)
			if err != nil {
				t.Fatalf("New(%q) error: %v", tc.base, err)
			}
			if got := c.URL(tc.path, tc.params...).String(); got != tc.want {
				t.Errorf("URL(%q, %v) = %q, want %q", tc.path, tc.params, got, tc.want)
			}
		})
	}
}

func TestNew_InvalidURL(t *testing.T) {
	for _, base := range []string{"", "not a url", "/relative/only", "host-without-scheme:5000/x"} {
		if _, err := New(base, "", 0); err == nil {
			t.Errorf("New(%q) succeeded, want error", base)
		}
	}
}

func TestEmit(t *testing.T) {
	h := &testHandler{}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c, err := New(srv.URL, "secret-key", time.Second)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	ev := lineage.NewRunEvent(
		lineage.EventStart,
		time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC),
		"run123",
		lineage.Job{Namespace: "ns", Name: "job"},
		nil,
	)
	if err := c.Emit(context.Background(), ev); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}

	if h.method != http.MethodPost {
		t.Errorf("method = %q, want POST", h.method)
	}
	if h.path != LineagePath {
		t.Errorf("path = %q, want %q", h.path, LineagePath)
	}
	if h.contentType != "application/json" {
		t.Errorf("content-type = %q, want application/json", h.contentType)
	}
	if h.auth != "Bearer secret-key" {
		t.Errorf("authorization = %q, want bearer token", h.auth)
	}

	var sent map[string]any
	if err := json.Unmarshal([]byte(h.body), &sent); err != nil {
		t.Fatalf("unmarshaling request body: %v", err)
	}
	if sent["event_type"] != "START" {
		t.Errorf("event_type = %v, want START", sent["event_type"])
	}
	if sent["producer"] != lineage.Producer {
		t.Errorf("producer = %v, want %q", sent["producer"], lineage.Producer)
	}
}

func TestEmit_PreservesBaseQueryParams(t *testing.T) {
	h := &testHandler{}
	srv := httptest.NewServer(h)
	defer srv.Close()

	c, err := New(srv.URL+"?api_key=abc", "", time.Second)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := c.Emit(context.Background(), lineage.RunEvent{}); err != nil {
		t.Fatalf("Emit() error: %v", err)
	}
	if h.query != "api_key=abc" {
		t.Errorf("query = %q, want api_key=abc", h.query)
	}
}

func TestEmit_ErrorResponses(t *testing.T) {
	for _, tc := range []struct {
		name       string
		statusCode int
		body       string
		wantMsg    string
	}{
		{"JSONError", http.StatusUnprocessableEntity, `{"error":"bad event"}`, "bad event"},
		{"PlainError", http.StatusInternalServerError, "boom", "boom"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			h := &testHandler{statusCode: tc.statusCode, responseBody: tc.body}
			srv := httptest.NewServer(h)
			defer srv.Close()

			c, err := New(srv.URL, "", time.Second)
			if err != nil {
				t.Fatalf("New() error: %v", err)
			}
			err = c.Emit(context.Background(), lineage.RunEvent{})
			if err == nil {
				t.Fatal("Emit() succeeded, want error")
			}
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type = %T, want *APIError", err)
			}
			if apiErr.StatusCode != tc.statusCode {
				t.Errorf("StatusCode = %d, want %d", apiErr.StatusCode, tc.statusCode)
			}
			if apiErr.Message != tc.wantMsg {
				t.Errorf("Message = %q, want %q", apiErr.Message, tc.wantMsg)
			}
		})
	}
}
