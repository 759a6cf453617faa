package apiclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/jrsteele09/go-storefront/apiclient"
	"github.com/jrsteele09/go-storefront/session"
	"github.com/stretchr/testify/require"
)

type widget struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type apiFixture struct {
	server   *httptest.Server
	client   *apiclient.Client
	widgets  *apiclient.Resource[widget]
	source   *fakeSource
	requests []*http.Request
}

func setupTestFixture(t *testing.T, handler http.HandlerFunc) *apiFixture {
	t.Helper()
	f := &apiFixture{source: &fakeSource{session: &session.Session{AccessToken: "T1"}}}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.requests = append(f.requests, r.Clone(context.Background()))
		handler(w, r)
	}))
	t.Cleanup(f.server.Close)

	client, err := apiclient.NewClient(f.server.URL+"/v1/", f.source)
	require.NoError(t, err)
	f.client = client
	f.widgets = apiclient.NewResource[widget](client, "/widgets")
	return f
}

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := apiclient.NewClient("not a url", nil)
	require.Error(t, err)
	_, err = apiclient.NewClient("/relative", nil)
	require.Error(t, err)
}

func TestResource_List(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []widget
	}{
		{name: "array", body: `[{"id":"1","name":"a"},{"id":"2","name":"b"}]`, want: []widget{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}},
		{name: "envelope", body: `{"data":[{"id":"1","name":"a"}],"total":1}`, want: []widget{{ID: "1", Name: "a"}}},
		{name: "null", body: `null`, want: []widget{}},
		{name: "empty envelope", body: `{}`, want: []widget{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})
			got, err := f.widgets.List(context.Background(), url.Values{"q": {"red shoes"}, "page": {"2"}})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)

			require.Len(t, f.requests, 1)
			req := f.requests[0]
			require.Equal(t, "/v1/widgets", req.URL.Path)
			require.Equal(t, "red shoes", req.URL.Query().Get("q"))
			require.Equal(t, "2", req.URL.Query().Get("page"))
			require.Equal(t, "Bearer T1", req.Header.Get("Authorization"))
		})
	}
}

func TestResource_CRUD(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`{"id":"a/b","name":"got"}`))
		case http.MethodPost, http.MethodPut:
			var in widget
			require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
			in.ID = "new"
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(in)
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		}
	})
	ctx := context.Background()

	got, err := f.widgets.Get(ctx, "a/b")
	require.NoError(t, err)
	require.Equal(t, "got", got.Name)
	require.Equal(t, "/v1/widgets/a%2Fb", f.requests[0].URL.EscapedPath())

	created, err := f.widgets.Create(ctx, widget{Name: "n"})
	require.NoError(t, err)
	require.Equal(t, widget{ID: "new", Name: "n"}, *created)
	require.Equal(t, "application/json", f.requests[1].Header.Get("Content-Type"))

	updated, err := f.widgets.Update(ctx, "7", widget{Name: "u"})
	require.NoError(t, err)
	require.Equal(t, "u", updated.Name)
	require.Equal(t, http.MethodPut, f.requests[2].Method)
	require.Equal(t, "/v1/widgets/7", f.requests[2].URL.Path)

	require.NoError(t, f.widgets.Delete(ctx, "7"))
	require.Equal(t, http.MethodDelete, f.requests[3].Method)
}

func TestResource_APIError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, body: `{"message":"Unauthorized"}`, message: "Unauthorized"},
		{name: "not found", status: http.StatusNotFound, body: `{"error":"no such widget"}`, message: "no such widget"},
		{name: "plain text", status: http.StatusBadGateway, body: `upstream down`, message: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := f.widgets.Get(context.Background(), "1")
			var apiErr *apiclient.APIError
			require.ErrorAs(t, err, &apiErr)
			require.Equal(t, tt.status, apiErr.StatusCode)
			require.Equal(t, tt.message, apiErr.Message)
			require.Equal(t, http.MethodGet, apiErr.Method)
			require.Contains(t, apiErr.Error(), "status")
		})
	}
}

func TestClient_NoSessionSendsNoAuthorization(t *testing.T) {
	f := setupTestFixture(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	f.source.set(nil, nil)

	_, err := f.widgets.List(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, f.requests[0].Header.Get("Authorization"))
	require.Empty(t, f.requests[0].URL.RawQuery)
}
