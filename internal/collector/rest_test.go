package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRESTFetcher_FetchDailyBars(t *testing.T) {
	var auth, symbol, limit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		symbol = r.URL.Query().Get("symbol")
		limit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[
			{"timestamp":1736260200,"open":242,"high":245.5,"low":241.3,"close":{"MSFT":244.9}},
			{"timestamp":1735828200,"open":[248.9],"high":249.1,"low":241.8,"close":243.8,"volume":55740700}
		]`))
	}))
	defer srv.Close()

	f := NewRESTFetcher(srv.URL, "secret", "")
	bars, err := f.FetchDailyBars(context.Background(), "MSFT", 90)
	require.NoError(t, err)
	require.Len(t, bars, 2)
	assert.Equal(t, 243.8, bars[0].Close, "sorted oldest first")
	assert.Equal(t, 248.9, bars[0].Open)
	assert.Equal(t, 244.9, bars[1].Close)
	assert.Equal(t, "Bearer secret", auth)
	assert.Equal(t, "MSFT", symbol)
	assert.Equal(t, "90", limit)
}

func TestRESTFetcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"status", http.StatusInternalServerError, `oops`},
		{"empty", http.StatusOK, `[]`},
		{"missing close", http.StatusOK, `[{"timestamp":1,"open":1,"high":1,"low":1}]`},
		{"missing timestamp", http.StatusOK, `[{"open":1,"high":1,"low":1,"close":1}]`},
		{"ambiguous close", http.StatusOK, `[{"timestamp":1,"open":1,"high":1,"low":1,"close":[1,2]}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()
			_, err := NewRESTFetcher(srv.URL, "", "").FetchDailyBars(context.Background(), "X", 90)
			assert.Error(t, err)
		})
	}
}
