package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backend fake que só grava o path recebido depois do proxy
func capturingBackend(t *testing.T, got *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*got = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
}

func TestGatewayTiraSoOPrefixoAPI(t *testing.T) {
	var walletPath, betPath, resultPath string
	mux := newMux(
		capturingBackend(t, &walletPath),
		capturingBackend(t, &betPath),
		capturingBackend(t, &resultPath),
	)

	cases := []struct {
		in   string
		got  *string
		want string
	}{
		{"/api/wallet", &walletPath, "/wallet"},
		{"/api/wallet/deposit", &walletPath, "/wallet/deposit"},
		{"/api/bets", &betPath, "/bets"},
		{"/api/bets/b123", &betPath, "/bets/b123"},
		{"/api/pattis", &betPath, "/pattis"},
		{"/api/pattis/groups", &betPath, "/pattis/groups"},
		{"/api/v1/results", &resultPath, "/v1/results"},
		{"/api/v1/rates/g1", &resultPath, "/v1/rates/g1"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.in, nil))
		require.Equal(t, http.StatusOK, rec.Code, tc.in)
		assert.Equal(t, tc.want, *tc.got, tc.in)
	}
}

func TestGatewayForaDoAPIDevolve404(t *testing.T) {
	var p string
	mux := newMux(capturingBackend(t, &p), capturingBackend(t, &p), capturingBackend(t, &p))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/wallet", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
