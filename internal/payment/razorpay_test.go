package payment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRazorpayClient_CreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "rzp_secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"error":{"code":"BAD_REQUEST_ERROR","description":"Authentication failed"}}`))
			return
		}
		assert.Equal(t, "/v1/orders", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)

		var req OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(109900), req.Amount)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"order_Nx1","entity":"order","amount":109900,"currency":"INR","receipt":"` + req.Receipt + `","status":"created"}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient(srv.URL+"/", "rzp_test_key", "rzp_secret")
	got, err := client.CreateOrder(context.Background(), OrderRequest{Amount: 109900, Currency: "INR", Receipt: "rcpt-1"})
	require.NoError(t, err)
	assert.Equal(t, GatewayOrder{ID: "order_Nx1", Amount: 109900, Currency: "INR", Receipt: "rcpt-1", Status: "created"}, got)

	bad := NewRazorpayClient(srv.URL, "rzp_test_key", "wrong")
	_, err = bad.CreateOrder(context.Background(), OrderRequest{Amount: 100, Currency: "INR", Receipt: "r"})
	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, http.StatusUnauthorized, gwErr.StatusCode)
	assert.Equal(t, "Authentication failed", gwErr.Message)
}

func TestRazorpayClient_FetchOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/orders/order_Nx1" {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`not json`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"order_Nx1","amount":119900,"currency":"INR","status":"paid"}`))
	}))
	defer srv.Close()

	client := NewRazorpayClient(srv.URL, "k", "s")
	got, err := client.FetchOrder(context.Background(), "order_Nx1")
	require.NoError(t, err)
	assert.Equal(t, int64(119900), got.Amount)

	_, err = client.FetchOrder(context.Background(), "order_missing")
	var gwErr *GatewayError
	require.True(t, errors.As(err, &gwErr))
	assert.Equal(t, "not json", gwErr.Message)
}
