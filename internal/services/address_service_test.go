package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeCEP(t *testing.T) {
	cases := []struct {
		in   string
		out  string
		fail bool
	}{
		{in: "01310-100", out: "01310100"},
		{in: "01310100", out: "01310100"},
		{in: " 01.310-100 ", out: "01310100"},
		{in: "0131010", fail: true},
		{in: "013101000", fail: true},
		{in: "abcdefgh", fail: true},
		{in: "", fail: true},
	}
	for _, tc := range cases {
		normalized, err := NormalizeCEP(tc.in)
		if tc.fail {
			assert.ErrorIs(t, err, ErrInvalidCEP, tc.in)
			continue
		}
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.out, normalized)
	}
}

func newAddressTestServer(t *testing.T, handler http.HandlerFunc) *AddressService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service := NewAddressService()
	service.baseURL = server.URL
	return service
}

func TestLookupResolvesAddress(t *testing.T) {
	service := newAddressTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/01310100/json/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"cep":"01310-100","logradouro":"Avenida Paulista","bairro":"Bela Vista","localidade":"São Paulo","uf":"SP"}`))
	})

	address, err := service.Lookup(context.Background(), "01310-100")
	require.NoError(t, err)
	assert.Equal(t, "Avenida Paulista", address.Street)
	assert.Equal(t, "São Paulo", address.City)
	assert.Equal(t, "SP", address.State)
}

func TestLookupUnknownCEP(t *testing.T) {
	service := newAddressTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"erro": true}`))
	})

	_, err := service.Lookup(context.Background(), "99999999")
	assert.ErrorIs(t, err, ErrAddressNotFound)
}

func TestLookupUpstreamFailure(t *testing.T) {
	service := newAddressTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := service.Lookup(context.Background(), "01310100")
	assert.ErrorIs(t, err, ErrAddressUnavailable)
}

func TestLookupInvalidCEPSkipsRequest(t *testing.T) {
	called := false
	service := newAddressTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	_, err := service.Lookup(context.Background(), "123")
	assert.ErrorIs(t, err, ErrInvalidCEP)
	assert.False(t, called)
}
