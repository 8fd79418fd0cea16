package restcountries_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/smomoh/flagquiz/internal/restcountries"
)

const countriesPayload = `[
	{
		"name": {"common": "France", "official": "French Republic"},
		"cca2": "FR",
		"region": "Europe",
		"subregion": "Western Europe",
		"flags": {"png": "https://flagcdn.com/w320/fr.png", "svg": "https://flagcdn.com/fr.svg"}
	},
	{
		"name": {"common": "Brazil", "official": "Federative Republic of Brazil"},
		"cca2": "BR",
		"region": "Americas",
		"subregion": "South America",
		"flags": {"png": "https://flagcdn.com/w320/br.png", "svg": "https://flagcdn.com/br.svg"}
	}
]`

func TestFetchAll(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(countriesPayload))
	}))
	defer server.Close()

	client := restcountries.New(server.URL, time.Second)
	out, err := client.FetchAll(context.Background())

	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "France", out[0].Name.Common)
	assert.Equal(t, "FR", out[0].CCA2)
	assert.Equal(t, "Europe", out[0].Region)
	assert.Equal(t, "https://flagcdn.com/w320/fr.png", out[0].Flags.PNG)
	assert.Equal(t, "South America", out[1].Subregion)
}

func TestFetchAll_NonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream unavailable", http.StatusBadGateway)
	}))
	defer server.Close()

	client := restcountries.New(server.URL, time.Second)
	out, err := client.FetchAll(context.Background())

	require.Error(t, err)
	assert.Nil(t, out)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchAll_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "a list"}`))
	}))
	defer server.Close()

	client := restcountries.New(server.URL, time.Second)
	_, err := client.FetchAll(context.Background())

	assert.Error(t, err)
}

func TestFetchAll_ContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(countriesPayload))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := restcountries.New(server.URL, time.Second)
	_, err := client.FetchAll(ctx)

	assert.Error(t, err)
}
