package oracle

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_Score(t *testing.T) {
	var gotReq scoreRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(map[string]interface{}{
			"scores": map[string]interface{}{
				"Passado": 80,
				"carro":   10,
			},
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, discardLogger())
	scores, err := client.Score(context.Background(), "Futuro", []string{"Passado", "Carro"})
	require.NoError(t, err)

	assert.Equal(t, "Futuro", gotReq.Target)
	assert.Equal(t, []string{"Passado", "Carro"}, gotReq.Candidates)

	// Response keys are normalized to lower case
	assert.Equal(t, 80, scores["passado"])
	assert.Equal(t, 10, scores["carro"])
}

func TestClient_Score_ClampsAndCoerces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"scores":{"alto":150,"baixo":-20,"ruim":"not-a-number"}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, discardLogger())
	scores, err := client.Score(context.Background(), "Futuro", []string{"alto", "baixo", "ruim"})
	require.NoError(t, err)

	assert.Equal(t, 100, scores["alto"])
	assert.Equal(t, 0, scores["baixo"])
	assert.Equal(t, 0, scores["ruim"], "non-numeric entries count as zero, not an error")
}

func TestClient_Score_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, discardLogger())
	_, err := client.Score(context.Background(), "Futuro", []string{"Passado"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Score_MalformedResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, discardLogger())
	_, err := client.Score(context.Background(), "Futuro", []string{"Passado"})
	assert.Error(t, err)
}

func TestClient_Score_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, time.Second, discardLogger())
	_, err := client.Score(context.Background(), "Futuro", []string{"Passado"})
	assert.Error(t, err)
}
