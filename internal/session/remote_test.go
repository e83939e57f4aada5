package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteInterpreterPostsChatRequest(t *testing.T) {
	var got chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(chatResponse{Reply: "Hello Ada."})
	}))
	defer srv.Close()

	ri := NewRemoteInterpreter(srv.URL+"/", nil, nil)
	reply, err := ri.Interpret(context.Background(), "hi", "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada.", reply)
	assert.Equal(t, chatRequest{Message: "hi", Name: "Ada Lovelace"}, got)
}

func TestRemoteInterpreterSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(chatResponse{Error: "Something went wrong"})
	}))
	defer srv.Close()

	ri := NewRemoteInterpreter(srv.URL, nil, nil)
	_, err := ri.Interpret(context.Background(), "hi", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Something went wrong")
}

func TestRemoteInterpreterNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	ri := NewRemoteInterpreter(srv.URL, nil, nil)
	_, err := ri.Interpret(context.Background(), "hi", "")
	assert.Error(t, err)
}
