// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-shelf-keeper/internal/config"
	"github.com/MKhiriev/go-shelf-keeper/internal/logger"
	"github.com/MKhiriev/go-shelf-keeper/models"
)

// unsignedToken carries {"sub":"acc-42"} in its claims; the adapter parses
// without verifying the signature.
const unsignedToken = "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9." +
	"eyJzdWIiOiJhY2MtNDIifQ." +
	"c2lnbmF0dXJl"

func newTestSyncServer(t *testing.T, serverURL string) *httpSyncServer {
	t.Helper()
	cfg := config.ClientAdapter{ServerURL: serverURL, RequestTimeout: 5 * time.Second}
	return NewHTTPSyncServer(cfg, logger.Nop()).(*httpSyncServer)
}

func TestGetManifest_WithSince(t *testing.T) {
	since := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	manifestTS := since.Add(time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/sync/manifest", r.URL.Path)
		assert.Equal(t, since.Format(time.RFC3339Nano), r.URL.Query().Get("since"))
		assert.Equal(t, "Bearer "+unsignedToken, r.Header.Get("Authorization"))

		_ = json.NewEncoder(w).Encode(models.ManifestResponse{
			Changes: []models.SyncChange{
				{EntityType: models.EntityDocument, EntityID: "d1", Operation: models.OpUpdate},
			},
			Timestamp: manifestTS,
		})
	}))
	defer srv.Close()

	a := newTestSyncServer(t, srv.URL)
	a.SetToken(unsignedToken)

	got, err := a.GetManifest(context.Background(), &since)
	require.NoError(t, err)

	require.Len(t, got.Changes, 1)
	assert.Equal(t, "d1", got.Changes[0].EntityID)
	assert.True(t, got.Timestamp.Equal(manifestTS))
}

func TestGetManifest_FirstSyncOmitsSince(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("since"))
		_ = json.NewEncoder(w).Encode(models.ManifestResponse{Timestamp: time.Now().UTC()})
	}))
	defer srv.Close()

	a := newTestSyncServer(t, srv.URL)
	_, err := a.GetManifest(context.Background(), nil)
	require.NoError(t, err)
}

func TestGetManifest_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	a := newTestSyncServer(t, srv.URL)
	_, err := a.GetManifest(context.Background(), nil)

	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestGetManifest_TransportFailure(t *testing.T) {
	// closed server: connection refused
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	a := newTestSyncServer(t, srv.URL)
	_, err := a.GetManifest(context.Background(), nil)

	assert.ErrorIs(t, err, ErrServerUnavailable)
}

func TestPush_ReconcilesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/sync/push", r.URL.Path)

		var req models.PushRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Changes, 2)
		assert.False(t, req.ClientTimestamp.IsZero())

		_ = json.NewEncoder(w).Encode(models.PushResponse{
			AcceptedChangeIDs: []string{"t1"},
			Conflicts: []models.SyncConflict{{
				EntityType: models.EntityBookmark,
				EntityID:   "b1",
				Resolution: models.ResolutionServerWins,
			}},
		})
	}))
	defer srv.Close()

	a := newTestSyncServer(t, srv.URL)
	resp, err := a.Push(context.Background(), models.PushRequest{
		Changes: []models.SyncChange{
			{EntityType: models.EntityTag, EntityID: "t1", Operation: models.OpCreate},
			{EntityType: models.EntityBookmark, EntityID: "b1", Operation: models.OpUpdate},
		},
		ClientTimestamp: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"t1"}, resp.AcceptedChangeIDs)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, models.ResolutionServerWins, resp.Conflicts[0].Resolution)
}

func TestPush_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestSyncServer(t, srv.URL)
	_, err := a.Push(context.Background(), models.PushRequest{})

	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestAccountID(t *testing.T) {
	a := newTestSyncServer(t, "http://localhost:1")

	_, err := a.AccountID()
	assert.ErrorIs(t, err, ErrNoToken)

	a.SetToken(unsignedToken)
	got, err := a.AccountID()
	require.NoError(t, err)
	assert.Equal(t, "acc-42", got)

	a.SetToken("definitely-not-a-jwt")
	_, err = a.AccountID()
	assert.Error(t, err)
}
