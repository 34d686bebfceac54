// SPDX-FileCopyrightText: © 2025 DSLab - Fondazione Bruno Kessler
//
// SPDX-License-Identifier: Apache-2.0

package catalogue_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scc-digitalhub/scicat-go-sdk/sdk/config"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/model"
	"github.com/scc-digitalhub/scicat-go-sdk/sdk/services/catalogue"
)

func newService(t *testing.T, handler http.Handler) (*catalogue.Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	svc, err := catalogue.NewService(context.Background(), config.Config{
		Catalogue: config.CatalogueConfig{
			BaseURL:     srv.URL,
			AccessToken: config.Secret("test-token"),
		},
	})
	require.NoError(t, err)
	return svc, srv
}

func TestNewServiceNeedsBaseURL(t *testing.T) {
	_, err := catalogue.NewService(context.Background(), config.Config{})
	assert.Error(t, err)
}

func TestGetDataset(t *testing.T) {
	pid := model.NewPID("PID.prefix", "1234")
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "GET", r.Method)
		assert.Equal(t, "/datasets/PID.prefix%2F1234", r.URL.EscapedPath())
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(model.DownloadDataset{
			PID:   &pid,
			Type:  model.DatasetTypeRaw,
			Owner: "ponder",
		})
	}))

	got, err := svc.GetDataset(context.Background(), pid)
	require.NoError(t, err)
	assert.Equal(t, "ponder", got.Owner)
	require.NotNil(t, got.PID)
	assert.Equal(t, pid, *got.PID)
}

func TestGetDatasetNotFound(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"dataset not found"}`))
	}))

	_, err := svc.GetDataset(context.Background(), model.ParsePID("nope"))
	require.Error(t, err)
	assert.True(t, catalogue.IsNotFound(err))

	var ce *catalogue.CommError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, 404, ce.StatusCode)
	assert.Contains(t, ce.Error(), "dataset not found")
	assert.NotContains(t, ce.Error(), "test-token")
}

func TestCreateDatasetReturnsFinalizedRecord(t *testing.T) {
	assigned := model.NewPID("PID.prefix", "assigned-by-server")
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.Equal(t, "/datasets", r.URL.Path)

		var up model.UploadDataset
		require.NoError(t, json.NewDecoder(r.Body).Decode(&up))
		assert.Equal(t, "faculty", up.OwnerGroup)

		json.NewEncoder(w).Encode(model.DownloadDataset{
			PID:        &assigned,
			Type:       up.Type,
			Owner:      up.Owner,
			OwnerGroup: up.OwnerGroup,
		})
	}))

	got, err := svc.CreateDataset(context.Background(), model.UploadDataset{
		Type:       model.DatasetTypeRaw,
		Owner:      "ponder",
		OwnerGroup: "faculty",
	})
	require.NoError(t, err)
	require.NotNil(t, got.PID)
	assert.Equal(t, assigned, *got.PID)
}

func TestOrigDatablocks(t *testing.T) {
	pid := model.NewPID("PID.prefix", "1234")
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == "GET":
			assert.Equal(t, "/datasets/PID.prefix%2F1234/origdatablocks", r.URL.EscapedPath())
			json.NewEncoder(w).Encode([]model.DownloadOrigDatablock{{ID: "b1", Size: 13}})
		case r.Method == "POST":
			assert.Equal(t, "/origdatablocks", r.URL.Path)
			var block model.UploadOrigDatablock
			require.NoError(t, json.NewDecoder(r.Body).Decode(&block))
			assert.Equal(t, pid, block.DatasetID)
			json.NewEncoder(w).Encode(model.DownloadOrigDatablock{ID: "b2", DatasetID: &block.DatasetID})
		}
	}))

	blocks, err := svc.GetOrigDatablocks(context.Background(), pid)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "b1", blocks[0].ID)

	created, err := svc.CreateOrigDatablock(context.Background(), model.UploadOrigDatablock{DatasetID: pid})
	require.NoError(t, err)
	assert.Equal(t, "b2", created.ID)
}

func TestAttachments(t *testing.T) {
	pid := model.NewPID("PID.prefix", "1234")
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/datasets/PID.prefix%2F1234/attachments", r.URL.EscapedPath())
		switch r.Method {
		case "GET":
			json.NewEncoder(w).Encode([]model.DownloadAttachment{{Caption: "thumbnail"}})
		case "POST":
			var att model.UploadAttachment
			require.NoError(t, json.NewDecoder(r.Body).Decode(&att))
			json.NewEncoder(w).Encode(model.DownloadAttachment{ID: "a1", Caption: att.Caption})
		}
	}))

	atts, err := svc.GetAttachments(context.Background(), pid)
	require.NoError(t, err)
	require.Len(t, atts, 1)
	assert.Equal(t, "thumbnail", atts[0].Caption)

	created, err := svc.CreateAttachment(context.Background(), pid, model.UploadAttachment{Caption: "new"})
	require.NoError(t, err)
	assert.Equal(t, "a1", created.ID)
}

func TestLoginFallsBackToDirectoryEndpoint(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "ponder", req["username"])

		switch r.URL.Path {
		case "/Users/login":
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"message":"no such functional account"}`))
		case "/auth/msad":
			json.NewEncoder(w).Encode(map[string]string{"access_token": "ldap-token"})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))

	token, err := svc.Login(context.Background(), "ponder", config.Secret("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, "ldap-token", token.Reveal())
}

func TestLoginDirect(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/Users/login", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]string{"id": "functional-token"})
	}))

	token, err := svc.Login(context.Background(), "ponder", config.Secret("hunter2"))
	require.NoError(t, err)
	assert.Equal(t, "functional-token", token.Reveal())
}

func TestLoginFailureRedactsPassword(t *testing.T) {
	svc, _ := newService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"invalid credentials"}`))
	}))

	_, err := svc.Login(context.Background(), "ponder", config.Secret("hunter2"))
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "hunter2")
}
