package puzzlefeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vytor/sense/internal/models"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    int
		wantErr bool
	}{
		{"bare array", `[{"date":"2026-10-17","answer":"cinnamon","category":"smell"}]`, 1, false},
		{"envelope", `{"puzzles":[{"date":"2026-10-17"},{"date":"2026-10-18"}]}`, 2, false},
		{"empty array", `[]`, 0, false},
		{"envelope without puzzles", `{"items":[]}`, 0, true},
		{"garbage", `<html>`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"puzzles":[{"date":"2026-10-17","answer":"velvet","category":"texture"}]}`))
	}))
	defer srv.Close()

	puzzles, err := New(time.Second).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, puzzles, 1)
	assert.Equal(t, "velvet", puzzles[0].Answer)
	assert.Equal(t, models.CategoryTexture, puzzles[0].Category)
}

func TestFetch_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	defer srv.Close()

	_, err := New(time.Second).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "feed status 410")
}
