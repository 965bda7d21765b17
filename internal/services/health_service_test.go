package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeDataset bool

func (f fakeDataset) Loaded() bool { return bool(f) }

type fakeSessions int

func (f fakeSessions) ActiveSessions() int { return int(f) }

func TestHealthService_Readiness(t *testing.T) {
	tests := []struct {
		name     string
		dataset  DatasetSource
		sessions SessionCounter
		want     string
	}{
		{name: "loaded", dataset: fakeDataset(true), sessions: fakeSessions(2), want: "ready"},
		{name: "not loaded", dataset: fakeDataset(false), sessions: fakeSessions(0), want: "not_ready"},
		{name: "no dataset source", want: "not_ready"},
		{name: "websocket disabled", dataset: fakeDataset(true), want: "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hs := NewHealthService("v1.2.3", "", tt.dataset, tt.sessions, testLogger())
			status := hs.ReadinessCheck(context.Background())

			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, "v1.2.3", status.Version)
			assert.Contains(t, status.Services, "dataset")
		})
	}
}

func TestHealthService_LivenessAndVersion(t *testing.T) {
	hs := NewHealthService("dev", "2026-01-01T00:00:00Z", fakeDataset(true), nil, testLogger())

	assert.Equal(t, "ok", hs.HealthCheck(context.Background()).Status)

	live := hs.LivenessCheck(context.Background())
	assert.Equal(t, "alive", live.Status)
	assert.Contains(t, live.Runtime, "goroutines")

	v := hs.Version()
	assert.Equal(t, "dev", v["version"])
	assert.Equal(t, "2026-01-01T00:00:00Z", v["build_time"])
}
