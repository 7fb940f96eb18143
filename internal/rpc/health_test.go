package rpc_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/riftkeep/matchmaker/internal/rpc"
)

// fakeWatchServer is a minimal healthpb.Health_WatchServer double: only
// Context and Send are exercised by HealthService.Watch.
type fakeWatchServer struct {
	grpc.ServerStream
	ctx context.Context

	mu   sync.Mutex
	recv []*healthpb.HealthCheckResponse
}

func (f *fakeWatchServer) Context() context.Context { return f.ctx }

func (f *fakeWatchServer) Send(resp *healthpb.HealthCheckResponse) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recv = append(f.recv, resp)
	return nil
}

func (f *fakeWatchServer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.recv)
}

func (f *fakeWatchServer) SetHeader(metadata.MD) error  { return nil }
func (f *fakeWatchServer) SendHeader(metadata.MD) error { return nil }
func (f *fakeWatchServer) SetTrailer(metadata.MD)       {}

// TestHealthService_Watch_ReemitsAtFloorRate asserts spec.md §6's "emits the
// current status at ≥ 5 Hz" requirement: at least 5 messages must arrive
// within 1 second of the service reporting a status, with no status change
// required to trigger them.
func TestHealthService_Watch_ReemitsAtFloorRate(t *testing.T) {
	h := rpc.NewHealthService("matchmaker")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	stream := &fakeWatchServer{ctx: ctx}

	done := make(chan error, 1)
	go func() {
		done <- h.Watch(&healthpb.HealthCheckRequest{Service: "matchmaker"}, stream)
	}()

	require.Eventually(t, func() bool {
		return stream.count() >= 5
	}, time.Second, 10*time.Millisecond, "expected at least 5 Watch messages within 1 second")

	cancel()
	<-done

	for _, resp := range stream.recvSnapshot() {
		require.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.Status)
	}
}

func (f *fakeWatchServer) recvSnapshot() []*healthpb.HealthCheckResponse {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*healthpb.HealthCheckResponse, len(f.recv))
	copy(out, f.recv)
	return out
}
