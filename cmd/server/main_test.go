package main

import (
	"context"
	"testing"
	"time"
)

func TestStartAuditDumpLoopWithoutStorage(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		startAuditDumpLoop(ctx, nil, nil, time.Hour)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("startAuditDumpLoop must return when storage is not configured")
	}
}
