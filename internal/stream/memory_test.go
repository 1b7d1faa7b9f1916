// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package stream

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
)

func TestMemorySource_OpenIsLatest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewMemorySource(MemoryConfig{})
	for i := 0; i < 3; i++ {
		if _, err := src.Append("commentary.enriched", []byte(fmt.Sprintf("old-%d", i))); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	pos, err := src.Open(ctx)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if pos.Sequence != 4 {
		t.Errorf("Open().Sequence = %d, want 4", pos.Sequence)
	}

	recs, next, err := src.Poll(ctx, pos, 10)
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("Poll() returned %d historical records, want 0", len(recs))
	}
	if next.Sequence != pos.Sequence {
		t.Errorf("empty Poll() moved sequence to %d", next.Sequence)
	}

	src.Append("commentary.enriched", []byte("new"))
	recs, next, err = src.Poll(ctx, next, 10)
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(recs) != 1 || string(recs[0].Data) != "new" || recs[0].Sequence != 4 {
		t.Errorf("Poll() = %+v, want the new record", recs)
	}
	if next.Sequence != 5 {
		t.Errorf("next.Sequence = %d, want 5", next.Sequence)
	}
}

func TestMemorySource_PollLimit(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewMemorySource(MemoryConfig{})
	pos, _ := src.Open(ctx)
	for i := 0; i < 5; i++ {
		src.Append("s", []byte{byte(i)})
	}

	var got []byte
	for i := 0; i < 5; i++ {
		recs, next, err := src.Poll(ctx, pos, 2)
		if err != nil {
			t.Fatalf("Poll() error = %v", err)
		}
		if len(recs) > 2 {
			t.Fatalf("Poll() returned %d records, limit 2", len(recs))
		}
		for _, r := range recs {
			got = append(got, r.Data[0])
		}
		pos = next
	}

	if string(got) != string([]byte{0, 1, 2, 3, 4}) {
		t.Errorf("records out of order: %v", got)
	}
}

func TestMemorySource_PositionExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	clock := newFakeClock()

	src := NewMemorySource(MemoryConfig{PositionTTL: 5 * time.Minute, Now: clock.Now})
	pos, _ := src.Open(ctx)

	clock.Advance(4 * time.Minute)
	_, next, err := src.Poll(ctx, pos, 1)
	if err != nil {
		t.Fatalf("Poll() within window error = %v", err)
	}

	clock.Advance(4 * time.Minute)
	if _, _, err := src.Poll(ctx, next, 1); err != nil {
		t.Errorf("Poll() with refreshed position error = %v", err)
	}

	if _, _, err := src.Poll(ctx, pos, 1); !errors.Is(err, ErrExpiredPosition) {
		t.Errorf("Poll() with stale position error = %v, want ErrExpiredPosition", err)
	}
}

func TestMemorySource_TrimmedPositionExpires(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewMemorySource(MemoryConfig{MaxRecords: 3})
	pos, _ := src.Open(ctx)
	for i := 0; i < 5; i++ {
		src.Append("s", []byte{byte(i)})
	}

	if got := src.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if _, _, err := src.Poll(ctx, pos, 1); !errors.Is(err, ErrExpiredPosition) {
		t.Errorf("Poll() at trimmed sequence error = %v, want ErrExpiredPosition", err)
	}
}

func TestMemorySource_PublishAndClose(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	src := NewMemorySource(MemoryConfig{})
	var pub message.Publisher = src
	pos, _ := src.Open(ctx)

	msgs := []*message.Message{
		message.NewMessage(watermill.NewUUID(), []byte("a")),
		message.NewMessage(watermill.NewUUID(), []byte("b")),
	}
	if err := pub.Publish("commentary.enriched", msgs...); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	recs, _, err := src.Poll(ctx, pos, 10)
	if err != nil {
		t.Fatalf("Poll() error = %v", err)
	}
	if len(recs) != 2 || recs[0].Subject != "commentary.enriched" {
		t.Errorf("Poll() = %+v", recs)
	}

	if err := pub.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := pub.Publish("x", msgs[0]); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Publish() after Close error = %v, want ErrSourceClosed", err)
	}
	if _, _, err := src.Poll(ctx, pos, 1); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Poll() after Close error = %v, want ErrSourceClosed", err)
	}
	if err := src.Health(ctx); !errors.Is(err, ErrSourceClosed) {
		t.Errorf("Health() after Close error = %v, want ErrSourceClosed", err)
	}
}

func TestMemorySource_CanceledContext(t *testing.T) {
	t.Parallel()

	src := NewMemorySource(MemoryConfig{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.Open(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Open() error = %v, want context.Canceled", err)
	}
}
