package transfer_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/stretchr/testify/require"
)

func TestFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	require.Equal(t, "tiktok-alice-1700000000123.mp4", transfer.Filename("tiktok", "alice", now))
	require.Equal(t, "tiktok-video-1700000000123.mp4", transfer.Filename("tiktok", "  ", now))
	require.Equal(t, "tiktok-a_b-1700000000123.mp4", transfer.Filename("tiktok", "a/b", now))
	require.Equal(t, "video-video-1700000000123.mp4", transfer.Filename("", "", now))
}

func TestParseMode(t *testing.T) {
	require.Equal(t, transfer.ModeSynthetic, transfer.ParseMode(" Synthetic "))
	require.Equal(t, transfer.ModeLink, transfer.ParseMode("link"))
	require.Equal(t, transfer.ModeLink, transfer.ParseMode("something"))
}

func TestSimulateIsCappedThenSnapsAndGoesIdle(t *testing.T) {
	opts := transfer.ProgressOptions{
		Tick:       time.Millisecond,
		SnapAfter:  60 * time.Millisecond,
		ResetAfter: 5 * time.Millisecond,
		Step:       func() int { return 25 },
	}

	var events []transfer.Event

	err := transfer.Simulate(context.Background(), opts, func(e transfer.Event) error {
		events = append(events, e)

		return nil
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(events), 3)

	last := events[len(events)-1]
	require.True(t, last.Idle)
	require.Equal(t, 100, events[len(events)-2].Percent)

	prev := 0
	for _, e := range events[:len(events)-2] {
		require.LessOrEqual(t, e.Percent, 90)
		require.GreaterOrEqual(t, e.Percent, prev)
		prev = e.Percent
	}
}

func TestSimulateStopsWhenEmitFails(t *testing.T) {
	gone := errors.New("client gone")
	calls := 0

	err := transfer.Simulate(context.Background(), transfer.DefaultProgressOptions(), func(transfer.Event) error {
		calls++

		return gone
	})
	require.ErrorIs(t, err, gone)
	require.Equal(t, 1, calls)
}

func TestSimulateStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := transfer.DefaultProgressOptions()
	err := transfer.Simulate(ctx, opts, func(transfer.Event) error { return nil })
	require.ErrorIs(t, err, context.Canceled)
}

func TestEventSSE(t *testing.T) {
	require.Equal(t, "event: progress\ndata: 42\n\n", transfer.Event{Percent: 42}.SSE())
	require.Equal(t, "event: idle\ndata: 100\n\n", transfer.Event{Percent: 100, Idle: true}.SSE())
}

func TestOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)

			return
		}

		_, _ = w.Write([]byte("mp4-bytes"))
	}))
	defer srv.Close()

	body, size, err := transfer.Open(context.Background(), srv.Client(), srv.URL+"/v.mp4")
	require.NoError(t, err)

	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.NoError(t, body.Close())
	require.Equal(t, "mp4-bytes", string(data))
	require.Equal(t, int64(len("mp4-bytes")), size)

	_, _, err = transfer.Open(context.Background(), srv.Client(), srv.URL+"/missing")
	require.ErrorIs(t, err, downloaders.ErrHTTPStatus)

	_, _, err = transfer.Open(context.Background(), srv.Client(), "http://127.0.0.1:1/none")
	require.ErrorIs(t, err, downloaders.ErrTransport)
}
