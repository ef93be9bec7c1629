package session_test

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/stretchr/testify/require"
)

type fakeDownloader struct {
	calls atomic.Int32
	video *downloaders.Video
	err   error
	block chan struct{}
}

func (f *fakeDownloader) Download(_ context.Context, _ string) (*downloaders.Video, error) {
	f.calls.Add(1)

	if f.block != nil {
		<-f.block
	}

	return f.video, f.err
}

func (*fakeDownloader) Valid(url string) bool {
	return strings.HasPrefix(url, "https://www.tiktok.com/")
}

func (*fakeDownloader) Platform() string {
	return "tiktok"
}

const videoURL = "https://www.tiktok.com/@user/video/1"

func newController(d *fakeDownloader) *session.Controller {
	return session.NewController([]downloaders.IDownloader{d})
}

func TestEmptyInputDoesNotTouchNetwork(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		d := &fakeDownloader{}
		s := session.New()

		snap, err := newController(d).Submit(context.Background(), s, input)
		require.ErrorIs(t, err, downloaders.ErrEmptyInput)
		require.Zero(t, d.calls.Load())
		require.Equal(t, session.Idle, snap.State)
		require.Equal(t, downloaders.CategoryEmptyInput, snap.Category())
		require.False(t, snap.ControlsDisabled())
	}
}

func TestInvalidURLDoesNotTouchNetwork(t *testing.T) {
	d := &fakeDownloader{}
	s := session.New()

	snap, err := newController(d).Submit(context.Background(), s, "https://example.com/video")
	require.ErrorIs(t, err, downloaders.ErrInvalidURL)
	require.Zero(t, d.calls.Load())
	require.Equal(t, session.Idle, snap.State)
	require.Equal(t, downloaders.CategoryInvalidURL, snap.Category())
	require.Equal(t, "https://example.com/video", snap.Input)
}

func TestSuccessfulSubmitShowsResult(t *testing.T) {
	d := &fakeDownloader{video: &downloaders.Video{Title: "t", VideoURL: "https://cdn/v.mp4"}}
	s := session.New()

	snap, err := newController(d).Submit(context.Background(), s, "  "+videoURL+"  ")
	require.NoError(t, err)
	require.Equal(t, session.Result, snap.State)
	require.Equal(t, videoURL, snap.Input)
	require.Equal(t, "tiktok", snap.Platform)
	require.Equal(t, "t", snap.Video.Title)
	require.Equal(t, int32(1), d.calls.Load())
}

func TestMissingMediaURLNeverReachesResult(t *testing.T) {
	d := &fakeDownloader{video: &downloaders.Video{Title: "no link"}}
	s := session.New()

	snap, err := newController(d).Submit(context.Background(), s, videoURL)
	require.ErrorIs(t, err, downloaders.ErrMissingMediaURL)
	require.Equal(t, session.Error, snap.State)
	require.Nil(t, snap.Video)
	require.Equal(t, downloaders.CategoryMissingMediaURL, snap.Category())
}

func TestFetchFailureShowsError(t *testing.T) {
	d := &fakeDownloader{err: errors.Join(downloaders.ErrTransport, errors.New("dial tcp"))}
	s := session.New()

	snap, err := newController(d).Submit(context.Background(), s, videoURL)
	require.Error(t, err)
	require.Equal(t, session.Error, snap.State)
	require.Equal(t, downloaders.CategoryTransport, snap.Category())
	require.False(t, snap.ControlsDisabled())
}

func TestResetReturnsToIdle(t *testing.T) {
	for _, d := range []*fakeDownloader{
		{video: &downloaders.Video{VideoURL: "https://cdn/v.mp4"}},
		{err: downloaders.ErrPayload},
	} {
		s := session.New()
		_, _ = newController(d).Submit(context.Background(), s, videoURL)

		s.Reset()
		s.Reset()

		snap := s.Snapshot()
		require.Equal(t, session.Idle, snap.State)
		require.Empty(t, snap.Input)
		require.Nil(t, snap.Video)
		require.NoError(t, snap.Err)
		require.False(t, snap.ControlsDisabled())
	}
}

func TestStaleResponseIsDiscardedAfterReset(t *testing.T) {
	d := &fakeDownloader{
		video: &downloaders.Video{VideoURL: "https://cdn/v.mp4"},
		block: make(chan struct{}),
	}
	s := session.New()
	c := newController(d)

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.Submit(context.Background(), s, videoURL)
	}()

	require.Eventually(t, func() bool {
		return s.Snapshot().State == session.Loading
	}, time.Second, 5*time.Millisecond)
	require.True(t, s.Snapshot().ControlsDisabled())

	// второй запрос во время загрузки отклоняется
	_, err := c.Submit(context.Background(), s, videoURL)
	require.ErrorIs(t, err, session.ErrBusy)

	s.Reset()
	close(d.block)
	<-done

	snap := s.Snapshot()
	require.Equal(t, session.Idle, snap.State)
	require.Nil(t, snap.Video)
	require.Equal(t, int32(1), d.calls.Load())
}

func TestCompleteIgnoresWrongToken(t *testing.T) {
	s := session.New()

	token, err := s.Begin(videoURL, "tiktok")
	require.NoError(t, err)

	require.False(t, s.Complete(token+1, &downloaders.Video{VideoURL: "x"}, nil))
	require.Equal(t, session.Loading, s.Snapshot().State)

	require.True(t, s.Complete(token, &downloaders.Video{VideoURL: "x"}, nil))
	require.Equal(t, session.Result, s.Snapshot().State)

	// повторное завершение того же запроса ничего не меняет
	require.False(t, s.Complete(token, nil, downloaders.ErrPayload))
	require.Equal(t, session.Result, s.Snapshot().State)
}

func TestSubmitFromResultStartsNewAttempt(t *testing.T) {
	d := &fakeDownloader{video: &downloaders.Video{VideoURL: "https://cdn/v.mp4"}}
	s := session.New()
	c := newController(d)

	first, err := c.Submit(context.Background(), s, videoURL)
	require.NoError(t, err)

	second, err := c.Submit(context.Background(), s, videoURL)
	require.NoError(t, err)
	require.Greater(t, second.Token, first.Token)
	require.Equal(t, session.Result, second.State)
}

func TestViewStateString(t *testing.T) {
	require.Equal(t, "idle", session.Idle.String())
	require.Equal(t, "loading", session.Loading.String())
	require.Equal(t, "result", session.Result.String())
	require.Equal(t, "error", session.Error.String())
}

func TestStartEntersLoadingBeforeFetch(t *testing.T) {
	d := &fakeDownloader{video: &downloaders.Video{VideoURL: "https://cdn.example/v.mp4"}}
	s := session.New()

	run, err := newController(d).Start(s, videoURL)
	require.NoError(t, err)
	require.Equal(t, session.Loading, s.Snapshot().State)
	require.Zero(t, d.calls.Load())

	snap, err := run(context.Background())
	require.NoError(t, err)
	require.Equal(t, session.Result, snap.State)
	require.EqualValues(t, 1, d.calls.Load())
}

func TestStartRejectsInvalidInputSynchronously(t *testing.T) {
	d := &fakeDownloader{}
	s := session.New()

	run, err := newController(d).Start(s, "not a url")
	require.ErrorIs(t, err, downloaders.ErrInvalidURL)
	require.Nil(t, run)
	require.Equal(t, session.Idle, s.Snapshot().State)
}
