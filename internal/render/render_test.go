package render_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/locale"
	"github.com/StounhandJ/tiktok_page/internal/render"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/stretchr/testify/require"
)

func resultSnapshot(video downloaders.Video) session.Snapshot {
	s := session.New()
	token, _ := s.Begin("https://www.tiktok.com/@u/video/1", "tiktok")
	s.Complete(token, &video, nil)

	return s.Snapshot()
}

func renderString(t *testing.T, mode transfer.Mode, snap session.Snapshot) string {
	t.Helper()

	r, err := render.New(locale.New(locale.English), mode)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, snap))

	return buf.String()
}

func TestUntrustedTextIsEscaped(t *testing.T) {
	snap := resultSnapshot(downloaders.Video{
		Title:        "<script>alert(1)</script>",
		Author:       `"><img src=x onerror=alert(1)>`,
		ThumbnailURL: `javascript:alert(1)`,
		VideoURL:     "https://cdn.example/v.mp4",
	})

	html := renderString(t, transfer.ModeLink, snap)

	require.NotContains(t, html, "<script>alert(1)</script>")
	require.Contains(t, html, "&lt;script&gt;alert(1)&lt;/script&gt;")
	require.NotContains(t, html, "<img src=x")
	require.NotContains(t, html, `src="javascript:`)
}

func TestLinkModeRendersDownloadAnchor(t *testing.T) {
	snap := resultSnapshot(downloaders.Video{
		Title:     "Cats",
		Author:    "alice",
		VideoURL:  "https://cdn.example/v.mp4",
		PlayCount: "2500000",
		LikeCount: "1500",
		Duration:  65,
	})

	html := renderString(t, transfer.ModeLink, snap)

	require.Contains(t, html, `href="https://cdn.example/v.mp4" download`)
	require.Contains(t, html, "2.5M views")
	require.Contains(t, html, "1.5K likes")
	require.Contains(t, html, "@alice")
	require.Contains(t, html, "01:05")
	require.NotContains(t, html, "EventSource")
}

func TestSyntheticModeRendersButtonAndProgress(t *testing.T) {
	snap := resultSnapshot(downloaders.Video{VideoURL: "https://cdn.example/v.mp4"})

	html := renderString(t, transfer.ModeSynthetic, snap)

	require.Contains(t, html, `href="/file"`)
	require.Contains(t, html, `id="downloadProgress"`)
	require.Contains(t, html, "EventSource('/progress')")
	require.NotContains(t, html, `href="https://cdn.example/v.mp4"`)
}

func TestPlaceholdersForMissingTitleAndAuthor(t *testing.T) {
	r, err := render.New(locale.New(locale.English), transfer.ModeLink)
	require.NoError(t, err)

	page := r.View(resultSnapshot(downloaders.Video{VideoURL: "https://cdn.example/v.mp4", PlayCount: "abc"}))
	require.NotNil(t, page.Video)
	require.Equal(t, "TikTok Video", page.Video.Title)
	require.Equal(t, "Unknown", page.Video.Author)
	require.Equal(t, "abc", page.Video.Views)
	require.Empty(t, page.Video.Likes)
}

func TestExactlyOnePanelPerState(t *testing.T) {
	r, err := render.New(locale.New(locale.English), transfer.ModeLink)
	require.NoError(t, err)

	s := session.New()
	page := r.View(s.Snapshot())
	require.False(t, page.Loading)
	require.Nil(t, page.Video)
	require.Empty(t, page.Error)
	require.False(t, page.Disabled)

	token, err := s.Begin("https://www.tiktok.com/@u/video/1", "tiktok")
	require.NoError(t, err)

	page = r.View(s.Snapshot())
	require.True(t, page.Loading)
	require.True(t, page.Disabled)
	require.Nil(t, page.Video)

	s.Complete(token, nil, downloaders.ErrPayload)

	page = r.View(s.Snapshot())
	require.False(t, page.Loading)
	require.False(t, page.Disabled)
	require.Equal(t, "The API returned an invalid response.", page.Error)
}

func TestIdleNoticeForInvalidInput(t *testing.T) {
	s := session.New()
	require.NoError(t, s.Reject("nope", downloaders.ErrInvalidURL))

	html := renderString(t, transfer.ModeLink, s.Snapshot())
	require.Contains(t, html, `class="notice"`)
	require.True(t, strings.Contains(html, `value="nope"`))
	require.NotContains(t, html, `id="errorSection"`)
}
