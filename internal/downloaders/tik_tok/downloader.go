package tiktok

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"golang.org/x/time/rate"
)

// Хост должен закончиться сразу после домена, иначе tiktok.com.evil.example пройдёт проверку
var validURL = regexp.MustCompile(`(?i)^https?://(www\.)?(tiktok\.com|vm\.tiktok\.com|vt\.tiktok\.com)([/?#:]|$)`)

type downloader struct {
	client   *http.Client
	endpoint string
	base     *url.URL
	limiter  *rate.Limiter
}

type Option func(*downloader)

// WithRateLimit ограничивает число запросов к API в секунду, 0 - без ограничения
func WithRateLimit(perSecond float64) Option {
	return func(d *downloader) {
		if perSecond > 0 {
			d.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

func New(client *http.Client, endpoint string, opts ...Option) downloaders.IDownloader {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	d := &downloader{
		client:   client,
		endpoint: endpoint,
	}

	for _, opt := range opts {
		opt(d)
	}

	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		d.base = &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"}
	}

	return d
}

func (d downloader) Download(ctx context.Context, url string) (*downloaders.Video, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
		}
	}

	payload, err := fetchMetadata(ctx, d.client, d.endpoint, url)
	if err != nil {
		return nil, err
	}

	video := toVideo(payload, d.base)
	if video.VideoURL == "" {
		return nil, downloaders.ErrMissingMediaURL
	}

	return video, nil
}

func (downloader) Valid(url string) bool {
	return validURL.MatchString(url)
}

func (downloader) Platform() string {
	return "tiktok"
}
