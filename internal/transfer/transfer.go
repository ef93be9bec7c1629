package transfer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/utils"
)

type Mode string

const (
	// ModeLink - обычная ссылка с атрибутом download, файл качает браузер
	ModeLink Mode = "link"
	// ModeSynthetic - кнопка, файл отдаётся через /file с готовым именем и имитацией прогресса
	ModeSynthetic Mode = "synthetic"
)

func ParseMode(s string) Mode {
	if Mode(strings.ToLower(strings.TrimSpace(s))) == ModeSynthetic {
		return ModeSynthetic
	}

	return ModeLink
}

// Filename собирает имя вида <platform>-<author|video>-<unix ms>.mp4
func Filename(platform, author string, now time.Time) string {
	platform = utils.SanitizeFileName(strings.TrimSpace(platform))
	if platform == "" {
		platform = "video"
	}

	name := utils.SanitizeFileName(strings.TrimSpace(author))
	if name == "" {
		name = "video"
	}

	return fmt.Sprintf("%s-%s-%d.mp4", platform, name, now.UnixMilli())
}

// Open открывает поток файла на стороне CDN. Ошибка означает, что нужно
// отправить пользователя по прямой ссылке.
func Open(ctx context.Context, client *http.Client, mediaURL string) (io.ReadCloser, int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, mediaURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 YaBrowser/25.10.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if err := resp.Body.Close(); err != nil {
			utils.Log.Error(err)
		}

		return nil, 0, &downloaders.HTTPStatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	return resp.Body, resp.ContentLength, nil
}
