package session

import (
	"context"
	"strings"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/utils"
)

// Controller проводит запрос по цепочке: проверка ввода -> загрузчик -> Complete
type Controller struct {
	downloaders []downloaders.IDownloader
}

func NewController(downloaders []downloaders.IDownloader) *Controller {
	return &Controller{
		downloaders: downloaders,
	}
}

// Resolve проверяет ввод и подбирает загрузчик. Сеть не используется.
func (c *Controller) Resolve(raw string) (string, downloaders.IDownloader, error) {
	url := strings.TrimSpace(raw)
	if url == "" {
		return "", nil, downloaders.ErrEmptyInput
	}

	for _, d := range c.downloaders {
		if d.Valid(url) {
			return url, d, nil
		}
	}

	return url, nil, downloaders.ErrInvalidURL
}

// Start проверяет ввод и переводит сессию в Loading. Сам запрос к API выполняет
// возвращённая функция, её можно запускать в отдельной горутине.
func (c *Controller) Start(s *Session, raw string) (func(ctx context.Context) (Snapshot, error), error) {
	url, downloader, err := c.Resolve(raw)
	if err != nil {
		if rerr := s.Reject(url, err); rerr != nil {
			return nil, rerr
		}

		utils.LogDownloadError(url, err)

		return nil, err
	}

	token, err := s.Begin(url, downloader.Platform())
	if err != nil {
		return nil, err
	}

	return func(ctx context.Context) (Snapshot, error) {
		video, err := downloader.Download(ctx, url)
		if err == nil && (video == nil || video.VideoURL == "") {
			err = downloaders.ErrMissingMediaURL
		}

		if err != nil {
			utils.LogDownloadError(url, err)
		}

		if !s.Complete(token, video, err) {
			utils.Log.WithField("url", url).Debug("устаревший ответ отброшен")
		}

		return s.Snapshot(), err
	}, nil
}

// Submit выполняет одну попытку для сессии. Возвращённая ошибка - ошибка этой попытки
// (ErrBusy, если предыдущий запрос ещё идёт).
func (c *Controller) Submit(ctx context.Context, s *Session, raw string) (Snapshot, error) {
	run, err := c.Start(s, raw)
	if err != nil {
		return s.Snapshot(), err
	}

	return run(ctx)
}
