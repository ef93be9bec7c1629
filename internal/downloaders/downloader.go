package downloaders

import "context"

type IDownloader interface {
	Download(ctx context.Context, url string) (*Video, error)
	Valid(url string) bool
	// Platform используется в имени сохраняемого файла
	Platform() string
}

// Video - нормализованные данные ролика, собираются заново на каждый запрос
type Video struct {
	Title        string
	Author       string
	ThumbnailURL string
	VideoURL     string
	MimeType     string
	// Счётчики хранятся как пришли из API, форматируются при выводе
	PlayCount string
	LikeCount string
	Duration  int
}

func (v Video) HasStats() bool {
	return v.PlayCount != "" || v.LikeCount != ""
}
