package tiktok

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/valyala/fastjson"
)

// accessor достаёт одно значение из ответа, "" если его нет
type accessor func(v *fastjson.Value) string

// fieldChain - кандидаты в порядке приоритета, побеждает первый непустой
type fieldChain []accessor

func (c fieldChain) first(v *fastjson.Value) string {
	for _, get := range c {
		if s := get(v); s != "" {
			return s
		}
	}

	return ""
}

func field(keys ...string) accessor {
	return func(v *fastjson.Value) string {
		return text(v.Get(keys...))
	}
}

// text приводит строку, число или массив (первый непустой элемент) к строке.
// Объекты и bool считаются отсутствием значения.
func text(v *fastjson.Value) string {
	if v == nil {
		return ""
	}

	switch v.Type() {
	case fastjson.TypeString:
		return strings.TrimSpace(string(v.GetStringBytes()))
	case fastjson.TypeNumber:
		return v.String()
	case fastjson.TypeArray:
		for _, item := range v.GetArray() {
			if s := text(item); s != "" {
				return s
			}
		}
	}

	return ""
}

var (
	titleChain = fieldChain{field("title"), field("desc"), field("description")}

	authorChain = fieldChain{
		field("author", "nickname"),
		field("author", "unique_id"),
		field("author"),
		field("username"),
		field("author_name"),
	}

	thumbnailChain = fieldChain{field("cover"), field("thumbnail"), field("origin_cover"), field("dynamic_cover")}

	mediaChain = fieldChain{
		field("video"),
		field("download"),
		field("play"),
		field("wmplay"),
		field("hdplay"),
		field("url"),
	}

	playCountChain = fieldChain{field("play_count"), field("playCount"), field("stats", "playCount"), field("views")}

	likeCountChain = fieldChain{
		field("digg_count"),
		field("like_count"),
		field("likes"),
		field("stats", "diggCount"),
		field("like"),
	}
)

func toVideo(payload *fastjson.Value, base *url.URL) *downloaders.Video {
	video := &downloaders.Video{
		Title:        titleChain.first(payload),
		Author:       authorChain.first(payload),
		ThumbnailURL: resolve(base, thumbnailChain.first(payload)),
		VideoURL:     resolve(base, mediaChain.first(payload)),
		MimeType:     "video/mp4",
		PlayCount:    playCountChain.first(payload),
		LikeCount:    likeCountChain.first(payload),
	}

	if d, err := strconv.Atoi(text(payload.Get("duration"))); err == nil && d > 0 {
		video.Duration = d
	}

	return video
}

// resolve дописывает origin API к относительным ссылкам (tikwm отдаёт /video/media/...)
func resolve(base *url.URL, raw string) string {
	if raw == "" || base == nil {
		return raw
	}

	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() {
		return raw
	}

	return base.ResolveReference(u).String()
}
