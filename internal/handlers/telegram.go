package handlers

import (
	"errors"
	"fmt"
	"html"
	"strings"
	"unicode/utf8"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/locale"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/utils"
	telegramUtils "github.com/StounhandJ/tiktok_page/internal/utils/telegram"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

const (
	captionLimit = 1024
	authorLimit  = 64
)

// Стартовое сообщение
func (h *Handler) StartCommand(ctx *th.Context, update telego.Update) error {
	h.sendMessage(ctx, false, update, html.EscapeString(h.catalog.Text(locale.KeyGreeting)))

	return nil
}

func (h *Handler) InlineVideo(ctx *th.Context, query telego.InlineQuery) error {
	url := strings.TrimSpace(query.Query)

	// Проверка валидности url без обращения к API
	if _, _, err := h.controller.Resolve(url); err != nil {
		return answerEmpty(ctx, query.ID)
	}

	// У inline запроса нет истории, каждый раз новая сессия
	snap, err := h.controller.Submit(ctx, session.New(), url)
	if err != nil {
		return answerEmpty(ctx, query.ID)
	}

	h.countServed()

	return ctx.Bot().AnswerInlineQuery(ctx, &telego.AnswerInlineQueryParams{
		InlineQueryID: query.ID,
		Results:       []telego.InlineQueryResult{h.inlineResult(url, snap.Video)},
		CacheTime:     300,
	})
}

// MessageVideo - ссылка обычным сообщением: сначала сообщение о загрузке,
// затем оно заменяется роликом или текстом ошибки
func (h *Handler) MessageVideo(ctx *th.Context, update telego.Update) error {
	text := telegramUtils.GetMessageText(update)
	s := h.store.Named(fmt.Sprintf("tg:%d", telegramUtils.GetChatID(update)))

	run, err := h.controller.Start(s, text)
	switch {
	case errors.Is(err, session.ErrBusy):
		h.sendMessage(ctx, true, update, html.EscapeString(h.catalog.Text(locale.KeyBusy)))

		return nil
	case err != nil:
		h.sendMessage(ctx, true, update, html.EscapeString(h.catalog.ErrorText(downloaders.Classify(err))))

		return nil
	}

	messageID := h.sendMessage(ctx, true, update, html.EscapeString(h.catalog.Text(locale.KeyLoading)))

	snap, err := run(ctx)
	if err != nil {
		return h.replace(ctx, update, messageID, html.EscapeString(h.catalog.ErrorText(downloaders.Classify(err))))
	}

	h.countServed()

	return h.replace(
		ctx, update, messageID,
		h.caption(snap.Video),
		telegramUtils.InputVideo{URL: snap.Video.VideoURL, Name: snap.Video.Title},
		h.originalKeyboard(snap.Input),
	)
}

// replace меняет сообщение о загрузке на итог. Если сообщения о загрузке нет
// или его не удалось изменить, итог отправляется новым сообщением.
func (h *Handler) replace(ctx *th.Context, update telego.Update, messageID int, text string, args ...any) error {
	if messageID != 0 {
		err := h.editMessage(ctx, update, messageID, text, args...)
		if err == nil {
			return nil
		}

		utils.Log.WithError(err).Warn("не удалось изменить сообщение о загрузке")
	} else {
		utils.Log.Warn("нет сообщения о загрузке, итог отправляется заново")
	}

	if h.sendMessage(ctx, true, update, text, args...) == 0 {
		return fmt.Errorf("telegram: итог не доставлен в чат %d", telegramUtils.GetChatID(update))
	}

	return nil
}

func answerEmpty(ctx *th.Context, queryID string) error {
	return ctx.Bot().AnswerInlineQuery(ctx, &telego.AnswerInlineQueryParams{
		InlineQueryID: queryID,
		Results:       []telego.InlineQueryResult{},
		CacheTime:     0,
	})
}

func (h *Handler) inlineResult(url string, video *downloaders.Video) *telego.InlineQueryResultVideo {
	title := utils.StringNotEmptyCoalesce(video.Title, h.catalog.Text(locale.KeyDefaultTitle))
	stats := h.stats(video)

	return &telego.InlineQueryResultVideo{
		Type:                  telego.ResultTypeVideo,
		ID:                    video.VideoURL[:min(64, len(video.VideoURL))],
		Title:                 telegramUtils.Truncate(title, 200),
		Caption:               telegramUtils.Truncate(strings.TrimSpace(fmt.Sprintf("%s\n%s", title, stats)), 1024),
		VideoURL:              video.VideoURL,
		ThumbnailURL:          utils.StringNotEmptyCoalesce(video.ThumbnailURL, video.VideoURL),
		MimeType:              utils.StringNotEmptyCoalesce(video.MimeType, "video/mp4"),
		ShowCaptionAboveMedia: true,
		Description:           strings.TrimSpace(fmt.Sprintf("%s %s", h.duration(video), stats)),
		ReplyMarkup:           h.originalKeyboard(url),
	}
}

// caption - HTML подпись к ролику, данные API экранируются.
// Обрезается исходный текст до экранирования, чтобы не порвать теги и сущности.
func (h *Handler) caption(video *downloaders.Video) string {
	title := utils.StringNotEmptyCoalesce(video.Title, h.catalog.Text(locale.KeyDefaultTitle))
	author := utils.StringNotEmptyCoalesce(video.Author, h.catalog.Text(locale.KeyUnknownAuthor))

	tail := "</b>\n@" + escapeWithin(author, authorLimit)
	if stats := h.stats(video); stats != "" {
		tail += "\n" + html.EscapeString(stats)
	}

	budget := captionLimit - utf8.RuneCountInString("<b>") - utf8.RuneCountInString(tail)

	return "<b>" + escapeWithin(title, budget) + tail
}

// escapeWithin экранирует s целыми рунами, пока результат укладывается в limit рун
func escapeWithin(s string, limit int) string {
	var b strings.Builder

	used := 0

	for _, r := range s {
		escaped := html.EscapeString(string(r))

		n := utf8.RuneCountInString(escaped)
		if used+n > limit {
			break
		}

		b.WriteString(escaped)

		used += n
	}

	return b.String()
}

func (h *Handler) stats(video *downloaders.Video) string {
	parts := make([]string, 0, 2)

	if video.PlayCount != "" {
		parts = append(parts, fmt.Sprintf("👁️ %s %s", utils.FormatCount(video.PlayCount), h.catalog.Text(locale.KeyViews)))
	}

	if video.LikeCount != "" {
		parts = append(parts, fmt.Sprintf("❤️ %s %s", utils.FormatCount(video.LikeCount), h.catalog.Text(locale.KeyLikes)))
	}

	return strings.Join(parts, " ")
}

func (h *Handler) duration(video *downloaders.Video) string {
	if video.Duration <= 0 {
		return ""
	}

	return utils.FormatSecondsToMMSS(video.Duration)
}

func (h *Handler) originalKeyboard(url string) *telego.InlineKeyboardMarkup {
	return tu.InlineKeyboard(tu.InlineKeyboardRow(tu.InlineKeyboardButton(h.catalog.Text(locale.KeyOriginal)).WithURL(url)))
}
