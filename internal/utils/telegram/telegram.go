package telegram

import (
	"github.com/StounhandJ/tiktok_page/internal/utils"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	tu "github.com/mymmrac/telego/telegoutil"
)

const (
	messageLimit = 4096
	captionLimit = 1024
)

// InputVideo - ролик по прямой ссылке, Telegram сам забирает файл
type InputVideo struct {
	URL  string
	Name string
}

// Получение ID отправителя сообщения
func GetUserID(update telego.Update) int64 {
	if update.Message == nil {
		return 0
	}

	if update.Message.From != nil && !update.Message.From.IsBot {
		return update.Message.From.ID
	}

	return update.Message.Chat.ID
}

// Получение ID чата
func GetChatID(update telego.Update) int64 {
	if update.Message != nil {
		return update.Message.Chat.ID
	}

	return 0
}

func GetMessageText(update telego.Update) string {
	if update.Message != nil {
		return update.Message.Text
	}

	return ""
}

func GetCurrentMessageID(update telego.Update) int {
	if update.Message != nil {
		return update.Message.MessageID
	}

	return 0
}

// Truncate обрезает строку по рунам
func Truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) > limit {
		return string(runes[:limit])
	}

	return s
}

// SendMessage отправляет HTML сообщение в чат. В args можно передать
// telego.ReplyMarkup или InputVideo. Возвращает ID сообщения, 0 при ошибке.
func SendMessage(ctx *th.Context, isReply bool, update telego.Update, text string, args ...any) int {
	chatID := tu.ID(GetChatID(update))

	var (
		markup telego.ReplyMarkup
		video  *InputVideo
		reply  *telego.ReplyParameters
	)

	for _, v := range args {
		switch arg := v.(type) {
		case telego.ReplyMarkup:
			markup = arg
		case InputVideo:
			video = &arg
		}
	}

	if isReply {
		reply = &telego.ReplyParameters{
			MessageID:                GetCurrentMessageID(update),
			ChatID:                   chatID,
			AllowSendingWithoutReply: true,
		}
	}

	if video != nil {
		msg, err := ctx.Bot().SendVideo(ctx, &telego.SendVideoParams{
			ChatID:          chatID,
			ReplyParameters: reply,
			ReplyMarkup:     markup,
			Caption:         Truncate(text, captionLimit),
			ParseMode:       telego.ModeHTML,
			Video:           tu.FileFromURL(video.URL),
		})
		if err != nil {
			utils.Log.Error(err)

			return 0
		}

		return msg.MessageID
	}

	msg, err := ctx.Bot().SendMessage(ctx, &telego.SendMessageParams{
		ChatID:          chatID,
		Text:            Truncate(text, messageLimit),
		ParseMode:       telego.ModeHTML,
		ReplyParameters: reply,
		ReplyMarkup:     markup,
		LinkPreviewOptions: &telego.LinkPreviewOptions{
			IsDisabled: true,
		},
	})
	if err != nil {
		utils.Log.Error(err)

		return 0
	}

	return msg.MessageID
}

// EditMessage заменяет текст сообщения. С InputVideo в args сообщение
// превращается в видео с подписью text.
func EditMessage(ctx *th.Context, update telego.Update, messageID int, text string, args ...any) error {
	if messageID == 0 {
		return nil
	}

	chatID := tu.ID(GetChatID(update))

	var (
		markup *telego.InlineKeyboardMarkup
		video  *InputVideo
	)

	for _, v := range args {
		switch arg := v.(type) {
		case *telego.InlineKeyboardMarkup:
			markup = arg
		case InputVideo:
			video = &arg
		}
	}

	if video == nil {
		_, err := ctx.Bot().EditMessageText(ctx, &telego.EditMessageTextParams{
			ChatID:      chatID,
			MessageID:   messageID,
			Text:        Truncate(text, messageLimit),
			ParseMode:   telego.ModeHTML,
			ReplyMarkup: markup,
			LinkPreviewOptions: &telego.LinkPreviewOptions{
				IsDisabled: true,
			},
		})

		return err
	}

	_, err := ctx.Bot().EditMessageMedia(ctx, &telego.EditMessageMediaParams{
		ChatID:      chatID,
		MessageID:   messageID,
		ReplyMarkup: markup,
		Media: &telego.InputMediaVideo{
			Type:      telego.MediaTypeVideo,
			Caption:   Truncate(text, captionLimit),
			ParseMode: telego.ModeHTML,
			Media:     tu.FileFromURL(video.URL),
		},
	})

	return err
}
