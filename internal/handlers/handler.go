package handlers

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/locale"
	"github.com/StounhandJ/tiktok_page/internal/render"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/StounhandJ/tiktok_page/internal/utils"
	telegramUtils "github.com/StounhandJ/tiktok_page/internal/utils/telegram"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
)

type Options struct {
	// Context живёт дольше запросов: в нём идут загрузки метаданных и отдача файлов
	Context    context.Context
	Controller *session.Controller
	Store      *session.Store
	Renderer   *render.Renderer
	Catalog    locale.Catalog
	Client     *http.Client
	Platform   string
	Progress   transfer.ProgressOptions
}

type Handler struct {
	ctx        context.Context
	controller *session.Controller
	store      *session.Store
	renderer   *render.Renderer
	catalog    locale.Catalog
	client     *http.Client
	platform   string
	progress   transfer.ProgressOptions
	now        func() time.Time

	// отправка в Telegram, подменяется в тестах
	sendMessage func(ctx *th.Context, isReply bool, update telego.Update, text string, args ...any) int
	editMessage func(ctx *th.Context, update telego.Update, messageID int, text string, args ...any) error

	served atomic.Int64
}

func NewHandler(opts Options) *Handler {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	return &Handler{
		ctx:        ctx,
		controller: opts.Controller,
		store:      opts.Store,
		renderer:   opts.Renderer,
		catalog:    opts.Catalog,
		client:     client,
		platform:   opts.Platform,
		progress:   opts.Progress,
		now:        time.Now,

		sendMessage: telegramUtils.SendMessage,
		editMessage: telegramUtils.EditMessage,
	}
}

func (h *Handler) SetupRoutes(bh *th.BotHandler) {
	// Базовые действия
	bh.Handle(h.StartCommand, th.CommandEqual("start"))

	bh.HandleInlineQuery(h.InlineVideo)
	bh.Handle(h.MessageVideo, th.AnyMessageWithText())
}

// countServed считает успешно найденные ролики
func (h *Handler) countServed() {
	if n := h.served.Add(1); n%10 == 0 {
		utils.Log.Infof("Количество запрошенных роликов %d", n)
	}
}
