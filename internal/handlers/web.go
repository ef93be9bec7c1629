package handlers

import (
	"bufio"
	"errors"
	"fmt"

	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/StounhandJ/tiktok_page/internal/utils"
	"github.com/valyala/fasthttp"
)

const sessionCookie = "sid"

// ServeHTTP - fasthttp обработчик страницы загрузки
func (h *Handler) ServeHTTP(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())

	switch {
	case path == "/" && ctx.IsGet():
		h.page(ctx)
	case path == "/submit" && ctx.IsPost():
		h.submit(ctx)
	case path == "/reset" && ctx.IsPost():
		h.reset(ctx)
	case path == "/file" && ctx.IsGet():
		h.file(ctx)
	case path == "/progress" && ctx.IsGet():
		h.sendProgress(ctx)
	case path == "/healthz":
		ctx.SetContentType("text/plain; charset=utf-8")
		ctx.SetBodyString("ok")
	default:
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusNotFound), fasthttp.StatusNotFound)
	}
}

// session находит сессию по cookie, новой сессии выставляет cookie
func (h *Handler) session(ctx *fasthttp.RequestCtx) *session.Session {
	id := string(ctx.Request.Header.Cookie(sessionCookie))

	s, actual := h.store.Get(id)
	if actual != id {
		c := fasthttp.AcquireCookie()
		defer fasthttp.ReleaseCookie(c)

		c.SetKey(sessionCookie)
		c.SetValue(actual)
		c.SetPath("/")
		c.SetHTTPOnly(true)
		c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
		ctx.Response.Header.SetCookie(c)
	}

	return s
}

func (h *Handler) page(ctx *fasthttp.RequestCtx) {
	snap := h.session(ctx).Snapshot()

	ctx.SetContentType("text/html; charset=utf-8")
	ctx.Response.Header.Set(fasthttp.HeaderCacheControl, "no-store")

	if err := h.renderer.Render(ctx, snap); err != nil {
		utils.Log.Error(err)
		ctx.Error(fasthttp.StatusMessage(fasthttp.StatusInternalServerError), fasthttp.StatusInternalServerError)
	}
}

// submit переводит сессию в Loading и сразу возвращает на страницу,
// запрос к API идёт в фоне
func (h *Handler) submit(ctx *fasthttp.RequestCtx) {
	s := h.session(ctx)
	raw := string(ctx.FormValue("url"))

	run, err := h.controller.Start(s, raw)
	switch {
	case errors.Is(err, session.ErrBusy):
		utils.Log.Debug("повторная отправка во время загрузки")
	case err == nil:
		go func() {
			if snap, err := run(h.ctx); err == nil && snap.State == session.Result {
				h.countServed()
			}
		}()
	}

	ctx.Redirect("/", fasthttp.StatusSeeOther)
}

func (h *Handler) reset(ctx *fasthttp.RequestCtx) {
	h.session(ctx).Reset()
	ctx.Redirect("/", fasthttp.StatusSeeOther)
}

// file отдаёт ролик с именем файла. Если CDN не отдаёт файл, браузер
// отправляется по прямой ссылке.
func (h *Handler) file(ctx *fasthttp.RequestCtx) {
	snap := h.session(ctx).Snapshot()
	if snap.State != session.Result || snap.Video == nil {
		ctx.Redirect("/", fasthttp.StatusSeeOther)

		return
	}

	video := snap.Video

	body, size, err := transfer.Open(h.ctx, h.client, video.VideoURL)
	if err != nil {
		utils.LogDownloadError(video.VideoURL, err)
		ctx.Redirect(video.VideoURL, fasthttp.StatusFound)

		return
	}

	name := transfer.Filename(utils.StringNotEmptyCoalesce(h.platform, snap.Platform), video.Author, h.now())

	ctx.SetContentType(utils.StringNotEmptyCoalesce(video.MimeType, "video/mp4"))
	ctx.Response.Header.Set(fasthttp.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", name))

	if size < 0 {
		size = -1
	}

	ctx.SetBodyStream(body, int(size))
}

// sendProgress - поток server-sent events для имитации прогресса загрузки
func (h *Handler) sendProgress(ctx *fasthttp.RequestCtx) {
	snap := h.session(ctx).Snapshot()

	ctx.SetContentType("text/event-stream")
	ctx.Response.Header.Set(fasthttp.HeaderCacheControl, "no-cache")

	if snap.State != session.Result {
		ctx.SetBodyString(transfer.Event{Idle: true}.SSE())

		return
	}

	opts := h.progress
	base := h.ctx

	ctx.SetBodyStreamWriter(func(w *bufio.Writer) {
		err := transfer.Simulate(base, opts, func(e transfer.Event) error {
			if _, err := w.WriteString(e.SSE()); err != nil {
				return err
			}

			return w.Flush()
		})
		if err != nil {
			utils.Log.WithError(err).Debug("поток прогресса прерван")
		}
	})
}
