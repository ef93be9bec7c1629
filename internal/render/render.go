package render

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"

	"github.com/StounhandJ/tiktok_page/internal/locale"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/StounhandJ/tiktok_page/internal/utils"
)

//go:embed page.html
var pageTemplate string

// VideoView - поля карточки ролика, уже с подстановками и форматированием.
// Экранирование делает html/template при выводе.
type VideoView struct {
	Title     string
	Author    string
	Thumbnail string
	MediaURL  string
	Views     string
	Likes     string
	Duration  string
}

type Page struct {
	Lang      string
	Input     string
	Disabled  bool
	Loading   bool
	Synthetic bool
	Notice    string
	Error     string
	Video     *VideoView
}

type Renderer struct {
	tmpl    *template.Template
	catalog locale.Catalog
	mode    transfer.Mode
}

func New(catalog locale.Catalog, mode transfer.Mode) (*Renderer, error) {
	tmpl, err := template.New("page").Funcs(template.FuncMap{
		"t": func(key string) string {
			return catalog.Text(locale.Key(key))
		},
	}).Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}

	return &Renderer{
		tmpl:    tmpl,
		catalog: catalog,
		mode:    mode,
	}, nil
}

// View строит модель страницы. Видна ровно одна панель, соответствующая состоянию.
func (r *Renderer) View(snap session.Snapshot) Page {
	page := Page{
		Lang:      r.catalog.Lang(),
		Input:     snap.Input,
		Disabled:  snap.ControlsDisabled(),
		Synthetic: r.mode == transfer.ModeSynthetic,
	}

	switch snap.State {
	case session.Idle:
		if snap.Notice != nil {
			page.Notice = r.catalog.ErrorText(snap.Category())
		}
	case session.Loading:
		page.Loading = true
	case session.Result:
		if snap.Video != nil {
			page.Video = r.videoView(snap)
		}
	case session.Error:
		page.Error = r.catalog.ErrorText(snap.Category())
	}

	return page
}

func (r *Renderer) videoView(snap session.Snapshot) *VideoView {
	v := snap.Video

	view := &VideoView{
		Title:     utils.StringNotEmptyCoalesce(v.Title, r.catalog.Text(locale.KeyDefaultTitle)),
		Author:    utils.StringNotEmptyCoalesce(v.Author, r.catalog.Text(locale.KeyUnknownAuthor)),
		Thumbnail: v.ThumbnailURL,
		MediaURL:  v.VideoURL,
	}

	if v.PlayCount != "" {
		view.Views = utils.FormatCount(v.PlayCount)
	}

	if v.LikeCount != "" {
		view.Likes = utils.FormatCount(v.LikeCount)
	}

	if v.Duration > 0 {
		view.Duration = utils.FormatSecondsToMMSS(v.Duration)
	}

	return view
}

func (r *Renderer) Render(w io.Writer, snap session.Snapshot) error {
	return r.tmpl.Execute(w, r.View(snap))
}
