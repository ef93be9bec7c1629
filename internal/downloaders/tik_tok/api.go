//go:generate easyjson api.go
package tiktok

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	netUrl "net/url"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
	"github.com/StounhandJ/tiktok_page/internal/utils"
	easyjson "github.com/mailru/easyjson"
	"github.com/valyala/fastjson"
)

const (
	DefaultEndpoint = "https://www.dongtube.my.id/api/d/tiktok"

	maxBodySize = 10 << 20
)

var (
	ErrRateLimit = errors.New("rate limit exceeded")
	ErrParse     = errors.New("parse error")
	ErrUnknown   = errors.New("unknown error")
)

func fetchMetadata(ctx context.Context, client *http.Client, endpoint, postUrl string) (*fastjson.Value, error) {
	sep := "?"
	if strings.Contains(endpoint, "?") {
		sep = "&"
	}

	reqUrl := fmt.Sprintf("%s%surl=%s", endpoint, sep, netUrl.QueryEscape(postUrl))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/140.0.0.0 YaBrowser/25.10.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			utils.Log.Error(err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &downloaders.HTTPStatusError{Code: resp.StatusCode, Status: http.StatusText(resp.StatusCode)}
	}

	b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", downloaders.ErrTransport, err)
	}

	var data apiEnvelope

	if err = easyjson.Unmarshal(b, &data); err != nil {
		return nil, fmt.Errorf("%w: %w", downloaders.ErrPayload, err)
	}

	if !data.succeeded() {
		msg := data.message()

		switch {
		case strings.HasPrefix(msg, "Free Api Limit"):
			return nil, fmt.Errorf("%w: %w: %s", downloaders.ErrPayload, ErrRateLimit, msg)
		case strings.HasPrefix(msg, "Url parsing is failed"):
			return nil, fmt.Errorf("%w: %w: %s", downloaders.ErrPayload, ErrParse, msg)
		default:
			return nil, fmt.Errorf("%w: %w: %s", downloaders.ErrPayload, ErrUnknown, msg)
		}
	}

	container := data.container()
	if container == nil {
		return nil, fmt.Errorf("%w: payload container is absent", downloaders.ErrPayload)
	}

	payload, err := fastjson.ParseBytes(container)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", downloaders.ErrPayload, err)
	}

	if payload.Type() != fastjson.TypeObject {
		return nil, fmt.Errorf("%w: payload is %s, not an object", downloaders.ErrPayload, payload.Type())
	}

	return payload, nil
}

// Варианты API расходятся в названиях полей: status/result, success/data, code/data (tikwm)
//
// easyjson:json
type apiEnvelope struct {
	Status  easyjson.RawMessage `json:"status,omitempty"`
	Success easyjson.RawMessage `json:"success,omitempty"`
	Code    easyjson.RawMessage `json:"code,omitempty"`
	Message string              `json:"message,omitempty"`
	Msg     string              `json:"msg,omitempty"`
	Result  easyjson.RawMessage `json:"result,omitempty"`
	Data    easyjson.RawMessage `json:"data,omitempty"`
}

// succeeded проверяет первый присутствующий признак успеха
func (e apiEnvelope) succeeded() bool {
	switch {
	case e.Status.IsDefined():
		s := string(e.Status)
		if unquoted, err := strconv.Unquote(s); err == nil {
			s = unquoted
		}

		switch strings.ToLower(strings.TrimSpace(s)) {
		case "success", "ok", "true":
			return true
		default:
			return false
		}
	case e.Success.IsDefined():
		return string(e.Success) == "true"
	case e.Code.IsDefined():
		return string(e.Code) == "0"
	default:
		return false
	}
}

func (e apiEnvelope) message() string {
	return utils.StringNotEmptyCoalesce(e.Message, e.Msg)
}

// container возвращает result или data, только если это объект
func (e apiEnvelope) container() []byte {
	for _, raw := range []easyjson.RawMessage{e.Result, e.Data} {
		if len(raw) > 0 && raw[0] == '{' {
			return raw
		}
	}

	return nil
}
