package downloaders

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyInput      = errors.New("empty input")
	ErrInvalidURL      = errors.New("invalid url shape")
	ErrTransport       = errors.New("transport failure")
	ErrHTTPStatus      = errors.New("http error")
	ErrPayload         = errors.New("malformed or unsuccessful payload")
	ErrMissingMediaURL = errors.New("missing media url")
)

// HTTPStatusError - ответ API с кодом вне 2xx
type HTTPStatusError struct {
	Code   int
	Status string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("api status %d %s", e.Code, e.Status)
}

func (e *HTTPStatusError) Unwrap() error {
	return ErrHTTPStatus
}

type Category int

const (
	CategoryNone Category = iota
	CategoryEmptyInput
	CategoryInvalidURL
	CategoryTransport
	CategoryHTTPStatus
	CategoryPayload
	CategoryMissingMediaURL
)

func (c Category) String() string {
	switch c {
	case CategoryNone:
		return "none"
	case CategoryEmptyInput:
		return "empty_input"
	case CategoryInvalidURL:
		return "invalid_url"
	case CategoryTransport:
		return "transport"
	case CategoryHTTPStatus:
		return "http_status"
	case CategoryPayload:
		return "payload"
	case CategoryMissingMediaURL:
		return "missing_media_url"
	default:
		return fmt.Sprintf("category(%d)", int(c))
	}
}

// Classify сводит ошибку к одной из категорий. Неизвестные ошибки считаются ошибкой ответа.
func Classify(err error) Category {
	switch {
	case err == nil:
		return CategoryNone
	case errors.Is(err, ErrEmptyInput):
		return CategoryEmptyInput
	case errors.Is(err, ErrInvalidURL):
		return CategoryInvalidURL
	case errors.Is(err, ErrTransport):
		return CategoryTransport
	case errors.Is(err, ErrHTTPStatus):
		return CategoryHTTPStatus
	case errors.Is(err, ErrMissingMediaURL):
		return CategoryMissingMediaURL
	default:
		return CategoryPayload
	}
}
