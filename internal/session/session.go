package session

import (
	"errors"
	"sync"

	"github.com/StounhandJ/tiktok_page/internal/downloaders"
)

type ViewState int

const (
	Idle ViewState = iota
	Loading
	Result
	Error
)

func (s ViewState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Result:
		return "result"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

var ErrBusy = errors.New("request already in flight")

// Snapshot - копия состояния сессии для отрисовки
type Snapshot struct {
	State    ViewState
	Input    string
	Platform string
	Video    *downloaders.Video
	Err      error
	// Notice - ошибка проверки ввода, показывается в Idle без обращения к сети
	Notice error
	Token  uint64
}

// ControlsDisabled - поле ввода и кнопка заблокированы только пока идёт запрос
func (s Snapshot) ControlsDisabled() bool {
	return s.State == Loading
}

func (s Snapshot) Category() downloaders.Category {
	switch {
	case s.Err != nil:
		return downloaders.Classify(s.Err)
	case s.Notice != nil:
		return downloaders.Classify(s.Notice)
	default:
		return downloaders.CategoryNone
	}
}

// Session владеет состоянием одной страницы. Каждый Begin и Reset увеличивает token,
// поэтому ответ на устаревший запрос отбрасывается в Complete.
type Session struct {
	mu       sync.Mutex
	state    ViewState
	token    uint64
	input    string
	platform string
	video    *downloaders.Video
	err      error
	notice   error
}

func New() *Session {
	return &Session{}
}

// Reject фиксирует ошибку проверки ввода и возвращает сессию в Idle
func (s *Session) Reject(input string, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Loading {
		return ErrBusy
	}

	s.state = Idle
	s.input = input
	s.platform = ""
	s.video = nil
	s.err = nil
	s.notice = err

	return nil
}

// Begin переводит сессию в Loading и выдаёт token запроса.
// Из Result и Error переход идёт через неявный сброс.
func (s *Session) Begin(input, platform string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == Loading {
		return 0, ErrBusy
	}

	s.token++
	s.state = Loading
	s.input = input
	s.platform = platform
	s.video = nil
	s.err = nil
	s.notice = nil

	return s.token, nil
}

// Complete применяет результат запроса. false - token устарел, результат отброшен.
func (s *Session) Complete(token uint64, video *downloaders.Video, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.token || s.state != Loading {
		return false
	}

	if err == nil && (video == nil || video.VideoURL == "") {
		err = downloaders.ErrMissingMediaURL
	}

	if err != nil {
		s.state = Error
		s.err = err
		s.video = nil

		return true
	}

	v := *video
	s.state = Result
	s.video = &v

	return true
}

func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.state = Idle
	s.input = ""
	s.platform = ""
	s.video = nil
	s.err = nil
	s.notice = nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:    s.state,
		Input:    s.input,
		Platform: s.platform,
		Err:      s.err,
		Notice:   s.notice,
		Token:    s.token,
	}

	if s.video != nil {
		v := *s.video
		snap.Video = &v
	}

	return snap
}
