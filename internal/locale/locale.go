package locale

import "github.com/StounhandJ/tiktok_page/internal/downloaders"

type Key string

const (
	KeyPageTitle      Key = "page_title"
	KeyPlaceholder    Key = "placeholder"
	KeySubmit         Key = "submit"
	KeyLoading        Key = "loading"
	KeyTryAgain       Key = "try_again"
	KeyDownload       Key = "download"
	KeyDownloading    Key = "downloading"
	KeyViews          Key = "views"
	KeyLikes          Key = "likes"
	KeyDefaultTitle   Key = "default_title"
	KeyUnknownAuthor  Key = "unknown_author"
	KeyBusy           Key = "busy"
	KeyOriginal       Key = "original"
	KeySimulatedNote  Key = "simulated_note"
	KeyGreeting       Key = "greeting"
	KeyErrEmptyInput  Key = "err_empty_input"
	KeyErrInvalidURL  Key = "err_invalid_url"
	KeyErrTransport   Key = "err_transport"
	KeyErrHTTPStatus  Key = "err_http_status"
	KeyErrPayload     Key = "err_payload"
	KeyErrMissingLink Key = "err_missing_link"
)

const (
	Indonesian = "id"
	English    = "en"
	Russian    = "ru"

	fallback = English
)

var texts = map[string]map[Key]string{
	Indonesian: {
		KeyPageTitle:      "TikTok Video Downloader",
		KeyPlaceholder:    "Tempel URL TikTok di sini...",
		KeySubmit:         "Download",
		KeyLoading:        "Memproses video...",
		KeyTryAgain:       "Coba Lagi",
		KeyDownload:       "Download Video MP4",
		KeyDownloading:    "Mengunduh...",
		KeyViews:          "views",
		KeyLikes:          "likes",
		KeyDefaultTitle:   "TikTok Video",
		KeyUnknownAuthor:  "Unknown",
		KeyBusy:           "Permintaan sebelumnya masih diproses.",
		KeyOriginal:       "Asli",
		KeySimulatedNote:  "Progres hanya simulasi, unduhan ditangani oleh browser.",
		KeyGreeting:       "Kirim URL TikTok untuk mendapatkan videonya.",
		KeyErrEmptyInput:  "Silakan masukkan URL TikTok terlebih dahulu.",
		KeyErrInvalidURL:  "URL tidak valid. Pastikan Anda memasukkan URL TikTok yang benar (misalnya: https://www.tiktok.com/@username/video/...)",
		KeyErrTransport:   "Tidak dapat terhubung ke API. Periksa koneksi internet Anda atau coba lagi nanti.",
		KeyErrHTTPStatus:  "Terjadi kesalahan saat memproses video. Silakan coba lagi.",
		KeyErrPayload:     "API mengembalikan respons yang tidak valid.",
		KeyErrMissingLink: "Link download tidak ditemukan dalam respons API.",
	},
	English: {
		KeyPageTitle:      "TikTok Video Downloader",
		KeyPlaceholder:    "Paste a TikTok URL here...",
		KeySubmit:         "Download",
		KeyLoading:        "Processing video...",
		KeyTryAgain:       "Try again",
		KeyDownload:       "Download MP4",
		KeyDownloading:    "Downloading...",
		KeyViews:          "views",
		KeyLikes:          "likes",
		KeyDefaultTitle:   "TikTok Video",
		KeyUnknownAuthor:  "Unknown",
		KeyBusy:           "The previous request is still being processed.",
		KeyOriginal:       "Original",
		KeySimulatedNote:  "Progress is simulated, the browser handles the actual download.",
		KeyGreeting:       "Send a TikTok URL to get the video.",
		KeyErrEmptyInput:  "Please enter a TikTok URL first.",
		KeyErrInvalidURL:  "Invalid URL. Make sure it is a TikTok link (for example https://www.tiktok.com/@username/video/...)",
		KeyErrTransport:   "Could not reach the API. Check your connection or try again later.",
		KeyErrHTTPStatus:  "Could not process the video. Please try again.",
		KeyErrPayload:     "The API returned an invalid response.",
		KeyErrMissingLink: "No download link was found in the API response.",
	},
	Russian: {
		KeyPageTitle:      "Загрузка видео TikTok",
		KeyPlaceholder:    "Вставьте ссылку на TikTok...",
		KeySubmit:         "Скачать",
		KeyLoading:        "Обработка видео...",
		KeyTryAgain:       "Попробовать снова",
		KeyDownload:       "Скачать MP4",
		KeyDownloading:    "Загрузка...",
		KeyViews:          "просмотров",
		KeyLikes:          "лайков",
		KeyDefaultTitle:   "Видео TikTok",
		KeyUnknownAuthor:  "Неизвестно",
		KeyBusy:           "Предыдущий запрос ещё обрабатывается.",
		KeyOriginal:       "Оригинал",
		KeySimulatedNote:  "Прогресс имитируется, загрузкой занимается браузер.",
		KeyGreeting:       "Это шортс бот by @StounhandJ\nОтправьте ссылку на TikTok.",
		KeyErrEmptyInput:  "Сначала введите ссылку на TikTok.",
		KeyErrInvalidURL:  "Неверная ссылка. Нужна ссылка TikTok, например https://www.tiktok.com/@username/video/...",
		KeyErrTransport:   "Не удалось подключиться к API. Попробуйте позже.",
		KeyErrHTTPStatus:  "Не удалось обработать видео. Попробуйте снова.",
		KeyErrPayload:     "API вернул некорректный ответ.",
		KeyErrMissingLink: "В ответе API нет ссылки на скачивание.",
	},
}

// Catalog - тексты для одного языка
type Catalog struct {
	lang string
}

// New возвращает каталог; неизвестный язык заменяется на индонезийский, язык исходной страницы
func New(lang string) Catalog {
	if _, ok := texts[lang]; !ok {
		lang = Indonesian
	}

	return Catalog{lang: lang}
}

func (c Catalog) Lang() string {
	return c.lang
}

func (c Catalog) Text(key Key) string {
	if text, ok := texts[c.lang][key]; ok {
		return text
	}

	if text, ok := texts[fallback][key]; ok {
		return text
	}

	return string(key)
}

// ErrorText - сообщение для пользователя по категории ошибки
func (c Catalog) ErrorText(category downloaders.Category) string {
	switch category {
	case downloaders.CategoryEmptyInput:
		return c.Text(KeyErrEmptyInput)
	case downloaders.CategoryInvalidURL:
		return c.Text(KeyErrInvalidURL)
	case downloaders.CategoryTransport:
		return c.Text(KeyErrTransport)
	case downloaders.CategoryHTTPStatus:
		return c.Text(KeyErrHTTPStatus)
	case downloaders.CategoryMissingMediaURL:
		return c.Text(KeyErrMissingLink)
	case downloaders.CategoryNone:
		return ""
	default:
		return c.Text(KeyErrPayload)
	}
}
