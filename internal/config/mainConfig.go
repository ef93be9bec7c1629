package config

import "time"

type Config struct {
	Application Application `yaml:"Application" env:"APP" flag:""`
	Server      Server      `yaml:"Server" env:"SERVER" flag:"server"`
	API         API         `yaml:"API" env:"API" flag:"api"`
	Transfer    Transfer    `yaml:"Transfer" env:"TRANSFER" flag:"transfer"`
}

type Application struct {
	LogLevel   string `yaml:"LogLevel" env:"LOGLEVEL"`
	Locale     string `yaml:"Locale" env:"LOCALE" usage:"Язык интерфейса: id, en, ru"`
	ProxyURL   string `yaml:"ProxyURL" env:"PROXY_URL" flag:"proxy-url" usage:"Прокси для отправки запросов" cli:"optional"`
	TGBotToken string `yaml:"TGBotToken" env:"TG_BOT_TOKEN" flag:"tg-bot-token" usage:"Токен телеграм бота, пусто - бот выключен" cli:"optional"`
}

type Server struct {
	Addr         string   `yaml:"Addr" env:"ADDR" flag:"addr" usage:"Адрес веб-страницы"`
	ReadTimeout  Duration `yaml:"ReadTimeout" env:"READ_TIMEOUT"`
	WriteTimeout Duration `yaml:"WriteTimeout" env:"WRITE_TIMEOUT" usage:"0 - без ограничения, нужно для отдачи файла" cli:"optional"`
	SessionIdle  Duration `yaml:"SessionIdle" env:"SESSION_IDLE" usage:"Через сколько забывать неактивную сессию"`
}

type API struct {
	Endpoint  string   `yaml:"Endpoint" env:"ENDPOINT" flag:"endpoint" usage:"Адрес API метаданных TikTok"`
	Timeout   Duration `yaml:"Timeout" env:"TIMEOUT" flag:"timeout" usage:"Таймаут запроса к API, 0 - без таймаута" cli:"optional"`
	RateLimit float64  `yaml:"RateLimit" env:"RATE_LIMIT" flag:"rate-limit" usage:"Запросов к API в секунду, 0 - без ограничения" cli:"optional"`
}

type Transfer struct {
	Mode       string   `yaml:"Mode" env:"MODE" flag:"mode" usage:"link или synthetic"`
	Platform   string   `yaml:"Platform" env:"PLATFORM" usage:"Префикс имени сохраняемого файла"`
	Tick       Duration `yaml:"Tick" env:"TICK"`
	SnapAfter  Duration `yaml:"SnapAfter" env:"SNAP_AFTER"`
	ResetAfter Duration `yaml:"ResetAfter" env:"RESET_AFTER"`
	MaxStep    int      `yaml:"MaxStep" env:"MAX_STEP" usage:"Максимальный шаг прогресса, %"`
}

// Default - значения для полей, которых нет в yaml.
func Default() Config {
	return Config{
		Application: Application{
			LogLevel: "info",
			Locale:   "id",
		},
		Server: Server{
			Addr:        ":8080",
			ReadTimeout: Duration(10 * time.Second),
			SessionIdle: Duration(30 * time.Minute),
		},
		API: API{
			Endpoint:  "https://www.dongtube.my.id/api/d/tiktok",
			Timeout:   Duration(30 * time.Second),
			RateLimit: 1,
		},
		Transfer: Transfer{
			Mode:       "link",
			Platform:   "tiktok",
			Tick:       Duration(100 * time.Millisecond),
			SnapAfter:  Duration(time.Second),
			ResetAfter: Duration(2 * time.Second),
			MaxStep:    15,
		},
	}
}
