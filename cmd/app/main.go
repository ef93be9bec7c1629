package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/StounhandJ/tiktok_page/internal/config"
	downloadersService "github.com/StounhandJ/tiktok_page/internal/downloaders"
	tiktok "github.com/StounhandJ/tiktok_page/internal/downloaders/tik_tok"
	"github.com/StounhandJ/tiktok_page/internal/handlers"
	"github.com/StounhandJ/tiktok_page/internal/locale"
	"github.com/StounhandJ/tiktok_page/internal/render"
	"github.com/StounhandJ/tiktok_page/internal/session"
	"github.com/StounhandJ/tiktok_page/internal/transfer"
	"github.com/StounhandJ/tiktok_page/internal/utils"
	"github.com/mymmrac/telego"
	th "github.com/mymmrac/telego/telegohandler"
	"github.com/valyala/fasthttp"
)

var cfg = config.Default()

func main() {
	//------ Получение Конфигурации ------//
	if err := config.LoadConfig(&cfg); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	utils.InitLogger(cfg.Application.LogLevel)
	//---------------//

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//------ HTTP клиент для отправки запросов ------//
	apiClient := http.Client{Timeout: cfg.API.Timeout.Std()}
	// файлы бывают большими, без общего таймаута
	mediaClient := http.Client{}

	if cfg.Application.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.Application.ProxyURL)
		if err != nil {
			utils.Log.Panic(err)
		}

		transport := &http.Transport{
			Proxy: http.ProxyURL(proxyURL), // прокси
		}
		apiClient.Transport = transport
		mediaClient.Transport = transport
	}
	//---------------//

	//------ Сессии и страница ------//
	catalog := locale.New(cfg.Application.Locale)
	mode := transfer.ParseMode(cfg.Transfer.Mode)

	renderer, err := render.New(catalog, mode)
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	store := session.NewStore(cfg.Server.SessionIdle.Std())
	go store.Run(ctx, time.Minute)

	handler := handlers.NewHandler(handlers.Options{
		Context: ctx,
		Controller: session.NewController([]downloadersService.IDownloader{
			tiktok.New(&apiClient, cfg.API.Endpoint, tiktok.WithRateLimit(cfg.API.RateLimit)),
		}),
		Store:    store,
		Renderer: renderer,
		Catalog:  catalog,
		Client:   &mediaClient,
		Platform: cfg.Transfer.Platform,
		Progress: transfer.ProgressOptions{
			Tick:       cfg.Transfer.Tick.Std(),
			SnapAfter:  cfg.Transfer.SnapAfter.Std(),
			ResetAfter: cfg.Transfer.ResetAfter.Std(),
			MaxStep:    cfg.Transfer.MaxStep,
		},
	})

	server := &fasthttp.Server{
		Handler:      handler.ServeHTTP,
		Name:         "tiktok_page",
		ReadTimeout:  cfg.Server.ReadTimeout.Std(),
		WriteTimeout: cfg.Server.WriteTimeout.Std(),
	}

	go func() {
		utils.Log.WithField("addr", cfg.Server.Addr).WithField("mode", mode).Info("Запуск веб-страницы")
		if err := server.ListenAndServe(cfg.Server.Addr); err != nil {
			utils.Log.Fatal(err)
		}
	}()
	//---------------//

	//------ TELEGRAM бот ------//
	if cfg.Application.TGBotToken != "" {
		startBot(ctx, handler)
	} else {
		utils.Log.Info("TG-бот выключен: токен не задан")
	}
	//---------------//

	//------ Ожидание заершения программы ------//
	utils.Log.Info("Всё запущено")

	cSignal := make(chan os.Signal, 2)
	signal.Notify(cSignal, os.Interrupt, syscall.SIGTERM)
	<-cSignal

	cancel()

	if err := server.Shutdown(); err != nil {
		utils.Log.Error(err)
	}
}

func startBot(ctx context.Context, handler *handlers.Handler) {
	utils.Log.Info("Подключение TG-бота")

	bot, err := telego.NewBot(cfg.Application.TGBotToken, telego.WithDefaultLogger(cfg.Application.LogLevel == "debug", true))
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	// Обработка сообщений ботом
	updates, err := bot.UpdatesViaLongPolling(ctx, nil)
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	bh, err := th.NewBotHandler(bot, updates)
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	handler.SetupRoutes(bh)

	user, err := bot.GetMe(ctx)
	if err != nil {
		utils.Log.Error(err)
		os.Exit(1)
	}

	go func() {
		utils.Log.Infof(
			"TG БОТ ID=%d имя=%s username=@%s",
			user.ID,
			user.FirstName,
			user.Username,
		)
		utils.Log.Fatal(bh.Start())
	}()
}
