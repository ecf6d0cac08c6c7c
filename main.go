package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"speakmate/app/client/telegram"
	"speakmate/app/client/yandex"
	"speakmate/app/config"
	"speakmate/app/messages"
	"speakmate/app/server"
	"speakmate/app/service/dispatch"
	"speakmate/app/service/history"
	"speakmate/app/service/reply"
	"speakmate/app/service/router"
	"speakmate/app/service/speech"
	"speakmate/app/service/transcribe"
	"speakmate/app/service/translate"
	"speakmate/app/util/mylog"

	"github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	"github.com/samber/do"
)

func main() {
	di := do.New()
	defer di.Shutdown()
	defer log.Info("Waiting for services to finish...")

	mylog.Preinit()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()
	do.ProvideValue(di, appCtx)

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	do.ProvideValue(di, cfg)

	if err = mylog.Init(cfg); err != nil {
		log.Fatalf("logging init failed: %v", err)
	}

	do.Provide(di, func(_ *do.Injector) (*messages.Catalog, error) {
		return messages.Load()
	})

	do.Provide(di, telegram.NewClient)
	do.Provide(di, history.New)

	if cfg.SpeechEnabled() {
		do.Provide(di, yandex.NewClient)
		do.Provide(di, translate.New)
		do.Provide(di, speech.New)
		do.Provide(di, transcribe.New)
	} else {
		slog.Warn("Yandex credentials missing, speech and translation are disabled")
	}

	if cfg.ChatEnabled() {
		do.Provide(di, reply.New)
	} else {
		slog.Warn("OpenAI token missing, chat replies are disabled")
	}

	do.Provide(di, router.New)
	do.Provide(di, dispatch.New)
	do.Provide(di, server.New)

	slog.Info("Service started")

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt)
		<-sigint

		log.Info("Shutting down...")

		cancel()
	}()

	go do.MustInvoke[*dispatch.Service](di).Run(appCtx)

	go func() {
		if err := do.MustInvoke[*server.Server](di).Run(); err != nil {
			log.Fatalf("server failed: %v", err)
		}
	}()

	<-appCtx.Done()
}
