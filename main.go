package main

import (
	"math/rand"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Shiziso/Bot/internal/bot"
	"github.com/Shiziso/Bot/internal/catalog"
	"github.com/Shiziso/Bot/internal/config"
	"github.com/Shiziso/Bot/internal/database"
	logger "github.com/Shiziso/Bot/internal/logging"
	"github.com/Shiziso/Bot/internal/repository"
	"github.com/Shiziso/Bot/internal/services"
	"github.com/Shiziso/Bot/internal/web"
)

func main() {
	// The configured logger needs the config, so bootstrap with a plain
	// development logger first.
	bootstrap := zap.Must(zap.NewDevelopment())

	if err := config.Init(".", bootstrap); err != nil {
		bootstrap.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(".", config.Conf.Logging)
	if err != nil {
		bootstrap.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	database.Init(log)

	// Load the test catalog, preferring a configured file over the
	// embedded default.
	var cat *catalog.Catalog
	if path := config.Conf.Catalog.Path; path != "" {
		cat, err = catalog.Load(path)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		log.Fatal("Failed to load test catalog", zap.Error(err))
	}

	token := config.Conf.Telegram.Token
	if token == "" {
		log.Fatal("Telegram token is not configured (set PSYBOT_TELEGRAM_TOKEN)")
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		log.Fatal("Failed to connect to Telegram", zap.Error(err))
	}
	log.Info("Authorized on Telegram", zap.String("username", api.Self.UserName))

	tips := services.NewTipPicker(rand.NewSource(time.Now().UnixNano()))
	notifier := services.NewNotifier(log, api)
	scheduler := services.NewScheduler(log, notifier, tips)
	scheduler.Start()

	// The admin dashboard runs alongside the bot.
	go func() {
		r := web.Setup(log)
		addr := ":" + config.Conf.Web.Port
		log.Info("Admin dashboard listening", zap.String("addr", addr))
		if err := r.Run(addr); err != nil {
			log.Error("Admin dashboard stopped", zap.Error(err))
		}
	}()

	results := repository.NewResults()
	b := bot.New(log, api, cat, results, tips)
	log.Info("Bot started")
	b.Run(api)
}
