package main

import (
	"flag"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/morgansundqvist/musecase/internal/adapters"
	"github.com/morgansundqvist/musecase/internal/application"
	"github.com/morgansundqvist/musecase/internal/config"
	"github.com/morgansundqvist/musecase/internal/handlers"
	"github.com/morgansundqvist/musecase/internal/logger"
)

func main() {
	configPath := flag.String("config", "", "Path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	appLog, err := logger.New(cfg.LoggerOptions())
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLog.Sync()

	llm, err := adapters.NewOpenAILLMService(adapters.CompletionOptions{
		APIKey:  cfg.LLM.APIKey,
		BaseURL: cfg.LLM.BaseURL,
		Model:   cfg.LLM.Model,
		Timeout: cfg.LLM.Timeout,
		Log:     appLog,
	})
	if err != nil {
		appLog.Fatal("failed to initialize completion client", "error", err)
	}

	charts, err := adapters.NewHistogramRenderer()
	if err != nil {
		appLog.Fatal("failed to initialize chart renderer", "error", err)
	}

	branding, err := adapters.NewBrandingLoader(adapters.NewLocalFileReader()).Load(cfg.Branding.ImagePath)
	if err != nil {
		appLog.Warn("branding image not loaded", "path", cfg.Branding.ImagePath, "error", err)
		branding = nil
	}

	dispatcher := application.NewDispatcher(llm, adapters.NewCSVTableParser(), appLog)

	app := fiber.New(fiber.Config{
		AppName:      "musecase",
		BodyLimit:    cfg.Server.MaxUploadMB << 20,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	app.Use(fiberlogger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "model": llm.Model()})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	handlers.NewUseCaseHandler(dispatcher, charts, branding, llm.Model()).Mount(app)

	appLog.Info("starting server", "addr", "http://localhost:"+cfg.Server.Port, "model", llm.Model())
	if err := app.Listen(":" + cfg.Server.Port); err != nil {
		appLog.Fatal("failed to start server", "error", err)
	}
}
