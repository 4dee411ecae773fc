package bootstrap

import (
	"log"
	"net/http"
	"time"

	"licitaciones-ai-be/internal/config"
	"licitaciones-ai-be/internal/controller"
	"licitaciones-ai-be/internal/pkg/logger"
	"licitaciones-ai-be/internal/repository/unitofwork"
	"licitaciones-ai-be/internal/service"
	"licitaciones-ai-be/pkg/ai/gemini"
	"licitaciones-ai-be/pkg/docs/linkextract"
	"licitaciones-ai-be/pkg/docs/probe"
	"licitaciones-ai-be/pkg/storage"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

const tenderEventsTopic = "TENDER_EVENTS"

type Container struct {
	// Controllers
	TenderController controller.ITenderController
	RulesController  controller.IRulesController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Infrastructure
	store, err := storage.NewObjectStore(storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Bucket:    cfg.Storage.Bucket,
		UseSSL:    cfg.Storage.UseSSL,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize object storage: %v", err)
	}

	aiClient := gemini.NewClient(cfg.Ai.GeminiApiKey, cfg.Ai.GeminiModel)
	if cfg.Ai.GeminiApiKey == "" {
		log.Printf("[WARN] GOOGLE_GEMINI_API_KEY not set; analysis and discovery will fail until configured")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	fetcher := linkextract.NewPageFetcher(httpClient, cfg.Discovery.PrimaryRelay)
	prober := probe.NewProber(httpClient, cfg.Discovery.PrimaryRelay, cfg.Discovery.SecondaryRelay)

	// 4. Services
	publisherService := service.NewPublisherService(tenderEventsTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, tenderEventsTopic, sysLogger)

	rulesService := service.NewRulesService(uowFactory)
	tenderService := service.NewTenderService(
		uowFactory,
		store,
		aiClient,
		rulesService,
		publisherService,
		sysLogger,
	)
	discoveryService := service.NewDiscoveryService(
		aiClient,
		fetcher,
		prober,
		store,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		TenderController: controller.NewTenderController(tenderService, discoveryService),
		RulesController:  controller.NewRulesController(rulesService),
		ConsumerService:  consumerService,
		Logger:           sysLogger,
	}
}
