package bootstrap

import (
	"log"
	"time"

	"device-support-be/internal/config"
	"device-support-be/internal/controller"
	"device-support-be/internal/pkg/logger"
	"device-support-be/internal/repository/unitofwork"
	"device-support-be/internal/service"
	"device-support-be/pkg/embedding"
	"device-support-be/pkg/extractor"
	"device-support-be/pkg/genai"
	"device-support-be/pkg/retrieval"
	"device-support-be/pkg/speech"
	"device-support-be/pkg/synthesis"
	"device-support-be/pkg/telemetry"

	pktNats "device-support-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AnalysisController controller.IAnalysisController
	DocumentController controller.IDocumentController
	SessionController  controller.ISessionController
	SpeechController   controller.ISpeechController
	ConfigController   controller.IConfigController
	HealthController   controller.IHealthController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// Exposed for shutdown
	NatsPublisher *pktNats.Publisher
	Logger        logger.ILogger
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

	// Optional NATS fan-out for stage events.
	var natsPub *pktNats.Publisher
	if cfg.App.NatsURL != "" {
		pub, err := pktNats.NewPublisher(cfg.App.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPub = pub
		}
	}

	// 3. Pipeline components. A missing key leaves the clients nil; the
	// services answer with a configuration error instead of calling out
	// with empty credentials.
	var (
		generator           *genai.Client
		embeddingProvider   embedding.Provider
		contextExtractor    *extractor.Extractor
		responseSynthesizer *synthesis.Synthesizer
	)
	if cfg.Keys.GoogleGemini != "" {
		generator = genai.NewClient(cfg.Keys.GoogleGemini, cfg.Pipeline.GenerationModel)
		embeddingProvider = embedding.NewGoogleProvider(
			cfg.Keys.GoogleGemini,
			cfg.Pipeline.EmbeddingModel,
			cfg.Pipeline.EmbeddingDimensions,
			cfg.Pipeline.EmbeddingRetries,
		)
		contextExtractor = extractor.NewExtractor(generator)
		responseSynthesizer = synthesis.NewSynthesizer(generator)
	} else {
		log.Println("[WARN] GOOGLE_GEMINI_API_KEY is not set, analysis and document registration are disabled")
	}

	retriever := retrieval.NewRetriever(unitofwork.NewUnitOfWork(db).DocumentRepository(), sysLogger)

	ring := telemetry.NewRingSink(cfg.Telemetry.BufferSize)
	recorder := telemetry.NewRecorder(pubSub, cfg.Telemetry.Topic, natsPub, ring)

	var ttsClient *speech.Synthesizer
	var sttClient *speech.Transcriber
	if cfg.Keys.GoogleSpeech != "" {
		ttsClient = speech.NewSynthesizer(cfg.Keys.GoogleSpeech, "en-US")
		sttClient = speech.NewTranscriber(cfg.Keys.GoogleSpeech, "en-US")
	} else {
		log.Println("[WARN] GOOGLE_SPEECH_API_KEY is not set, speech endpoints are disabled")
	}

	// Session reads are cached briefly; the analysis pipeline shares the
	// cache so a completed turn is visible on the next poll.
	sessionCache := gocache.New(30*time.Second, 5*time.Minute)

	// 4. Services
	analysisService := service.NewAnalysisService(
		uowFactory,
		contextExtractor,
		embeddingProvider,
		retriever,
		responseSynthesizer,
		recorder,
		sessionCache,
		cfg.Pipeline,
		sysLogger,
	)
	documentService := service.NewDocumentService(uowFactory, embeddingProvider, generator, sysLogger)
	sessionService := service.NewSessionService(uowFactory, sessionCache)
	speechService := service.NewSpeechService(ttsClient, sttClient)
	configService := service.NewConfigService(uowFactory, ring)
	consumerService := service.NewConsumerService(pubSub, cfg.Telemetry.Topic, uowFactory)

	// 5. Controllers
	return &Container{
		AnalysisController: controller.NewAnalysisController(analysisService),
		DocumentController: controller.NewDocumentController(documentService),
		SessionController:  controller.NewSessionController(sessionService),
		SpeechController:   controller.NewSpeechController(speechService),
		ConfigController:   controller.NewConfigController(configService),
		HealthController:   controller.NewHealthController(db),
		ConsumerService:    consumerService,
		NatsPublisher:      natsPub,
		Logger:             sysLogger,
	}
}
