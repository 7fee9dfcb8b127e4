package main

import (
	"fmt"
	"net/http"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/dynamodb"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog/log"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/ports/outbound"
	"github.com/tejasg2002/Lisa-podcast-Generator/application/services"
	"github.com/tejasg2002/Lisa-podcast-Generator/config"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/adapters"
	"github.com/tejasg2002/Lisa-podcast-Generator/infrastructure/gin_interface/controllers"
	"github.com/tejasg2002/Lisa-podcast-Generator/middleware"
	mockgenerator "github.com/tejasg2002/Lisa-podcast-Generator/mock"
)

type providers struct {
	scripts outbound.ScriptGeneratorPort
	voices  outbound.VoiceSynthesizerPort
	blobs   outbound.BlobStorePort
	avatars outbound.AvatarVideoPort
	media   outbound.MediaConcatenatorPort
	tasks   outbound.TaskStorePort
}

func main() {
	serverConfig, err := config.GetServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get server config")
	}

	pipelineConfig, err := config.GetPipelineConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get pipeline config")
	}

	zeroLogger := adapters.NewZerologWrapper(serverConfig.LogLevel)

	panicHandler := func(p interface{}) {
		zeroLogger.Error(fmt.Errorf("%v", p), "Panic in worker pool")
	}

	workerPool, err := ants.NewPool(pipelineConfig.WorkerPoolSize, ants.WithPanicHandler(panicHandler))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create worker pool")
	}
	defer workerPool.Release()

	var deps providers
	if serverConfig.StubProviders {
		zeroLogger.Warn("STUB_PROVIDERS is set, external providers are simulated")
		stubs := mockgenerator.NewStubProviders()
		deps = providers{
			scripts: stubs.Scripts,
			voices:  stubs.Voices,
			blobs:   stubs.Blobs,
			avatars: stubs.Avatars,
			media:   stubs.Media,
			tasks:   adapters.NewMemoryTaskStore(),
		}
	} else {
		deps = liveProviders(zeroLogger, pipelineConfig)
	}

	segmenter := services.NewScriptSegmenter(zeroLogger)

	pipeline := services.NewPodcastPipeline(services.PodcastPipelineParams{
		Logger:    zeroLogger,
		Config:    pipelineConfig,
		Segmenter: segmenter,
		Scripts:   deps.scripts,
		Voices:    deps.voices,
		Blobs:     deps.blobs,
		Avatars:   deps.avatars,
		Media:     deps.media,
	})

	taskRunner := services.NewPodcastTaskRunner(zeroLogger, workerPool, pipeline, deps.tasks)

	podcastController := controllers.NewPodcastController(zeroLogger, pipeline, taskRunner, 0)

	router := gin.Default()

	err = router.SetTrustedProxies(nil)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set trusted proxies!")
	}

	if serverConfig.JwksURL != "" {
		authHandler, err := middleware.NewAuthHandler(serverConfig.JwksURL, zeroLogger)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to create auth handler!")
		}
		router.Use(authHandler.AuthMiddleware())
	} else {
		zeroLogger.Warn("JWKS_URL is not set, requests are not authenticated")
	}

	podcastController.RegisterRoutes(router)

	zeroLogger.InfoWithFields("Starting server", map[string]interface{}{
		"port": serverConfig.Port,
	})
	err = router.Run(":" + serverConfig.Port)
	if err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Failed to start server!")
	}
}

func liveProviders(logger outbound.LoggerPort, pipelineConfig *config.PipelineConfig) providers {
	gptConfig, err := config.GetGptConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get gpt config")
	}

	elevenLabsConfig, err := config.GetElevenLabsConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get eleven labs config")
	}

	heyGenConfig, err := config.GetHeyGenConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get heygen config")
	}

	s3Config, err := config.GetS3Config()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get s3 config")
	}

	dynamoConfig, err := config.GetDynamoConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to get dynamo config")
	}

	sess := session.Must(session.NewSessionWithOptions(session.Options{
		SharedConfigState: session.SharedConfigEnable,
	}))
	s3Client := s3.New(sess, &aws.Config{Region: aws.String(s3Config.Region)})

	contentFetcher := adapters.NewContentFetcher(logger, nil)

	taskStore := adapters.NewMemoryTaskStore()
	if dynamoConfig.TableName != "" {
		taskStore = adapters.NewDynamoTaskStore(logger, dynamodb.New(sess, &aws.Config{Region: aws.String(s3Config.Region)}), dynamoConfig)
	}

	return providers{
		scripts: adapters.NewGptScriptGenerator(gptConfig, logger),
		voices:  adapters.NewElevenLabsVoiceSynthesizer(contentFetcher, elevenLabsConfig, logger),
		blobs:   adapters.NewS3BlobStore(s3Client, s3Config, logger),
		avatars: adapters.NewHeyGenAvatarVideo(contentFetcher, heyGenConfig, logger),
		media:   adapters.NewFFmpegMediaConcatenator(logger, pipelineConfig.FFmpegBinary),
		tasks:   taskStore,
	}
}
