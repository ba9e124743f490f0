package main

import (
	"go.uber.org/zap"

	"github.com/st-united/AICP-API-sub001/internal/config"
	"github.com/st-united/AICP-API-sub001/internal/database"
	logger "github.com/st-united/AICP-API-sub001/internal/logging"
	"github.com/st-united/AICP-API-sub001/internal/models"
	"github.com/st-united/AICP-API-sub001/internal/repository"
	"github.com/st-united/AICP-API-sub001/internal/router"
	"github.com/st-united/AICP-API-sub001/internal/services"
)

func main() {
	// The config package needs a logger before the logging section is
	// known, so load it under a plain console logger first.
	bootLog, err := zap.NewDevelopment()
	if err != nil {
		panic("failed to initialize bootstrap logger: " + err.Error())
	}
	if err := config.Init(".", bootLog); err != nil {
		bootLog.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize the real logger from the loaded logging section
	log, err := logger.Init(".", &logger.Options{
		Directory:  config.Conf.Logging.Directory,
		MaxSize:    config.Conf.Logging.MaxSize,
		MaxBackups: config.Conf.Logging.MaxBackups,
		MaxAge:     config.Conf.Logging.MaxAge,
		Compress:   config.Conf.Logging.Compress,
	})
	if err != nil {
		bootLog.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Seed the competency framework and the default level scales at startup
	seed, err := models.LoadFrameworkSeed(config.Conf.Grading.FrameworkFile)
	if err != nil {
		log.Fatal("Failed to load competency framework", zap.Error(err))
	}
	frameworkRepo := repository.NewFrameworkRepository(database.DB)
	if err := frameworkRepo.Seed(seed); err != nil {
		log.Fatal("Failed to seed competency framework", zap.Error(err))
	}
	if err := frameworkRepo.SeedDefaultLevelScales(); err != nil {
		log.Fatal("Failed to seed level scales", zap.Error(err))
	}

	// Start the auto-submit scheduler
	examRepo := repository.NewExamRepository(database.DB)
	submissionService := services.NewSubmissionService(database.DB, log)
	scheduler := services.NewScheduler(log, examRepo, submissionService)
	scheduler.Start()

	// Setup router, passing the logger to it
	r := router.Setup(log, database.DB)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
