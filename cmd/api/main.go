package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/tempohq/tempo-backend-go/internal/config"
	appHTTP "github.com/tempohq/tempo-backend-go/internal/handler/http"
	"github.com/tempohq/tempo-backend-go/internal/pkg/cache"
	"github.com/tempohq/tempo-backend-go/internal/pkg/cron"
	"github.com/tempohq/tempo-backend-go/internal/pkg/database"
	"github.com/tempohq/tempo-backend-go/internal/pkg/jwt"
	"github.com/tempohq/tempo-backend-go/internal/pkg/ocr"
	"github.com/tempohq/tempo-backend-go/internal/pkg/storage"
	"github.com/tempohq/tempo-backend-go/internal/repository/postgresql"
	captureService "github.com/tempohq/tempo-backend-go/internal/service/capture"
	"github.com/tempohq/tempo-backend-go/internal/service/photo"
	summaryService "github.com/tempohq/tempo-backend-go/internal/service/summary"
	targetService "github.com/tempohq/tempo-backend-go/internal/service/target"
	entryService "github.com/tempohq/tempo-backend-go/internal/service/timeentry"
	userService "github.com/tempohq/tempo-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	if err := database.Migrate(dsn, cfg.Database.MigrationsPath); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	var summaryCache *cache.Cache
	if cfg.Redis.Addr != "" {
		summaryCache, err = cache.New(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal("Failed to connect to Redis: ", err)
		}
	}

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	userRepo := postgresql.NewUserRepository(db)
	entryRepo := postgresql.NewTimeEntryRepository(db)
	targetRepo := postgresql.NewTargetRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)
	ocrClient := ocr.NewClient(cfg.OCR.BaseURL, cfg.OCR.Timeout)

	photoSvc := photo.NewPhotoService(fileStorage)
	entrySvc := entryService.NewTimeEntryService(db, entryRepo, photoSvc, summaryCache)
	summarySvc := summaryService.NewSummaryService(entryRepo, userRepo, targetRepo, summaryCache)
	targetSvc := targetService.NewTargetService(targetRepo, entryRepo)
	captureSvc := captureService.NewCaptureService(entrySvc, photoSvc, ocrClient)
	userSvc := userService.NewUserService(userRepo)

	entryHandler := appHTTP.NewTimeEntryHandler(entrySvc)
	summaryHandler := appHTTP.NewSummaryHandler(summarySvc)
	targetHandler := appHTTP.NewTargetHandler(targetSvc)
	captureHandler := appHTTP.NewCaptureHandler(captureSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	scheduler := cron.NewScheduler()
	cron.NewLedgerJobs(entryRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(
		cfg,
		jwtService,
		entryHandler,
		summaryHandler,
		targetHandler,
		captureHandler,
		userHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
