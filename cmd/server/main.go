package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/eduforge/lms/internal/config"
	"github.com/eduforge/lms/internal/handlers"
	"github.com/eduforge/lms/internal/lifecycle"
	"github.com/eduforge/lms/internal/logging"
	"github.com/eduforge/lms/internal/middleware"
	"github.com/eduforge/lms/internal/models"
	"github.com/eduforge/lms/internal/mykafka"
	"github.com/eduforge/lms/internal/service"
	"github.com/eduforge/lms/internal/storage"
	httpserver "github.com/eduforge/lms/internal/transport/http"
)

func main() {
	configuration, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(configuration.LOG_LEVEL)

	db, err := config.InitDB(configuration)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	pdfStore, err := storage.New(configuration.PDFDir, "/pdfs")
	if err != nil {
		log.Fatal(err)
	}
	videoStore, err := storage.New(configuration.VideoDir, "/video-files")
	if err != nil {
		log.Fatal(err)
	}

	var producer *mykafka.Producer
	if configuration.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{configuration.KAFKA_ADDRESS})
	}

	auth := &service.AuthService{
		DB:        db,
		JWTSecret: []byte(configuration.JWT_SECRET),
		TokenTTL:  configuration.TokenTTL,
	}

	courses := &lifecycle.Manager[models.Course]{
		DB:      db,
		Files:   pdfStore,
		FileRef: func(c *models.Course) string { return c.PDFURL },
	}
	videos := &lifecycle.Manager[models.Video]{
		DB:        db,
		Files:     videoStore,
		FileRef:   func(v *models.Video) string { return v.VideoURL },
		ListOrder: "created_at DESC",
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(logger))

	deps := httpserver.Deps{
		Auth:          auth,
		AuthHandler:   &handlers.AuthHandler{Auth: auth, Producer: producer},
		CourseHandler: &handlers.CourseHandler{Courses: courses, Producer: producer},
		QuizHandler: &handlers.QuizHandler{
			Quizzes:   &lifecycle.Manager[models.Quiz]{DB: db},
			Questions: &lifecycle.Manager[models.Question]{DB: db},
			Results:   &lifecycle.Manager[models.QuizResult]{DB: db},
		},
		VideoHandler:  &handlers.VideoHandler{Videos: videos, Files: videoStore, Producer: producer},
		UploadHandler: &handlers.UploadHandler{PDFs: pdfStore},
		PDFDir:        configuration.PDFDir,
		VideoDir:      configuration.VideoDir,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         ":" + configuration.SERVER_PORT,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	log.Println("shutdown complete")
}
