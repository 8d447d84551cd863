// Package server wires the HTTP router, middleware, and all route
// definitions. It is the composition root: the database, services, and
// handlers are all constructed here and nowhere else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/seongmin/studyhub/internal/config"
	"github.com/seongmin/studyhub/internal/handler"
	"github.com/seongmin/studyhub/internal/middleware"
	sqliteRepo "github.com/seongmin/studyhub/internal/repository/sqlite"
	"github.com/seongmin/studyhub/internal/service"
)

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown so the WAL is flushed before exit.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// repositories, services, handlers, routes. Each layer only receives
// the layer directly below it.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	userService := service.NewUserService(s.db, s.logger)
	groupService := service.NewStudyGroupService(s.db, s.logger)
	dataService := service.NewStudyDataService(s.db, s.db, s.logger)
	questionService := service.NewQuestionService(s.db, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	groupHandler := handler.NewStudyGroupHandler(groupService, s.logger)
	dataHandler := handler.NewStudyDataHandler(dataService, s.logger)
	questionHandler := handler.NewQuestionHandler(questionService, s.logger)

	s.router.Route("/user", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Get("/{id}", userHandler.HandleGetByID)
		r.Post("/", userHandler.HandleCreate)
		r.Put("/{id}", userHandler.HandleUpdate)
		r.Delete("/{id}", userHandler.HandleDelete)
	})

	s.router.Route("/studygroup", func(r chi.Router) {
		r.Get("/", groupHandler.HandleList)
		r.Get("/{id}", groupHandler.HandleGetByID)
		r.Post("/", groupHandler.HandleCreate)
		r.Put("/{id}", groupHandler.HandleUpdate)
		r.Delete("/{id}", groupHandler.HandleDelete)
		r.Post("/people/{id}", groupHandler.HandleAddMember)
		r.Delete("/people/{id}", groupHandler.HandleRemoveMember)
	})

	s.router.Route("/studydata", func(r chi.Router) {
		r.Get("/", dataHandler.HandleList)
		r.Get("/bystudy/{groupId}", dataHandler.HandleListByGroup)
		r.Get("/{id}", dataHandler.HandleGetByID)
		r.Post("/", dataHandler.HandleCreate)
		r.Put("/{id}", dataHandler.HandleUpdate)
		r.Delete("/{id}", dataHandler.HandleDelete)
	})

	s.router.Route("/question", func(r chi.Router) {
		r.Get("/{studyDataId}", questionHandler.HandleListByStudyData)
		r.Post("/", questionHandler.HandleCreate)
		r.Put("/{studyDataId}/{questionId}", questionHandler.HandleUpdate)
		r.Post("/like/{studyDataId}/{questionId}", questionHandler.HandleLike)
		r.Delete("/like/{studyDataId}/{questionId}", questionHandler.HandleUnlike)
		r.Delete("/{studyDataId}/{questionId}", questionHandler.HandleDelete)
	})
}

// Start runs the HTTP server until a shutdown signal arrives, then
// drains in-flight requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
