package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"mutirao/db"
	"mutirao/db/migrations"
	"mutirao/internal/config"
	"mutirao/internal/handlers"
	"mutirao/internal/service"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}
	if cfg.Environment != "development" {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.PostgresConn == "" {
		log.Fatal("POSTGRES_CONN env variable is not set")
	}

	dbConn, err := sqlx.Connect("postgres", cfg.PostgresConn)
	if err != nil {
		log.Fatalf("Cannot connect to DB: %v", err)
	}
	defer dbConn.Close()

	if err := migrations.Run(dbConn.DB); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store := db.NewStorage(dbConn)
	notifier := service.NewNotificationService(store, log)
	requests := service.NewRequestService(store, notifier, log)
	ratings := service.NewRatingService(store, notifier, log)
	chats := service.NewChatService(store, notifier, log)
	h := handlers.NewHandler(requests, ratings, chats, notifier)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", h.PingHandler)

		// requests and lifecycle
		r.Post("/requests", h.CreateRequestHandler)
		r.Get("/requests", h.GetRequestsHandler)
		r.Get("/requests/{requestId}", h.GetRequestHandler)
		r.Patch("/requests/{requestId}", h.EditRequestHandler)
		r.Delete("/requests/{requestId}", h.DeleteRequestHandler)
		r.Post("/requests/{requestId}/interest", h.DeclareInterestHandler)
		r.Post("/requests/{requestId}/helper", h.AssignHelperHandler)
		r.Post("/requests/{requestId}/finalize", h.FinalizeRequestHandler)
		r.Post("/requests/{requestId}/withdraw", h.WithdrawHandler)
		r.Post("/requests/{requestId}/cancel", h.CancelRequestHandler)

		// ratings
		r.Post("/requests/{requestId}/ratings", h.RateRequestHandler)
		r.Get("/users/{userId}/ratings", h.GetUserRatingsHandler)
		r.Get("/users/{userId}/ratings/average", h.GetUserRatingAverageHandler)

		// chats
		r.Post("/requests/{requestId}/chats", h.OpenChatHandler)
		r.Get("/requests/{requestId}/chats", h.GetRequestChatsHandler)
		r.Get("/chats/{chatId}", h.GetChatHandler)
		r.Get("/chats/{chatId}/messages", h.GetChatMessagesHandler)
		r.Post("/chats/{chatId}/messages", h.PostMessageHandler)

		// notifications
		r.Get("/notifications", h.GetNotificationsHandler)
		r.Get("/notifications/unread-count", h.GetUnreadCountHandler)
		r.Post("/notifications/{notificationId}/read", h.MarkNotificationReadHandler)

		// categories
		r.Get("/categories", h.GetCategoriesHandler)
	})

	log.Infof("Starting server on %s", cfg.ServerAddress)
	log.Fatal(http.ListenAndServe(cfg.ServerAddress, r))
}
