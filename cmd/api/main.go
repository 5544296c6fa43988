package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/ironlady/crm-backend/internal/contract"
	"github.com/ironlady/crm-backend/internal/infra/database"
	"github.com/ironlady/crm-backend/internal/infra/http/handlers"
	"github.com/ironlady/crm-backend/internal/infra/http/middleware"
	"github.com/ironlady/crm-backend/internal/infra/integration/advisor"
	"github.com/ironlady/crm-backend/internal/infra/mail"
	"github.com/ironlady/crm-backend/internal/infra/queue"
	"github.com/ironlady/crm-backend/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	if err := database.RunMigrations(db); err != nil {
		log.Fatal(err)
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	appRepo := database.NewApplicationRepository(db)
	chatRepo := database.NewChatRepository(db)

	if err := database.Seed(context.Background(), leadRepo, appRepo, chatRepo); err != nil {
		log.Printf("⚠️ seeding sample data: %v", err)
	}

	// 2. Queue + follow-up worker. The broker is optional: without it the
	// CRM still works, leads just get no welcome email.
	var producer queue.ProducerInterface
	var rabbitMQ *queue.RabbitMQ
	rabbitMQ, err = queue.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ unavailable, follow-up emails disabled: %v", err)
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()

		producer = queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)

		mailSender := mail.NewEmailSender(
			os.Getenv("MAIL_HOST"), 587,
			os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
			os.Getenv("MAIL_FROM"),
		)
		worker := queue.NewWorker(rabbitMQ.Ch, mailSender)
		go worker.Start(queue.QueueName)
	}

	// 3. Advisor completion client
	advisorClient := advisor.NewClient(
		os.Getenv("ADVISOR_API_KEY"),
		os.Getenv("ADVISOR_API_URL"),
		os.Getenv("ADVISOR_MODEL"),
	)

	// 4. UseCases
	sendMessageUC := usecase.NewSendMessageUseCase(chatRepo, advisorClient)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(leadRepo, producer)
	appHandler := handlers.NewApplicationHandler(appRepo)
	chatHandler := handlers.NewChatHandler(chatRepo, sendMessageUC)

	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	bind(r, "leads.list", leadHandler.List)
	bind(r, "leads.get", leadHandler.Get)
	bind(r, "leads.create", leadHandler.Create)
	bind(r, "leads.update", leadHandler.Update)
	bind(r, "leads.delete", leadHandler.Delete)

	bind(r, "applications.list", appHandler.List)
	bind(r, "applications.get", appHandler.Get)
	bind(r, "applications.create", appHandler.Create)
	bind(r, "applications.update", appHandler.Update)
	bind(r, "applications.delete", appHandler.Delete)

	bind(r, "conversations.list", chatHandler.ListConversations)
	bind(r, "conversations.get", chatHandler.GetConversation)
	bind(r, "conversations.create", chatHandler.CreateConversation)
	bind(r, "conversations.send", chatHandler.SendMessage)

	r.Get("/api/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 CRM backend listening on :%s", port)
	if err := http.ListenAndServe(":"+port, r); err != nil {
		log.Fatal(err)
	}
}

// bind registers one contract table entry on the router. The table is the
// single place paths and methods are defined.
func bind(r chi.Router, operation string, handler http.HandlerFunc) {
	ep, ok := contract.API[operation]
	if !ok {
		log.Fatalf("unknown contract operation %q", operation)
	}
	r.Method(ep.Method, contract.ChiPath(ep.Path), handler)
}
