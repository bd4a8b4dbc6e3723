package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/avinash111921/MovieHub/modules/api"
	"github.com/avinash111921/MovieHub/modules/auth"
	"github.com/avinash111921/MovieHub/modules/media"
	"github.com/avinash111921/MovieHub/modules/message"
	"github.com/avinash111921/MovieHub/modules/movies"
	"github.com/avinash111921/MovieHub/modules/realtime"
	"github.com/avinash111921/MovieHub/modules/tweet"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log.Println("=== MovieHub - Movie Community Platform ===")

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(shutdownTimeout),
		mono.WithLogLevel(mono.LogLevelInfo),
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	// Create modules
	authModule := auth.NewModule()
	tweetModule := tweet.NewModule()
	messageModule := message.NewModule()
	mediaModule := media.NewModule()
	moviesModule := movies.NewModule()
	realtimeModule := realtime.NewModule()
	apiModule := api.NewModule()

	// Inject the presence hub into the API module
	// (done manually because the hub is not exposed via ServiceContainer)
	apiModule.SetHub(realtimeModule.GetHub())

	// Register modules with the framework.
	// Order: independent modules first, then modules with dependencies
	// - auth/tweet/message/media/movies: core domain services
	// - realtime: event consumer (WebSocket presence + delivery)
	// - api: driving adapter (Fiber HTTP/WebSocket server)
	app.Register(authModule)
	app.Register(tweetModule)
	app.Register(messageModule) // persists messages, emits MessageCreated events
	app.Register(mediaModule)
	app.Register(moviesModule)
	app.Register(realtimeModule) // WebSocket hub + event consumer
	app.Register(apiModule)      // HTTP/WebSocket API

	// Start application
	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo()

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		shutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = "nats://localhost:4222"
	}

	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Println("Architecture:")
	log.Println("  - HTTP Framework: Fiber with WebSocket support")
	log.Println("  - Storage: GORM + SQLite, NATS JetStream object store for media")
	log.Printf("  - NATS URL: %s", natsURL)
	log.Println("")
	log.Println("Event-Driven Delivery:")
	log.Println("  - MessageCreated events -> realtime module -> receiver's WebSocket")
	log.Println("  - Connect/disconnect -> online-users-changed broadcast to all clients")
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%s):", port)
	log.Println("  GET    /health                          - Health check")
	log.Println("  POST   /api/v1/users/register           - Register (multipart, avatar required)")
	log.Println("  POST   /api/v1/users/login              - Login")
	log.Println("  POST   /api/v1/users/refresh-token      - Rotate token pair")
	log.Println("  POST   /api/v1/users/logout             - Logout (auth)")
	log.Println("  GET    /api/v1/users/current-user       - Current profile (auth)")
	log.Println("  POST   /api/v1/users/change-password    - Change password (auth)")
	log.Println("  PATCH  /api/v1/users/update-account     - Update profile (auth)")
	log.Println("  PATCH  /api/v1/users/avatar             - Replace avatar (auth)")
	log.Println("  PATCH  /api/v1/users/cover-image        - Replace cover image (auth)")
	log.Println("  POST   /api/v1/tweet                    - Create review (auth, multipart)")
	log.Println("  GET    /api/v1/tweet/tweets             - List all reviews")
	log.Println("  GET    /api/v1/tweet/tweets/user/:userId - List a user's reviews")
	log.Println("  PATCH  /api/v1/tweet/:tweetId           - Update review content (auth)")
	log.Println("  PATCH  /api/v1/tweet/poster/:tweetId    - Replace review poster (auth)")
	log.Println("  DELETE /api/v1/tweet/:tweetId           - Delete review (auth)")
	log.Println("  GET    /api/v1/messages/users           - Conversation sidebar (auth)")
	log.Println("  GET    /api/v1/messages/:id             - Conversation history (auth)")
	log.Println("  POST   /api/v1/messages/send/:id        - Send message (auth, multipart)")
	log.Println("  GET    /api/v1/movies/upcoming          - Upcoming movies (TMDB proxy)")
	log.Println("  GET    /api/v1/media/:id                - Serve an uploaded image")
	log.Println("")
	log.Printf("WebSocket Endpoint (ws://localhost:%s/ws):", port)
	log.Println("  Connect with: ws://localhost:3000/ws?userId=yourid")
	log.Println("  Server events: online-users-changed, new-message")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
