package api

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/avinash111921/MovieHub/modules/realtime"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// setupRoutes configures all HTTP routes.
func (m *APIModule) setupRoutes() {
	// Health check
	m.app.Get("/health", m.healthHandler)

	// WebSocket endpoint
	m.app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	m.app.Get("/ws", websocket.New(m.handleWebSocket))

	// REST API v1
	api := m.app.Group("/api/v1")
	protected := AuthMiddleware(m.authAdapter)

	// Accounts
	users := api.Group("/users")
	users.Post("/register", m.registerUser)
	users.Post("/login", m.loginUser)
	users.Post("/refresh-token", m.refreshToken)
	users.Post("/logout", protected, m.logoutUser)
	users.Post("/change-password", protected, m.changePassword)
	users.Get("/current-user", protected, m.currentUser)
	users.Patch("/update-account", protected, m.updateAccount)
	users.Patch("/avatar", protected, m.updateAvatar)
	users.Patch("/cover-image", protected, m.updateCoverImage)

	// Direct messages
	messages := api.Group("/messages", protected)
	messages.Get("/users", m.sidebarUsers)
	messages.Post("/send/:id", m.sendMessage)
	messages.Get("/:id", m.conversation)

	// Movie reviews
	tweets := api.Group("/tweet")
	tweets.Get("/tweets", m.listTweets)
	tweets.Get("/tweets/user/:userId", m.listUserTweets)
	tweets.Post("/", protected, m.createTweet)
	tweets.Patch("/poster/:tweetId", protected, m.updateTweetPoster)
	tweets.Patch("/:tweetId", protected, m.updateTweet)
	tweets.Delete("/:tweetId", protected, m.deleteTweet)

	// Upcoming movies feed
	api.Get("/movies/upcoming", m.upcomingMovies)

	// Stored images
	api.Get("/media/:id", m.serveMedia)
}

// healthHandler handles GET /health.
func (m *APIModule) healthHandler(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status: "healthy",
		Details: map[string]any{
			"module":            "api",
			"connected_clients": m.hub.ClientCount(),
			"online_users":      len(m.hub.OnlineUsers()),
		},
	})
}

// handleWebSocket handles WebSocket connections at /ws. The userId query
// parameter identifies the connection; without it the connection stays
// anonymous (receives presence broadcasts, never directed messages).
func (m *APIModule) handleWebSocket(c *websocket.Conn) {
	clientID := uuid.New().String()
	userID := c.Query("userId")

	client := &realtime.Client{
		ID:     clientID,
		UserID: userID,
		Conn:   c,
	}

	m.hub.Register(client)
	defer func() {
		m.hub.Unregister(client)
		log.Printf("[api] WebSocket client disconnected: %s", clientID)
	}()

	log.Printf("[api] WebSocket client connected: %s (user=%q)", clientID, userID)

	// The channel is server-push only; the read loop exists to observe
	// disconnection (close frame, timeout, network failure alike).
	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[api] Client %s closed connection", clientID)
			} else {
				log.Printf("[api] Read error from %s: %v", clientID, err)
			}
			break
		}
	}
}

// serveMedia handles GET /api/v1/media/:id.
func (m *APIModule) serveMedia(c *fiber.Ctx) error {
	data, meta, err := m.mediaAdapter.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return handleServiceError(c, err)
	}
	c.Set(fiber.HeaderContentType, meta.ContentType)
	return c.Send(data)
}

// readFormFile reads one uploaded file from a multipart form. A missing file
// yields (nil, "", nil) so callers can treat optional uploads uniformly.
func readFormFile(c *fiber.Ctx, field string) ([]byte, string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", nil
	}
	data, err := readMultipartFile(header)
	if err != nil {
		return nil, "", err
	}
	return data, header.Filename, nil
}

func readMultipartFile(header *multipart.FileHeader) ([]byte, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
