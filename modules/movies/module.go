package movies

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ServiceUpcoming is the service name registered in the service container.
const ServiceUpcoming = "upcoming-movies"

// cacheTTL bounds how often the upstream feed is hit; the listing changes
// at most daily.
const cacheTTL = 10 * time.Minute

// MoviesModule proxies the upcoming-movies feed with a small TTL cache.
type MoviesModule struct {
	client *Client

	mu    sync.Mutex
	cache map[int]*cacheEntry
}

type cacheEntry struct {
	page      *UpcomingPage
	fetchedAt time.Time
}

// Compile-time interface checks.
var _ mono.Module = (*MoviesModule)(nil)
var _ mono.ServiceProviderModule = (*MoviesModule)(nil)
var _ mono.HealthCheckableModule = (*MoviesModule)(nil)

// NewModule creates a new MoviesModule.
func NewModule() *MoviesModule {
	return &MoviesModule{
		client: NewClient(os.Getenv("TMDB_BASE_URL"), os.Getenv("TMDB_API_KEY")),
		cache:  make(map[int]*cacheEntry),
	}
}

// Name returns the module name.
func (m *MoviesModule) Name() string {
	return "movies"
}

// Start initializes the module.
func (m *MoviesModule) Start(_ context.Context) error {
	if os.Getenv("TMDB_API_KEY") == "" {
		log.Println("[movies] WARNING: TMDB_API_KEY not set, upcoming feed will be unavailable")
	}
	log.Println("[movies] Module started")
	return nil
}

// Stop shuts down the module.
func (m *MoviesModule) Stop(_ context.Context) error {
	log.Println("[movies] Module stopped")
	return nil
}

// Health returns the health status of the module.
func (m *MoviesModule) Health(_ context.Context) mono.HealthStatus {
	configured := os.Getenv("TMDB_API_KEY") != ""
	message := "operational"
	if !configured {
		message = "api key not configured"
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: message,
		Details: map[string]any{
			"api_key_configured": configured,
		},
	}
}

// RegisterServices registers request-reply services in the service container.
func (m *MoviesModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container,
		ServiceUpcoming,
		json.Unmarshal,
		json.Marshal,
		m.handleUpcoming,
	); err != nil {
		return fmt.Errorf("failed to register upcoming-movies service: %w", err)
	}

	log.Printf("[movies] Registered services: upcoming-movies")
	return nil
}

// UpcomingRequest asks for one page of upcoming movies.
type UpcomingRequest struct {
	Page int `json:"page"`
}

// UpcomingResponse carries one page of upcoming movies.
type UpcomingResponse struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

func (m *MoviesModule) handleUpcoming(ctx context.Context, req UpcomingRequest, _ *mono.Msg) (UpcomingResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}

	result, err := m.upcoming(ctx, page)
	if err != nil {
		return UpcomingResponse{}, err
	}
	return UpcomingResponse{
		Page:         result.Page,
		Results:      result.Results,
		TotalPages:   result.TotalPages,
		TotalResults: result.TotalResults,
	}, nil
}

// upcoming serves from cache when fresh, otherwise fetches upstream.
func (m *MoviesModule) upcoming(ctx context.Context, page int) (*UpcomingPage, error) {
	m.mu.Lock()
	if entry, ok := m.cache[page]; ok && time.Since(entry.fetchedAt) < cacheTTL {
		m.mu.Unlock()
		return entry.page, nil
	}
	m.mu.Unlock()

	result, err := m.client.Upcoming(ctx, page)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.cache[page] = &cacheEntry{page: result, fetchedAt: time.Now()}
	m.mu.Unlock()
	return result, nil
}
