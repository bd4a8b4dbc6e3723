package tweet

import (
	domain "github.com/avinash111921/MovieHub/domain/tweet"
)

// Service names registered in the service container.
const (
	ServiceCreate       = "create-tweet"
	ServiceGet          = "get-tweet"
	ServiceList         = "list-tweets"
	ServiceListByOwner  = "list-user-tweets"
	ServiceUpdate       = "update-tweet"
	ServiceUpdatePoster = "update-tweet-poster"
	ServiceDelete       = "delete-tweet"
)

// CreateRequest represents a tweet creation request.
type CreateRequest struct {
	OwnerID string `json:"owner_id"`
	Content string `json:"content"`
	Poster  string `json:"poster"`
}

// CreateResponse carries the created tweet.
type CreateResponse struct {
	Tweet *domain.Tweet `json:"tweet"`
}

// GetRequest asks for one tweet by ID.
type GetRequest struct {
	TweetID string `json:"tweet_id"`
}

// GetResponse carries one tweet.
type GetResponse struct {
	Tweet *domain.Tweet `json:"tweet"`
}

// ListRequest asks for all tweets.
type ListRequest struct{}

// ListResponse carries all tweets, newest first.
type ListResponse struct {
	Tweets []*domain.Tweet `json:"tweets"`
}

// ListByOwnerRequest asks for one user's tweets.
type ListByOwnerRequest struct {
	OwnerID string `json:"owner_id"`
}

// ListByOwnerResponse carries one user's tweets, newest first.
type ListByOwnerResponse struct {
	Tweets []*domain.Tweet `json:"tweets"`
}

// UpdateRequest represents a content update.
type UpdateRequest struct {
	TweetID     string `json:"tweet_id"`
	RequesterID string `json:"requester_id"`
	Content     string `json:"content"`
}

// UpdateResponse carries the updated tweet.
type UpdateResponse struct {
	Tweet *domain.Tweet `json:"tweet"`
}

// UpdatePosterRequest represents a poster image update.
type UpdatePosterRequest struct {
	TweetID     string `json:"tweet_id"`
	RequesterID string `json:"requester_id"`
	Poster      string `json:"poster"`
}

// UpdatePosterResponse carries the updated tweet.
type UpdatePosterResponse struct {
	Tweet *domain.Tweet `json:"tweet"`
}

// DeleteRequest represents a deletion request.
type DeleteRequest struct {
	TweetID     string `json:"tweet_id"`
	RequesterID string `json:"requester_id"`
}

// DeleteResponse represents a deletion response.
type DeleteResponse struct {
	Success bool `json:"success"`
}
