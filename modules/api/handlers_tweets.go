package api

import (
	"encoding/json"

	"github.com/avinash111921/MovieHub/modules/tweet"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// createTweet handles POST /api/v1/tweet. Multipart form: content field plus
// a required poster image.
func (m *APIModule) createTweet(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	content := c.FormValue("content")

	posterData, posterName, err := readFormFile(c, "poster")
	if err != nil {
		return handleServiceError(c, err)
	}
	if posterData == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Poster image is required",
		})
	}
	poster, err := m.mediaAdapter.Upload(c.UserContext(), posterName, posterData)
	if err != nil {
		return handleServiceError(c, err)
	}

	req := tweet.CreateRequest{
		OwnerID: claims.UserID,
		Content: content,
		Poster:  poster.URL,
	}
	var resp tweet.CreateResponse
	if err := m.callTweet(c, tweet.ServiceCreate, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// listTweets handles GET /api/v1/tweet/tweets (public).
func (m *APIModule) listTweets(c *fiber.Ctx) error {
	req := tweet.ListRequest{}
	var resp tweet.ListResponse
	if err := m.callTweet(c, tweet.ServiceList, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(resp)
}

// listUserTweets handles GET /api/v1/tweet/tweets/user/:userId (public).
func (m *APIModule) listUserTweets(c *fiber.Ctx) error {
	req := tweet.ListByOwnerRequest{OwnerID: c.Params("userId")}
	var resp tweet.ListByOwnerResponse
	if err := m.callTweet(c, tweet.ServiceListByOwner, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(resp)
}

// updateTweet handles PATCH /api/v1/tweet/:tweetId.
func (m *APIModule) updateTweet(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	var body UpdateTweetRequest
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Invalid request body",
		})
	}

	req := tweet.UpdateRequest{
		TweetID:     c.Params("tweetId"),
		RequesterID: claims.UserID,
		Content:     body.Content,
	}
	var resp tweet.UpdateResponse
	if err := m.callTweet(c, tweet.ServiceUpdate, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(resp)
}

// updateTweetPoster handles PATCH /api/v1/tweet/poster/:tweetId (multipart,
// field "poster").
func (m *APIModule) updateTweetPoster(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	posterData, posterName, err := readFormFile(c, "poster")
	if err != nil {
		return handleServiceError(c, err)
	}
	if posterData == nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   "bad_request",
			Message: "Poster image is required",
		})
	}
	poster, err := m.mediaAdapter.Upload(c.UserContext(), posterName, posterData)
	if err != nil {
		return handleServiceError(c, err)
	}

	req := tweet.UpdatePosterRequest{
		TweetID:     c.Params("tweetId"),
		RequesterID: claims.UserID,
		Poster:      poster.URL,
	}
	var resp tweet.UpdatePosterResponse
	if err := m.callTweet(c, tweet.ServiceUpdatePoster, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(resp)
}

// deleteTweet handles DELETE /api/v1/tweet/:tweetId.
func (m *APIModule) deleteTweet(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	req := tweet.DeleteRequest{
		TweetID:     c.Params("tweetId"),
		RequesterID: claims.UserID,
	}
	var resp tweet.DeleteResponse
	if err := m.callTweet(c, tweet.ServiceDelete, &req, &resp); err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(resp)
}

// callTweet invokes one tweet service through the service container.
func (m *APIModule) callTweet(c *fiber.Ctx, service string, req, resp any) error {
	return helper.CallRequestReplyService[any, any](
		c.UserContext(),
		m.tweetContainer,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	)
}
