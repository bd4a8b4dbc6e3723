package api

import (
	"encoding/json"
	"strconv"

	"github.com/avinash111921/MovieHub/modules/movies"
	"github.com/go-monolith/mono/pkg/helper"
	"github.com/gofiber/fiber/v2"
)

// upcomingMovies handles GET /api/v1/movies/upcoming?page=N.
func (m *APIModule) upcomingMovies(c *fiber.Ctx) error {
	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}

	req := movies.UpcomingRequest{Page: page}
	var resp movies.UpcomingResponse
	if err := helper.CallRequestReplyService(
		c.UserContext(),
		m.movieContainer,
		movies.ServiceUpcoming,
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return handleServiceError(c, err)
	}

	return c.JSON(resp)
}
