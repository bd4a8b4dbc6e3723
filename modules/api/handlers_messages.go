package api

import (
	"github.com/gofiber/fiber/v2"
)

// sidebarUsers handles GET /api/v1/messages/users: every user except the
// caller, for the conversation sidebar.
func (m *APIModule) sidebarUsers(c *fiber.Ctx) error {
	claims := claimsFromContext(c)

	users, err := m.authAdapter.ListUsers(c.UserContext(), claims.UserID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// conversation handles GET /api/v1/messages/:id: full history between the
// caller and the user in the path, oldest first.
func (m *APIModule) conversation(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	otherUserID := c.Params("id")

	messages, err := m.messageAdapter.Conversation(c.UserContext(), claims.UserID, otherUserID)
	if err != nil {
		return handleServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// sendMessage handles POST /api/v1/messages/send/:id. Multipart form with an
// optional text field and any number of image files under "images". The
// message is persisted before any real-time delivery is attempted, so the
// response always carries the durable record whatever the recipient's
// presence.
func (m *APIModule) sendMessage(c *fiber.Ctx) error {
	claims := claimsFromContext(c)
	receiverID := c.Params("id")
	text := c.FormValue("text")

	var imageURLs []string
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["images"] {
			data, err := readMultipartFile(header)
			if err != nil {
				return handleServiceError(c, err)
			}
			uploaded, err := m.mediaAdapter.Upload(c.UserContext(), header.Filename, data)
			if err != nil {
				return handleServiceError(c, err)
			}
			imageURLs = append(imageURLs, uploaded.URL)
		}
	}

	msg, err := m.messageAdapter.Send(c.UserContext(), claims.UserID, receiverID, text, imageURLs)
	if err != nil {
		return handleServiceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": msg})
}
