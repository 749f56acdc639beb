package server

import (
	"devvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
// @Summary Current user profile
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} object{error=string}
// @Router /users/me [get]
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	return c.JSON(currentUser(c))
}

// GetAllUsers handles GET /api/users
// @Summary List users
// @Description All registered users (admin only)
// @Tags users
// @Produce json
// @Success 200 {array} models.User
// @Failure 403 {object} object{error=string}
// @Router /users [get]
func (s *Server) GetAllUsers(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	users, err := s.userRepo.List(c.UserContext(), limit, offset)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(users)
}

// PromoteToAdmin handles POST /api/users/:id/promote-admin
// @Summary Promote user to admin
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/promote-admin [post]
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	return s.setRole(c, models.RoleAdmin, "User promoted to admin")
}

// DemoteFromAdmin handles POST /api/users/:id/demote-admin
// @Summary Demote admin to regular user
// @Tags users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /users/{id}/demote-admin [post]
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	return s.setRole(c, models.RoleUser, "Admin demoted to user")
}

func (s *Server) setRole(c *fiber.Ctx, role models.UserRole, message string) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	actor := currentUser(c)
	if role == models.RoleUser && actor != nil && actor.ID == id {
		// Self-demotion could lock the last admin out of the admin surface.
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Admins cannot demote themselves"))
	}

	if err := s.userRepo.SetRole(c.UserContext(), id, role); err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": message,
	})
}
