package server

import (
	"errors"

	"devvault/internal/models"
	"devvault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreateSubmission handles POST /api/submissions
// @Summary Create submission
// @Description Submit a new resource, tutorial, discussion, suggestion, issue, or report for moderation
// @Tags submissions
// @Accept json
// @Produce json
// @Param request body object{kind=string,title=string,body=string,category=string,link=string} true "Submission"
// @Success 201 {object} models.Submission
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /submissions [post]
func (s *Server) CreateSubmission(c *fiber.Ctx) error {
	var req struct {
		Kind     string `json:"kind"`
		Title    string `json:"title"`
		Body     string `json:"body"`
		Category string `json:"category"`
		Link     string `json:"link"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	sub, err := s.moderation.Submit(c.UserContext(), currentUser(c), service.SubmitInput{
		Kind:     models.SubmissionKind(req.Kind),
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		Link:     req.Link,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(sub)
}

// GetApprovedSubmissions handles GET /api/submissions
// @Summary List approved submissions
// @Description Public catalog of approved submissions, newest first, optionally filtered by kind
// @Tags submissions
// @Produce json
// @Param kind query string false "Filter by submission kind"
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Page offset"
// @Success 200 {array} models.Submission
// @Router /submissions [get]
func (s *Server) GetApprovedSubmissions(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	subs, err := s.moderation.ListPublic(c.UserContext(), service.ListInput{
		Kind:   models.SubmissionKind(c.Query("kind")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(subs)
}

// GetSubmission handles GET /api/submissions/:id
// @Summary Get a submission
// @Description Fetch one submission. Non-approved items are visible only to their owner and admins; others receive 404.
// @Tags submissions
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 404 {object} object{error=string}
// @Router /submissions/{id} [get]
func (s *Server) GetSubmission(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	sub, err := s.moderation.Get(c.UserContext(), currentUser(c), id)
	if err != nil {
		// A hidden submission reads as missing, so its existence is not leaked.
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeForbidden {
			return models.RespondWithError(c, fiber.StatusNotFound,
				models.NewNotFoundError("Submission", id))
		}
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(sub)
}

// GetMySubmissions handles GET /api/submissions/mine
// @Summary List own submissions
// @Description All submissions owned by the authenticated user, any status
// @Tags submissions
// @Produce json
// @Param kind query string false "Filter by submission kind"
// @Success 200 {array} models.Submission
// @Failure 401 {object} object{error=string}
// @Router /submissions/mine [get]
func (s *Server) GetMySubmissions(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	subs, err := s.moderation.ListOwn(c.UserContext(), currentUser(c), service.ListInput{
		Kind:   models.SubmissionKind(c.Query("kind")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(subs)
}
