package server

import (
	"devvault/internal/models"
	"devvault/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPendingSubmissions handles GET /api/admin/submissions/pending
// @Summary List pending submissions
// @Description Moderation queue, newest first, optionally filtered by kind (admin only)
// @Tags admin
// @Produce json
// @Param kind query string false "Filter by submission kind"
// @Success 200 {array} models.Submission
// @Failure 403 {object} object{error=string}
// @Router /admin/submissions/pending [get]
func (s *Server) GetPendingSubmissions(c *fiber.Ctx) error {
	limit, offset := parsePagination(c)
	subs, err := s.moderation.ListPending(c.UserContext(), currentUser(c), service.ListInput{
		Kind:   models.SubmissionKind(c.Query("kind")),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(subs)
}

// UpdateSubmissionStatus handles PUT /api/admin/submissions/:id/status
// @Summary Decide a submission
// @Description Approve or reject a pending submission. A submission can be decided exactly once.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Submission ID"
// @Param request body object{outcome=string,notes=string} true "Decision"
// @Success 200 {object} models.Submission
// @Failure 400 {object} object{error=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Router /admin/submissions/{id}/status [put]
func (s *Server) UpdateSubmissionStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}

	var req struct {
		Outcome string `json:"outcome"`
		Notes   string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	outcome := service.DecisionOutcome(req.Outcome)
	if outcome != service.OutcomeApprove && outcome != service.OutcomeReject {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Outcome must be 'approve' or 'reject'"))
	}

	return s.decide(c, id, outcome, req.Notes)
}

// ApproveSubmission handles POST /api/admin/submissions/:id/approve
// @Summary Approve submission
// @Tags admin
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 409 {object} object{error=string}
// @Router /admin/submissions/{id}/approve [post]
func (s *Server) ApproveSubmission(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	return s.decide(c, id, service.OutcomeApprove, s.decisionNotes(c))
}

// RejectSubmission handles POST /api/admin/submissions/:id/reject
// @Summary Reject submission
// @Tags admin
// @Produce json
// @Param id path int true "Submission ID"
// @Success 200 {object} models.Submission
// @Failure 409 {object} object{error=string}
// @Router /admin/submissions/{id}/reject [post]
func (s *Server) RejectSubmission(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return nil
	}
	return s.decide(c, id, service.OutcomeReject, s.decisionNotes(c))
}

// decisionNotes reads optional review notes from the request body, tolerating
// an empty body on the approve/reject convenience routes.
func (s *Server) decisionNotes(c *fiber.Ctx) string {
	var req struct {
		Notes string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		_ = c.BodyParser(&req)
	}
	return req.Notes
}

func (s *Server) decide(c *fiber.Ctx, id uint, outcome service.DecisionOutcome, notes string) error {
	sub, err := s.moderation.Decide(c.UserContext(), currentUser(c), id, outcome, notes)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(sub)
}

// GetAdminStats handles GET /api/admin/stats
// @Summary Moderation statistics
// @Description Submission counts broken down by kind and status (admin only)
// @Tags admin
// @Produce json
// @Success 200 {object} object{counts=[]repository.KindStatusCount}
// @Failure 403 {object} object{error=string}
// @Router /admin/stats [get]
func (s *Server) GetAdminStats(c *fiber.Ctx) error {
	counts, err := s.moderation.StatusBreakdown(c.UserContext(), currentUser(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"counts": counts,
	})
}
