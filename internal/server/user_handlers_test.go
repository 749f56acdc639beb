package server

import (
	"fmt"
	"net/http"
	"testing"

	"devvault/internal/models"

	"github.com/gofiber/fiber/v2"
)

func newUserTestApp(s *Server) *fiber.App {
	app := fiber.New()
	users := app.Group("/api/users", s.AuthRequired())
	users.Get("/me", s.GetMyProfile)
	users.Get("/", s.AdminRequired(), s.GetAllUsers)
	users.Post("/:id/promote-admin", s.AdminRequired(), s.PromoteToAdmin)
	users.Post("/:id/demote-admin", s.AdminRequired(), s.DemoteFromAdmin)
	return app
}

func TestPromoteAndDemote(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newUserTestApp(s)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	target := createTestUser(t, db, "target", models.RoleUser)
	bearer := authHeader(t, s, admin)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/promote-admin", target.ID), bearer, nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("promote: expected 200, got %d", resp.StatusCode)
	}

	var reloaded models.User
	if err := db.First(&reloaded, target.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Role != models.RoleAdmin {
		t.Fatalf("expected admin role, got %s", reloaded.Role)
	}

	resp = doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/demote-admin", target.ID), bearer, nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("demote: expected 200, got %d", resp.StatusCode)
	}
	if err := db.First(&reloaded, target.ID).Error; err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.Role != models.RoleUser {
		t.Fatalf("expected user role, got %s", reloaded.Role)
	}
}

func TestPromoteRequiresAdmin(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newUserTestApp(s)
	user := createTestUser(t, db, "regular", models.RoleUser)
	target := createTestUser(t, db, "target", models.RoleUser)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/promote-admin", target.ID), authHeader(t, s, user), nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", resp.StatusCode)
	}
}

func TestAdminCannotDemoteSelf(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newUserTestApp(s)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost,
		fmt.Sprintf("/api/users/%d/demote-admin", admin.ID), authHeader(t, s, admin), nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}

	var reloaded models.User
	if err := db.First(&reloaded, admin.ID).Error; err != nil {
		t.Fatalf("reload admin: %v", err)
	}
	if reloaded.Role != models.RoleAdmin {
		t.Fatalf("self-demotion went through: %s", reloaded.Role)
	}
}

func TestSetRoleUnknownUser(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newUserTestApp(s)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	resp := doJSON(t, app, http.MethodPost, "/api/users/999/promote-admin",
		authHeader(t, s, admin), nil)
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetAllUsersAdminOnly(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newUserTestApp(s)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)
	createTestUser(t, db, "member", models.RoleUser)

	resp := doJSON(t, app, http.MethodGet, "/api/users/", authHeader(t, s, admin), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var users []models.User
	decodeBody(t, resp, &users)
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
