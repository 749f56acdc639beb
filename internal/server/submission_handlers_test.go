package server

import (
	"net/http"
	"testing"

	"devvault/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func newSubmissionTestApp(s *Server) *fiber.App {
	app := fiber.New()
	app.Post("/api/submissions", s.AuthRequired(), s.CreateSubmission)
	app.Get("/api/submissions", s.GetApprovedSubmissions)
	app.Get("/api/submissions/mine", s.AuthRequired(), s.GetMySubmissions)
	app.Get("/api/submissions/:id", s.OptionalAuth(), s.GetSubmission)
	return app
}

func createTestSubmission(t *testing.T, db *gorm.DB, owner *models.User, kind models.SubmissionKind, status models.SubmissionStatus) *models.Submission {
	t.Helper()
	sub := models.Submission{
		Kind:    kind,
		Title:   "A " + string(kind),
		Body:    "body text",
		OwnerID: owner.ID,
		Status:  status,
	}
	if err := db.Create(&sub).Error; err != nil {
		t.Fatalf("create submission: %v", err)
	}
	return &sub
}

func TestCreateSubmission(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newSubmissionTestApp(s)
	owner := createTestUser(t, db, "owner", models.RoleUser)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", authHeader(t, s, owner), fiber.Map{
		"kind":     "resource",
		"title":    "Useful CLI tools",
		"body":     "A curated list",
		"category": "tooling",
		"link":     "https://example.com/tools",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var created models.Submission
	decodeBody(t, resp, &created)
	if created.Status != models.StatusPending {
		t.Fatalf("expected pending status, got %s", created.Status)
	}
	if created.OwnerID != owner.ID {
		t.Fatalf("expected owner %d, got %d", owner.ID, created.OwnerID)
	}
	if created.DecidedAt != nil || created.DecidedByUserID != nil {
		t.Fatal("new submission must not carry decision metadata")
	}
}

func TestCreateSubmissionRequiresAuth(t *testing.T) {
	t.Parallel()

	s, _ := setupHandlerTest(t)
	app := newSubmissionTestApp(s)

	resp := doJSON(t, app, http.MethodPost, "/api/submissions", "", fiber.Map{
		"kind": "resource", "title": "t", "body": "b",
	})
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.StatusCode)
	}
}

func TestCreateSubmissionValidation(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newSubmissionTestApp(s)
	owner := createTestUser(t, db, "owner", models.RoleUser)
	bearer := authHeader(t, s, owner)

	cases := []struct {
		name string
		body fiber.Map
	}{
		{"unknown kind", fiber.Map{"kind": "mixtape", "title": "t", "body": "b"}},
		{"empty title", fiber.Map{"kind": "discussion", "title": "  ", "body": "b"}},
		{"resource without link", fiber.Map{"kind": "resource", "title": "t", "body": "b"}},
		{"bad link scheme", fiber.Map{"kind": "resource", "title": "t", "body": "b", "link": "ftp://x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodPost, "/api/submissions", bearer, tc.body)
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestGetApprovedSubmissionsIsPublicAndFiltered(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newSubmissionTestApp(s)
	owner := createTestUser(t, db, "owner", models.RoleUser)

	createTestSubmission(t, db, owner, models.KindResource, models.StatusApproved)
	createTestSubmission(t, db, owner, models.KindTutorial, models.StatusApproved)
	createTestSubmission(t, db, owner, models.KindResource, models.StatusPending)
	createTestSubmission(t, db, owner, models.KindResource, models.StatusRejected)

	resp := doJSON(t, app, http.MethodGet, "/api/submissions", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var listed []models.Submission
	decodeBody(t, resp, &listed)
	if len(listed) != 2 {
		t.Fatalf("expected 2 approved submissions, got %d", len(listed))
	}
	for _, sub := range listed {
		if sub.Status != models.StatusApproved {
			t.Fatalf("public listing leaked status %s", sub.Status)
		}
	}

	resp = doJSON(t, app, http.MethodGet, "/api/submissions?kind=tutorial", "", nil)
	var tutorials []models.Submission
	decodeBody(t, resp, &tutorials)
	if len(tutorials) != 1 || tutorials[0].Kind != models.KindTutorial {
		t.Fatalf("kind filter failed: %+v", tutorials)
	}
}

func TestGetSubmissionVisibility(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newSubmissionTestApp(s)
	owner := createTestUser(t, db, "owner", models.RoleUser)
	other := createTestUser(t, db, "other", models.RoleUser)
	admin := createTestUser(t, db, "admin", models.RoleAdmin)

	pending := createTestSubmission(t, db, owner, models.KindDiscussion, models.StatusPending)
	approved := createTestSubmission(t, db, owner, models.KindDiscussion, models.StatusApproved)

	pendingPath := submissionPath(pending.ID)
	approvedPath := submissionPath(approved.ID)

	cases := []struct {
		name       string
		path       string
		bearer     string
		wantStatus int
	}{
		{"anonymous sees approved", approvedPath, "", http.StatusOK},
		{"anonymous hidden from pending", pendingPath, "", http.StatusNotFound},
		{"stranger hidden from pending", pendingPath, authHeader(t, s, other), http.StatusNotFound},
		{"owner sees own pending", pendingPath, authHeader(t, s, owner), http.StatusOK},
		{"admin sees pending", pendingPath, authHeader(t, s, admin), http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := doJSON(t, app, http.MethodGet, tc.path, tc.bearer, nil)
			defer func() { _ = resp.Body.Close() }()
			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("expected %d, got %d", tc.wantStatus, resp.StatusCode)
			}
		})
	}
}

func TestGetMySubmissions(t *testing.T) {
	t.Parallel()

	s, db := setupHandlerTest(t)
	app := newSubmissionTestApp(s)
	owner := createTestUser(t, db, "owner", models.RoleUser)
	other := createTestUser(t, db, "other", models.RoleUser)

	createTestSubmission(t, db, owner, models.KindIssue, models.StatusPending)
	createTestSubmission(t, db, owner, models.KindResource, models.StatusRejected)
	createTestSubmission(t, db, other, models.KindResource, models.StatusApproved)

	resp := doJSON(t, app, http.MethodGet, "/api/submissions/mine", authHeader(t, s, owner), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var mine []models.Submission
	decodeBody(t, resp, &mine)
	if len(mine) != 2 {
		t.Fatalf("expected 2 own submissions, got %d", len(mine))
	}
	for _, sub := range mine {
		if sub.OwnerID != owner.ID {
			t.Fatalf("listing leaked submission owned by %d", sub.OwnerID)
		}
	}
}
