package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dkestel/practice-hub/internal/models"
)

// setupSubmissionTestDB creates an in-memory SQLite database for testing.
func setupSubmissionTestDB(t *testing.T) *DB {
	t.Helper()

	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to open in-memory database: %v", err)
	}

	db := &DB{gormDB}
	if err := db.AutoMigrate(); err != nil {
		t.Fatalf("Failed to auto-migrate tables: %v", err)
	}

	return db
}

func createSubmissionTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: &username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func createLatestSubmission(t *testing.T, repo *SubmissionRepository, userID uint, language, slug string) *models.Submission {
	t.Helper()

	submission := &models.Submission{UserID: userID, Language: language, Slug: slug, Latest: true}
	if err := repo.Create(context.Background(), submission); err != nil {
		t.Fatalf("Failed to create submission: %v", err)
	}
	return submission
}

func TestSubmissionRepository_Create_DemotesPreviousLatest(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewSubmissionRepository(db)
	sarah := createSubmissionTestUser(t, db, "sarah")

	first := createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")
	second := createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")

	var firstReloaded models.Submission
	if err := db.First(&firstReloaded, first.ID).Error; err != nil {
		t.Fatalf("Failed to reload first submission: %v", err)
	}
	if firstReloaded.Latest {
		t.Error("Expected first iteration to be demoted when a newer one arrives")
	}

	var secondReloaded models.Submission
	if err := db.First(&secondReloaded, second.ID).Error; err != nil {
		t.Fatalf("Failed to reload second submission: %v", err)
	}
	if !secondReloaded.Latest {
		t.Error("Expected second iteration to be the latest")
	}
}

func TestSubmissionRepository_LatestForProblem_ExcludesAuthor(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewSubmissionRepository(db)
	fred := createSubmissionTestUser(t, db, "fred")
	sarah := createSubmissionTestUser(t, db, "sarah")
	jaclyn := createSubmissionTestUser(t, db, "jaclyn")

	createLatestSubmission(t, repo, fred.ID, "ruby", "bob")
	createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")
	createLatestSubmission(t, repo, jaclyn.ID, "ruby", "bob")
	createLatestSubmission(t, repo, sarah.ID, "ruby", "leap") // different problem

	submissions, err := repo.LatestForProblem(context.Background(), models.Problem{Language: "ruby", Slug: "bob"}, fred.ID)
	if err != nil {
		t.Fatalf("LatestForProblem() failed: %v", err)
	}

	if len(submissions) != 2 {
		t.Fatalf("Expected 2 submissions (fred's own excluded), got %d", len(submissions))
	}
	for _, submission := range submissions {
		if submission.UserID == fred.ID {
			t.Error("Expected the requesting author's own submissions to be excluded")
		}
	}
}

func TestSubmissionRepository_LatestForProblem_SkipsSupersededIterations(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewSubmissionRepository(db)
	fred := createSubmissionTestUser(t, db, "fred")
	sarah := createSubmissionTestUser(t, db, "sarah")

	createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")
	latest := createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")

	submissions, err := repo.LatestForProblem(context.Background(), models.Problem{Language: "ruby", Slug: "bob"}, fred.ID)
	if err != nil {
		t.Fatalf("LatestForProblem() failed: %v", err)
	}

	if len(submissions) != 1 {
		t.Fatalf("Expected only sarah's latest iteration, got %d submissions", len(submissions))
	}
	if submissions[0].ID != latest.ID {
		t.Errorf("Expected submission %d, got %d", latest.ID, submissions[0].ID)
	}
}

func TestSubmissionRepository_HasCommentFrom(t *testing.T) {
	db := setupSubmissionTestDB(t)
	repo := NewSubmissionRepository(db)
	fred := createSubmissionTestUser(t, db, "fred")
	sarah := createSubmissionTestUser(t, db, "sarah")

	submission := createLatestSubmission(t, repo, sarah.ID, "ruby", "bob")

	reviewed, err := repo.HasCommentFrom(context.Background(), submission.ID, fred.ID)
	if err != nil {
		t.Fatalf("HasCommentFrom() failed: %v", err)
	}
	if reviewed {
		t.Error("Expected no prior review before commenting")
	}

	comment := &models.Comment{SubmissionID: submission.ID, UserID: fred.ID, Body: "nice"}
	if err := repo.CreateComment(context.Background(), comment); err != nil {
		t.Fatalf("CreateComment() failed: %v", err)
	}

	reviewed, err = repo.HasCommentFrom(context.Background(), submission.ID, fred.ID)
	if err != nil {
		t.Fatalf("HasCommentFrom() after comment failed: %v", err)
	}
	if !reviewed {
		t.Error("Expected HasCommentFrom to report the review")
	}
}
