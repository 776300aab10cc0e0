package repository

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dkestel/practice-hub/internal/models"
)

// setupACLTestDB creates an in-memory SQLite database for testing.
func setupACLTestDB(t *testing.T) *DB {
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

func createACLTestUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()

	user := &models.User{Username: &username}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestACLRepository_Authorize(t *testing.T) {
	db := setupACLTestDB(t)
	repo := NewACLRepository(db)
	fred := createACLTestUser(t, db, "fred")

	err := repo.Authorize(context.Background(), fred.ID, models.Problem{Language: "ruby", Slug: "bob"})
	if err != nil {
		t.Fatalf("Authorize() failed: %v", err)
	}

	problems, err := repo.AuthorizedProblems(context.Background(), fred.ID)
	if err != nil {
		t.Fatalf("AuthorizedProblems() failed: %v", err)
	}
	if len(problems) != 1 {
		t.Fatalf("Expected 1 problem, got %d", len(problems))
	}
	if problems[0].Language != "ruby" || problems[0].Slug != "bob" {
		t.Errorf("Expected ruby/bob, got %s", problems[0])
	}
}

func TestACLRepository_Authorize_Idempotent(t *testing.T) {
	db := setupACLTestDB(t)
	repo := NewACLRepository(db)
	fred := createACLTestUser(t, db, "fred")

	problem := models.Problem{Language: "ruby", Slug: "leap"}
	for i := 0; i < 2; i++ {
		if err := repo.Authorize(context.Background(), fred.ID, problem); err != nil {
			t.Fatalf("Authorize() attempt %d failed: %v", i+1, err)
		}
	}

	problems, err := repo.AuthorizedProblems(context.Background(), fred.ID)
	if err != nil {
		t.Fatalf("AuthorizedProblems() failed: %v", err)
	}
	if len(problems) != 1 {
		t.Errorf("Expected repeated grants to collapse into 1 problem, got %d", len(problems))
	}
}

func TestACLRepository_AuthorizedProblems_GrantOrder(t *testing.T) {
	db := setupACLTestDB(t)
	repo := NewACLRepository(db)
	fred := createACLTestUser(t, db, "fred")

	grants := []models.Problem{
		{Language: "ruby", Slug: "bob"},
		{Language: "go", Slug: "leap"},
		{Language: "ruby", Slug: "leap"},
	}
	for _, problem := range grants {
		if err := repo.Authorize(context.Background(), fred.ID, problem); err != nil {
			t.Fatalf("Authorize() failed: %v", err)
		}
	}

	problems, err := repo.AuthorizedProblems(context.Background(), fred.ID)
	if err != nil {
		t.Fatalf("AuthorizedProblems() failed: %v", err)
	}
	if len(problems) != 3 {
		t.Fatalf("Expected 3 problems, got %d", len(problems))
	}
	for i, want := range grants {
		if problems[i] != want {
			t.Errorf("Expected problems in grant order, position %d is %s, want %s", i, problems[i], want)
		}
	}
}

func TestACLRepository_AuthorizedProblems_EmptyForUnknownUser(t *testing.T) {
	db := setupACLTestDB(t)
	repo := NewACLRepository(db)

	problems, err := repo.AuthorizedProblems(context.Background(), 9999)
	if err != nil {
		t.Fatalf("AuthorizedProblems() failed: %v", err)
	}
	if len(problems) != 0 {
		t.Errorf("Expected no problems for unknown user, got %d", len(problems))
	}
}
