package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nbekov/noted/internal/domain"
	"github.com/nbekov/noted/internal/hashing"
	"github.com/nbekov/noted/internal/usecase"
)

type dataFixture struct {
	users      *memUserRepo
	tokens     *memTokenRepo
	categories *memCategoryRepo
	notes      *memNoteRepo
	sessions   *usecase.SessionManager
	svc        *usecase.DataService
	hasher     *hashing.Hasher
	now        *time.Time
}

func newDataFixture(t *testing.T) *dataFixture {
	t.Helper()

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	users := newMemUserRepo()
	tokens := newMemTokenRepo()
	categories := newMemCategoryRepo()
	notes := newMemNoteRepo()

	sessions := usecase.NewSessionManager(tokens, users, usecase.DefaultTokenTTL,
		usecase.WithNow(func() time.Time { return now }))
	hasher := hashing.New("test-pepper-test-pepper")

	return &dataFixture{
		users:      users,
		tokens:     tokens,
		categories: categories,
		notes:      notes,
		sessions:   sessions,
		svc: usecase.NewDataService(sessions, categories, notes, users, tokens, hasher,
			usecase.WithDataNow(func() time.Time { return now })),
		hasher:     hasher,
		now:        &now,
	}
}

// addUser creates a user and returns a valid session token for them.
func (f *dataFixture) addUser(t *testing.T, username string) string {
	t.Helper()

	user, err := f.users.Create(context.Background(), &domain.User{
		Username: username,
		Email:    username + "@example.com",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}

	token, err := f.sessions.IssueToken(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token.Token
}

func wantNotFound(t *testing.T, err error, entity string) {
	t.Helper()

	var notFound *domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("want NotFoundError, got %v", err)
	}
	if notFound.Entity != entity {
		t.Errorf("entity = %q, want %q", notFound.Entity, entity)
	}
}

func TestCreateGetCategory_RoundTrip(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	created, err := f.svc.CreateCategory(context.Background(), token, "Groceries")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := f.svc.GetCategory(context.Background(), token, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Groceries" {
		t.Errorf("name = %q, want Groceries", got.Name)
	}
}

func TestOwnershipScoping_Category(t *testing.T) {
	f := newDataFixture(t)
	tokenA := f.addUser(t, "alice")
	tokenB := f.addUser(t, "bob")

	category, err := f.svc.CreateCategory(context.Background(), tokenA, "Private")
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Bob sees Alice's category exactly as if it did not exist.
	_, err = f.svc.GetCategory(context.Background(), tokenB, category.ID)
	wantNotFound(t, err, "category")

	_, err = f.svc.UpdateCategory(context.Background(), tokenB, category.ID, "Stolen")
	wantNotFound(t, err, "category")

	err = f.svc.DeleteCategory(context.Background(), tokenB, category.ID)
	wantNotFound(t, err, "category")

	// The category is untouched.
	got, err := f.svc.GetCategory(context.Background(), tokenA, category.ID)
	if err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if got.Name != "Private" {
		t.Errorf("name = %q after failed cross-account update", got.Name)
	}
}

func TestOwnershipScoping_Note(t *testing.T) {
	f := newDataFixture(t)
	tokenA := f.addUser(t, "alice")
	tokenB := f.addUser(t, "bob")

	category, err := f.svc.CreateCategory(context.Background(), tokenA, "Journal")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	note, err := f.svc.CreateNote(context.Background(), tokenA, category.ID, "Entry", "dear diary")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	_, err = f.svc.GetNote(context.Background(), tokenB, note.ID)
	wantNotFound(t, err, "note")

	_, err = f.svc.UpdateNote(context.Background(), tokenB, note.ID, "X", "")
	wantNotFound(t, err, "note")

	err = f.svc.DeleteNote(context.Background(), tokenB, note.ID)
	wantNotFound(t, err, "note")

	_, err = f.svc.ListNotes(context.Background(), tokenB, category.ID)
	wantNotFound(t, err, "category")
}

func TestListCategories_OnlyOwn(t *testing.T) {
	f := newDataFixture(t)
	tokenA := f.addUser(t, "alice")
	tokenB := f.addUser(t, "bob")

	if _, err := f.svc.CreateCategory(context.Background(), tokenA, "A1"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.CreateCategory(context.Background(), tokenA, "A2"); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := f.svc.CreateCategory(context.Background(), tokenB, "B1"); err != nil {
		t.Fatalf("create: %v", err)
	}

	categories, err := f.svc.ListCategories(context.Background(), tokenA)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(categories) != 2 {
		t.Errorf("alice sees %d categories, want 2", len(categories))
	}
	for _, c := range categories {
		if c.Name == "B1" {
			t.Error("alice sees bob's category")
		}
	}
}

func TestCreateNote_ContentBoundary(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	category, err := f.svc.CreateCategory(context.Background(), token, "Limits")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	// Exactly 2048 characters is accepted.
	if _, err := f.svc.CreateNote(context.Background(), token, category.ID, "max", strings.Repeat("x", 2048)); err != nil {
		t.Errorf("2048-char content rejected: %v", err)
	}

	// One more is not.
	_, err = f.svc.CreateNote(context.Background(), token, category.ID, "over", strings.Repeat("x", 2049))
	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validation.Field != "content" {
		t.Errorf("field = %q, want content", validation.Field)
	}
}

func TestCreateNote_EmptyContentAllowed(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	category, err := f.svc.CreateCategory(context.Background(), token, "Empty")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if _, err := f.svc.CreateNote(context.Background(), token, category.ID, "blank", ""); err != nil {
		t.Errorf("empty content rejected: %v", err)
	}
}

func TestCreateCategory_NameRequired(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	_, err := f.svc.CreateCategory(context.Background(), token, "  ")

	var validation *domain.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("want ValidationError, got %v", err)
	}
	if validation.Field != "name" || validation.Rule != "required" {
		t.Errorf("got {%s %s}, want {name required}", validation.Field, validation.Rule)
	}
}

func TestDataOps_ExpiredToken(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	*f.now = f.now.Add(usecase.DefaultTokenTTL + time.Minute)

	_, err := f.svc.ListCategories(context.Background(), token)
	var authErr *domain.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("want AuthError, got %v", err)
	}
	if authErr.Reason != domain.AuthTokenExpired {
		t.Errorf("reason = %s, want %s", authErr.Reason, domain.AuthTokenExpired)
	}
}

func TestUpdateNote_PersistsChanges(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	category, err := f.svc.CreateCategory(context.Background(), token, "Work")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	note, err := f.svc.CreateNote(context.Background(), token, category.ID, "Draft", "v1")
	if err != nil {
		t.Fatalf("create note: %v", err)
	}

	if _, err := f.svc.UpdateNote(context.Background(), token, note.ID, "Final", "v2"); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := f.svc.GetNote(context.Background(), token, note.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Final" || got.Content != "v2" {
		t.Errorf("note = {%s %s}, want {Final v2}", got.Name, got.Content)
	}
}

func TestGetProfile_CountsActiveSessions(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	user, err := f.users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	// A second live session plus one already-expired token.
	if _, err := f.sessions.IssueToken(context.Background(), user.ID); err != nil {
		t.Fatalf("issue: %v", err)
	}
	f.tokens.nextID++
	f.tokens.tokens[f.tokens.nextID] = &domain.Token{
		ID: f.tokens.nextID, UserID: user.ID, Token: "stale", ExpiresAt: f.now.Add(-time.Hour),
	}

	profile, err := f.svc.GetProfile(context.Background(), token)
	if err != nil {
		t.Fatalf("get profile: %v", err)
	}
	if profile.ActiveSessions != 2 {
		t.Errorf("active sessions = %d, want 2", profile.ActiveSessions)
	}
	if profile.Username != "alice" {
		t.Errorf("username = %q, want alice", profile.Username)
	}
}

func TestUpdateProfile_Conflicts(t *testing.T) {
	f := newDataFixture(t)
	tokenA := f.addUser(t, "alice")
	f.addUser(t, "bob")

	_, err := f.svc.UpdateProfile(context.Background(), tokenA, "bob", "alice@example.com", nil)
	var conflict *domain.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if conflict.Field != "username" {
		t.Errorf("field = %q, want username", conflict.Field)
	}

	_, err = f.svc.UpdateProfile(context.Background(), tokenA, "alice", "bob@example.com", nil)
	if !errors.As(err, &conflict) {
		t.Fatalf("want ConflictError, got %v", err)
	}
	if conflict.Field != "email" {
		t.Errorf("field = %q, want email", conflict.Field)
	}
}

func TestUpdateProfile_KeepingOwnValuesIsNotAConflict(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	profile, err := f.svc.UpdateProfile(context.Background(), token, "alice", "alice@example.com", nil)
	if err != nil {
		t.Fatalf("update with unchanged values: %v", err)
	}
	if profile.Username != "alice" {
		t.Errorf("username = %q, want alice", profile.Username)
	}
}

func TestUpdateProfile_RehashesPassword(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	newPassword := "brand-new-pw"
	if _, err := f.svc.UpdateProfile(context.Background(), token, "alice", "alice@example.com", &newPassword); err != nil {
		t.Fatalf("update: %v", err)
	}

	user, err := f.users.GetByUsername(context.Background(), "alice")
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !f.hasher.Verify(newPassword, user.PasswordHash) {
		t.Error("new password does not verify against stored hash")
	}
}

func TestDeleteCategory_GoneAfterwards(t *testing.T) {
	f := newDataFixture(t)
	token := f.addUser(t, "alice")

	category, err := f.svc.CreateCategory(context.Background(), token, "Temp")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := f.svc.DeleteCategory(context.Background(), token, category.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	_, err = f.svc.GetCategory(context.Background(), token, category.ID)
	wantNotFound(t, err, "category")
}
