package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"wiki_system/internal/models"
	"wiki_system/internal/repository/db"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	conn, err := db.InitDB(context.Background(), ":memory:", nil)
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestSQLite_UserUniqueness(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))

	if err := repo.Credentials.Create(ctx, "alice", "h1"); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	err := repo.Credentials.Create(ctx, "alice", "h2")
	if !errors.Is(err, models.ErrDuplicateUser) {
		t.Fatalf("expected ErrDuplicateUser, got %v", err)
	}

	u, err := repo.Credentials.GetByCredentials(ctx, "alice", "h1")
	if err != nil || u == nil {
		t.Fatalf("original record should be intact: (%+v, %v)", u, err)
	}
	u, err = repo.Credentials.GetByCredentials(ctx, "alice", "h2")
	if err != nil || u != nil {
		t.Fatalf("second hash must not be stored: (%+v, %v)", u, err)
	}
}

func TestSQLite_PageLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	base := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	if _, err := repo.Pages.Create(ctx, "X", "body", "alice", base); err != nil {
		t.Fatalf("Create X: %v", err)
	}
	_, err := repo.Pages.Create(ctx, "X", "other", "bob", base.Add(time.Second))
	if !errors.Is(err, models.ErrTitleConflict) {
		t.Fatalf("expected ErrTitleConflict, got %v", err)
	}
	p, err := repo.Pages.GetByTitle(ctx, "X")
	if err != nil || p == nil || p.Content != "body" || p.Author != "alice" {
		t.Fatalf("original page should be intact: (%+v, %v)", p, err)
	}

	updatedAt := base.Add(90 * time.Millisecond)
	if err := repo.Pages.Update(ctx, "X", "v2", "bob", updatedAt); err != nil {
		t.Fatalf("Update: %v", err)
	}
	p, err = repo.Pages.GetByTitle(ctx, "X")
	if err != nil {
		t.Fatalf("GetByTitle: %v", err)
	}
	if p.Content != "v2" || p.Author != "bob" {
		t.Fatalf("update not applied: %+v", p)
	}
	if !p.CreatedAt.Equal(base) || !p.UpdatedAt.Equal(updatedAt) || !p.UpdatedAt.After(p.CreatedAt) {
		t.Fatalf("unexpected timestamps: created=%v updated=%v", p.CreatedAt, p.UpdatedAt)
	}

	if err := repo.Pages.Update(ctx, "missing", "v", "bob", updatedAt); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSQLite_ListOrderedByRecency(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	base := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	for i, title := range []string{"A", "B", "C"} {
		if _, err := repo.Pages.Create(ctx, title, "x", "alice", base.Add(time.Duration(i)*time.Second)); err != nil {
			t.Fatalf("Create %s: %v", title, err)
		}
	}
	if err := repo.Pages.Update(ctx, "A", "y", "bob", base.Add(10*time.Second)); err != nil {
		t.Fatalf("Update A: %v", err)
	}

	list, err := repo.Pages.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, s := range list {
		got = append(got, s.Title)
	}
	want := []string{"A", "C", "B"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
	if list[0].Author != "bob" {
		t.Fatalf("expected A to be authored by bob, got %q", list[0].Author)
	}
}

func TestSQLite_ConcurrentCreateSameTitle(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(openTestDB(t))
	at := time.Date(2025, time.April, 1, 12, 0, 0, 0, time.UTC)

	const writers = 16
	errs := make([]error, writers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, errs[i] = repo.Pages.Create(ctx, "Race", fmt.Sprintf("body %d", i), fmt.Sprintf("user%d", i), at)
		}(i)
	}
	close(start)
	wg.Wait()

	created, conflicts := 0, 0
	for i, err := range errs {
		switch {
		case err == nil:
			created++
		case errors.Is(err, models.ErrTitleConflict):
			conflicts++
		default:
			t.Fatalf("writer %d: unexpected error %v", i, err)
		}
	}
	if created != 1 || conflicts != writers-1 {
		t.Fatalf("got %d created and %d conflicts, want 1 and %d", created, conflicts, writers-1)
	}

	list, err := repo.Pages.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(list) != 1 || list[0].Title != "Race" {
		t.Fatalf("expected a single Race page, got %+v", list)
	}
}
