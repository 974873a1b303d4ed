package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	"wiki_system/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPageSQLite_Create(t *testing.T) {
	at := time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

	t.Run("success returns id", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertPageSQL)).
			WithArgs("Go", "body", "alice", at, at).
			WillReturnResult(sqlmock.NewResult(7, 1))

		id, err := NewPageSQLite(db).Create(context.Background(), "Go", "body", "alice", at)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if id != 7 {
			t.Fatalf("expected id 7, got %d", id)
		}
	})

	t.Run("title conflict", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertPageSQL)).
			WillReturnError(errors.New("constraint failed: UNIQUE constraint failed: pages.title (2067)"))

		_, err := NewPageSQLite(db).Create(context.Background(), "Go", "other", "bob", at)
		if !errors.Is(err, models.ErrTitleConflict) {
			t.Fatalf("expected ErrTitleConflict, got %v", err)
		}
	})

	t.Run("last insert id error", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectExec(regexp.QuoteMeta(insertPageSQL)).
			WillReturnResult(sqlmock.NewErrorResult(errors.New("no last id")))

		_, err := NewPageSQLite(db).Create(context.Background(), "Go", "body", "alice", at)
		if err == nil || !strings.Contains(err.Error(), "get last insert id") {
			t.Fatalf("expected last insert id error, got %v", err)
		}
	})
}

func TestPageSQLite_Update(t *testing.T) {
	at := time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		mockExpect func(sqlmock.Sqlmock)
		wantIs     error
		wantErr    bool
	}{
		{
			name: "success",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updatePageSQL)).
					WithArgs("v2", "bob", at, "Go").
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "missing title",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updatePageSQL)).
					WithArgs("v2", "bob", at, "Go").
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: true,
			wantIs:  models.ErrNotFound,
		},
		{
			name: "exec error",
			mockExpect: func(m sqlmock.Sqlmock) {
				m.ExpectExec(regexp.QuoteMeta(updatePageSQL)).
					WillReturnError(errors.New("locked"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := newMockDB(t)
			defer cleanup()
			tt.mockExpect(mock)

			err := NewPageSQLite(db).Update(context.Background(), "Go", "v2", "bob", at)
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error, got nil")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Fatalf("expected %v, got %v", tt.wantIs, err)
			}
		})
	}
}

func TestPageSQLite_List(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	t1 := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	t0 := t1.Add(-time.Hour)
	rows := sqlmock.NewRows([]string{"title", "author", "updated_at"}).
		AddRow("B", "bob", t1).
		AddRow("A", "alice", t0)
	mock.ExpectQuery(regexp.QuoteMeta(listPagesSQL)).WillReturnRows(rows)

	got, err := NewPageSQLite(db).List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].Title != "B" || got[1].Title != "A" {
		t.Fatalf("unexpected listing: %+v", got)
	}
	if !got[0].UpdatedAt.Equal(t1) {
		t.Fatalf("unexpected updated_at: %v", got[0].UpdatedAt)
	}
}

func TestPageSQLite_List_QueryError(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(listPagesSQL)).WillReturnError(errors.New("boom"))

	if _, err := NewPageSQLite(db).List(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}

func TestPageSQLite_GetByTitle(t *testing.T) {
	created := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	updated := created.Add(time.Minute)

	t.Run("found", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		rows := sqlmock.NewRows([]string{"id", "title", "content", "author", "created_at", "updated_at"}).
			AddRow(3, "Go", "body", "alice", created, updated)
		mock.ExpectQuery(regexp.QuoteMeta(selectPageByTitleSQL)).WithArgs("Go").WillReturnRows(rows)

		p, err := NewPageSQLite(db).GetByTitle(context.Background(), "Go")
		if err != nil {
			t.Fatalf("GetByTitle: %v", err)
		}
		if p == nil || p.ID != 3 || p.Content != "body" || !p.UpdatedAt.Equal(updated) {
			t.Fatalf("unexpected page: %+v", p)
		}
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, cleanup := newMockDB(t)
		defer cleanup()

		mock.ExpectQuery(regexp.QuoteMeta(selectPageByTitleSQL)).WithArgs("nope").WillReturnError(sql.ErrNoRows)

		p, err := NewPageSQLite(db).GetByTitle(context.Background(), "nope")
		if err != nil || p != nil {
			t.Fatalf("expected (nil, nil), got (%+v, %v)", p, err)
		}
	})
}
