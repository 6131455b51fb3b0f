package audit

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestStoreSaveEvaluation(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	prev := 7.5
	event := EvaluationEvent{
		ApplicationID:    "6f9a6f3e-8f7a-4c58-9b7e-2f64f1f2b111",
		AdminID:          "admin-1",
		PedagogicalScore: 8,
		WritingScore:     9,
		AlignmentScore:   7,
		OverallScore:     8.0,
		PreviousOverall:  &prev,
	}

	mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(
			sqlmock.AnyArg(),       // id
			"applications",         // entity
			event.ApplicationID,    // entity_id
			"evaluate",             // action
			"admin-1",              // actor
			sqlmock.AnyArg(),       // before (JSON)
			sqlmock.AnyArg(),       // after (JSON)
			sqlmock.AnyArg(),       // message
			sqlmock.AnyArg(),       // created_at
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(event)
	if err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveLoginWithoutEntityID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	event := AuthenticateEvent{
		ProfileID: "admin-1",
		Email:     "maria@example.com",
		Success:   true,
	}

	mock.ExpectExec(`INSERT INTO audit_entries`).
		WithArgs(
			sqlmock.AnyArg(),
			"sessions",
			nil, // no entity id
			"login",
			"admin-1",
			nil, // no before snapshot
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
			sqlmock.AnyArg(),
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = store.Save(event)
	if err != nil {
		t.Errorf("Save() error = %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestStoreSaveSurfacesError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	defer db.Close()

	store := NewStoreWithDB(db)

	mock.ExpectExec(`INSERT INTO audit_entries`).
		WillReturnError(errors.New("connection refused"))

	if err := store.Save(StatusChangeEvent{ApplicationID: "app-1", AdminID: "admin-1", From: "received", To: "approved"}); err == nil {
		t.Error("expected error from failed insert")
	}
}

func TestStoreSaveNilDB(t *testing.T) {
	store := NewStoreWithDB(nil)
	if err := store.Save(AuthenticateEvent{Email: "x@example.com"}); err != nil {
		t.Errorf("nil db should be a no-op, got %v", err)
	}
}
