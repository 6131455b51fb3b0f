package audit

import (
	"database/sql"
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
)

// Store handles audit entry persistence to the audit_entries table
type Store struct {
	db *sql.DB
}

// Entry mirrors one audit_entries row.
type Entry struct {
	ID        string          `json:"id"`
	Entity    string          `json:"entity"`
	EntityID  string          `json:"entity_id,omitempty"`
	Action    string          `json:"action"`
	Actor     string          `json:"actor"`
	Before    json.RawMessage `json:"before,omitempty"`
	After     json.RawMessage `json:"after,omitempty"`
	Message   string          `json:"message"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewStore creates a new audit store from AUDIT_DATABASE_URL, falling back
// to DATABASE_URL. Returns nil if neither is set (audit persistence disabled).
func NewStore() (*Store, error) {
	dbURL := os.Getenv("AUDIT_DATABASE_URL")
	if dbURL == "" {
		dbURL = os.Getenv("DATABASE_URL")
	}
	if dbURL == "" {
		return nil, nil
	}

	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewStoreWithDB creates a store with an existing database connection
// Useful for testing with sqlmock
func NewStoreWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Save persists an audit event to the database. The table is append-only;
// no update or delete path exists anywhere in the codebase.
func (s *Store) Save(event Event) error {
	if s.db == nil {
		return nil
	}

	before, after := event.Snapshots()

	beforeJSON, err := marshalSnapshot(before)
	if err != nil {
		return err
	}
	afterJSON, err := marshalSnapshot(after)
	if err != nil {
		return err
	}

	var entityID any
	if id := event.EntityID(); id != "" {
		entityID = id
	}

	_, err = s.db.Exec(`
		INSERT INTO audit_entries (id, entity, entity_id, action, actor, before, after, message, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		uuid.NewString(),
		event.Entity(),
		entityID,
		event.Action(),
		event.Actor(),
		beforeJSON,
		afterJSON,
		event.Message(),
		time.Now().UTC(),
	)

	return err
}

// marshalSnapshot keeps nil snapshots as SQL NULL rather than JSON null.
func marshalSnapshot(snapshot map[string]any) ([]byte, error) {
	if snapshot == nil {
		return nil, nil
	}
	return json.Marshal(snapshot)
}

// DB returns the underlying database connection (for testing)
func (s *Store) DB() *sql.DB {
	return s.db
}
