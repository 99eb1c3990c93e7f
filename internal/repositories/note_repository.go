package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/Mapsqc/ProjetLajoie/internal/models"
	"github.com/google/uuid"
)

// NoteRepository defines the interface for reservation note persistence.
// Notes form an append-only audit trail: there are deliberately no update or
// delete operations here. Rows only ever disappear through the FK cascade if
// a reservation is purged at the storage level.
type NoteRepository interface {
	CreateNote(executor SQLExecutor, note *models.ReservationNote) (*models.ReservationNote, error)
	GetNotesByReservation(reservationID string) ([]models.ReservationNote, error)
}

type noteRepository struct {
	db *sql.DB
}

// NewNoteRepository creates a new instance of NoteRepository.
func NewNoteRepository(db *sql.DB) NoteRepository {
	return &noteRepository{db: db}
}

func (r *noteRepository) CreateNote(executor SQLExecutor, note *models.ReservationNote) (*models.ReservationNote, error) {
	if note.ID == "" {
		note.ID = uuid.NewString()
	}
	note.CreatedAt = time.Now()

	query := `INSERT INTO reservation_notes (id, reservation_id, text, author, created_at)
	          VALUES ($1, $2, $3, $4, $5)
	          RETURNING created_at`

	err := executor.QueryRow(query,
		note.ID, note.ReservationID, note.Text, note.Author, note.CreatedAt,
	).Scan(&note.CreatedAt)

	if err != nil {
		if mapped := mapPQError(err); mapped != nil {
			return nil, mapped
		}
		return nil, fmt.Errorf("%w: creating reservation note: %v", ErrDatabaseError, err)
	}
	return note, nil
}

// GetNotesByReservation returns the notes for a reservation, oldest first.
func (r *noteRepository) GetNotesByReservation(reservationID string) ([]models.ReservationNote, error) {
	query := `SELECT id, reservation_id, text, author, created_at
	          FROM reservation_notes
	          WHERE reservation_id = $1
	          ORDER BY created_at ASC, id ASC`

	rows, err := r.db.Query(query, reservationID)
	if err != nil {
		return nil, fmt.Errorf("%w: querying reservation notes: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	notes := []models.ReservationNote{}
	for rows.Next() {
		var note models.ReservationNote
		if err := rows.Scan(&note.ID, &note.ReservationID, &note.Text, &note.Author, &note.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: scanning reservation note: %v", ErrDatabaseError, err)
		}
		notes = append(notes, note)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating reservation note rows: %v", ErrDatabaseError, err)
	}
	return notes, nil
}
