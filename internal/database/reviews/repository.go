// Package reviews persists the append-only review journal.
package reviews

import (
	"time"

	"gorm.io/gorm"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// Repository handles review journal operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Record appends one review event to the journal.
func (r *Repository) Record(event *entities.ReviewEvent) error {
	return r.db.Create(event).Error
}

// ByWord returns the review history of one word, most recent first.
func (r *Repository) ByWord(wordID uint, limit int) ([]entities.ReviewEvent, error) {
	var events []entities.ReviewEvent
	query := r.db.Where("word_id = ?", wordID).Order("reviewed_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&events).Error
	return events, err
}

// BySession returns all events recorded for one session in review order.
func (r *Repository) BySession(sessionID string) ([]entities.ReviewEvent, error) {
	var events []entities.ReviewEvent
	err := r.db.Where("session_id = ?", sessionID).
		Order("reviewed_at ASC").
		Find(&events).Error
	return events, err
}

// CountSince returns how many reviews happened at or after the cutoff.
func (r *Repository) CountSince(cutoff time.Time) (int64, error) {
	var total int64
	err := r.db.Model(&entities.ReviewEvent{}).
		Where("reviewed_at >= ?", cutoff).
		Count(&total).Error
	return total, err
}
