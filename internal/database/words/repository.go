// Package words provides database operations for the vocabulary catalog.
//
// The catalog is written once by seeding and read-only afterwards. Inserts
// are idempotent on the term so re-seeding identical content never creates
// duplicate rows.
package words

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AnshUjlayan/vocabulator/internal/entities"
)

// Repository handles all vocabulary catalog operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new words repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Insert adds a word to the catalog. Returns true when a row was actually
// created; false when a word with the same term already exists and the
// insert was ignored.
func (r *Repository) Insert(word *entities.Word) (bool, error) {
	result := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "term"}},
		DoNothing: true,
	}).Create(word)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ByGroup returns all words of one group in seed insertion order.
func (r *Repository) ByGroup(groupID int) ([]entities.Word, error) {
	var words []entities.Word
	err := r.db.Where("group_id = ?", groupID).Order("seq ASC").Find(&words).Error
	return words, err
}

// All returns the whole catalog in stable (group, seq) order.
func (r *Repository) All() ([]entities.Word, error) {
	var words []entities.Word
	err := r.db.Order("group_id ASC, seq ASC").Find(&words).Error
	return words, err
}

// ByTerm looks a word up by its exact term.
func (r *Repository) ByTerm(term string) (*entities.Word, error) {
	var word entities.Word
	if err := r.db.Where("term = ?", term).First(&word).Error; err != nil {
		return nil, err
	}
	return &word, nil
}

// Groups returns the distinct group ids present in the catalog, ascending.
func (r *Repository) Groups() ([]int, error) {
	var groups []int
	err := r.db.Model(&entities.Word{}).
		Distinct("group_id").
		Order("group_id ASC").
		Pluck("group_id", &groups).Error
	return groups, err
}

// Count returns the total number of catalog entries.
func (r *Repository) Count() (int64, error) {
	var total int64
	err := r.db.Model(&entities.Word{}).Count(&total).Error
	return total, err
}

// MaxSeq returns the highest seq number used within a group, 0 when the
// group is empty. Seeding continues numbering from here when merging new
// entries into an existing group.
func (r *Repository) MaxSeq(groupID int) (int, error) {
	var maxSeq *int
	err := r.db.Model(&entities.Word{}).
		Where("group_id = ?", groupID).
		Select("MAX(seq)").
		Scan(&maxSeq).Error
	if err != nil {
		return 0, err
	}
	if maxSeq == nil {
		return 0, nil
	}
	return *maxSeq, nil
}
