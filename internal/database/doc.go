// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── words/           # Vocabulary catalog (seeded, read-mostly)
//	└── reviews/         # Append-only review journal
//
// # Using Sub-packages
//
// Each sub-package provides a Repository type with domain-specific operations:
//
//	// Initialize database connection
//	db, err := database.NewDatabase("./vocab.db")
//
//	// Create domain-specific repositories
//	wordsRepo := words.NewRepository(db.DB)
//	reviewsRepo := reviews.NewRepository(db.DB)
//
//	// Use repositories
//	group, err := wordsRepo.ByGroup(3)
//	history, err := reviewsRepo.ByWord(wordID, 10)
//
// Per-word learning stats deliberately live outside this layer: they are
// owned by the progress package and persisted to a JSON file, so the
// catalog stays replaceable without touching learner data.
package database
