package config

// Default paths for local data
const (
	// DefaultDatabasePath is the default path for the vocabulary catalog database
	DefaultDatabasePath = "./vocab.db"

	// DefaultProgressPath is the default path for the learner's progress file
	DefaultProgressPath = "./progress.json"
)
