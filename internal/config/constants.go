package config

// Default paths and keys
const (
	// DefaultDatabasePath is the default path for the user-state database
	DefaultDatabasePath = "./lexshelf.db"

	// DefaultCatalogPath is the default path for the catalog dataset
	DefaultCatalogPath = "./catalog.json"

	// DefaultStateKey is the namespace key of the persisted user state
	DefaultStateKey = "library-user-state"
)
