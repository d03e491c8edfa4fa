package config

// DefaultDatabasePath is the default path for the import database.
const DefaultDatabasePath = "./zim-kindle.db"
