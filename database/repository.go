package database

// Repository is the persistence gateway over the notes table
type Repository struct {
	db *DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}
