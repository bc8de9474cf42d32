package models

// All lists every persisted model, in dependency order. Used by tests and the
// SQLite dev bootstrap to AutoMigrate.
func All() []any {
	return []any{
		&Product{},
		&Category{},
		&Settings{},
		&Admin{},
	}
}
