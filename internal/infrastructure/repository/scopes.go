package repository

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OwnerScope returns a GORM scope that filters by owner.
// It should be applied to all queries for owner-scoped entities.
func OwnerScope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if ownerID == uuid.Nil {
			// Fail-safe: a missing owner must never widen a query
			return db.Where("1 = 0")
		}
		return db.Where("owner_id = ?", ownerID)
	}
}

// BetweenScope bounds column by the optional start and end instants, both inclusive.
func BetweenScope(column string, start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where(column+" >= ?", start.UTC())
		}
		if end != nil {
			db = db.Where(column+" <= ?", end.UTC())
		}
		return db
	}
}

// numericColumn returns an expression that compares and orders a decimal
// column by value. SQLite stores decimals as text.
func numericColumn(db *gorm.DB, column string) string {
	if db.Dialector.Name() == "sqlite" {
		return "CAST(" + column + " AS REAL)"
	}
	return column
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a LIKE pattern matching s literally anywhere in the
// value. Use it with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
