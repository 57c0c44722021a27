package repository

import (
	"gorm.io/gorm"

	"fitchain/gymhub/pkg/pagination"
)

// keyset applies the shared cursor convention: newest first, positioned
// strictly after the (created_at, id) of the previous page's last item.
// The expanded OR form keeps the predicate portable across postgres and
// the sqlite used in tests.
func keyset(cur *pagination.Cursor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cur != nil {
			db = db.Where(
				"created_at < ? OR (created_at = ? AND id < ?)",
				cur.CreatedAt, cur.CreatedAt, cur.ID,
			)
		}
		return db.Order("created_at DESC, id DESC")
	}
}
