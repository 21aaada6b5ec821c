package database

import (
	"strings"

	"gorm.io/gorm"

	"github.com/yukikurage/studio-pm-api/internal/utils"
)

// likeEscape is the LIKE escape character; it needs no quoting in any supported dialect.
const likeEscape = "!"

// Paginate applies pagination to a GORM query
func Paginate(params utils.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if params.Empty {
			return db.Where("1 = 0")
		}
		return db.Offset(params.Offset).Limit(params.Limit)
	}
}

// Search matches q case-insensitively as a substring of any of columns.
// Columns must come from a fixed list in code; only q is bound as a parameter.
func Search(q string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		term := strings.TrimSpace(q)
		if term == "" || len(columns) == 0 {
			return db
		}

		pattern := "%" + EscapeLike(strings.ToLower(term)) + "%"
		clauses := make([]string, len(columns))
		args := make([]interface{}, len(columns))
		for i, col := range columns {
			clauses[i] = "LOWER(" + col + ") LIKE ? ESCAPE '" + likeEscape + "'"
			args[i] = pattern
		}
		return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
	}
}

// EscapeLike escapes LIKE wildcards so s matches literally.
func EscapeLike(s string) string {
	r := strings.NewReplacer(
		likeEscape, likeEscape+likeEscape,
		"%", likeEscape+"%",
		"_", likeEscape+"_",
	)
	return r.Replace(s)
}

// InIDs restricts column to ids; an empty list matches nothing.
func InIDs(column string, ids []uint64) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if len(ids) == 0 {
			return db.Where("1 = 0")
		}
		return db.Where(column+" IN ?", ids)
	}
}
