package specification

import (
	"strings"

	"gorm.io/gorm"
)

// ActiveOnly keeps documents whose active flag is set.
type ActiveOnly struct{}

func (s ActiveOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true)
}

// ByCategory matches the primary category exactly.
type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

// ByCategories matches any of the given primary categories.
type ByCategories struct {
	Categories []string
}

func (s ByCategories) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category IN ?", s.Categories)
}

// ByAnyTag matches documents whose JSONB tags array contains at least one of
// the given tags. Tags are stored lowercase.
type ByAnyTag struct {
	Tags []string
}

func (s ByAnyTag) Apply(db *gorm.DB) *gorm.DB {
	if len(s.Tags) == 0 {
		return db
	}
	clauses := make([]string, 0, len(s.Tags))
	args := make([]interface{}, 0, len(s.Tags))
	for _, tag := range s.Tags {
		clauses = append(clauses, "tags @> ?")
		args = append(args, `["`+strings.ToLower(tag)+`"]`)
	}
	return db.Where(strings.Join(clauses, " OR "), args...)
}

// WithEmbedding keeps documents that have an embedding stored.
type WithEmbedding struct{}

func (s WithEmbedding) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("embedding IS NOT NULL")
}

// ByToken filters sessions by their caller-supplied token.
type ByToken struct {
	Token string
}

func (s ByToken) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("token = ?", s.Token)
}

// BySessionID filters turns belonging to a session.
type BySessionID struct {
	SessionID interface{}
}

func (s BySessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("session_id = ?", s.SessionID)
}
