package handlers

import (
	"github.com/uptrace/bun"

	"github.com/padraicbc/formstats/store"
)

// Handler holds shared dependencies used by all route handlers.
type Handler struct {
	db     *bun.DB
	store  *store.Store
	JWTKey []byte
}

// New creates a Handler with the given database, store and JWT signing key.
func New(db *bun.DB, st *store.Store, jwtKey []byte) *Handler {
	return &Handler{db: db, store: st, JWTKey: jwtKey}
}
