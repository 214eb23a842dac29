package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/huangsam/relicdb/internal/contract"
	"github.com/huangsam/relicdb/internal/weightdb"
	"github.com/huangsam/relicdb/schema"
)

// handleGetWeights returns stored records keyed by id, optionally filtered by ?ids=a,b
func (s *Server) handleGetWeights(w http.ResponseWriter, r *http.Request) {
	db, err := weightdb.Load(s.dbPath)
	if err != nil {
		contract.Logger.Error().Err(err).Msg("load database")
		respondError(w, http.StatusInternalServerError, "Failed to load database")
		return
	}

	if ids := contract.SplitIDs(r.URL.Query().Get("ids")); len(ids) > 0 {
		if db, err = db.Subset(ids); err != nil {
			respondError(w, http.StatusNotFound, err.Error())
			return
		}
	}

	records := make(map[string]json.RawMessage, db.Len())
	for _, id := range db.Keys() {
		records[id], _ = db.Raw(id)
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"records":     records,
		"total_count": db.Len(),
	})
}

// handleGetWeight returns a single record by id
func (s *Server) handleGetWeight(w http.ResponseWriter, r *http.Request) {
	id, table, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"id":     id,
		"record": table,
	})
}

// handleGetWeightRows returns a single record flattened into rows
func (s *Server) handleGetWeightRows(w http.ResponseWriter, r *http.Request) {
	id, table, ok := s.lookup(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, table.Rows(id))
}

// lookup resolves the {id} parameter, writing the error response on failure.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (string, schema.WeightTable, bool) {
	id := chi.URLParam(r, "id")

	db, err := weightdb.Load(s.dbPath)
	if err != nil {
		contract.Logger.Error().Err(err).Msg("load database")
		respondError(w, http.StatusInternalServerError, "Failed to load database")
		return id, schema.WeightTable{}, false
	}

	table, err := db.Table(id)
	if errors.Is(err, schema.ErrCharacterNotFound) {
		respondError(w, http.StatusNotFound, "Character not found")
		return id, table, false
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to decode record")
		return id, table, false
	}
	return id, table, true
}
