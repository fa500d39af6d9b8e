package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tablekit/tablekit/pkg/cache"
	apperrors "github.com/tablekit/tablekit/pkg/errors"
	"github.com/tablekit/tablekit/pkg/observability"
	"github.com/tablekit/tablekit/pkg/session"
	"github.com/tablekit/tablekit/pkg/source"
	"github.com/tablekit/tablekit/pkg/table"
)

// filterParamPrefix marks per-column filter query parameters, e.g.
// ?filter.city=berlin.
const filterParamPrefix = "filter."

// createTableResponse is returned after a dataset upload.
type createTableResponse struct {
	SessionID   string         `json:"session_id"`
	DatasetHash string         `json:"dataset_hash"`
	Name        string         `json:"name,omitempty"`
	Columns     []table.Column `json:"columns"`
	Total       int            `json:"total"`
}

// tableInfoResponse describes an existing session.
type tableInfoResponse struct {
	SessionID   string         `json:"session_id"`
	DatasetHash string         `json:"dataset_hash"`
	Name        string         `json:"name,omitempty"`
	Columns     []table.Column `json:"columns"`
	Total       int            `json:"total"`
	Query       table.Query    `json:"query"`
	ExpiresAt   string         `json:"expires_at"`
}

// handleCreateTable uploads a dataset and opens a session over it.
func (s *Server) handleCreateTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	var ds source.Dataset
	if err := json.NewDecoder(r.Body).Decode(&ds); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "invalid dataset JSON"))
		return
	}
	if len(ds.Columns) == 0 {
		writeError(w, apperrors.New(apperrors.ErrCodeInvalidDataset, "dataset has no columns"))
		return
	}
	if ds.Name != "" {
		if err := apperrors.ValidateDatasetName(ds.Name); err != nil {
			writeError(w, err)
			return
		}
	}
	for _, col := range ds.Columns {
		if err := apperrors.ValidateColumnKey(col.Key); err != nil {
			writeError(w, err)
			return
		}
	}

	src := source.NewMemory(ds.Name, ds.Columns, ds.Rows)

	// Hash the canonical serialization so equal uploads share sessions'
	// cache entries regardless of request formatting.
	var buf bytes.Buffer
	if err := source.WriteJSON(ctx, src, &buf); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "serialize dataset"))
		return
	}
	hash := cache.Hash(buf.Bytes())

	s.datasets.Put(hash, src)
	key := s.keyer.DatasetKey(hash)
	if err := s.cacheSet(ctx, key, buf.Bytes(), cache.TTLDataset); err != nil {
		s.logger.Warn("dataset cache write failed", "err", err)
	} else {
		observability.Cache().OnCacheSet(ctx, key, buf.Len())
	}

	sess := session.New(hash, s.cfg.SessionTTL)
	if err := s.sessions.Set(ctx, sess); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "store session"))
		return
	}

	s.logger.Info("table created",
		"session", sess.ID,
		"dataset", hash[:12],
		"rows", len(ds.Rows),
		"columns", len(ds.Columns),
	)
	writeJSON(w, http.StatusCreated, createTableResponse{
		SessionID:   sess.ID,
		DatasetHash: hash,
		Name:        ds.Name,
		Columns:     ds.Columns,
		Total:       len(ds.Rows),
	})
}

// handleGetTable returns session and dataset metadata.
func (s *Server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, src, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cols, err := src.Columns(ctx)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read columns"))
		return
	}
	rows, err := src.Rows(ctx)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read rows"))
		return
	}

	writeJSON(w, http.StatusOK, tableInfoResponse{
		SessionID:   sess.ID,
		DatasetHash: sess.DatasetHash,
		Name:        src.Name(),
		Columns:     cols,
		Total:       len(rows),
		Query:       sess.Query,
		ExpiresAt:   sess.ExpiresAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
	})
}

// handleGetRows evaluates the pipeline for the session's dataset. Query
// parameters override the stored session state; changing the search,
// filters or sort without an explicit page parameter returns to page 1.
func (s *Server) handleGetRows(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	sess, src, err := s.lookup(r)
	if err != nil {
		writeError(w, err)
		return
	}
	cols, err := src.Columns(ctx)
	if err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read columns"))
		return
	}

	query, err := mergeQuery(sess.Query, r.URL.Query(), cols)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.evaluate(r, sess, src, cols, query)
	if err != nil {
		writeError(w, err)
		return
	}

	// Persist the effective query so the next request resumes from it.
	sess.Query = query
	sess.Query.Page = result.Page
	if err := s.sessions.Set(ctx, sess); err != nil {
		s.logger.Warn("session update failed", "session", sess.ID, "err", err)
	}

	writeJSON(w, http.StatusOK, result)
}

// handleDeleteTable removes a session. The dataset stays registered while
// other sessions may still reference it.
func (s *Server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSessionID(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		writeError(w, apperrors.Wrap(apperrors.ErrCodeInternal, err, "delete session"))
		return
	}
	s.logger.Info("table deleted", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

// cacheGet wraps Cache.Get in the retry policy so a transient backend
// error does not degrade into a spurious miss.
func (s *Server) cacheGet(ctx context.Context, key string) (data []byte, ok bool, err error) {
	err = cache.RetryWithBackoff(ctx, func() error {
		var gerr error
		data, ok, gerr = s.cache.Get(ctx, key)
		return gerr
	})
	return data, ok, err
}

// cacheSet wraps Cache.Set in the retry policy.
func (s *Server) cacheSet(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return cache.RetryWithBackoff(ctx, func() error {
		return s.cache.Set(ctx, key, data, ttl)
	})
}

// lookup resolves the session and its dataset from the request.
func (s *Server) lookup(r *http.Request) (*session.Session, *source.Memory, error) {
	id := chi.URLParam(r, "id")
	if err := apperrors.ValidateSessionID(id); err != nil {
		return nil, nil, err
	}

	sess, err := s.sessions.Get(r.Context(), id)
	if err != nil {
		return nil, nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "load session")
	}
	if sess == nil {
		return nil, nil, apperrors.New(apperrors.ErrCodeSessionNotFound, "no such session: %s", id)
	}

	src := s.datasets.Get(sess.DatasetHash)
	if src == nil {
		// Registered state is gone (restart). Try the dataset cache.
		src, err = s.restoreDataset(r, sess.DatasetHash)
		if err != nil {
			return nil, nil, err
		}
	}
	return sess, src, nil
}

// restoreDataset reloads a dataset from the cache after the in-memory
// registry lost it.
func (s *Server) restoreDataset(r *http.Request, hash string) (*source.Memory, error) {
	ctx := r.Context()
	key := s.keyer.DatasetKey(hash)

	data, ok, err := s.cacheGet(ctx, key)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read dataset cache")
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, key)
		return nil, apperrors.New(apperrors.ErrCodeDatasetNotFound, "dataset is no longer available, re-upload it")
	}
	observability.Cache().OnCacheHit(ctx, key)

	src, err := source.ReadJSON(bytes.NewReader(data))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "decode cached dataset")
	}
	s.datasets.Put(hash, src)
	return src, nil
}

// evaluate answers a query from the result cache or by running the
// pipeline, caching the outcome.
func (s *Server) evaluate(r *http.Request, sess *session.Session, src *source.Memory, cols []table.Column, query table.Query) (table.Result, error) {
	ctx := r.Context()

	key := s.keyer.QueryKey(sess.DatasetHash, cache.QueryKeyOpts{
		Search:  query.Search,
		Filters: query.Filters,
		SortKey: query.SortKey,
		SortDir: query.SortDir.String(),
		Page:    query.Page,
		Size:    query.Size,
	})

	if data, ok, err := s.cacheGet(ctx, key); err != nil {
		s.logger.Warn("result cache read failed", "err", err)
	} else if ok {
		var result table.Result
		if err := json.Unmarshal(data, &result); err == nil {
			observability.Cache().OnCacheHit(ctx, key)
			return result, nil
		}
		s.logger.Warn("result cache entry corrupt, evicting", "key", key)
		_ = s.cache.Delete(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, key)
	}

	rows, err := src.Rows(ctx)
	if err != nil {
		return table.Result{}, apperrors.Wrap(apperrors.ErrCodeInternal, err, "read rows")
	}
	result := query.Apply(ctx, rows, cols, nil)

	if data, err := json.Marshal(result); err == nil {
		if err := s.cacheSet(ctx, key, data, cache.TTLQuery); err != nil {
			s.logger.Warn("result cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}
	return result, nil
}

// mergeQuery overlays request parameters on the stored query state.
func mergeQuery(base table.Query, params url.Values, cols []table.Column) (table.Query, error) {
	q := base
	stateChanged := false

	if params.Has("search") {
		if v := params.Get("search"); v != q.Search {
			q.Search = v
			stateChanged = true
		}
	}

	filters, touched, err := mergeFilters(q.Filters, params, cols)
	if err != nil {
		return table.Query{}, err
	}
	if touched {
		q.Filters = filters
		stateChanged = true
	}

	if params.Has("sort") {
		key := params.Get("sort")
		if key != "" {
			if err := validateSortColumn(key, cols); err != nil {
				return table.Query{}, err
			}
		}
		if key != q.SortKey {
			q.SortKey = key
			stateChanged = true
		}
	}
	if params.Has("dir") {
		dir := params.Get("dir")
		if err := apperrors.ValidateSortDirection(dir); err != nil {
			return table.Query{}, err
		}
		q.SortDir = table.ParseDirection(dir)
	}

	if params.Has("size") {
		size, err := strconv.Atoi(params.Get("size"))
		if err != nil {
			return table.Query{}, apperrors.New(apperrors.ErrCodeInvalidPage, "page size must be an integer")
		}
		if err := apperrors.ValidatePageSize(size); err != nil {
			return table.Query{}, err
		}
		if size != q.Size {
			q.Size = size
			stateChanged = true
		}
	}

	if params.Has("page") {
		page, err := strconv.Atoi(params.Get("page"))
		if err != nil {
			return table.Query{}, apperrors.New(apperrors.ErrCodeInvalidPage, "page must be an integer")
		}
		q.Page = page
	} else if stateChanged {
		q.Page = 1
	}

	return q.Normalize(), nil
}

// mergeFilters applies filter.<col> parameters. An empty value clears the
// column's filter. Reports whether any filter changed.
func mergeFilters(base map[string]string, params url.Values, cols []table.Column) (map[string]string, bool, error) {
	merged := make(map[string]string, len(base))
	for k, v := range base {
		merged[k] = v
	}

	touched := false
	for param := range params {
		if !strings.HasPrefix(param, filterParamPrefix) {
			continue
		}
		key := strings.TrimPrefix(param, filterParamPrefix)
		if err := validateFilterColumn(key, cols); err != nil {
			return nil, false, err
		}

		value := params.Get(param)
		if value == "" {
			if _, ok := merged[key]; ok {
				delete(merged, key)
				touched = true
			}
			continue
		}
		if merged[key] != value {
			merged[key] = value
			touched = true
		}
	}

	if len(merged) == 0 {
		merged = nil
	}
	return merged, touched, nil
}

func validateSortColumn(key string, cols []table.Column) error {
	for _, col := range cols {
		if col.Key == key {
			if !col.Sortable {
				return apperrors.New(apperrors.ErrCodeInvalidSort, "column is not sortable: %s", key)
			}
			return nil
		}
	}
	return apperrors.New(apperrors.ErrCodeInvalidColumn, "unknown column: %s", key)
}

func validateFilterColumn(key string, cols []table.Column) error {
	if err := apperrors.ValidateColumnKey(key); err != nil {
		return err
	}
	for _, col := range cols {
		if col.Key == key {
			if !col.Filterable {
				return apperrors.New(apperrors.ErrCodeInvalidColumn, "column is not filterable: %s", key)
			}
			return nil
		}
	}
	return apperrors.New(apperrors.ErrCodeInvalidColumn, "unknown column: %s", key)
}
