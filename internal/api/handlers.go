package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"TeleshopNews/internal/domain"
)

type newsResponse struct {
	Success   bool              `json:"success"`
	Count     int               `json:"count"`
	Page      int               `json:"page"`
	Limit     int               `json:"limit"`
	Data      []domain.NewsItem `json:"data"`
	Timestamp string            `json:"timestamp"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type healthResponse struct {
	Status          string  `json:"status"`
	FileExists      bool    `json:"file_exists"`
	LastUpdate      *string `json:"last_update"`
	CooldownMinutes int     `json:"cooldown_minutes"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":   "TeleshopNews API",
		"status": "active",
		"endpoints": map[string]string{
			"/api/news":   "paginated phone news, optional ?page=&limit=&category=",
			"/api/health": "service health",
		},
	})
}

func (s *Server) handleNews(w http.ResponseWriter, r *http.Request) {
	if s.refresher != nil {
		// Failures are already logged by the refresher; a stale store is
		// still served.
		_, _, _ = s.refresher.MaybeRefresh(r.Context())
	}

	items, err := s.repo.Load(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrStoreCorrupt) {
			s.logError("store corrupt", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "news store is corrupt"})
			return
		}
		s.logError("store read failed", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "cannot read news store"})
		return
	}

	if exists, _ := s.repo.Stat(); !exists {
		writeJSON(w, http.StatusNotFound, errorResponse{Message: "no news data yet"})
		return
	}

	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" {
		items = lo.Filter(items, func(item domain.NewsItem, _ int) bool {
			return item.Category == category
		})
	}

	page := parsePage(r.URL.Query().Get("page"))
	limit := s.parseLimit(r.URL.Query().Get("limit"))

	writeJSON(w, http.StatusOK, newsResponse{
		Success:   true,
		Count:     len(items),
		Page:      page,
		Limit:     limit,
		Data:      paginate(items, page, limit),
		Timestamp: time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	exists, modified := s.repo.Stat()

	var lastUpdate *string
	if exists && !modified.IsZero() {
		formatted := modified.Format(time.RFC3339)
		lastUpdate = &formatted
	}

	cooldown := 0
	if s.refresher != nil {
		cooldown = int(s.refresher.Cooldown().Minutes())
	}

	writeJSON(w, http.StatusOK, healthResponse{
		Status:          "ok",
		FileExists:      exists,
		LastUpdate:      lastUpdate,
		CooldownMinutes: cooldown,
	})
}

// parsePage treats anything below 1 (or unparseable) as page 1.
func parsePage(raw string) int {
	if raw == "" {
		return 1
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 1
	}
	return value
}

// parseLimit returns 0 for "all matching items" when the parameter is
// omitted; invalid or non-positive values fall back to the default and
// oversized ones clamp to the maximum, never an error.
func (s *Server) parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return s.defaultLimit
	}
	if value > s.maxLimit {
		return s.maxLimit
	}
	return value
}

// paginate slices items for the requested page; limit 0 means unbounded.
func paginate(items []domain.NewsItem, page, limit int) []domain.NewsItem {
	if limit <= 0 {
		return items
	}

	start := (page - 1) * limit
	if start >= len(items) {
		return []domain.NewsItem{}
	}

	end := start + limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func (s *Server) logError(msg string, err error) {
	if s.log != nil {
		s.log.Error(msg, "error", err)
	}
}
