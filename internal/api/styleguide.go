package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/QTest-hq/livingstyle/internal/generator"
	"github.com/QTest-hq/livingstyle/internal/styleguide"
)

// BuildResponse describes the build currently being served
type BuildResponse struct {
	RunID    string   `json:"run_id"`
	Files    []string `json:"files"`
	Written  []string `json:"written"`
	Revision string   `json:"revision,omitempty"`
	Pages    int      `json:"pages"`
	Sections int      `json:"sections"`
	Duration string   `json:"duration"`
}

// SectionSummary is the list form of a section
type SectionSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Depth    int    `json:"depth"`
	Parent   string `json:"parent,omitempty"`
	Page     string `json:"page,omitempty"`
	Children int    `json:"children"`
}

// PageResponse is the API response for a page
type PageResponse struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	URL      string            `json:"url"`
	Sections []*SectionSummary `json:"sections"`
}

func buildToResponse(r *generator.Result) *BuildResponse {
	return &BuildResponse{
		RunID:    r.RunID,
		Files:    r.Files,
		Written:  r.Written,
		Revision: r.Revision,
		Pages:    len(r.Pages),
		Sections: len(r.All()),
		Duration: r.Duration.String(),
	}
}

func sectionToSummary(b *styleguide.Block) *SectionSummary {
	return &SectionSummary{
		ID:       b.ID,
		Name:     b.Name,
		Depth:    b.Depth,
		Parent:   b.Parent,
		Page:     b.Page,
		Children: len(b.Children),
	}
}

func pageToResponse(p *styleguide.Page) *PageResponse {
	resp := &PageResponse{
		ID:       p.ID,
		Name:     p.Name,
		URL:      "/" + p.ID + ".html",
		Sections: make([]*SectionSummary, 0, len(p.Sections)),
	}
	for _, s := range p.Sections {
		resp.Sections = append(resp.Sections, sectionToSummary(s))
	}
	return resp
}

// current writes a 503 and returns nil when nothing has been built
func (s *Server) current(w http.ResponseWriter) *generator.Result {
	result, err := s.Result()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return nil
	}
	return result
}

// getBuild returns the build being served
// GET /api/v1/build
func (s *Server) getBuild(w http.ResponseWriter, r *http.Request) {
	result := s.current(w)
	if result == nil {
		return
	}
	writeJSON(w, http.StatusOK, buildToResponse(result))
}

// createBuild rebuilds the style guide from its sources
// POST /api/v1/build
func (s *Server) createBuild(w http.ResponseWriter, r *http.Request) {
	result, err := s.Rebuild(r.Context())
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, styleguide.ErrSyntax) || errors.Is(err, styleguide.ErrReference) {
			status = http.StatusUnprocessableEntity
		}
		writeError(w, status, err.Error())
		return
	}

	log.Info().Str("run_id", result.RunID).Msg("rebuilt style guide")
	writeJSON(w, http.StatusCreated, buildToResponse(result))
}

// listPages returns every page in display order
// GET /api/v1/pages
func (s *Server) listPages(w http.ResponseWriter, r *http.Request) {
	result := s.current(w)
	if result == nil {
		return
	}

	pages := make([]*PageResponse, 0, len(result.Pages))
	for _, p := range result.Pages {
		pages = append(pages, pageToResponse(p))
	}
	writeJSON(w, http.StatusOK, pages)
}

// getPage returns a single page
// GET /api/v1/pages/{pageID}
func (s *Server) getPage(w http.ResponseWriter, r *http.Request) {
	result := s.current(w)
	if result == nil {
		return
	}

	pageID := chi.URLParam(r, "pageID")
	for _, p := range result.Pages {
		if p.ID == pageID {
			writeJSON(w, http.StatusOK, pageToResponse(p))
			return
		}
	}
	writeError(w, http.StatusNotFound, "page not found")
}

// listSections returns every section in encounter order. ?root=true keeps
// top-level sections only.
// GET /api/v1/sections
func (s *Server) listSections(w http.ResponseWriter, r *http.Request) {
	result := s.current(w)
	if result == nil {
		return
	}

	blocks := result.All()
	if r.URL.Query().Get("root") == "true" {
		blocks = result.Sections
	}

	sections := make([]*SectionSummary, 0, len(blocks))
	for _, b := range blocks {
		sections = append(sections, sectionToSummary(b))
	}
	writeJSON(w, http.StatusOK, sections)
}

// getSection returns a section with its whole subtree
// GET /api/v1/sections/{sectionID}
func (s *Server) getSection(w http.ResponseWriter, r *http.Request) {
	result := s.current(w)
	if result == nil {
		return
	}

	section, ok := result.Section(chi.URLParam(r, "sectionID"))
	if !ok {
		writeError(w, http.StatusNotFound, "section not found")
		return
	}
	writeJSON(w, http.StatusOK, section)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
