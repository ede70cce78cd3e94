package web

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/CoursePlanner/internal/catalog"
	"github.com/JonMunkholm/CoursePlanner/internal/web/templates"
)

// CourseResponse is the JSON form of a catalog entry.
type CourseResponse struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Prerequisites []string `json:"prerequisites"`
}

// CourseDetailResponse adds resolved prerequisites to CourseResponse.
type CourseDetailResponse struct {
	CourseResponse
	Resolved []CourseResponse `json:"resolved_prerequisites"`
	Missing  []string         `json:"missing_prerequisites,omitempty"`
}

// CatalogStatusResponse describes the catalog being served.
type CatalogStatusResponse struct {
	Loaded  bool                      `json:"loaded"`
	Courses int                       `json:"courses"`
	Last    *catalog.LoadResult       `json:"last_load,omitempty"`
	Loads   catalog.LoadLimiterStatus `json:"loads"`
}

func courseResponse(e catalog.Entry) CourseResponse {
	prereqs := e.Course.Prerequisites()
	if prereqs == nil {
		prereqs = []string{}
	}
	return CourseResponse{
		ID:            e.ID,
		Title:         e.Course.Title(),
		Prerequisites: prereqs,
	}
}

func (s *Server) loadInfo() templates.LoadInfo {
	last, _ := s.catalog.LastLoad()
	return templates.LoadInfo{
		Source:   last.Source,
		Courses:  s.catalog.Len(),
		Height:   last.Height,
		LoadedAt: last.LoadedAt,
	}
}

// lookup resolves the {courseID} URL parameter.
func (s *Server) lookup(r *http.Request) (catalog.Detail, error) {
	id := chi.URLParam(r, "courseID")
	d, ok := s.catalog.Detail(id)
	if !ok {
		return catalog.Detail{}, fmt.Errorf("%s: %w", catalog.NormalizeID(id), catalog.ErrCourseNotFound)
	}
	return d, nil
}

// handleIndex renders the course list page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	page := templates.Layout("Course Catalog", templates.CourseList(s.catalog.Entries(), s.loadInfo()))
	templ.Handler(page).ServeHTTP(w, r)
}

// handleCoursePage renders a single course page.
func (s *Server) handleCoursePage(w http.ResponseWriter, r *http.Request) {
	d, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	templ.Handler(templates.Layout(d.ID, templates.CourseDetail(d))).ServeHTTP(w, r)
}

// handleListCourses returns every course in ascending course-number order.
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	entries := s.catalog.Entries()
	out := make([]CourseResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, courseResponse(e))
	}
	writeJSON(w, r, http.StatusOK, out)
}

// handleGetCourse returns one course with its prerequisites resolved.
func (s *Server) handleGetCourse(w http.ResponseWriter, r *http.Request) {
	d, err := s.lookup(r)
	if err != nil {
		s.respondError(w, r, err)
		return
	}

	resp := CourseDetailResponse{
		CourseResponse: courseResponse(d.Entry),
		Resolved:       make([]CourseResponse, 0, len(d.Prerequisites)),
		Missing:        d.Missing,
	}
	for _, p := range d.Prerequisites {
		resp.Resolved = append(resp.Resolved, courseResponse(p))
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleStructure dumps the index shape as text. format=tree renders a
// box-drawing tree instead of the indented dump.
func (s *Server) handleStructure(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if r.URL.Query().Get("format") == "tree" {
		fmt.Fprint(w, s.catalog.RenderStructure())
		return
	}
	s.catalog.DumpStructure(w)
}

// handleCatalogStatus reports the last load and load slot usage.
func (s *Server) handleCatalogStatus(w http.ResponseWriter, r *http.Request) {
	resp := CatalogStatusResponse{
		Courses: s.catalog.Len(),
		Loads:   s.catalog.LimiterStatus(),
	}
	if last, ok := s.catalog.LastLoad(); ok {
		resp.Loaded = true
		resp.Last = &last
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// handleUploadCatalog replaces the catalog with the CSV request body. The
// optional name query parameter labels the load.
func (s *Server) handleUploadCatalog(w http.ResponseWriter, r *http.Request) {
	label := strings.TrimSpace(r.URL.Query().Get("name"))
	if label == "" {
		label = "upload"
	}

	res, err := s.catalog.LoadReader(r.Context(), label, r.Body)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleReload reloads the catalog from the configured source.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.source == nil {
		s.respondError(w, r, catalog.ErrNoSource)
		return
	}

	res, err := s.catalog.Load(r.Context(), s.source)
	if err != nil {
		s.respondError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleHealth is the liveness probe.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]any{
		"status":  "ok",
		"courses": s.catalog.Len(),
	})
}
