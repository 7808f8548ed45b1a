package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mesh-intelligence/promptlib/internal/codec"
	"github.com/mesh-intelligence/promptlib/internal/query"
	"github.com/mesh-intelligence/promptlib/pkg/types"
)

// promptRequest is the body of create and update calls. Tags is the full
// desired tag set; omitting it clears all tags.
type promptRequest struct {
	Title        string     `json:"title"`
	PromptType   string     `json:"prompt_type"`
	UseCase      string     `json:"use_case"`
	Description  string     `json:"description"`
	UsageNotes   string     `json:"usage_notes"`
	Version      string     `json:"version"`
	Persona      string     `json:"persona"`
	Context      string     `json:"context"`
	Task         string     `json:"task"`
	Style        string     `json:"style"`
	Variables    string     `json:"variables"`
	Instructions string     `json:"instructions"`
	Tags         types.Tags `json:"tags"`
}

func (req promptRequest) toPrompt(id string) *types.Prompt {
	return &types.Prompt{
		ID:           id,
		Title:        req.Title,
		PromptType:   types.PromptType(req.PromptType),
		UseCase:      req.UseCase,
		Description:  req.Description,
		UsageNotes:   req.UsageNotes,
		Version:      req.Version,
		Persona:      req.Persona,
		Context:      req.Context,
		Task:         req.Task,
		Style:        req.Style,
		Variables:    req.Variables,
		Instructions: req.Instructions,
	}
}

// saveResponse returns the stored record with any tag advisories.
type saveResponse struct {
	Prompt     *types.Prompt    `json:"prompt"`
	Advisories []types.Advisory `json:"advisories"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	opts, err := searchOptions(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	prompts, err := s.cat.Search(r.Context(), opts)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if prompts == nil {
		prompts = []*types.Prompt{}
	}
	writeJSON(w, http.StatusOK, prompts)
}

// searchOptions reads favorites, tag, q, and sort query parameters. Each
// tag parameter is a "Category:value" or "Category=value" pair.
func searchOptions(r *http.Request) (query.Options, error) {
	q := r.URL.Query()
	var opts query.Options

	if v := q.Get("favorites"); v != "" {
		fav, err := strconv.ParseBool(v)
		if err != nil {
			return opts, newBadRequest(fmt.Sprintf("invalid favorites value %q", v), err)
		}
		opts.FavoritesOnly = fav
	}

	filters, err := types.ParseTagPairs(q["tag"])
	if err != nil {
		return opts, err
	}
	opts.TagFilters = filters
	opts.Query = q.Get("q")

	mode, err := query.ParseSortMode(q.Get("sort"))
	if err != nil {
		return opts, err
	}
	opts.Sort = mode
	return opts, nil
}

func (s *Server) handleCreatePrompt(w http.ResponseWriter, r *http.Request) {
	var req promptRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	p := req.toPrompt("")
	advisories, err := s.cat.SavePrompt(r.Context(), p, req.Tags)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.metrics.recordMutation("create")
	writeJSON(w, http.StatusCreated, saveResponse{Prompt: p, Advisories: nonNil(advisories)})
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	p, found, err := s.cat.GetPrompt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleUpdatePrompt(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req promptRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}

	_, found, err := s.cat.GetPrompt(r.Context(), id)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}

	p := req.toPrompt(id)
	advisories, err := s.cat.SavePrompt(r.Context(), p, req.Tags)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.metrics.recordMutation("update")
	writeJSON(w, http.StatusOK, saveResponse{Prompt: p, Advisories: nonNil(advisories)})
}

func (s *Server) handleDeletePrompt(w http.ResponseWriter, r *http.Request) {
	found, err := s.cat.DeletePrompt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}
	s.metrics.recordMutation("delete")
	w.WriteHeader(http.StatusNoContent)
}

// favoriteRequest carries the favorite value the caller last observed.
type favoriteRequest struct {
	Current *bool `json:"current"`
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	var req favoriteRequest
	if err := decodeBody(r, &req); err != nil {
		s.handleError(w, r, err)
		return
	}
	if req.Current == nil {
		s.handleError(w, r, newBadRequest(`body must include "current"`, nil))
		return
	}

	found, err := s.cat.ToggleFavorite(r.Context(), id, *req.Current)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}
	s.metrics.recordMutation("favorite")
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "is_favorite": !*req.Current})
}

func (s *Server) handleDuplicatePrompt(w http.ResponseWriter, r *http.Request) {
	newID, found, err := s.cat.DuplicatePrompt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}
	s.metrics.recordMutation("duplicate")
	writeJSON(w, http.StatusCreated, map[string]string{"id": newID})
}

func (s *Server) handleCopyText(w http.ResponseWriter, r *http.Request) {
	text, found, err := s.cat.CopyText(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	if !found {
		s.handleError(w, r, newNotFound("prompt not found"))
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, text)
}

// tagsResponse lists effective options with categories in registry order.
type tagsResponse struct {
	TaxonomyVersion string              `json:"taxonomy_version"`
	Categories      []string            `json:"categories"`
	Options         map[string][]string `json:"options"`
}

func (s *Server) handleTags(w http.ResponseWriter, r *http.Request) {
	opts, err := s.cat.EffectiveTagOptions(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tagsResponse{
		TaxonomyVersion: types.TaxonomyVersion,
		Categories:      types.Categories(),
		Options:         opts,
	})
}

// contentTypes maps export formats to response content types.
var contentTypes = map[codec.Format]string{
	codec.FormatJSON:  "application/json",
	codec.FormatJSONL: "application/x-ndjson",
	codec.FormatYAML:  "application/yaml",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	f, err := codec.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	var buf bytes.Buffer
	if _, err := s.cat.Export(r.Context(), &buf, f); err != nil {
		s.handleError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f])
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="prompts_export.%s"`, f))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	var f codec.Format
	if v := r.URL.Query().Get("format"); v != "" {
		parsed, err := codec.ParseFormat(v)
		if err != nil {
			s.handleError(w, r, err)
			return
		}
		f = parsed
	}

	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
	if err != nil {
		s.handleError(w, r, newBadRequest("could not read request body", err))
		return
	}
	n, err := s.cat.Import(r.Context(), data, f)
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	s.metrics.recordMutation("import")
	writeJSON(w, http.StatusOK, map[string]int{"imported": n})
}

// decodeBody decodes a JSON request body into v.
func decodeBody(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return newBadRequest("request body is empty", err)
		}
		return newBadRequest("request body is not valid JSON", err)
	}
	return nil
}

func nonNil(a []types.Advisory) []types.Advisory {
	if a == nil {
		return []types.Advisory{}
	}
	return a
}

