package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/emrgen/papernote/internal/api"
	"github.com/emrgen/papernote/internal/document"
	"github.com/emrgen/papernote/internal/model"
	"github.com/emrgen/papernote/internal/service"
	"github.com/emrgen/papernote/internal/store"
	"github.com/sirupsen/logrus"
)

type Summaries interface {
	Get(ctx context.Context, summaryID int64) (model.SummaryData, error)
}

type Comments interface {
	List(ctx context.Context, summaryID int64) ([]model.Comment, error)
}

type Drafts interface {
	GetOrImport(ctx context.Context, summaryID int64) (*service.Draft, error)
}

// Paper is the paper detail page: the summary, its document and its comments.
// A document or comment failure is reported next to the other parts instead of
// failing the page.
type Paper struct {
	SummaryID      int64             `json:"summaryId"`
	Summary        model.SummaryData `json:"summary"`
	Document       []*document.Block `json:"document"`
	RestoredImages int               `json:"restoredImages"`
	DocumentError  string            `json:"documentError,omitempty"`
	Comments       []model.Comment   `json:"comments"`
	CommentCount   int               `json:"commentCount"`
	CommentsError  string            `json:"commentsError,omitempty"`
}

type errorBody struct {
	Error string `json:"error"`
}

type handler struct {
	summaries Summaries
	comments  Comments
	drafts    Drafts
}

// NewHandler serves the paper detail preview.
func NewHandler(summaries Summaries, comments Comments, drafts Drafts) http.Handler {
	h := &handler{summaries: summaries, comments: comments, drafts: drafts}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /papers/{summaryId}", h.paper)
	mux.HandleFunc("GET /papers/{summaryId}/comments", h.paperComments)

	return mux
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) paper(w http.ResponseWriter, r *http.Request) {
	id, ok := summaryID(w, r)
	if !ok {
		return
	}
	ctx := r.Context()

	detail, err := h.summaries.Get(ctx, id)
	if err != nil {
		writeError(w, err)
		return
	}

	page := &Paper{SummaryID: id, Summary: detail, Document: []*document.Block{}, Comments: []model.Comment{}}

	draft, err := h.drafts.GetOrImport(ctx, id)
	if err != nil {
		logrus.Errorf("document of summary %d: %v", id, err)
		page.DocumentError = api.MessageOf(err)
	} else {
		page.Document = draft.Value.Blocks()
		page.RestoredImages = draft.RestoredImages
	}

	forest, err := h.comments.List(ctx, id)
	if err != nil {
		logrus.Errorf("comments of summary %d: %v", id, err)
		page.CommentsError = api.MessageOf(err)
	} else {
		page.Comments = forest
		page.CommentCount = model.TotalCount(forest)
	}

	writeJSON(w, http.StatusOK, page)
}

func (h *handler) paperComments(w http.ResponseWriter, r *http.Request) {
	id, ok := summaryID(w, r)
	if !ok {
		return
	}

	forest, err := h.comments.List(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"comments":     forest,
		"commentCount": model.TotalCount(forest),
	})
}

func summaryID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("summaryId"), 10, 64)
	if err != nil || id <= 0 {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid summary id"})
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch {
	case errors.Is(err, store.ErrDraftNotFound):
		status = http.StatusNotFound
	case api.StatusOf(err) == http.StatusNotFound:
		status = http.StatusNotFound
	case api.StatusOf(err) == http.StatusUnauthorized, api.StatusOf(err) == http.StatusForbidden:
		status = api.StatusOf(err)
	}

	writeJSON(w, status, errorBody{Error: api.MessageOf(err)})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("write response: %v", err)
	}
}
