package admin

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
)

// NewsHandler serves article management.
type NewsHandler struct {
	news     domain.NewsStore
	notifier domain.Notifier
}

func NewNewsHandler(news domain.NewsStore, notifier domain.Notifier) *NewsHandler {
	return &NewsHandler{news: news, notifier: notifier}
}

// List handles GET /admin/news, including drafts.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.news.ListNews(r.Context(), false)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, articles)
}

type newsRequest struct {
	Title       string `json:"title" validate:"required,max=300"`
	Summary     string `json:"summary" validate:"max=500"`
	Content     string `json:"content" validate:"required"`
	ImageURL    string `json:"image_url" validate:"omitempty,url"`
	IsPublished bool   `json:"is_published"`
}

// Create handles POST /admin/news
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req newsRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	author := middleware.GetUser(r.Context())
	article, err := h.news.CreateNews(r.Context(), domain.News{
		Title:       req.Title,
		Summary:     req.Summary,
		Content:     req.Content,
		ImageURL:    req.ImageURL,
		IsPublished: req.IsPublished,
		AuthorID:    author.ID,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	if article.IsPublished {
		h.notifier.Notify(r.Context(),
			"News published: "+article.Title,
			"/news", "newspaper", "purple")
	}
	handler.JSON(w, http.StatusCreated, article)
}

// Update handles PUT /admin/news/{newsID}
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	newsID, err := handler.URLParamInt64(r, "newsID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	var req newsRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	existing, err := h.news.GetNews(r.Context(), newsID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	existing.Title = req.Title
	existing.Summary = req.Summary
	existing.Content = req.Content
	existing.ImageURL = req.ImageURL
	existing.IsPublished = req.IsPublished

	if err := h.news.UpdateNews(r.Context(), *existing); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"updated": true})
}

// Delete handles DELETE /admin/news/{newsID}
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	newsID, err := handler.URLParamInt64(r, "newsID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if err := h.news.DeleteNews(r.Context(), newsID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}
