package storefront

import (
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// NewsHandler serves published site articles.
type NewsHandler struct {
	news domain.NewsStore
}

func NewNewsHandler(news domain.NewsStore) *NewsHandler {
	return &NewsHandler{news: news}
}

type newsListItem struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type newsResponse struct {
	newsListItem
	Content string `json:"content"`
}

// List handles GET /news
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	articles, err := h.news.ListNews(r.Context(), true)
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	resp := make([]newsListItem, 0, len(articles))
	for i := range articles {
		a := &articles[i]
		resp = append(resp, newsListItem{
			ID: a.ID, Title: a.Title, Excerpt: a.Excerpt(), ImageURL: a.ImageURL, CreatedAt: a.CreatedAt,
		})
	}
	handler.JSON(w, http.StatusOK, resp)
}

// Get handles GET /news/{newsID}
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	newsID, err := handler.URLParamInt64(r, "newsID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	article, err := h.news.GetNews(r.Context(), newsID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	if !article.IsPublished {
		handler.Error(w, r, domain.ErrNewsNotFound)
		return
	}

	handler.JSON(w, http.StatusOK, newsResponse{
		newsListItem: newsListItem{
			ID: article.ID, Title: article.Title, Excerpt: article.Excerpt(),
			ImageURL: article.ImageURL, CreatedAt: article.CreatedAt,
		},
		Content: article.Content,
	})
}
