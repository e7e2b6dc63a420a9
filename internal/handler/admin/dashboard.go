// Package admin exposes the back-office HTTP API. All routes are mounted
// behind RequireAdmin.
package admin

import (
	"net/http"
	"time"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
)

// DashboardHandler aggregates the numbers shown on the admin landing page.
type DashboardHandler struct {
	orders   domain.OrderStore
	notifs   domain.NotificationStore
	visitors domain.VisitorStore
}

func NewDashboardHandler(orders domain.OrderStore, notifs domain.NotificationStore, visitors domain.VisitorStore) *DashboardHandler {
	return &DashboardHandler{orders: orders, notifs: notifs, visitors: visitors}
}

type dayStatsResponse struct {
	Date                time.Time `json:"date"`
	TotalVisits         int64     `json:"total_visits"`
	AuthenticatedVisits int64     `json:"authenticated_visits"`
	AdminVisits         int64     `json:"admin_visits"`
	GuestVisits         int64     `json:"guest_visits"`
}

// Overview handles GET /admin/dashboard
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.ListOrders(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	var revenueCents int64
	var pending int
	for _, o := range orders {
		if o.Status != domain.OrderCancelled {
			revenueCents += o.TotalCents
		}
		if o.Status == domain.OrderPending {
			pending++
		}
	}

	unread, err := h.notifs.CountUnread(r.Context())
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	stats, err := h.visitors.DailyStats(r.Context(), handler.QueryInt(r, "days", 7))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	statsResp := make([]dayStatsResponse, 0, len(stats))
	for _, s := range stats {
		statsResp = append(statsResp, dayStatsResponse{
			Date:                s.Date,
			TotalVisits:         s.TotalVisits,
			AuthenticatedVisits: s.AuthenticatedVisits,
			AdminVisits:         s.AdminVisits,
			GuestVisits:         s.GuestVisits,
		})
	}

	handler.JSON(w, http.StatusOK, map[string]any{
		"order_count":          len(orders),
		"pending_orders":       pending,
		"revenue_cents":        revenueCents,
		"unread_notifications": unread,
		"visitor_stats":        statsResp,
	})
}

// Visits handles GET /admin/visitors
func (h *DashboardHandler) Visits(w http.ResponseWriter, r *http.Request) {
	visits, err := h.visitors.ListVisits(r.Context(), handler.QueryInt(r, "limit", 100))
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, visits)
}
