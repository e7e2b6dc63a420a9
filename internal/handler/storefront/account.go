package storefront

import (
	"net/http"

	"github.com/ketenci/carsi/internal/domain"
	"github.com/ketenci/carsi/internal/handler"
	"github.com/ketenci/carsi/internal/middleware"
	"github.com/ketenci/carsi/internal/service"
)

// AccountHandler serves the signed-in user's addresses and payment cards.
type AccountHandler struct {
	accounts *service.AccountService
}

func NewAccountHandler(accounts *service.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

type addressResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	FullAddress string `json:"full_address"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
	IsDefault   bool   `json:"is_default"`
}

func toAddressResponse(a *domain.Address) addressResponse {
	return addressResponse{
		ID:          a.ID,
		Name:        a.Name,
		FullAddress: a.FullAddress,
		City:        a.City,
		PostalCode:  a.PostalCode,
		Phone:       a.Phone,
		IsDefault:   a.IsDefault,
	}
}

// ListAddresses handles GET /account/addresses
func (h *AccountHandler) ListAddresses(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	addresses, err := h.accounts.ListAddresses(r.Context(), user.ID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	resp := make([]addressResponse, 0, len(addresses))
	for i := range addresses {
		resp = append(resp, toAddressResponse(&addresses[i]))
	}
	handler.JSON(w, http.StatusOK, resp)
}

type addAddressRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	FullAddress string `json:"full_address" validate:"required,max=500"`
	City        string `json:"city" validate:"max=100"`
	PostalCode  string `json:"postal_code" validate:"max=20"`
	Phone       string `json:"phone" validate:"max=30"`
	IsDefault   bool   `json:"is_default"`
}

// AddAddress handles POST /account/addresses
func (h *AccountHandler) AddAddress(w http.ResponseWriter, r *http.Request) {
	var req addAddressRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	address, err := h.accounts.AddAddress(r.Context(), domain.Address{
		UserID:      user.ID,
		Name:        req.Name,
		FullAddress: req.FullAddress,
		City:        req.City,
		PostalCode:  req.PostalCode,
		Phone:       req.Phone,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, toAddressResponse(address))
}

// DeleteAddress handles DELETE /account/addresses/{addressID}
func (h *AccountHandler) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := handler.URLParamInt64(r, "addressID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.accounts.DeleteAddress(r.Context(), user.ID, addressID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// SetDefaultAddress handles PUT /account/addresses/{addressID}/default
func (h *AccountHandler) SetDefaultAddress(w http.ResponseWriter, r *http.Request) {
	addressID, err := handler.URLParamInt64(r, "addressID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.accounts.SetDefaultAddress(r.Context(), user.ID, addressID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"default": true})
}

type cardResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	MaskedNumber string `json:"masked_number"`
	CardHolder   string `json:"card_holder"`
	ExpiryMonth  int32  `json:"expiry_month"`
	ExpiryYear   int32  `json:"expiry_year"`
	IsDefault    bool   `json:"is_default"`
}

func toCardResponse(c *domain.CreditCard) cardResponse {
	return cardResponse{
		ID:           c.ID,
		Name:         c.Name,
		MaskedNumber: c.MaskedNumber(),
		CardHolder:   c.CardHolder,
		ExpiryMonth:  c.ExpiryMonth,
		ExpiryYear:   c.ExpiryYear,
		IsDefault:    c.IsDefault,
	}
}

// ListCards handles GET /account/cards. Card numbers are always masked in
// responses.
func (h *AccountHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())
	cards, err := h.accounts.ListCards(r.Context(), user.ID)
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	resp := make([]cardResponse, 0, len(cards))
	for i := range cards {
		resp = append(resp, toCardResponse(&cards[i]))
	}
	handler.JSON(w, http.StatusOK, resp)
}

type addCardRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	CardNumber  string `json:"card_number" validate:"required"`
	CardHolder  string `json:"card_holder" validate:"required,max=100"`
	ExpiryMonth int32  `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  int32  `json:"expiry_year" validate:"required,min=2000"`
	IsDefault   bool   `json:"is_default"`
}

// AddCard handles POST /account/cards
func (h *AccountHandler) AddCard(w http.ResponseWriter, r *http.Request) {
	var req addCardRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	card, err := h.accounts.AddCard(r.Context(), domain.CreditCard{
		UserID:      user.ID,
		Name:        req.Name,
		CardNumber:  req.CardNumber,
		CardHolder:  req.CardHolder,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusCreated, toCardResponse(card))
}

// DeleteCard handles DELETE /account/cards/{cardID}
func (h *AccountHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := handler.URLParamInt64(r, "cardID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.accounts.DeleteCard(r.Context(), user.ID, cardID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"deleted": true})
}

// SetDefaultCard handles PUT /account/cards/{cardID}/default
func (h *AccountHandler) SetDefaultCard(w http.ResponseWriter, r *http.Request) {
	cardID, err := handler.URLParamInt64(r, "cardID")
	if err != nil {
		handler.Error(w, r, err)
		return
	}

	user := middleware.GetUser(r.Context())
	if err := h.accounts.SetDefaultCard(r.Context(), user.ID, cardID); err != nil {
		handler.Error(w, r, err)
		return
	}
	handler.JSON(w, http.StatusOK, map[string]any{"default": true})
}
