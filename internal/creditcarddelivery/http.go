// Package creditcarddelivery manages delivery layer of credit cards.
package creditcarddelivery

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

// Service provides service layer interface needed by credit card delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package creditcarddelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.CreditCardParams) (domain.CreditCard, error)
	List(ctx context.Context, arg domain.ListCreditCardsParams) ([]domain.CreditCard, error)
	Get(ctx context.Context, userID, id int64) (domain.CreditCard, error)
	Update(ctx context.Context, userID, id int64, arg domain.CreditCardParams) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates credit card delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns credit card handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type creditCardRequest struct {
	AccountID   int64  `json:"account_id" binding:"required,min=1"`
	CardNumber  string `json:"card_number" binding:"max=30"`
	LimitAmount string `json:"limit_amount" binding:"omitempty,amount"`
	Balance     string `json:"balance" binding:"omitempty,amount"`
	DueDate     string `json:"due_date" binding:"omitempty,datetime=2006-01-02"`
}

func (r creditCardRequest) params() (domain.CreditCardParams, error) {
	p := domain.CreditCardParams{
		AccountID:   r.AccountID,
		CardNumber:  r.CardNumber,
		LimitAmount: r.LimitAmount,
		Balance:     r.Balance,
	}

	if r.DueDate != "" {
		due, err := web.ParseDate(r.DueDate)
		if err != nil {
			return p, err
		}

		p.DueDate = &due
	}

	return p, nil
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type creditCardData struct {
	CreditCard domain.CreditCard `json:"credit_card"`
}

type creditCardsData struct {
	CreditCards []domain.CreditCard `json:"credit_cards"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrCreditCardNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func bindBody(gctx *gin.Context) (domain.CreditCardParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req creditCardRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return domain.CreditCardParams{}, false
	}

	arg, err := req.params()
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return arg, false
	}

	return arg, true
}

func bindID(gctx *gin.Context) (int64, bool) {
	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		zerolog.Ctx(gctx.Request.Context()).Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return 0, false
	}

	return req.ID, true
}

// Create handles http request to create credit card.
func (h *Handler) Create(gctx *gin.Context) {
	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	card, err := h.service.Create(gctx.Request.Context(), user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: creditCardData{card}})
}

type listRequest struct {
	AccountID int64  `form:"account_id" binding:"omitempty,min=1"`
	Search    string `form:"search"`
	web.PageQuery
}

// List handles http request to list credit cards.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req listRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	cards, err := h.service.List(ctx, domain.ListCreditCardsParams{
		UserID:    user.ID,
		AccountID: req.AccountID,
		Search:    req.Search,
		Page:      req.Page(),
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: creditCardsData{cards}})
}

// Get handles http request to get credit card.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	card, err := h.service.Get(gctx.Request.Context(), user.ID, id)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: creditCardData{card}})
}

// Update handles http request to replace credit card fields.
func (h *Handler) Update(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	if err := h.service.Update(gctx.Request.Context(), user.ID, id, arg); err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Updated())
}

// Delete handles http request to delete credit card.
func (h *Handler) Delete(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	if err := h.service.Delete(gctx.Request.Context(), user.ID, id); err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Deleted())
}

