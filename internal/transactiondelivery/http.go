// Package transactiondelivery manages delivery layer of transactions.
package transactiondelivery

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

// Service provides service layer interface needed by transaction delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package transactiondelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.TransactionParams) (domain.Transaction, error)
	List(ctx context.Context, arg domain.ListTransactionsParams) ([]domain.Transaction, error)
	Summary(ctx context.Context, userID int64, dates domain.DateRange) ([]domain.DailyTotal, error)
	Get(ctx context.Context, userID, id int64) (domain.Transaction, error)
	Update(ctx context.Context, userID, id int64, arg domain.TransactionParams) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates transaction delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns transaction handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type transactionRequest struct {
	AccountID   int64  `json:"account_id" binding:"required,min=1"`
	Amount      string `json:"amount" binding:"required,amount"`
	Date        string `json:"date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"max=255"`
	Category    string `json:"category" binding:"max=100"`
	Currency    string `json:"currency" binding:"omitempty,currency"`
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type transactionData struct {
	Transaction domain.Transaction `json:"transaction"`
}

type transactionsData struct {
	Transactions []domain.Transaction `json:"transactions"`
}

type summaryData struct {
	Summary []domain.DailyTotal `json:"summary"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrTransactionNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func bindBody(gctx *gin.Context) (domain.TransactionParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req transactionRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return domain.TransactionParams{}, false
	}

	date, err := web.ParseDate(req.Date)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return domain.TransactionParams{}, false
	}

	return domain.TransactionParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		Date:        date,
		Description: req.Description,
		Category:    req.Category,
		Currency:    req.Currency,
	}, true
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

// Create handles http request to record a transaction.
func (h *Handler) Create(gctx *gin.Context) {
	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	tr, err := h.service.Create(gctx.Request.Context(), user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tr}})
}

type listRequest struct {
	AccountID int64  `form:"account_id" binding:"omitempty,min=1"`
	Category  string `form:"category"`
	Search    string `form:"search"`
	web.DateRangeQuery
	web.PageQuery
}

// List handles http request to list transactions.
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

	trs, err := h.service.List(ctx, domain.ListTransactionsParams{
		UserID:    user.ID,
		AccountID: req.AccountID,
		Category:  req.Category,
		Search:    req.Search,
		DateRange: req.DateRange(),
		Page:      req.Page(),
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionsData{trs}})
}

// Summary handles http request to total transactions per date.
func (h *Handler) Summary(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req web.DateRangeQuery
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	totals, err := h.service.Summary(ctx, user.ID, req.DateRange())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: summaryData{totals}})
}

// Get handles http request to get a transaction.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	tr, err := h.service.Get(gctx.Request.Context(), user.ID, id)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: transactionData{tr}})
}

// Update handles http request to replace transaction fields.
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

// Delete handles http request to delete a transaction.
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
