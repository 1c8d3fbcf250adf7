// Package monthlypaymentdelivery manages delivery layer of monthly payments.
package monthlypaymentdelivery

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

// Service provides service layer interface needed by monthly payment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package monthlypaymentdelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.MonthlyPaymentParams) (domain.MonthlyPayment, error)
	List(ctx context.Context, arg domain.ListMonthlyPaymentsParams) ([]domain.MonthlyPayment, error)
	Get(ctx context.Context, userID, id int64) (domain.MonthlyPayment, error)
	Update(ctx context.Context, userID, id int64, arg domain.MonthlyPaymentParams) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates monthly payment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns monthly payment handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type monthlyPaymentRequest struct {
	AccountID   int64  `json:"account_id" binding:"required,min=1"`
	Amount      string `json:"amount" binding:"required,amount"`
	DueDate     string `json:"due_date" binding:"required,datetime=2006-01-02"`
	Description string `json:"description" binding:"max=255"`
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type monthlyPaymentData struct {
	MonthlyPayment domain.MonthlyPayment `json:"monthly_payment"`
}

type monthlyPaymentsData struct {
	MonthlyPayments []domain.MonthlyPayment `json:"monthly_payments"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrMonthlyPaymentNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	case domain.ErrMonthlyPaymentHasNotifications:
		return http.StatusConflict, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func bindBody(gctx *gin.Context) (domain.MonthlyPaymentParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req monthlyPaymentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return domain.MonthlyPaymentParams{}, false
	}

	due, err := web.ParseDate(req.DueDate)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return domain.MonthlyPaymentParams{}, false
	}

	return domain.MonthlyPaymentParams{
		AccountID:   req.AccountID,
		Amount:      req.Amount,
		DueDate:     due,
		Description: req.Description,
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

// Create handles http request to create a monthly payment.
func (h *Handler) Create(gctx *gin.Context) {
	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	p, err := h.service.Create(gctx.Request.Context(), user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: monthlyPaymentData{p}})
}

type listRequest struct {
	AccountID int64  `form:"account_id" binding:"omitempty,min=1"`
	Search    string `form:"search"`
	web.DateRangeQuery
	web.PageQuery
}

// List handles http request to list monthly payments.
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

	payments, err := h.service.List(ctx, domain.ListMonthlyPaymentsParams{
		UserID:    user.ID,
		AccountID: req.AccountID,
		Search:    req.Search,
		DateRange: req.DateRange(),
		Page:      req.Page(),
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: monthlyPaymentsData{payments}})
}

// Get handles http request to get a monthly payment.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	p, err := h.service.Get(gctx.Request.Context(), user.ID, id)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: monthlyPaymentData{p}})
}

// Update handles http request to replace monthly payment fields.
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

// Delete handles http request to delete a monthly payment.
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
