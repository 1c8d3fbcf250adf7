// Package installmentdelivery manages delivery layer of installments.
package installmentdelivery

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

// Service provides service layer interface needed by installment delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package installmentdelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.InstallmentParams) (domain.Installment, error)
	List(ctx context.Context, arg domain.ListInstallmentsParams) ([]domain.Installment, error)
	Get(ctx context.Context, userID, id int64) (domain.Installment, error)
	Update(ctx context.Context, userID, id int64, arg domain.InstallmentParams) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates installment delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns installment handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

var errEndBeforeStart = errors.New("EndDate must not be before StartDate")

type installmentRequest struct {
	AccountID         int64  `json:"account_id" binding:"required,min=1"`
	TotalAmount       string `json:"total_amount" binding:"required,amount"`
	InstallmentAmount string `json:"installment_amount" binding:"required,amount"`
	StartDate         string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate           string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Description       string `json:"description" binding:"max=255"`
}

func (r installmentRequest) params() (domain.InstallmentParams, error) {
	p := domain.InstallmentParams{
		AccountID:         r.AccountID,
		TotalAmount:       r.TotalAmount,
		InstallmentAmount: r.InstallmentAmount,
		Description:       r.Description,
	}

	var err error

	if p.StartDate, err = web.ParseDate(r.StartDate); err != nil {
		return p, err
	}

	if p.EndDate, err = web.ParseDate(r.EndDate); err != nil {
		return p, err
	}

	if p.EndDate.Before(p.StartDate) {
		return p, errEndBeforeStart
	}

	return p, nil
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type installmentData struct {
	Installment domain.Installment `json:"installment"`
}

type installmentsData struct {
	Installments []domain.Installment `json:"installments"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrInstallmentNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func bindBody(gctx *gin.Context) (domain.InstallmentParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req installmentRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return domain.InstallmentParams{}, false
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

// Create handles http request to create an installment.
func (h *Handler) Create(gctx *gin.Context) {
	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	i, err := h.service.Create(gctx.Request.Context(), user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: installmentData{i}})
}

type listRequest struct {
	AccountID int64  `form:"account_id" binding:"omitempty,min=1"`
	Search    string `form:"search"`
	web.DateRangeQuery
	web.PageQuery
}

// List handles http request to list installments.
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

	items, err := h.service.List(ctx, domain.ListInstallmentsParams{
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

	gctx.JSON(http.StatusOK, web.Response{Data: installmentsData{items}})
}

// Get handles http request to get an installment.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	i, err := h.service.Get(gctx.Request.Context(), user.ID, id)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: installmentData{i}})
}

// Update handles http request to replace installment fields.
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

// Delete handles http request to delete an installment.
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
