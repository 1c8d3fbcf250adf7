// Package incomedelivery manages delivery layer of income records.
package incomedelivery

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

// Service provides service layer interface needed by income delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package incomedelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.IncomeParams) (domain.Income, error)
	List(ctx context.Context, arg domain.ListIncomeParams) ([]domain.Income, error)
	Get(ctx context.Context, userID, id int64) (domain.Income, error)
	Update(ctx context.Context, userID, id int64, arg domain.IncomeParams) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates income delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns income handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type incomeRequest struct {
	AccountID int64  `json:"account_id" binding:"required,min=1"`
	Amount    string `json:"amount" binding:"required,amount"`
	Date      string `json:"date" binding:"required,datetime=2006-01-02"`
	Source    string `json:"source" binding:"max=100"`
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type incomeData struct {
	Income domain.Income `json:"income"`
}

type incomeListData struct {
	Income []domain.Income `json:"income"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrIncomeNotFound, domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

func bindBody(gctx *gin.Context) (domain.IncomeParams, bool) {
	l := zerolog.Ctx(gctx.Request.Context())

	var req incomeRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return domain.IncomeParams{}, false
	}

	date, err := web.ParseDate(req.Date)
	if err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Error(err))

		return domain.IncomeParams{}, false
	}

	return domain.IncomeParams{
		AccountID: req.AccountID,
		Amount:    req.Amount,
		Date:      date,
		Source:    req.Source,
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

// Create handles http request to record income.
func (h *Handler) Create(gctx *gin.Context) {
	arg, ok := bindBody(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	income, err := h.service.Create(gctx.Request.Context(), user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: incomeData{income}})
}

type listRequest struct {
	AccountID int64  `form:"account_id" binding:"omitempty,min=1"`
	Source    string `form:"source"`
	Search    string `form:"search"`
	web.DateRangeQuery
	web.PageQuery
}

// List handles http request to list income records.
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

	income, err := h.service.List(ctx, domain.ListIncomeParams{
		UserID:    user.ID,
		AccountID: req.AccountID,
		Source:    req.Source,
		Search:    req.Search,
		DateRange: req.DateRange(),
		Page:      req.Page(),
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: incomeListData{income}})
}

// Get handles http request to get an income record.
func (h *Handler) Get(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	income, err := h.service.Get(gctx.Request.Context(), user.ID, id)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: incomeData{income}})
}

// Update handles http request to replace income record fields.
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

// Delete handles http request to delete an income record.
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
