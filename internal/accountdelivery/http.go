// Package accountdelivery manages delivery layer of accounts.
package accountdelivery

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

// Service provides service layer interface needed by account delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package accountdelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.AccountParams) (domain.Account, error)
	List(ctx context.Context, arg domain.ListAccountsParams) ([]domain.Account, error)
	Get(ctx context.Context, userID, id int64) (domain.Account, error)
	Update(ctx context.Context, userID, id int64, arg domain.AccountParams) error
	Delete(ctx context.Context, userID, id int64) error
	Reconcile(ctx context.Context, userID, accountID int64) (domain.ReconcileResult, error)
}

// Handler facilitates account delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns account handler.
func NewHandler(as Service) *Handler {
	return &Handler{service: as}
}

type accountRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Type     string `json:"type" binding:"max=50"`
	Balance  string `json:"balance" binding:"omitempty,amount"`
	Currency string `json:"currency" binding:"omitempty,currency"`
}

func (r accountRequest) params() domain.AccountParams {
	return domain.AccountParams{
		Name:     r.Name,
		Type:     r.Type,
		Balance:  r.Balance,
		Currency: r.Currency,
	}
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type accountData struct {
	Account domain.Account `json:"account"`
}

// errorStatus maps a service error to its http status, hiding internal details.
func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrAccountNotFound:
		return http.StatusNotFound, err
	case domain.ErrOwnerNotFound:
		return http.StatusBadRequest, err
	case domain.ErrAccountHasDependents:
		return http.StatusConflict, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
}

// Create handles http request to create account.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req accountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	createdAccount, err := h.service.Create(ctx, user.ID, req.params())
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{createdAccount}})
}

type listRequest struct {
	Type   string `form:"type"`
	Search string `form:"search"`
	web.PageQuery
}

type accountsData struct {
	Accounts []domain.Account `json:"accounts"`
}

// List handles http request to list accounts.
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

	accounts, err := h.service.List(ctx, domain.ListAccountsParams{
		UserID: user.ID,
		Type:   req.Type,
		Search: req.Search,
		Page:   req.Page(),
	})
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountsData{accounts}})
}

// Get handles http request to get account.
func (h *Handler) Get(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	acc, err := h.service.Get(ctx, user.ID, req.ID)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: accountData{acc}})
}

// Update handles http request to replace account fields.
func (h *Handler) Update(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var uri idRequest
	if err := gctx.ShouldBindUri(&uri); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	var req accountRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	if err := h.service.Update(ctx, user.ID, uri.ID, req.params()); err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Updated())
}

// Delete handles http request to delete account.
func (h *Handler) Delete(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	if err := h.service.Delete(ctx, user.ID, req.ID); err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Deleted())
}

// Reconcile handles http request to apply the account's net flow to its credit cards.
func (h *Handler) Reconcile(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req idRequest
	if err := gctx.ShouldBindUri(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	result, err := h.service.Reconcile(ctx, user.ID, req.ID)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: result})
}
