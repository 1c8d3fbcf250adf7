// Package notificationdelivery manages delivery layer of notifications.
package notificationdelivery

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

// Service provides service layer interface needed by notification delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package notificationdelivery
type Service interface {
	Create(ctx context.Context, userID int64, arg domain.CreateNotificationParams) (domain.Notification, error)
	List(ctx context.Context, userID int64, page domain.Page) ([]domain.Notification, error)
	ListDue(ctx context.Context, userID int64, days int) ([]domain.Notification, error)
	MarkRead(ctx context.Context, userID, id int64) error
	Delete(ctx context.Context, userID, id int64) error
}

// Handler facilitates notification delivery layer logic.
type Handler struct {
	service Service
}

// NewHandler returns notification handler.
func NewHandler(s Service) *Handler {
	return &Handler{service: s}
}

type notificationRequest struct {
	MonthlyPaymentID int64      `json:"monthly_payment_id" binding:"required,min=1"`
	Message          string     `json:"message" binding:"required,max=255"`
	NotifiedAt       *time.Time `json:"notified_at"`
	IsRead           bool       `json:"is_read"`
}

type idRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type notificationData struct {
	Notification domain.Notification `json:"notification"`
}

type notificationsData struct {
	Notifications []domain.Notification `json:"notifications"`
}

func errorStatus(err error) (int, error) {
	switch err {
	case domain.ErrNotificationNotFound, domain.ErrMonthlyPaymentNotFound:
		return http.StatusNotFound, err
	case domain.ErrNegativeDueDays:
		return http.StatusBadRequest, err
	}

	return http.StatusInternalServerError, errorspkg.ErrInternal
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

// Create handles http request to create a notification.
func (h *Handler) Create(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req notificationRequest
	if err := gctx.ShouldBindJSON(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	arg := domain.CreateNotificationParams{
		MonthlyPaymentID: req.MonthlyPaymentID,
		Message:          req.Message,
		IsRead:           req.IsRead,
	}

	if req.NotifiedAt != nil {
		arg.NotifiedAt = req.NotifiedAt.UTC()
	}

	user := middleware.AuthUser(gctx)

	n, err := h.service.Create(ctx, user.ID, arg)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: notificationData{n}})
}

// List handles http request to list notifications.
func (h *Handler) List(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req web.PageQuery
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	user := middleware.AuthUser(gctx)

	items, err := h.service.List(ctx, user.ID, req.Page())
	if err != nil {
		gctx.JSON(http.StatusInternalServerError, web.Error(errorspkg.ErrInternal))
		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: notificationsData{items}})
}

type dueRequest struct {
	Days *int `form:"days" binding:"omitempty,min=0"`
}

// ListDue handles http request to list notifications of payments due soon.
func (h *Handler) ListDue(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(ctx)

	var req dueRequest
	if err := gctx.ShouldBindQuery(&req); err != nil {
		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.GetErrorMsg(err)})

		return
	}

	days := domain.DefaultDueDays
	if req.Days != nil {
		days = *req.Days
	}

	user := middleware.AuthUser(gctx)

	items, err := h.service.ListDue(ctx, user.ID, days)
	if err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Response{Data: notificationsData{items}})
}

// MarkRead handles http request to mark a notification as read.
func (h *Handler) MarkRead(gctx *gin.Context) {
	id, ok := bindID(gctx)
	if !ok {
		return
	}

	user := middleware.AuthUser(gctx)

	if err := h.service.MarkRead(gctx.Request.Context(), user.ID, id); err != nil {
		status, err := errorStatus(err)
		gctx.JSON(status, web.Error(err))

		return
	}

	gctx.JSON(http.StatusOK, web.Updated())
}

// Delete handles http request to delete a notification.
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
