package transactiondelivery

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"

	"github.com/go-petr/pet-finance/internal/domain"
	"github.com/go-petr/pet-finance/internal/middleware"
	"github.com/go-petr/pet-finance/internal/test"
	"github.com/go-petr/pet-finance/pkg/errorspkg"
	"github.com/go-petr/pet-finance/pkg/web"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)

	if err := web.RegisterValidators(); err != nil {
		log.Fatal("cannot register validators:", err)
	}

	os.Exit(m.Run())
}

func TestTransactionAPI(t *testing.T) {
	user := test.RandomUser()
	auth := test.NewAuth(t, user)

	feb1 := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	tr := domain.Transaction{
		ID:          8,
		AccountID:   2,
		Amount:      "20.00",
		Date:        feb1,
		Description: "lunch",
		Category:    "food",
		Currency:    "USD",
	}
	trJSON := `{"id":8,"account_id":2,"amount":"20.00","date":"2024-02-01T00:00:00Z",` +
		`"description":"lunch","category":"food","currency":"USD"}`

	testCases := []struct {
		name           string
		method         string
		url            string
		body           any
		buildStubs     func(s *MockService)
		wantStatusCode int
		wantBody       string
	}{
		{
			name:   "CreateOK",
			method: http.MethodPost,
			url:    "/v1/transactions",
			body: gin.H{
				"account_id":  2,
				"amount":      "20.00",
				"date":        "2024-02-01",
				"description": "lunch",
				"category":    "food",
			},
			buildStubs: func(s *MockService) {
				s.EXPECT().
					Create(gomock.Any(), user.ID, domain.TransactionParams{
						AccountID: 2, Amount: "20.00", Date: feb1, Description: "lunch", Category: "food",
					}).
					Times(1).
					Return(tr, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"data":{"transaction":` + trJSON + `}}`,
		},
		{
			name:   "CreateUnsupportedCurrency",
			method: http.MethodPost,
			url:    "/v1/transactions",
			body:   gin.H{"account_id": 2, "amount": "20.00", "date": "2024-02-01", "currency": "XYZ"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Currency is not supported"}`,
		},
		{
			name:   "CreateBadDate",
			method: http.MethodPost,
			url:    "/v1/transactions",
			body:   gin.H{"account_id": 2, "amount": "20.00", "date": "2024-02-30"},
			buildStubs: func(s *MockService) {
				s.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
			},
			wantStatusCode: http.StatusBadRequest,
			wantBody:       `{"error":"Date must be a date in 2006-01-02 format"}`,
		},
		{
			name:   "ListByCategory",
			method: http.MethodGet,
			url:    "/v1/transactions?category=food&search=lun&account_id=2",
			buildStubs: func(s *MockService) {
				s.EXPECT().
					List(gomock.Any(), domain.ListTransactionsParams{
						UserID:    user.ID,
						AccountID: 2,
						Category:  "food",
						Search:    "lun",
						Page:      domain.Page{Limit: domain.DefaultLimit},
					}).
					Times(1).
					Return([]domain.Transaction{tr}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"data":{"transactions":[` + trJSON + `]}}`,
		},
		{
			name:   "Summary",
			method: http.MethodGet,
			url:    "/v1/transactions/summary?start_date=2024-02-01",
			buildStubs: func(s *MockService) {
				s.EXPECT().
					Summary(gomock.Any(), user.ID, domain.DateRange{From: feb1}).
					Times(1).
					Return([]domain.DailyTotal{{Date: feb1, Amount: "32.50"}}, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"data":{"summary":[{"date":"2024-02-01T00:00:00Z","amount":"32.50"}]}}`,
		},
		{
			name:   "SummaryInternalError",
			method: http.MethodGet,
			url:    "/v1/transactions/summary",
			buildStubs: func(s *MockService) {
				s.EXPECT().Summary(gomock.Any(), user.ID, domain.DateRange{}).Times(1).Return(nil, errorspkg.ErrInternal)
			},
			wantStatusCode: http.StatusInternalServerError,
			wantBody:       `{"error":"internal"}`,
		},
		{
			name:   "GetOK",
			method: http.MethodGet,
			url:    "/v1/transactions/8",
			buildStubs: func(s *MockService) {
				s.EXPECT().Get(gomock.Any(), user.ID, int64(8)).Times(1).Return(tr, nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"data":{"transaction":` + trJSON + `}}`,
		},
		{
			name:   "UpdateForeignAccount",
			method: http.MethodPut,
			url:    "/v1/transactions/8",
			body:   gin.H{"account_id": 99, "amount": "20.00", "date": "2024-02-01"},
			buildStubs: func(s *MockService) {
				s.EXPECT().
					Update(gomock.Any(), user.ID, int64(8), gomock.Any()).
					Times(1).
					Return(domain.ErrAccountNotFound)
			},
			wantStatusCode: http.StatusNotFound,
			wantBody:       `{"error":"account not found"}`,
		},
		{
			name:   "DeleteOK",
			method: http.MethodDelete,
			url:    "/v1/transactions/8",
			buildStubs: func(s *MockService) {
				s.EXPECT().Delete(gomock.Any(), user.ID, int64(8)).Times(1).Return(nil)
			},
			wantStatusCode: http.StatusOK,
			wantBody:       `{"data":{"deleted":true}}`,
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := NewMockService(ctrl)
			tc.buildStubs(service)

			h := NewHandler(service)

			server := gin.New()
			trs := server.Group("/v1/transactions", middleware.AuthMiddleware(auth))
			trs.POST("", h.Create)
			trs.GET("", h.List)
			trs.GET("/summary", h.Summary)
			trs.GET("/:id", h.Get)
			trs.PUT("/:id", h.Update)
			trs.DELETE("/:id", h.Delete)

			var body bytes.Buffer
			if tc.body != nil {
				if err := json.NewEncoder(&body).Encode(tc.body); err != nil {
					t.Fatalf("Encoding request body error: %v", err)
				}
			}

			req, err := http.NewRequest(tc.method, tc.url, &body)
			if err != nil {
				t.Fatalf("Creating request error: %v", err)
			}

			if err := auth.Authorize(req, user); err != nil {
				t.Fatalf("auth.Authorize() returned error: %v", err)
			}

			recorder := httptest.NewRecorder()
			server.ServeHTTP(recorder, req)

			if got := recorder.Code; got != tc.wantStatusCode {
				t.Errorf("Status code: got %v, want %v", got, tc.wantStatusCode)
			}

			if got := recorder.Body.String(); got != tc.wantBody {
				t.Errorf("body = %s, want %s", got, tc.wantBody)
			}
		})
	}
}
