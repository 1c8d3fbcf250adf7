package web

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
)

func TestGetErrorMsg(t *testing.T) {
	t.Parallel()

	type request struct {
		Name  string `validate:"required"`
		Limit int    `validate:"max=100"`
		Date  string `validate:"datetime=2006-01-02"`
	}

	v := validator.New()

	testCases := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "Required",
			err:  v.Struct(request{Limit: 1, Date: "2024-01-01"}),
			want: "Name is required",
		},
		{
			name: "Max",
			err:  v.Struct(request{Name: "x", Limit: 101, Date: "2024-01-01"}),
			want: "Limit must be at most 100",
		},
		{
			name: "Datetime",
			err:  v.Struct(request{Name: "x", Date: "01/01/2024"}),
			want: "Date must be a date in 2006-01-02 format",
		},
		{
			name: "NotValidationError",
			err:  errors.New("EOF"),
			want: "EOF",
		},
	}

	for i := range testCases {
		tc := testCases[i]

		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := GetErrorMsg(tc.err); got != tc.want {
				t.Errorf("GetErrorMsg(%v) = %q, want %q", tc.err, got, tc.want)
			}
		})
	}
}
