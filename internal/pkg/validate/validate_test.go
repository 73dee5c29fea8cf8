package validate

import (
	"testing"

	"ecoreport/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	OfficerID uint   `validate:"required"`
	Email     string `validate:"required,email"`
	Rating    int    `validate:"min=1,max=5"`
	Status    string `validate:"oneof=open closed"`
}

func TestStructValid(t *testing.T) {
	err := Struct(sample{OfficerID: 1, Email: "a@b.co", Rating: 3, Status: "open"})
	assert.NoError(t, err)
}

func TestStructReportsFirstFailure(t *testing.T) {
	err := Struct(sample{Email: "a@b.co", Rating: 3, Status: "open"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "officer_id is required")
}

func TestStructMessages(t *testing.T) {
	cases := map[string]sample{
		"email must be a valid email":        {OfficerID: 1, Email: "nope", Rating: 3, Status: "open"},
		"rating must be at most 5":           {OfficerID: 1, Email: "a@b.co", Rating: 9, Status: "open"},
		"status must be one of: open closed": {OfficerID: 1, Email: "a@b.co", Rating: 3, Status: "x"},
	}
	for want, in := range cases {
		err := Struct(in)
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Contains(t, err.Error(), want)
	}
}

func TestStructKeepsAcronymsWhole(t *testing.T) {
	type proof struct {
		URL string `validate:"required"`
	}
	err := Struct(proof{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "url is required")
}

func TestToSnake(t *testing.T) {
	cases := map[string]string{
		"Email":           "email",
		"OfficerID":       "officer_id",
		"URL":             "url",
		"ComplaintID":     "complaint_id",
		"HTTPStatus":      "http_status",
		"ResolutionProof": "resolution_proof",
		"Line2Address":    "line2_address",
	}
	for in, want := range cases {
		assert.Equal(t, want, toSnake(in), in)
	}
}
