package generator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRequest() Request {
	return Request{
		Title:         "Perjanjian Sewa Rumah",
		AgreementType: "Sewa Menyewa",
		PartyOne:      "Budi",
		PartyTwo:      "Sari",
		Description:   "Sewa rumah di Bandung selama satu tahun",
		Date:          "10 Maret 2024",
		DocumentType:  TypeLease,
	}
}

func TestNormalizeTrimsFields(t *testing.T) {
	req := validRequest()
	req.Title = "  Perjanjian Sewa Rumah \n"
	req.Duration = "  12 bulan "

	got, err := req.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "Perjanjian Sewa Rumah", got.Title)
	assert.Equal(t, "12 bulan", got.Duration)
}

func TestNormalizeReportsEveryInvalidField(t *testing.T) {
	req := validRequest()
	req.PartyOne = "   "
	req.Date = "kapan-kapan"
	req.TaxID = strings.Repeat("9", 51)
	req.Address = strings.Repeat("a", 1001)

	_, err := req.Normalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, map[string]string{
		"partyOne": "is required",
		"date":     "is not a valid date",
		"taxId":    "must be at most 50 characters",
		"address":  "must be at most 1000 characters",
	}, verr.Fields)
	assert.Equal(t, "address must be at most 1000 characters; date is not a valid date; partyOne is required; taxId must be at most 50 characters", verr.Error())
}

func TestNormalizeCountsCharactersNotBytes(t *testing.T) {
	req := validRequest()
	req.Title = strings.Repeat("é", 255)

	_, err := req.Normalize()
	assert.NoError(t, err)
}
