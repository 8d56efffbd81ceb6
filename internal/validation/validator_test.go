package validation_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/signaldeck/signaldeck-server/internal/errors"
	"github.com/signaldeck/signaldeck-server/internal/validation"
)

type testRecord struct {
	Handle string  `json:"authorHandle" validate:"required,notblank"`
	Type   string  `json:"type" validate:"required,oneof=Leads Threads Links Video"`
	Likes  float64 `json:"likes" validate:"gte=0"`
}

func TestValidator_ValidateSuccess(t *testing.T) {
	v := validation.New()

	err := v.Validate(testRecord{Handle: "@ana", Type: "Leads", Likes: 3})
	assert.NoError(t, err)
}

func TestValidator_ValidateErrors(t *testing.T) {
	v := validation.New()

	tests := []struct {
		name      string
		rec       testRecord
		wantField string
		wantMsg   string
	}{
		{"missing handle", testRecord{Type: "Leads"}, "authorHandle", "is required"},
		{"blank handle", testRecord{Handle: "   ", Type: "Leads"}, "authorHandle", "must not be blank"},
		{"unknown type", testRecord{Handle: "@a", Type: "Memes"}, "type", "must be one of: Leads Threads Links Video"},
		{"negative likes", testRecord{Handle: "@a", Type: "Video", Likes: -1}, "likes", "must be greater than or equal to 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.rec)
			require.Error(t, err)

			var domainErr *domainerrors.Error
			require.ErrorAs(t, err, &domainErr)
			assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus())
			assert.ErrorIs(t, err, domainerrors.ErrValidation)

			details, ok := domainErr.Details.(map[string]string)
			require.True(t, ok)
			assert.Equal(t, tt.wantMsg, details[tt.wantField])
		})
	}
}
