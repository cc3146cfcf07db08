package http

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStruct_RegisterReq(t *testing.T) {
	tests := []struct {
		name      string
		req       registerReq
		wantError bool
		wantField string
	}{
		{
			name:      "valid",
			req:       registerReq{Username: "reader", Password: "Sup3rSecret"},
			wantError: false,
		},
		{
			name:      "missing username",
			req:       registerReq{Password: "Sup3rSecret"},
			wantError: true,
			wantField: "username",
		},
		{
			name:      "username too short",
			req:       registerReq{Username: "abc", Password: "Sup3rSecret"},
			wantError: true,
			wantField: "username",
		},
		{
			name:      "password without uppercase",
			req:       registerReq{Username: "reader", Password: "sup3rsecret"},
			wantError: true,
			wantField: "password",
		},
		{
			name:      "password without number",
			req:       registerReq{Username: "reader", Password: "SuperSecret"},
			wantError: true,
			wantField: "password",
		},
		{
			name:      "password too short",
			req:       registerReq{Username: "reader", Password: "Su3t"},
			wantError: true,
			wantField: "password",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateStruct(tt.req)
			if !tt.wantError {
				assert.Empty(t, errs)
				return
			}
			assert.NotEmpty(t, errs)
			assert.Equal(t, tt.wantField, errs[0].Field)
		})
	}
}

func TestValidateStruct_ReadingStatus(t *testing.T) {
	for _, status := range []string{"Unread", "Reading", "Read"} {
		errs := ValidateStruct(updateStatusRequest{Status: status})
		assert.Empty(t, errs, status)
	}

	for _, status := range []string{"", "read", "READING", "Abandoned"} {
		errs := ValidateStruct(updateStatusRequest{Status: status})
		assert.NotEmpty(t, errs, status)
	}
}

func TestValidateStruct_AddBookRequest(t *testing.T) {
	valid := addBookRequest{BookID: "isbn123", Title: "Dune", Author: "Herbert", Year: 1965}
	assert.Empty(t, ValidateStruct(valid))

	missingYear := addBookRequest{BookID: "isbn123", Title: "Dune", Author: "Herbert"}
	errs := ValidateStruct(missingYear)
	assert.NotEmpty(t, errs)
	assert.Equal(t, "year", errs[0].Field)

	// image_url stays optional
	valid.ImageURL = ""
	assert.Empty(t, ValidateStruct(valid))
}
