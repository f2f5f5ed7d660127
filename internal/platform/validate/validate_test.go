// Copyright (c) 2026 TinyTales. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/tinytales/internal/platform/apperr"
	"github.com/taibuivan/tinytales/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "title", "Noah's Ark", false},
		{"empty_string", "name", "", true},
		{"whitespace_only", "name", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "VALIDATION_ERROR", ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

/*
TestValidator_Email checks the email format validation rule.
*/
func TestValidator_Email(t *testing.T) {
	tests := []struct {
		name    string
		email   string
		isValid bool
	}{
		{"valid_email", "test@example.com", true},
		{"invalid_format", "invalid-email", false},
		{"missing_domain", "test@", false},
		{"empty_is_left_to_required", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Email("email", tt.email)

			if tt.isValid {
				assert.False(t, v.HasErrors())
			} else {
				assert.True(t, v.HasErrors())
			}
		})
	}
}

/*
TestValidator_Chain tests the fluent API (chaining multiple rules).
*/
func TestValidator_Chain(t *testing.T) {
	v := &validate.Validator{}

	// Multi-rule validation
	err := v.
		Required("username", "tai").
		MinLen("username", "tai", 3).
		MaxLen("username", "tai", 10).
		Email("email", "tai@tinytales.app").
		Err()

	assert.NoError(t, err)
	assert.False(t, v.HasErrors())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").       // Fails
		MinLen("username", "a", 5).     // Fails
		Email("email", "not-an-email"). // Fails
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)

	// Should accumulate all 3 errors
	assert.Len(t, ae.Details, 3)
}

/*
TestValidator_URL checks absolute http(s) URL validation.
*/
func TestValidator_URL(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		isValid bool
	}{
		{"https", "https://cdn.tinytales.app/covers/1.png", true},
		{"http", "http://localhost:9000/a.mp3", true},
		{"relative", "/covers/1.png", false},
		{"ftp", "ftp://example.com/file", false},
		{"empty_is_left_to_required", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.URL("coverUrl", tt.value)
			assert.Equal(t, !tt.isValid, v.HasErrors())
		})
	}
}

/*
TestValidator_HexColorAndPercent checks the category color and influencer percentage rules.
*/
func TestValidator_HexColorAndPercent(t *testing.T) {
	v := &validate.Validator{}
	v.HexColor("color", "#FFAA00").HexColor("color", "#fa0").Percent("discount", 0).Percent("discount", 100)
	assert.False(t, v.HasErrors())

	v = &validate.Validator{}
	err := v.HexColor("color", "orange").Percent("commission", 120).Err()
	require.Error(t, err)
	assert.Len(t, apperr.As(err).Details, 2)
}

func TestValidator_UUID(t *testing.T) {
	assert.False(t, (&validate.Validator{}).UUID("id", "0192f1c4-7b3a-7cde-8f00-1a2b3c4d5e6f").HasErrors())
	assert.True(t, (&validate.Validator{}).UUID("id", "not-a-uuid").HasErrors())
}

func TestValidator_NonNegative(t *testing.T) {
	assert.False(t, (&validate.Validator{}).NonNegative("order", 0).HasErrors())

	err := (&validate.Validator{}).NonNegative("order", -1).Err()
	require.Error(t, err)
	assert.Equal(t, "order", apperr.As(err).Details[0].Field)
}
