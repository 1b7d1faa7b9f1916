// Sideline - Live Sports Commentary Streaming
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/sideline

package validation

import (
	"strings"
	"testing"
)

func TestGetValidatorSingleton(t *testing.T) {
	v1 := GetValidator()
	v2 := GetValidator()
	if v1 == nil || v1 != v2 {
		t.Error("GetValidator() should return one shared instance")
	}
}

type preferencesRequest struct {
	Language *string `json:"language" validate:"omitempty,language"`
	Style    *string `json:"style" validate:"omitempty,style"`
}

type rangeRequest struct {
	Name  string `validate:"required,min=1,max=10"`
	Limit int    `validate:"min=1,max=100"`
	Kind  string `validate:"omitempty,oneof=a b"`
}

func ptr(s string) *string { return &s }

func TestPreferenceTags(t *testing.T) {
	tests := []struct {
		name      string
		input     preferencesRequest
		wantField string
	}{
		{"both valid", preferencesRequest{Language: ptr("German"), Style: ptr("poetic")}, ""},
		{"both omitted", preferencesRequest{}, ""},
		{"language only", preferencesRequest{Language: ptr("Spanish")}, ""},
		{"unknown language", preferencesRequest{Language: ptr("French")}, "Language"},
		{"wrong case language", preferencesRequest{Language: ptr("english")}, "Language"},
		{"unknown style", preferencesRequest{Style: ptr("haiku")}, "Style"},
		{"wrong case style", preferencesRequest{Style: ptr("nfl")}, "Style"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("ValidateStruct() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			if got := err.Errors()[0].Field(); got != tt.wantField {
				t.Errorf("failed field = %q, want %q", got, tt.wantField)
			}
			if !strings.Contains(err.Error(), "must be one of") {
				t.Errorf("message = %q, want allowed values", err.Error())
			}
		})
	}
}

func TestValidateStructMessages(t *testing.T) {
	tests := []struct {
		name    string
		input   rangeRequest
		wantTag string
		wantMsg string
	}{
		{"required", rangeRequest{Limit: 1}, "required", "Name is required"},
		{"string max", rangeRequest{Name: "abcdefghijk", Limit: 1}, "max", "Name must be at most 10 characters"},
		{"int min", rangeRequest{Name: "a"}, "min", "Limit must be at least 1"},
		{"int max", rangeRequest{Name: "a", Limit: 101}, "max", "Limit must be at most 100"},
		{"oneof", rangeRequest{Name: "a", Limit: 1, Kind: "c"}, "oneof", "Kind must be one of: a b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.input)
			if err == nil {
				t.Fatal("ValidateStruct() = nil, want error")
			}
			fe := err.Errors()[0]
			if fe.Tag() != tt.wantTag || fe.Error() != tt.wantMsg {
				t.Errorf("got tag %q msg %q, want %q %q", fe.Tag(), fe.Error(), tt.wantTag, tt.wantMsg)
			}
		})
	}
}

func TestToAPIError(t *testing.T) {
	single := ValidateStruct(&preferencesRequest{Language: ptr("French")}).ToAPIError()
	if single.Code != "VALIDATION_ERROR" || single.Details["field"] != "Language" {
		t.Errorf("single ToAPIError() = %+v", single)
	}

	multi := ValidateStruct(&preferencesRequest{Language: ptr("French"), Style: ptr("haiku")}).ToAPIError()
	if multi.Code != "VALIDATION_ERROR" {
		t.Errorf("multi code = %q", multi.Code)
	}
	fields, ok := multi.Details["fields"].([]map[string]interface{})
	if !ok || len(fields) != 2 {
		t.Errorf("multi details = %+v, want two fields", multi.Details)
	}
	if !strings.Contains(multi.Message, "Language") || !strings.Contains(multi.Message, "Style") {
		t.Errorf("multi message = %q", multi.Message)
	}

	empty := (&RequestValidationError{}).ToAPIError()
	if empty.Message != "Validation failed" {
		t.Errorf("empty ToAPIError() = %+v", empty)
	}
}
