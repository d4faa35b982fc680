/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	model "github.com/wso2/site-engagement-service/internal/submission/model"
)

func validSubmission() model.ContactSubmission {
	return model.ContactSubmission{
		VisitorID:    "v1",
		Name:         "Jane Smith",
		Email:        "jane@example.com",
		Message:      "I would like to discuss a new project with your team.",
		ConsentGiven: true,
	}
}

func fieldsOf(errs []model.FieldError) []string {
	fields := make([]string, 0, len(errs))
	for _, fe := range errs {
		fields = append(fields, fe.Field)
	}
	return fields
}

func TestValidateFields_ValidSubmission(t *testing.T) {
	assert.Empty(t, ValidateFields(validSubmission(), testMinMessageLength))
}

func TestValidateFields_MissingName(t *testing.T) {
	sub := validSubmission()
	sub.Name = "   "

	errs := ValidateFields(sub, testMinMessageLength)

	assert.Contains(t, fieldsOf(errs), "name")
}

func TestValidateFields_MissingEmail(t *testing.T) {
	sub := validSubmission()
	sub.Email = ""

	errs := ValidateFields(sub, testMinMessageLength)

	assert.Contains(t, fieldsOf(errs), "email")
}

func TestValidateFields_EmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"jane@example.com", true},
		{"jane.doe+tag@sub.example.co.uk", true},
		{"no-at-sign", false},
		{"two@@example.com", false},
		{"spaces in@example.com", false},
		{"jane@nodot", false},
	}
	for _, tc := range tests {
		sub := validSubmission()
		sub.Email = tc.email
		errs := ValidateFields(sub, testMinMessageLength)
		if tc.valid {
			assert.NotContains(t, fieldsOf(errs), "email", "expected %q to be accepted", tc.email)
		} else {
			assert.Contains(t, fieldsOf(errs), "email", "expected %q to be rejected", tc.email)
		}
	}
}

func TestValidateFields_MessageTooShort(t *testing.T) {
	sub := validSubmission()
	sub.Message = "short"

	errs := ValidateFields(sub, testMinMessageLength)

	assert.Contains(t, fieldsOf(errs), "message")
}

func TestValidateFields_ConsentRequired(t *testing.T) {
	sub := validSubmission()
	sub.ConsentGiven = false

	errs := ValidateFields(sub, testMinMessageLength)

	assert.Contains(t, fieldsOf(errs), "consent_given")
}

func TestValidateFields_CollectsAllErrors(t *testing.T) {
	errs := ValidateFields(model.ContactSubmission{}, testMinMessageLength)
	require.Len(t, errs, 4, "every failing field reports its own inline error")
}
