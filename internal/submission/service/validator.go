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
	"fmt"
	"regexp"
	"strings"

	model "github.com/wso2/site-engagement-service/internal/submission/model"
)

// emailPattern is a simple shape check, not an RFC validator.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateFields runs every field validator and collects the inline error
// messages. An empty result means the form is valid.
func ValidateFields(sub model.ContactSubmission, minMessageLength int) []model.FieldError {

	var fieldErrors []model.FieldError

	if strings.TrimSpace(sub.Name) == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "name",
			Message: "Name is required.",
		})
	}

	email := strings.TrimSpace(sub.Email)
	if email == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "email",
			Message: "Email address is required.",
		})
	} else if !emailPattern.MatchString(email) {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "email",
			Message: "Please enter a valid email address.",
		})
	}

	message := strings.TrimSpace(sub.Message)
	if message == "" {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "message",
			Message: "Message is required.",
		})
	} else if len(message) < minMessageLength {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "message",
			Message: fmt.Sprintf("Message must be at least %d characters.", minMessageLength),
		})
	}

	if !sub.ConsentGiven {
		fieldErrors = append(fieldErrors, model.FieldError{
			Field:   "consent_given",
			Message: "Please agree to the privacy policy before submitting.",
		})
	}

	return fieldErrors
}
