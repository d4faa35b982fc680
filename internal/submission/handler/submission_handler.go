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

package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	model "github.com/wso2/site-engagement-service/internal/submission/model"
	"github.com/wso2/site-engagement-service/internal/submission/provider"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	"github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/security"
	"github.com/wso2/site-engagement-service/internal/system/utils"
)

const defaultListLimit = 100

// SubmissionHandler exposes the public submit endpoint and the operator
// listing endpoint.
type SubmissionHandler struct {
	provider provider.SubmissionProviderInterface
}

// NewSubmissionHandler creates a new handler instance.
func NewSubmissionHandler() *SubmissionHandler {
	return &SubmissionHandler{
		provider: provider.NewSubmissionProvider(),
	}
}

// SubmitContactForm handles POST /submissions. Field validation failures are
// answered with 400 and inline per-field messages.
func (sh *SubmissionHandler) SubmitContactForm(w http.ResponseWriter, r *http.Request) {

	var submission model.ContactSubmission
	if err := json.NewDecoder(r.Body).Decode(&submission); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "contact submission"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := sh.provider.GetSubmissionService()
	record, fieldErrors, err := service.SubmitContactForm(submission, r.UserAgent())
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if len(fieldErrors) > 0 {
		utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]interface{}{
			"field_errors": fieldErrors,
		})
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, map[string]string{
		"submission_id": record.SubmissionID,
		"status":        "accepted",
	})
}

// ListSubmissions handles GET /submissions for operator triage. Supports
// min_spam_score and limit query parameters.
func (sh *SubmissionHandler) ListSubmissions(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, constants.ScopeSubmissionsView); err != nil {
		utils.HandleError(w, err)
		return
	}

	minSpamScore := 0
	if raw := r.URL.Query().Get("min_spam_score"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			clientError := errors.NewClientError(errors.ErrorMessage{
				Code:        errors.BAD_REQUEST.Code,
				Message:     errors.BAD_REQUEST.Message,
				Description: "min_spam_score must be a non-negative integer.",
			}, http.StatusBadRequest)
			utils.HandleError(w, clientError)
			return
		}
		minSpamScore = parsed
	}

	limit := int64(defaultListLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || parsed <= 0 {
			clientError := errors.NewClientError(errors.ErrorMessage{
				Code:        errors.BAD_REQUEST.Code,
				Message:     errors.BAD_REQUEST.Message,
				Description: "limit must be a positive integer.",
			}, http.StatusBadRequest)
			utils.HandleError(w, clientError)
			return
		}
		limit = parsed
	}

	records, err := sh.provider.GetSubmissionService().ListSubmissions(minSpamScore, limit)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"submissions": records,
		"count":       len(records),
	})
}
