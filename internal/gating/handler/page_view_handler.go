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

	gatingModel "github.com/wso2/site-engagement-service/internal/gating/model"
	"github.com/wso2/site-engagement-service/internal/gating/provider"
	"github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/utils"
)

type PageViewHandler struct{}

func NewPageViewHandler() *PageViewHandler {
	return &PageViewHandler{}
}

// RegisterPageView handles POST /page-views
func (h *PageViewHandler) RegisterPageView(w http.ResponseWriter, r *http.Request) {

	var registration gatingModel.PageViewRegistration
	if err := json.NewDecoder(r.Body).Decode(&registration); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "page view"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewGatingProvider().GetGatingService()
	view, err := service.RegisterPageView(registration)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusCreated, view)
}

// GetPageView handles GET /page-views/{pageViewId}
func (h *PageViewHandler) GetPageView(w http.ResponseWriter, r *http.Request) {

	pageViewID := r.PathValue("pageViewId")
	service := provider.NewGatingProvider().GetGatingService()
	view, err := service.GetPageView(pageViewID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, view)
}

// ResolveScripts handles POST /page-views/{pageViewId}/resolve. The visitor
// is taken from the request body so consent changes can re-scan the page.
func (h *PageViewHandler) ResolveScripts(w http.ResponseWriter, r *http.Request) {

	pageViewID := r.PathValue("pageViewId")

	var body struct {
		VisitorID string `json:"visitor_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.VisitorID == "" {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: "visitor_id is required to resolve gated scripts.",
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewGatingProvider().GetGatingService()
	activations, err := service.ResolveScripts(pageViewID, body.VisitorID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	if activations == nil {
		activations = []gatingModel.ScriptActivation{}
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"activations": activations,
	})
}
