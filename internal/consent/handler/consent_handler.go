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
	"net/url"

	"github.com/google/uuid"
	consentModel "github.com/wso2/site-engagement-service/internal/consent/model"
	"github.com/wso2/site-engagement-service/internal/consent/provider"
	gatingProvider "github.com/wso2/site-engagement-service/internal/gating/provider"
	"github.com/wso2/site-engagement-service/internal/system/config"
	"github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/utils"
)

type ConsentHandler struct{}

func NewConsentHandler() *ConsentHandler {
	return &ConsentHandler{}
}

// CreateVisitor handles POST /visitors
func (h *ConsentHandler) CreateVisitor(w http.ResponseWriter, r *http.Request) {

	utils.WriteJSONResponse(w, http.StatusCreated, map[string]string{
		"visitor_id": uuid.New().String(),
	})
}

// GetConsentRecord handles GET /consent/{visitorId}
func (h *ConsentHandler) GetConsentRecord(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.GetConsentRecord(visitorID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, record)
}

// SavePreferences handles PUT /consent/{visitorId}
func (h *ConsentHandler) SavePreferences(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	var update consentModel.ConsentUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "consent preferences"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.SavePreferences(visitorID, update)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	mirrorConsentCookie(w, record)
	utils.WriteJSONResponse(w, http.StatusOK, record)
}

// AcceptAll handles POST /consent/{visitorId}/accept-all
func (h *ConsentHandler) AcceptAll(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.AcceptAll(visitorID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	mirrorConsentCookie(w, record)
	utils.WriteJSONResponse(w, http.StatusOK, record)
}

// RejectNonEssential handles POST /consent/{visitorId}/reject-all
func (h *ConsentHandler) RejectNonEssential(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	record, err := service.RejectNonEssential(visitorID)
	if err != nil {
		utils.HandleError(w, err)
		return
	}

	mirrorConsentCookie(w, record)
	utils.WriteJSONResponse(w, http.StatusOK, record)
}

// GetCategoryDecision handles GET /consent/{visitorId}/categories/{category}
func (h *ConsentHandler) GetCategoryDecision(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	category := r.PathValue("category")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	service := provider.NewConsentProvider().GetConsentService()
	allowed, err := service.IsCategoryAllowed(visitorID, category)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, map[string]interface{}{
		"category": category,
		"allowed":  allowed,
	})
}

// GetBannerDecision handles GET /consent/{visitorId}/banner. The banner is
// shown only while the visitor has made no affirmative choice and the page
// view carries at least one gated placeholder.
func (h *ConsentHandler) GetBannerDecision(w http.ResponseWriter, r *http.Request) {

	visitorID := r.PathValue("visitorId")
	if visitorID == "" {
		utils.HandleError(w, missingVisitorError())
		return
	}

	consentService := provider.NewConsentProvider().GetConsentService()
	gatingService := gatingProvider.NewGatingProvider().GetGatingService()

	gatedCount := 0
	if pageViewID := r.URL.Query().Get("page_view"); pageViewID != "" {
		gatedCount = gatingService.GatedScriptCount(pageViewID)
	}

	showBanner := gatedCount > 0 && !consentService.HasAffirmativeChoice(visitorID)
	utils.WriteJSONResponse(w, http.StatusOK, map[string]bool{
		"show_banner": showBanner,
	})
}

// mirrorConsentCookie reflects a saved record into the consent cookie for
// non-script readers: root path, one-year max-age, lax same-site.
func mirrorConsentCookie(w http.ResponseWriter, record consentModel.ConsentRecord) {

	conf := config.GetRuntime().Config
	http.SetCookie(w, &http.Cookie{
		Name:     conf.ConsentCookieName(),
		Value:    url.QueryEscape(record.CookieValue()),
		Path:     "/",
		MaxAge:   conf.ConsentCookieMaxAge(),
		SameSite: http.SameSiteLaxMode,
	})
}

func missingVisitorError() error {
	return errors.NewClientError(errors.ErrorMessage{
		Code:        errors.BAD_REQUEST.Code,
		Message:     errors.BAD_REQUEST.Message,
		Description: "Visitor Id is required.",
	}, http.StatusBadRequest)
}
