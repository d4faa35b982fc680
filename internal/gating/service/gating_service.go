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
	"net/http"
	"time"

	consentService "github.com/wso2/site-engagement-service/internal/consent/service"
	model "github.com/wso2/site-engagement-service/internal/gating/model"
	"github.com/wso2/site-engagement-service/internal/gating/store"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"

	"github.com/google/uuid"
)

// GatingServiceInterface defines the service interface.
type GatingServiceInterface interface {
	RegisterPageView(registration model.PageViewRegistration) (*model.PageView, error)
	GetPageView(id string) (*model.PageView, error)
	GatedScriptCount(id string) int
	ResolveScripts(pageViewID, visitorID string) ([]model.ScriptActivation, error)
}

// GatingService is the default implementation.
type GatingService struct {
	store   store.PageViewStoreInterface
	consent consentService.ConsentServiceInterface
}

// NewGatingService constructs a service over the given registry and consent
// decision source.
func NewGatingService(pageViews store.PageViewStoreInterface, consent consentService.ConsentServiceInterface) *GatingService {
	return &GatingService{
		store:   pageViews,
		consent: consent,
	}
}

// RegisterPageView validates and registers a page view with its inert
// placeholders.
func (gs *GatingService) RegisterPageView(registration model.PageViewRegistration) (*model.PageView, error) {

	scripts := make([]*model.GatedScript, 0, len(registration.Scripts))
	for _, reg := range registration.Scripts {
		if !constants.AllowedConsentCategories[reg.Category] {
			return nil, errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.INVALID_CONSENT_CATEGORY.Code,
				Message:     errors2.INVALID_CONSENT_CATEGORY.Message,
				Description: fmt.Sprintf("Unknown consent category on gated script: %s", reg.Category),
			}, http.StatusBadRequest)
		}
		scripts = append(scripts, &model.GatedScript{
			ID:         uuid.New().String(),
			Category:   reg.Category,
			Attributes: reg.Attributes,
			Body:       reg.Body,
			State:      constants.ScriptStateInert,
		})
	}

	view := &model.PageView{
		ID:            uuid.New().String(),
		Path:          registration.Path,
		VisitorID:     registration.VisitorID,
		ReducedMotion: registration.ReducedMotion,
		CreatedAt:     time.Now().UTC(),
		Scripts:       scripts,
	}
	gs.store.AddPageView(view)

	log.GetLogger().Debug(fmt.Sprintf("Registered page view %s with %d gated scripts", view.ID, len(scripts)))
	return view, nil
}

// GetPageView returns a registered page view.
func (gs *GatingService) GetPageView(id string) (*model.PageView, error) {

	view, found := gs.store.GetPageView(id)
	if !found {
		return nil, pageViewNotFoundError(id)
	}
	return view, nil
}

// GatedScriptCount returns how many gated placeholders the page view
// registered, in any state. An unknown page view counts as zero.
func (gs *GatingService) GatedScriptCount(id string) int {

	view, found := gs.store.GetPageView(id)
	if !found {
		return 0
	}
	return len(view.Scripts)
}

// ResolveScripts activates every inert placeholder whose category the
// visitor's consent record permits. Necessary placeholders always activate.
// Already-active placeholders are never re-gated.
func (gs *GatingService) ResolveScripts(pageViewID, visitorID string) ([]model.ScriptActivation, error) {

	record, err := gs.consent.GetConsentRecord(visitorID)
	if err != nil {
		return nil, err
	}

	allowed := func(category string) bool {
		switch category {
		case constants.CategoryNecessary:
			return true
		case constants.CategoryAnalytics:
			return record.Analytics
		case constants.CategoryMarketing:
			return record.Marketing
		}
		return false
	}

	activations, found := gs.store.ResolveScripts(pageViewID, allowed)
	if !found {
		return nil, pageViewNotFoundError(pageViewID)
	}

	if len(activations) > 0 {
		log.GetLogger().Audit(log.AuditEvent{
			InitiatorID:   visitorID,
			InitiatorType: log.InitiatorTypeVisitor,
			TargetID:      pageViewID,
			TargetType:    log.TargetTypePageView,
			ActionID:      log.ActionActivateScripts,
			Data:          map[string]int{"activated": len(activations)},
		})
	}
	return activations, nil
}

func pageViewNotFoundError(id string) error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.PAGE_VIEW_NOT_FOUND.Code,
		Message:     errors2.PAGE_VIEW_NOT_FOUND.Message,
		Description: fmt.Sprintf("Page view not found: %s", id),
	}, http.StatusNotFound)
}
