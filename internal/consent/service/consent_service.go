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

	model "github.com/wso2/site-engagement-service/internal/consent/model"
	"github.com/wso2/site-engagement-service/internal/consent/store"
	"github.com/wso2/site-engagement-service/internal/system/cache"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// ConsentServiceInterface defines the service interface.
type ConsentServiceInterface interface {
	GetConsentRecord(visitorID string) (model.ConsentRecord, error)
	HasAffirmativeChoice(visitorID string) bool
	IsCategoryAllowed(visitorID, category string) (bool, error)
	AcceptAll(visitorID string) (model.ConsentRecord, error)
	RejectNonEssential(visitorID string) (model.ConsentRecord, error)
	SavePreferences(visitorID string, update model.ConsentUpdate) (model.ConsentRecord, error)
}

// ConsentService is the default implementation. The session cache keeps the
// in-memory record authoritative when the store is unavailable.
type ConsentService struct {
	store        store.ConsentStoreInterface
	sessionCache *cache.Cache
}

// NewConsentService constructs a service over the given store.
func NewConsentService(consentStore store.ConsentStoreInterface, cacheTTL time.Duration) *ConsentService {
	return &ConsentService{
		store:        consentStore,
		sessionCache: cache.NewCache(cacheTTL),
	}
}

// GetConsentRecord returns the effective record for a visitor. A missing or
// corrupt persisted record yields the compiled-in defaults. The returned
// record is a defensive copy.
func (cs *ConsentService) GetConsentRecord(visitorID string) (model.ConsentRecord, error) {

	if cached, found := cs.sessionCache.Get(cacheKey(visitorID)); found {
		if record, ok := cached.(model.ConsentRecord); ok {
			return record.Copy(), nil
		}
	}

	record, err := cs.store.GetConsentRecord(visitorID)
	if err != nil {
		// Persistence failures are logged and swallowed: the session
		// continues on the defaults.
		log.GetLogger().Warn("Failed to load consent record, using defaults", log.Error(err))
		return model.DefaultConsentRecord(visitorID), nil
	}
	if record == nil {
		return model.DefaultConsentRecord(visitorID), nil
	}

	cs.sessionCache.Set(cacheKey(visitorID), *record)
	return record.Copy(), nil
}

// HasAffirmativeChoice reports whether the visitor has recorded any explicit
// consent choice. The banner is only shown while this is false.
func (cs *ConsentService) HasAffirmativeChoice(visitorID string) bool {

	if _, found := cs.sessionCache.Get(cacheKey(visitorID)); found {
		return true
	}
	record, err := cs.store.GetConsentRecord(visitorID)
	if err != nil {
		log.GetLogger().Warn("Failed to check consent choice", log.Error(err))
		return false
	}
	return record != nil
}

// IsCategoryAllowed reports whether the category is currently permitted for
// the visitor. Necessary is always allowed.
func (cs *ConsentService) IsCategoryAllowed(visitorID, category string) (bool, error) {

	if !constants.AllowedConsentCategories[category] {
		return false, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_CONSENT_CATEGORY.Code,
			Message:     errors2.INVALID_CONSENT_CATEGORY.Message,
			Description: fmt.Sprintf("Unknown consent category: %s", category),
		}, http.StatusBadRequest)
	}
	if category == constants.CategoryNecessary {
		return true, nil
	}

	record, err := cs.GetConsentRecord(visitorID)
	if err != nil {
		return false, err
	}
	switch category {
	case constants.CategoryAnalytics:
		return record.Analytics, nil
	case constants.CategoryMarketing:
		return record.Marketing, nil
	}
	return false, nil
}

// AcceptAll grants both optional categories.
func (cs *ConsentService) AcceptAll(visitorID string) (model.ConsentRecord, error) {

	record := model.DefaultConsentRecord(visitorID)
	record.Analytics = true
	record.Marketing = true
	return cs.save(record, log.ActionAcceptAllConsent)
}

// RejectNonEssential revokes both optional categories.
func (cs *ConsentService) RejectNonEssential(visitorID string) (model.ConsentRecord, error) {

	record := model.DefaultConsentRecord(visitorID)
	record.Analytics = false
	record.Marketing = false
	return cs.save(record, log.ActionRejectConsent)
}

// SavePreferences applies an explicit per-category update, shallow-merged
// over the current effective record. Necessary cannot be revoked.
func (cs *ConsentService) SavePreferences(visitorID string, update model.ConsentUpdate) (model.ConsentRecord, error) {

	record, err := cs.GetConsentRecord(visitorID)
	if err != nil {
		return model.ConsentRecord{}, err
	}
	if update.Analytics != nil {
		record.Analytics = *update.Analytics
	}
	if update.Marketing != nil {
		record.Marketing = *update.Marketing
	}
	record.Necessary = true
	return cs.save(record, log.ActionSaveConsent)
}

// save persists and caches the record. A persistence failure is logged and
// swallowed: the cached record remains authoritative for the session.
func (cs *ConsentService) save(record model.ConsentRecord, action string) (model.ConsentRecord, error) {

	logger := log.GetLogger()
	record.Necessary = true
	record.UpdatedAt = time.Now().UTC()

	if err := cs.store.UpsertConsentRecord(&record); err != nil {
		logger.Warn("Failed to persist consent record, session continues in memory", log.Error(err))
	}
	cs.sessionCache.Set(cacheKey(record.VisitorID), record)

	logger.Audit(log.AuditEvent{
		InitiatorID:   record.VisitorID,
		InitiatorType: log.InitiatorTypeVisitor,
		TargetID:      record.VisitorID,
		TargetType:    log.TargetTypeConsentRecord,
		ActionID:      action,
		Data: map[string]bool{
			"analytics": record.Analytics,
			"marketing": record.Marketing,
		},
	})
	return record.Copy(), nil
}

func cacheKey(visitorID string) string {
	return "consent:" + visitorID
}
