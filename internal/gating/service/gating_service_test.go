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
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	consentModel "github.com/wso2/site-engagement-service/internal/consent/model"
	model "github.com/wso2/site-engagement-service/internal/gating/model"
	"github.com/wso2/site-engagement-service/internal/gating/store"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

// stubConsentService serves a fixed record per visitor.
type stubConsentService struct {
	records map[string]consentModel.ConsentRecord
}

func (s *stubConsentService) GetConsentRecord(visitorID string) (consentModel.ConsentRecord, error) {
	if record, found := s.records[visitorID]; found {
		return record, nil
	}
	return consentModel.DefaultConsentRecord(visitorID), nil
}

func (s *stubConsentService) HasAffirmativeChoice(visitorID string) bool {
	_, found := s.records[visitorID]
	return found
}

func (s *stubConsentService) IsCategoryAllowed(visitorID, category string) (bool, error) {
	record, _ := s.GetConsentRecord(visitorID)
	switch category {
	case constants.CategoryNecessary:
		return true, nil
	case constants.CategoryAnalytics:
		return record.Analytics, nil
	case constants.CategoryMarketing:
		return record.Marketing, nil
	}
	return false, nil
}

func (s *stubConsentService) AcceptAll(visitorID string) (consentModel.ConsentRecord, error) {
	record := consentModel.DefaultConsentRecord(visitorID)
	record.Analytics = true
	record.Marketing = true
	s.records[visitorID] = record
	return record, nil
}

func (s *stubConsentService) RejectNonEssential(visitorID string) (consentModel.ConsentRecord, error) {
	record := consentModel.DefaultConsentRecord(visitorID)
	s.records[visitorID] = record
	return record, nil
}

func (s *stubConsentService) SavePreferences(visitorID string, update consentModel.ConsentUpdate) (consentModel.ConsentRecord, error) {
	record, _ := s.GetConsentRecord(visitorID)
	if update.Analytics != nil {
		record.Analytics = *update.Analytics
	}
	if update.Marketing != nil {
		record.Marketing = *update.Marketing
	}
	s.records[visitorID] = record
	return record, nil
}

func newTestService() (*GatingService, *stubConsentService) {
	consent := &stubConsentService{records: make(map[string]consentModel.ConsentRecord)}
	return NewGatingService(store.NewPageViewStore(time.Minute), consent), consent
}

func registration(categories ...string) model.PageViewRegistration {
	scripts := make([]model.ScriptRegistration, 0, len(categories))
	for _, category := range categories {
		scripts = append(scripts, model.ScriptRegistration{Category: category})
	}
	return model.PageViewRegistration{
		Path:      "/contact",
		VisitorID: "v1",
		Scripts:   scripts,
	}
}

func TestRegisterPageView_AssignsIDsAndInertState(t *testing.T) {
	svc, _ := newTestService()

	view, err := svc.RegisterPageView(registration(constants.CategoryAnalytics, constants.CategoryMarketing))

	require.NoError(t, err)
	assert.NotEmpty(t, view.ID)
	require.Len(t, view.Scripts, 2)
	for _, script := range view.Scripts {
		assert.NotEmpty(t, script.ID)
		assert.Equal(t, constants.ScriptStateInert, script.State)
		assert.Nil(t, script.ActivatedAt)
	}
}

func TestRegisterPageView_RejectsUnknownCategory(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.RegisterPageView(registration("tracking"))

	assert.Error(t, err)
}

func TestResolveScripts_WithoutConsentOnlyNecessaryActivates(t *testing.T) {
	svc, _ := newTestService()
	view, err := svc.RegisterPageView(registration(
		constants.CategoryNecessary, constants.CategoryAnalytics, constants.CategoryMarketing))
	require.NoError(t, err)

	activations, err := svc.ResolveScripts(view.ID, "v1")

	require.NoError(t, err)
	assert.Len(t, activations, 1, "only the necessary placeholder activates before any consent")
}

func TestResolveScripts_MarketingPlaceholderStaysInertWhileDenied(t *testing.T) {
	svc, consent := newTestService()
	analytics := true
	_, err := consent.SavePreferences("v1", consentModel.ConsentUpdate{Analytics: &analytics})
	require.NoError(t, err)

	view, err := svc.RegisterPageView(registration(constants.CategoryAnalytics, constants.CategoryMarketing))
	require.NoError(t, err)

	activations, err := svc.ResolveScripts(view.ID, "v1")
	require.NoError(t, err)
	require.Len(t, activations, 1)

	stored, err := svc.GetPageView(view.ID)
	require.NoError(t, err)
	for _, script := range stored.Scripts {
		if script.Category == constants.CategoryMarketing {
			assert.Equal(t, constants.ScriptStateInert, script.State)
		}
	}
}

func TestResolveScripts_GrantThenRescanActivatesExactlyOnce(t *testing.T) {
	svc, consent := newTestService()
	view, err := svc.RegisterPageView(registration(constants.CategoryAnalytics))
	require.NoError(t, err)

	// No consent yet: nothing activates.
	activations, err := svc.ResolveScripts(view.ID, "v1")
	require.NoError(t, err)
	assert.Empty(t, activations)

	_, err = consent.AcceptAll("v1")
	require.NoError(t, err)

	activations, err = svc.ResolveScripts(view.ID, "v1")
	require.NoError(t, err)
	assert.Len(t, activations, 1)

	// A further rescan finds nothing inert.
	activations, err = svc.ResolveScripts(view.ID, "v1")
	require.NoError(t, err)
	assert.Empty(t, activations)
}

func TestResolveScripts_UnknownPageView(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.ResolveScripts("missing", "v1")
	assert.Error(t, err)
}

func TestGatedScriptCount_UnknownViewIsZero(t *testing.T) {
	svc, _ := newTestService()
	assert.Equal(t, 0, svc.GatedScriptCount("missing"))
}
