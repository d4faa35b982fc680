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
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	model "github.com/wso2/site-engagement-service/internal/consent/model"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

type MockConsentStore struct {
	mock.Mock
}

func (m *MockConsentStore) GetConsentRecord(visitorID string) (*model.ConsentRecord, error) {
	args := m.Called(visitorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ConsentRecord), args.Error(1)
}

func (m *MockConsentStore) UpsertConsentRecord(record *model.ConsentRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func newService(store *MockConsentStore) *ConsentService {
	return NewConsentService(store, time.Minute)
}

// ---------------------------------------------------------------------------
// GetConsentRecord
// ---------------------------------------------------------------------------

func TestGetConsentRecord_MissingRecordYieldsDefaults(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("GetConsentRecord", "v1").Return(nil, nil)

	record, err := newService(mockStore).GetConsentRecord("v1")

	require.NoError(t, err)
	assert.True(t, record.Necessary)
	assert.False(t, record.Analytics)
	assert.False(t, record.Marketing)
}

func TestGetConsentRecord_StoreFailureFailsSoftToDefaults(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("GetConsentRecord", "v1").Return(nil, errors.New("connection refused"))

	record, err := newService(mockStore).GetConsentRecord("v1")

	require.NoError(t, err, "a persistence failure must not surface to the visitor")
	assert.Equal(t, model.DefaultConsentRecord("v1"), record)
}

func TestGetConsentRecord_CachedAfterFirstLoad(t *testing.T) {
	mockStore := new(MockConsentStore)
	stored := model.DefaultConsentRecord("v1")
	stored.Analytics = true
	mockStore.On("GetConsentRecord", "v1").Return(&stored, nil).Once()

	svc := newService(mockStore)
	first, err := svc.GetConsentRecord("v1")
	require.NoError(t, err)
	second, err := svc.GetConsentRecord("v1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	mockStore.AssertNumberOfCalls(t, "GetConsentRecord", 1)
}

// ---------------------------------------------------------------------------
// AcceptAll / RejectNonEssential / SavePreferences
// ---------------------------------------------------------------------------

func TestAcceptAll_GrantsBothOptionalCategories(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("UpsertConsentRecord", mock.MatchedBy(func(r *model.ConsentRecord) bool {
		return r.Analytics && r.Marketing && r.Necessary
	})).Return(nil)

	record, err := newService(mockStore).AcceptAll("v1")

	require.NoError(t, err)
	assert.True(t, record.Analytics)
	assert.True(t, record.Marketing)
	mockStore.AssertExpectations(t)
}

func TestRejectNonEssential_KeepsNecessary(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("UpsertConsentRecord", mock.Anything).Return(nil)

	record, err := newService(mockStore).RejectNonEssential("v1")

	require.NoError(t, err)
	assert.True(t, record.Necessary)
	assert.False(t, record.Analytics)
	assert.False(t, record.Marketing)
}

func TestSavePreferences_ShallowMerge(t *testing.T) {
	mockStore := new(MockConsentStore)
	stored := model.DefaultConsentRecord("v1")
	stored.Marketing = true
	mockStore.On("GetConsentRecord", "v1").Return(&stored, nil)
	mockStore.On("UpsertConsentRecord", mock.Anything).Return(nil)

	analytics := true
	record, err := newService(mockStore).SavePreferences("v1", model.ConsentUpdate{Analytics: &analytics})

	require.NoError(t, err)
	assert.True(t, record.Analytics)
	assert.True(t, record.Marketing, "categories absent from the update keep their value")
}

func TestSavePreferences_PersistFailureKeepsSessionRecord(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("GetConsentRecord", "v1").Return(nil, nil)
	mockStore.On("UpsertConsentRecord", mock.Anything).Return(errors.New("database error"))

	analytics := true
	svc := newService(mockStore)
	record, err := svc.SavePreferences("v1", model.ConsentUpdate{Analytics: &analytics})

	require.NoError(t, err, "store failure is swallowed, the session record stays authoritative")
	assert.True(t, record.Analytics)

	// The in-memory record survives the store outage.
	reloaded, err := svc.GetConsentRecord("v1")
	require.NoError(t, err)
	assert.True(t, reloaded.Analytics)
}

// ---------------------------------------------------------------------------
// HasAffirmativeChoice / IsCategoryAllowed
// ---------------------------------------------------------------------------

func TestHasAffirmativeChoice_FalseForNewVisitor(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("GetConsentRecord", "v1").Return(nil, nil)

	assert.False(t, newService(mockStore).HasAffirmativeChoice("v1"))
}

func TestHasAffirmativeChoice_TrueAfterAnyChoice(t *testing.T) {
	mockStore := new(MockConsentStore)
	mockStore.On("UpsertConsentRecord", mock.Anything).Return(nil)

	svc := newService(mockStore)
	_, err := svc.RejectNonEssential("v1")
	require.NoError(t, err)

	assert.True(t, svc.HasAffirmativeChoice("v1"), "rejecting is still an explicit choice")
}

func TestIsCategoryAllowed_NecessaryAlwaysTrue(t *testing.T) {
	mockStore := new(MockConsentStore)

	allowed, err := newService(mockStore).IsCategoryAllowed("v1", constants.CategoryNecessary)

	require.NoError(t, err)
	assert.True(t, allowed)
	mockStore.AssertNotCalled(t, "GetConsentRecord")
}

func TestIsCategoryAllowed_UnknownCategory(t *testing.T) {
	mockStore := new(MockConsentStore)

	_, err := newService(mockStore).IsCategoryAllowed("v1", "fingerprinting")

	assert.Error(t, err)
}

func TestIsCategoryAllowed_OptionalCategoriesFollowRecord(t *testing.T) {
	mockStore := new(MockConsentStore)
	stored := model.DefaultConsentRecord("v1")
	stored.Analytics = true
	mockStore.On("GetConsentRecord", "v1").Return(&stored, nil)

	svc := newService(mockStore)

	analytics, err := svc.IsCategoryAllowed("v1", constants.CategoryAnalytics)
	require.NoError(t, err)
	assert.True(t, analytics)

	marketing, err := svc.IsCategoryAllowed("v1", constants.CategoryMarketing)
	require.NoError(t, err)
	assert.False(t, marketing)
}
