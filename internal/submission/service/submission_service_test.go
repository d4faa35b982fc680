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
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	denylistModel "github.com/wso2/site-engagement-service/internal/denylist/model"
	gatingModel "github.com/wso2/site-engagement-service/internal/gating/model"
	gatingStore "github.com/wso2/site-engagement-service/internal/gating/store"
	model "github.com/wso2/site-engagement-service/internal/submission/model"
	"github.com/wso2/site-engagement-service/internal/system/config"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	config.OverrideRuntime(config.Config{})
	os.Exit(m.Run())
}

type MockSubmissionStore struct {
	mock.Mock
}

func (m *MockSubmissionStore) InsertSubmission(record *model.SubmissionRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockSubmissionStore) ListSubmissions(minSpamScore int, limit int64) ([]model.SubmissionRecord, error) {
	args := m.Called(minSpamScore, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SubmissionRecord), args.Error(1)
}

type MockHistoryStore struct {
	mock.Mock
}

func (m *MockHistoryStore) PruneBefore(visitorID string, cutoff time.Time) error {
	args := m.Called(visitorID, cutoff)
	return args.Error(0)
}

func (m *MockHistoryStore) CountAttempts(visitorID string) (int, error) {
	args := m.Called(visitorID)
	return args.Int(0), args.Error(1)
}

func (m *MockHistoryStore) RecordAttempt(visitorID string, at time.Time) error {
	args := m.Called(visitorID, at)
	return args.Error(0)
}

// stubDenylist serves a fixed phrase set.
type stubDenylist struct {
	phrases []string
}

func (s *stubDenylist) GetDenylist() (*denylistModel.Denylist, error) {
	return &denylistModel.Denylist{Phrases: s.phrases}, nil
}

func (s *stubDenylist) GetPhrases() []string {
	return s.phrases
}

func (s *stubDenylist) ReplacePhrases(update denylistModel.DenylistUpdate) (*denylistModel.Denylist, error) {
	s.phrases = update.Phrases
	return &denylistModel.Denylist{Phrases: s.phrases}, nil
}

type fixture struct {
	svc       *SubmissionService
	store     *MockSubmissionStore
	history   *MockHistoryStore
	denylist  *stubDenylist
	pageViews *gatingStore.PageViewStore
}

func newFixture() *fixture {
	store := new(MockSubmissionStore)
	history := new(MockHistoryStore)
	denylist := &stubDenylist{phrases: []string{"viagra", "casino"}}
	pageViews := gatingStore.NewPageViewStore(time.Hour)
	return &fixture{
		svc:       NewSubmissionService(store, history, denylist, pageViews),
		store:     store,
		history:   history,
		denylist:  denylist,
		pageViews: pageViews,
	}
}

func (f *fixture) allowHistory(attempts int) {
	f.history.On("PruneBefore", mock.Anything, mock.Anything).Return(nil)
	f.history.On("CountAttempts", mock.Anything).Return(attempts, nil)
	f.history.On("RecordAttempt", mock.Anything, mock.Anything).Return(nil)
}

func cleanSubmission() model.ContactSubmission {
	return model.ContactSubmission{
		VisitorID:    "v1",
		Name:         "Jane Smith",
		Email:        "jane@example.com",
		Message:      "I would like to discuss a new landscaping project.",
		ConsentGiven: true,
		ElapsedMs:    60_000,
	}
}

func statusOf(t *testing.T, err error) int {
	t.Helper()
	var clientError *errors2.ClientError
	require.ErrorAs(t, err, &clientError)
	return clientError.StatusCode
}

// ---------------------------------------------------------------------------
// Happy path
// ---------------------------------------------------------------------------

func TestSubmitContactForm_Success(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.MatchedBy(func(r *model.SubmissionRecord) bool {
		return r.VisitorID == "v1" && !r.HoneypotTriggered && r.SubmissionID != ""
	})).Return(nil)

	record, fieldErrors, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	require.NoError(t, err)
	assert.Empty(t, fieldErrors)
	require.NotNil(t, record)
	assert.Equal(t, "agent/1.0", record.UserAgent)
	assert.Equal(t, 0, record.SpamScore)
	f.store.AssertExpectations(t)
	f.history.AssertExpectations(t)
}

func TestSubmitContactForm_ValidationFailuresShortCircuit(t *testing.T) {
	f := newFixture()
	sub := cleanSubmission()
	sub.Email = "not-an-email"

	record, fieldErrors, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	require.NoError(t, err)
	assert.Nil(t, record)
	assert.NotEmpty(t, fieldErrors)
	f.store.AssertNotCalled(t, "InsertSubmission")
	f.history.AssertNotCalled(t, "RecordAttempt")
}

// ---------------------------------------------------------------------------
// Anti-spam gates
// ---------------------------------------------------------------------------

func TestSubmitContactForm_HoneypotRejects(t *testing.T) {
	f := newFixture()
	sub := cleanSubmission()
	sub.Honeypot = "http://spam.example"

	record, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	f.store.AssertNotCalled(t, "InsertSubmission")
	f.history.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
}

func TestSubmitContactForm_RateLimitRejectsAtMax(t *testing.T) {
	f := newFixture()
	f.history.On("PruneBefore", "v1", mock.Anything).Return(nil)
	f.history.On("CountAttempts", "v1").Return(3, nil)

	record, _, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusTooManyRequests, statusOf(t, err))
	f.history.AssertNotCalled(t, "RecordAttempt", mock.Anything, mock.Anything)
	f.store.AssertNotCalled(t, "InsertSubmission")
}

func TestSubmitContactForm_RateLimitAllowsBelowMax(t *testing.T) {
	f := newFixture()
	f.allowHistory(2)
	f.store.On("InsertSubmission", mock.Anything).Return(nil)

	record, _, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	require.NoError(t, err)
	assert.NotNil(t, record)
	f.history.AssertCalled(t, "RecordAttempt", "v1", mock.Anything)
}

func TestSubmitContactForm_DenylistRejects(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	sub := cleanSubmission()
	sub.Message = "come visit our online casino for great prizes"

	record, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
	f.store.AssertNotCalled(t, "InsertSubmission")
}

func TestSubmitContactForm_DwellTimeTooFastRejects(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	sub := cleanSubmission()
	sub.ElapsedMs = 500

	record, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
}

func TestSubmitContactForm_DwellTimeUsesPageViewWhenPresent(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.Anything).Return(nil)

	view := &gatingModel.PageView{
		ID:        "pv1",
		VisitorID: "v1",
		CreatedAt: time.Now().Add(-time.Minute),
	}
	f.pageViews.AddPageView(view)

	sub := cleanSubmission()
	sub.PageViewID = "pv1"
	sub.ElapsedMs = 0

	record, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	require.NoError(t, err)
	assert.NotNil(t, record, "registration time satisfies the dwell gate even without a client-reported elapse")
}

// ---------------------------------------------------------------------------
// Backend failure classification
// ---------------------------------------------------------------------------

func TestSubmitContactForm_TimeoutFailureSurfaces(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.Anything).Return(errors.New("context deadline exceeded"))

	record, _, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusGatewayTimeout, statusOf(t, err))
}

func TestSubmitContactForm_DatabaseErrorSurfacesByDefault(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.Anything).Return(errors.New("database error: write refused"))

	record, _, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	assert.Nil(t, record)
	assert.Equal(t, http.StatusBadGateway, statusOf(t, err))
}

func TestSubmitContactForm_DatabaseErrorSoftFailWhenConfigured(t *testing.T) {
	conf := config.Config{}
	conf.AntiSpam.SoftFailDatabaseErrors = true
	config.OverrideRuntime(conf)
	defer config.OverrideRuntime(config.Config{})

	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.Anything).Return(errors.New("database error: write refused"))

	record, fieldErrors, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")

	require.NoError(t, err, "a database failure is reported as success when soft-fail is on")
	assert.Empty(t, fieldErrors)
	assert.NotNil(t, record)
}

// ---------------------------------------------------------------------------
// Re-entrancy guard
// ---------------------------------------------------------------------------

func TestSubmitContactForm_GuardClearedAfterRejection(t *testing.T) {
	f := newFixture()
	f.allowHistory(0)
	f.store.On("InsertSubmission", mock.Anything).Return(nil)

	sub := cleanSubmission()
	sub.Honeypot = "filled"
	_, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")
	require.Error(t, err)

	// The in-flight guard must release even after a rejection.
	record, _, err := f.svc.SubmitContactForm(cleanSubmission(), "agent/1.0")
	require.NoError(t, err)
	assert.NotNil(t, record)
}

func TestSubmitContactForm_MissingVisitorID(t *testing.T) {
	f := newFixture()
	sub := cleanSubmission()
	sub.VisitorID = "  "

	_, _, err := f.svc.SubmitContactForm(sub, "agent/1.0")

	assert.Equal(t, http.StatusBadRequest, statusOf(t, err))
}

// ---------------------------------------------------------------------------
// ListSubmissions
// ---------------------------------------------------------------------------

func TestListSubmissions_PassesFilters(t *testing.T) {
	f := newFixture()
	f.store.On("ListSubmissions", 50, int64(10)).Return([]model.SubmissionRecord{{SubmissionID: "s1"}}, nil)

	records, err := f.svc.ListSubmissions(50, 10)

	require.NoError(t, err)
	require.Len(t, records, 1)
	f.store.AssertExpectations(t)
}

func TestListSubmissions_NilResultBecomesEmptySlice(t *testing.T) {
	f := newFixture()
	f.store.On("ListSubmissions", 0, int64(100)).Return(nil, nil)

	records, err := f.svc.ListSubmissions(0, 100)

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestListSubmissions_StoreFailure(t *testing.T) {
	f := newFixture()
	f.store.On("ListSubmissions", 0, int64(100)).Return(nil, errors.New("find failed"))

	_, err := f.svc.ListSubmissions(0, 100)

	var serverError *errors2.ServerError
	assert.ErrorAs(t, err, &serverError)
}
