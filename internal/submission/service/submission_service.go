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
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	denylistService "github.com/wso2/site-engagement-service/internal/denylist/service"
	gatingStore "github.com/wso2/site-engagement-service/internal/gating/store"
	model "github.com/wso2/site-engagement-service/internal/submission/model"
	"github.com/wso2/site-engagement-service/internal/submission/store"
	"github.com/wso2/site-engagement-service/internal/system/config"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// SubmissionServiceInterface defines the service interface.
type SubmissionServiceInterface interface {
	SubmitContactForm(sub model.ContactSubmission, userAgent string) (*model.SubmissionRecord, []model.FieldError, error)
	ListSubmissions(minSpamScore int, limit int64) ([]model.SubmissionRecord, error)
}

// SubmissionService is the contact form controller: it validates fields,
// applies the anti-spam gates in fixed order and performs the single
// outbound write.
type SubmissionService struct {
	store     store.SubmissionStoreInterface
	history   store.HistoryStoreInterface
	denylist  denylistService.DenylistServiceInterface
	pageViews gatingStore.PageViewStoreInterface

	// inFlight guards against re-entrant submission per visitor. The guard
	// is cleared in a final step regardless of outcome.
	inFlight      map[string]bool
	inFlightMutex sync.Mutex
}

// NewSubmissionService constructs the controller over its collaborators.
func NewSubmissionService(
	submissionStore store.SubmissionStoreInterface,
	historyStore store.HistoryStoreInterface,
	denylist denylistService.DenylistServiceInterface,
	pageViews gatingStore.PageViewStoreInterface,
) *SubmissionService {
	return &SubmissionService{
		store:     submissionStore,
		history:   historyStore,
		denylist:  denylist,
		pageViews: pageViews,
		inFlight:  make(map[string]bool),
	}
}

// SubmitContactForm runs the full submit pipeline. Field validation failures
// are returned as inline errors; anti-spam rejections and backend failures
// come back as classified errors.
func (ss *SubmissionService) SubmitContactForm(sub model.ContactSubmission, userAgent string) (*model.SubmissionRecord, []model.FieldError, error) {

	logger := log.GetLogger()

	visitorID := strings.TrimSpace(sub.VisitorID)
	if visitorID == "" {
		return nil, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "visitor_id is required.",
		}, http.StatusBadRequest)
	}

	if !ss.beginSubmission(visitorID) {
		return nil, nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.SUBMISSION_IN_PROGRESS.Code,
			Message: errors2.SUBMISSION_IN_PROGRESS.Message,
		}, http.StatusConflict)
	}
	defer ss.endSubmission(visitorID)

	conf := config.GetRuntime().Config

	if fieldErrors := ValidateFields(sub, conf.MinMessageLength()); len(fieldErrors) > 0 {
		return nil, fieldErrors, nil
	}

	// Anti-spam gates, fixed order, short-circuiting on first failure.
	if strings.TrimSpace(sub.Honeypot) != "" {
		ss.auditRejection(visitorID, "honeypot")
		return nil, nil, rejectionError()
	}
	if err := ss.checkRateLimit(visitorID, conf.MaxSubmissionsPerHour()); err != nil {
		return nil, nil, err
	}
	phrases := ss.denylist.GetPhrases()
	if hits := DenylistHits(phrases, sub.Name, sub.Email, sub.Message); len(hits) > 0 {
		logger.Debug(fmt.Sprintf("Submission from %s matched denylist phrases: %v", visitorID, hits))
		ss.auditRejection(visitorID, "denylist")
		return nil, nil, rejectionError()
	}
	if !ss.dwellTimeSatisfied(sub, conf.MinDwellTime()) {
		ss.auditRejection(visitorID, "dwell-time")
		return nil, nil, rejectionError()
	}

	record := &model.SubmissionRecord{
		SubmissionID:      uuid.New().String(),
		VisitorID:         visitorID,
		Name:              strings.TrimSpace(sub.Name),
		Organisation:      strings.TrimSpace(sub.Organisation),
		Email:             strings.TrimSpace(sub.Email),
		Phone:             strings.TrimSpace(sub.Phone),
		Message:           strings.TrimSpace(sub.Message),
		ConsentGiven:      sub.ConsentGiven,
		UserAgent:         userAgent,
		HoneypotTriggered: false,
		ElapsedMs:         sub.ElapsedMs,
		SubmittedAt:       time.Now().UTC(),
		SpamScore:         SpamScore(sub, phrases, conf.MinMessageLength(), conf.MaxMessageLength()),
	}

	if err := ss.store.InsertSubmission(record); err != nil {
		class := ClassifyStoreFailure(err)
		if class == FailureDatabase && conf.AntiSpam.SoftFailDatabaseErrors {
			logger.Warn("Submission store reported a database error, treating as soft success", log.Error(err))
			return record, nil, nil
		}
		logger.Error("Failed to store contact submission", log.Error(err))
		return nil, nil, class.ClientError()
	}

	logger.Audit(log.AuditEvent{
		InitiatorID:   visitorID,
		InitiatorType: log.InitiatorTypeVisitor,
		TargetID:      record.SubmissionID,
		TargetType:    log.TargetTypeSubmission,
		ActionID:      log.ActionAddSubmission,
		Data:          map[string]int{"spam_score": record.SpamScore},
	})
	return record, nil, nil
}

// ListSubmissions returns stored submissions for operator triage.
func (ss *SubmissionService) ListSubmissions(minSpamScore int, limit int64) ([]model.SubmissionRecord, error) {

	records, err := ss.store.ListSubmissions(minSpamScore, limit)
	if err != nil {
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SUBMISSIONS.Code,
			Message:     errors2.FETCH_SUBMISSIONS.Message,
			Description: "Failed to fetch contact submissions.",
		}, err)
	}
	if records == nil {
		records = []model.SubmissionRecord{}
	}
	return records, nil
}

// checkRateLimit prunes the visitor's history to the rolling window, rejects
// at or above the allowed maximum and otherwise records this attempt.
func (ss *SubmissionService) checkRateLimit(visitorID string, maxPerHour int) error {

	now := time.Now().UTC()
	if err := ss.history.PruneBefore(visitorID, now.Add(-constants.RateLimitWindow)); err != nil {
		return err
	}
	attempts, err := ss.history.CountAttempts(visitorID)
	if err != nil {
		return err
	}
	if attempts >= maxPerHour {
		ss.auditRejection(visitorID, "rate-limit")
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.SUBMISSION_RATE_LIMITED.Code,
			Message: errors2.SUBMISSION_RATE_LIMITED.Message,
		}, http.StatusTooManyRequests)
	}
	return ss.history.RecordAttempt(visitorID, now)
}

// dwellTimeSatisfied checks the bot-speed heuristic: enough time must have
// passed since the form was first rendered. The page view registration time
// is authoritative; the client-reported elapsed time is the fallback.
func (ss *SubmissionService) dwellTimeSatisfied(sub model.ContactSubmission, minDwell time.Duration) bool {

	var elapsed time.Duration
	if sub.PageViewID != "" && ss.pageViews != nil {
		if view, found := ss.pageViews.GetPageView(sub.PageViewID); found {
			elapsed = time.Since(view.CreatedAt)
		}
	}
	if elapsed == 0 {
		elapsed = time.Duration(sub.ElapsedMs) * time.Millisecond
	}
	return elapsed >= minDwell
}

func (ss *SubmissionService) beginSubmission(visitorID string) bool {
	ss.inFlightMutex.Lock()
	defer ss.inFlightMutex.Unlock()

	if ss.inFlight[visitorID] {
		return false
	}
	ss.inFlight[visitorID] = true
	return true
}

func (ss *SubmissionService) endSubmission(visitorID string) {
	ss.inFlightMutex.Lock()
	defer ss.inFlightMutex.Unlock()

	delete(ss.inFlight, visitorID)
}

func (ss *SubmissionService) auditRejection(visitorID, reason string) {
	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   visitorID,
		InitiatorType: log.InitiatorTypeVisitor,
		TargetType:    log.TargetTypeSubmission,
		ActionID:      log.ActionRejectSubmission,
		Data:          map[string]string{"reason": reason},
	})
}

// rejectionError is the single generic anti-spam rejection surfaced to the
// end user.
func rejectionError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:    errors2.SUBMISSION_REJECTED.Code,
		Message: errors2.SUBMISSION_REJECTED.Message,
	}, http.StatusUnprocessableEntity)
}
