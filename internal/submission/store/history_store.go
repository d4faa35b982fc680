/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License. You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied. See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package store

import (
	"fmt"
	"time"

	"github.com/wso2/site-engagement-service/internal/system/database/provider"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// HistoryStoreInterface defines the operations on the per-visitor submission
// history backing the rate limiter.
type HistoryStoreInterface interface {
	PruneBefore(visitorID string, cutoff time.Time) error
	CountAttempts(visitorID string) (int, error)
	RecordAttempt(visitorID string, at time.Time) error
}

// HistoryStore is the Postgres-backed implementation.
type HistoryStore struct{}

// NewHistoryStore returns a new store instance.
func NewHistoryStore() HistoryStoreInterface {
	return &HistoryStore{}
}

// PruneBefore drops history entries older than the cutoff, keeping the table
// bounded to the rolling rate-limit window.
func (s *HistoryStore) PruneBefore(visitorID string, cutoff time.Time) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for pruning submission history: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for pruning submission history: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}

	query := `DELETE FROM submission_history WHERE visitor_id = $1 AND submitted_at < $2`
	_, err = tx.Exec(query, visitorID, cutoff)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to prune submission history: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}
	return tx.Commit()
}

// CountAttempts returns how many attempts remain recorded for the visitor.
func (s *HistoryStore) CountAttempts(visitorID string) (int, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching submission history: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SUBMISSION_HISTORY.Code,
			Message:     errors2.FETCH_SUBMISSION_HISTORY.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT COUNT(*) AS attempts FROM submission_history WHERE visitor_id = $1`
	results, err := dbClient.ExecuteQuery(query, visitorID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to count submission history: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return 0, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_SUBMISSION_HISTORY.Code,
			Message:     errors2.FETCH_SUBMISSION_HISTORY.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		return 0, nil
	}
	return toInt(results[0]["attempts"]), nil
}

// RecordAttempt appends this attempt's timestamp to the history.
func (s *HistoryStore) RecordAttempt(visitorID string, at time.Time) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for recording submission attempt: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for recording submission attempt: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO submission_history (visitor_id, submitted_at) VALUES ($1, $2)`
	_, err = tx.Exec(query, visitorID, at)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := fmt.Sprintf("Failed to record submission attempt: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.RECORD_SUBMISSION_ATTEMPT.Code,
			Message:     errors2.RECORD_SUBMISSION_ATTEMPT.Message,
			Description: errorMsg,
		}, err)
	}
	return tx.Commit()
}

func toInt(raw interface{}) int {
	switch v := raw.(type) {
	case int64:
		return int(v)
	case int:
		return v
	case []byte:
		n := 0
		for _, c := range v {
			if c < '0' || c > '9' {
				return n
			}
			n = n*10 + int(c-'0')
		}
		return n
	default:
		return 0
	}
}
