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

	model "github.com/wso2/site-engagement-service/internal/consent/model"
	"github.com/wso2/site-engagement-service/internal/system/database/provider"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// ConsentStoreInterface defines the persistence operations for consent records.
type ConsentStoreInterface interface {
	GetConsentRecord(visitorID string) (*model.ConsentRecord, error)
	UpsertConsentRecord(record *model.ConsentRecord) error
}

// ConsentStore is the Postgres-backed implementation.
type ConsentStore struct{}

// NewConsentStore returns a new store instance.
func NewConsentStore() ConsentStoreInterface {
	return &ConsentStore{}
}

// GetConsentRecord fetches the persisted record for a visitor. A missing row
// or a corrupt payload yields (nil, nil) so the caller falls back to the
// compiled-in defaults.
func (s *ConsentStore) GetConsentRecord(visitorID string) (*model.ConsentRecord, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for fetching consent record: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_RECORD.Code,
			Message:     errors2.FETCH_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT record FROM consent_records WHERE visitor_id = $1`
	results, err := dbClient.ExecuteQuery(query, visitorID)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to execute query for fetching consent record: %s", visitorID)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_CONSENT_RECORD.Code,
			Message:     errors2.FETCH_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("Consent record not found for visitor: %s", visitorID))
		return nil, nil
	}

	raw := rawPayload(results[0]["record"])
	record, ok := model.ParseStoredRecord(visitorID, raw)
	if !ok {
		logger.Warn(fmt.Sprintf("Corrupt consent record for visitor %s, falling back to defaults", visitorID))
		return nil, nil
	}
	return &record, nil
}

// UpsertConsentRecord overwrites the persisted record for a visitor.
func (s *ConsentStore) UpsertConsentRecord(record *model.ConsentRecord) error {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get db client for saving consent record: %s", record.VisitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SAVE_CONSENT_RECORD.Code,
			Message:     errors2.SAVE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	record.UpdatedAt = time.Now().UTC()
	payload, err := model.SerializeRecord(*record)
	if err != nil {
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SAVE_CONSENT_RECORD.Code,
			Message:     errors2.SAVE_CONSENT_RECORD.Message,
			Description: "Failed to serialize consent record.",
		}, err)
	}

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for saving consent record: %s", record.VisitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SAVE_CONSENT_RECORD.Code,
			Message:     errors2.SAVE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}

	query := `INSERT INTO consent_records (visitor_id, record, updated_at)
				VALUES ($1, $2, $3)
				ON CONFLICT (visitor_id) DO UPDATE SET record = $2, updated_at = $3`
	_, err = tx.Exec(query, record.VisitorID, string(payload), record.UpdatedAt)
	if err != nil {
		errRollback := tx.Rollback()
		if errRollback != nil {
			errorMsg := fmt.Sprintf("Failed to rollback saving consent record: %s", record.VisitorID)
			logger.Debug(errorMsg, log.Error(errRollback))
			return errors2.NewServerError(errors2.ErrorMessage{
				Code:        errors2.SAVE_CONSENT_RECORD.Code,
				Message:     errors2.SAVE_CONSENT_RECORD.Message,
				Description: errorMsg,
			}, errRollback)
		}
		errorMsg := fmt.Sprintf("Failed to execute query for saving consent record: %s", record.VisitorID)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.SAVE_CONSENT_RECORD.Code,
			Message:     errors2.SAVE_CONSENT_RECORD.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Debug(fmt.Sprintf("Successfully saved consent record for visitor: %s", record.VisitorID))
	return tx.Commit()
}

func rawPayload(raw interface{}) []byte {
	switch v := raw.(type) {
	case []byte:
		return v
	case string:
		return []byte(v)
	default:
		return nil
	}
}
