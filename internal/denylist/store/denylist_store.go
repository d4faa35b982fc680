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

package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"
	model "github.com/wso2/site-engagement-service/internal/denylist/model"
	"github.com/wso2/site-engagement-service/internal/system/database/provider"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// defaultDenylistID keys the single active phrase set.
const defaultDenylistID = "default"

// DenylistStoreInterface defines the persistence operations for the spam
// phrase denylist.
type DenylistStoreInterface interface {
	GetDenylist() (*model.Denylist, error)
	ReplaceDenylist(phrases []string) (*model.Denylist, error)
}

// DenylistStore is the Postgres-backed implementation.
type DenylistStore struct{}

// NewDenylistStore returns a new store instance.
func NewDenylistStore() DenylistStoreInterface {
	return &DenylistStore{}
}

// GetDenylist fetches the active phrase set. A missing row returns nil
// without an error so the caller can fall back to the compiled-in seed.
func (s *DenylistStore) GetDenylist() (*model.Denylist, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for fetching denylist"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DENYLIST.Code,
			Message:     errors2.FETCH_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := `SELECT phrases, updated_at FROM spam_denylist WHERE denylist_id = $1`
	results, err := dbClient.ExecuteQuery(query, defaultDenylistID)
	if err != nil {
		errorMsg := "Failed to fetch denylist"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.FETCH_DENYLIST.Code,
			Message:     errors2.FETCH_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}
	if len(results) == 0 {
		logger.Debug("No denylist row found")
		return nil, nil
	}

	row := results[0]
	denylist := model.Denylist{
		Phrases: parseStringArray(row["phrases"]),
	}
	if at, ok := row["updated_at"].(time.Time); ok {
		denylist.UpdatedAt = at
	}
	return &denylist, nil
}

// ReplaceDenylist overwrites the active phrase set wholesale.
func (s *DenylistStore) ReplaceDenylist(phrases []string) (*model.Denylist, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get db client for updating denylist"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DENYLIST.Code,
			Message:     errors2.UPDATE_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := "Failed to begin transaction for updating denylist"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DENYLIST.Code,
			Message:     errors2.UPDATE_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO spam_denylist (denylist_id, phrases, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (denylist_id) DO UPDATE SET phrases = EXCLUDED.phrases, updated_at = EXCLUDED.updated_at`
	_, err = tx.Exec(query, defaultDenylistID, pq.Array(phrases), now)
	if err != nil {
		_ = tx.Rollback()
		errorMsg := "Failed to update denylist"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DENYLIST.Code,
			Message:     errors2.UPDATE_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}
	if err := tx.Commit(); err != nil {
		errorMsg := "Failed to commit denylist update"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DENYLIST.Code,
			Message:     errors2.UPDATE_DENYLIST.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Replaced denylist with %d phrases", len(phrases)))
	return &model.Denylist{Phrases: phrases, UpdatedAt: now}, nil
}

func parseStringArray(raw interface{}) []string {
	if raw == nil {
		return nil
	}

	var rawStr string
	switch v := raw.(type) {
	case []byte:
		rawStr = string(v)
	case string:
		rawStr = v
	default:
		return nil
	}

	rawStr = strings.Trim(rawStr, "{}")
	if rawStr == "" {
		return nil
	}

	items := strings.Split(rawStr, ",")
	var result []string
	for _, item := range items {
		// Trim spaces and surrounding double quotes
		clean := strings.TrimSpace(item)
		clean = strings.Trim(clean, `"`)
		result = append(result, clean)
	}

	return result
}
