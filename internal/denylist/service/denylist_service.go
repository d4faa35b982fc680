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
	"net/http"
	"strings"

	model "github.com/wso2/site-engagement-service/internal/denylist/model"
	"github.com/wso2/site-engagement-service/internal/denylist/store"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// DenylistServiceInterface defines the service interface.
type DenylistServiceInterface interface {
	GetDenylist() (*model.Denylist, error)
	GetPhrases() []string
	ReplacePhrases(update model.DenylistUpdate) (*model.Denylist, error)
}

// DenylistService manages the spam phrase set. Reads fail soft: when the
// store is unavailable the compiled-in seed phrases keep the spam gate
// working.
type DenylistService struct {
	store store.DenylistStoreInterface
}

// NewDenylistService creates the service over the given store.
func NewDenylistService(denylistStore store.DenylistStoreInterface) *DenylistService {
	return &DenylistService{store: denylistStore}
}

// GetDenylist returns the stored phrase set, or the seed set when none has
// been stored yet.
func (ds *DenylistService) GetDenylist() (*model.Denylist, error) {

	denylist, err := ds.store.GetDenylist()
	if err != nil {
		return nil, err
	}
	if denylist == nil {
		return &model.Denylist{Phrases: seedPhrases()}, nil
	}
	return denylist, nil
}

// GetPhrases returns the phrases to match submissions against. Store
// failures are logged and answered with the seed set so a database outage
// never disables the denylist gate.
func (ds *DenylistService) GetPhrases() []string {

	denylist, err := ds.store.GetDenylist()
	if err != nil {
		log.GetLogger().Warn("Falling back to seed denylist phrases", log.Error(err))
		return seedPhrases()
	}
	if denylist == nil || len(denylist.Phrases) == 0 {
		return seedPhrases()
	}
	return denylist.Phrases
}

// ReplacePhrases overwrites the phrase set. Phrases are trimmed, lowercased
// and deduplicated before storage.
func (ds *DenylistService) ReplacePhrases(update model.DenylistUpdate) (*model.Denylist, error) {

	seen := make(map[string]bool)
	phrases := make([]string, 0, len(update.Phrases))
	for _, phrase := range update.Phrases {
		clean := strings.ToLower(strings.TrimSpace(phrase))
		if clean == "" || seen[clean] {
			continue
		}
		seen[clean] = true
		phrases = append(phrases, clean)
	}
	if len(phrases) == 0 {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.BAD_REQUEST.Code,
			Message:     errors2.BAD_REQUEST.Message,
			Description: "At least one non-empty phrase is required.",
		}, http.StatusBadRequest)
	}

	denylist, err := ds.store.ReplaceDenylist(phrases)
	if err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorType: log.InitiatorTypeAdmin,
		TargetType:    log.TargetTypeDenylist,
		ActionID:      log.ActionUpdateDenylist,
		Data:          map[string]int{"phrase_count": len(phrases)},
	})
	return denylist, nil
}

func seedPhrases() []string {
	phrases := make([]string, len(constants.SeedDenylistPhrases))
	copy(phrases, constants.SeedDenylistPhrases)
	return phrases
}
