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

package model

import (
	"encoding/json"
	"time"
)

// ConsentRecord represents a visitor's cookie-category preferences. Necessary
// is always true and never presented as a choice.
type ConsentRecord struct {
	VisitorID string    `json:"visitor_id"`
	Necessary bool      `json:"necessary"`
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// ConsentUpdate carries the optional categories of a save-preferences call.
// Categories left nil keep their current value (shallow merge).
type ConsentUpdate struct {
	Analytics *bool `json:"analytics"`
	Marketing *bool `json:"marketing"`
}

// DefaultConsentRecord returns the compiled-in default record: necessary only.
func DefaultConsentRecord(visitorID string) ConsentRecord {
	return ConsentRecord{
		VisitorID: visitorID,
		Necessary: true,
		Analytics: false,
		Marketing: false,
	}
}

// Copy returns a defensive copy of the record.
func (r ConsentRecord) Copy() ConsentRecord {
	return r
}

// CookieValue serializes the record the way the mirrored consent cookie
// expects it: the three category flags only.
func (r ConsentRecord) CookieValue() string {
	payload, err := json.Marshal(map[string]bool{
		"necessary": true,
		"analytics": r.Analytics,
		"marketing": r.Marketing,
	})
	if err != nil {
		return ""
	}
	return string(payload)
}

// ParseStoredRecord deserializes a persisted record. Missing keys fall back
// to the compiled-in defaults via merge; a corrupt payload yields ok=false so
// the caller can fail soft to the defaults.
func ParseStoredRecord(visitorID string, raw []byte) (ConsentRecord, bool) {

	var stored struct {
		Analytics *bool      `json:"analytics"`
		Marketing *bool      `json:"marketing"`
		UpdatedAt *time.Time `json:"updated_at"`
	}
	if err := json.Unmarshal(raw, &stored); err != nil {
		return DefaultConsentRecord(visitorID), false
	}

	record := DefaultConsentRecord(visitorID)
	if stored.Analytics != nil {
		record.Analytics = *stored.Analytics
	}
	if stored.Marketing != nil {
		record.Marketing = *stored.Marketing
	}
	if stored.UpdatedAt != nil {
		record.UpdatedAt = *stored.UpdatedAt
	}
	return record, true
}

// SerializeRecord produces the persisted form of a record.
func SerializeRecord(record ConsentRecord) ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"necessary":  true,
		"analytics":  record.Analytics,
		"marketing":  record.Marketing,
		"updated_at": record.UpdatedAt,
	})
}
