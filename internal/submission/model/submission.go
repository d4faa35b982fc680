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

import "time"

// ContactSubmission is the request payload of a contact form submission. The
// "website" field is the honeypot: legitimate clients never fill it.
type ContactSubmission struct {
	VisitorID    string `json:"visitor_id"`
	PageViewID   string `json:"page_view_id,omitempty"`
	Name         string `json:"name"`
	Organisation string `json:"organisation,omitempty"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Message      string `json:"message"`
	ConsentGiven bool   `json:"consent_given"`
	Honeypot     string `json:"website,omitempty"`
	ElapsedMs    int64  `json:"elapsed_ms"`
}

// SubmissionRecord is the snapshot written to the contact collection. The
// spam score is advisory only and carried for operator triage.
type SubmissionRecord struct {
	SubmissionID      string    `bson:"submission_id" json:"submission_id"`
	VisitorID         string    `bson:"visitor_id" json:"visitor_id"`
	Name              string    `bson:"name" json:"name"`
	Organisation      string    `bson:"organisation,omitempty" json:"organisation,omitempty"`
	Email             string    `bson:"email" json:"email"`
	Phone             string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Message           string    `bson:"message" json:"message"`
	ConsentGiven      bool      `bson:"consent_given" json:"consent_given"`
	UserAgent         string    `bson:"user_agent" json:"user_agent"`
	HoneypotTriggered bool      `bson:"honeypot_triggered" json:"honeypot_triggered"`
	ElapsedMs         int64     `bson:"elapsed_ms" json:"elapsed_ms"`
	SubmittedAt       time.Time `bson:"submitted_at" json:"submitted_at"`
	SpamScore         int       `bson:"spam_score" json:"spam_score"`
}

// FieldError carries one inline validation message for a form field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
