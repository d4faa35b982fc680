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

// GatedScript is a script placeholder held back until its consent category is
// granted. State is a tagged variant: a placeholder is either inert or
// active, and the transition is one-way.
type GatedScript struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Attributes  map[string]string `json:"attributes,omitempty"`
	Body        string            `json:"body,omitempty"`
	State       string            `json:"state"`
	ActivatedAt *time.Time        `json:"activated_at,omitempty"`
}

// PageView represents one rendered page and the placeholders it registered.
// Its creation time doubles as the form-render timestamp for the dwell gate.
type PageView struct {
	ID            string         `json:"id"`
	Path          string         `json:"path"`
	VisitorID     string         `json:"visitor_id"`
	ReducedMotion bool           `json:"reduced_motion"`
	CreatedAt     time.Time      `json:"created_at"`
	Scripts       []*GatedScript `json:"scripts"`
}

// ScriptRegistration is the inert payload a page registers for one
// placeholder.
type ScriptRegistration struct {
	Category   string            `json:"category"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Body       string            `json:"body,omitempty"`
}

// PageViewRegistration is the request payload for registering a page view.
// ReducedMotion mirrors the client's system-level motion preference so the
// service can skip transition hints in its responses.
type PageViewRegistration struct {
	Path          string               `json:"path"`
	VisitorID     string               `json:"visitor_id"`
	ReducedMotion bool                 `json:"reduced_motion"`
	Scripts       []ScriptRegistration `json:"scripts"`
}

// ScriptActivation is the live form of a resolved placeholder: attributes and
// body are carried over verbatim, the category marker is dropped.
type ScriptActivation struct {
	ID         string            `json:"id"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Body       string            `json:"body,omitempty"`
}
