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
	"sync"
	"time"

	model "github.com/wso2/site-engagement-service/internal/gating/model"
	"github.com/wso2/site-engagement-service/internal/system/constants"
)

// PageViewStoreInterface defines the registry operations for page views and
// their gated placeholders.
type PageViewStoreInterface interface {
	AddPageView(view *model.PageView)
	GetPageView(id string) (*model.PageView, bool)
	ResolveScripts(id string, allowed func(category string) bool) ([]model.ScriptActivation, bool)
	EvictExpired() int
}

// PageViewStore is an in-memory registry. Page views are transient and expire
// after the configured TTL.
type PageViewStore struct {
	views map[string]entry
	mutex sync.RWMutex
	ttl   time.Duration
}

type entry struct {
	view       *model.PageView
	expiration time.Time
}

// NewPageViewStore creates a registry with the given TTL.
func NewPageViewStore(ttl time.Duration) *PageViewStore {
	return &PageViewStore{
		views: make(map[string]entry),
		ttl:   ttl,
	}
}

// AddPageView registers a page view.
func (s *PageViewStore) AddPageView(view *model.PageView) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.views[view.ID] = entry{
		view:       view,
		expiration: time.Now().Add(s.ttl),
	}
}

// GetPageView returns a registered page view if it has not expired.
func (s *PageViewStore) GetPageView(id string) (*model.PageView, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	item, found := s.views[id]
	if !found || time.Now().After(item.expiration) {
		return nil, false
	}
	return item.view, true
}

// ResolveScripts transitions every still-inert placeholder whose category is
// allowed to the active state and returns the activations. The transition is
// one-way: placeholders already active are left untouched, so repeated
// resolution is idempotent.
func (s *PageViewStore) ResolveScripts(id string, allowed func(category string) bool) ([]model.ScriptActivation, bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	item, found := s.views[id]
	if !found || time.Now().After(item.expiration) {
		return nil, false
	}

	var activations []model.ScriptActivation
	now := time.Now().UTC()
	for _, script := range item.view.Scripts {
		if script.State != constants.ScriptStateInert {
			continue
		}
		if !allowed(script.Category) {
			continue
		}
		script.State = constants.ScriptStateActive
		activatedAt := now
		script.ActivatedAt = &activatedAt
		activations = append(activations, model.ScriptActivation{
			ID:         script.ID,
			Attributes: script.Attributes,
			Body:       script.Body,
		})
	}
	return activations, true
}

// EvictExpired drops expired page views and returns how many were removed.
func (s *PageViewStore) EvictExpired() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	evicted := 0
	for id, item := range s.views {
		if now.After(item.expiration) {
			delete(s.views, id)
			evicted++
		}
	}
	return evicted
}
