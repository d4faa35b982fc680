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

package provider

import (
	"sync"

	denylistProvider "github.com/wso2/site-engagement-service/internal/denylist/provider"
	gatingProvider "github.com/wso2/site-engagement-service/internal/gating/provider"
	"github.com/wso2/site-engagement-service/internal/submission/service"
	"github.com/wso2/site-engagement-service/internal/submission/store"
)

var (
	instance *service.SubmissionService
	once     sync.Once
)

// SubmissionProviderInterface defines the interface for the submission provider.
type SubmissionProviderInterface interface {
	GetSubmissionService() service.SubmissionServiceInterface
}

// SubmissionProvider is the default implementation.
type SubmissionProvider struct{}

// NewSubmissionProvider creates a new instance of SubmissionProvider.
func NewSubmissionProvider() SubmissionProviderInterface {
	return &SubmissionProvider{}
}

// GetSubmissionService returns the singleton submission service wired to the
// Mongo submission store, the Postgres rate-limit history, the denylist and
// the page view registry.
func (sp *SubmissionProvider) GetSubmissionService() service.SubmissionServiceInterface {
	once.Do(func() {
		instance = service.NewSubmissionService(
			store.NewSubmissionStore(),
			store.NewHistoryStore(),
			denylistProvider.NewDenylistProvider().GetDenylistService(),
			gatingProvider.NewGatingProvider().GetPageViewStore(),
		)
	})
	return instance
}
