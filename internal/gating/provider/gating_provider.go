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
	"time"

	consentProvider "github.com/wso2/site-engagement-service/internal/consent/provider"
	"github.com/wso2/site-engagement-service/internal/gating/service"
	"github.com/wso2/site-engagement-service/internal/gating/store"
)

// PageViewTTL bounds how long a transient page view stays resolvable.
const PageViewTTL = 30 * time.Minute

// GatingProviderInterface defines the interface for the gating provider.
type GatingProviderInterface interface {
	GetGatingService() service.GatingServiceInterface
	GetPageViewStore() store.PageViewStoreInterface
}

// GatingProvider is the default implementation of the GatingProviderInterface.
type GatingProvider struct{}

var (
	pageViewStore *store.PageViewStore
	gatingService *service.GatingService
	once          sync.Once
)

// NewGatingProvider creates a new instance of GatingProvider.
func NewGatingProvider() GatingProviderInterface {
	return &GatingProvider{}
}

// GetGatingService returns the shared gating service instance.
func (gp *GatingProvider) GetGatingService() service.GatingServiceInterface {
	initShared()
	return gatingService
}

// GetPageViewStore returns the shared page view registry.
func (gp *GatingProvider) GetPageViewStore() store.PageViewStoreInterface {
	initShared()
	return pageViewStore
}

func initShared() {
	once.Do(func() {
		pageViewStore = store.NewPageViewStore(PageViewTTL)
		gatingService = service.NewGatingService(
			pageViewStore,
			consentProvider.NewConsentProvider().GetConsentService(),
		)
	})
}
