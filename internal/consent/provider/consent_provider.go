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

	"github.com/wso2/site-engagement-service/internal/consent/service"
	"github.com/wso2/site-engagement-service/internal/consent/store"
	"github.com/wso2/site-engagement-service/internal/system/config"
)

// ConsentProviderInterface defines the interface for the consent provider.
type ConsentProviderInterface interface {
	GetConsentService() service.ConsentServiceInterface
}

// ConsentProvider is the default implementation of the ConsentProviderInterface.
type ConsentProvider struct{}

var (
	consentService *service.ConsentService
	once           sync.Once
)

// NewConsentProvider creates a new instance of ConsentProvider.
func NewConsentProvider() ConsentProviderInterface {
	return &ConsentProvider{}
}

// GetConsentService returns the shared consent service instance.
func (cp *ConsentProvider) GetConsentService() service.ConsentServiceInterface {

	once.Do(func() {
		ttl := 30 * time.Minute
		if seconds := config.GetRuntime().Config.Consent.CacheTTLSeconds; seconds > 0 {
			ttl = time.Duration(seconds) * time.Second
		}
		consentService = service.NewConsentService(store.NewConsentStore(), ttl)
	})
	return consentService
}
