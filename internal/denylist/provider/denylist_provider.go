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

	"github.com/wso2/site-engagement-service/internal/denylist/service"
	"github.com/wso2/site-engagement-service/internal/denylist/store"
)

var (
	instance *service.DenylistService
	once     sync.Once
)

// DenylistProviderInterface defines the interface for the denylist provider.
type DenylistProviderInterface interface {
	GetDenylistService() service.DenylistServiceInterface
}

// DenylistProvider is the default implementation.
type DenylistProvider struct{}

// NewDenylistProvider creates a new instance of DenylistProvider.
func NewDenylistProvider() DenylistProviderInterface {
	return &DenylistProvider{}
}

// GetDenylistService returns the singleton denylist service.
func (dp *DenylistProvider) GetDenylistService() service.DenylistServiceInterface {
	once.Do(func() {
		instance = service.NewDenylistService(store.NewDenylistStore())
	})
	return instance
}
