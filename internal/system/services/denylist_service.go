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

package services

import (
	"fmt"
	"net/http"

	"github.com/wso2/site-engagement-service/internal/denylist/handler"
)

// DenylistService wires the admin denylist endpoints onto the multiplexer.
type DenylistService struct {
	handler *handler.DenylistHandler
}

// NewDenylistService creates the service and registers its routes.
func NewDenylistService(mux *http.ServeMux, apiBasePath string) *DenylistService {
	instance := &DenylistService{
		handler: handler.NewDenylistHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

// RegisterRoutes registers the denylist routes.
func (s *DenylistService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("GET %s/denylist", apiBasePath), s.handler.GetDenylist)
	mux.HandleFunc(fmt.Sprintf("PUT %s/denylist", apiBasePath), s.handler.UpdateDenylist)
}
