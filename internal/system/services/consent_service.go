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

	"github.com/wso2/site-engagement-service/internal/consent/handler"
)

// ConsentService wires the consent endpoints onto the multiplexer.
type ConsentService struct {
	handler *handler.ConsentHandler
}

// NewConsentService creates the service and registers its routes.
func NewConsentService(mux *http.ServeMux, apiBasePath string) *ConsentService {
	instance := &ConsentService{
		handler: handler.NewConsentHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

// RegisterRoutes registers the consent routes.
func (s *ConsentService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/visitors", apiBasePath), s.handler.CreateVisitor)
	mux.HandleFunc(fmt.Sprintf("GET %s/visitors/{visitorId}/consent", apiBasePath), s.handler.GetConsentRecord)
	mux.HandleFunc(fmt.Sprintf("PUT %s/visitors/{visitorId}/consent", apiBasePath), s.handler.SavePreferences)
	mux.HandleFunc(fmt.Sprintf("POST %s/visitors/{visitorId}/consent/accept-all", apiBasePath), s.handler.AcceptAll)
	mux.HandleFunc(fmt.Sprintf("POST %s/visitors/{visitorId}/consent/reject", apiBasePath), s.handler.RejectNonEssential)
	mux.HandleFunc(fmt.Sprintf("GET %s/visitors/{visitorId}/consent/categories/{category}", apiBasePath), s.handler.GetCategoryDecision)
	mux.HandleFunc(fmt.Sprintf("GET %s/visitors/{visitorId}/banner", apiBasePath), s.handler.GetBannerDecision)
}
