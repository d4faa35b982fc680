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

	"github.com/wso2/site-engagement-service/internal/submission/handler"
)

// SubmissionService wires the contact form endpoints onto the multiplexer.
type SubmissionService struct {
	handler *handler.SubmissionHandler
}

// NewSubmissionService creates the service and registers its routes.
func NewSubmissionService(mux *http.ServeMux, apiBasePath string) *SubmissionService {
	instance := &SubmissionService{
		handler: handler.NewSubmissionHandler(),
	}
	instance.RegisterRoutes(mux, apiBasePath)
	return instance
}

// RegisterRoutes registers the submission routes.
func (s *SubmissionService) RegisterRoutes(mux *http.ServeMux, apiBasePath string) {
	mux.HandleFunc(fmt.Sprintf("POST %s/submissions", apiBasePath), s.handler.SubmitContactForm)
	mux.HandleFunc(fmt.Sprintf("GET %s/submissions", apiBasePath), s.handler.ListSubmissions)
}
