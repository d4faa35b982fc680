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

package service

import (
	"net/http"
	"strings"

	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
)

// FailureClass categorizes a failed outbound write by its message content.
type FailureClass int

const (
	FailureUnknown FailureClass = iota
	FailureTimeout
	FailureNetwork
	FailureCrossOrigin
	FailureCompatibility
	FailureDatabase
)

// ClassifyStoreFailure maps a store error onto a failure class.
func ClassifyStoreFailure(err error) FailureClass {

	if err == nil {
		return FailureUnknown
	}
	message := strings.ToLower(err.Error())

	switch {
	case strings.Contains(message, "timeout") ||
		strings.Contains(message, "timed out") ||
		strings.Contains(message, "deadline exceeded"):
		return FailureTimeout
	case strings.Contains(message, "network") ||
		strings.Contains(message, "connection refused") ||
		strings.Contains(message, "connection reset") ||
		strings.Contains(message, "no such host"):
		return FailureNetwork
	case strings.Contains(message, "cross-origin") ||
		strings.Contains(message, "cors"):
		return FailureCrossOrigin
	case strings.Contains(message, "not supported") ||
		strings.Contains(message, "unsupported"):
		return FailureCompatibility
	case strings.Contains(message, "database error"):
		return FailureDatabase
	default:
		return FailureUnknown
	}
}

// ClientError maps the failure class onto the user-facing message.
func (c FailureClass) ClientError() error {

	switch c {
	case FailureTimeout:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.TIMEOUT_FAILURE.Code,
			Message: errors2.TIMEOUT_FAILURE.Message,
		}, http.StatusGatewayTimeout)
	case FailureNetwork:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.NETWORK_FAILURE.Code,
			Message: errors2.NETWORK_FAILURE.Message,
		}, http.StatusBadGateway)
	case FailureCrossOrigin:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.CROSS_ORIGIN_FAILURE.Code,
			Message: errors2.CROSS_ORIGIN_FAILURE.Message,
		}, http.StatusBadGateway)
	case FailureCompatibility:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.COMPATIBILITY_FAILURE.Code,
			Message: errors2.COMPATIBILITY_FAILURE.Message,
		}, http.StatusBadGateway)
	default:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.BACKEND_FAILURE.Code,
			Message: errors2.BACKEND_FAILURE.Message,
		}, http.StatusBadGateway)
	}
}
