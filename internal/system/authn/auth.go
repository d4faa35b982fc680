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

package authn

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wso2/site-engagement-service/internal/system/config"
	errors2 "github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

// ValidateBearerTokenAndReturnClaims validates an HMAC-signed bearer token
// issued for operator access and returns its claims.
func ValidateBearerTokenAndReturnClaims(token string) (jwt.MapClaims, error) {

	logger := log.GetLogger()
	conf := config.GetRuntime().Config.Admin

	if conf.TokenSecret == "" {
		logger.Debug("Operator token secret is not configured.")
		return nil, unauthorizedError()
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(conf.TokenSecret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil || !parsed.Valid {
		logger.Debug("Bearer token validation failed.", log.Error(err))
		return nil, unauthorizedError()
	}

	if conf.TokenAudience != "" && !hasAudience(claims, conf.TokenAudience) {
		logger.Debug("Bearer token audience mismatch.")
		return nil, unauthorizedError()
	}

	return claims, nil
}

// HasScope reports whether the space-separated scope claim includes the
// requested operation.
func HasScope(claims jwt.MapClaims, operation string) bool {

	rawScope, ok := claims["scope"].(string)
	if !ok {
		return false
	}
	for _, scope := range strings.Fields(rawScope) {
		if scope == operation {
			return true
		}
	}
	return false
}

func hasAudience(claims jwt.MapClaims, expected string) bool {
	audiences, err := claims.GetAudience()
	if err != nil {
		return false
	}
	for _, aud := range audiences {
		if aud == expected {
			return true
		}
	}
	return false
}

func unauthorizedError() error {
	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.UN_AUTHORIZED.Code,
		Message:     errors2.UN_AUTHORIZED.Message,
		Description: "Missing or invalid Authorization header",
	}, http.StatusUnauthorized)
}
