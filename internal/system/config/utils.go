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

package config

import (
	"os"
	"path"
	"time"

	"github.com/wso2/site-engagement-service/internal/system/constants"
	"gopkg.in/yaml.v2"
)

// LoadConfig reads the deployment file, expands environment variable
// references and unmarshals the result.
func LoadConfig(home, filePath string) (*Config, error) {
	file, err := os.ReadFile(path.Join(home, filePath))
	if err != nil {
		return nil, err
	}

	expanded := os.ExpandEnv(string(file))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ConsentCookieName returns the configured cookie name or the default.
func (c *Config) ConsentCookieName() string {
	if c.Consent.CookieName == "" {
		return constants.DefaultConsentCookieName
	}
	return c.Consent.CookieName
}

// ConsentCookieMaxAge returns the configured cookie max age or the default.
func (c *Config) ConsentCookieMaxAge() int {
	if c.Consent.CookieMaxAge <= 0 {
		return constants.DefaultConsentCookieMaxAge
	}
	return c.Consent.CookieMaxAge
}

// MaxSubmissionsPerHour returns the configured rate limit or the default.
func (c *Config) MaxSubmissionsPerHour() int {
	if c.AntiSpam.MaxSubmissionsPerHour <= 0 {
		return constants.DefaultMaxSubmissionsPerHour
	}
	return c.AntiSpam.MaxSubmissionsPerHour
}

// MinDwellTime returns the configured minimum dwell time or the default.
func (c *Config) MinDwellTime() time.Duration {
	if c.AntiSpam.MinDwellSeconds <= 0 {
		return constants.DefaultMinDwellTime
	}
	return time.Duration(c.AntiSpam.MinDwellSeconds) * time.Second
}

// MinMessageLength returns the configured message floor or the default.
func (c *Config) MinMessageLength() int {
	if c.AntiSpam.MinMessageLength <= 0 {
		return constants.DefaultMinMessageLength
	}
	return c.AntiSpam.MinMessageLength
}

// MaxMessageLength returns the configured message ceiling or the default.
func (c *Config) MaxMessageLength() int {
	if c.AntiSpam.MaxMessageLength <= 0 {
		return constants.DefaultMaxMessageLength
	}
	return c.AntiSpam.MaxMessageLength
}
