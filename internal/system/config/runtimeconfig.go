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

import "sync"

// EngagementRuntime holds the runtime configuration for the engagement server.
type EngagementRuntime struct {
	Home   string `yaml:"home"`
	Config Config `yaml:"config"`
}

var (
	runtimeConfig *EngagementRuntime
	once          sync.Once
)

// InitializeRuntime initializes the EngagementRuntime configuration.
func InitializeRuntime(home string, config *Config) error {

	once.Do(func() {
		runtimeConfig = &EngagementRuntime{
			Home:   home,
			Config: *config,
		}
	})

	return nil
}

// GetRuntime returns the EngagementRuntime configuration.
func GetRuntime() *EngagementRuntime {

	if runtimeConfig == nil {
		panic("EngagementRuntime is not initialized")
	}
	return runtimeConfig
}

// OverrideRuntime replaces the runtime configuration. Used by tests.
func OverrideRuntime(conf Config) {
	runtimeConfig = &EngagementRuntime{
		Config: conf,
	}
}
