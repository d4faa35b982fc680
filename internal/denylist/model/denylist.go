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

package model

import "time"

// Denylist is the active set of spam phrases matched against contact form
// submissions.
type Denylist struct {
	Phrases   []string  `json:"phrases"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DenylistUpdate is the admin request payload replacing the phrase set.
type DenylistUpdate struct {
	Phrases []string `json:"phrases"`
}
