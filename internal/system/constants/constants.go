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

package constants

import "time"

const ApiBasePath = "/api/v1"

// Consent categories. Necessary is always granted and is never a user choice.
const (
	CategoryNecessary = "necessary"
	CategoryAnalytics = "analytics"
	CategoryMarketing = "marketing"
)

// AllowedConsentCategories defines the fixed set of categories a gated script
// may declare.
var AllowedConsentCategories = map[string]bool{
	CategoryNecessary: true,
	CategoryAnalytics: true,
	CategoryMarketing: true,
}

// Gated script placeholder states.
const (
	ScriptStateInert  = "inert"
	ScriptStateActive = "active"
)

// Defaults for the consent cookie mirror.
const (
	DefaultConsentCookieName   = "site_cookie_consent"
	DefaultConsentCookieMaxAge = 365 * 24 * 60 * 60 // one year, in seconds
)

// Defaults for the anti-spam gates. All of them are overridable from
// deployment.yaml.
const (
	DefaultMaxSubmissionsPerHour = 3
	DefaultMinDwellTime          = 3 * time.Second
	DefaultMinMessageLength      = 10
	DefaultMaxMessageLength      = 5000
)

// RateLimitWindow is the rolling window the submission history is pruned to.
const RateLimitWindow = time.Hour

// SpamScoreCap is the upper bound of the advisory spam score.
const SpamScoreCap = 100

// SeedDenylistPhrases is the compiled-in denylist used when the persisted
// denylist is empty or unreachable.
var SeedDenylistPhrases = []string{
	"viagra",
	"cialis",
	"casino",
	"crypto investment",
	"forex signals",
	"work from home",
	"make money fast",
	"seo services",
	"buy followers",
	"click here",
	"limited offer",
	"100% free",
}

// Admin scopes accepted on operator endpoints.
const (
	ScopeSubmissionsView = "submissions:view"
	ScopeDenylistManage  = "denylist:manage"
)
