/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package workers

import (
	"fmt"
	"sync"
	"time"

	"github.com/wso2/site-engagement-service/internal/gating/provider"
	"github.com/wso2/site-engagement-service/internal/system/log"
)

var sweeperOnce sync.Once

const sweepInterval = 5 * time.Minute

// StartPageViewSweeper starts the background sweep that evicts expired page
// views from the in-memory registry.
// This function can be called multiple times safely; it will only initialize once.
func StartPageViewSweeper() {

	sweeperOnce.Do(func() {
		store := provider.NewGatingProvider().GetPageViewStore()

		go func() {
			ticker := time.NewTicker(sweepInterval)
			defer ticker.Stop()

			for range ticker.C {
				evicted := store.EvictExpired()
				if evicted > 0 {
					log.GetLogger().Debug(fmt.Sprintf("Evicted %d expired page views", evicted))
				}
			}
		}()
	})
}
