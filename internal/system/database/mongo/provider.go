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

package mongo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wso2/site-engagement-service/internal/system/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	clientOnce sync.Once
	mongoCli   *mongo.Client
	connectErr error
)

// GetSubmissionCollection returns the collection the contact submissions are
// written to. The underlying client is connected once and reused.
func GetSubmissionCollection() (*mongo.Collection, error) {

	conf := config.GetRuntime().Config.Mongo
	if conf.URI == "" || conf.Database == "" || conf.Collection == "" {
		return nil, fmt.Errorf("mongodb configuration is incomplete")
	}

	clientOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		mongoCli, connectErr = mongo.Connect(ctx, options.Client().ApplyURI(conf.URI))
		if connectErr != nil {
			return
		}
		connectErr = mongoCli.Ping(ctx, nil)
	})
	if connectErr != nil {
		return nil, connectErr
	}

	return mongoCli.Database(conf.Database).Collection(conf.Collection), nil
}

// Ping verifies connectivity to the submission database.
func Ping(ctx context.Context) error {

	if _, err := GetSubmissionCollection(); err != nil {
		return err
	}
	return mongoCli.Ping(ctx, nil)
}
