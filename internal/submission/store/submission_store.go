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

package store

import (
	"context"
	"time"

	model "github.com/wso2/site-engagement-service/internal/submission/model"
	mongoProvider "github.com/wso2/site-engagement-service/internal/system/database/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SubmissionStoreInterface defines the persistence operations for contact
// submissions.
type SubmissionStoreInterface interface {
	InsertSubmission(record *model.SubmissionRecord) error
	ListSubmissions(minSpamScore int, limit int64) ([]model.SubmissionRecord, error)
}

// SubmissionStore writes to the configured MongoDB collection.
type SubmissionStore struct{}

// NewSubmissionStore returns a new store instance.
func NewSubmissionStore() SubmissionStoreInterface {
	return &SubmissionStore{}
}

// InsertSubmission performs the single outbound write of one submission
// record. There is no retry: a failed call is classified by the service and
// reported once.
func (s *SubmissionStore) InsertSubmission(record *model.SubmissionRecord) error {

	collection, err := mongoProvider.GetSubmissionCollection()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = collection.InsertOne(ctx, record)
	return err
}

// ListSubmissions fetches submissions at or above the given spam score,
// newest first.
func (s *SubmissionStore) ListSubmissions(minSpamScore int, limit int64) ([]model.SubmissionRecord, error) {

	collection, err := mongoProvider.GetSubmissionCollection()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if minSpamScore > 0 {
		filter["spam_score"] = bson.M{"$gte": minSpamScore}
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []model.SubmissionRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
