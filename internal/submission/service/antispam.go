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
	"strings"
	"time"
	"unicode"

	"github.com/wso2/site-engagement-service/internal/system/constants"
	model "github.com/wso2/site-engagement-service/internal/submission/model"
)

// Additive spam score components. The score is advisory only: it is attached
// to the stored record and never drives control flow.
const (
	denylistHitPoints    = 20
	uppercaseRatioPoints = 15
	digitRatioPoints     = 10
	specialRatioPoints   = 10
	messageLengthPoints  = 10
	repeatedRunPoints    = 10
	fastFillPoints       = 15
	slowFillPoints       = 5

	uppercaseRatioThreshold = 0.5
	digitRatioThreshold     = 0.3
	specialRatioThreshold   = 0.3

	fastFillThreshold = 5 * time.Second
	slowFillThreshold = 30 * time.Minute

	// minLettersForRatio avoids flagging very short messages on ratios.
	minLettersForRatio = 10

	// repeatedRunLength is the run of identical characters that scores.
	repeatedRunLength = 4
)

// DenylistHits returns the denylist phrases found in the given fields,
// matched case-insensitively as substrings.
func DenylistHits(phrases []string, fields ...string) []string {

	haystack := strings.ToLower(strings.Join(fields, " "))
	var hits []string
	for _, phrase := range phrases {
		needle := strings.ToLower(strings.TrimSpace(phrase))
		if needle == "" {
			continue
		}
		if strings.Contains(haystack, needle) {
			hits = append(hits, phrase)
		}
	}
	return hits
}

// SpamScore computes the composite 0-100 score for a submission.
func SpamScore(sub model.ContactSubmission, phrases []string, minMessageLength, maxMessageLength int) int {

	score := 0

	hits := DenylistHits(phrases, sub.Name, sub.Email, sub.Message)
	score += len(hits) * denylistHitPoints

	message := sub.Message
	letters, uppercase, digits, special := 0, 0, 0, 0
	for _, r := range message {
		switch {
		case unicode.IsLetter(r):
			letters++
			if unicode.IsUpper(r) {
				uppercase++
			}
		case unicode.IsDigit(r):
			digits++
		case !unicode.IsSpace(r):
			special++
		}
	}

	total := len([]rune(message))
	if letters >= minLettersForRatio && float64(uppercase)/float64(letters) > uppercaseRatioThreshold {
		score += uppercaseRatioPoints
	}
	if total > 0 && float64(digits)/float64(total) > digitRatioThreshold {
		score += digitRatioPoints
	}
	if total > 0 && float64(special)/float64(total) > specialRatioThreshold {
		score += specialRatioPoints
	}
	if total < minMessageLength || total > maxMessageLength {
		score += messageLengthPoints
	}
	if hasRepeatedRun(message, repeatedRunLength) {
		score += repeatedRunPoints
	}

	elapsed := time.Duration(sub.ElapsedMs) * time.Millisecond
	if elapsed > 0 && elapsed < fastFillThreshold {
		score += fastFillPoints
	}
	if elapsed > slowFillThreshold {
		score += slowFillPoints
	}

	if score > constants.SpamScoreCap {
		return constants.SpamScoreCap
	}
	return score
}

// hasRepeatedRun reports whether the text contains a run of length or more
// identical characters.
func hasRepeatedRun(text string, length int) bool {

	var previous rune
	run := 0
	for _, r := range text {
		if r == previous {
			run++
			if run >= length {
				return true
			}
		} else {
			previous = r
			run = 1
		}
	}
	return false
}
