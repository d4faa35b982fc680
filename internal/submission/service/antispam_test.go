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
	"testing"

	"github.com/stretchr/testify/assert"
	model "github.com/wso2/site-engagement-service/internal/submission/model"
	"github.com/wso2/site-engagement-service/internal/system/constants"
)

const (
	testMinMessageLength = 10
	testMaxMessageLength = 5000
)

func scoreOf(sub model.ContactSubmission, phrases ...string) int {
	return SpamScore(sub, phrases, testMinMessageLength, testMaxMessageLength)
}

// ---------------------------------------------------------------------------
// DenylistHits
// ---------------------------------------------------------------------------

func TestDenylistHits_CaseInsensitiveSubstring(t *testing.T) {
	hits := DenylistHits([]string{"viagra"}, "John", "john@example.com", "Buy VIAGRA today")
	assert.Equal(t, []string{"viagra"}, hits)
}

func TestDenylistHits_MatchesAcrossFields(t *testing.T) {
	hits := DenylistHits([]string{"casino"}, "Casino Royale", "x@example.com", "hello there")
	assert.Len(t, hits, 1)
}

func TestDenylistHits_NoMatch(t *testing.T) {
	hits := DenylistHits([]string{"viagra", "casino"}, "Jane", "jane@example.com", "I would like a quote for my garden project")
	assert.Empty(t, hits)
}

func TestDenylistHits_IgnoresBlankPhrases(t *testing.T) {
	hits := DenylistHits([]string{"", "  "}, "anything at all")
	assert.Empty(t, hits)
}

// ---------------------------------------------------------------------------
// SpamScore
// ---------------------------------------------------------------------------

func TestSpamScore_CleanMessageScoresZero(t *testing.T) {
	sub := model.ContactSubmission{
		Name:      "Jane Smith",
		Email:     "jane@example.com",
		Message:   "Hello, I would like to talk about your landscaping services.",
		ElapsedMs: 60_000,
	}
	assert.Equal(t, 0, scoreOf(sub, "viagra"))
}

func TestSpamScore_DenylistHitAddsAtLeastTwentyPoints(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "please buy viagra from our totally legitimate shop",
		ElapsedMs: 60_000,
	}
	assert.GreaterOrEqual(t, scoreOf(sub, "viagra"), denylistHitPoints)
}

func TestSpamScore_UppercaseShouting(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "LIMITED TIME OFFER CLICK NOW BEFORE IT IS GONE",
		ElapsedMs: 60_000,
	}
	score := scoreOf(sub)
	assert.GreaterOrEqual(t, score, uppercaseRatioPoints)
}

func TestSpamScore_DigitHeavyMessage(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "1234567890 1234567890 call 555",
		ElapsedMs: 60_000,
	}
	assert.GreaterOrEqual(t, scoreOf(sub), digitRatioPoints)
}

func TestSpamScore_RepeatedCharacterRun(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "hello!!!! this is definitely a normal greeting message",
		ElapsedMs: 60_000,
	}
	assert.GreaterOrEqual(t, scoreOf(sub), repeatedRunPoints)
}

func TestSpamScore_FastFill(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "a perfectly ordinary inquiry about your services",
		ElapsedMs: 800,
	}
	assert.GreaterOrEqual(t, scoreOf(sub), fastFillPoints)
}

func TestSpamScore_SlowFill(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "a perfectly ordinary inquiry about your services",
		ElapsedMs: (45 * 60 * 1000),
	}
	assert.GreaterOrEqual(t, scoreOf(sub), slowFillPoints)
}

func TestSpamScore_ShortMessagePenalty(t *testing.T) {
	sub := model.ContactSubmission{
		Message:   "hi",
		ElapsedMs: 60_000,
	}
	assert.GreaterOrEqual(t, scoreOf(sub), messageLengthPoints)
}

func TestSpamScore_CappedAtHundred(t *testing.T) {
	sub := model.ContactSubmission{
		Name:      "viagra cialis casino",
		Email:     "spam@spam.com",
		Message:   "VIAGRA CIALIS CASINO!!!! 111111111 " + strings.Repeat("$$$", 20),
		ElapsedMs: 500,
	}
	score := SpamScore(sub, []string{"viagra", "cialis", "casino"}, testMinMessageLength, testMaxMessageLength)
	assert.Equal(t, constants.SpamScoreCap, score)
}

// ---------------------------------------------------------------------------
// hasRepeatedRun
// ---------------------------------------------------------------------------

func TestHasRepeatedRun(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"empty", "", false},
		{"no run", "hello world", false},
		{"run of three", "aaab", false},
		{"run of four", "aaaab", true},
		{"punctuation run", "wow!!!!", true},
		{"unicode run", "ññññ", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := hasRepeatedRun(tc.text, repeatedRunLength); got != tc.want {
				t.Errorf("hasRepeatedRun(%q) = %v, want %v", tc.text, got, tc.want)
			}
		})
	}
}
