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

package errors

const errorPrefix = "SES-"

var (
	// Server error codes

	FETCH_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15001",
		Message: "Error while fetching consent record.",
	}

	SAVE_CONSENT_RECORD = ErrorMessage{
		Code:    errorPrefix + "15002",
		Message: "Error while saving consent record.",
	}

	ADD_SUBMISSION = ErrorMessage{
		Code:    errorPrefix + "15003",
		Message: "Error while storing contact submission.",
	}

	FETCH_SUBMISSIONS = ErrorMessage{
		Code:    errorPrefix + "15004",
		Message: "Error while fetching contact submissions.",
	}

	RECORD_SUBMISSION_ATTEMPT = ErrorMessage{
		Code:    errorPrefix + "15005",
		Message: "Error while recording submission attempt.",
	}

	FETCH_SUBMISSION_HISTORY = ErrorMessage{
		Code:    errorPrefix + "15006",
		Message: "Error while fetching submission history.",
	}

	FETCH_DENYLIST = ErrorMessage{
		Code:    errorPrefix + "15007",
		Message: "Error while fetching spam denylist.",
	}

	UPDATE_DENYLIST = ErrorMessage{
		Code:    errorPrefix + "15008",
		Message: "Error while updating spam denylist.",
	}

	// Client error codes

	BAD_REQUEST = ErrorMessage{
		Code:    errorPrefix + "11001",
		Message: "Invalid request.",
	}

	UN_AUTHORIZED = ErrorMessage{
		Code:    errorPrefix + "11002",
		Message: "Unauthorized request.",
	}

	FORBIDDEN = ErrorMessage{
		Code:    errorPrefix + "11003",
		Message: "Insufficient permissions.",
	}

	INVALID_CONSENT_CATEGORY = ErrorMessage{
		Code:    errorPrefix + "11004",
		Message: "Invalid consent category.",
	}

	PAGE_VIEW_NOT_FOUND = ErrorMessage{
		Code:    errorPrefix + "11005",
		Message: "Page view not found.",
	}

	SUBMISSION_VALIDATION = ErrorMessage{
		Code:    errorPrefix + "11006",
		Message: "Contact submission failed validation.",
	}

	SUBMISSION_REJECTED = ErrorMessage{
		Code:    errorPrefix + "11007",
		Message: "Your submission could not be processed. Please try again later.",
	}

	SUBMISSION_RATE_LIMITED = ErrorMessage{
		Code:    errorPrefix + "11008",
		Message: "Your submission could not be processed. Please try again later.",
	}

	SUBMISSION_IN_PROGRESS = ErrorMessage{
		Code:    errorPrefix + "11009",
		Message: "A submission is already in progress.",
	}

	NETWORK_FAILURE = ErrorMessage{
		Code:    errorPrefix + "11010",
		Message: "Network error. Please check your internet connection and try again.",
	}

	TIMEOUT_FAILURE = ErrorMessage{
		Code:    errorPrefix + "11011",
		Message: "The request timed out. Please try again.",
	}

	CROSS_ORIGIN_FAILURE = ErrorMessage{
		Code:    errorPrefix + "11012",
		Message: "The submission was blocked by a cross-origin policy. Please try again later.",
	}

	COMPATIBILITY_FAILURE = ErrorMessage{
		Code:    errorPrefix + "11013",
		Message: "Your browser could not complete the submission. Please try a different browser.",
	}

	BACKEND_FAILURE = ErrorMessage{
		Code:    errorPrefix + "11014",
		Message: "Something went wrong while sending your message. Please try again later.",
	}
)
