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

package handler

import (
	"encoding/json"
	"net/http"

	model "github.com/wso2/site-engagement-service/internal/denylist/model"
	"github.com/wso2/site-engagement-service/internal/denylist/provider"
	"github.com/wso2/site-engagement-service/internal/system/constants"
	"github.com/wso2/site-engagement-service/internal/system/errors"
	"github.com/wso2/site-engagement-service/internal/system/security"
	"github.com/wso2/site-engagement-service/internal/system/utils"
)

// DenylistHandler exposes the admin operations on the spam denylist.
type DenylistHandler struct {
	provider provider.DenylistProviderInterface
}

// NewDenylistHandler creates a new handler instance.
func NewDenylistHandler() *DenylistHandler {
	return &DenylistHandler{
		provider: provider.NewDenylistProvider(),
	}
}

// GetDenylist handles GET requests for the active phrase set.
func (dh *DenylistHandler) GetDenylist(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, constants.ScopeDenylistManage); err != nil {
		utils.HandleError(w, err)
		return
	}

	denylist, err := dh.provider.GetDenylistService().GetDenylist()
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, denylist)
}

// UpdateDenylist handles PUT requests replacing the phrase set.
func (dh *DenylistHandler) UpdateDenylist(w http.ResponseWriter, r *http.Request) {

	if err := security.AuthnAndAuthz(r, constants.ScopeDenylistManage); err != nil {
		utils.HandleError(w, err)
		return
	}

	var update model.DenylistUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		clientError := errors.NewClientError(errors.ErrorMessage{
			Code:        errors.BAD_REQUEST.Code,
			Message:     errors.BAD_REQUEST.Message,
			Description: utils.HandleDecodeError(err, "denylist"),
		}, http.StatusBadRequest)
		utils.HandleError(w, clientError)
		return
	}

	denylist, err := dh.provider.GetDenylistService().ReplacePhrases(update)
	if err != nil {
		utils.HandleError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, denylist)
}
