package controllers

import (
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"
)

// HandleGenerateUploadURL returns a presigned PUT URL for one media asset.
// Authenticated users only; the client uploads directly to S3 and then
// passes the returned key to the publish/register endpoints.
func HandleGenerateUploadURL(w http.ResponseWriter, r *http.Request) {
	if middleware.ActorID(r.Context()) == "" {
		utils.WriteError(w, utils.ErrUnauthorized)
		return
	}

	assetType := r.URL.Query().Get("assetType")
	fileName := r.URL.Query().Get("fileName")
	fileType := r.URL.Query().Get("fileType")
	if fileName == "" || fileType == "" {
		utils.WriteError(w, utils.BadRequest("fileName and fileType are required"))
		return
	}

	url, key, err := services.GenerateUploadURL(assetType, fileName, fileType)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"uploadUrl": url,
		"key":       key,
	}, "upload URL generated")
}

// HandleGenerateReadURL returns a presigned GET URL for a stored asset.
func HandleGenerateReadURL(w http.ResponseWriter, r *http.Request) {
	key := r.URL.Query().Get("key")
	if key == "" {
		utils.WriteError(w, utils.BadRequest("key is required"))
		return
	}

	url, err := services.GenerateReadURL(key)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{"url": url}, "read URL generated")
}
