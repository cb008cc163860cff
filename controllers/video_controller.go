package controllers

import (
	"encoding/json"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type VideoController struct {
	VideoService *services.VideoService
}

func NewVideoController(service *services.VideoService) *VideoController {
	return &VideoController{VideoService: service}
}

// HandlePublish records a new video after its assets were uploaded.
func (c *VideoController) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var input services.PublishVideoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	video, err := c.VideoService.Publish(r.Context(), middleware.ActorID(r.Context()), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, video, "video published successfully")
}

// HandleGetVideo returns the detail view with like and owner aggregates.
func (c *VideoController) HandleGetVideo(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["videoId"]
	viewerID := middleware.ActorID(r.Context())

	video, err := c.VideoService.GetByID(r.Context(), videoID, viewerID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, video, "video fetched successfully")
}

// HandleListVideos returns the public feed, or a channel's videos when a
// userId query param is present. Rows carry batch like aggregates.
func (c *VideoController) HandleListVideos(w http.ResponseWriter, r *http.Request) {
	viewerID := middleware.ActorID(r.Context())
	p := parsePagination(r)

	if ownerID := r.URL.Query().Get("userId"); ownerID != "" {
		rows, err := c.VideoService.ListByOwner(r.Context(), ownerID, viewerID, p.Fetch())
		if err != nil {
			utils.WriteError(w, err)
			return
		}
		utils.WriteSuccess(w, http.StatusOK, pageOf(rows, p), "videos fetched successfully")
		return
	}

	rows, err := c.VideoService.ListFeed(r.Context(), viewerID, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	utils.WriteSuccess(w, http.StatusOK, pageOf(rows, p), "videos fetched successfully")
}

// HandleUpdateVideo patches title/description/thumbnail. Owner only.
func (c *VideoController) HandleUpdateVideo(w http.ResponseWriter, r *http.Request) {
	var input services.UpdateVideoInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	video, err := c.VideoService.Update(r.Context(), mux.Vars(r)["videoId"], middleware.ActorID(r.Context()), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, video, "video updated successfully")
}

// HandleDeleteVideo removes a video and its comments. Owner only.
func (c *VideoController) HandleDeleteVideo(w http.ResponseWriter, r *http.Request) {
	err := c.VideoService.Delete(r.Context(), mux.Vars(r)["videoId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, nil, "video deleted successfully")
}

// HandleTogglePublish flips a video's visibility. Owner only.
func (c *VideoController) HandleTogglePublish(w http.ResponseWriter, r *http.Request) {
	published, err := c.VideoService.TogglePublish(r.Context(), mux.Vars(r)["videoId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]bool{"isPublished": published}, "publish status toggled")
}
