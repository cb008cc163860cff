package controllers

import (
	"encoding/json"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type PlaylistController struct {
	PlaylistService *services.PlaylistService
}

func NewPlaylistController(service *services.PlaylistService) *PlaylistController {
	return &PlaylistController{PlaylistService: service}
}

// HandleCreatePlaylist makes an empty playlist for the actor.
func (c *PlaylistController) HandleCreatePlaylist(w http.ResponseWriter, r *http.Request) {
	var input services.PlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	playlist, err := c.PlaylistService.Create(r.Context(), middleware.ActorID(r.Context()), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, playlist, "playlist created successfully")
}

// HandleGetPlaylist returns a playlist with its videos hydrated.
func (c *PlaylistController) HandleGetPlaylist(w http.ResponseWriter, r *http.Request) {
	playlist, err := c.PlaylistService.GetByID(r.Context(), mux.Vars(r)["playlistId"])
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, playlist, "playlist fetched successfully")
}

// HandleListUserPlaylists returns a user's playlists.
func (c *PlaylistController) HandleListUserPlaylists(w http.ResponseWriter, r *http.Request) {
	p := parsePagination(r)

	playlists, err := c.PlaylistService.ListByOwner(r.Context(), mux.Vars(r)["userId"], p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, pageOf(playlists, p), "playlists fetched successfully")
}

// HandleAddVideo appends a video to a playlist. Owner only.
func (c *PlaylistController) HandleAddVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlist, err := c.PlaylistService.AddVideo(r.Context(), vars["playlistId"], vars["videoId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, playlist, "video added to playlist")
}

// HandleRemoveVideo drops a video from a playlist. Owner only.
func (c *PlaylistController) HandleRemoveVideo(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	playlist, err := c.PlaylistService.RemoveVideo(r.Context(), vars["playlistId"], vars["videoId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, playlist, "video removed from playlist")
}

// HandleUpdatePlaylist renames a playlist or changes its description. Owner only.
func (c *PlaylistController) HandleUpdatePlaylist(w http.ResponseWriter, r *http.Request) {
	var input services.PlaylistInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	playlist, err := c.PlaylistService.Update(r.Context(), mux.Vars(r)["playlistId"], middleware.ActorID(r.Context()), input)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, playlist, "playlist updated successfully")
}

// HandleDeletePlaylist removes a playlist. Owner only.
func (c *PlaylistController) HandleDeletePlaylist(w http.ResponseWriter, r *http.Request) {
	err := c.PlaylistService.Delete(r.Context(), mux.Vars(r)["playlistId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, nil, "playlist deleted successfully")
}
