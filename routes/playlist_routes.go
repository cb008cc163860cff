package routes

import (
	"vidtube_server/controllers"
	"vidtube_server/services"

	"github.com/gorilla/mux"
)

// RegisterPlaylistRoutes sets up routes for playlist operations under /api/v1/playlists
func RegisterPlaylistRoutes(r *mux.Router, playlistService *services.PlaylistService) {
	controller := controllers.NewPlaylistController(playlistService)

	playlistRouter := r.PathPrefix("/api/v1/playlists").Subrouter()
	playlistRouter.HandleFunc("", controller.HandleCreatePlaylist).Methods("POST")
	playlistRouter.HandleFunc("/user/{userId}", controller.HandleListUserPlaylists).Methods("GET")
	playlistRouter.HandleFunc("/add/{videoId}/{playlistId}", controller.HandleAddVideo).Methods("PATCH")
	playlistRouter.HandleFunc("/remove/{videoId}/{playlistId}", controller.HandleRemoveVideo).Methods("PATCH")
	playlistRouter.HandleFunc("/{playlistId}", controller.HandleGetPlaylist).Methods("GET")
	playlistRouter.HandleFunc("/{playlistId}", controller.HandleUpdatePlaylist).Methods("PATCH")
	playlistRouter.HandleFunc("/{playlistId}", controller.HandleDeletePlaylist).Methods("DELETE")
}
