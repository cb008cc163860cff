package routes

import (
	"vidtube_server/controllers"

	"github.com/gorilla/mux"
)

// RegisterS3Routes sets up presigned-URL routes under /api/v1/media
func RegisterS3Routes(r *mux.Router) {
	mediaRouter := r.PathPrefix("/api/v1/media").Subrouter()
	mediaRouter.HandleFunc("/upload-url", controllers.HandleGenerateUploadURL).Methods("POST")
	mediaRouter.HandleFunc("/read-url", controllers.HandleGenerateReadURL).Methods("GET")
}
