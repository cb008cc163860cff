package controllers

import (
	"encoding/json"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type CommentController struct {
	CommentService *services.CommentService
}

func NewCommentController(service *services.CommentService) *CommentController {
	return &CommentController{CommentService: service}
}

// HandleListComments returns a page of a video's comments, each with its
// like count and the viewer's like flag.
func (c *CommentController) HandleListComments(w http.ResponseWriter, r *http.Request) {
	videoID := mux.Vars(r)["videoId"]
	viewerID := middleware.ActorID(r.Context())
	p := parsePagination(r)

	comments, err := c.CommentService.ListByVideo(r.Context(), videoID, viewerID, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, pageOf(comments, p), "comments fetched successfully")
}

// HandleAddComment creates a comment on a video.
func (c *CommentController) HandleAddComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	comment, err := c.CommentService.Add(r.Context(), mux.Vars(r)["videoId"], middleware.ActorID(r.Context()), body.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, comment, "comment added successfully")
}

// HandleUpdateComment rewrites a comment. Owner only.
func (c *CommentController) HandleUpdateComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	comment, err := c.CommentService.Update(r.Context(), mux.Vars(r)["commentId"], middleware.ActorID(r.Context()), body.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, comment, "comment updated successfully")
}

// HandleDeleteComment removes a comment. Owner only.
func (c *CommentController) HandleDeleteComment(w http.ResponseWriter, r *http.Request) {
	err := c.CommentService.Delete(r.Context(), mux.Vars(r)["commentId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, nil, "comment deleted successfully")
}
