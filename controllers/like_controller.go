package controllers

import (
	"context"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/models"
	"vidtube_server/services"
	"vidtube_server/socket"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type LikeController struct {
	Toggles     *services.ToggleService
	Projections *services.ProjectionService
	Relations   services.RelationStore
	Videos      *services.VideoService
	Hub         *socket.Hub
}

func NewLikeController(toggles *services.ToggleService, projections *services.ProjectionService, relations services.RelationStore, videos *services.VideoService, hub *socket.Hub) *LikeController {
	return &LikeController{
		Toggles:     toggles,
		Projections: projections,
		Relations:   relations,
		Videos:      videos,
		Hub:         hub,
	}
}

// HandleToggleVideoLike flips the actor's like on a video.
func (c *LikeController) HandleToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, mux.Vars(r)["videoId"], models.KindLikesVideo)
}

// HandleToggleCommentLike flips the actor's like on a comment.
func (c *LikeController) HandleToggleCommentLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, mux.Vars(r)["commentId"], models.KindLikesComment)
}

// HandleToggleTweetLike flips the actor's like on a tweet.
func (c *LikeController) HandleToggleTweetLike(w http.ResponseWriter, r *http.Request) {
	c.toggle(w, r, mux.Vars(r)["tweetId"], models.KindLikesTweet)
}

func (c *LikeController) toggle(w http.ResponseWriter, r *http.Request, targetID string, kind models.RelationKind) {
	actorID := middleware.ActorID(r.Context())

	result, err := c.Toggles.Toggle(r.Context(), actorID, targetID, kind)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	c.broadcast(r.Context(), targetID, kind, result.Active)

	message := "like removed"
	if result.Active {
		message = "like added"
	}
	utils.WriteSuccess(w, http.StatusOK, result, message)
}

// broadcast pushes the fresh count to clients watching this target. Failures
// here never affect the HTTP response.
func (c *LikeController) broadcast(ctx context.Context, targetID string, kind models.RelationKind, active bool) {
	if c.Hub == nil {
		return
	}
	view, err := c.Projections.ProjectOne(ctx, targetID, kind, "")
	if err != nil {
		return
	}
	c.Hub.BroadcastEngagement(models.TargetKey(kind, targetID), socket.EngagementEvent{
		TargetID: targetID,
		Kind:     string(kind),
		Active:   active,
		Count:    view.Count,
	})
}

// HandleLikedVideos lists the videos the actor has liked, newest facts first
// as returned by the store, with like aggregates attached.
func (c *LikeController) HandleLikedVideos(w http.ResponseWriter, r *http.Request) {
	actorID := middleware.ActorID(r.Context())
	if actorID == "" {
		utils.WriteError(w, utils.ErrUnauthorized)
		return
	}
	p := parsePagination(r)

	facts, err := c.Relations.ListByActor(r.Context(), actorID, models.KindLikesVideo, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ids := make([]string, 0, len(facts))
	for _, fact := range facts {
		ids = append(ids, fact.TargetID)
	}

	videos, err := c.Videos.GetByIDs(r.Context(), ids)
	if err != nil {
		utils.WriteError(w, err)
		return
	}
	decorated, err := c.Videos.Decorate(r.Context(), videos, actorID)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, pageOf(decorated, p), "liked videos fetched successfully")
}
