package controllers

import (
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/models"
	"vidtube_server/services"
	"vidtube_server/socket"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type SubscriptionController struct {
	Toggles     *services.ToggleService
	Projections *services.ProjectionService
	Relations   services.RelationStore
	Users       *services.UserService
	Hub         *socket.Hub
}

func NewSubscriptionController(toggles *services.ToggleService, projections *services.ProjectionService, relations services.RelationStore, users *services.UserService, hub *socket.Hub) *SubscriptionController {
	return &SubscriptionController{
		Toggles:     toggles,
		Projections: projections,
		Relations:   relations,
		Users:       users,
		Hub:         hub,
	}
}

// HandleToggleSubscription flips the actor's subscription to a channel.
// Subscribing to yourself is rejected.
func (c *SubscriptionController) HandleToggleSubscription(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]
	actorID := middleware.ActorID(r.Context())

	result, err := c.Toggles.Toggle(r.Context(), actorID, channelID, models.KindSubscribesTo)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	if c.Hub != nil {
		if view, viewErr := c.Projections.ProjectOne(r.Context(), channelID, models.KindSubscribesTo, ""); viewErr == nil {
			c.Hub.BroadcastEngagement(models.TargetKey(models.KindSubscribesTo, channelID), socket.EngagementEvent{
				TargetID: channelID,
				Kind:     string(models.KindSubscribesTo),
				Active:   result.Active,
				Count:    view.Count,
			})
		}
	}

	message := "unsubscribed successfully"
	if result.Active {
		message = "subscribed successfully"
	}
	utils.WriteSuccess(w, http.StatusOK, map[string]bool{"subscribed": result.Active}, message)
}

// HandleChannelSubscribers lists who subscribes to a channel.
func (c *SubscriptionController) HandleChannelSubscribers(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]
	p := parsePagination(r)

	facts, err := c.Relations.ListByTarget(r.Context(), channelID, models.KindSubscribesTo, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ids := make([]string, 0, len(facts))
	for _, fact := range facts {
		ids = append(ids, fact.ActorID)
	}
	summaries, err := c.Users.GetSummaries(r.Context(), ids)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	subscribers := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if summary, ok := summaries[id]; ok {
			subscribers = append(subscribers, summary)
		}
	}
	subscribers = pageOf(subscribers, p)

	view, err := c.Projections.ProjectOne(r.Context(), channelID, models.KindSubscribesTo, "")
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"subscriberCount": view.Count,
		"subscribers":     subscribers,
	}, "subscribers fetched successfully")
}

// HandleSubscribedChannels lists the channels a user subscribes to.
func (c *SubscriptionController) HandleSubscribedChannels(w http.ResponseWriter, r *http.Request) {
	subscriberID := mux.Vars(r)["subscriberId"]
	p := parsePagination(r)

	facts, err := c.Relations.ListByActor(r.Context(), subscriberID, models.KindSubscribesTo, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	ids := make([]string, 0, len(facts))
	for _, fact := range facts {
		ids = append(ids, fact.TargetID)
	}
	summaries, err := c.Users.GetSummaries(r.Context(), ids)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	channels := make([]models.UserSummary, 0, len(ids))
	for _, id := range ids {
		if summary, ok := summaries[id]; ok {
			channels = append(channels, summary)
		}
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]interface{}{
		"subscribedToCount":   len(channels),
		"channelSubscribedTo": pageOf(channels, p),
	}, "subscribed channels fetched successfully")
}
