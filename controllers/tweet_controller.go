package controllers

import (
	"encoding/json"
	"net/http"

	"vidtube_server/middleware"
	"vidtube_server/services"
	"vidtube_server/utils"

	"github.com/gorilla/mux"
)

type TweetController struct {
	TweetService *services.TweetService
}

func NewTweetController(service *services.TweetService) *TweetController {
	return &TweetController{TweetService: service}
}

// HandleCreateTweet stores a new tweet for the actor.
func (c *TweetController) HandleCreateTweet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	tweet, err := c.TweetService.Create(r.Context(), middleware.ActorID(r.Context()), body.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusCreated, tweet, "tweet created successfully")
}

// HandleListUserTweets returns a user's tweets with like aggregates.
func (c *TweetController) HandleListUserTweets(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userId"]
	viewerID := middleware.ActorID(r.Context())
	p := parsePagination(r)

	tweets, err := c.TweetService.ListByUser(r.Context(), userID, viewerID, p.Fetch())
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, pageOf(tweets, p), "tweets fetched successfully")
}

// HandleUpdateTweet rewrites a tweet. Owner only.
func (c *TweetController) HandleUpdateTweet(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteError(w, utils.BadRequest("invalid request body"))
		return
	}

	tweet, err := c.TweetService.Update(r.Context(), mux.Vars(r)["tweetId"], middleware.ActorID(r.Context()), body.Content)
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, tweet, "tweet updated successfully")
}

// HandleDeleteTweet removes a tweet. Owner only.
func (c *TweetController) HandleDeleteTweet(w http.ResponseWriter, r *http.Request) {
	err := c.TweetService.Delete(r.Context(), mux.Vars(r)["tweetId"], middleware.ActorID(r.Context()))
	if err != nil {
		utils.WriteError(w, err)
		return
	}

	utils.WriteSuccess(w, http.StatusOK, nil, "tweet deleted successfully")
}
