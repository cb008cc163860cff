package services

import (
	"context"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type TweetService struct {
	Dynamo      *DynamoService
	Projections *ProjectionService
}

// Create stores a new tweet for the actor.
func (s *TweetService) Create(ctx context.Context, ownerID, content string) (*models.Tweet, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	tweet := &models.Tweet{
		TweetID:   uuid.New().String(),
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.TweetsTable, tweet); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return tweet, nil
}

// ListByUser returns a user's tweets with like aggregates for the viewer.
func (s *TweetService) ListByUser(ctx context.Context, userID, viewerID string, limit int32) ([]models.TweetWithAggregates, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.TweetsTable, models.TweetOwnerIndex,
		"ownerId = :owner",
		map[string]types.AttributeValue{":owner": StringAttr(userID)},
		nil, limit,
	)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var tweets []models.Tweet
	if err := attributevalue.UnmarshalListOfMaps(items, &tweets); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(tweets))
	for _, t := range tweets {
		ids = append(ids, t.TweetID)
	}
	views, err := s.Projections.ProjectMany(ctx, ids, models.KindLikesTweet, viewerID)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.TweetWithAggregates, 0, len(tweets))
	for _, t := range tweets {
		view := views[t.TweetID]
		decorated = append(decorated, models.TweetWithAggregates{
			Tweet:     t,
			LikeCount: view.Count,
			IsLiked:   view.ViewerRelationActive,
		})
	}
	return decorated, nil
}

// Update rewrites a tweet's content. Owner only.
func (s *TweetService) Update(ctx context.Context, tweetID, ownerID, content string) (*models.Tweet, error) {
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	tweet, err := s.requireOwned(ctx, tweetID, ownerID)
	if err != nil {
		return nil, err
	}

	tweet.Content = content
	tweet.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.Dynamo.PutItem(ctx, models.TweetsTable, tweet); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return tweet, nil
}

// Delete removes a tweet. Owner only.
func (s *TweetService) Delete(ctx context.Context, tweetID, ownerID string) error {
	if _, err := s.requireOwned(ctx, tweetID, ownerID); err != nil {
		return err
	}
	return utils.MapStorageError(s.Dynamo.DeleteItem(ctx, models.TweetsTable, map[string]types.AttributeValue{
		"tweetId": StringAttr(tweetID),
	}))
}

// Exists lets the toggle engine validate tweet-like targets.
func (s *TweetService) Exists(ctx context.Context, tweetID string) (bool, error) {
	tweet, err := s.getRecord(ctx, tweetID)
	if err != nil {
		return false, err
	}
	return tweet != nil, nil
}

func (s *TweetService) getRecord(ctx context.Context, tweetID string) (*models.Tweet, error) {
	item, err := s.Dynamo.GetItem(ctx, models.TweetsTable, map[string]types.AttributeValue{
		"tweetId": StringAttr(tweetID),
	})
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var tweet models.Tweet
	if err := attributevalue.UnmarshalMap(item, &tweet); err != nil {
		return nil, err
	}
	return &tweet, nil
}

func (s *TweetService) requireOwned(ctx context.Context, tweetID, ownerID string) (*models.Tweet, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	tweet, err := s.getRecord(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if tweet == nil {
		return nil, utils.NotFound("tweet does not exist")
	}
	if tweet.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return tweet, nil
}
