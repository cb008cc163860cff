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

type CommentService struct {
	Dynamo      *DynamoService
	Projections *ProjectionService
	Users       *UserService
	Videos      *VideoService
}

// Add creates a comment on an existing video.
func (s *CommentService) Add(ctx context.Context, videoID, ownerID, content string) (*models.Comment, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	exists, err := s.Videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NotFound("video does not exist")
	}

	comment := &models.Comment{
		CommentID: uuid.New().String(),
		VideoID:   videoID,
		OwnerID:   ownerID,
		Content:   content,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.CommentsTable, comment); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return comment, nil
}

// ListByVideo returns a page of comments where every row carries its like
// count, the viewer's like flag and the author summary. The aggregates come
// from one batch projection, the authors from one batch get.
func (s *CommentService) ListByVideo(ctx context.Context, videoID, viewerID string, limit int32) ([]models.CommentWithAggregates, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.CommentsTable, models.CommentVideoIndex,
		"videoId = :video",
		map[string]types.AttributeValue{":video": StringAttr(videoID)},
		nil, limit,
	)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var comments []models.Comment
	if err := attributevalue.UnmarshalListOfMaps(items, &comments); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(comments))
	ownerIDs := make([]string, 0, len(comments))
	for _, c := range comments {
		ids = append(ids, c.CommentID)
		ownerIDs = append(ownerIDs, c.OwnerID)
	}

	views, err := s.Projections.ProjectMany(ctx, ids, models.KindLikesComment, viewerID)
	if err != nil {
		return nil, err
	}
	owners, err := s.Users.GetSummaries(ctx, ownerIDs)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.CommentWithAggregates, 0, len(comments))
	for _, c := range comments {
		view := views[c.CommentID]
		row := models.CommentWithAggregates{
			Comment:   c,
			LikeCount: view.Count,
			IsLiked:   view.ViewerRelationActive,
		}
		if owner, ok := owners[c.OwnerID]; ok {
			row.Owner = &owner
		}
		decorated = append(decorated, row)
	}
	return decorated, nil
}

// Update rewrites a comment's content. Owner only.
func (s *CommentService) Update(ctx context.Context, commentID, ownerID, content string) (*models.Comment, error) {
	if content == "" {
		return nil, utils.BadRequest("content is required")
	}

	comment, err := s.requireOwned(ctx, commentID, ownerID)
	if err != nil {
		return nil, err
	}

	comment.Content = content
	comment.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.Dynamo.PutItem(ctx, models.CommentsTable, comment); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return comment, nil
}

// Delete removes a comment. Owner only.
func (s *CommentService) Delete(ctx context.Context, commentID, ownerID string) error {
	if _, err := s.requireOwned(ctx, commentID, ownerID); err != nil {
		return err
	}
	return utils.MapStorageError(s.Dynamo.DeleteItem(ctx, models.CommentsTable, map[string]types.AttributeValue{
		"commentId": StringAttr(commentID),
	}))
}

// Exists lets the toggle engine validate comment-like targets.
func (s *CommentService) Exists(ctx context.Context, commentID string) (bool, error) {
	comment, err := s.getRecord(ctx, commentID)
	if err != nil {
		return false, err
	}
	return comment != nil, nil
}

func (s *CommentService) getRecord(ctx context.Context, commentID string) (*models.Comment, error) {
	item, err := s.Dynamo.GetItem(ctx, models.CommentsTable, map[string]types.AttributeValue{
		"commentId": StringAttr(commentID),
	})
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var comment models.Comment
	if err := attributevalue.UnmarshalMap(item, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

func (s *CommentService) requireOwned(ctx context.Context, commentID, ownerID string) (*models.Comment, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	comment, err := s.getRecord(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, utils.NotFound("comment does not exist")
	}
	if comment.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return comment, nil
}
