package services

import (
	"context"
	"log"
	"sort"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type VideoService struct {
	Dynamo      *DynamoService
	Projections *ProjectionService
	Users       *UserService
}

type PublishVideoInput struct {
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	VideoKey     string  `json:"videoKey"`
	ThumbnailKey string  `json:"thumbnailKey"`
	Duration     float64 `json:"duration"`
}

type UpdateVideoInput struct {
	Title        string `json:"title,omitempty"`
	Description  string `json:"description,omitempty"`
	ThumbnailKey string `json:"thumbnailKey,omitempty"`
}

// Publish records a new video. The media itself is already in S3 by the time
// this runs; the client uploaded through a presigned URL.
func (s *VideoService) Publish(ctx context.Context, ownerID string, input PublishVideoInput) (*models.Video, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	if input.Title == "" {
		return nil, utils.BadRequest("title is required")
	}
	if input.VideoKey == "" || input.ThumbnailKey == "" {
		return nil, utils.BadRequest("video and thumbnail are required")
	}

	video := &models.Video{
		VideoID:      uuid.New().String(),
		OwnerID:      ownerID,
		Title:        input.Title,
		Description:  input.Description,
		VideoKey:     input.VideoKey,
		ThumbnailKey: input.ThumbnailKey,
		Duration:     input.Duration,
		IsPublished:  true,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.VideosTable, video); err != nil {
		return nil, utils.MapStorageError(err)
	}

	log.Printf("video published: %s by %s", video.VideoID, ownerID)
	return video, nil
}

// GetByID returns a video detail view: the record, its like aggregate for
// the viewer and the owner's channel profile with subscription aggregates.
// Each view bumps the view counter. Unpublished videos are owner-only.
func (s *VideoService) GetByID(ctx context.Context, videoID, viewerID string) (*models.VideoWithAggregates, error) {
	video, err := s.getRecord(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil || (!video.IsPublished && video.OwnerID != viewerID) {
		return nil, utils.NotFound("video does not exist")
	}

	if _, err := s.Dynamo.UpdateItem(ctx, models.VideosTable,
		"ADD #v :one",
		map[string]types.AttributeValue{"videoId": StringAttr(videoID)},
		map[string]types.AttributeValue{":one": &types.AttributeValueMemberN{Value: "1"}},
		map[string]string{"#v": "views"},
	); err != nil {
		return nil, utils.MapStorageError(err)
	}
	video.Views++

	likeView, err := s.Projections.ProjectOne(ctx, videoID, models.KindLikesVideo, viewerID)
	if err != nil {
		return nil, err
	}
	owner, err := s.Users.ChannelProfileByID(ctx, video.OwnerID, viewerID)
	if err != nil {
		return nil, err
	}

	return &models.VideoWithAggregates{
		Video:     *video,
		LikeCount: likeView.Count,
		IsLiked:   likeView.ViewerRelationActive,
		Owner:     owner,
	}, nil
}

// ListFeed returns the newest published videos with like aggregates.
func (s *VideoService) ListFeed(ctx context.Context, viewerID string, limit int32) ([]models.VideoWithAggregates, error) {
	items, err := s.Dynamo.ScanItems(ctx, models.VideosTable, 0)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var videos []models.Video
	if err := attributevalue.UnmarshalListOfMaps(items, &videos); err != nil {
		return nil, err
	}

	published := videos[:0]
	for _, v := range videos {
		if v.IsPublished {
			published = append(published, v)
		}
	}
	sort.Slice(published, func(i, j int) bool {
		return published[i].CreatedAt > published[j].CreatedAt
	})
	if limit > 0 && int32(len(published)) > limit {
		published = published[:limit]
	}

	return s.Decorate(ctx, published, viewerID)
}

// ListByOwner returns a channel's videos. Viewers other than the owner see
// published videos only.
func (s *VideoService) ListByOwner(ctx context.Context, ownerID, viewerID string, limit int32) ([]models.VideoWithAggregates, error) {
	keyCondition := "ownerId = :owner"
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.VideosTable, models.VideoOwnerIndex, keyCondition,
		map[string]types.AttributeValue{":owner": StringAttr(ownerID)},
		nil, limit,
	)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var videos []models.Video
	if err := attributevalue.UnmarshalListOfMaps(items, &videos); err != nil {
		return nil, err
	}

	visible := videos[:0]
	for _, v := range videos {
		if v.IsPublished || v.OwnerID == viewerID {
			visible = append(visible, v)
		}
	}

	return s.Decorate(ctx, visible, viewerID)
}

// GetByIDs batch-loads video records, used for liked-video and playlist pages.
func (s *VideoService) GetByIDs(ctx context.Context, videoIDs []string) ([]models.Video, error) {
	if len(videoIDs) == 0 {
		return nil, nil
	}

	keys := make([]map[string]types.AttributeValue, 0, len(videoIDs))
	for _, id := range videoIDs {
		keys = append(keys, map[string]types.AttributeValue{"videoId": StringAttr(id)})
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.VideosTable, keys)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var videos []models.Video
	if err := attributevalue.UnmarshalListOfMaps(items, &videos); err != nil {
		return nil, err
	}
	return videos, nil
}

// Update patches title/description/thumbnail. Owner only.
func (s *VideoService) Update(ctx context.Context, videoID, ownerID string, input UpdateVideoInput) (*models.Video, error) {
	video, err := s.requireOwned(ctx, videoID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Title != "" {
		video.Title = input.Title
	}
	if input.Description != "" {
		video.Description = input.Description
	}
	if input.ThumbnailKey != "" {
		video.ThumbnailKey = input.ThumbnailKey
	}

	if err := s.Dynamo.PutItem(ctx, models.VideosTable, video); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return video, nil
}

// Delete removes a video and its comments. Owner only.
func (s *VideoService) Delete(ctx context.Context, videoID, ownerID string) error {
	if _, err := s.requireOwned(ctx, videoID, ownerID); err != nil {
		return err
	}

	if err := s.Dynamo.DeleteItem(ctx, models.VideosTable, map[string]types.AttributeValue{
		"videoId": StringAttr(videoID),
	}); err != nil {
		return utils.MapStorageError(err)
	}

	return s.deleteComments(ctx, videoID)
}

// TogglePublish flips visibility. Owner only.
func (s *VideoService) TogglePublish(ctx context.Context, videoID, ownerID string) (bool, error) {
	video, err := s.requireOwned(ctx, videoID, ownerID)
	if err != nil {
		return false, err
	}

	video.IsPublished = !video.IsPublished
	if err := s.Dynamo.PutItem(ctx, models.VideosTable, video); err != nil {
		return false, utils.MapStorageError(err)
	}
	return video.IsPublished, nil
}

// Exists lets the toggle engine validate like targets.
func (s *VideoService) Exists(ctx context.Context, videoID string) (bool, error) {
	video, err := s.getRecord(ctx, videoID)
	if err != nil {
		return false, err
	}
	return video != nil, nil
}

// Decorate attaches like aggregates to a page of videos in one batch
// projection, never one query pair per row.
func (s *VideoService) Decorate(ctx context.Context, videos []models.Video, viewerID string) ([]models.VideoWithAggregates, error) {
	ids := make([]string, 0, len(videos))
	for _, v := range videos {
		ids = append(ids, v.VideoID)
	}

	views, err := s.Projections.ProjectMany(ctx, ids, models.KindLikesVideo, viewerID)
	if err != nil {
		return nil, err
	}

	decorated := make([]models.VideoWithAggregates, 0, len(videos))
	for _, v := range videos {
		view := views[v.VideoID]
		decorated = append(decorated, models.VideoWithAggregates{
			Video:     v,
			LikeCount: view.Count,
			IsLiked:   view.ViewerRelationActive,
		})
	}
	return decorated, nil
}

func (s *VideoService) getRecord(ctx context.Context, videoID string) (*models.Video, error) {
	item, err := s.Dynamo.GetItem(ctx, models.VideosTable, map[string]types.AttributeValue{
		"videoId": StringAttr(videoID),
	})
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var video models.Video
	if err := attributevalue.UnmarshalMap(item, &video); err != nil {
		return nil, err
	}
	return &video, nil
}

func (s *VideoService) requireOwned(ctx context.Context, videoID, ownerID string) (*models.Video, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	video, err := s.getRecord(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if video == nil {
		return nil, utils.NotFound("video does not exist")
	}
	if video.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return video, nil
}

func (s *VideoService) deleteComments(ctx context.Context, videoID string) error {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.CommentsTable, models.CommentVideoIndex,
		"videoId = :video",
		map[string]types.AttributeValue{":video": StringAttr(videoID)},
		nil, 0,
	)
	if err != nil {
		return utils.MapStorageError(err)
	}
	if len(items) == 0 {
		return nil
	}

	requests := make([]types.WriteRequest, 0, len(items))
	for _, item := range items {
		requests = append(requests, types.WriteRequest{
			DeleteRequest: &types.DeleteRequest{
				Key: map[string]types.AttributeValue{
					"commentId": StringAttr(utils.ExtractString(item, "commentId")),
				},
			},
		})
	}
	return utils.MapStorageError(s.Dynamo.BatchWriteItems(ctx, models.CommentsTable, requests))
}
