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

type PlaylistService struct {
	Dynamo *DynamoService
	Videos *VideoService
}

type PlaylistInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlaylistDetail is a playlist hydrated with its video records.
type PlaylistDetail struct {
	models.Playlist
	Videos []models.Video `json:"videos"`
}

// Create makes an empty playlist for the actor.
func (s *PlaylistService) Create(ctx context.Context, ownerID string, input PlaylistInput) (*models.Playlist, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	if input.Name == "" {
		return nil, utils.BadRequest("name is required")
	}

	playlist := &models.Playlist{
		PlaylistID:  uuid.New().String(),
		OwnerID:     ownerID,
		Name:        input.Name,
		Description: input.Description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
	}
	if err := s.Dynamo.PutItem(ctx, models.PlaylistsTable, playlist); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return playlist, nil
}

// GetByID returns a playlist with its videos hydrated in one batch get.
func (s *PlaylistService) GetByID(ctx context.Context, playlistID string) (*PlaylistDetail, error) {
	playlist, err := s.getRecord(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, utils.NotFound("playlist does not exist")
	}

	videos, err := s.Videos.GetByIDs(ctx, playlist.VideoIDs)
	if err != nil {
		return nil, err
	}
	if videos == nil {
		videos = []models.Video{}
	}
	return &PlaylistDetail{Playlist: *playlist, Videos: videos}, nil
}

// ListByOwner returns a user's playlists.
func (s *PlaylistService) ListByOwner(ctx context.Context, ownerID string, limit int32) ([]models.Playlist, error) {
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.PlaylistsTable, models.PlaylistOwnerIndex,
		"ownerId = :owner",
		map[string]types.AttributeValue{":owner": StringAttr(ownerID)},
		nil, limit,
	)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	var playlists []models.Playlist
	if err := attributevalue.UnmarshalListOfMaps(items, &playlists); err != nil {
		return nil, err
	}
	return playlists, nil
}

// AddVideo appends a video to the playlist. Owner only; the video must exist
// and duplicates are ignored.
func (s *PlaylistService) AddVideo(ctx context.Context, playlistID, videoID, ownerID string) (*models.Playlist, error) {
	playlist, err := s.requireOwned(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	exists, err := s.Videos.Exists(ctx, videoID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, utils.NotFound("video does not exist")
	}

	for _, id := range playlist.VideoIDs {
		if id == videoID {
			return playlist, nil
		}
	}

	playlist.VideoIDs = append(playlist.VideoIDs, videoID)
	playlist.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if err := s.Dynamo.PutItem(ctx, models.PlaylistsTable, playlist); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return playlist, nil
}

// RemoveVideo drops a video from the playlist. Owner only; removing a video
// that is not in the list is not an error.
func (s *PlaylistService) RemoveVideo(ctx context.Context, playlistID, videoID, ownerID string) (*models.Playlist, error) {
	playlist, err := s.requireOwned(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	kept := playlist.VideoIDs[:0]
	for _, id := range playlist.VideoIDs {
		if id != videoID {
			kept = append(kept, id)
		}
	}
	playlist.VideoIDs = kept
	playlist.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.Dynamo.PutItem(ctx, models.PlaylistsTable, playlist); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return playlist, nil
}

// Update renames a playlist or changes its description. Owner only.
func (s *PlaylistService) Update(ctx context.Context, playlistID, ownerID string, input PlaylistInput) (*models.Playlist, error) {
	playlist, err := s.requireOwned(ctx, playlistID, ownerID)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		playlist.Name = input.Name
	}
	if input.Description != "" {
		playlist.Description = input.Description
	}
	playlist.UpdatedAt = time.Now().UTC().Format(time.RFC3339)

	if err := s.Dynamo.PutItem(ctx, models.PlaylistsTable, playlist); err != nil {
		return nil, utils.MapStorageError(err)
	}
	return playlist, nil
}

// Delete removes a playlist. Owner only.
func (s *PlaylistService) Delete(ctx context.Context, playlistID, ownerID string) error {
	if _, err := s.requireOwned(ctx, playlistID, ownerID); err != nil {
		return err
	}
	return utils.MapStorageError(s.Dynamo.DeleteItem(ctx, models.PlaylistsTable, map[string]types.AttributeValue{
		"playlistId": StringAttr(playlistID),
	}))
}

func (s *PlaylistService) getRecord(ctx context.Context, playlistID string) (*models.Playlist, error) {
	item, err := s.Dynamo.GetItem(ctx, models.PlaylistsTable, map[string]types.AttributeValue{
		"playlistId": StringAttr(playlistID),
	})
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var playlist models.Playlist
	if err := attributevalue.UnmarshalMap(item, &playlist); err != nil {
		return nil, err
	}
	return &playlist, nil
}

func (s *PlaylistService) requireOwned(ctx context.Context, playlistID, ownerID string) (*models.Playlist, error) {
	if ownerID == "" {
		return nil, utils.ErrUnauthorized
	}
	playlist, err := s.getRecord(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if playlist == nil {
		return nil, utils.NotFound("playlist does not exist")
	}
	if playlist.OwnerID != ownerID {
		return nil, utils.ErrForbidden
	}
	return playlist, nil
}
