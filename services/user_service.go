package services

import (
	"context"
	"log"
	"net/http"
	"time"

	"vidtube_server/models"
	"vidtube_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

type UserService struct {
	Dynamo      *DynamoService
	Tokens      *TokenService
	Projections *ProjectionService
}

type RegisterInput struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FullName   string `json:"fullName"`
	Password   string `json:"password"`
	Avatar     string `json:"avatar,omitempty"`
	CoverImage string `json:"coverImage,omitempty"`
}

type LoginInput struct {
	Username string `json:"username,omitempty"`
	Email    string `json:"email,omitempty"`
	Password string `json:"password"`
}

// Register creates a user after checking username and email are unused.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" || input.FullName == "" || input.Password == "" {
		return nil, utils.BadRequest("all fields are required")
	}

	if existing, err := s.findByIndex(ctx, models.UsernameIndex, "username", input.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.NewApiError(http.StatusConflict, "username already taken")
	}
	if existing, err := s.findByIndex(ctx, models.EmailIndex, "email", input.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, utils.NewApiError(http.StatusConflict, "email already registered")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:       uuid.New().String(),
		Username:     input.Username,
		Email:        input.Email,
		FullName:     input.FullName,
		PasswordHash: hash,
		Avatar:       input.Avatar,
		CoverImage:   input.CoverImage,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	if err := s.Dynamo.PutItem(ctx, models.UsersTable, user); err != nil {
		return nil, utils.MapStorageError(err)
	}

	log.Printf("user registered: %s", user.Username)
	return user, nil
}

// Login verifies credentials and returns the user with a fresh token pair.
// The refresh token is persisted on the user record so it can be rotated.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*models.User, string, string, error) {
	var user *models.User
	var err error
	switch {
	case input.Email != "":
		user, err = s.findByIndex(ctx, models.EmailIndex, "email", input.Email)
	case input.Username != "":
		user, err = s.findByIndex(ctx, models.UsernameIndex, "username", input.Username)
	default:
		return nil, "", "", utils.BadRequest("username or email is required")
	}
	if err != nil {
		return nil, "", "", err
	}
	if user == nil {
		return nil, "", "", utils.NotFound("user does not exist")
	}

	if err := ComparePassword(user.PasswordHash, input.Password); err != nil {
		return nil, "", "", utils.NewApiError(http.StatusUnauthorized, "invalid user credentials")
	}

	accessToken, refreshToken, err := s.Tokens.GenerateTokens(user)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.storeRefreshToken(ctx, user.UserID, refreshToken); err != nil {
		return nil, "", "", err
	}
	user.RefreshToken = refreshToken

	return user, accessToken, refreshToken, nil
}

// Logout clears the stored refresh token so the pair can no longer be rotated.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	if userID == "" {
		return utils.ErrUnauthorized
	}
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable,
		"REMOVE refreshToken",
		map[string]types.AttributeValue{"userId": StringAttr(userID)},
		nil, nil,
	)
	return utils.MapStorageError(err)
}

// RefreshTokens rotates the token pair. The incoming token must both verify
// and match the one stored on the user, so a leaked old token is useless
// after the first rotation.
func (s *UserService) RefreshTokens(ctx context.Context, refreshToken string) (string, string, error) {
	userID, err := s.Tokens.ValidateRefreshToken(refreshToken)
	if err != nil {
		return "", "", err
	}

	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user == nil || user.RefreshToken != refreshToken {
		return "", "", utils.NewApiError(http.StatusUnauthorized, "refresh token is expired or used")
	}

	accessToken, newRefreshToken, err := s.Tokens.GenerateTokens(user)
	if err != nil {
		return "", "", err
	}
	if err := s.storeRefreshToken(ctx, user.UserID, newRefreshToken); err != nil {
		return "", "", err
	}
	return accessToken, newRefreshToken, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*models.User, error) {
	item, err := s.Dynamo.GetItem(ctx, models.UsersTable, map[string]types.AttributeValue{
		"userId": StringAttr(userID),
	})
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if item == nil {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(item, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists lets the toggle engine validate channel targets.
func (s *UserService) Exists(ctx context.Context, userID string) (bool, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

// GetChannelProfile returns a user as a channel page: summary fields plus
// subscriber count and whether the viewer subscribes.
func (s *UserService) GetChannelProfile(ctx context.Context, username, viewerID string) (*models.ChannelProfile, error) {
	user, err := s.findByIndex(ctx, models.UsernameIndex, "username", username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("channel does not exist")
	}
	return s.channelProfileFor(ctx, user, viewerID)
}

// ChannelProfileByID is the same projection keyed by user ID, used when a
// video detail page decorates its owner.
func (s *UserService) ChannelProfileByID(ctx context.Context, userID, viewerID string) (*models.ChannelProfile, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, utils.NotFound("channel does not exist")
	}
	return s.channelProfileFor(ctx, user, viewerID)
}

func (s *UserService) channelProfileFor(ctx context.Context, user *models.User, viewerID string) (*models.ChannelProfile, error) {
	view, err := s.Projections.ProjectOne(ctx, user.UserID, models.KindSubscribesTo, viewerID)
	if err != nil {
		return nil, err
	}

	return &models.ChannelProfile{
		UserSummary: models.UserSummary{
			UserID:   user.UserID,
			Username: user.Username,
			FullName: user.FullName,
			Avatar:   user.Avatar,
		},
		CoverImage:      user.CoverImage,
		SubscriberCount: view.Count,
		IsSubscribed:    view.ViewerRelationActive,
	}, nil
}

// GetSummaries batch-loads slim user records for listing rows.
func (s *UserService) GetSummaries(ctx context.Context, userIDs []string) (map[string]models.UserSummary, error) {
	summaries := make(map[string]models.UserSummary, len(userIDs))
	if len(userIDs) == 0 {
		return summaries, nil
	}

	seen := make(map[string]struct{}, len(userIDs))
	keys := make([]map[string]types.AttributeValue, 0, len(userIDs))
	for _, id := range userIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		keys = append(keys, map[string]types.AttributeValue{"userId": StringAttr(id)})
	}

	items, err := s.Dynamo.BatchGetItems(ctx, models.UsersTable, keys)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}

	for _, item := range items {
		var summary models.UserSummary
		if err := attributevalue.UnmarshalMap(item, &summary); err != nil {
			return nil, err
		}
		summaries[summary.UserID] = summary
	}
	return summaries, nil
}

func (s *UserService) storeRefreshToken(ctx context.Context, userID, refreshToken string) error {
	_, err := s.Dynamo.UpdateItem(ctx, models.UsersTable,
		"SET refreshToken = :token",
		map[string]types.AttributeValue{"userId": StringAttr(userID)},
		map[string]types.AttributeValue{":token": StringAttr(refreshToken)},
		nil,
	)
	return utils.MapStorageError(err)
}

func (s *UserService) findByIndex(ctx context.Context, indexName, field, value string) (*models.User, error) {
	keyCondition := "#f = :v"
	items, err := s.Dynamo.QueryItemsWithIndex(ctx, models.UsersTable, indexName, keyCondition,
		map[string]types.AttributeValue{":v": StringAttr(value)},
		map[string]string{"#f": field},
		1,
	)
	if err != nil {
		return nil, utils.MapStorageError(err)
	}
	if len(items) == 0 {
		return nil, nil
	}

	var user models.User
	if err := attributevalue.UnmarshalMap(items[0], &user); err != nil {
		return nil, err
	}
	return &user, nil
}
