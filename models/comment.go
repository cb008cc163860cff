package models

type Comment struct {
	CommentID string `dynamodbav:"commentId" json:"commentId"` // Partition Key
	VideoID   string `dynamodbav:"videoId" json:"videoId"`     // Used in videoId-index GSI
	OwnerID   string `dynamodbav:"ownerId" json:"ownerId"`
	Content   string `dynamodbav:"content" json:"content"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

// CommentWithAggregates carries the like aggregates every listing row needs.
type CommentWithAggregates struct {
	Comment
	LikeCount int          `json:"likeCount"`
	IsLiked   bool         `json:"isLiked"`
	Owner     *UserSummary `json:"owner,omitempty"`
}

const CommentsTable = "Comments"
const CommentVideoIndex = "videoId-index"
