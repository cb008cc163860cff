package models

type Video struct {
	VideoID      string  `dynamodbav:"videoId" json:"videoId"` // Partition Key
	OwnerID      string  `dynamodbav:"ownerId" json:"ownerId"` // Used in ownerId-index GSI
	Title        string  `dynamodbav:"title" json:"title"`
	Description  string  `dynamodbav:"description" json:"description"`
	VideoKey     string  `dynamodbav:"videoKey" json:"videoKey"`         // S3 object key
	ThumbnailKey string  `dynamodbav:"thumbnailKey" json:"thumbnailKey"` // S3 object key
	Duration     float64 `dynamodbav:"duration" json:"duration"`
	Views        int     `dynamodbav:"views" json:"views"`
	IsPublished  bool    `dynamodbav:"isPublished" json:"isPublished"`
	CreatedAt    string  `dynamodbav:"createdAt" json:"createdAt"`
}

// VideoWithAggregates is a video row decorated with like aggregates and,
// on detail views, the owner summary and its subscription aggregates.
type VideoWithAggregates struct {
	Video
	LikeCount int             `json:"likeCount"`
	IsLiked   bool            `json:"isLiked"`
	Owner     *ChannelProfile `json:"owner,omitempty"`
}

const VideosTable = "Videos"
const VideoOwnerIndex = "ownerId-index"
