package models

type Tweet struct {
	TweetID   string `dynamodbav:"tweetId" json:"tweetId"` // Partition Key
	OwnerID   string `dynamodbav:"ownerId" json:"ownerId"` // Used in ownerId-index GSI
	Content   string `dynamodbav:"content" json:"content"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

type TweetWithAggregates struct {
	Tweet
	LikeCount int  `json:"likeCount"`
	IsLiked   bool `json:"isLiked"`
}

const TweetsTable = "Tweets"
const TweetOwnerIndex = "ownerId-index"
