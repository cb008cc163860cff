package models

type User struct {
	UserID       string `dynamodbav:"userId" json:"userId"` // Partition Key
	Username     string `dynamodbav:"username" json:"username"`
	Email        string `dynamodbav:"email" json:"email"`
	FullName     string `dynamodbav:"fullName" json:"fullName"`
	PasswordHash string `dynamodbav:"passwordHash" json:"-"`
	Avatar       string `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`
	CoverImage   string `dynamodbav:"coverImage,omitempty" json:"coverImage,omitempty"`
	RefreshToken string `dynamodbav:"refreshToken,omitempty" json:"-"`
	CreatedAt    string `dynamodbav:"createdAt" json:"createdAt"`
}

// UserSummary is the slim shape embedded in listings (comment owners,
// subscriber lists). Never includes credentials.
type UserSummary struct {
	UserID   string `dynamodbav:"userId" json:"userId"`
	Username string `dynamodbav:"username" json:"username"`
	FullName string `dynamodbav:"fullName" json:"fullName"`
	Avatar   string `dynamodbav:"avatar,omitempty" json:"avatar,omitempty"`
}

// ChannelProfile is a user viewed as a channel, with subscription aggregates.
type ChannelProfile struct {
	UserSummary
	CoverImage      string `json:"coverImage,omitempty"`
	SubscriberCount int    `json:"subscriberCount"`
	IsSubscribed    bool   `json:"isSubscribed"`
}

const UsersTable = "Users"

// GSIs used for login and registration uniqueness checks.
const UsernameIndex = "username-index"
const EmailIndex = "email-index"
