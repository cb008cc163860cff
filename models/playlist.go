package models

type Playlist struct {
	PlaylistID  string   `dynamodbav:"playlistId" json:"playlistId"` // Partition Key
	OwnerID     string   `dynamodbav:"ownerId" json:"ownerId"`       // Used in ownerId-index GSI
	Name        string   `dynamodbav:"name" json:"name"`
	Description string   `dynamodbav:"description" json:"description"`
	VideoIDs    []string `dynamodbav:"videoIds,omitempty" json:"videoIds"`
	CreatedAt   string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string   `dynamodbav:"updatedAt,omitempty" json:"updatedAt,omitempty"`
}

const PlaylistsTable = "Playlists"
const PlaylistOwnerIndex = "ownerId-index"
