package models

// RelationKind names one directed edge type between an actor and a target.
type RelationKind string

const (
	KindLikesVideo   RelationKind = "LIKES_VIDEO"
	KindLikesComment RelationKind = "LIKES_COMMENT"
	KindLikesTweet   RelationKind = "LIKES_TWEET"
	KindSubscribesTo RelationKind = "SUBSCRIBES_TO"
)

// Valid reports whether k is one of the known relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case KindLikesVideo, KindLikesComment, KindLikesTweet, KindSubscribesTo:
		return true
	}
	return false
}

// TargetKey builds the partition key for a (kind, target) pair, e.g.
// "LIKES_VIDEO#abc123". The sort key is the actor ID, so the full triple
// is unique by construction.
func TargetKey(kind RelationKind, targetID string) string {
	return string(kind) + "#" + targetID
}

// RelationFact is one stored edge: actor → target of a given kind.
// Presence of the item means the relation holds; there is no status field.
type RelationFact struct {
	TargetKey string `dynamodbav:"targetKey" json:"-"`        // Partition Key: kind#targetId
	ActorID   string `dynamodbav:"actorId" json:"actorId"`    // Sort Key, also in actorId-index GSI
	Kind      string `dynamodbav:"kind" json:"kind"`
	TargetID  string `dynamodbav:"targetId" json:"targetId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
}

// RelationCount is the per-target counter item, adjusted atomically whenever
// an insert or delete actually changes state.
type RelationCount struct {
	TargetKey     string `dynamodbav:"targetKey" json:"-"`
	RelationCount int    `dynamodbav:"relationCount" json:"relationCount"`
}

// ToggleResult reports the relation state after a toggle.
type ToggleResult struct {
	Active bool `json:"active"`
}

// AggregateView is the request-scoped projection over relation facts.
// It is recomputed on every read and never persisted.
type AggregateView struct {
	Count                int  `json:"count"`
	ViewerRelationActive bool `json:"viewerRelationActive"`
}

const RelationFactsTable = "RelationFacts"
const RelationCountsTable = "RelationCounts"

// GSI on RelationFacts used for "everything this actor has liked/followed".
const ActorIDIndex = "actorId-index"
