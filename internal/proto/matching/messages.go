package matching

// Ids travel as decimal strings and timestamps as unix milliseconds.
// Getters are nil-safe so handlers can read fields of a nil request.

type Profile struct {
	Id                  string   `json:"id"`
	Username            string   `json:"username"`
	Age                 int32    `json:"age"`
	Gender              string   `json:"gender,omitempty"`
	SexualOrientationId int32    `json:"sexual_orientation_id"`
	Interests           []string `json:"interests"`
	Score               float64  `json:"score"`
}

type Relationship struct {
	Id           string `json:"relationship_id"`
	User1Id      string `json:"user1_id"`
	User2Id      string `json:"user2_id"`
	State        string `json:"state"`
	CreationDate uint64 `json:"creation_date"`
}

type GetRecommendationsRequest struct {
	UserId string `json:"user_id"`
	// Exclude is a comma-separated list of extra ids to treat as seen.
	Exclude string `json:"exclude,omitempty"`
	// Limit caps the number of profiles returned; 0 means no cap.
	Limit int32 `json:"limit,omitempty"`
}

func (r *GetRecommendationsRequest) GetUserId() string {
	if r == nil {
		return ""
	}
	return r.UserId
}

func (r *GetRecommendationsRequest) GetExclude() string {
	if r == nil {
		return ""
	}
	return r.Exclude
}

func (r *GetRecommendationsRequest) GetLimit() int32 {
	if r == nil {
		return 0
	}
	return r.Limit
}

type GetRecommendationsResponse struct {
	Profiles   []*Profile `json:"profiles"`
	Count      int32      `json:"count"`
	IsRecycled bool       `json:"is_recycled"`
	Widened    bool       `json:"widened,omitempty"`
	Tier       string     `json:"tier,omitempty"`
}

type GetExcludedIdsRequest struct {
	UserId string `json:"user_id"`
	// RecentOnly overrides the server default when set.
	RecentOnly *bool `json:"recent_only,omitempty"`
}

func (r *GetExcludedIdsRequest) GetUserId() string {
	if r == nil {
		return ""
	}
	return r.UserId
}

type GetExcludedIdsResponse struct {
	UserIds []string `json:"user_ids"`
}

type RecordSwipeRequest struct {
	ActorUserId  string `json:"actor_user_id"`
	TargetUserId string `json:"target_user_id"`
	IsLike       bool   `json:"is_like"`
	// UnixTimestamp is optional; 0 means now.
	UnixTimestamp uint64 `json:"unix_timestamp,omitempty"`
}

func (r *RecordSwipeRequest) GetActorUserId() string {
	if r == nil {
		return ""
	}
	return r.ActorUserId
}

func (r *RecordSwipeRequest) GetTargetUserId() string {
	if r == nil {
		return ""
	}
	return r.TargetUserId
}

func (r *RecordSwipeRequest) GetIsLike() bool {
	return r != nil && r.IsLike
}

func (r *RecordSwipeRequest) GetUnixTimestamp() uint64 {
	if r == nil {
		return 0
	}
	return r.UnixTimestamp
}

type RecordSwipeResponse struct {
	IsMatch bool `json:"is_match"`
	// Created is true only when this swipe opened the relationship.
	Created      bool          `json:"created,omitempty"`
	Relationship *Relationship `json:"relationship,omitempty"`
}

type CheckRelationshipRequest struct {
	User1Id string `json:"user1_id"`
	User2Id string `json:"user2_id"`
}

func (r *CheckRelationshipRequest) GetUser1Id() string {
	if r == nil {
		return ""
	}
	return r.User1Id
}

func (r *CheckRelationshipRequest) GetUser2Id() string {
	if r == nil {
		return ""
	}
	return r.User2Id
}

type CheckRelationshipResponse struct {
	Exists         bool   `json:"exists"`
	RelationshipId string `json:"relationship_id,omitempty"`
	User1Id        string `json:"user1_id,omitempty"`
	User2Id        string `json:"user2_id,omitempty"`
	State          string `json:"state,omitempty"`
	CreationDate   uint64 `json:"creation_date,omitempty"`
}

type GetActiveRelationshipRequest struct {
	UserId string `json:"user_id"`
}

func (r *GetActiveRelationshipRequest) GetUserId() string {
	if r == nil {
		return ""
	}
	return r.UserId
}

type GetActiveRelationshipResponse struct {
	HasActiveMatch bool   `json:"has_active_match"`
	RelationshipId string `json:"relationship_id,omitempty"`
	User1Id        string `json:"user1_id,omitempty"`
	User2Id        string `json:"user2_id,omitempty"`
	PartnerId      string `json:"partner_id,omitempty"`
	State          string `json:"state,omitempty"`
	CreationDate   uint64 `json:"creation_date,omitempty"`
}

type DismatchRequest struct {
	RelationshipId  string `json:"relationship_id"`
	RequesterUserId string `json:"requester_user_id"`
}

func (r *DismatchRequest) GetRelationshipId() string {
	if r == nil {
		return ""
	}
	return r.RelationshipId
}

func (r *DismatchRequest) GetRequesterUserId() string {
	if r == nil {
		return ""
	}
	return r.RequesterUserId
}

type DismatchResponse struct {
	Relationship *Relationship `json:"relationship"`
}

type GetConnectionHistoryRequest struct {
	UserId string `json:"user_id"`
	// PageSize 0 returns the whole history in one page.
	PageSize  int32  `json:"page_size,omitempty"`
	PageToken string `json:"page_token,omitempty"`
}

func (r *GetConnectionHistoryRequest) GetUserId() string {
	if r == nil {
		return ""
	}
	return r.UserId
}

func (r *GetConnectionHistoryRequest) GetPageSize() int32 {
	if r == nil {
		return 0
	}
	return r.PageSize
}

func (r *GetConnectionHistoryRequest) GetPageToken() string {
	if r == nil {
		return ""
	}
	return r.PageToken
}

type GetConnectionHistoryResponse struct {
	UserIds       []string `json:"user_ids"`
	NextPageToken string   `json:"next_page_token,omitempty"`
}
