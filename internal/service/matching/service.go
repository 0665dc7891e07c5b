package matching

import (
	"context"
	"math"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/oggyb/muzz-matching/internal/app"
	svcErr "github.com/oggyb/muzz-matching/internal/errors"
	"github.com/oggyb/muzz-matching/internal/matching"
	pb "github.com/oggyb/muzz-matching/internal/proto/matching"
	"github.com/oggyb/muzz-matching/internal/repository"
	"github.com/oggyb/muzz-matching/internal/utils/pagination"
)

const defaultInterestWorkers = 8

// Service implements the MatchingService gRPC API.
// It parses transport ids, calls into the matching core and maps errors to
// gRPC status codes. No decision logic lives here.
type Service struct {
	appCtx *app.AppContext

	exclusions    *matching.Exclusions
	ranker        *matching.Ranker
	swipes        *matching.SwipeRecorder
	relationships *matching.Relationships

	recentOnly      bool
	allowRecycling  bool
	interestWorkers int

	pb.UnimplementedMatchingServiceServer
}

// NewMatchingService builds the service from AppContext. Dependencies:
//   - DB (through repository.Store) for swipes and relationships
//   - Profiles for the user directory
//   - Policy and the Matching config section for ranking
func NewMatchingService(appCtx *app.AppContext) *Service {
	store := repository.NewStore(appCtx.DB)
	mc := appCtx.Config.Matching
	log := appCtx.Logger

	workers := mc.InterestWorkers
	if workers <= 0 {
		workers = defaultInterestWorkers
	}

	return &Service{
		appCtx:          appCtx,
		exclusions:      matching.NewExclusions(store, mc.RecentWindow),
		ranker:          matching.NewRanker(matching.NewFilter(appCtx.Policy, mc.MinPoolSize, log)),
		swipes:          matching.NewSwipeRecorder(store, log),
		relationships:   matching.NewRelationships(store, log),
		recentOnly:      mc.RecentOnly,
		allowRecycling:  mc.AllowRecycling,
		interestWorkers: workers,
	}
}

// GetRecommendations returns the ranked candidates for a user.
//
// Behavior:
//   - The requester profile must be resolvable; otherwise NotFound or
//     Unavailable.
//   - If the candidate pool cannot be fetched the response is empty
//     (fail closed), never an error.
//   - Profiles without interests get them fetched concurrently; a failed
//     fetch counts as no interests.
//   - exclude adds caller-supplied ids to the stored exclusions.
//   - limit > 0 truncates the ranked list.
//
// Example:
//
//	svc.GetRecommendations(ctx, &pb.GetRecommendationsRequest{UserId: "42", Exclude: "7,9", Limit: 10})
func (s *Service) GetRecommendations(ctx context.Context, req *pb.GetRecommendationsRequest) (*pb.GetRecommendationsResponse, error) {
	log := s.appCtx.Logger
	log.Debug("GetRecommendations called", "user", req.GetUserId(), "exclude", req.GetExclude(), "limit", req.GetLimit())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}
	if req.GetLimit() < 0 {
		return nil, svcErr.InvalidArgument("limit must not be negative")
	}
	extra, err := matching.ParseExcludeList(req.GetExclude())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	requester, err := s.appCtx.Profiles.GetProfile(ctx, userID)
	if err != nil {
		log.Warn("requester profile lookup failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}

	pool, err := s.appCtx.Profiles.ListProfiles(ctx)
	if err != nil {
		log.Warn("candidate pool unavailable, returning no recommendations", "user", userID, "err", err)
		return &pb.GetRecommendationsResponse{Profiles: []*pb.Profile{}, Tier: string(matching.TierNone)}, nil
	}

	profiles := append([]matching.Profile{requester}, pool...)
	s.fillInterests(ctx, profiles)
	requester, pool = profiles[0], profiles[1:]

	excluded, err := s.exclusions.ExcludedIDs(ctx, userID, s.recentOnly)
	if err != nil {
		log.Error("ExcludedIDs failed", "user", userID, "err", err)
		return nil, svcErr.Map(err)
	}
	excluded.Add(extra.IDs()...)

	result := s.ranker.Rank(requester, pool, excluded, s.allowRecycling).Limit(int(req.GetLimit()))

	resp := &pb.GetRecommendationsResponse{
		Profiles:   make([]*pb.Profile, 0, len(result.Candidates)),
		Count:      int32(result.Count),
		IsRecycled: result.IsRecycled,
		Widened:    result.Widened,
		Tier:       string(result.Tier),
	}
	for _, c := range result.Candidates {
		resp.Profiles = append(resp.Profiles, toPBProfile(c))
	}

	log.Debug("GetRecommendations result",
		"user", userID,
		"count", resp.Count,
		"tier", resp.Tier,
		"is_recycled", resp.IsRecycled,
	)
	return resp, nil
}

// fillInterests fetches interests for every profile that came without them,
// at most interestWorkers at a time. Each goroutine writes only its own
// slice element.
func (s *Service) fillInterests(ctx context.Context, profiles []matching.Profile) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.interestWorkers)

	for i := range profiles {
		if profiles[i].Interests != nil {
			continue
		}
		g.Go(func() error {
			interests, err := s.appCtx.Profiles.GetInterests(gctx, profiles[i].ID)
			if err != nil {
				s.appCtx.Logger.Warn("interest lookup failed, scoring with none", "user", profiles[i].ID, "err", err)
				interests = []string{}
			}
			profiles[i].Interests = interests
			return nil
		})
	}
	_ = g.Wait()
}

// GetExcludedIds returns the ids a user must not be recommended: self,
// swiped targets and active partners. recent_only defaults to the server
// setting.
func (s *Service) GetExcludedIds(ctx context.Context, req *pb.GetExcludedIdsRequest) (*pb.GetExcludedIdsResponse, error) {
	s.appCtx.Logger.Debug("GetExcludedIds called", "user", req.GetUserId())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	recentOnly := s.recentOnly
	if req != nil && req.RecentOnly != nil {
		recentOnly = *req.RecentOnly
	}

	set, err := s.exclusions.ExcludedIDs(ctx, userID, recentOnly)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.GetExcludedIdsResponse{UserIds: formatIDs(set.IDs())}, nil
}

// RecordSwipe stores a like or pass and reports whether it formed a match.
//
// Example:
//
//	svc.RecordSwipe(ctx, &pb.RecordSwipeRequest{ActorUserId: "1", TargetUserId: "2", IsLike: true})
func (s *Service) RecordSwipe(ctx context.Context, req *pb.RecordSwipeRequest) (*pb.RecordSwipeResponse, error) {
	s.appCtx.Logger.Debug(
		"RecordSwipe called",
		"actor", req.GetActorUserId(),
		"target", req.GetTargetUserId(),
		"is_like", req.GetIsLike(),
	)
	actorID, err := parseID("actor_user_id", req.GetActorUserId())
	if err != nil {
		return nil, err
	}
	targetID, err := parseID("target_user_id", req.GetTargetUserId())
	if err != nil {
		return nil, err
	}

	var at time.Time
	if ts := req.GetUnixTimestamp(); ts > math.MaxInt64 {
		return nil, svcErr.InvalidArgument("unix_timestamp out of range")
	} else if ts > 0 {
		at = time.UnixMilli(int64(ts))
	}

	outcome, err := s.swipes.Record(ctx, actorID, targetID, req.GetIsLike(), at)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.RecordSwipeResponse{IsMatch: outcome.IsMatch, Created: outcome.Created}
	if outcome.IsMatch {
		resp.Relationship = toPBRelationship(outcome.Relationship)
	}
	return resp, nil
}

// CheckRelationship reports the most recent relationship between two users.
func (s *Service) CheckRelationship(ctx context.Context, req *pb.CheckRelationshipRequest) (*pb.CheckRelationshipResponse, error) {
	s.appCtx.Logger.Debug("CheckRelationship called", "user1", req.GetUser1Id(), "user2", req.GetUser2Id())

	u1, err := parseID("user1_id", req.GetUser1Id())
	if err != nil {
		return nil, err
	}
	u2, err := parseID("user2_id", req.GetUser2Id())
	if err != nil {
		return nil, err
	}

	rel, found, err := s.relationships.Check(ctx, u1, u2)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !found {
		return &pb.CheckRelationshipResponse{Exists: false}, nil
	}
	return &pb.CheckRelationshipResponse{
		Exists:         true,
		RelationshipId: formatID(rel.ID),
		User1Id:        formatID(rel.FirstUserID),
		User2Id:        formatID(rel.SecondUserID),
		State:          string(rel.State),
		CreationDate:   uint64(rel.CreatedAt.UnixMilli()),
	}, nil
}

// GetActiveRelationship returns the user's current match, if any.
// More than one active relationship surfaces as FailedPrecondition.
func (s *Service) GetActiveRelationship(ctx context.Context, req *pb.GetActiveRelationshipRequest) (*pb.GetActiveRelationshipResponse, error) {
	s.appCtx.Logger.Debug("GetActiveRelationship called", "user", req.GetUserId())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}

	rel, found, err := s.relationships.ActiveFor(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	if !found {
		return &pb.GetActiveRelationshipResponse{HasActiveMatch: false}, nil
	}

	partner, _ := rel.Partner(userID)
	return &pb.GetActiveRelationshipResponse{
		HasActiveMatch: true,
		RelationshipId: formatID(rel.ID),
		User1Id:        formatID(rel.FirstUserID),
		User2Id:        formatID(rel.SecondUserID),
		PartnerId:      formatID(partner),
		State:          string(rel.State),
		CreationDate:   uint64(rel.CreatedAt.UnixMilli()),
	}, nil
}

// Dismatch ends a relationship on behalf of one of its participants.
func (s *Service) Dismatch(ctx context.Context, req *pb.DismatchRequest) (*pb.DismatchResponse, error) {
	s.appCtx.Logger.Debug("Dismatch called", "relationship", req.GetRelationshipId(), "requester", req.GetRequesterUserId())

	relID, err := parseID("relationship_id", req.GetRelationshipId())
	if err != nil {
		return nil, err
	}
	requesterID, err := parseID("requester_user_id", req.GetRequesterUserId())
	if err != nil {
		return nil, err
	}

	rel, err := s.relationships.Dismatch(ctx, relID, requesterID)
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.DismatchResponse{Relationship: toPBRelationship(rel)}, nil
}

// GetConnectionHistory lists everyone the user was ever matched with,
// most recent first.
//
// Behavior:
//   - Each partner appears once, positioned by the latest relationship.
//   - page_size > 0 pages the list; next_page_token is set while more remain.
//
// Example:
//
//	svc.GetConnectionHistory(ctx, &pb.GetConnectionHistoryRequest{UserId: "42", PageSize: 20})
func (s *Service) GetConnectionHistory(ctx context.Context, req *pb.GetConnectionHistoryRequest) (*pb.GetConnectionHistoryResponse, error) {
	s.appCtx.Logger.Debug("GetConnectionHistory called", "user", req.GetUserId(), "token", req.GetPageToken())

	userID, err := parseID("user_id", req.GetUserId())
	if err != nil {
		return nil, err
	}
	if req.GetPageSize() < 0 {
		return nil, svcErr.InvalidArgument("page_size must not be negative")
	}
	cursor, err := pagination.Decode(req.GetPageToken())
	if err != nil {
		return nil, svcErr.Map(err)
	}

	conns, err := s.relationships.Connections(ctx, userID)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	page, next := pagination.Page(conns, cursor, int(req.GetPageSize()), func(c matching.Connection) (uint64, time.Time) {
		return c.RelationshipID, c.Since
	})

	resp := &pb.GetConnectionHistoryResponse{UserIds: make([]string, len(page))}
	for i, c := range page {
		resp.UserIds[i] = formatID(c.PartnerID)
	}
	if next != nil {
		token, err := pagination.Encode(*next)
		if err != nil {
			return nil, svcErr.Map(err)
		}
		resp.NextPageToken = token
	}
	return resp, nil
}

func parseID(field, raw string) (uint64, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, svcErr.InvalidArgument(field + " must be a valid uint64")
	}
	return id, nil
}

func formatID(id uint64) string {
	return strconv.FormatUint(id, 10)
}

func formatIDs(ids []uint64) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = formatID(id)
	}
	return out
}

func toPBProfile(c matching.Candidate) *pb.Profile {
	return &pb.Profile{
		Id:                  formatID(c.Profile.ID),
		Username:            c.Profile.Username,
		Age:                 int32(c.Profile.Age),
		Gender:              string(c.Profile.Gender),
		SexualOrientationId: int32(c.Profile.Orientation),
		Interests:           c.Profile.Interests,
		Score:               c.Score,
	}
}

func toPBRelationship(rel matching.Relationship) *pb.Relationship {
	return &pb.Relationship{
		Id:           formatID(rel.ID),
		User1Id:      formatID(rel.FirstUserID),
		User2Id:      formatID(rel.SecondUserID),
		State:        string(rel.State),
		CreationDate: uint64(rel.CreatedAt.UnixMilli()),
	}
}
