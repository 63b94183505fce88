package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/guildworks/guildhall/internal/perms"
)

// MembershipProvider supplies a user's group memberships from storage
type MembershipProvider interface {
	GroupsFor(ctx context.Context, userID int64) ([]int64, error)
}

// GrantsProvider supplies forum permission rows from storage
type GrantsProvider interface {
	GrantsFor(ctx context.Context, forumID int64) ([]perms.Grant, error)
	ReadableForumIDs(ctx context.Context, groupIDs []int64) ([]int64, error)
}

// PermissionsAPI provides forum permission API methods
type PermissionsAPI struct {
	members  MembershipProvider
	grants   GrantsProvider
	resolver *perms.Resolver
}

// NewPermissionsAPI creates a new permissions API
func NewPermissionsAPI(members MembershipProvider, grants GrantsProvider, resolver *perms.Resolver) *PermissionsAPI {
	return &PermissionsAPI{
		members:  members,
		grants:   grants,
		resolver: resolver,
	}
}

// actorGroups resolves the group set for an optional user_id parameter.
// Absent user_id means an unauthenticated visitor.
func (p *PermissionsAPI) actorGroups(ctx context.Context, pMap map[string]interface{}) ([]int64, bool, error) {
	userIDf, ok := pMap["user_id"].(float64)
	if !ok {
		return p.resolver.GuestGroups(), false, nil
	}
	groups, err := p.members.GroupsFor(ctx, int64(userIDf))
	if err != nil {
		return nil, false, err
	}
	return groups, true, nil
}

// GetPermissions handles forum.get_permissions
func (p *PermissionsAPI) GetPermissions(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var pMap map[string]interface{}
	if err := json.Unmarshal(params, &pMap); err != nil {
		return nil, fmt.Errorf("%w: invalid parameters format", ErrInvalidParams)
	}

	forumIDf, ok := pMap["forum_id"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing required parameter: forum_id", ErrInvalidParams)
	}
	forumID := int64(forumIDf)

	groups, authenticated, err := p.actorGroups(ctx.Request.Context(), pMap)
	if err != nil {
		return nil, err
	}

	grants, err := p.grants.GrantsFor(ctx.Request.Context(), forumID)
	if err != nil {
		return nil, err
	}

	return p.resolver.Resolve(groups, authenticated, grants), nil
}

// ListReadableForums handles forum.list_readable_forums
func (p *PermissionsAPI) ListReadableForums(ctx *gin.Context, params json.RawMessage) (interface{}, error) {
	var pMap map[string]interface{}
	if err := json.Unmarshal(params, &pMap); err != nil {
		return nil, fmt.Errorf("%w: invalid parameters format", ErrInvalidParams)
	}

	groups, authenticated, err := p.actorGroups(ctx.Request.Context(), pMap)
	if err != nil {
		return nil, err
	}
	if !authenticated && len(groups) == 0 {
		// No guest group configured; guests see nothing
		return []int64{}, nil
	}

	ids, err := p.grants.ReadableForumIDs(ctx.Request.Context(), groups)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}
