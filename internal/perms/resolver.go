package perms

// Grant is one group's permission row on one forum. One row exists per
// (group, forum) pair; absence of a row means no grant.
type Grant struct {
	GroupID int64
	ForumID int64

	Create   bool
	Read     bool
	Update   bool
	Delete   bool
	Moderate bool
	Reply    bool
	Report   bool
	Pin      bool
	Lock     bool
	Move     bool
}

// PermissionSet is the fully resolved ten-flag permission result. All
// flags are always computed together; there is no partial set.
type PermissionSet struct {
	Create   bool `json:"create"`
	Read     bool `json:"read"`
	Update   bool `json:"update"`
	Delete   bool `json:"delete"`
	Moderate bool `json:"moderate"`
	Reply    bool `json:"reply"`
	Report   bool `json:"report"`
	Pin      bool `json:"pin"`
	Lock     bool `json:"lock"`
	Move     bool `json:"move"`
}

// CanRead reports read access
func (p PermissionSet) CanRead() bool { return p.Read }

// CanWrite reports topic-creation access
func (p PermissionSet) CanWrite() bool { return p.Create }

// CanDelete reports delete access
func (p PermissionSet) CanDelete() bool { return p.Delete }

// Resolve computes the permission set for an actor's groups against a
// forum's grant rows. Membership in multiple groups yields the union of
// their permissions: each flag is true if any matching grant sets it.
// An empty group set or no matching grant resolves to all-false.
func Resolve(actorGroupIDs []int64, grants []Grant) PermissionSet {
	var result PermissionSet
	if len(actorGroupIDs) == 0 {
		return result
	}

	member := make(map[int64]struct{}, len(actorGroupIDs))
	for _, id := range actorGroupIDs {
		member[id] = struct{}{}
	}

	for _, g := range grants {
		if _, ok := member[g.GroupID]; !ok {
			continue
		}
		result.Create = result.Create || g.Create
		result.Read = result.Read || g.Read
		result.Update = result.Update || g.Update
		result.Delete = result.Delete || g.Delete
		result.Moderate = result.Moderate || g.Moderate
		result.Reply = result.Reply || g.Reply
		result.Report = result.Report || g.Report
		result.Pin = result.Pin || g.Pin
		result.Lock = result.Lock || g.Lock
		result.Move = result.Move || g.Move
	}

	return result
}

// Resolver resolves permissions with guest handling. Unauthenticated
// visitors fall back to the configured guest group, or to no groups at
// all when none is configured.
type Resolver struct {
	guestGroupID int64
}

// NewResolver creates a resolver with the given guest group. Zero
// disables the guest fallback.
func NewResolver(guestGroupID int64) *Resolver {
	return &Resolver{guestGroupID: guestGroupID}
}

// GuestGroups returns the group set an unauthenticated visitor carries
func (r *Resolver) GuestGroups() []int64 {
	if r.guestGroupID == 0 {
		return nil
	}
	return []int64{r.guestGroupID}
}

// Resolve computes the permission set, substituting the guest group set
// when the actor has no memberships of their own and is unauthenticated
func (r *Resolver) Resolve(actorGroupIDs []int64, authenticated bool, grants []Grant) PermissionSet {
	if !authenticated && len(actorGroupIDs) == 0 {
		actorGroupIDs = r.GuestGroups()
	}
	return Resolve(actorGroupIDs, grants)
}
