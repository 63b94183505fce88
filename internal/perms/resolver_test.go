package perms

import (
	"reflect"
	"testing"
)

func allFalse() PermissionSet {
	return PermissionSet{}
}

func TestResolveFailClosed(t *testing.T) {
	grants := []Grant{
		{GroupID: 1, ForumID: 10, Read: true, Create: true},
	}

	tests := []struct {
		name   string
		groups []int64
		grants []Grant
	}{
		{name: "no groups", groups: nil, grants: grants},
		{name: "empty groups", groups: []int64{}, grants: grants},
		{name: "no grants", groups: []int64{1, 2}, grants: nil},
		{name: "no matching grants", groups: []int64{7}, grants: grants},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.groups, tt.grants)
			if got != allFalse() {
				t.Errorf("Resolve() = %+v, want all-false", got)
			}
		})
	}
}

func TestResolveUnionAcrossGroups(t *testing.T) {
	grants := []Grant{
		{GroupID: 1, ForumID: 10, Read: true},
		{GroupID: 2, ForumID: 10, Pin: true},
	}

	got := Resolve([]int64{1, 2}, grants)
	want := PermissionSet{Read: true, Pin: true}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestResolveIgnoresForeignGroups(t *testing.T) {
	grants := []Grant{
		{GroupID: 5, ForumID: 10, Pin: true, Read: true},
		{GroupID: 9, ForumID: 10, Moderate: true},
	}

	got := Resolve([]int64{5}, grants)
	want := PermissionSet{Pin: true, Read: true}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
	if got.Moderate {
		t.Error("grant from non-member group leaked into result")
	}
}

func TestResolveAllFlags(t *testing.T) {
	grants := []Grant{
		{GroupID: 1, ForumID: 10, Create: true, Read: true, Update: true, Delete: true, Moderate: true},
		{GroupID: 2, ForumID: 10, Reply: true, Report: true, Pin: true, Lock: true, Move: true},
	}

	got := Resolve([]int64{1, 2}, grants)
	want := PermissionSet{
		Create: true, Read: true, Update: true, Delete: true, Moderate: true,
		Reply: true, Report: true, Pin: true, Lock: true, Move: true,
	}
	if got != want {
		t.Errorf("Resolve() = %+v, want all flags set", got)
	}
}

func TestPermissionSetHelpers(t *testing.T) {
	p := PermissionSet{Create: true, Read: true}

	if !p.CanRead() {
		t.Error("CanRead() = false, want true")
	}
	if !p.CanWrite() {
		t.Error("CanWrite() = false, want true")
	}
	if p.CanDelete() {
		t.Error("CanDelete() = true, want false")
	}
}

func TestResolverGuestFallback(t *testing.T) {
	grants := []Grant{
		{GroupID: 3, ForumID: 10, Read: true},
	}

	tests := []struct {
		name          string
		guestGroupID  int64
		groups        []int64
		authenticated bool
		want          PermissionSet
	}{
		{
			name:         "guest with default group",
			guestGroupID: 3,
			want:         PermissionSet{Read: true},
		},
		{
			name:         "guest without default group",
			guestGroupID: 0,
			want:         PermissionSet{},
		},
		{
			name:          "authenticated user with no memberships gets no fallback",
			guestGroupID:  3,
			authenticated: true,
			want:          PermissionSet{},
		},
		{
			name:          "authenticated member",
			guestGroupID:  3,
			groups:        []int64{3},
			authenticated: true,
			want:          PermissionSet{Read: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(tt.guestGroupID)
			got := r.Resolve(tt.groups, tt.authenticated, grants)
			if got != tt.want {
				t.Errorf("Resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestGuestGroups(t *testing.T) {
	if got := NewResolver(0).GuestGroups(); got != nil {
		t.Errorf("GuestGroups() with no guest group = %v, want nil", got)
	}
	if got := NewResolver(4).GuestGroups(); !reflect.DeepEqual(got, []int64{4}) {
		t.Errorf("GuestGroups() = %v, want [4]", got)
	}
}
