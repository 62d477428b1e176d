// Package authz decides whether an identity may perform an action.
package authz

import (
	"inkwell/internal/models"
)

// Action names an operation subject to an authorization decision.
type Action string

const (
	ActionCreatePost    Action = "create_post"
	ActionEditPost      Action = "edit_post"
	ActionDeletePost    Action = "delete_post"
	ActionCreateComment Action = "create_comment"
	ActionDeleteComment Action = "delete_comment"
	ActionViewPost      Action = "view_post"
	ActionListPosts     Action = "list_posts"
	ActionViewProfile   Action = "view_profile"
)

// Owned is any target entity with an owning user.
type Owned interface {
	OwnerID() uint
}

// ErrAuthRequired and ErrForbidden are the two failure outcomes of a
// policy decision. Handlers map them to 401 and 403 respectively.
var (
	ErrAuthRequired = models.NewAuthRequiredError("Authentication required")
	ErrForbidden    = models.NewForbiddenError("You do not own this resource")
)

// Policy evaluates authorization rules.
//
// RequireOwnership enables the owner-or-admin check on edit and delete.
// Disabling it reproduces the legacy behavior where any authenticated
// user could mutate any post or comment; that mode exists for
// compatibility and is covered by tests, not recommended for use.
type Policy struct {
	RequireOwnership bool
}

// NewPolicy returns a Policy with ownership checks switched per the flag.
func NewPolicy(requireOwnership bool) Policy {
	return Policy{RequireOwnership: requireOwnership}
}

// Can reports whether actor may perform action on target.
// Returns nil when allowed, ErrAuthRequired when the actor is anonymous
// and the action is restricted, ErrForbidden when the actor is
// authenticated but not permitted. target may be nil for actions that
// have no specific object (create, list).
func (p Policy) Can(action Action, actor *models.User, target Owned) error {
	switch action {
	case ActionViewPost, ActionListPosts, ActionViewProfile:
		return nil
	}

	if actor == nil {
		return ErrAuthRequired
	}

	switch action {
	case ActionCreatePost, ActionCreateComment:
		return nil
	case ActionEditPost, ActionDeletePost, ActionDeleteComment:
		if !p.RequireOwnership {
			return nil
		}
		if target == nil {
			return nil
		}
		if target.OwnerID() == actor.ID || actor.IsAdmin {
			return nil
		}
		return ErrForbidden
	}

	// Unknown actions are denied rather than silently allowed.
	return ErrForbidden
}
