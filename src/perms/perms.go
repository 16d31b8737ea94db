// Package perms decides whether an actor may perform a mutating action on a
// piece of content. It is a pure rule table with no access to the database;
// callers fetch the target first and pass in its author's user id.
package perms

type Action int

const (
	CreateBoard Action = iota + 1
	EditBoard
	SoftDeleteBoard
	ReviveBoard
	EraseBoard

	CreatePost
	EditPost
	SoftDeletePost

	CreateComment
	EditComment
	SoftDeleteComment
	ReviveComment
)

// An Actor is the identity behind a request. There is no global current-user
// state anywhere; every authorization decision receives its actor explicitly.
type Actor struct {
	authenticated bool
	userID        int
	isAdmin       bool
}

func Anonymous() Actor {
	return Actor{}
}

func Authenticated(userID int, isAdmin bool) Actor {
	return Actor{
		authenticated: true,
		userID:        userID,
		isAdmin:       isAdmin,
	}
}

func (a Actor) Authenticated() bool {
	return a.authenticated
}

func (a Actor) UserID() (int, bool) {
	return a.userID, a.authenticated
}

func (a Actor) IsAdmin() bool {
	return a.authenticated && a.isAdmin
}

/*
Can reports whether the actor may perform the action. ownerID is the user id
of the target's author, and is ignored for actions that do not concern an
existing piece of user content (board lifecycle, creation).

The asymmetries in this table are deliberate and load-bearing: admins may
delete anyone's comments but may not edit them, and there is no revive
action for posts at all.
*/
func Can(actor Actor, action Action, ownerID int) bool {
	if !actor.authenticated {
		return false
	}

	switch action {
	case CreateBoard, EditBoard, SoftDeleteBoard, ReviveBoard, EraseBoard:
		return actor.IsAdmin()

	case CreatePost, CreateComment:
		return true

	case EditPost, SoftDeletePost, SoftDeleteComment:
		return actor.userID == ownerID || actor.IsAdmin()

	case EditComment:
		return actor.userID == ownerID

	case ReviveComment:
		return actor.IsAdmin()
	}

	return false
}
