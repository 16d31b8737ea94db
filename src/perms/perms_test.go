package perms

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	anon      = Anonymous()
	owner     = Authenticated(5, false)
	stranger  = Authenticated(6, false)
	someAdmin = Authenticated(7, true)
)

func TestAnonymousCanDoNothing(t *testing.T) {
	actions := []Action{
		CreateBoard, EditBoard, SoftDeleteBoard, ReviveBoard, EraseBoard,
		CreatePost, EditPost, SoftDeletePost,
		CreateComment, EditComment, SoftDeleteComment, ReviveComment,
	}
	for _, action := range actions {
		assert.False(t, Can(anon, action, 5))
	}
}

func TestBoardLifecycleIsAdminOnly(t *testing.T) {
	actions := []Action{CreateBoard, EditBoard, SoftDeleteBoard, ReviveBoard, EraseBoard}
	for _, action := range actions {
		assert.True(t, Can(someAdmin, action, 0))
		assert.False(t, Can(owner, action, 0))
		assert.False(t, Can(stranger, action, 0))
	}
}

func TestAnyUserCanCreateContent(t *testing.T) {
	assert.True(t, Can(owner, CreatePost, 0))
	assert.True(t, Can(stranger, CreateComment, 0))
	assert.True(t, Can(someAdmin, CreatePost, 0))
}

func TestPostEditAndDelete(t *testing.T) {
	assert.True(t, Can(owner, EditPost, 5))
	assert.False(t, Can(stranger, EditPost, 5))
	assert.True(t, Can(someAdmin, EditPost, 5))

	assert.True(t, Can(owner, SoftDeletePost, 5))
	assert.False(t, Can(stranger, SoftDeletePost, 5))
	assert.True(t, Can(someAdmin, SoftDeletePost, 5))
}

// Comment editing is author-only. Admins can remove a comment but they
// cannot put words in someone's mouth.
func TestCommentEditExcludesAdmins(t *testing.T) {
	assert.True(t, Can(owner, EditComment, 5))
	assert.False(t, Can(stranger, EditComment, 5))
	assert.False(t, Can(someAdmin, EditComment, 5))

	assert.True(t, Can(owner, SoftDeleteComment, 5))
	assert.False(t, Can(stranger, SoftDeleteComment, 5))
	assert.True(t, Can(someAdmin, SoftDeleteComment, 5))
}

func TestCommentReviveIsAdminOnly(t *testing.T) {
	assert.False(t, Can(owner, ReviveComment, 5))
	assert.False(t, Can(stranger, ReviveComment, 5))
	assert.True(t, Can(someAdmin, ReviveComment, 5))
}
