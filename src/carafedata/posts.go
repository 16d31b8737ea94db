package carafedata

import (
	"context"
	"sort"
	"time"

	"github.com/carafeforum/carafe/src/config"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/models"
	"github.com/carafeforum/carafe/src/oops"
	"github.com/carafeforum/carafe/src/perms"
)

type PostAndStuff struct {
	Post   models.Post `db:"post"`
	Author models.User `db:"author"`

	// Date of the newest non-deleted comment, if any.
	LatestCommentDate *time.Time `db:"latest_comment_date"`
}

/*
The activity time of a post is the later of its own date and the date of its
newest non-deleted comment. Listings rank posts by this, not by creation
date, so a post bumps back up when somebody comments on it.
*/
func (p *PostAndStuff) RecentDate() time.Time {
	if p.LatestCommentDate != nil && p.LatestCommentDate.After(p.Post.Date) {
		return *p.LatestCommentDate
	}
	return p.Post.Date
}

type PostsQuery struct {
	PostIDs        []int
	IncludeDeleted bool
}

/*
Fetches the posts on a board together with their authors and activity dates,
sorted by descending activity. Deleted posts are filtered out in SQL, before
any window or limit gets applied downstream; a page can never include a
deleted post to fill out its count.
*/
func FetchPosts(ctx context.Context, dbConn db.ConnOrTx, boardID int, q PostsQuery) ([]*PostAndStuff, error) {
	var qb db.QueryBuilder
	qb.Add(`
		SELECT $columns
		FROM
			post
			JOIN board_user AS author ON author.id = post.author_id
			LEFT JOIN LATERAL (
				SELECT MAX(comment.date) AS latest_comment_date
				FROM comment
				WHERE comment.post_id = post.id AND NOT comment.deleted
			) AS latest ON TRUE
		WHERE
			post.board_id = $?
	`, boardID)
	if len(q.PostIDs) > 0 {
		qb.Add(`AND post.id = ANY ($?)`, q.PostIDs)
	}
	if !q.IncludeDeleted {
		qb.Add(`AND NOT post.deleted`)
	}

	posts, err := db.Query[PostAndStuff](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		return nil, oops.New(err, "failed to fetch posts")
	}

	SortByRecentDate(posts)

	return posts, nil
}

// Sorts posts by descending activity time, newest post id first on ties.
// Exported because the ordering rule is board policy, not a rendering
// detail, and tests pin it down directly.
func SortByRecentDate(posts []*PostAndStuff) {
	sort.SliceStable(posts, func(i, j int) bool {
		di, dj := posts[i].RecentDate(), posts[j].RecentDate()
		if di.Equal(dj) {
			return posts[i].Post.ID > posts[j].Post.ID
		}
		return di.After(dj)
	})
}

func FetchPost(ctx context.Context, dbConn db.ConnOrTx, boardID, postID int, q PostsQuery) (*PostAndStuff, error) {
	q.PostIDs = []int{postID}
	posts, err := FetchPosts(ctx, dbConn, boardID, q)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, db.NotFound
	}

	return posts[0], nil
}

/*
Creates a post on a board. Any authenticated user may post; the board must
exist and not be soft-deleted, or the whole operation fails with
db.NotFound.
*/
func CreatePost(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, boardID int, title, body string) (*models.Post, error) {
	if !perms.Can(actor, perms.CreatePost, 0) {
		return nil, ErrForbidden
	}
	if err := validateLength("title", title, config.NameMin, config.NameMax); err != nil {
		return nil, err
	}
	if err := validateLength("body", body, config.TextMin, config.TextMax); err != nil {
		return nil, err
	}
	authorID, _ := actor.UserID()

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	_, err = FetchBoard(ctx, tx, boardID, BoardsQuery{})
	if err != nil {
		return nil, err
	}

	now := time.Now()
	post, err := db.QueryOne[models.Post](ctx, tx,
		`
		INSERT INTO post (board_id, author_id, title, body, date, date_edited, deleted)
		VALUES ($1, $2, $3, $4, $5, $5, FALSE)
		RETURNING $columns
		`,
		boardID, authorID, title, body, now,
	)
	if err != nil {
		return nil, oops.New(err, "failed to insert post")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return nil, oops.New(err, "failed to commit new post")
	}

	return post, nil
}

/*
Edits a post's title and body. Author or admin. Editing a soft-deleted or
missing post fails with db.NotFound regardless of who asks. An edit that
changes nothing is a no-op: no date_edited bump, updated = false.
*/
func EditPost(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, postID int, title, body string) (updated bool, err error) {
	if err := validateLength("title", title, config.NameMin, config.NameMax); err != nil {
		return false, err
	}
	if err := validateLength("body", body, config.TextMin, config.TextMax); err != nil {
		return false, err
	}

	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return false, oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	post, err := fetchPostRow(ctx, tx, postID, true)
	if err != nil {
		return false, err
	}
	if err := checkEditable(post.Deleted); err != nil {
		return false, err
	}
	if !perms.Can(actor, perms.EditPost, post.AuthorID) {
		return false, ErrForbidden
	}

	if !postEditChanges(post, title, body) {
		return false, nil
	}

	_, err = tx.Exec(ctx,
		`UPDATE post SET title = $1, body = $2, date_edited = $3 WHERE id = $4`,
		title, body, time.Now(), postID,
	)
	if err != nil {
		return false, oops.New(err, "failed to update post")
	}

	err = tx.Commit(ctx)
	if err != nil {
		return false, oops.New(err, "failed to commit post edit")
	}

	return true, nil
}

// Hides a post from listings. Author or admin. Idempotent. There is no
// revive for posts; once hidden, only the database can bring one back.
func SoftDeletePost(ctx context.Context, dbConn db.ConnOrTx, actor perms.Actor, postID int) error {
	tx, err := dbConn.Begin(ctx)
	if err != nil {
		return oops.New(err, "failed to start transaction")
	}
	defer tx.Rollback(ctx)

	post, err := fetchPostRow(ctx, tx, postID, true)
	if err != nil {
		return err
	}
	if !perms.Can(actor, perms.SoftDeletePost, post.AuthorID) {
		return ErrForbidden
	}
	if !softDeleteChanges(post.Deleted) {
		return nil
	}

	_, err = tx.Exec(ctx, `UPDATE post SET deleted = TRUE WHERE id = $1`, postID)
	if err != nil {
		return oops.New(err, "failed to soft delete post")
	}

	return tx.Commit(ctx)
}

func fetchPostRow(ctx context.Context, dbConn db.ConnOrTx, postID int, includeDeleted bool) (*models.Post, error) {
	var qb db.QueryBuilder
	qb.Add(`SELECT $columns FROM post WHERE id = $?`, postID)
	if !includeDeleted {
		qb.Add(`AND NOT deleted`)
	}

	post, err := db.QueryOne[models.Post](ctx, dbConn, qb.String(), qb.Args()...)
	if err != nil {
		if err == db.NotFound {
			return nil, db.NotFound
		}
		return nil, oops.New(err, "failed to fetch post")
	}

	return post, nil
}
