package carafedata

import (
	"testing"
	"time"

	"github.com/carafeforum/carafe/src/models"
	"github.com/stretchr/testify/assert"
)

var base = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func listingPost(id int, date time.Time, latestComment *time.Time) *PostAndStuff {
	return &PostAndStuff{
		Post: models.Post{
			ID:   id,
			Date: date,
		},
		LatestCommentDate: latestComment,
	}
}

func TestRecentDate(t *testing.T) {
	t.Run("no comments", func(t *testing.T) {
		p := listingPost(1, base, nil)
		assert.Equal(t, base, p.RecentDate())
	})
	t.Run("newer comment wins", func(t *testing.T) {
		commented := base.Add(2 * time.Hour)
		p := listingPost(1, base, &commented)
		assert.Equal(t, commented, p.RecentDate())
	})
	t.Run("older comment loses", func(t *testing.T) {
		commented := base.Add(-2 * time.Hour)
		p := listingPost(1, base, &commented)
		assert.Equal(t, base, p.RecentDate())
	})
}

func TestSortByRecentDate(t *testing.T) {
	t.Run("commented post bumps above newer posts", func(t *testing.T) {
		bumped := base.Add(3 * time.Hour)
		posts := []*PostAndStuff{
			listingPost(1, base, &bumped),
			listingPost(2, base.Add(1*time.Hour), nil),
			listingPost(3, base.Add(2*time.Hour), nil),
		}
		SortByRecentDate(posts)

		assert.Equal(t, 1, posts[0].Post.ID)
		assert.Equal(t, 3, posts[1].Post.ID)
		assert.Equal(t, 2, posts[2].Post.ID)
	})
	t.Run("ordering is non-increasing in activity time", func(t *testing.T) {
		c1 := base.Add(30 * time.Minute)
		posts := []*PostAndStuff{
			listingPost(1, base, nil),
			listingPost(2, base.Add(time.Hour), nil),
			listingPost(3, base.Add(-time.Hour), &c1),
			listingPost(4, base.Add(2*time.Hour), nil),
		}
		SortByRecentDate(posts)

		for i := 1; i < len(posts); i++ {
			assert.False(t, posts[i].RecentDate().After(posts[i-1].RecentDate()))
		}
	})
	t.Run("ties break by newest post id", func(t *testing.T) {
		posts := []*PostAndStuff{
			listingPost(5, base, nil),
			listingPost(9, base, nil),
			listingPost(7, base, nil),
		}
		SortByRecentDate(posts)

		assert.Equal(t, 9, posts[0].Post.ID)
		assert.Equal(t, 7, posts[1].Post.ID)
		assert.Equal(t, 5, posts[2].Post.ID)
	})
}
