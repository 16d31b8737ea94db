package website

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetWindowInfo(t *testing.T) {
	items := []struct {
		name        string
		windowParam string
		limit       int
		start, end  int
		refused     bool
	}{
		{"no param", "", 25, 0, 25, false},
		{"good", "[5,20]", 25, 5, 20, false},
		{"good, full width", "[0,25]", 25, 0, 25, false},
		{"too wide", "[0,30]", 25, 0, 25, true},
		{"backwards", "[20,5]", 25, 0, 25, false},
		{"pizza", "pizza", 25, 0, 25, false},
		{"negative", "[-1,10]", 25, 0, 25, false},
		{"missing bracket", "[0,10", 25, 0, 25, false},
		{"empty window", "[7,7]", 25, 7, 7, false},
	}

	for _, item := range items {
		t.Run(item.name, func(t *testing.T) {
			start, end, refused := getWindowInfo(item.windowParam, item.limit)
			assert.Equal(t, item.start, start)
			assert.Equal(t, item.end, end)
			assert.Equal(t, item.refused, refused)
		})
	}
}
