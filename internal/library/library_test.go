package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImagesCatalog(t *testing.T) {
	images := Images()
	require.Len(t, images, 5)
	assert.Equal(t, Image{ID: 1, Name: "公司logo", URL: "/static/images/logo.png", Category: "公司形象"}, images[0])

	seen := map[int]bool{}
	for _, img := range images {
		assert.False(t, seen[img.ID], "duplicate id %d", img.ID)
		seen[img.ID] = true
		assert.NotEmpty(t, img.URL)
	}
}

func TestSearchTemplatesQuery(t *testing.T) {
	results := Search("智慧水务")
	require.Len(t, results, 3)
	assert.Equal(t, "关于智慧水务的行业标准", results[0].Title)
	assert.Equal(t, "行业标准网", results[0].Source)
	for _, r := range results[1:] {
		assert.Contains(t, r.Title, "智慧水务")
		assert.Contains(t, r.Content, "智慧水务")
	}
}
