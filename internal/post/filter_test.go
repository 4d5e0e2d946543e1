package post

import (
	"slices"
	"testing"
	"time"
)

func filterTestPost(id int64, day int, status string, tags, categories []string) Post {
	return Post{
		ID:         id,
		Published:  time.Date(2024, 3, day, 9, 0, 0, 0, time.UTC),
		Status:     status,
		Tags:       tags,
		Categories: categories,
	}
}

func ids(posts []Post) []int64 {
	out := make([]int64, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.ID)
	}
	return out
}

func TestFilter_Apply(t *testing.T) {
	posts := []Post{
		filterTestPost(1, 1, StatusPublish, []string{"go"}, []string{"Programming"}),
		filterTestPost(2, 5, StatusPublish, nil, []string{"Travel"}),
		filterTestPost(3, 10, "draft", []string{"go"}, nil),
		filterTestPost(4, 20, StatusPublish, nil, nil),
	}

	tests := []struct {
		name   string
		filter Filter
		want   []int64
	}{
		{name: "zero filter keeps all", filter: Filter{}, want: []int64{1, 2, 3, 4}},
		{
			name:   "since is inclusive",
			filter: Filter{Since: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)},
			want:   []int64{2, 3, 4},
		},
		{
			name:   "until is inclusive",
			filter: Filter{Until: time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)},
			want:   []int64{1, 2, 3},
		},
		{name: "status allow-list", filter: Filter{Statuses: []string{StatusPublish}}, want: []int64{1, 2, 4}},
		{name: "tags match categories too", filter: Filter{Tags: []string{"Travel", "go"}}, want: []int64{1, 2, 3}},
		{
			name:   "criteria combine",
			filter: Filter{Tags: []string{"go"}, Statuses: []string{StatusPublish}},
			want:   []int64{1},
		},
		{name: "no matches", filter: Filter{Tags: []string{"nonexistent"}}, want: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(posts))
			if !slices.Equal(got, tt.want) {
				t.Errorf("Apply() ids = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSortByPublished(t *testing.T) {
	posts := []Post{
		filterTestPost(9, 12, StatusPublish, nil, nil),
		filterTestPost(3, 2, StatusPublish, nil, nil),
		filterTestPost(7, 12, StatusPublish, nil, nil),
		filterTestPost(1, 30, StatusPublish, nil, nil),
	}

	SortByPublished(posts)

	if got, want := ids(posts), []int64{3, 7, 9, 1}; !slices.Equal(got, want) {
		t.Errorf("SortByPublished() ids = %v, want %v", got, want)
	}
}

func TestPost_IsDraft(t *testing.T) {
	if (Post{Status: StatusPublish}).IsDraft() {
		t.Error("published post reported as draft")
	}
	if !(Post{Status: "future"}).IsDraft() {
		t.Error("future post should count as draft")
	}
}
