package arxiv

import (
	"testing"

	"PaperNotify/internal/models"
)

func TestSelectBest(t *testing.T) {
	ai := models.Paper{SourceID: "1", Tag: "cs.AI"}
	lg := models.Paper{SourceID: "2", Tag: "cs.LG"}
	cl := models.Paper{SourceID: "3", Tag: "cs.CL"}

	cases := []struct {
		name     string
		papers   map[string][]models.Paper
		priority []string
		want     string // SourceID, "" は nil 期待
	}{
		{
			name:     "first priority tag wins",
			papers:   map[string][]models.Paper{"cs.AI": {ai}, "cs.LG": {lg}},
			priority: []string{"cs.AI", "cs.LG"},
			want:     "1",
		},
		{
			name:     "empty first tag falls through to second",
			papers:   map[string][]models.Paper{"cs.AI": {}, "cs.LG": {lg}},
			priority: []string{"cs.AI", "cs.LG"},
			want:     "2",
		},
		{
			name:     "missing tag key falls through",
			papers:   map[string][]models.Paper{"cs.CL": {cl}},
			priority: []string{"cs.AI", "cs.CL"},
			want:     "3",
		},
		{
			name:     "tag not in priority is unreachable",
			papers:   map[string][]models.Paper{"cs.CL": {cl}},
			priority: []string{"cs.AI", "cs.LG"},
			want:     "",
		},
		{
			name:     "all empty returns nil",
			papers:   map[string][]models.Paper{"cs.AI": {}, "cs.LG": nil},
			priority: []string{"cs.AI", "cs.LG"},
			want:     "",
		},
		{
			name:     "empty priority returns nil",
			papers:   map[string][]models.Paper{"cs.AI": {ai}},
			priority: nil,
			want:     "",
		},
		{
			name:     "first element within a tag wins",
			papers:   map[string][]models.Paper{"cs.AI": {ai, lg}},
			priority: []string{"cs.AI"},
			want:     "1",
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := SelectBest(c.papers, c.priority)
			if c.want == "" {
				if got != nil {
					t.Fatalf("expected nil, got %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("expected paper %s, got nil", c.want)
			}
			if got.SourceID != c.want {
				t.Errorf("expected paper %s, got %s", c.want, got.SourceID)
			}
		})
	}
}
