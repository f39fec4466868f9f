package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/balkashynov/clockr/internal/models"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search activities across all fields",
	Long: `Search activities with ranked matching:
- Exact match (highest priority)
- Prefix match
- Suffix match
- Contains match (lowest priority)

Search is case insensitive and looks at name, description and category.`,
	Args: cobra.MinimumNArgs(1),
	Run: withApp(func(cmd *cobra.Command, args []string, a *app) {
		query := strings.Join(args, " ")

		sessions, err := a.svc.ListSessions(commandContext(cmd))
		if err != nil {
			printError(err)
			return
		}

		matches := searchSessions(sessions, query)
		if len(matches) == 0 {
			fmt.Printf("No activities match %q.\n", query)
			return
		}
		fmt.Printf("Found %d activities matching %q\n\n", len(matches), query)
		renderSessionTable(matches)
	}),
}

const (
	rankExact = iota
	rankPrefix
	rankSuffix
	rankContains
	rankNone
)

// matchRank scores one field against a lowercased query
func matchRank(field, query string) int {
	field = strings.ToLower(field)
	switch {
	case field == "":
		return rankNone
	case field == query:
		return rankExact
	case strings.HasPrefix(field, query):
		return rankPrefix
	case strings.HasSuffix(field, query):
		return rankSuffix
	case strings.Contains(field, query):
		return rankContains
	}
	return rankNone
}

// searchSessions returns matching sessions ordered by best rank; ties keep
// list order
func searchSessions(sessions []models.Session, query string) []models.Session {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	type ranked struct {
		session models.Session
		rank    int
	}
	var found []ranked
	for _, s := range sessions {
		best := min(
			matchRank(s.Name, query),
			matchRank(s.DescriptionText(), query),
			matchRank(s.CategoryText(), query),
		)
		if best != rankNone {
			found = append(found, ranked{session: s, rank: best})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].rank < found[j].rank
	})

	out := make([]models.Session, len(found))
	for i, r := range found {
		out[i] = r.session
	}
	return out
}
