// ABOUTME: CLI command definitions mapping operator actions onto the curation core
// ABOUTME: Each command wires the app, runs one workflow and prints plain results

package main

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/jbpiacentino/lumen-digest/core/domain"
	"github.com/jbpiacentino/lumen-digest/pkg/config"
)

// withApp builds the dependency graph for one command invocation and
// tears it down afterwards.
func withApp(cfg *config.Config, run func(c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		a, err := buildApp(cfg)
		if err != nil {
			return err
		}
		defer a.close()
		return run(c, a)
	}
}

func articlesCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "articles",
		Usage: "browse and search the classified article feed",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "category", Value: domain.CategoryAll, Usage: "taxonomy node id, 'all' or 'other'"},
			&cli.IntFlag{Name: "days", Value: domain.DefaultTimeWindowDays, Usage: "look-back window in days, 0 for all"},
			&cli.StringFlag{Name: "source", Usage: "source facet"},
			&cli.StringFlag{Name: "lang", Usage: "language facet"},
			&cli.StringFlag{Name: "query", Usage: "free-text search over title, summary and source"},
			&cli.IntFlag{Name: "page", Value: 1},
			&cli.IntFlag{Name: "page-size", Value: domain.DefaultPageSize},
			&cli.BoolFlag{Name: "list", Usage: "flat list view sorted over the full result set"},
			&cli.StringFlag{Name: "sort", Value: "date", Usage: "sort key: date, title, source, category"},
			&cli.BoolFlag{Name: "asc", Usage: "sort ascending"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			if err := a.controller.LoadTaxonomy(c.Context, a.cfg.UILang); err != nil {
				return err
			}

			f := domain.DefaultFilterState()
			f.ActiveCategory = c.String("category")
			f.TimeWindowDays = c.Int("days")
			f.Source = c.String("source")
			f.Language = c.String("lang")
			f.SearchQuery = c.String("query")
			f.Page = c.Int("page")
			f.PageSize = c.Int("page-size")
			f.SortKey = domain.SortKey(c.String("sort"))
			f.SortAsc = c.Bool("asc")
			if c.Bool("list") {
				f.ViewMode = domain.ViewList
			}
			a.controller.RestoreFilter(f)

			if err := a.controller.Refresh(c.Context); err != nil {
				return err
			}

			labels := a.controller.Labels()
			for _, art := range a.controller.DisplayArticles() {
				label := labels[art.EffectiveCategory()]
				if label == "" {
					label = art.EffectiveCategory()
				}
				marker := " "
				switch art.ReviewStatus {
				case domain.ReviewCorrect:
					marker = "+"
				case domain.ReviewIncorrect:
					marker = "-"
				}
				fmt.Printf("%s %6d  %-20s  %s\n", marker, art.ID, label, art.Title)
			}
			fmt.Printf("page %d/%d, %d matching\n",
				a.controller.Filter().Page, a.controller.TotalPages(), a.controller.DisplayTotal())
			return nil
		}),
	}
}

func countsCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "counts",
		Usage: "show the taxonomy tree with roll-up article counts",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "days", Value: domain.DefaultTimeWindowDays, Usage: "look-back window in days, 0 for all"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			if err := a.controller.LoadTaxonomy(c.Context, a.cfg.UILang); err != nil {
				return err
			}
			f := domain.DefaultFilterState()
			f.TimeWindowDays = c.Int("days")
			a.controller.RestoreFilter(f)
			if err := a.controller.Refresh(c.Context); err != nil {
				return err
			}

			var printNode func(node domain.CategoryTreeNode, depth int)
			printNode = func(node domain.CategoryTreeNode, depth int) {
				fmt.Printf("%s%-30s %d\n", strings.Repeat("  ", depth), node.Label(a.cfg.UILang), node.Count)
				for _, child := range node.Children {
					printNode(child, depth+1)
				}
			}
			for _, root := range a.controller.Tree() {
				printNode(root, 0)
			}
			fmt.Printf("%-30s %d\n", "Other", a.controller.OtherBucketCount())
			return nil
		}),
	}
}

func reviewCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "review",
		Usage: "toggle review status and flags, set overrides and notes",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "article id"},
			&cli.StringFlag{Name: "status", Usage: "toggle 'correct' or 'incorrect'"},
			&cli.StringFlag{Name: "flag", Usage: "toggle a review flag"},
			&cli.StringFlag{Name: "override", Usage: "override category id, empty to clear"},
			&cli.StringFlag{Name: "note", Usage: "replace the review note"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			// Review actions operate on the loaded collection; fetch
			// without a window so the target article is present.
			f := domain.DefaultFilterState()
			f.TimeWindowDays = 0
			a.controller.RestoreFilter(f)
			if err := a.controller.Refresh(c.Context); err != nil {
				return err
			}

			id := c.Int64("id")
			var art *domain.Article
			var err error

			if c.IsSet("status") {
				art, err = a.reviews.ToggleStatus(c.Context, id, domain.ReviewStatus(c.String("status")))
				if err != nil {
					return err
				}
			}
			if c.IsSet("flag") {
				art, err = a.reviews.ToggleFlag(c.Context, id, c.String("flag"))
				if err != nil {
					return err
				}
			}
			if c.IsSet("override") {
				var override *string
				if v := c.String("override"); v != "" {
					override = &v
				}
				art, err = a.reviews.SetOverrideCategory(c.Context, id, override)
				if err != nil {
					return err
				}
			}
			if c.IsSet("note") {
				art, err = a.reviews.SetNote(c.Context, id, c.String("note"))
				if err != nil {
					return err
				}
			}

			if art == nil {
				return cli.Exit("nothing to do: pass --status, --flag, --override or --note", 1)
			}
			fmt.Printf("article %d: status=%q category=%s flags=%v\n",
				art.ID, art.ReviewStatus, art.EffectiveCategory(), art.ReviewFlags)
			return nil
		}),
	}
}

func reclassifyCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "reclassify",
		Usage: "preview or apply a reclassification for an article",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "article id"},
			&cli.Float64Flag{Name: "threshold", Value: domain.DefaultThreshold},
			&cli.Float64Flag{Name: "margin", Value: domain.DefaultMarginThreshold},
			&cli.IntFlag{Name: "min-len", Value: domain.DefaultMinLen},
			&cli.StringFlag{Name: "low-bucket", Value: domain.CategoryOther},
			&cli.IntFlag{Name: "top-k", Value: domain.DefaultTopK},
			&cli.BoolFlag{Name: "apply", Usage: "persist the new assignment"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			opts := domain.ReclassifyOptions{
				Threshold:       c.Float64("threshold"),
				MarginThreshold: c.Float64("margin"),
				MinLen:          c.Int("min-len"),
				LowBucket:       c.String("low-bucket"),
				TopK:            c.Int("top-k"),
				Apply:           c.Bool("apply"),
			}
			result, err := a.reviews.Reclassify(c.Context, c.Int64("id"), opts)
			if err != nil {
				return err
			}

			if result.Debug != nil {
				fmt.Printf("cleaned text: %d chars\n", len(result.Debug.CleanedText))
				for _, score := range result.Debug.TopK {
					fmt.Printf("  %-24s %.4f\n", score.CategoryID, score.Score)
				}
			}
			if result.Article != nil {
				fmt.Printf("assigned: %s (confidence %.4f)\n",
					result.Article.EffectiveCategory(), result.Article.Confidence)
			} else {
				fmt.Println("preview only, stored assignment unchanged")
			}
			return nil
		}),
	}
}

func deleteCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "delete an article from the feed",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Required: true, Usage: "article id"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			f := domain.DefaultFilterState()
			f.TimeWindowDays = 0
			a.controller.RestoreFilter(f)
			if err := a.controller.Refresh(c.Context); err != nil {
				return err
			}
			if err := a.controller.RemoveArticle(c.Context, c.Int64("id")); err != nil {
				return err
			}
			fmt.Printf("deleted article %d, %d remaining\n", c.Int64("id"), a.controller.Total())
			return nil
		}),
	}
}

func clustersCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "clusters",
		Usage: "list discovered topic clusters and their anchors",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "language", Usage: "restrict to one language"},
			&cli.BoolFlag{Name: "anchors", Usage: "include anchor phrases per cluster"},
		},
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			clusters, err := a.client.ListClusters(c.Context, c.String("language"))
			if err != nil {
				return err
			}
			for _, cl := range clusters {
				name := cl.Name
				if name == "" {
					name = "(unnamed)"
				}
				fmt.Printf("%6d  %-6s  %-10s  %s\n", cl.ID, cl.Language, cl.Status, name)
				if !c.Bool("anchors") {
					continue
				}
				anchors, err := a.client.ListClusterAnchors(c.Context, cl.ID)
				if err != nil {
					return err
				}
				for _, anchor := range anchors {
					fmt.Printf("        - %s\n", anchor.Phrase)
				}
			}
			return nil
		}),
	}
}

func taxonomyCommand(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "taxonomy",
		Usage: "list saved taxonomy revisions",
		Action: withApp(cfg, func(c *cli.Context, a *app) error {
			versions, err := a.client.TaxonomyVersions(c.Context)
			if err != nil {
				return err
			}
			for _, v := range versions {
				marker := " "
				if v.Active {
					marker = "*"
				}
				fmt.Printf("%s v%-4d  %s  %s\n", marker, v.Version,
					v.SavedAt.Format("2006-01-02 15:04"), v.Comment)
			}
			return nil
		}),
	}
}
