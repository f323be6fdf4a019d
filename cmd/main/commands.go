package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"themerr/gallery/internal/config"
	"themerr/gallery/internal/container"
	"themerr/gallery/internal/domain"
	"themerr/gallery/internal/render"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type app struct {
	cfgFile string
	format  string
	output  string

	cfg       *config.Config
	container *container.Container
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "themerr-gallery",
		Short:         "Browse and search the ThemerrDB theme catalogue",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.container != nil {
				return a.container.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file path (default ./config.yaml)")
	root.PersistentFlags().StringVar(&a.format, "format", "", "board format: terminal or html")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", "", "write the board to this file instead of stdout")

	root.AddCommand(newLoadCmd(a), newSearchCmd(a), newThemeCmd(a))
	return root
}

func (a *app) init(ctx context.Context) error {
	cfg, err := config.Load(a.cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if a.format != "" {
		cfg.Render.Format = a.format
	}
	if a.output != "" {
		cfg.Render.Output = a.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	log.SetLevel(level)
	log.Debug("Configuration loaded successfully")

	c, err := container.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}

	a.cfg = cfg
	a.container = c
	return nil
}

func (a *app) categories(names []string) ([]domain.Category, error) {
	if len(names) == 0 {
		return a.container.Service.Categories(), nil
	}
	categories := make([]domain.Category, 0, len(names))
	for _, name := range names {
		category, err := domain.ParseCategory(name)
		if err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}

// writeBoard prints the board in the configured format and theme.
func (a *app) writeBoard(ctx context.Context, stdout io.Writer) error {
	theme, err := a.container.Service.Theme(ctx)
	if err != nil {
		return err
	}

	w := stdout
	if a.cfg.Render.Output != "" {
		f, err := os.Create(a.cfg.Render.Output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	board := a.container.Service.Board()
	switch a.cfg.Render.Format {
	case "html":
		err = render.WriteHTML(w, board, theme)
	default:
		err = render.NewTerminalPrinter(w, theme, 0).Print(board)
	}
	if err != nil {
		return fmt.Errorf("failed to write board: %w", err)
	}

	if a.cfg.Render.Output != "" {
		log.Infof("✅ Board written to %s", a.cfg.Render.Output)
	}
	return nil
}

func newLoadCmd(a *app) *cobra.Command {
	var (
		names []string
		pages int
	)

	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load catalogue pages and print them as cards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := a.container.Service

			if pages < 1 {
				return fmt.Errorf("--pages must be positive, got %d", pages)
			}

			categories, err := a.categories(names)
			if err != nil {
				return err
			}

			// A category that fails to load stops growing; the board is still
			// written with everything that did load.
			if len(names) == 0 {
				if err := svc.LoadInitial(ctx); err != nil {
					log.Warnf("⚠️ Board is incomplete: %v", err)
				}
				pages--
			}

			for _, category := range categories {
				if pages == 0 {
					break
				}
				if _, err := svc.LoadPages(ctx, category, pages); err != nil {
					if errors.Is(err, domain.ErrUnknownCategory) {
						return err
					}
					log.Warnf("⚠️ %s stopped loading: %v", category.GetCategoryName(), err)
				}
			}

			for _, category := range categories {
				if d, err := svc.Descriptor(category); err == nil && svc.Exhausted(category) {
					log.Infof("✅ %s: all %d pages loaded", category.GetCategoryName(), d.TotalPages)
				}
			}

			return a.writeBoard(ctx, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVarP(&names, "category", "c", nil, "categories to load (default: all configured)")
	cmd.Flags().IntVarP(&pages, "pages", "p", 1, "number of pages to load per category")
	return cmd
}

func newSearchCmd(a *app) *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search one category by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			categories, err := a.categories([]string{name})
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			items, err := a.container.Service.Search(ctx, categories[0], query)
			if err != nil {
				return err
			}
			if len(items) == 0 {
				log.Infof("No %s match %q", categories[0].GetCategoryName(), query)
			}

			return a.writeBoard(ctx, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&name, "category", "c", "games", "category to search")
	return cmd
}

func newThemeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "theme [auto|light|dark]",
		Short:     "Show or set the display theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"auto", "light", "dark"},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			svc := a.container.Service

			if len(args) == 1 {
				if _, err := svc.SetTheme(ctx, args[0]); err != nil {
					return err
				}
			}

			theme, err := svc.Theme(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), theme)
			return nil
		},
	}
}
