package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/contre95/presetcli/src/features/browser"
	"github.com/contre95/presetcli/src/features/importing"
	"github.com/contre95/presetcli/src/features/playback"
	"github.com/contre95/presetcli/src/features/searching"
	"github.com/contre95/presetcli/src/infra/player"
	infraproviders "github.com/contre95/presetcli/src/infra/providers"
	"github.com/contre95/presetcli/src/infra/watcher"
	"github.com/contre95/presetcli/src/preset"
	"github.com/spf13/cobra"
)

// ErrMissingSession is returned when presetshare is queried without a session id.
var ErrMissingSession = errors.New("a presetshare session id is required: set providers.presetshare.session_id, PRESETSHARE_SESSION or --session")

type searchFlags struct {
	keywords string
	synth    string
	genre    string
	sound    string
	sort     string
	session  string
	page     int
}

func newPresetShareCommand(root *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "presetshare",
		Short: "Browse presets on presetshare.com",
	}
	cmd.AddCommand(newSearchCommand(root))
	return cmd
}

func newSearchCommand(root *rootFlags) *cobra.Command {
	flags := &searchFlags{}
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search presets and browse the results",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, root, flags)
		},
	}
	cmd.Flags().StringVarP(&flags.keywords, "keywords", "k", "", "search keywords")
	cmd.Flags().StringVarP(&flags.synth, "synth", "y", "", "synth filter: serum, vital")
	cmd.Flags().StringVarP(&flags.genre, "genre", "g", "", "genre filter: house, synthwave, dnb")
	cmd.Flags().StringVarP(&flags.sound, "sound", "u", "", fmt.Sprintf("sound filter: %v", preset.SoundNames()))
	cmd.Flags().StringVarP(&flags.sort, "sort", "s", "", "sort order: relevance, earliest, likes, downloads, comments, random")
	cmd.Flags().StringVar(&flags.session, "session", "", "presetshare PHPSESSID cookie value")
	cmd.Flags().IntVar(&flags.page, "page", 1, "results page to start from")
	return cmd
}

func parseSearchOptions(flags *searchFlags) (preset.SearchOptions, error) {
	opts := preset.SearchOptions{Keywords: flags.keywords, Page: flags.page}
	var err error
	if opts.Synth, err = preset.ParseSynth(flags.synth); err != nil {
		return opts, err
	}
	if opts.Genre, err = preset.ParseGenre(flags.genre); err != nil {
		return opts, err
	}
	if opts.Sound, err = preset.ParseSound(flags.sound); err != nil {
		return opts, err
	}
	if opts.Sort, err = preset.ParseSort(flags.sort); err != nil {
		return opts, err
	}
	if opts.Page < 1 {
		return opts, &preset.ParseError{Kind: "page", Input: fmt.Sprint(flags.page)}
	}
	return opts, nil
}

func runSearch(cmd *cobra.Command, root *rootFlags, flags *searchFlags) error {
	opts, err := parseSearchOptions(flags)
	if err != nil {
		return err
	}

	a, err := newApp(appOptions{configPath: root.configPath, debug: root.debug, session: flags.session, logToFile: true})
	if err != nil {
		return err
	}
	defer a.Close()

	ps := a.cfg.Providers.PresetShare
	if ps.SessionID == "" {
		return ErrMissingSession
	}

	ctx := cmd.Context()
	catalog := infraproviders.NewPresetShareCatalog(ps.BaseURL, a.fetcher)
	search := searching.NewService(catalog)
	results, err := search.Search(ctx, opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	previewer := playback.NewService(a.providers, player.NewExecPlayer(a.cfg.Player.Command, a.cfg.Player.Args))
	defer previewer.Close()
	installer := importing.NewService(a.providers, a.importers, a.history, a.metrics)

	var events chan watcher.FileEvent
	if a.cfg.Watch.Enabled {
		client, err := a.providers.For(preset.PresetShare)
		if err != nil {
			return err
		}
		events = make(chan watcher.FileEvent, 1)
		w, err := watcher.NewWatcher(events, time.Duration(a.cfg.Watch.DebounceMS)*time.Millisecond)
		if err != nil {
			return fmt.Errorf("failed to create cache watcher: %w", err)
		}
		if err := w.Start(ctx, a.cfg.CachePath, client.PresetDir()); err != nil {
			slog.Warn("Cache watcher disabled", "error", err)
		} else {
			defer w.Stop()
		}
	}

	return browser.Run(ctx, results, previewer, installer, search, events)
}
