package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"backend-alpsconnect/internal/mockdata"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownFormat  = errors.New("unknown format")
	ErrUnknownSection = errors.New("unknown section")
)

const (
	formatJSON = "json"
	formatYAML = "yaml"

	sectionAll     = "all"
	sectionTrips   = "trips"
	sectionClients = "clients"
	sectionGuide   = "guide"
	sectionChats   = "chats"
)

type generateOptions struct {
	lang    string
	seed    int64
	format  string
	section string
}

func newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a mock data snapshot",
		Long: `Generate builds one snapshot of trips, client profiles, the guide profile
and chat threads for a language. A non-zero --seed makes the output reproducible.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd.OutOrStdout(), opts)
		},
	}
	cmd.Flags().StringVarP(&opts.lang, "lang", "l", "en", "Language of the generated text (en, it)")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "Random seed, 0 for a time-based seed")
	cmd.Flags().StringVarP(&opts.format, "format", "f", formatJSON, "Output format (json, yaml)")
	cmd.Flags().StringVar(&opts.section, "section", sectionAll, "Part of the snapshot to print (all, trips, clients, guide, chats)")
	return cmd
}

func runGenerate(w io.Writer, opts *generateOptions) error {
	var genOpts []mockdata.Option
	if opts.seed != 0 {
		genOpts = append(genOpts, mockdata.WithSeed(opts.seed))
	}
	snap, err := mockdata.New(genOpts...).Generate(opts.lang)
	if err != nil {
		return err
	}

	out, err := selectSection(snap, opts.section)
	if err != nil {
		return err
	}
	return encode(w, opts.format, out)
}

func selectSection(snap mockdata.Snapshot, section string) (any, error) {
	switch strings.ToLower(section) {
	case "", sectionAll:
		return snap, nil
	case sectionTrips:
		return snap.Trips, nil
	case sectionClients:
		return snap.Clients, nil
	case sectionGuide:
		return snap.Guide, nil
	case sectionChats:
		return map[string]any{
			"guideChats":  snap.GuideChats,
			"clientChats": snap.ClientChats,
		}, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSection, section)
}

func encode(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML, "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}
