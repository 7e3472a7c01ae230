package commands

import (
	"fmt"
	"io"

	"backend-alpsconnect/internal/domain"
	"backend-alpsconnect/internal/mockdata"

	"github.com/spf13/cobra"
)

func newEquipmentCmd() *cobra.Command {
	var lang string
	cmd := &cobra.Command{
		Use:   "equipment <activity>",
		Short: "Print the default kit list for an activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEquipment(cmd.OutOrStdout(), domain.ActivityType(args[0]), lang)
		},
	}
	cmd.Flags().StringVarP(&lang, "lang", "l", "en", "Language of the kit list (en, it)")
	return cmd
}

func runEquipment(w io.Writer, activity domain.ActivityType, lang string) error {
	if !activity.Valid() {
		return fmt.Errorf("unknown activity: %s", activity)
	}
	items, err := mockdata.Equipment(activity, lang)
	if err != nil {
		return err
	}
	for _, item := range items {
		if _, err := fmt.Fprintln(w, item); err != nil {
			return err
		}
	}
	return nil
}
