package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/profile"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

type profileOutput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	TargetGb    float64 `json:"target_gb"`
	TargetBytes int64   `json:"target_bytes"`
	OnConflict  string  `json:"on_conflict,omitempty"`
	Retry       *int    `json:"retry,omitempty"`
	RetryDelay  string  `json:"retry_delay,omitempty"`
	Report      string  `json:"report,omitempty"`
}

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Hazır parça boyutu profillerini listele",
	Long: `plan, split ve watch komutlarında --profile ile kullanılabilecek hazır hedef boyutları listeler.

Örnekler:
  videopartitioner profiles
  videopartitioner split film.mkv --profile dvd`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		all := profile.All()

		if isJSONOutput() {
			out := make([]profileOutput, 0, len(all))
			for _, p := range all {
				item := profileOutput{
					Name:        p.Name,
					Description: p.Description,
					TargetGb:    p.TargetGb,
					TargetBytes: format.GbToBytes(p.TargetGb),
					OnConflict:  p.OnConflict,
					Retry:       p.Retry,
					Report:      p.Report,
				}
				if p.RetryDelay != nil {
					item.RetryDelay = p.RetryDelay.String()
				}
				out = append(out, item)
			}
			return printJSON(out)
		}

		rows := make([][]string, 0, len(all))
		for _, p := range all {
			rows = append(rows, []string{
				p.Name,
				format.FileSize(format.GbToBytes(p.TargetGb)),
				p.Description,
			})
		}
		ui.PrintTable([]string{"Profil", "Hedef", "Açıklama"}, rows)
		fmt.Fprintln(ui.Out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
}
