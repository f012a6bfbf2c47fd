package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/files"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

var (
	lsAll bool
	rmYes bool
)

type lsEntry struct {
	Name   string `json:"name"`
	Path   string `json:"path"`
	Kind   string `json:"kind"`
	Size   int64  `json:"size_bytes,omitempty"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

var lsCmd = &cobra.Command{
	Use:   "ls [dizin]",
	Short: "Dizindeki videoları listele",
	Long: `Dizindeki alt dizinleri ve video dosyalarını listeler. --all ile görseller de gösterilir.

Örnekler:
  videopartitioner ls
  videopartitioner ls ~/Videolar --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		entries, err := files.List(dir)
		if err != nil {
			return err
		}

		listed := make([]lsEntry, 0, len(entries))
		rows := make([][]string, 0, len(entries))
		for _, e := range entries {
			if e.Kind == files.KindImage && !lsAll {
				continue
			}
			item := lsEntry{Name: e.Name, Path: e.Path, Kind: string(e.Kind), Size: e.Size}
			size := ""
			switch e.Kind {
			case files.KindDir:
				item.Size = 0
			case files.KindImage:
				if w, h, err := files.ImageSize(e.Path); err == nil {
					item.Width, item.Height = w, h
					size = fmt.Sprintf("%s  %dx%d", format.FileSize(e.Size), w, h)
				} else {
					size = format.FileSize(e.Size)
				}
			default:
				size = format.FileSize(e.Size)
			}
			listed = append(listed, item)
			rows = append(rows, []string{ui.KindIcon(string(e.Kind)) + " " + e.Name, size})
		}

		if isJSONOutput() {
			return printJSON(listed)
		}
		if len(rows) == 0 {
			ui.PrintInfo(fmt.Sprintf("%s içinde video bulunamadı", dir))
			return nil
		}
		ui.PrintTable([]string{"Ad", "Boyut"}, rows)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:   "rm <dosya>",
	Short: "Dosyayı kalıcı olarak sil",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		if !rmYes {
			fmt.Fprintf(ui.Out, "%s kalıcı olarak silinsin mi? [e/H]: ", path)
			var answer string
			fmt.Fscanln(cmd.InOrStdin(), &answer)
			switch strings.ToLower(strings.TrimSpace(answer)) {
			case "e", "evet", "y", "yes":
			default:
				ui.PrintInfo("İptal edildi")
				return nil
			}
		}
		if err := files.Delete(path); err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Silindi: %s", path))
		return nil
	},
}

var trashCmd = &cobra.Command{
	Use:   "trash <dosya>",
	Short: "Dosyayı çöp kutusuna taşı",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dest, err := files.MoveToTrash(args[0])
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("Çöp kutusuna taşındı: %s", dest))
		return nil
	},
}

func init() {
	lsCmd.Flags().BoolVarP(&lsAll, "all", "a", false, "Görselleri de listele")
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Onay sormadan sil")
	rootCmd.AddCommand(lsCmd, rmCmd, trashCmd)
}
