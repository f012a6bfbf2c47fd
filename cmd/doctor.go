package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/installer"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

var doctorInstall bool

type doctorOutput struct {
	Version        string       `json:"version"`
	OS             string       `json:"os"`
	Tools          []media.Tool `json:"tools"`
	PackageManager string       `json:"package_manager,omitempty"`
	InstallCommand string       `json:"install_command,omitempty"`
	ConfigDir      string       `json:"config_dir,omitempty"`
	ProjectConfig  string       `json:"project_config,omitempty"`
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Bağımlılıkları kontrol et",
	Long: `ffmpeg ve ffprobe kurulumunu, sürümlerini ve yapılandırma yollarını gösterir.
--install ile eksik ffmpeg sistem paket yöneticisiyle kurulur.

Örnekler:
  videopartitioner doctor
  videopartitioner doctor --install`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		tools := media.CheckDependencies(cmd.Context(), ffmpeg.ExecRunner{})
		pm := installer.DetectPackageManager()
		info := installer.FFmpegInstallInfo(pm)

		out := doctorOutput{
			Version:        appVersion,
			OS:             runtime.GOOS + "/" + runtime.GOARCH,
			Tools:          tools,
			PackageManager: pm,
			InstallCommand: info.Description,
			ProjectConfig:  activeProjectPath,
		}
		if dir, err := config.Dir(); err == nil {
			out.ConfigDir = dir
		}

		missing := false
		for _, t := range tools {
			if !t.Available {
				missing = true
			}
		}

		if isJSONOutput() && !doctorInstall {
			return printJSON(out)
		}

		rows := make([][]string, 0, len(tools))
		for _, t := range tools {
			status := ui.IconSuccess
			detail := t.Version
			if !t.Available {
				status = ui.IconError
				detail = "bulunamadı"
			}
			rows = append(rows, []string{status + " " + t.Name, detail})
		}
		ui.PrintTable([]string{"Araç", "Durum"}, rows)
		if out.ConfigDir != "" {
			ui.PrintInfo(fmt.Sprintf("Yapılandırma: %s", out.ConfigDir))
		}
		if out.ProjectConfig != "" {
			ui.PrintInfo(fmt.Sprintf("Proje yapılandırması: %s", out.ProjectConfig))
		}

		if !missing {
			ui.PrintSuccess("Tüm bağımlılıklar kurulu")
			return nil
		}

		if !doctorInstall {
			if info.Supported {
				ui.PrintWarning(fmt.Sprintf("ffmpeg eksik. Kurmak için: %s  (veya 'videopartitioner doctor --install')", info.Description))
			} else {
				ui.PrintWarning(fmt.Sprintf("ffmpeg eksik. Manuel kurulum: %s", info.ManualURL))
			}
			return nil
		}

		ui.PrintInfo("ffmpeg kuruluyor...")
		command, err := installer.InstallFFmpeg()
		if err != nil {
			return err
		}
		ui.PrintSuccess(fmt.Sprintf("ffmpeg kuruldu (%s)", command))
		return nil
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorInstall, "install", false, "Eksik ffmpeg'i paket yöneticisiyle kur")
	rootCmd.AddCommand(doctorCmd)
}
