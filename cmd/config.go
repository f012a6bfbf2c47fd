package cmd

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/logging"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

type configOutput struct {
	Dir           string            `json:"dir"`
	User          *config.AppConfig `json:"user"`
	ProjectPath   string            `json:"project_path,omitempty"`
	Project       any               `json:"project,omitempty"`
	EffectiveGb   float64           `json:"effective_target_gb"`
	EffectiveOut  string            `json:"effective_output_dir,omitempty"`
	EffectiveLogs string            `json:"effective_log_level"`
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Kullanıcı yapılandırmasını göster veya değiştir",
	Long: `Kullanıcı yapılandırması ~/.videopartitioner/config.json dosyasında tutulur.
Proje dizininde .videopartitioner.toml varsa onun değerleri önceliklidir.

Örnekler:
  videopartitioner config show
  videopartitioner config set-output ~/Videolar/parcalar
  videopartitioner config set-size 3.99
  videopartitioner config set-log-level debug`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Etkin yapılandırmayı göster",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		cfg, _ := config.LoadConfig()
		dir, err := config.Dir()
		if err != nil {
			return err
		}

		target := 0.0
		applyTargetSizeDefault(cmd, "size", &target)
		out := configOutput{
			Dir:           dir,
			User:          cfg,
			ProjectPath:   activeProjectPath,
			EffectiveGb:   target,
			EffectiveOut:  outputDir,
			EffectiveLogs: resolveLogLevel(),
		}
		if activeProjectConfig != nil {
			out.Project = activeProjectConfig
		}

		if isJSONOutput() {
			return printJSON(out)
		}

		output := out.EffectiveOut
		if output == "" {
			output = "(kaynak dizin)"
		}
		rows := [][]string{
			{"Yapılandırma dizini", dir},
			{"Çıktı dizini", output},
			{"Hedef parça boyutu", fmt.Sprintf("%s GB", strconv.FormatFloat(target, 'f', -1, 64))},
			{"Kayıt seviyesi", out.EffectiveLogs},
		}
		if activeProjectPath != "" {
			rows = append(rows, []string{"Proje yapılandırması", activeProjectPath})
		}
		ui.PrintTable([]string{"Ayar", "Değer"}, rows)
		return nil
	},
}

var configSetOutputCmd = &cobra.Command{
	Use:   "set-output <dizin>",
	Short: "Varsayılan çıktı dizinini ayarla",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := strings.TrimSpace(args[0])
		if dir != "" {
			abs, err := filepath.Abs(dir)
			if err != nil {
				return err
			}
			dir = abs
		}
		if err := config.SetDefaultOutputDir(dir); err != nil {
			return fmt.Errorf("yapılandırma kaydedilemedi: %w", err)
		}
		if dir == "" {
			ui.PrintSuccess("Varsayılan çıktı dizini temizlendi")
			return nil
		}
		ui.PrintSuccess(fmt.Sprintf("Varsayılan çıktı dizini: %s", dir))
		return nil
	},
}

var configSetSizeCmd = &cobra.Command{
	Use:   "set-size <gb>",
	Short: "Varsayılan hedef parça boyutunu ayarla",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		gb, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(args[0]), ",", "."), 64)
		if err != nil || !format.IsValidPartitionSize(gb) {
			return fmt.Errorf("geçersiz parça boyutu: %s (0 < boyut <= 100)", args[0])
		}
		if err := config.SetDefaultTargetGb(gb); err != nil {
			return fmt.Errorf("yapılandırma kaydedilemedi: %w", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Varsayılan hedef parça boyutu: %s", format.FileSize(format.GbToBytes(gb))))
		return nil
	},
}

var configSetLogLevelCmd = &cobra.Command{
	Use:   "set-log-level <seviye>",
	Short: "Varsayılan kayıt seviyesini ayarla",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level := strings.ToLower(strings.TrimSpace(args[0]))
		if !logging.ValidLevel(level) {
			return fmt.Errorf("geçersiz kayıt seviyesi: %s (debug|info|warn|error)", args[0])
		}
		cfg, _ := config.LoadConfig()
		cfg.LogLevel = level
		if err := config.SaveConfig(cfg); err != nil {
			return fmt.Errorf("yapılandırma kaydedilemedi: %w", err)
		}
		ui.PrintSuccess(fmt.Sprintf("Varsayılan kayıt seviyesi: %s", level))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd, configSetOutputCmd, configSetSizeCmd, configSetLogLevelCmd)
	rootCmd.AddCommand(configCmd)
}
