package cmd

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/logging"
)

var (
	verbose      bool
	outputDir    string
	workers      int
	logLevel     string
	outputFormat string

	activeProjectConfig *config.ProjectConfig
	activeProjectPath   string
	flagErrorPrinted    bool

	appVersion = "dev"
	appCommit  = ""
	appDate    = ""
)

// SetVersionInfo build-time version bilgisini ayarlar
func SetVersionInfo(version, commit, date string) {
	if strings.TrimSpace(version) != "" {
		appVersion = version
	}
	appCommit = strings.TrimSpace(commit)
	appDate = strings.TrimSpace(date)
	if appDate == "" || appDate == "unknown" {
		appDate = time.Now().Format("2006-01-02 15:04:05")
	}
	rootCmd.Version = appVersion
	rootCmd.SetVersionTemplate(versionTemplate())
}

func versionTemplate() string {
	commit := appCommit
	if commit == "" || commit == "none" {
		commit = "-"
	}
	return fmt.Sprintf(
		"Video Partitioner v%s\nCommit: %s\nTarih:  %s\nGo:     %s\nOS:     %s/%s\n",
		appVersion, commit, appDate, runtime.Version(), runtime.GOOS, runtime.GOARCH,
	)
}

var rootCmd = &cobra.Command{
	Use:   "videopartitioner [video]",
	Short: "Video Partitioner - videoları hedef boyutta parçalara böler",
	Long: `Video Partitioner: büyük video dosyalarını yeniden kodlamadan hedef boyutta parçalara böler.

Zaman çizelgesi üzerinde istenmeyen aralıkları (reklam, jenerik, boş kısım) işaretleyin;
bu aralıklar parçalara girmez ve parça sınırları kalan süreye göre hesaplanır.
Bölme işlemi FFmpeg stream copy ile yapılır, kalite kaybı olmaz.

Argümansız çalıştırıldığında dosya tarayıcısı, video verildiğinde doğrudan
etkileşimli zaman çizelgesi editörü açılır.

Örnekler:
  videopartitioner film.mkv
  videopartitioner plan film.mkv --size 4 --exclude 0-90,01:52:00-01:58:30
  videopartitioner split film.mkv --profile dvd -o ./parcalar
  videopartitioner split film.mkv --plan film.plan.yaml --report pdf
  videopartitioner info film.mkv
  videopartitioner thumbs film.mkv --strip film-strip.png
  videopartitioner profiles
  videopartitioner doctor`,
	Version: appVersion,
	Args:    cobra.MaximumNArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadProjectConfig(); err != nil {
			return err
		}
		if err := applyRootDefaults(cmd); err != nil {
			return err
		}
		configureCLILogging()
		return nil
	},
}

// Execute CLI'ı çalıştırır. Bayrak hataları FlagErrorFunc içinde zaten yazdırılır.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !flagErrorPrinted {
		fmt.Fprintf(os.Stderr, "Hata: %s\n", err.Error())
	}
	return err
}

func init() {
	// RunE burada atanır: RunInteractive rootCmd'ye başvurduğu için
	// bileşik literalde atamak başlatma döngüsü oluşturur.
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		video := ""
		if len(args) == 1 {
			video = args[0]
		}
		return RunInteractive(video)
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Detaylı çıktı modu (tanılama kayıtları stderr'e yazılır)")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Çıktı dizini (varsayılan: kaynak dizin)")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", runtime.NumCPU(), "Paralel worker sayısı")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Kayıt seviyesi (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output-format", OutputFormatText, "Çıktı formatı: text veya json")

	SetVersionInfo(appVersion, appCommit, appDate)

	// Hata mesajlarını özelleştir
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		fmt.Fprintf(os.Stderr, "Hata: %s\n\n", err.Error())
		cmd.Usage()
		flagErrorPrinted = true
		return err
	})
}

func loadProjectConfig() error {
	cwd, err := os.Getwd()
	if err != nil {
		return nil
	}
	cfg, path, err := config.LoadProjectConfig(cwd)
	if err != nil {
		return fmt.Errorf("proje yapılandırması okunamadı: %w", err)
	}
	activeProjectConfig = cfg
	activeProjectPath = path
	return nil
}

// configureCLILogging tanılama kayıtlarını --verbose ile stderr'e, aksi halde hiçbir yere yönlendirir.
func configureCLILogging() {
	cfg := logging.Config{Level: resolveLogLevel()}
	if verbose {
		cfg.Output = os.Stderr
		cfg.Console = true
	}
	logging.Configure(cfg)
}
