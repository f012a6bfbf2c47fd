package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/config"
	"github.com/mlihgenel/videopartitioner/internal/ffmpeg"
	"github.com/mlihgenel/videopartitioner/internal/format"
	"github.com/mlihgenel/videopartitioner/internal/interval"
	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/partition"
	"github.com/mlihgenel/videopartitioner/internal/profile"
	"github.com/mlihgenel/videopartitioner/internal/report"
	"github.com/mlihgenel/videopartitioner/internal/session"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

// newToolkit testlerde sahte çalıştırıcıyla değiştirilir.
var newToolkit = ffmpeg.Default

// planFlags plan ve split komutlarının ortak bayraklarıdır.
type planFlags struct {
	size       float64
	exclude    string
	profile    string
	planFile   string
	save       string
	report     string
	reportFile string
}

func (f *planFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64VarP(&f.size, "size", "s", 0, "Hedef parça boyutu (GB, 0-100)")
	cmd.Flags().StringVarP(&f.exclude, "exclude", "x", "", "Hariç tutulacak aralıklar (örn: 0-90,01:52:00-01:58:30)")
	cmd.Flags().StringVar(&f.profile, "profile", "", "Hazır boyut profili (bkz. profiles)")
	cmd.Flags().StringVar(&f.planFile, "plan", "", "YAML plan dosyasından oku")
	cmd.Flags().StringVar(&f.save, "save", "", "Planı YAML dosyasına kaydet")
	cmd.Flags().StringVar(&f.report, "report", report.Off, "Rapor formatı: off, txt, json, md, html, pdf")
	cmd.Flags().StringVar(&f.reportFile, "report-file", "", "Rapor dosya yolu")
}

// resolved tek bir bölme planının çözümlenmiş hali
type resolved struct {
	session *session.Session
	tools   *ffmpeg.Toolkit
	profile *profile.Definition
}

// resolvePlan bayrakları, plan dosyasını ve profili birleştirip meta veriyi okur.
// Öncelik: bayrak > profil > plan dosyası > ortam/proje/kullanıcı ayarı.
func resolvePlan(ctx context.Context, cmd *cobra.Command, args []string, f *planFlags) (*resolved, error) {
	var plan *config.Plan
	if f.planFile != "" {
		p, err := config.LoadPlan(f.planFile)
		if err != nil {
			return nil, err
		}
		plan = p
	}

	video := ""
	if len(args) > 0 {
		video = args[0]
	} else if plan != nil {
		video = plan.Video
	}
	if strings.TrimSpace(video) == "" {
		return nil, fmt.Errorf("video dosyası belirtilmedi")
	}
	if _, err := os.Stat(video); err != nil {
		return nil, fmt.Errorf("dosya bulunamadı: %s", video)
	}

	r := &resolved{}
	if f.profile != "" {
		p, err := profile.Resolve(f.profile)
		if err != nil {
			return nil, err
		}
		r.profile = &p
	}

	target := f.size
	if !cmd.Flags().Changed("size") {
		switch {
		case r.profile != nil:
			target = r.profile.TargetGb
		case plan != nil && plan.TargetGb > 0:
			target = plan.TargetGb
		default:
			applyTargetSizeDefault(cmd, "size", &target)
		}
	}
	if !format.IsValidPartitionSize(target) {
		return nil, fmt.Errorf("geçersiz parça boyutu: %v GB (0 < boyut <= 100)", target)
	}

	var exclusions []interval.TimeInterval
	if plan != nil {
		ivs, err := plan.Intervals()
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, ivs...)
	}
	if f.exclude != "" {
		ivs, err := interval.ParseList(f.exclude)
		if err != nil {
			return nil, err
		}
		exclusions = append(exclusions, ivs...)
	}

	dir := outputDir
	if !cmd.Flags().Changed("output") && plan != nil && plan.OutputDir != "" {
		dir = plan.OutputDir
	}
	if dir == "" {
		dir = filepath.Dir(video)
	}

	tools, err := newToolkit()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg bulunamadı, 'videopartitioner doctor --install' ile kurabilirsiniz: %w", err)
	}
	r.tools = tools

	meta, err := media.New(tools).Read(ctx, video)
	if err != nil {
		return nil, err
	}
	if meta.DurationSecs <= 0 {
		return nil, fmt.Errorf("video süresi okunamadı: %s", video)
	}

	s := session.New()
	s.LoadVideo(video)
	s.SetOutputDir(dir)
	if err := s.SetTargetSizeGb(target); err != nil {
		return nil, err
	}
	s.SetExclusions(exclusions)
	s.SetMetadata(meta, true)
	r.session = s

	if f.save != "" {
		if err := config.SavePlan(f.save, config.NewPlan(video, target, dir, s.Exclusions)); err != nil {
			return nil, fmt.Errorf("plan kaydedilemedi: %w", err)
		}
		if !isJSONOutput() {
			ui.PrintSuccess(fmt.Sprintf("Plan kaydedildi: %s", f.save))
		}
	}
	return r, nil
}

// planReport oturumdan plan raporu üretir.
func planReport(s *session.Session) report.Report {
	return report.FromPlan(s.ID, s.VideoPath, *s.Metadata.Partition(), s.TargetSizeBytes(), s.Exclusions, s.Points)
}

// reportPath rapor dosyasının yolunu döner; açıkça verilmediyse çıktı dizininde üretilir.
func reportPath(explicit, video, dir, suffix, reportFormat string) string {
	if explicit != "" {
		return explicit
	}
	stem := strings.TrimSuffix(filepath.Base(video), filepath.Ext(video))
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", stem, suffix, reportFormat))
}

var planOpts planFlags

var planCmd = &cobra.Command{
	Use:   "plan [video]",
	Short: "Parça sınırlarını hesapla (dosya yazmadan)",
	Long: `Hedef boyuta ve hariç tutulan aralıklara göre parça sınırlarını hesaplar ve tablo olarak gösterir.
Hiçbir video dosyası yazılmaz.

Örnekler:
  videopartitioner plan film.mkv
  videopartitioner plan film.mkv --size 2 --exclude 0-90
  videopartitioner plan film.mkv --profile dvd --save film.plan.yaml
  videopartitioner plan --plan film.plan.yaml --report md
  videopartitioner plan film.mkv --output-format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		applyReportDefault(cmd, "report", &planOpts.report)
		reportFormat := report.NormalizeFormat(planOpts.report)
		if reportFormat == "" {
			return fmt.Errorf("gecersiz report formati: %s", planOpts.report)
		}

		r, err := resolvePlan(cmd.Context(), cmd, args, &planOpts)
		if err != nil {
			return err
		}
		s := r.session
		rep := planReport(s)

		if reportFormat != report.Off {
			path := reportPath(planOpts.reportFile, s.VideoPath, s.OutputDir, "plan", reportFormat)
			if err := report.Write(path, reportFormat, rep); err != nil {
				return fmt.Errorf("rapor yazılamadı: %w", err)
			}
			if !isJSONOutput() {
				ui.PrintSuccess(fmt.Sprintf("Rapor yazıldı: %s", path))
			}
		}

		return emit(rep, func() { printPlan(s) })
	},
}

func init() {
	planOpts.register(planCmd)
	rootCmd.AddCommand(planCmd)
}

func printPlan(s *session.Session) {
	sum := s.Summary()

	fmt.Fprintln(ui.Out)
	ui.PrintInfo(fmt.Sprintf("%s  (%s, %s)", filepath.Base(s.VideoPath), format.Duration(sum.DurationSecs), format.FileSize(s.Metadata.FileSize)))
	if len(s.Exclusions) > 0 {
		ui.PrintInfo(fmt.Sprintf("Hariç tutulan: %d aralık, %s  •  Kalan: %s",
			len(s.Exclusions), format.Duration(sum.ExcludedSecs), format.Duration(sum.EffectiveSecs)))
	}
	if sum.HasOverlappingExclude {
		ui.PrintWarning("Hariç tutulan aralıklar çakışıyor; çakışan kısım iki kez düşülür")
	}

	if len(s.Points) == 0 {
		ui.PrintWarning("Parça hesaplanamadı: videonun tamamı hariç tutulmuş")
		return
	}

	printPointsTable(s.Points)
	ui.PrintSuccess(fmt.Sprintf("%d parça, hedef %s", len(s.Points), format.FileSize(s.TargetSizeBytes())))
}

func printPointsTable(points []partition.Point) {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			fmt.Sprintf("%d", p.Index+1),
			format.FFmpegTime(p.StartSecs),
			format.FFmpegTime(p.EndSecs),
			format.Duration(p.EndSecs - p.StartSecs),
			format.FileSize(p.EstimatedSizeBytes),
		})
	}
	ui.PrintTable([]string{"#", "Başlangıç", "Bitiş", "Süre", "Tahmini Boyut"}, rows)
}
