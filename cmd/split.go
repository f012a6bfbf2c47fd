package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/report"
	"github.com/mlihgenel/videopartitioner/internal/splitter"
	"github.com/mlihgenel/videopartitioner/internal/ui"
)

var (
	splitOpts       planFlags
	splitOnConflict string
	splitRetry      int
	splitRetryDelay time.Duration
)

var splitCmd = &cobra.Command{
	Use:   "split [video]",
	Short: "Videoyu hedef boyutta parçalara böl",
	Long: `Videoyu hesaplanan sınırlardan yeniden kodlamadan (stream copy) parçalara böler.
Hariç tutulan aralıklar parçalara girmez; bir parça birden fazla kesitten oluşuyorsa
kesitler birleştirilir. Çıktılar {isim}_part{N}{uzantı} olarak adlandırılır.

Örnekler:
  videopartitioner split film.mkv
  videopartitioner split film.mkv --size 2 --exclude 0-90 -o ./parcalar
  videopartitioner split film.mkv --profile fat32 --on-conflict skip
  videopartitioner split --plan film.plan.yaml --report pdf
  videopartitioner split film.mkv --retry 2 --retry-delay 2s`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		applyOnConflictDefault(cmd, "on-conflict", &splitOnConflict)
		applyRetryDefaults(cmd, "retry", &splitRetry, "retry-delay", &splitRetryDelay)
		applyReportDefault(cmd, "report", &splitOpts.report)

		r, err := resolvePlan(cmd.Context(), cmd, args, &splitOpts)
		if err != nil {
			return err
		}
		if p := r.profile; p != nil {
			if !cmd.Flags().Changed("on-conflict") && p.OnConflict != "" {
				splitOnConflict = p.OnConflict
			}
			if !cmd.Flags().Changed("retry") && p.Retry != nil {
				splitRetry = *p.Retry
			}
			if !cmd.Flags().Changed("retry-delay") && p.RetryDelay != nil {
				splitRetryDelay = *p.RetryDelay
			}
			if !cmd.Flags().Changed("report") && p.Report != "" {
				splitOpts.report = p.Report
			}
		}

		policy := splitter.NormalizeConflictPolicy(splitOnConflict)
		if policy == "" {
			return fmt.Errorf("gecersiz on-conflict degeri: %s (overwrite|skip|versioned)", splitOnConflict)
		}
		if splitRetry < 0 {
			return fmt.Errorf("retry negatif olamaz")
		}
		reportFormat := report.NormalizeFormat(splitOpts.report)
		if reportFormat == "" {
			return fmt.Errorf("gecersiz report formati: %s", splitOpts.report)
		}

		s := r.session
		if len(s.Points) == 0 {
			return splitter.ErrNoPartitions
		}

		exec := splitter.New(r.tools, splitter.Options{
			Workers:         workers,
			Retry:           splitRetry,
			RetryDelay:      splitRetryDelay,
			OnConflict:      policy,
			CreateOutputDir: true,
		})

		jsonOut := isJSONOutput()
		var bar *ui.ProgressBar
		if !jsonOut {
			ui.PrintSplit(s.VideoPath, s.OutputDir)
			fmt.Fprintf(ui.Out, "  %d parça, %d worker\n\n", len(s.Points), workers)
			bar = ui.NewProgressBar("Bölünüyor")
			bar.Update(0)
		}
		exec.OnProgress = func(p float64) {
			s.SetProgress(p)
			if bar != nil {
				bar.Update(p)
			}
		}

		s.BeginSplit()
		res, splitErr := exec.Split(cmd.Context(), splitter.Request{
			InputPath:       s.VideoPath,
			OutputDir:       s.OutputDir,
			TargetSizeBytes: s.TargetSizeBytes(),
			Exclusions:      s.Exclusions,
			Metadata:        s.Metadata.Partition(),
		})
		if res == nil {
			if splitErr == nil {
				splitErr = errors.New("bölme sonucu alınamadı")
			}
			s.FailSplit(splitErr)
			return splitErr
		}
		if splitErr != nil {
			s.FailSplit(splitErr)
		} else {
			s.CompleteSplit(res.Message())
		}

		rep := planReport(s)
		rep.ApplyResults(res.Results, res.StartedAt, res.EndedAt)
		if reportFormat != report.Off {
			path := reportPath(splitOpts.reportFile, s.VideoPath, s.OutputDir, "split_report", reportFormat)
			if err := report.Write(path, reportFormat, rep); err != nil {
				return fmt.Errorf("rapor yazılamadı: %w", err)
			}
			if !jsonOut {
				ui.PrintSuccess(fmt.Sprintf("Rapor yazıldı: %s", path))
			}
		}

		if jsonOut {
			if err := printJSON(rep); err != nil {
				return err
			}
			return splitErr
		}

		sum := res.Summary
		ui.PrintSplitSummary(sum.Total, sum.Succeeded, sum.Skipped, sum.Failed, sum.Duration)
		for _, e := range sum.Errors {
			ui.PrintError(fmt.Sprintf("%s: %s", e.Name, e.Error))
		}
		if splitErr != nil {
			return splitErr
		}
		ui.PrintSuccess(res.Message())
		return nil
	},
}

func init() {
	splitOpts.register(splitCmd)
	splitCmd.Flags().StringVar(&splitOnConflict, "on-conflict", splitter.ConflictVersioned, "Çakışma politikası: overwrite, skip, versioned")
	splitCmd.Flags().IntVar(&splitRetry, "retry", 0, "Başarısız parça için tekrar deneme sayısı")
	splitCmd.Flags().DurationVar(&splitRetryDelay, "retry-delay", time.Second, "Tekrar denemeler arası bekleme")
	rootCmd.AddCommand(splitCmd)
}
