package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mlihgenel/videopartitioner/internal/media"
	"github.com/mlihgenel/videopartitioner/internal/ui"
	"github.com/mlihgenel/videopartitioner/internal/watch"
)

var (
	watchOpts     planFlags
	watchInterval time.Duration
	watchSettle   time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch <video>",
	Short: "Video dosyasını izleyip değiştiğinde planı yeniden hesapla",
	Long: `Video dosyasını izler. Dosya değişip durulduğunda (örneğin kayıt veya indirme
devam ederken) meta veri yeniden okunur ve parça tablosu yeniden hesaplanır.
fsnotify kullanılamazsa polling yöntemine geçilir.

Örnekler:
  videopartitioner watch kayit.mkv --size 2
  videopartitioner watch kayit.mkv --exclude 0-30 --settle 5s`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := checkOutputFormat(); err != nil {
			return err
		}
		watchOpts.report = "off"

		r, err := resolvePlan(cmd.Context(), cmd, args, &watchOpts)
		if err != nil {
			return err
		}
		s := r.session
		if isJSONOutput() {
			if err := printJSON(planReport(s)); err != nil {
				return err
			}
		} else {
			printPlan(s)
		}

		engine, err := watch.NewAdaptiveWatcher(s.VideoPath, watchSettle)
		if err != nil {
			ui.PrintWarning(fmt.Sprintf("Event izleme başlatılamadı, polling kullanılacak: %s", err.Error()))
		}
		if err := engine.Bootstrap(); err != nil {
			return err
		}
		defer engine.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !isJSONOutput() {
			ui.PrintInfo(fmt.Sprintf("İzleme başladı: %s (%s)", s.VideoPath, engine.Mode()))
			ui.PrintInfo("Durdurmak için Ctrl+C kullanın.")
		}

		prober := media.New(r.tools)
		err = watch.Run(ctx, engine, watchInterval, func(path string) {
			meta, err := prober.Read(ctx, path)
			if err != nil {
				ui.PrintError(fmt.Sprintf("Meta veri okunamadı: %s", err.Error()))
				return
			}
			s.SetMetadata(meta, true)
			if isJSONOutput() {
				_ = printJSON(planReport(s))
				return
			}
			printPlan(s)
		})
		if errors.Is(err, context.Canceled) {
			if !isJSONOutput() {
				ui.PrintInfo("İzleme durduruldu.")
			}
			return nil
		}
		return err
	},
}

func init() {
	watchCmd.Flags().Float64VarP(&watchOpts.size, "size", "s", 0, "Hedef parça boyutu (GB, 0-100)")
	watchCmd.Flags().StringVarP(&watchOpts.exclude, "exclude", "x", "", "Hariç tutulacak aralıklar")
	watchCmd.Flags().StringVar(&watchOpts.profile, "profile", "", "Hazır boyut profili")
	watchCmd.Flags().DurationVar(&watchInterval, "interval", 2*time.Second, "Polling aralığı")
	watchCmd.Flags().DurationVar(&watchSettle, "settle", 1500*time.Millisecond, "Dosyanın durulma süresi")
	rootCmd.AddCommand(watchCmd)
}
