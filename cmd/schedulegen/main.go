// Command schedulegen bulk-creates available consultation slots for
// counselors over a range of days.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/juju/clock"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/cobra"

	"healthcommunity/internal/config"
	"healthcommunity/internal/database"
	"healthcommunity/internal/domain"
	"healthcommunity/internal/models"
	"healthcommunity/internal/repository"
	"healthcommunity/internal/service"
)

var logger = loggo.GetLogger("healthcommunity.schedulegen")

type options struct {
	counselors []string
	start      string
	days       int
	price      float64
	times      []string
	dryRun     bool
	logConfig  string
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "schedulegen",
		Short: "Generate available consultation slots",
		Long: `schedulegen creates one available schedule per counselor, day and slot time.
Without --counselor every registered counselor gets slots.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.LoadConfig()
			if opts.logConfig != "" {
				cfg.LogConfig = opts.logConfig
			}
			if err := loggo.ConfigureLoggers(cfg.LogConfig); err != nil {
				return errors.Trace(err)
			}

			plan, err := buildPlan(opts, cfg.Location(), clock.WallClock.Now())
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, plan, opts.dryRun, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringSliceVar(&opts.counselors, "counselor", nil, "counselor id (repeatable); defaults to all counselors")
	cmd.Flags().StringVar(&opts.start, "start", "", "first day, YYYY-MM-DD (default tomorrow)")
	cmd.Flags().IntVar(&opts.days, "days", 7, "number of days to generate")
	cmd.Flags().Float64Var(&opts.price, "price", 0, "price per slot")
	cmd.Flags().StringSliceVar(&opts.times, "times", nil, "slot times as HH:MM-HH:MM (default the standard daily slots)")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "print the slots without storing them")
	cmd.Flags().StringVar(&opts.logConfig, "log-config", "", "loggo levels (overrides LOG_CONFIG)")

	return cmd
}

// buildPlan turns command line options into a slot plan in loc.
func buildPlan(opts options, loc *time.Location, now time.Time) (domain.SlotPlan, error) {
	from := now.In(loc).AddDate(0, 0, 1)
	if opts.start != "" {
		day, err := time.ParseInLocation("2006-01-02", opts.start, loc)
		if err != nil {
			return domain.SlotPlan{}, errors.NotValidf("start date %q", opts.start)
		}
		from = day
	}
	if opts.price < 0 {
		return domain.SlotPlan{}, errors.NotValidf("negative price %v", opts.price)
	}

	times, err := parseSlotTimes(opts.times)
	if err != nil {
		return domain.SlotPlan{}, err
	}

	return domain.SlotPlan{
		CounselorIDs: opts.counselors,
		From:         from,
		Days:         opts.days,
		Times:        times,
		Price:        opts.price,
		Location:     loc,
	}, nil
}

func parseSlotTimes(raw []string) ([]domain.SlotTime, error) {
	var times []domain.SlotTime
	for _, r := range raw {
		start, end, ok := strings.Cut(strings.TrimSpace(r), "-")
		if !ok || start == "" || end == "" {
			return nil, errors.NotValidf("slot time %q", r)
		}
		times = append(times, domain.SlotTime{Start: start, End: end})
	}
	return times, nil
}

func run(ctx context.Context, cfg *config.Config, plan domain.SlotPlan, dryRun bool, out io.Writer) error {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return errors.Trace(err)
	}
	defer db.CloseDB()

	repo := repository.NewRepository(db.DB)
	schedules := service.NewScheduleService(repo.Schedule, repo.Counselor, cfg, clock.WallClock)

	generated, err := schedules.GenerateSchedules(ctx, plan, dryRun)
	if err != nil {
		return errors.Trace(err)
	}

	printSchedules(out, generated, plan.Location)
	verb := "created"
	if dryRun {
		verb = "would create"
	}
	fmt.Fprintf(out, "%s %s slots\n", verb, humanize.Comma(int64(len(generated))))
	logger.Debugf("slot generation finished (dry run %v)", dryRun)
	return nil
}

func printSchedules(out io.Writer, schedules []models.ConsultationSchedule, loc *time.Location) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "COUNSELOR\tDAY\tFROM\tTO\tPRICE")
	for _, s := range schedules {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			s.CounselorID,
			s.StartTime.In(loc).Format("Mon 02 Jan"),
			s.StartTime.In(loc).Format("15:04"),
			s.EndTime.In(loc).Format("15:04"),
			humanize.CommafWithDigits(s.Price, 2),
		)
	}
	tw.Flush()
}
