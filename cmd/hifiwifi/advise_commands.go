package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"hifiwifi/internal/advisor"
	"hifiwifi/internal/api"
	"hifiwifi/internal/wifi"
)

type measurementFlags struct {
	location  string
	activity  string
	frequency string
	signal    float64
	link      float64
	latency   float64

	ratingSignal    string
	ratingLatency   string
	ratingBandwidth string
}

func (f *measurementFlags) bind(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVar(&f.location, "location", "", "Where the reading was taken (e.g. \"Living Room\")")
	flags.StringVar(&f.activity, "activity", "", "What the network is used for (gaming, streaming, video_call, browsing)")
	flags.StringVar(&f.frequency, "frequency", "", "Band label (2.4GHz, 5GHz) or channel frequency in MHz")
	flags.Float64Var(&f.signal, "signal", 0, "Signal strength in dBm (-100..0)")
	flags.Float64Var(&f.link, "link", 0, "Link speed in Mbps (0..10000)")
	flags.Float64Var(&f.latency, "latency", 0, "Latency in ms (0..10000)")
	flags.StringVar(&f.ratingSignal, "rating-signal", "", "Signal strength rating (classified mode)")
	flags.StringVar(&f.ratingLatency, "rating-latency", "", "Latency rating (classified mode)")
	flags.StringVar(&f.ratingBandwidth, "rating-bandwidth", "", "Bandwidth rating (classified mode)")
}

func (f *measurementFlags) classified(cmd *cobra.Command) bool {
	for _, name := range []string{"rating-signal", "rating-latency", "rating-bandwidth"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}

func (f *measurementFlags) band() api.Band {
	value := strings.TrimSpace(f.frequency)
	if number, err := strconv.ParseFloat(value, 64); err == nil {
		return api.Band(wifi.BandForNumber(number))
	}
	return api.Band(wifi.NormalizeBand(value))
}

// raw builds the numeric reading; readings whose flag was not given stay nil
// so validation reports them as missing.
func (f *measurementFlags) raw(cmd *cobra.Command) api.RawMeasurement {
	reading := func(name string, value float64) *float64 {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &value
	}
	return api.RawMeasurement{
		Location:      f.location,
		SignalDBm:     reading("signal", f.signal),
		LinkSpeedMbps: reading("link", f.link),
		LatencyMs:     reading("latency", f.latency),
		Frequency:     f.band(),
		Activity:      f.activity,
	}
}

func (f *measurementFlags) measurement() api.Measurement {
	return api.Measurement{
		RoomName:      f.location,
		ActivityType:  f.activity,
		FrequencyBand: f.band(),
		Classification: api.Classification{
			SignalStrength: f.ratingSignal,
			Latency:        f.ratingLatency,
			Bandwidth:      f.ratingBandwidth,
		},
	}
}

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var flags measurementFlags

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Ask the model for a recommendation about one location",
		Long: "Analyze a reading with the model. Pass --signal, --link and --latency for a raw\n" +
			"reading, or --rating-* flags for one that is already classified.",
		Example: "  hifiwifi analyze --location \"Living Room\" --signal -62 --link 300 --latency 18 --frequency 5GHz --activity gaming\n" +
			"  hifiwifi analyze --location office --rating-signal bad --rating-latency okay --rating-bandwidth good",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := ctx.newService(ctx.cliLogger())
			if err != nil {
				return err
			}
			var env advisor.Envelope
			if flags.classified(cmd) {
				env = svc.AnalyzeBatch(cmd.Context(), api.ToClassified([]api.Measurement{flags.measurement()}))
			} else {
				raw := flags.raw(cmd)
				if err := api.Validate(raw); err != nil {
					return err
				}
				env = svc.AnalyzeRaw(cmd.Context(), api.ToRaw(raw))
			}
			return writeEnvelope(cmd, env)
		},
	}
	flags.bind(cmd)
	return cmd
}

func newExplainCommand(ctx *commandContext) *cobra.Command {
	var flags measurementFlags
	var action, target string

	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Ask the model to explain a recommendation in plain language",
		Example: "  hifiwifi explain --location bedroom --activity streaming --rating-signal bad \\\n" +
			"    --rating-latency okay --rating-bandwidth good --action move_location --target \"living room\"",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.ExplainRequest{
				Location: flags.location,
				Activity: flags.activity,
				Measurements: api.ExplainRatings{
					SignalStrength: flags.ratingSignal,
					Latency:        flags.ratingLatency,
					Bandwidth:      flags.ratingBandwidth,
				},
				Recommendation: api.ExplainRecommendation{Action: action, TargetLocation: target},
			}
			if err := api.Validate(req); err != nil {
				return err
			}
			svc, _, err := ctx.newService(ctx.cliLogger())
			if err != nil {
				return err
			}
			return writeEnvelope(cmd, svc.Explain(cmd.Context(), api.ToExplanation(req)))
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&action, "action", "", "Recommended action (stay_current, move_location, switch_band)")
	cmd.Flags().StringVar(&target, "target", "", "Target location for move_location")
	return cmd
}

func newChatCommand(ctx *commandContext) *cobra.Command {
	var structured bool

	cmd := &cobra.Command{
		Use:   "chat <query>",
		Short: "Ask the model a free-form WiFi question",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := api.ChatRequest{Query: strings.TrimSpace(strings.Join(args, " ")), FormatJSON: structured}
			if err := api.Validate(req); err != nil {
				return err
			}
			svc, _, err := ctx.newService(ctx.cliLogger())
			if err != nil {
				return err
			}
			return writeEnvelope(cmd, svc.Chat(cmd.Context(), req.Query, req.FormatJSON))
		},
	}
	cmd.Flags().BoolVar(&structured, "json-reply", false, "Ask the model for a JSON object instead of plain text")
	return cmd
}

func newDecideCommand(ctx *commandContext) *cobra.Command {
	var flags measurementFlags

	cmd := &cobra.Command{
		Use:   "decide",
		Short: "Apply the local recommendation rules without calling the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := ctx.newService(ctx.cliLogger())
			if err != nil {
				return err
			}
			req := api.DecideRequest{
				SignalStrength: flags.ratingSignal,
				Latency:        flags.ratingLatency,
				Bandwidth:      flags.ratingBandwidth,
				Frequency:      flags.band(),
				Activity:       flags.activity,
			}
			if !flags.classified(cmd) {
				raw := flags.raw(cmd)
				if raw.SignalDBm == nil || raw.LatencyMs == nil || raw.LinkSpeedMbps == nil {
					return fmt.Errorf("decide needs --rating-* flags or all of --signal, --link and --latency")
				}
				ratings := api.ClassifyRaw(raw, svc.Vocabulary())
				req.SignalStrength, req.Latency, req.Bandwidth = ratings.SignalStrength, ratings.Latency, ratings.Bandwidth
			}
			if err := api.Validate(req); err != nil {
				return err
			}

			snap := api.ToSnapshot(req)
			return writeJSON(cmd, api.NewDecideResponse(svc.Decide(cmd.Context(), snap), snap, svc.Vocabulary()))
		},
	}
	flags.bind(cmd)
	return cmd
}

// writeEnvelope prints the envelope and turns an error envelope into a
// non-zero exit after printing it.
func writeEnvelope(cmd *cobra.Command, env advisor.Envelope) error {
	if err := writeJSON(cmd, env); err != nil {
		return err
	}
	if env.Status() == advisor.StatusError {
		return fmt.Errorf("advisor returned an error: %s", env.ErrorMessage())
	}
	return nil
}
