package melodyctl

import (
	"fmt"
	"net/url"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"melodyd/pkg/types"
)

func newCheckpointsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoints",
		Short: "List known checkpoints and their on-disk state",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp types.CheckpointsResponse
			if err := getJSON("/checkpoints", &resp); err != nil {
				return err
			}
			for _, ck := range resp.Checkpoints {
				state := "missing"
				if ck.Path != "" {
					state = ck.Path
				}
				kind := "melody"
				if ck.Drums {
					kind = "drums"
				}
				fmt.Printf("%-24s %-6s %2d bars  %s\n", ck.Name, kind, ck.Bars, state)
			}
			return nil
		},
	}
}

func newGenresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "genres",
		Short: "Show the genre routing table",
		RunE: func(cmd *cobra.Command, args []string) error {
			var resp types.GenresResponse
			if err := getJSON("/genres", &resp); err != nil {
				return err
			}
			for _, g := range resp.Genres {
				drums := g.DrumCheckpoint
				if drums == "" {
					drums = "(no drums)"
				}
				fmt.Printf("%-12s melody=%-20s drums=%s\n", g.Genre, g.MelodyCheckpoint, drums)
			}
			return nil
		},
	}
}

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show manager status",
		RunE: func(cmd *cobra.Command, args []string) error {
			var st types.StatusResponse
			if err := getJSON("/status", &st); err != nil {
				return err
			}
			fmt.Printf("state=%s loaded=%d used=%dMB budget=%dMB loads=%d evictions=%d generations=%d uptime=%ds\n",
				st.State, len(st.Instances), st.UsedMB, st.BudgetMB,
				st.LoadsTotal, st.EvictionsTotal, st.GenerationsTotal, st.UptimeSeconds)
			for _, inst := range st.Instances {
				fmt.Printf("  %-24s %-8s %4dMB queue=%d/%d inflight=%d\n",
					inst.Checkpoint, inst.State, inst.EstMemMB,
					inst.QueueLen, inst.MaxQueueDepth, inst.Inflight)
			}
			return nil
		},
	}
}

func newGenerateCmd() *cobra.Command {
	var (
		genre       string
		instrument  string
		bpm         int
		temperature float64
		seed        int64
		outPath     string
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Render a MIDI pattern and write it to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			q := url.Values{}
			q.Set("genre", genre)
			q.Set("instrument", instrument)
			q.Set("bpm", strconv.Itoa(bpm))
			if temperature > 0 {
				q.Set("temperature", strconv.FormatFloat(temperature, 'f', -1, 64))
			}
			if seed != 0 {
				q.Set("seed", strconv.FormatInt(seed, 10))
			}
			body, hdr, err := getRaw("/generate?" + q.Encode())
			if err != nil {
				return err
			}
			if outPath == "" {
				outPath = fmt.Sprintf("%s_%s_%dbpm.mid", genre, instrument, bpm)
			}
			if err := os.WriteFile(outPath, body, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d bytes, generation %s)\n", outPath, len(body), hdr.Get("X-Generation-Id"))
			return nil
		},
	}
	cmd.Flags().StringVar(&genre, "genre", "pop", "Genre steering checkpoint selection")
	cmd.Flags().StringVar(&instrument, "instrument", "lead", "Instrument to render")
	cmd.Flags().IntVar(&bpm, "bpm", 120, "Target tempo in BPM (40-240)")
	cmd.Flags().Float64Var(&temperature, "temperature", 0, "Sampling temperature (0 = server default)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = random)")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Output file path (default <genre>_<instrument>_<bpm>bpm.mid)")
	return cmd
}
