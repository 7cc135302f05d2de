package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/born-ml/pool/internal/envconfig"
	"github.com/born-ml/pool/internal/logutil"
	"github.com/born-ml/pool/internal/nn"
	"github.com/born-ml/pool/internal/parallel"
	"github.com/born-ml/pool/internal/tensor"
)

const version = "v0.1.0"

// volumeFile is the JSON form of a volume read and written by the CLI.
type volumeFile struct {
	Shape [3]int    `json:"shape"`
	Data  []float32 `json:"data"`
}

func (f volumeFile) volume() (*tensor.Volume, error) {
	return tensor.FromSlice(f.Data, tensor.NewShape(f.Shape[0], f.Shape[1], f.Shape[2]))
}

func newVolumeFile(v *tensor.Volume) volumeFile {
	s := v.Shape()
	return volumeFile{Shape: [3]int{s.Depth, s.Height, s.Width}, Data: v.Data()}
}

func readVolume(r io.Reader) (*tensor.Volume, error) {
	var f volumeFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode volume: %w", err)
	}
	return f.volume()
}

// openInput returns the named file, or stdin for "" and "-".
func openInput(cmd *cobra.Command, name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	return os.Open(name)
}

func parallelConfig(cmd *cobra.Command) (parallel.Config, error) {
	cfg := envconfig.Parallel()
	if cmd.Flags().Changed("workers") {
		workers, err := cmd.Flags().GetInt("workers")
		if err != nil {
			return cfg, err
		}
		cfg = cfg.WithWorkers(workers)
	}
	return cfg, nil
}

func writeVolume(cmd *cobra.Command, v *tensor.Volume) error {
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if asJSON {
		return json.NewEncoder(w).Encode(newVolumeFile(v))
	}

	s := v.Shape()
	fmt.Fprintf(w, "shape %v\n", s)
	for z := 0; z < s.Depth; z++ {
		fmt.Fprintf(w, "channel %d\n", z)
		table := tablewriter.NewWriter(w)
		table.SetAutoFormatHeaders(false)
		table.SetAlignment(tablewriter.ALIGN_RIGHT)

		header := make([]string, s.Width+1)
		header[0] = "y\\x"
		for x := 0; x < s.Width; x++ {
			header[x+1] = strconv.Itoa(x)
		}
		table.SetHeader(header)

		for y := 0; y < s.Height; y++ {
			row := make([]string, s.Width+1)
			row[0] = strconv.Itoa(y)
			for x := 0; x < s.Width; x++ {
				row[x+1] = strconv.FormatFloat(float64(v.At(z, y, x)), 'g', -1, 32)
			}
			table.Append(row)
		}
		table.Render()
	}
	return nil
}

func RunHandler(cmd *cobra.Command, _ []string) error {
	kind, err := cmd.Flags().GetString("kind")
	if err != nil {
		return err
	}
	scale, err := cmd.Flags().GetInt("scale")
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	cfg, err := parallelConfig(cmd)
	if err != nil {
		return err
	}

	r, err := openInput(cmd, name)
	if err != nil {
		return err
	}
	defer r.Close()

	input, err := readVolume(r)
	if err != nil {
		return err
	}

	s := input.Shape()
	layer, err := nn.Build(nn.LayerConfig{
		Kind:  kind,
		Input: [3]int{s.Depth, s.Height, s.Width},
		Scale: scale,
	}, nn.WithParallel(cfg))
	if err != nil {
		return err
	}
	slog.Debug("running layer", "layer", layer, "workers", cfg.NumWorkers, "parallel", cfg.Enabled)

	output, err := layer.Forward(input)
	if err != nil {
		return err
	}
	return writeVolume(cmd, output)
}

func PipelineHandler(cmd *cobra.Command, _ []string) error {
	configName, err := cmd.Flags().GetString("config")
	if err != nil {
		return err
	}
	name, err := cmd.Flags().GetString("input")
	if err != nil {
		return err
	}
	cfg, err := parallelConfig(cmd)
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(configName)
	if err != nil {
		return err
	}
	var descriptors []map[string]any
	if err := json.Unmarshal(raw, &descriptors); err != nil {
		return fmt.Errorf("decode pipeline %s: %w", configName, err)
	}

	model, err := nn.BuildAll(descriptors, nn.WithParallel(cfg))
	if err != nil {
		return err
	}
	slog.Debug("pipeline assembled", "pipeline", model, "in", model.InputSize(), "out", model.OutputSize())

	r, err := openInput(cmd, name)
	if err != nil {
		return err
	}
	defer r.Close()

	input, err := readVolume(r)
	if err != nil {
		return err
	}

	output, err := model.Forward(input)
	if err != nil {
		return err
	}
	return writeVolume(cmd, output)
}

func EnvHandler(cmd *cobra.Command, _ []string) error {
	vars := envconfig.AsMap()
	names := make([]string, 0, len(vars))
	for name := range vars {
		names = append(names, name)
	}
	sort.Strings(names)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"NAME", "VALUE", "DESCRIPTION"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoWrapText(false)
	for _, name := range names {
		v := vars[name]
		table.Append([]string{v.Name, fmt.Sprintf("%v", v.Value), v.Description})
	}
	table.Render()
	return nil
}

func NewCLI() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "pool",
		Short:        "Non-overlapping pooling for activation volumes",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			slog.SetDefault(logutil.NewLogger(cmd.ErrOrStderr(), envconfig.LogLevel()))
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Pool a single volume",
		Long:  "Read a JSON volume {\"shape\":[D,H,W],\"data\":[...]} and pool it with one layer",
		Args:  cobra.NoArgs,
		RunE:  RunHandler,
	}
	runCmd.Flags().String("kind", nn.KindMax, "Pooling kind (max, avg, l2)")
	runCmd.Flags().Int("scale", 2, "Window edge length and stride")

	pipelineCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Run a volume through a sequence of layers",
		Args:  cobra.NoArgs,
		RunE:  PipelineHandler,
	}
	pipelineCmd.Flags().String("config", "", "JSON file with a list of layer descriptors")
	_ = pipelineCmd.MarkFlagRequired("config")

	for _, cmd := range []*cobra.Command{runCmd, pipelineCmd} {
		cmd.Flags().String("input", "", "Input volume file (default stdin)")
		cmd.Flags().Int("workers", 0, "Maximum pooling workers (0 = one per CPU, overrides POOL_NUM_WORKERS)")
		cmd.Flags().Bool("json", false, "Write the output volume as JSON")
	}

	envCmd := &cobra.Command{
		Use:   "env",
		Short: "Show environment settings",
		Args:  cobra.NoArgs,
		RunE:  EnvHandler,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pool %s\n", version)
		},
	}

	rootCmd.AddCommand(runCmd, pipelineCmd, envCmd, versionCmd)
	return rootCmd
}
