package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/alecthomas/kong"
	"github.com/philipparndt/plate3mf/internal/cache"
	"github.com/philipparndt/plate3mf/internal/config"
	"github.com/philipparndt/plate3mf/internal/stl"
	"github.com/philipparndt/plate3mf/internal/summary"
	"github.com/philipparndt/plate3mf/internal/threemf"
	"github.com/philipparndt/plate3mf/internal/ui"
	"github.com/philipparndt/plate3mf/version"
)

type CLI struct {
	Config string `help:"Path to YAML config file" short:"C" optional:""`

	Inspect *InspectCmd `cmd:"" help:"Inspect a 3MF project and show its plates"`
	Summary *SummaryCmd `cmd:"" help:"Print the JSON summary of a 3MF project"`
	Export  *ExportCmd  `cmd:"" help:"Export plates of a 3MF project as binary STL"`
	Version *VersionCmd `cmd:"" help:"Show version information"`
}

// loadProject parses a project through the configured cache
func loadProject(cfg *config.Config, file string) (*threemf.Project, error) {
	return cache.New(cfg.CacheEntries).Load(file)
}

type InspectCmd struct {
	File string `arg:"" help:"3MF project file to inspect" type:"existingfile"`
}

func (c *InspectCmd) Run(cfg *config.Config) error {
	project, err := loadProject(cfg, c.File)
	if err != nil {
		return err
	}

	printer := NewPlatePrinter()
	printer.PrintProject(c.File, project)
	return nil
}

type SummaryCmd struct {
	File  string `arg:"" help:"3MF project file to summarize" type:"existingfile"`
	Plain bool   `help:"Disable syntax highlighting"`
}

func (c *SummaryCmd) Run(cfg *config.Config) error {
	project, err := loadProject(cfg, c.File)
	if err != nil {
		return err
	}

	out := map[string]any{
		"model_metadata":   summary.ModelMetadata(project.Metadata, cfg.Summary.MaxMetadata),
		"project_settings": summary.Settings(project.Settings, cfg.Summary.MaxSettings),
		"plates":           summary.Plates(project),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("error encoding summary: %w", err)
	}

	if c.Plain {
		fmt.Println(string(data))
		return nil
	}

	if err := quick.Highlight(os.Stdout, string(data)+"\n", "json", "terminal256", "monokai"); err != nil {
		fmt.Println(string(data))
	}
	return nil
}

type ExportCmd struct {
	File   string `arg:"" help:"3MF project file to export from" type:"existingfile"`
	Plate  int    `help:"Plate index to export (default: all plates)" short:"p"`
	Output string `help:"Output file or directory" short:"o"`
	Header string `help:"STL header text (defaults to the project title)"`
}

func (c *ExportCmd) Run(cfg *config.Config) error {
	project, err := loadProject(cfg, c.File)
	if err != nil {
		return err
	}

	header := c.Header
	if header == "" {
		header = project.Metadata["Title"]
	}
	if header == "" {
		header = filepath.Base(c.File)
	}

	if c.Plate != 0 {
		return c.exportPlate(project, c.Plate, header, c.outputPath(c.Plate, false))
	}

	for _, plate := range project.Plates {
		if err := c.exportPlate(project, plate.Index, header, c.outputPath(plate.Index, true)); err != nil {
			return err
		}
	}
	return nil
}

// exportPlate writes one plate's triangles as a binary STL file
func (c *ExportCmd) exportPlate(project *threemf.Project, index int, header, output string) error {
	triangles := project.PlateTriangles(index)

	mesh := stl.FromGeometry(header, triangles)
	if err := stl.NewWriter().WriteBinary(mesh, output); err != nil {
		return err
	}

	ui.PrintSuccess(fmt.Sprintf("Exported plate %d (%d triangles) to %s", index, len(triangles), output))
	return nil
}

// outputPath decides the output file name for a plate. Exporting all
// plates treats --output as a directory.
func (c *ExportCmd) outputPath(index int, multi bool) string {
	name := fmt.Sprintf("plate_%d.stl", index)

	if c.Output == "" {
		return name
	}
	if multi {
		return filepath.Join(c.Output, name)
	}
	return c.Output
}

type VersionCmd struct{}

func (c *VersionCmd) Run(cfg *config.Config) error {
	fmt.Println(version.Get().String())
	return nil
}

// Parse parses command line arguments and executes the appropriate command
func Parse() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("plate3mf"),
		kong.Description("3MF project inspector and per-plate STL exporter"),
		kong.UsageOnError(),
	)

	cfg := config.Default()
	if cli.Config != "" {
		loaded, err := config.NewLoader().Load(cli.Config)
		if err != nil {
			ui.PrintError(err.Error())
			os.Exit(1)
		}
		cfg = loaded
	}

	if err := ctx.Run(cfg); err != nil {
		ui.PrintError(err.Error())
		os.Exit(1)
	}
}
