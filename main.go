package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/skirt/pkg/loaders"
	"github.com/df07/skirt/pkg/log"
	"github.com/df07/skirt/pkg/output"
	"github.com/df07/skirt/pkg/renderer"
	"github.com/df07/skirt/pkg/scene"
)

var logger = log.New("skirt")

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Error(err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	defaults := scene.DefaultSamplingConfig()
	renderDefaults := renderer.DefaultRenderConfig()

	// Leave -v free for verbose logging
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "skirt"
	app.Usage = "render scenes using tiled Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a built-in scene or a scene description",
			Description: `
Render a single frame. The scene is either one of the built-in scenes
(see the scenes command) or a YAML scene description. Resolution, samples and
depth given on the command line override the values of a description.

The output format is chosen from the extension of --out: png, tif/tiff, pfm
(linear radiance) or ppm.`,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "scene, s",
					Value: "default",
					Usage: "built-in scene name",
				},
				cli.StringFlag{
					Name:  "description, d",
					Usage: "YAML scene description to render instead of a built-in scene",
				},
				cli.IntFlag{
					Name:  "width",
					Value: defaults.Width,
					Usage: "frame width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: defaults.Height,
					Usage: "frame height",
				},
				cli.IntFlag{
					Name:  "spp",
					Value: defaults.SamplesPerPixel,
					Usage: "samples per pixel",
				},
				cli.IntFlag{
					Name:  "depth",
					Value: defaults.MaxDepth,
					Usage: "maximum number of bounces per path",
				},
				cli.IntFlag{
					Name:  "tile",
					Value: renderDefaults.TileSize,
					Usage: "tile edge length in pixels",
				},
				cli.IntFlag{
					Name:  "workers",
					Value: renderDefaults.NumWorkers,
					Usage: "number of concurrent tile workers",
				},
				cli.StringFlag{
					Name:  "seed",
					Value: "0",
					Usage: "random seed; non-numeric values are hashed",
				},
				cli.StringFlag{
					Name:  "out, o",
					Usage: "output image (default output/<scene>/render_<timestamp>.png)",
				},
			},
			Action: renderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in scenes and the scene descriptions in a directory",
			Action: listScenes,
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "dir",
					Value: "scenes",
					Usage: "directory to scan for scene descriptions",
				},
			},
		},
	}
	return app
}

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}

// parseSeed accepts an integer or any other string, which is hashed
func parseSeed(value string) int64 {
	if seed, err := strconv.ParseInt(value, 10, 64); err == nil {
		return seed
	}
	return scene.Seed(value)
}

// createScene builds the scene selected on the command line and returns it
// with the default output name
func createScene(ctx *cli.Context, seed int64) (*scene.Scene, string, error) {
	sampling := scene.SamplingConfig{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		MaxDepth:        ctx.Int("depth"),
	}

	if path := ctx.String("description"); path != "" {
		desc, err := loaders.LoadDescription(path)
		if err != nil {
			return nil, "", err
		}
		if ctx.IsSet("width") {
			desc.Width = sampling.Width
		}
		if ctx.IsSet("height") {
			desc.Height = sampling.Height
		}
		if ctx.IsSet("spp") {
			desc.SamplesPerPixel = sampling.SamplesPerPixel
		}
		if ctx.IsSet("depth") {
			desc.MaxDepth = sampling.MaxDepth
		}
		if err := validateSampling(desc.SamplingConfig()); err != nil {
			return nil, "", err
		}
		name := desc.Filename
		if name == "" {
			base := filepath.Base(path)
			name = defaultOutput(base[:len(base)-len(filepath.Ext(base))])
		}
		return desc.Scene(), name, nil
	}

	if err := validateSampling(sampling); err != nil {
		return nil, "", err
	}
	sceneName := ctx.String("scene")
	sc, err := scene.New(sceneName, sampling, seed)
	if err != nil {
		return nil, "", err
	}
	return sc, defaultOutput(sceneName), nil
}

func validateSampling(cfg scene.SamplingConfig) error {
	if cfg.Width < 1 || cfg.Height < 1 {
		return fmt.Errorf("invalid resolution %dx%d", cfg.Width, cfg.Height)
	}
	if cfg.SamplesPerPixel < 1 {
		return fmt.Errorf("samples per pixel must be at least 1, got %d", cfg.SamplesPerPixel)
	}
	if cfg.MaxDepth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", cfg.MaxDepth)
	}
	return nil
}

func defaultOutput(sceneName string) string {
	timestamp := time.Now().Format("20060102_150405")
	return filepath.Join("output", sceneName, fmt.Sprintf("render_%s.png", timestamp))
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	seed := parseSeed(ctx.String("seed"))
	sc, outPath, err := createScene(ctx, seed)
	if err != nil {
		return err
	}
	if ctx.String("out") != "" {
		outPath = ctx.String("out")
	}
	// Fail before rendering when the output cannot be encoded
	if _, err := output.FormatFromPath(outPath); err != nil {
		return err
	}

	cfg := sc.SamplingConfig
	logger.Noticef("rendering %dx%d at %d spp (depth %d, %d shapes)", cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, sc.GetPrimitiveCount())
	cam := sc.Camera.Config()
	logger.Infof("camera at %v facing %v (vfov %.1f, aperture %.2f)", cam.Center, sc.Camera.GetCameraForward(), cam.VFov, cam.Aperture)

	rt := renderer.NewRaytracer(sc, renderer.RenderConfig{
		TileSize:   ctx.Int("tile"),
		NumWorkers: ctx.Int("workers"),
		Seed:       seed,
	}, log.AsCoreLogger(logger))

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	film, stats, err := rt.Render(renderCtx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warningf("render interrupted after %d tiles, saving partial image", stats.Tiles)
	}

	if err := output.SaveFilm(outPath, film); err != nil {
		return err
	}

	logger.Noticef("render statistics\n%s", formatStats(stats, film))
	logger.Noticef("saved %s", outPath)
	return nil
}

// formatStats renders the statistics table
func formatStats(stats renderer.RenderStats, film *renderer.Film) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Statistic", "Value"})
	table.Append([]string{"Resolution", fmt.Sprintf("%dx%d", film.Width, film.Height)})
	table.Append([]string{"Pixels", fmt.Sprintf("%d", stats.TotalPixels)})
	table.Append([]string{"Samples", fmt.Sprintf("%d", stats.TotalSamples)})
	table.Append([]string{"Samples/pixel", fmt.Sprintf("%.1f", stats.AverageSamples())})
	table.Append([]string{"Tiles", fmt.Sprintf("%d", stats.Tiles)})
	table.Append([]string{"Workers", fmt.Sprintf("%d", stats.Workers)})
	table.Append([]string{"Samples/sec", fmt.Sprintf("%.0f", stats.SamplesPerSecond())})
	table.Append([]string{"Avg. luminance", fmt.Sprintf("%.3f", renderer.CalculateAverageLuminance(film.Image()))})
	table.SetFooter([]string{"Render time", stats.Duration.Round(time.Millisecond).String()})
	table.Render()
	return buf.String()
}

// List built-in scenes and scene descriptions.
func listScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	response, err := scene.ListAllScenes(ctx.String("dir"))
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Group", "ID", "Name", "Description"})
	for _, group := range response.Groups {
		for _, info := range group.Scenes {
			id := info.ID
			if info.FilePath != "" {
				id = info.FilePath
			}
			table.Append([]string{group.Name, id, info.DisplayName, info.Description})
		}
	}
	table.Render()

	fmt.Fprint(ctx.App.Writer, buf.String())
	return nil
}
