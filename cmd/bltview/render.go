package main

import (
	"fmt"
	"image"
	imgcolor "image/color"
	"image/png"
	"os"

	"github.com/BourgeoisBear/rasterm"
	"github.com/gookit/color"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beholdnec/bltview/pkg/boltlib"
)

// image command
var imageCmd = &cobra.Command{
	Use:   "image <file.blt> <id>",
	Short: "Decode and render an image resource",
	Long: `Decode a CLUT7 or RL7 image resource.

Without -o, the image is drawn in the terminal: kitty/iTerm graphics
protocols when available, ANSI background cells otherwise. A palette
resource id can be supplied with --palette; without one a generated
RGB ramp is used.`,
	Args: cobra.ExactArgs(2),
	RunE: runImage,
}

func init() {
	imageCmd.Flags().StringP("output", "o", "", "Write a PNG instead of drawing to the terminal")
	imageCmd.Flags().String("palette", "", "Palette resource id")
	imageCmd.Flags().Bool("term", false, "Force ANSI cell rendering")
}

func runImage(cmd *cobra.Command, args []string) error {
	outputPath, _ := cmd.Flags().GetString("output")
	paletteArg, _ := cmd.Flags().GetString("palette")
	forceCells, _ := cmd.Flags().GetBool("term")

	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	res, payload, err := ct.LoadResource(id)
	if err != nil {
		return err
	}

	h, pix, err := boltlib.DecodeImage(payload)
	if err != nil {
		return fmt.Errorf("decode image %04X: %w", id, err)
	}
	logrus.WithFields(logrus.Fields{
		"id":          fmt.Sprintf("%04X", res.ID),
		"compression": boltlib.CompressionName(h.Compression),
		"width":       h.Width,
		"height":      h.Height,
	}).Debug("image decoded")

	pal, err := loadPalette(ct, paletteArg)
	if err != nil {
		return err
	}
	img := boltlib.NewPaletted(h, pix, pal)

	if outputPath != "" {
		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
		if err := png.Encode(out, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
		fmt.Printf("Wrote %s (%dx%d)\n", outputPath, h.Width, h.Height)
		return nil
	}

	printImage(img, forceCells)
	return nil
}

// loadPalette resolves the palette flag: a resource id when given,
// the generated ramp otherwise.
func loadPalette(ct *boltlib.Container, arg string) (imgcolor.Palette, error) {
	if arg == "" {
		return boltlib.TestPalette(), nil
	}
	id, err := parseID(arg)
	if err != nil {
		return nil, err
	}
	_, payload, err := ct.LoadResource(id)
	if err != nil {
		return nil, err
	}
	p, err := boltlib.ParsePalette(payload)
	if err != nil {
		return nil, fmt.Errorf("parse palette %04X: %w", id, err)
	}
	return p.ColorTable(), nil
}

// printImage draws to the terminal: native graphics protocols where
// the terminal supports them, two-character ANSI background cells
// otherwise.
func printImage(img image.Image, forceCells bool) {
	if !forceCells {
		if rasterm.IsTermKitty() {
			rasterm.Settings{}.KittyWriteImage(os.Stdout, img)
			fmt.Println()
			return
		}
		if rasterm.IsTermItermWez() {
			rasterm.Settings{}.ItermWriteImage(os.Stdout, img)
			fmt.Println()
			return
		}
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			color.RGB(uint8(r>>8), uint8(g>>8), uint8(bl>>8), true).Printf("  ")
		}
		fmt.Println()
	}
}

// palette command
var paletteCmd = &cobra.Command{
	Use:   "palette <file.blt> <id>",
	Short: "Display a palette resource",
	Long: `Parse a palette resource and print its colors.

Each entry gets a colored swatch plus hex and HSL readouts.`,
	Args: cobra.ExactArgs(2),
	RunE: runPalette,
}

func runPalette(cmd *cobra.Command, args []string) error {
	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}

	res, payload, err := ct.LoadResource(id)
	if err != nil {
		return err
	}

	p, err := boltlib.ParsePalette(payload)
	if err != nil {
		return fmt.Errorf("parse palette %04X: %w", id, err)
	}

	fmt.Printf("Palette %04X %q, header % X, %d colors\n\n",
		res.ID, res.Name, p.Header, len(p.Colors))

	for i, c := range p.Colors {
		cf := colorful.Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
		}
		h, s, l := cf.Hsl()
		fmt.Printf("%3d  ", i)
		color.RGB(c.R, c.G, c.B, true).Printf("    ")
		fmt.Printf("  %s  hsl(%3.0f, %3.0f%%, %3.0f%%)\n", cf.Hex(), h, s*100, l*100)
	}
	return nil
}
