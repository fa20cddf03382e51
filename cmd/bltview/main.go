package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/beholdnec/bltview/pkg/boltlib"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bltview",
	Short: "Inspect BLT multimedia containers",
	Long: `bltview is a tool for working with BLT resource containers.

BLT files hold the images, palettes, sounds and menu data of the
Funhouse engine games (Merlin's Apprentice, Labyrinth of Crete). This
tool lists directories and resources, extracts payloads, decodes
CLUT7/RL7 images, and pretty-prints the structured metadata types.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(hexCmd)
	rootCmd.AddCommand(imageCmd)
	rootCmd.AddCommand(paletteCmd)
	rootCmd.AddCommand(describeCmd)
	rootCmd.AddCommand(versionCmd)
}

func openContainer(path string) (*boltlib.Container, error) {
	ct, err := boltlib.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{
		"file":        path,
		"size":        ct.FileSize(),
		"directories": len(ct.Directories()),
		"resources":   ct.NumResources(),
	}).Debug("container opened")
	return ct, nil
}

// registryFor builds the type registry for a container, keyed on the
// platform the file size detection reports.
func registryFor(ct *boltlib.Container) (boltlib.Registry, boltlib.Platform) {
	game, platform, known := boltlib.DetectGame(ct.FileSize())
	if !known {
		logrus.WithField("size", ct.FileSize()).
			Debug("unrecognized file size, assuming PC type codes")
	} else {
		logrus.WithField("game", game).Debug("detected game")
	}
	return boltlib.TypeRegistry(platform), platform
}

// parseID parses a resource id argument. Both decimal and 0x-prefixed
// hex are accepted.
func parseID(arg string) (uint16, error) {
	id, err := strconv.ParseUint(arg, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid resource id %q: %w", arg, err)
	}
	return uint16(id), nil
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <file.blt>",
	Short: "Display container information",
	Long: `Display metadata and statistics about a BLT container.

Shows the detected game, format version, and directory/resource counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
}

func runInfo(cmd *cobra.Command, args []string) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}

	game, platform, known := boltlib.DetectGame(ct.FileSize())
	if !known {
		game = "Unknown"
	}

	if jsonOutput {
		info := map[string]interface{}{
			"file":        args[0],
			"game":        game,
			"platform":    string(platform),
			"known":       known,
			"version":     ct.Version(),
			"fileSize":    ct.FileSize(),
			"directories": len(ct.Directories()),
			"resources":   ct.NumResources(),
		}
		dirs := make([]map[string]interface{}, 0, len(ct.Directories()))
		for _, d := range ct.Directories() {
			dirs = append(dirs, map[string]interface{}{
				"name":        d.Name,
				"compBufSize": d.CompBufSize,
				"resources":   len(d.Resources),
			})
		}
		info["directoryList"] = dirs

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(info)
	}

	fmt.Printf("BLT File: %s\n", args[0])
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()
	fmt.Printf("Game:        %s\n", game)
	fmt.Printf("Platform:    %s\n", platform)
	fmt.Printf("Version:     0x%04X\n", ct.Version())
	fmt.Printf("File Size:   %s (%d bytes)\n", formatBytes(ct.FileSize()), ct.FileSize())
	fmt.Printf("Directories: %d\n", len(ct.Directories()))
	fmt.Printf("Resources:   %d\n", ct.NumResources())
	fmt.Println()

	fmt.Println("Directories:")
	for _, d := range ct.Directories() {
		fmt.Printf("  %-8s %4d resources  (buf 0x%X)\n", d.Name, len(d.Resources), d.CompBufSize)
	}
	return nil
}

func formatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// ls command
var lsCmd = &cobra.Command{
	Use:   "ls <file.blt>",
	Short: "List directories and resources",
	Long: `List every directory and resource in file order.

The kind column is the semantic interpretation of the numeric type
code for the detected platform.`,
	Args: cobra.ExactArgs(1),
	RunE: runLs,
}

func runLs(cmd *cobra.Command, args []string) error {
	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}
	registry, _ := registryFor(ct)

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tKIND\tSIZE\tNAME")
	for _, dir := range ct.Directories() {
		fmt.Fprintf(w, "%s/\t\t\t\t\n", dir.Name)
		for _, r := range dir.Resources {
			fmt.Fprintf(w, "  %04X\t%d\t%s\t%d\t%s\n",
				r.ID, r.Type, registry.Lookup(r.Type), r.Size, r.Name)
		}
	}
	return w.Flush()
}

// extract command
var extractCmd = &cobra.Command{
	Use:   "extract <file.blt> [id]",
	Short: "Extract resource payloads",
	Long: `Extract raw resource payloads to files.

With an id, extracts that single resource. With --all, extracts every
resource in the container, one file per resource named ID_NAME.bin.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().StringP("output", "o", ".", "Output directory")
	extractCmd.Flags().Bool("all", false, "Extract every resource")
}

func runExtract(cmd *cobra.Command, args []string) error {
	outputDir, _ := cmd.Flags().GetString("output")
	all, _ := cmd.Flags().GetBool("all")

	if !all && len(args) < 2 {
		return fmt.Errorf("either a resource id or --all is required")
	}

	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if !all {
		id, err := parseID(args[1])
		if err != nil {
			return err
		}
		path, n, err := extractOne(ct, id, outputDir)
		if err != nil {
			return err
		}
		fmt.Printf("Extracted %s (%d bytes)\n", path, n)
		return nil
	}

	bar := progressbar.Default(int64(ct.NumResources()), "Extracting")
	var extracted int
	for _, dir := range ct.Directories() {
		for _, r := range dir.Resources {
			if _, _, err := extractOne(ct, r.ID, outputDir); err != nil {
				return err
			}
			extracted++
			_ = bar.Add(1)
		}
	}
	fmt.Printf("Extracted %d resource(s) to %s\n", extracted, outputDir)
	return nil
}

func extractOne(ct *boltlib.Container, id uint16, outputDir string) (string, int, error) {
	res, payload, err := ct.LoadResource(id)
	if err != nil {
		return "", 0, err
	}

	name := fmt.Sprintf("%04X.bin", res.ID)
	if res.Name != "" {
		name = fmt.Sprintf("%04X_%s.bin", res.ID, res.Name)
	}
	path := filepath.Join(outputDir, name)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", 0, fmt.Errorf("write %s: %w", path, err)
	}
	return path, len(payload), nil
}

// hex command
var hexCmd = &cobra.Command{
	Use:   "hex <file.blt> <id>",
	Short: "Hex dump a resource payload",
	Args:  cobra.ExactArgs(2),
	RunE:  runHex,
}

func runHex(cmd *cobra.Command, args []string) error {
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

	fmt.Printf("Resource %04X %q type %d, %d bytes at offset %d\n\n",
		res.ID, res.Name, res.Type, res.Size, res.Offset)
	fmt.Print(hex.Dump(payload))
	return nil
}

// describe command
var describeCmd = &cobra.Command{
	Use:   "describe <file.blt> <id>",
	Short: "Pretty-print a structured resource",
	Long: `Parse and pretty-print a resource according to its type.

The resource's numeric type code is mapped through the platform's type
registry; unmapped codes fall back to a short hex preview.`,
	Args: cobra.ExactArgs(2),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	ct, err := openContainer(args[0])
	if err != nil {
		return err
	}
	id, err := parseID(args[1])
	if err != nil {
		return err
	}
	registry, platform := registryFor(ct)

	res, payload, err := ct.LoadResource(id)
	if err != nil {
		return err
	}

	kind := registry.Lookup(res.Type)
	fmt.Printf("Resource %04X %q type %d (%s), %d bytes\n\n",
		res.ID, res.Name, res.Type, kind, res.Size)

	return describeKind(kind, payload, platform)
}

func describeKind(kind boltlib.Kind, payload []byte, platform boltlib.Platform) error {
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	defer w.Flush()

	switch kind {
	case boltlib.KindValues8:
		for i, v := range payload {
			fmt.Fprintf(w, "%d\t0x%02X\t(%d)\n", i, v, v)
		}

	case boltlib.KindValues16:
		for i, v := range boltlib.ParseValues16(payload) {
			fmt.Fprintf(w, "%d\t0x%04X\t(%d)\n", i, v, v)
		}

	case boltlib.KindResourceList:
		for i, id := range boltlib.ParseResourceList(payload) {
			fmt.Fprintf(w, "%d\t%08X\n", i, id)
		}

	case boltlib.KindImage:
		h, err := boltlib.ParseImageHeader(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "compression\t%s\n", boltlib.CompressionName(h.Compression))
		fmt.Fprintf(w, "size\t%dx%d\n", h.Width, h.Height)
		fmt.Fprintf(w, "offset\t(%d, %d)\n", h.OffsetX, h.OffsetY)

	case boltlib.KindPalette:
		p, err := boltlib.ParsePalette(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "header\t% X\n", p.Header)
		fmt.Fprintf(w, "colors\t%d\n", len(p.Colors))

	case boltlib.KindColors:
		fmt.Fprintf(w, "colors\t%d\n", len(boltlib.ParseColors(payload)))

	case boltlib.KindColorCycles:
		cc, err := boltlib.ParseColorCycles(payload)
		if err != nil {
			return err
		}
		for i := range cc.NumSlots {
			fmt.Fprintf(w, "slot %d\tcount %d\tid %08X\n", i, cc.NumSlots[i], cc.SlotIDs[i])
		}

	case boltlib.KindColorCycleSlot:
		s, err := boltlib.ParseColorCycleSlot(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "range\t[%d, %d]\tunk %d\n", s.Start, s.End, s.Unk4)

	case boltlib.KindPlane:
		p, err := boltlib.ParsePlane(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "image\t%08X\n", p.ImageID)
		fmt.Fprintf(w, "palette\t%08X\n", p.PaletteID)
		fmt.Fprintf(w, "hotspots\t%08X\n", p.HotspotsID)

	case boltlib.KindSprites:
		for i, s := range boltlib.ParseSprites(payload) {
			fmt.Fprintf(w, "%d\t(%d, %d)\timage %08X\n", i, s.X, s.Y, s.ImageID)
		}

	case boltlib.KindPaletteMod:
		for i, m := range boltlib.ParsePaletteMods(payload) {
			fmt.Fprintf(w, "%d\tindex %d\tcount %d\tcolors %08X\n", i, m.Index, m.Count, m.ColorsID)
		}

	case boltlib.KindButtonGraphics:
		for i, g := range boltlib.ParseButtonGraphics(payload) {
			fmt.Fprintf(w, "%d\t%s\thovered %08X\tidle %08X\n",
				i, boltlib.ButtonGraphicsTypeName(g.Type), g.HoveredID, g.IdleID)
		}

	case boltlib.KindButtons:
		for i, b := range boltlib.ParseButtons(payload) {
			fmt.Fprintf(w, "%d\t%s\t[%d,%d]x[%d,%d]\tplane %d\tgraphics %08X\n",
				i, boltlib.ButtonTypeName(b.Type), b.Left, b.Right, b.Top, b.Bottom,
				b.Plane, b.GraphicsID)
		}

	case boltlib.KindScene:
		s, err := boltlib.ParseScene(payload, platform)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "fore plane\t%08X\n", s.ForePlaneID)
		fmt.Fprintf(w, "back plane\t%08X\n", s.BackPlaneID)
		fmt.Fprintf(w, "sprites\t%d\t%08X\n", s.NumSprites, s.SpritesID)
		fmt.Fprintf(w, "color cycles\t%08X\n", s.ColorCyclesID)
		fmt.Fprintf(w, "buttons\t%d\t%08X\n", s.NumButtons, s.ButtonsID)
		if s.HasOrigin {
			fmt.Fprintf(w, "origin\t(%d, %d)\n", s.OriginX, s.OriginY)
		}

	case boltlib.KindMainMenu:
		m, err := boltlib.ParseMainMenu(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scene\t%08X\n", m.SceneID)
		fmt.Fprintf(w, "colorbars\t%08X\n", m.ColorbarsID)
		fmt.Fprintf(w, "colorbars palette\t%08X\n", m.ColorbarsPaletteID)

	case boltlib.KindFileMenu:
		m, err := boltlib.ParseFileMenu(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scene\t%08X\n", m.SceneID)
		fmt.Fprintf(w, "select game piece\t%08X\n", m.SelectGamePieceID)
		fmt.Fprintf(w, "set new\t%08X\n", m.SetNewID)
		fmt.Fprintf(w, "new\t%08X\n", m.NewID)
		fmt.Fprintf(w, "solved\t%08X\n", m.SolvedID)
		fmt.Fprintf(w, "one more\t%08X\n", m.OneMoreID)
		fmt.Fprintf(w, "x more\t%08X\n", m.XMoreID)
		fmt.Fprintf(w, "xx more\t%08X\n", m.XXMoreID)
		for i := range m.TensDigitIDs {
			fmt.Fprintf(w, "digit %d\ttens %08X\tones %08X\tunk %08X\n",
				i, m.TensDigitIDs[i], m.OnesDigitIDs[i], m.UnkDigitIDs[i])
		}
		fmt.Fprintf(w, "sound\t%04X\n", m.SoundID)

	case boltlib.KindPotionPuzzle:
		p, err := boltlib.ParsePotionPuzzle(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "background image\t%08X\n", p.BGImageID)
		fmt.Fprintf(w, "palette\t%08X\n", p.PaletteID)
		fmt.Fprintf(w, "delay\t%d ms\n", p.Delay)
		for i, s := range p.SoundIDs {
			fmt.Fprintf(w, "sound %d\t%04X\n", i+1, s)
		}
		fmt.Fprintf(w, "origin\t(%d, %d)\n", p.OriginX, p.OriginY)

	case boltlib.KindDifficultyMenu:
		m, err := boltlib.ParseDifficultyMenu(payload)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "scene\t%08X\n", m.SceneID)
		fmt.Fprintf(w, "choose difficulty\t%08X\n", m.ChooseDifficultyID)
		fmt.Fprintf(w, "change difficulty\t%08X\n", m.ChangeDifficultyID)

	case boltlib.KindPotionCombos:
		for i, c := range boltlib.ParsePotionCombos(payload) {
			fmt.Fprintf(w, "%d\t%d+%d+%d+%d\t%s\n",
				i, c.A, c.B, c.C, c.D, boltlib.PotionMovieName(c.Movie))
		}

	default:
		preview := payload
		if len(preview) > 64 {
			preview = preview[:64]
		}
		fmt.Fprintf(w, "no structured view; first %d bytes:\n", len(preview))
		w.Flush()
		fmt.Print(hex.Dump(preview))
	}
	return nil
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("bltview version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
