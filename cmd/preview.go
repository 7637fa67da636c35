package cmd

import (
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/keyclick/keyclick/internal/hints"
	"github.com/keyclick/keyclick/internal/output"
	"github.com/keyclick/keyclick/internal/platform"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Render the hint overlay into a PNG",
	Long: `Capture the screen, run one discovery pass, and write a PNG with every
element's bounding box and hint label drawn in. Use --input to annotate
an existing screenshot instead of capturing.`,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	addTargetFlags(previewCmd)
	previewCmd.Flags().StringP("output", "o", "hints.png", "Output PNG path")
	previewCmd.Flags().String("input", "", "Annotate this image instead of capturing the screen")
	previewCmd.Flags().Float64("scale", 0, "Points-to-pixels scale (0 = detect from the display)")
}

func runPreview(cmd *cobra.Command, args []string) error {
	provider, orch, err := newPipeline()
	if err != nil {
		return err
	}

	outPath, _ := cmd.Flags().GetString("output")
	inPath, _ := cmd.Flags().GetString("input")
	scale, _ := cmd.Flags().GetFloat64("scale")

	var img *image.RGBA
	if inPath != "" {
		f, err := os.Open(inPath)
		if err != nil {
			return err
		}
		decoded, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("decode %s: %w", inPath, err)
		}
		img = imageToRGBA(decoded)
	} else {
		if provider.Screenshotter == nil {
			return fmt.Errorf("screen capture not available on this platform")
		}
		img, err = provider.Screenshotter.CaptureDisplay()
		if err != nil {
			return err
		}
	}

	if scale == 0 {
		scale = detectScale(provider, img)
	}

	act, err := orch.Discover(cmd.Context(), targetFromFlags(cmd))
	if err != nil {
		return err
	}
	hinted := hints.Label(act.Elements, cfg.HintChars)

	annotateHints(img, hinted, scale)

	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode %s: %w", outPath, err)
	}

	return output.Print(output.PreviewResult{Path: outPath, Hints: len(hinted)})
}

// detectScale derives the points-to-pixels factor from the main display.
// Retina captures carry more pixels than the point grid elements are
// measured in.
func detectScale(provider *platform.Provider, img *image.RGBA) float64 {
	if provider.Screenshotter == nil {
		return 1
	}
	w, _, err := provider.Screenshotter.DisplaySize()
	if err != nil || w <= 0 {
		return 1
	}
	return float64(img.Bounds().Dx()) / w
}
