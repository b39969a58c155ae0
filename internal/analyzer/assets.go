package analyzer

import (
	"context"
	"fmt"
	"path"
	"strings"

	exif "github.com/dsoprea/go-exif/v3"

	"github.com/nao1215/docscan/internal/model"
)

// exifExtensions lists image extensions that may carry EXIF segments.
var exifExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".tif":  {},
	".tiff": {},
	".webp": {},
}

// AssetAnalyzer inspects the images the documents reference: alt text
// for accessibility, and EXIF metadata that should not be committed to
// a published tree.
type AssetAnalyzer struct {
	// enableEXIF turns the metadata extraction on. Alt text checks
	// always run.
	enableEXIF bool

	// readFile reads a root-relative file. Injected by the coordinator.
	readFile FileReader
}

// NewAssetAnalyzer creates a new image asset check.
func NewAssetAnalyzer(enableEXIF bool) *AssetAnalyzer {
	return &AssetAnalyzer{enableEXIF: enableEXIF}
}

// Name returns the check's name.
func (a *AssetAnalyzer) Name() string {
	return "assets"
}

// Category returns the check's category.
func (a *AssetAnalyzer) Category() string {
	return CategoryHygiene
}

// SetFileReader injects the file reader used for EXIF extraction.
func (a *AssetAnalyzer) SetFileReader(reader FileReader) {
	a.readFile = reader
}

// Analyze checks alt text on every image and EXIF metadata on every
// referenced image file.
func (a *AssetAnalyzer) Analyze(ctx context.Context, data *AnalysisData) ([]model.Finding, error) {
	var findings []model.Finding

	// An image referenced from several documents is only read once.
	inspected := make(map[string]struct{})

	for _, docPath := range sortedDocumentPaths(data.Documents) {
		select {
		case <-ctx.Done():
			return findings, ctx.Err()
		default:
		}

		doc := data.Documents[docPath]
		for _, img := range doc.Images {
			if strings.TrimSpace(img.Alt) == "" {
				findings = append(findings, newFinding(
					"missing_alt_text",
					"Image has no alt text",
					fmt.Sprintf("The image %q has no alternative text, so screen readers announce nothing useful.", img.Destination),
					img.Destination,
					doc.Path,
					img.Line,
				))
			}

			if !a.enableEXIF || a.readFile == nil {
				continue
			}
			rd := resolveDest(doc.Path, img.Destination)
			if rd.kind != destRelative || rd.escapesRoot {
				continue
			}
			if _, ok := exifExtensions[strings.ToLower(path.Ext(rd.target))]; !ok {
				continue
			}
			if _, ok := data.Assets[rd.target]; !ok {
				continue // missing files are the link check's business
			}
			if _, ok := inspected[rd.target]; ok {
				continue
			}
			inspected[rd.target] = struct{}{}

			findings = append(findings, a.analyzeImageFile(rd.target)...)
		}
	}

	return findings, nil
}

// analyzeImageFile extracts EXIF entries from one image file and rates
// what it finds.
func (a *AssetAnalyzer) analyzeImageFile(target string) []model.Finding {
	raw, err := a.readFile(target)
	if err != nil {
		return nil
	}

	rawExif, err := exif.SearchAndExtractExif(raw)
	if err != nil || rawExif == nil {
		return nil
	}

	entries, _, err := exif.GetFlatExifData(rawExif, nil)
	if err != nil {
		return nil
	}

	var findings []model.Finding
	for _, entry := range entries {
		switch entry.TagName {
		case "GPSLatitude", "GPSLongitude", "GPSLatitudeRef", "GPSLongitudeRef":
			findings = append(findings, newFinding(
				"exif_gps",
				"GPS coordinates in committed image",
				fmt.Sprintf("The image carries the EXIF tag %s, revealing where the photo was taken.", entry.TagName),
				entry.TagName+": "+entry.Formatted,
				target,
				0,
			))
		case "Make", "Model", "SerialNumber", "CameraSerialNumber", "BodySerialNumber", "LensSerialNumber",
			"Software", "ProcessingSoftware", "Artist", "Author", "Copyright", "XPAuthor":
			findings = append(findings, newFinding(
				"exif_metadata",
				"Identifying metadata in committed image",
				fmt.Sprintf("The image carries the EXIF tag %s, which can identify the device or author.", entry.TagName),
				entry.TagName+": "+entry.Formatted,
				target,
				0,
			))
		}
	}

	return findings
}
