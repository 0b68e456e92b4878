package ports

import (
	"image"
	"sort"
)

// View names a logical display surface.
type View string

const (
	ViewMain      View = "main"      // Annotated video frame
	ViewBlue      View = "blue"      // ROI with only the blue channel kept
	ViewGreen     View = "green"     // ROI with only the green channel kept
	ViewRed       View = "red"       // ROI with only the red channel kept
	ViewROI       View = "roi"       // Unmodified ROI
	ViewResult    View = "result"    // Frame with the ROI replaced by its average colour
	ViewHistogram View = "histogram" // Plotted distribution of the selected channel
)

// FileName returns the file name a view is saved under.
func (v View) FileName() string {
	return string(v) + ".png"
}

// ViewSet maps each visible view to a ready-to-render image.
// Views absent from the set are hidden.
type ViewSet map[View]image.Image

// Names returns the views in the set in a stable order.
func (vs ViewSet) Names() []View {
	names := make([]View, 0, len(vs))
	for v := range vs {
		names = append(names, v)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Display abstracts the surface the views are rendered on.
type Display interface {
	// Present replaces everything shown with the given view set.
	Present(views ViewSet) error
}

// HistogramPlot is the plot-ready input for a Plotter.
type HistogramPlot struct {
	Title  string
	Labels []string // One label per bin
	Counts []int
	Color  [3]uint8 // RGB bar colour
}

// Plotter renders a histogram to an image.
type Plotter interface {
	Plot(plot HistogramPlot) (image.Image, error)
}

// Progress reports progress of a long-running operation.
type Progress interface {
	// Start begins reporting for total steps (<= 0 when unknown).
	Start(total int)

	// Set reports the current step.
	Set(current int)

	// Finish ends reporting.
	Finish()
}
