package detect

import (
	"fmt"
	"image"
	"image/color"

	"gocv.io/x/gocv"
)

var (
	boxColor     = color.RGBA{0, 255, 0, 0}
	textColor    = color.RGBA{0, 0, 0, 0}
	overlayColor = color.RGBA{255, 255, 255, 0}
)

//Annotate plots every detection on the frame: a rectangle at the bounding box
//and a filled label background sized to fit "<label>: <confidence>" directly
//above the box's top edge. The label is intentionally not clamped at the top
//frame boundary, boxes near the top draw their label off-frame.
//Mutates the frame in place.
func Annotate(frame *gocv.Mat, result Result) {
	for _, d := range result {
		gocv.Rectangle(frame, d.Box, boxColor, 2)

		label := fmt.Sprintf("%s: %.2f", d.Label, d.Confidence)
		labelSize := gocv.GetTextSize(label, gocv.FontHersheySimplex, 0.6, 2)

		backgroundRect := image.Rect(d.Box.Min.X, d.Box.Min.Y-labelSize.Y-10, d.Box.Min.X+labelSize.X, d.Box.Min.Y) //thickness -1 == filled rectangle
		gocv.Rectangle(frame, backgroundRect, boxColor, -1)
		gocv.PutText(frame, label, image.Pt(d.Box.Min.X, d.Box.Min.Y-5), gocv.FontHersheySimplex, 0.6, textColor, 2)
	}
}

//AddInfoOverlay writes the fixed title and quit hint on the frame
func AddInfoOverlay(frame *gocv.Mat) {
	gocv.PutText(frame, "Face Detection", image.Pt(10, 30), gocv.FontHersheySimplex, 0.7, overlayColor, 2)
	gocv.PutText(frame, "Press 'q' to quit", image.Pt(10, frame.Rows()-10), gocv.FontHersheySimplex, 0.5, overlayColor, 1)
}
