package detect

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

//DefaultLabel is used when the detector reports a class ID we have no name for
const DefaultLabel = "Face"

//classNames maps model class IDs to printable labels. Unknown IDs fall back
//to DefaultLabel instead of being probed dynamically.
var classNames = map[int]string{
	1: "Face",
}

//Detector wraps a gocv DNN loaded from a frozen TensorFlow graph and turns
//raw network output into pixel-space Detections.
type Detector struct {
	net       gocv.Net
	threshold float64
}

//NewDetector loads the model. An empty network is an initialization failure,
//callers must treat it as fatal and not enter the capture loop.
func NewDetector(graphPath, configPath string, threshold float64) (*Detector, error) {
	net := gocv.ReadNet(graphPath, configPath)
	if net.Empty() {
		return nil, fmt.Errorf("NewDetector: could not load model from '%s'", graphPath)
	}

	return &Detector{net: net, threshold: threshold}, nil
}

func (d *Detector) Close() {
	d.net.Close()
}

//Detect runs one inference pass over the given frame and returns every region
//above the confidence threshold. The frame is not modified.
func (d *Detector) Detect(frame gocv.Mat) (Result, error) {
	if frame.Empty() {
		return nil, fmt.Errorf("Detect: empty frame")
	}

	blob := gocv.BlobFromImage(frame, 1.0/127.5, image.Pt(300, 300), gocv.NewScalar(127.5, 127.5, 127.5, 0), true, false)
	defer blob.Close()

	d.net.SetInput(blob, "")
	out := d.net.Forward("")
	defer out.Close()

	frameWidth := float64(frame.Cols())
	frameHeight := float64(frame.Rows())

	results := make(Result, 0)

	//the SSD output is a flat list of 7-float rows: [?, classID, confidence, left, top, right, bottom]
	rows := out.Total() / 7
	for i := 0; i < rows; i++ {
		confidence := float64(out.GetFloatAt(0, i*7+2))
		if confidence < d.threshold {
			continue
		}

		classID := int(out.GetFloatAt(0, i*7+1))
		label, ok := classNames[classID]
		if !ok {
			label = DefaultLabel
		}

		//coordinates arrive normalized to [0,1], scale them to pixels
		x1 := int(float64(out.GetFloatAt(0, i*7+3)) * frameWidth)
		y1 := int(float64(out.GetFloatAt(0, i*7+4)) * frameHeight)
		x2 := int(float64(out.GetFloatAt(0, i*7+5)) * frameWidth)
		y2 := int(float64(out.GetFloatAt(0, i*7+6)) * frameHeight)

		results = append(results, Detection{
			Label:      label,
			Confidence: confidence,
			Box:        image.Rect(x1, y1, x2, y2),
		})
	}

	return results, nil
}
