package detect

import "image"

//Detection is one located, classified, confidence-scored region found in a frame
type Detection struct {
	Label      string
	Confidence float64
	Box        image.Rectangle
}

//Result holds every detection produced by one inference pass over a single frame.
//A Result is read-only once created, each new pass supersedes the previous one.
type Result []Detection
